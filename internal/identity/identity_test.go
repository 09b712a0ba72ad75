// SPDX-License-Identifier: Apache-2.0

package identity_test

import (
	"sync"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idmatch/idmatch-mcp/internal/identity"
)

const (
	aadhaarInline = "GOVERNMENT OF INDIA ... 1234 5678 9012 ... DOB: 01/01/1990 Name: JOHN SMITH"

	aadhaarCard = "भारत सरकार\nGOVERNMENT OF INDIA\nJOHN SMITH\nजन्म तिथि/DOB: 01/01/1990\nपुरुष/ MALE\n1234 5678 9012\nआधार - आम आदमी का अधिकार"

	panCard = "आयकर विभाग INCOME TAX DEPARTMENT\nभारत सरकार GOVT. OF INDIA\nस्थायी लेखा संख्या कार्ड\n" +
		"Permanent Account Number Card\nABCDE1234F\nनाम / Name\nJOHN SMITH\nपिता का नाम / Father's Name\nRAM SMITH\n" +
		"जन्म की तारीख / Date of Birth\n01/01/1990"

	panCardOld = "INCOME TAX DEPARTMENT GOVT. OF INDIA\nJOHN SMITH\nRAM SMITH\n15/01/90\nPermanent Account Number\nABCDE1234F"

	passportPage = "REPUBLIC OF INDIA\nPASSPORT\nPassport No.: K1234567\nSurname: SMITH\nGiven Name(s): JOHN\nDate of Birth: 15/01/1990"

	drivingLicense = "DRIVING LICENCE\nTRANSPORT DEPARTMENT\nDL No: MH12 12345678901 2020\nName: JOHN SMITH\nDOB: 15-01-1990"

	aadhaarAfterDate  = "RAVI KUMAR DOB: 15/01/1990 1234 5678 9012"
	aadhaarBeforeDate = "Name: JOHN SMITH\nAadhaar 1234 5678 9012 15/01/1990"

	voterCard = "ELECTION COMMISSION OF INDIA\nELECTOR PHOTO IDENTITY CARD\nABC1234567\nElector's Name: JOHN SMITH\n" +
		"Father's Name: RAM SMITH\nSex: Male\nDate of Birth: 15/01/1990"
)

// ---------------------------------------------------------------------------
// Classifier
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want identity.DocumentType
	}{
		{name: "inline aadhaar", text: aadhaarInline, want: identity.Aadhaar},
		{name: "bilingual aadhaar", text: aadhaarCard, want: identity.Aadhaar},
		{name: "pan card", text: panCard, want: identity.PAN},
		{name: "old pan card", text: panCardOld, want: identity.PAN},
		{name: "passport", text: passportPage, want: identity.Passport},
		{name: "driving license", text: drivingLicense, want: identity.DrivingLicense},
		{name: "voter id", text: voterCard, want: identity.VoterID},
		{name: "aadhaar number after a date", text: aadhaarAfterDate, want: identity.Aadhaar},
		{name: "aadhaar number before a date", text: aadhaarBeforeDate, want: identity.Aadhaar},
		{name: "no signals", text: "lorem ipsum dolor sit amet", want: identity.Unknown},
		{name: "empty text", text: "", want: identity.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.Classify(tt.text))
		})
	}
}

func TestClassify_TieBreakFollowsPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want identity.DocumentType
	}{
		{name: "aadhaar beats passport", text: "GOVERNMENT OF INDIA", want: identity.Aadhaar},
		{name: "passport beats driving license", text: "PASSPORT\nRTO", want: identity.Passport},
		{name: "pan beats voter id", text: "INCOME TAX\nEPIC", want: identity.PAN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := identity.ClassifyWithScores(tt.text)
			assert.Equal(t, tt.want, c.Type)
			assert.False(t, c.Fallback)
			for i := 0; i < 10; i++ {
				assert.Equal(t, tt.want, identity.Classify(tt.text), "classification must be deterministic")
			}
		})
	}
}

func TestClassifyWithScores_ReportsEveryType(t *testing.T) {
	c := identity.ClassifyWithScores(aadhaarInline)

	require.Len(t, c.Scores, len(identity.Priority()))
	assert.Equal(t, 2, c.Scores[identity.Aadhaar])
	assert.Equal(t, 1, c.Scores[identity.Passport])
	assert.Equal(t, 0, c.Scores[identity.VoterID])
}

func TestClassifyWithScores_SignalsMatchWholeWords(t *testing.T) {
	c := identity.ClassifyWithScores("ABC1234567")
	assert.Equal(t, identity.VoterID, c.Type)
	assert.Equal(t, 1, c.Scores[identity.VoterID])
	assert.Equal(t, 0, c.Scores[identity.Passport], "the passport shape needs a word boundary")

	c = identity.ClassifyWithScores("control panel in the epicentre")
	assert.Equal(t, identity.Unknown, c.Type)
	assert.Equal(t, 0, c.Scores[identity.PAN])
	assert.Equal(t, 0, c.Scores[identity.VoterID])
}

func TestClassifyWithScores_ShapeFallback(t *testing.T) {
	registry := identity.NewRegistry(nil,
		identity.Profile{
			Type:    identity.Aadhaar,
			Signals: []identity.Pattern{identity.MustPattern("uidai", `UIDAI`, regexp2.IgnoreCase)},
			Shape:   identity.MustPattern("aadhaar", `\b[0-9]{4} [0-9]{4} [0-9]{4}\b`, regexp2.None),
		},
		identity.Profile{
			Type:  identity.PAN,
			Shape: identity.MustPattern("pan", `\b[A-Z]{5}[0-9]{4}[A-Z]\b`, regexp2.None),
		},
	)

	c := registry.ClassifyWithScores("card ABCDE1234F issued")
	assert.Equal(t, identity.PAN, c.Type)
	assert.True(t, c.Fallback)

	c = registry.ClassifyWithScores("card abcde1234f issued")
	assert.Equal(t, identity.Unknown, c.Type, "shapes are case-sensitive")
	assert.False(t, c.Fallback)

	c = registry.ClassifyWithScores("UIDAI ABCDE1234F")
	assert.Equal(t, identity.Aadhaar, c.Type, "a signal always beats the shape fallback")
	assert.False(t, c.Fallback)
}

// ---------------------------------------------------------------------------
// Extractor
// ---------------------------------------------------------------------------

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		docType identity.DocumentType
		text    string
		want    identity.Fields
	}{
		{
			name:    "inline aadhaar",
			docType: identity.Aadhaar,
			text:    aadhaarInline,
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "01/01/1990",
				identity.FieldCardNumber:  "123456789012",
			},
		},
		{
			name:    "name taken from the line above the date of birth",
			docType: identity.Aadhaar,
			text:    aadhaarCard,
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "01/01/1990",
				identity.FieldCardNumber:  "123456789012",
			},
		},
		{
			name:    "pan labels on their own lines",
			docType: identity.PAN,
			text:    panCard,
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "01/01/1990",
				identity.FieldCardNumber:  "ABCDE1234F",
			},
		},
		{
			name:    "unlabelled pan with two digit year",
			docType: identity.PAN,
			text:    panCardOld,
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "15/01/90",
				identity.FieldCardNumber:  "ABCDE1234F",
			},
		},
		{
			name:    "passport given name",
			docType: identity.Passport,
			text:    passportPage,
			want: identity.Fields{
				identity.FieldName:        "JOHN",
				identity.FieldDateOfBirth: "15/01/1990",
				identity.FieldCardNumber:  "K1234567",
			},
		},
		{
			name:    "driving license number loses its spaces",
			docType: identity.DrivingLicense,
			text:    drivingLicense,
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "15-01-1990",
				identity.FieldCardNumber:  "MH12123456789012020",
			},
		},
		{
			name:    "voter id skips the father's name",
			docType: identity.VoterID,
			text:    voterCard,
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "15/01/1990",
				identity.FieldCardNumber:  "ABC1234567",
			},
		},
		{
			name:    "card number right after the date of birth",
			docType: identity.Aadhaar,
			text:    aadhaarAfterDate,
			want: identity.Fields{
				identity.FieldName:        "RAVI KUMAR",
				identity.FieldDateOfBirth: "15/01/1990",
				identity.FieldCardNumber:  "123456789012",
			},
		},
		{
			name:    "labelled card number followed by a date",
			docType: identity.Aadhaar,
			text:    aadhaarBeforeDate,
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "15/01/1990",
				identity.FieldCardNumber:  "123456789012",
			},
		},
		{
			name:    "unknown documents never get a card number",
			docType: identity.Unknown,
			text:    "Name: JOHN SMITH\nDOB: 01/01/1990\n1234 5678 9012",
			want: identity.Fields{
				identity.FieldName:        "JOHN SMITH",
				identity.FieldDateOfBirth: "01/01/1990",
			},
		},
		{
			name:    "nothing extractable",
			docType: identity.Aadhaar,
			text:    "lorem ipsum",
			want:    identity.Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := identity.Extract(tt.docType, tt.text)
			assert.Equal(t, tt.want, got)
			for field, v := range got {
				assert.NotEmpty(t, v, "field %s must not hold an empty value", field)
			}
		})
	}
}

func TestExtract_Name(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		absent bool
	}{
		{name: "label wins over later lines", text: "Name: JOHN SMITH\nDOB: 01/01/1990", want: "JOHN SMITH"},
		{name: "label stops before date of birth", text: "Name: Jane Doe DOB: 02/03/1985", want: "Jane Doe"},
		{name: "relative label is skipped", text: "Father's Name: RAM SMITH\nName: JOHN SMITH", want: "JOHN SMITH"},
		{name: "initials keep their dots", text: "Name: J. SMITH\nDOB: 01/01/1990", want: "J. SMITH"},
		{name: "short capture falls through and is absent", text: "Name: AB\nDOB: 01/01/1990", absent: true},
		{name: "header line is rejected", text: "GOVERNMENT OF INDIA\nDOB: 01/01/1990", absent: true},
		{name: "hindi header line is rejected", text: "BHARAT SARKAR\nDOB: 01/01/1990", absent: true},
		{name: "given name shared with a header word", text: "Name: BHARAT KUMAR\nDOB: 01/01/1990", want: "BHARAT KUMAR"},
		{name: "surname shared with a header word", text: "Name: AMIT SARKAR\nDOB: 01/01/1990", want: "AMIT SARKAR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := identity.Extract(identity.Aadhaar, tt.text).Get(identity.FieldName)
			if tt.absent {
				assert.False(t, ok, "unexpected name %q", got)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_DateOfBirth(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "labelled date beats earlier bare date", text: "Issued: 01/02/2015\nDOB: 03/04/1990", want: "03/04/1990"},
		{name: "year first is kept verbatim", text: "DOB: 1990-04-03", want: "1990-04-03"},
		{name: "named month", text: "Date of Birth: 15 JAN 1990", want: "15 JAN 1990"},
		{name: "bare dotted date", text: "born in 03.04.1990", want: "03.04.1990"},
		{name: "bare year first date", text: "1990/04/03", want: "1990/04/03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := identity.Extract(identity.Unknown, tt.text).Get(identity.FieldDateOfBirth)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_AadhaarIgnoresVirtualID(t *testing.T) {
	fields := identity.Extract(identity.Aadhaar, "VID: 9123 4567 8901 2345")
	_, ok := fields.Get(identity.FieldCardNumber)
	assert.False(t, ok, "a 16 digit virtual ID is not an Aadhaar number")
}

// ---------------------------------------------------------------------------
// Chain
// ---------------------------------------------------------------------------

func TestChain_Eval(t *testing.T) {
	chain := identity.Chain{
		Patterns: []identity.Pattern{
			identity.MustPattern("never", `NOPE([A-Z]+)`, regexp2.None),
			identity.MustPattern("short", `short: ([a-z]+)`, regexp2.None),
			identity.MustPattern("long", `long: ([a-z ]+)`, regexp2.None),
		},
		Accept: identity.AcceptName,
	}

	got, ok := chain.Eval("short: ab\nlong: alice smith")
	require.True(t, ok)
	assert.Equal(t, "alice smith", got)

	_, ok = chain.Eval("short: ab")
	assert.False(t, ok)
}

func TestAcceptName(t *testing.T) {
	got, ok := identity.AcceptName("  J0HN \t SM!TH ")
	require.True(t, ok)
	assert.Equal(t, "JHN SMTH", got)

	tests := []struct {
		candidate string
		want      bool
	}{
		{"Income Tax Department", false},
		{"GOVT. OF INDIA", false},
		{"Bharat Sarkar", false},
		{"JOHN SMITH GOVERNMENT OF INDIA", false},
		{"Bharat", true},
		{"BHARAT KUMAR", true},
		{"AMIT SARKAR", true},
		{"INDIRA DEVI", true},
	}
	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			_, ok := identity.AcceptName(tt.candidate)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestChain_WholeMatchWithoutGroup(t *testing.T) {
	chain := identity.Chain{
		Patterns: []identity.Pattern{identity.MustPattern("digits", `[0-9]{3} [0-9]{3}`, regexp2.None)},
		Accept:   identity.AcceptCompact,
	}

	got, ok := chain.Eval("ref 123 456")
	require.True(t, ok)
	assert.Equal(t, "123456", got)
}

// ---------------------------------------------------------------------------
// Identify
// ---------------------------------------------------------------------------

func TestIdentify(t *testing.T) {
	text := "GOVERNMENT OF INDIA\nJOHN SMITH\nDOB: ０１/０１/１９９０\n１２３４ ５６７８ ９０１２"

	record := identity.Identify(text)

	assert.Equal(t, identity.Aadhaar, record.Type)
	assert.Equal(t, text, record.RawText, "raw text is kept as supplied")
	assert.Equal(t, "JOHN SMITH", record.Fields[identity.FieldName])
	assert.Equal(t, "01/01/1990", record.Fields[identity.FieldDateOfBirth])
	assert.Equal(t, "123456789012", record.Fields[identity.FieldCardNumber])
}

func TestIdentify_NameSharingHeaderWord(t *testing.T) {
	record := identity.Identify("GOVERNMENT OF INDIA\nName: BHARAT KUMAR\nDOB: 01/01/1990\n1234 5678 9012")

	assert.Equal(t, identity.Aadhaar, record.Type)
	assert.Equal(t, identity.Fields{
		identity.FieldName:        "BHARAT KUMAR",
		identity.FieldDateOfBirth: "01/01/1990",
		identity.FieldCardNumber:  "123456789012",
	}, record.Fields)
}

func TestIdentify_ReturnsFreshRecords(t *testing.T) {
	a := identity.Identify(aadhaarInline)
	a.Fields[identity.FieldName] = "CHANGED"

	b := identity.Identify(aadhaarInline)
	assert.Equal(t, "JOHN SMITH", b.Fields[identity.FieldName])
}

func TestIdentify_ConcurrentUse(t *testing.T) {
	want := identity.Identify(voterCard)

	var wg sync.WaitGroup
	results := make([]identity.Record, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = identity.Identify(voterCard)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "line endings", in: "A\r\nB\rC", want: "A\nB\nC"},
		{name: "dashes", in: "15–01—1990", want: "15-01-1990"},
		{name: "backslash", in: `15\01\1990`, want: "15/01/1990"},
		{name: "full width digits", in: "１２３４", want: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.Preprocess(tt.in))
		})
	}
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

func TestParseDocumentType(t *testing.T) {
	for _, in := range []string{"driving_license", "Driving License", " DRIVING LICENSE "} {
		got, ok := identity.ParseDocumentType(in)
		assert.True(t, ok, in)
		assert.Equal(t, identity.DrivingLicense, got, in)
	}

	got, ok := identity.ParseDocumentType("ration card")
	assert.False(t, ok)
	assert.Equal(t, identity.Unknown, got)
}

func TestCanonicalField(t *testing.T) {
	tests := map[identity.Field]identity.Field{
		"PANNumber":       identity.FieldCardNumber,
		"Aadhaar Number":  identity.FieldCardNumber,
		"Voter ID Number": identity.FieldCardNumber,
		"Date of Birth":   identity.FieldDateOfBirth,
		"name":            identity.FieldName,
		"Address":         "Address",
	}
	for in, want := range tests {
		assert.Equal(t, want, identity.CanonicalField(in), string(in))
	}
}

func TestNewRecord_DropsEmptyValues(t *testing.T) {
	r := identity.NewRecord(identity.PAN, map[identity.Field]string{
		identity.FieldName:        "JOHN",
		identity.FieldDateOfBirth: "  ",
	}, "")

	assert.Equal(t, identity.Fields{identity.FieldName: "JOHN"}, r.Fields)
}

func TestPriority_IsACopy(t *testing.T) {
	p := identity.Priority()
	p[0] = identity.VoterID

	assert.Equal(t, identity.Aadhaar, identity.Priority()[0])
	assert.Len(t, p, 5)
	for _, typ := range p {
		assert.True(t, typ.Known())
	}
	assert.False(t, identity.Unknown.Known())
}
