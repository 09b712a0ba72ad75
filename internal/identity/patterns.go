// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"github.com/dlclark/regexp2"
)

const (
	ci = regexp2.IgnoreCase
	cs = regexp2.None
)

// aadhaarShape refuses a bare four digit group one space away on either side,
// which is how a sixteen digit Virtual ID prints. Dates and other numbers next
// to the card number do not block it.
const aadhaarShape = `(?<!(?:^|[^0-9/.\-])[0-9]{4}[ ])\b[0-9]{4}[ ]?[0-9]{4}[ ]?[0-9]{4}\b` +
	`(?![ ][0-9]{4}(?![0-9/.\-]))`

// Identifier shapes. They are case-sensitive when used for extraction and as
// the classifier fallback; signals reuse them case-insensitively.
const (
	panShape      = `\b[A-Z]{5}[0-9]{4}[A-Z]\b`
	passportShape = `\b[A-Z][0-9]{7}\b`
	dlShape       = `\b[A-Z]{2}[0-9]{2}[ ]?[0-9]{11}[ ]?[0-9]{4}\b`
	voterShape    = `\b[A-Z]{3}[0-9]{7}\b`
)

// Name building blocks.
const (
	// nameLabel refuses labels that belong to a relative.
	nameLabel = `(?<!(?:Father|Mother|Husband|Guardian)(?:['’]?s)?[ \t]{0,3})` +
		`\b(?:Name of (?:the )?Applicant|Name of (?:the )?Holder|Elector['’]?s Name|Given Names?(?:\(s\))?|Name)(?![A-Za-z])`
	nameValue = `([A-Za-z][A-Za-z .]*?)`
	nameStop  = `(?=[ \t]*(?:\bDOB\b|\bD\.O\.B|\bDate of Birth\b|\bFather\b|\bMother\b|\bHusband\b|\bGender\b|\bSex\b|[^A-Za-z \t.]|$))`
	dobMarker = `(?:\bDOB\b|\bD\.O\.B|\bDate of Birth\b|\bYear of Birth\b|\bBirth\b)`
)

var (
	nameSameLine = MustPattern("name-label",
		`(?i)`+nameLabel+`[ \t]*[:\-]?[ \t]*`+nameValue+nameStop, cs)
	nameNextLine = MustPattern("name-label-next-line",
		`(?i)`+nameLabel+`[ \t]*[:\-]?[ \t]*\r?\n(?:[^\nA-Za-z]*\r?\n)?[ \t]*`+nameValue+`[ \t]*(?=\r?\n|$)`, cs)
	nameBeforeDOB = MustPattern("name-line-before-dob",
		`(?im)^[ \t]*`+nameValue+`[ \t]*\r?\n(?=[^\n]*`+dobMarker+`)`, cs)
	nameBeforeRelative = MustPattern("name-line-before-relative",
		`(?im)^[ \t]*`+nameValue+`[ \t]*\r?\n(?=[^\n]*\b(?:Father|Mother|Husband)\b)`, cs)
	nameAfterGovtHeader = MustPattern("name-after-govt-header",
		`(?im)\b(?:GOVT\.?|GOVERNMENT)[ \t]+OF[ \t]+INDIA[^\n]*\n[ \t]*`+nameValue+`[ \t]*\r?$`, cs)
	nameBeforeMarker = MustPattern("name-before-marker",
		`(?i)`+nameValue+`(?=[ \t]*(?:\bDOB\b|\bDate of Birth\b|\bFather\b|\bMother\b|\bPermanent\b|\bPAN\b|\bPassport\b|\bDL\b|\bEPIC\b))`, cs)
)

// Date of birth building blocks.
const (
	dobLabel   = `(?:\bDOB\b|\bD\.O\.B\.?|\bDate of Birth\b|\bBirth Date\b)`
	dobSep     = `[\s:/\-]*`
	numericDMY = `([0-9]{1,2}[/\-.][0-9]{1,2}[/\-.][0-9]{2,4})(?![0-9])`
	numericYMD = `([0-9]{4}[/\-.][0-9]{1,2}[/\-.][0-9]{1,2})(?![0-9])`
	monthName  = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[A-Za-z]*\.?`
	namedDMY   = `([0-9]{1,2}[ \-]+` + monthName + `[ \-,]+[0-9]{2,4})(?![0-9])`
)

var dobPatterns = []Pattern{
	MustPattern("dob-label-dmy", dobLabel+dobSep+numericDMY, ci),
	MustPattern("dob-label-ymd", dobLabel+dobSep+numericYMD, ci),
	MustPattern("dob-label-month", dobLabel+dobSep+namedDMY, ci),
	MustPattern("dob-birth-dmy", `\b(?:Birth|Born)\b`+dobSep+numericDMY, ci),
	MustPattern("dob-slash", `\b([0-9]{2}/[0-9]{2}/[0-9]{4})\b`, cs),
	MustPattern("dob-dot", `\b([0-9]{2}\.[0-9]{2}\.[0-9]{4})\b`, cs),
	MustPattern("dob-dash", `\b([0-9]{2}-[0-9]{2}-[0-9]{4})\b`, cs),
	MustPattern("dob-ymd", `\b([0-9]{4}[/\-][0-9]{2}[/\-][0-9]{2})\b`, cs),
	MustPattern("dob-month", `\b([0-9]{1,2}[ \-]+`+monthName+`[ \-,]+[0-9]{4})\b`, ci),
}

// PAN cards of older print runs use two-digit years.
var dobShortYear = MustPattern("dob-short-year", `\b([0-9]{2}[/\-][0-9]{2}[/\-][0-9]{2})\b`, cs)

// cardChain tries the labelled number first and then the bare shape anywhere
// in the text.
func cardChain(label, shape string) Chain {
	return Chain{
		Patterns: []Pattern{
			MustPattern("card-label", `(?i:`+label+`)[\s:\-]*(`+shape+`)`, cs),
			MustPattern("card-shape", shape, cs),
		},
		Accept: AcceptCompact,
	}
}

func nameChain(patterns ...Pattern) Chain {
	return Chain{Patterns: patterns, Accept: AcceptName}
}

func dobChain(extra ...Pattern) Chain {
	patterns := append(append([]Pattern{}, dobPatterns...), extra...)
	return Chain{Patterns: patterns, Accept: AcceptTrimmed}
}

func signals(exprs ...string) []Pattern {
	patterns := make([]Pattern, len(exprs))
	for i, expr := range exprs {
		patterns[i] = MustPattern(expr, expr, ci)
	}
	return patterns
}

func newDefaultRegistry() *Registry {
	generic := map[Field]Chain{
		FieldName:        nameChain(nameSameLine, nameNextLine, nameBeforeDOB, nameBeforeMarker),
		FieldDateOfBirth: dobChain(),
	}

	return NewRegistry(generic,
		Profile{
			Type: Aadhaar,
			Signals: signals(
				aadhaarShape,
				`\bAADHA+R\b`,
				`आधार`,
				`UNIQUE IDENTIFICATION AUTHORITY OF INDIA`,
				`\bUIDAI\b`,
				`BHARAT SARKAR`,
				`GOVERNMENT OF INDIA`,
			),
			Shape: MustPattern("aadhaar-shape", aadhaarShape, cs),
			Chains: map[Field]Chain{
				FieldCardNumber: cardChain(`\b(?:Aadhaa?r|UID)\b(?:[ \t]*(?:No\.?|Number))?`, aadhaarShape),
			},
		},
		Profile{
			Type: PAN,
			Signals: signals(
				panShape,
				`INCOME TAX DEPARTMENT`,
				`PERMANENT ACCOUNT NUMBER`,
				`\bPAN\b`,
				`\bINCOME TAX\b`,
				`\bTAX DEPARTMENT\b`,
			),
			Shape: MustPattern("pan-shape", panShape, cs),
			Chains: map[Field]Chain{
				FieldName: nameChain(nameSameLine, nameNextLine, nameBeforeRelative,
					nameAfterGovtHeader, nameBeforeMarker),
				FieldDateOfBirth: dobChain(dobShortYear),
				FieldCardNumber: cardChain(`\bPermanent Account Number\b(?:[ \t]*Card)?|\bPAN\b(?:[ \t]*(?:No\.?|Number))?`, panShape),
			},
		},
		Profile{
			Type: Passport,
			Signals: signals(
				passportShape,
				`\bPASSPORT\b`,
				`REPUBLIC OF INDIA`,
				`GOVERNMENT OF INDIA`,
				`MINISTRY OF EXTERNAL AFFAIRS`,
				`PASSPORT OFFICE`,
				`PASSPORT AUTHORITY`,
			),
			Shape: MustPattern("passport-shape", passportShape, cs),
			Chains: map[Field]Chain{
				FieldCardNumber: cardChain(`\bPassport\b[ \t]*(?:No\.?|Number)`, passportShape),
			},
		},
		Profile{
			Type: DrivingLicense,
			Signals: signals(
				dlShape,
				`DRIVING LICENCE`,
				`DRIVING LICENSE`,
				`LEARNER['’]?S LICEN[CS]E`,
				`MOTOR VEHICLES? ACT`,
				`\bRTO\b`,
				`TRANSPORT DEPARTMENT`,
				`LICEN[CS](?:E|ING) AUTHORITY`,
			),
			Shape: MustPattern("dl-shape", dlShape, cs),
			Chains: map[Field]Chain{
				FieldCardNumber: cardChain(`\b(?:DL|Licen[cs]e)\b[ \t]*(?:No\.?|Number)`, dlShape),
			},
		},
		Profile{
			Type: VoterID,
			Signals: signals(
				voterShape,
				`ELECTION COMMISSION OF INDIA`,
				`\bVOTER ID\b`,
				`ELECTORAL PHOTO IDENTITY CARD`,
				`\bEPIC\b`,
				`ELECTION COMMISSION`,
			),
			Shape: MustPattern("voter-shape", voterShape, cs),
			Chains: map[Field]Chain{
				FieldCardNumber: cardChain(`\b(?:EPIC|Voter[ \t]*ID)\b(?:[ \t]*(?:No\.?|Number))?`, voterShape),
			},
		},
	)
}
