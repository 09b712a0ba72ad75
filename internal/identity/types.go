// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"slices"
	"strings"
)

// DocumentType is the kind of identity document a text was read from.
type DocumentType string

const (
	Unknown        DocumentType = "unknown"
	Aadhaar        DocumentType = "aadhaar"
	PAN            DocumentType = "pan"
	Passport       DocumentType = "passport"
	DrivingLicense DocumentType = "driving_license"
	VoterID        DocumentType = "voter_id"
)

// priority is the tie-break order used by the classifier. It lists every
// known type exactly once; Unknown is never a candidate.
var priority = [...]DocumentType{Aadhaar, PAN, Passport, DrivingLicense, VoterID}

// Priority returns the classifier's tie-break order, highest first.
func Priority() []DocumentType {
	return slices.Clone(priority[:])
}

var documentLabels = map[DocumentType]string{
	Unknown:        "Unknown",
	Aadhaar:        "Aadhaar Card",
	PAN:            "PAN Card",
	Passport:       "Passport",
	DrivingLicense: "Driving License",
	VoterID:        "Voter ID",
}

// Label returns the human readable name of the document type.
func (t DocumentType) Label() string {
	if label, ok := documentLabels[t]; ok {
		return label
	}
	return documentLabels[Unknown]
}

// Known reports whether t is one of the five recognised document types.
func (t DocumentType) Known() bool {
	return slices.Contains(priority[:], t)
}

// ParseDocumentType accepts either the identifier ("driving_license") or the
// label ("Driving License") of a document type, case-insensitively.
func ParseDocumentType(s string) (DocumentType, bool) {
	s = strings.TrimSpace(s)
	for t, label := range documentLabels {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, label) {
			return t, true
		}
	}
	return Unknown, false
}

// Field is the name of an extracted value.
type Field string

const (
	FieldName        Field = "Name"
	FieldDateOfBirth Field = "DateOfBirth"
	FieldCardNumber  Field = "CardNumber"
)

// extractedFields is the order in which the extractor runs field chains.
var extractedFields = [...]Field{FieldName, FieldDateOfBirth, FieldCardNumber}

// CanonicalFields returns the fields the extractor looks for, in order.
func CanonicalFields() []Field {
	return slices.Clone(extractedFields[:])
}

// fieldAliases maps lower-cased, space-free spellings to canonical fields.
// The per-type card number keys all fold into CardNumber.
var fieldAliases = map[string]Field{
	"name":           FieldName,
	"dateofbirth":    FieldDateOfBirth,
	"dob":            FieldDateOfBirth,
	"cardnumber":     FieldCardNumber,
	"aadhaarnumber":  FieldCardNumber,
	"pannumber":      FieldCardNumber,
	"passportnumber": FieldCardNumber,
	"dlnumber":       FieldCardNumber,
	"voteridnumber":  FieldCardNumber,
}

// CanonicalField folds aliases such as "PANNumber" or "Date of Birth" onto the
// canonical field names. Unrecognised names are returned unchanged.
func CanonicalField(f Field) Field {
	key := strings.ToLower(strings.Join(strings.Fields(string(f)), ""))
	if canonical, ok := fieldAliases[key]; ok {
		return canonical
	}
	return f
}

// Fields maps field names to extracted values. A field that could not be
// extracted is absent; values are never empty.
type Fields map[Field]string

// Get returns the value stored for f.
func (f Fields) Get(field Field) (string, bool) {
	v, ok := f[field]
	return v, ok
}

func (f Fields) set(field Field, value string) {
	if value == "" {
		return
	}
	f[field] = value
}

// Record is the result of identifying one document.
type Record struct {
	Type    DocumentType `json:"type" yaml:"type"`
	Fields  Fields       `json:"fields" yaml:"fields"`
	RawText string       `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
}

// NewRecord builds a Record from caller supplied values, dropping empty ones.
func NewRecord(t DocumentType, fields map[Field]string, rawText string) Record {
	r := Record{Type: t, Fields: make(Fields, len(fields)), RawText: rawText}
	for k, v := range fields {
		r.Fields.set(k, strings.TrimSpace(v))
	}
	return r
}
