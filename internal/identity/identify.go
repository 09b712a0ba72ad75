// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var preprocessReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"–", "-",
	"—", "-",
	"\\", "/",
)

// Preprocess folds compatibility characters (full-width digits, ligatures)
// with NFKC and normalizes line endings, dashes and backslashes so that OCR
// output matches the registry patterns. Line structure is preserved.
func Preprocess(text string) string {
	return preprocessReplacer.Replace(norm.NFKC.String(text))
}

// Identify preprocesses text, classifies it and extracts its fields.
// RawText keeps the text exactly as supplied.
func (r *Registry) Identify(text string) Record {
	record, _ := r.Analyze(text)
	return record
}

// Analyze is Identify that also returns the classifier scores.
func (r *Registry) Analyze(text string) (Record, Classification) {
	clean := Preprocess(text)
	c := r.ClassifyWithScores(clean)
	return Record{
		Type:    c.Type,
		Fields:  r.Extract(c.Type, clean),
		RawText: text,
	}, c
}

// Identify identifies text with the default registry.
func Identify(text string) Record {
	return defaultRegistry.Identify(text)
}
