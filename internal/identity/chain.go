// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"strings"
	"unicode"
)

// AcceptFunc cleans a raw capture and reports whether the cleaned value may
// be stored.
type AcceptFunc func(candidate string) (string, bool)

// Chain is an ordered list of extraction patterns for one field.
// Patterns are tried in order; the first capture accepted by Accept wins.
type Chain struct {
	Patterns []Pattern
	Accept   AcceptFunc
}

// Eval runs the chain over text. It returns false when every pattern either
// failed to match or produced a value that Accept rejected.
func (c Chain) Eval(text string) (string, bool) {
	accept := c.Accept
	if accept == nil {
		accept = AcceptTrimmed
	}
	for _, p := range c.Patterns {
		candidate, ok := p.Find(text)
		if !ok || candidate == "" {
			continue
		}
		if v, ok := accept(candidate); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// AcceptTrimmed accepts any capture that is non-blank after trimming.
func AcceptTrimmed(candidate string) (string, bool) {
	v := strings.TrimSpace(candidate)
	return v, v != ""
}

// AcceptCompact removes every whitespace rune from the capture.
func AcceptCompact(candidate string) (string, bool) {
	v := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, candidate)
	return v, v != ""
}

// minNameLength is the shortest cleaned name the extractor keeps.
const minNameLength = 3

// headerWords are tokens of card headers and labels.
var headerWords = map[string]struct{}{
	"GOVERNMENT": {}, "GOVT": {}, "OF": {}, "INDIA": {},
	"INCOME": {}, "TAX": {}, "DEPARTMENT": {}, "REPUBLIC": {}, "MINISTRY": {},
	"ELECTION": {}, "COMMISSION": {}, "ELECTORAL": {}, "AUTHORITY": {},
	"IDENTIFICATION": {}, "IDENTITY": {}, "PERMANENT": {}, "ACCOUNT": {},
	"NUMBER": {}, "CARD": {}, "PASSPORT": {}, "LICENCE": {}, "LICENSE": {},
	"DRIVING": {}, "TRANSPORT": {}, "UNION": {}, "NAME": {}, "FATHER": {},
	"FATHERS": {}, "MOTHER": {}, "MOTHERS": {}, "HUSBAND": {}, "DOB": {},
	"BIRTH": {}, "DATE": {}, "GENDER": {}, "SIGNATURE": {}, "ADDRESS": {},
}

// headerPhrases are printed card headers. BHARAT and SARKAR are common names
// on their own, so they only count together.
var headerPhrases = []string{
	"BHARAT SARKAR",
	"GOVERNMENT OF INDIA",
	"GOVT OF INDIA",
	"INCOME TAX DEPARTMENT",
	"REPUBLIC OF INDIA",
	"ELECTION COMMISSION",
	"UNIQUE IDENTIFICATION AUTHORITY",
	"PERMANENT ACCOUNT NUMBER",
}

// AcceptName cleans a name capture. It rejects captures shorter than three
// characters, captures made only of header words and captures holding a
// header phrase.
func AcceptName(candidate string) (string, bool) {
	v := cleanName(candidate)
	if len(v) < minNameLength {
		return "", false
	}
	if isHeader(v) {
		return "", false
	}
	return v, true
}

func isHeader(name string) bool {
	words := strings.Fields(strings.ToUpper(name))
	allHeader := true
	for i, word := range words {
		words[i] = strings.Trim(word, ".")
		if _, ok := headerWords[words[i]]; !ok {
			allHeader = false
		}
	}
	if allHeader {
		return true
	}
	joined := " " + strings.Join(words, " ") + " "
	for _, phrase := range headerPhrases {
		if strings.Contains(joined, " "+phrase+" ") {
			return true
		}
	}
	return false
}

// cleanName keeps ASCII letters, spaces and dots and collapses whitespace.
func cleanName(s string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r == '.':
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(kept), " ")
}
