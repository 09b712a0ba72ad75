// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"github.com/dlclark/regexp2"
)

// Pattern is a compiled expression with a stable name used in diagnostics.
type Pattern struct {
	Name string
	re   *regexp2.Regexp
}

// MustPattern compiles expr and panics if it is invalid. It is meant for
// package-level tables.
func MustPattern(name, expr string, opts regexp2.RegexOptions) Pattern {
	return Pattern{Name: name, re: regexp2.MustCompile(expr, opts)}
}

// Match reports whether the pattern matches anywhere in text.
func (p Pattern) Match(text string) bool {
	if p.re == nil {
		return false
	}
	ok, err := p.re.MatchString(text)
	return err == nil && ok
}

// Find returns the first capture group of the leftmost match, or the whole
// match when the expression has no capture group.
func (p Pattern) Find(text string) (string, bool) {
	if p.re == nil {
		return "", false
	}
	m, err := p.re.FindStringMatch(text)
	if err != nil || m == nil {
		return "", false
	}
	if groups := m.Groups(); len(groups) > 1 {
		return groups[1].String(), true
	}
	return m.String(), true
}
