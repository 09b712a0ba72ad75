// SPDX-License-Identifier: Apache-2.0

// Package normalize canonicalizes extracted values before comparison.
package normalize

import (
	"strings"
	"unicode"
)

// Name upper-cases s, deletes every rune other than A-Z, whitespace and dots,
// and collapses whitespace runs to single spaces. Name is idempotent.
func Name(s string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r == '.':
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, strings.ToUpper(s))
	return strings.Join(strings.Fields(kept), " ")
}
