// SPDX-License-Identifier: Apache-2.0

// Package compare decides whether identity records describe the same person.
package compare

import (
	"maps"
	"slices"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/idmatch/idmatch-mcp/internal/identity"
	"github.com/idmatch/idmatch-mcp/internal/normalize"
)

// FieldComparison is the outcome for one field present in both records.
type FieldComparison struct {
	Field  identity.Field `json:"field" yaml:"field"`
	Value1 string         `json:"value1" yaml:"value1"`
	Value2 string         `json:"value2" yaml:"value2"`
	Match  bool           `json:"match" yaml:"match"`
}

// PairVerdict holds the field level result of comparing two records.
// It does not carry a label; a Policy turns it into one.
type PairVerdict struct {
	NameMatch      bool `json:"name_match" yaml:"name_match"`
	DOBMatch       bool `json:"dob_match" yaml:"dob_match"`
	CardMatch      bool `json:"card_match" yaml:"card_match"`
	TotalFields    int  `json:"total_fields" yaml:"total_fields"`
	MatchingFields int  `json:"matching_fields" yaml:"matching_fields"`
	// NameSimilarity is the Jaro-Winkler similarity of the normalized names,
	// or zero when either name is missing. It is advisory and never affects
	// NameMatch.
	NameSimilarity float64           `json:"name_similarity" yaml:"name_similarity"`
	Comparisons    []FieldComparison `json:"comparisons" yaml:"comparisons"`
}

// canonicalOrder lists the fields reported first; any other shared field
// follows in lexical order.
var canonicalOrder = []identity.Field{identity.FieldName, identity.FieldDateOfBirth, identity.FieldCardNumber}

// Compare compares every field present and non-empty in both records.
// Names are compared after normalize.Name, dates after normalize.Date and
// every other field verbatim. Card number aliases such as PANNumber are
// compared as CardNumber. Compare is symmetric in its field flags.
func Compare(a, b identity.Record) PairVerdict {
	fa, fb := canonicalFields(a.Fields), canonicalFields(b.Fields)

	v := PairVerdict{Comparisons: []FieldComparison{}}
	for _, field := range sharedFields(fa, fb) {
		raw1, raw2 := fa[field], fb[field]
		n1, n2 := normalizeField(field, raw1), normalizeField(field, raw2)
		if n1 == "" || n2 == "" {
			continue
		}

		match := n1 == n2
		v.TotalFields++
		if match {
			v.MatchingFields++
		}
		v.Comparisons = append(v.Comparisons, FieldComparison{Field: field, Value1: raw1, Value2: raw2, Match: match})

		switch field {
		case identity.FieldName:
			v.NameMatch = match
			v.NameSimilarity = strutil.Similarity(n1, n2, metrics.NewJaroWinkler())
		case identity.FieldDateOfBirth:
			v.DOBMatch = match
		case identity.FieldCardNumber:
			v.CardMatch = match
		}
	}
	return v
}

func normalizeField(field identity.Field, value string) string {
	switch field {
	case identity.FieldName:
		return normalize.Name(value)
	case identity.FieldDateOfBirth:
		return normalize.Date(value)
	}
	return value
}

// canonicalFields folds aliases onto canonical names. A canonical key wins
// over an alias of the same field.
func canonicalFields(fields identity.Fields) map[identity.Field]string {
	out := make(map[identity.Field]string, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		v := fields[k]
		if v == "" {
			continue
		}
		key := identity.CanonicalField(k)
		if _, exists := out[key]; exists && key != k {
			continue
		}
		out[key] = v
	}
	return out
}

func sharedFields(a, b map[identity.Field]string) []identity.Field {
	var extra []identity.Field
	for k := range a {
		if _, ok := b[k]; ok && !slices.Contains(canonicalOrder, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)

	shared := make([]identity.Field, 0, len(canonicalOrder)+len(extra))
	for _, k := range canonicalOrder {
		_, inA := a[k]
		_, inB := b[k]
		if inA && inB {
			shared = append(shared, k)
		}
	}
	return append(shared, extra...)
}

// Pair is the comparison of the records at positions First and Second.
type Pair struct {
	First   int         `json:"first" yaml:"first"`
	Second  int         `json:"second" yaml:"second"`
	Verdict PairVerdict `json:"verdict" yaml:"verdict"`
}

// ComparePairs compares every unordered pair of records, in index order.
func ComparePairs(records []identity.Record) []Pair {
	if len(records) < 2 {
		return nil
	}
	pairs := make([]Pair, 0, len(records)*(len(records)-1)/2)
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			pairs = append(pairs, Pair{First: i, Second: j, Verdict: Compare(records[i], records[j])})
		}
	}
	return pairs
}
