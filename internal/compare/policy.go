// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"
	"strings"

	"github.com/idmatch/idmatch-mcp/internal/identity"
)

// Verdict is the three-tier outcome of a comparison.
type Verdict string

const (
	Match   Verdict = "match"
	Partial Verdict = "partial"
	NoMatch Verdict = "no_match"
)

var verdictRank = map[Verdict]int{NoMatch: 0, Partial: 1, Match: 2}

// Policy labels pair verdicts. The zero Policy behaves like LenientPolicy.
type Policy struct {
	name  string
	label func(PairVerdict) Verdict
}

var (
	// LenientPolicy treats a shared date of birth or card number as proof of
	// identity and a shared name alone as partial evidence.
	LenientPolicy = Policy{name: "lenient", label: lenientLabel}

	// StrictPolicy requires both name and date of birth for a match; either
	// one alone is partial.
	StrictPolicy = Policy{name: "strict", label: strictLabel}
)

func lenientLabel(v PairVerdict) Verdict {
	switch {
	case v.DOBMatch || v.CardMatch:
		return Match
	case v.NameMatch:
		return Partial
	}
	return NoMatch
}

func strictLabel(v PairVerdict) Verdict {
	switch {
	case v.NameMatch && v.DOBMatch:
		return Match
	case v.NameMatch || v.DOBMatch:
		return Partial
	}
	return NoMatch
}

// ParsePolicy resolves a policy by name. The empty string selects the lenient
// policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LenientPolicy.name:
		return LenientPolicy, nil
	case StrictPolicy.name:
		return StrictPolicy, nil
	}
	return Policy{}, fmt.Errorf("unknown comparison policy %q", name)
}

// Name returns the policy's identifier.
func (p Policy) Name() string {
	if p.name == "" {
		return LenientPolicy.name
	}
	return p.name
}

// Label turns a pair verdict into a three-tier label.
func (p Policy) Label(v PairVerdict) Verdict {
	if p.label == nil {
		return lenientLabel(v)
	}
	return p.label(v)
}

// Label labels the verdict under p.
func (v PairVerdict) Label(p Policy) Verdict {
	return p.Label(v)
}

// AggregateVerdicts returns the best label any pair earns under p, or NoMatch
// when there are no pairs.
func AggregateVerdicts(verdicts []PairVerdict, p Policy) Verdict {
	best := NoMatch
	for _, v := range verdicts {
		if l := p.Label(v); verdictRank[l] > verdictRank[best] {
			best = l
		}
	}
	return best
}

// Aggregate compares all records pairwise and returns the overall verdict
// under p. The boolean is false, and no verdict is given, when fewer than two
// records are supplied. Unknown-typed records take part like any other.
func Aggregate(records []identity.Record, p Policy) (Verdict, bool) {
	if len(records) < 2 {
		return "", false
	}
	pairs := ComparePairs(records)
	verdicts := make([]PairVerdict, len(pairs))
	for i, pair := range pairs {
		verdicts[i] = pair.Verdict
	}
	return AggregateVerdicts(verdicts, p), true
}
