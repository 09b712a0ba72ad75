// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"maps"
	"slices"
)

// Profile holds everything the registry knows about one document type.
type Profile struct {
	Type DocumentType
	// Signals are scored by the classifier; each matching pattern adds one.
	Signals []Pattern
	// Shape is the single identifier-shape pattern consulted when no type
	// scores any signal.
	Shape  Pattern
	Chains map[Field]Chain
}

// Registry is a read-only table of signals and extraction chains per type.
// A Registry is safe for concurrent use.
type Registry struct {
	profiles map[DocumentType]Profile
	generic  map[Field]Chain
}

// NewRegistry builds a registry from profiles. generic chains are used for
// fields a profile does not define and for Unknown documents. The inputs are
// copied, so later changes by the caller do not affect the registry.
func NewRegistry(generic map[Field]Chain, profiles ...Profile) *Registry {
	r := &Registry{
		profiles: make(map[DocumentType]Profile, len(profiles)),
		generic:  maps.Clone(generic),
	}
	for _, p := range profiles {
		p.Signals = slices.Clone(p.Signals)
		p.Chains = maps.Clone(p.Chains)
		r.profiles[p.Type] = p
	}
	return r
}

// Signals returns a copy of the signal patterns registered for t.
func (r *Registry) Signals(t DocumentType) []Pattern {
	return slices.Clone(r.profiles[t].Signals)
}

// Chain returns the extraction chain for field f of type t, falling back to
// the generic chain. The boolean is false when neither exists.
func (r *Registry) Chain(t DocumentType, f Field) (Chain, bool) {
	if p, ok := r.profiles[t]; ok {
		if c, ok := p.Chains[f]; ok {
			return c, true
		}
	}
	c, ok := r.generic[f]
	return c, ok
}

// score counts the signals of t that match text.
func (r *Registry) score(t DocumentType, text string) int {
	n := 0
	for _, s := range r.profiles[t].Signals {
		if s.Match(text) {
			n++
		}
	}
	return n
}

func (r *Registry) shapeMatches(t DocumentType, text string) bool {
	p, ok := r.profiles[t]
	return ok && p.Shape.Match(text)
}

var defaultRegistry = newDefaultRegistry()

// DefaultRegistry returns the built-in registry for the five Indian identity
// documents.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
