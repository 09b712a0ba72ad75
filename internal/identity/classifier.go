// SPDX-License-Identifier: Apache-2.0

package identity

// Classification is the classifier's decision together with the signal score
// of every known type.
type Classification struct {
	Type     DocumentType         `json:"type" yaml:"type"`
	Scores   map[DocumentType]int `json:"scores" yaml:"scores"`
	Fallback bool                 `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// Classify returns the document type whose signals best match text.
func (r *Registry) Classify(text string) DocumentType {
	return r.ClassifyWithScores(text).Type
}

// ClassifyWithScores scores text against the signals of each type.
// The highest score wins; on a tie the type earlier in Priority wins. When no
// signal matches at all, the identifier shapes are tried in priority order and
// Fallback is set if one of them decided the type.
func (r *Registry) ClassifyWithScores(text string) Classification {
	c := Classification{Type: Unknown, Scores: make(map[DocumentType]int, len(priority))}

	best := 0
	for _, t := range priority {
		score := r.score(t, text)
		c.Scores[t] = score
		if score > best {
			best = score
			c.Type = t
		}
	}
	if best > 0 {
		return c
	}

	for _, t := range priority {
		if r.shapeMatches(t, text) {
			c.Type = t
			c.Fallback = true
			return c
		}
	}
	return c
}

// Classify classifies text with the default registry.
func Classify(text string) DocumentType {
	return defaultRegistry.Classify(text)
}

// ClassifyWithScores classifies text with the default registry.
func ClassifyWithScores(text string) Classification {
	return defaultRegistry.ClassifyWithScores(text)
}
