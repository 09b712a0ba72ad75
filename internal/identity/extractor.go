// SPDX-License-Identifier: Apache-2.0

package identity

// Extract runs the chains registered for t over text. Fields whose chain is
// missing or yields nothing are left out of the result.
func (r *Registry) Extract(t DocumentType, text string) Fields {
	fields := make(Fields, len(extractedFields))
	for _, f := range extractedFields {
		chain, ok := r.Chain(t, f)
		if !ok {
			continue
		}
		if v, ok := chain.Eval(text); ok {
			fields.set(f, v)
		}
	}
	return fields
}

// Extract runs the default registry's chains for t over text.
func Extract(t DocumentType, text string) Fields {
	return defaultRegistry.Extract(t, text)
}
