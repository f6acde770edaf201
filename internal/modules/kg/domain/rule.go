package domain

import "strings"

// Rule is one grammar rule (sutra) believed applicable to a text span.
type Rule struct {
	ID          string
	Text        string
	Description string
	Examples    []string
}

// AppliesTo reports whether any example of the rule shares a character with
// the span. Best-effort relevance, mirroring how the portal matched sutras.
func (r Rule) AppliesTo(span string) bool {
	for _, example := range r.Examples {
		for _, part := range strings.Fields(example) {
			for _, c := range part {
				if strings.ContainsRune(span, c) {
					return true
				}
			}
		}
	}
	return false
}
