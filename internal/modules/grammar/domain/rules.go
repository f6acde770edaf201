package domain

// RuleTable holds the linguistic constraint data the validator runs against.
// Tables are versioned and loaded from YAML so rule updates do not require a
// code change.
type RuleTable struct {
	Version int `yaml:"version"`

	// Endings maps a grammatical category (gender or case label) to the
	// word endings recognized as well formed for that category.
	Endings map[string][]string `yaml:"endings"`

	// VowelSandhi lists vowel pairs that must combine at a word boundary,
	// keyed by the mandated combined form.
	VowelSandhi []SandhiRule `yaml:"vowel_sandhi"`
}

type SandhiRule struct {
	First  string `yaml:"first"`
	Second string `yaml:"second"`
	Result string `yaml:"result"`
}

// SandhiResult returns the mandated combination for a vowel pair, if the
// pair is covered by the table.
func (t RuleTable) SandhiResult(first, second rune) (string, bool) {
	for _, rule := range t.VowelSandhi {
		if []rune(rule.First)[0] == first && []rune(rule.Second)[0] == second {
			return rule.Result, true
		}
	}
	return "", false
}
