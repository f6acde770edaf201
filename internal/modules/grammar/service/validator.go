package service

import (
	"fmt"
	"strings"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/domain"
	grammarin "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/port/in"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/devanagari"
)

const virama = "्"

// Validator checks token sequences against a loaded rule table. Unknown
// endings and uncovered vowel pairs pass by default; StrictUnknown flips
// that to default-deny.
type Validator struct {
	table  domain.RuleTable
	strict bool
}

func NewValidator(table domain.RuleTable, strictUnknown bool) grammarin.Validator {
	return &Validator{table: table, strict: strictUnknown}
}

func (v *Validator) CheckMorphology(token string) bool {
	if token == "" {
		return false
	}
	for _, endings := range v.table.Endings {
		for _, ending := range endings {
			if strings.HasSuffix(token, ending) {
				return true
			}
		}
	}
	// A halanta ending outside the recognized set is malformed even under
	// the permissive default.
	if strings.HasSuffix(token, virama) {
		return false
	}
	return !v.strict
}

func (v *Validator) CheckSandhi(first, second string) bool {
	if first == "" || second == "" {
		return true
	}
	last, lastVowel := devanagari.FinalSound(first)
	initial, initialVowel := devanagari.InitialSound(second)
	if !lastVowel || !initialVowel {
		return true
	}
	// A covered vowel pair left uncombined across the boundary violates the
	// mandated combination.
	if _, covered := v.table.SandhiResult(last, initial); covered {
		return false
	}
	return !v.strict
}

func (v *Validator) Validate(tokens []string) (bool, []string) {
	var violations []string
	for _, token := range tokens {
		if !v.CheckMorphology(token) {
			violations = append(violations, fmt.Sprintf("invalid morphology: %s", token))
		}
	}
	for i := 0; i+1 < len(tokens); i++ {
		if !v.CheckSandhi(tokens[i], tokens[i+1]) {
			violations = append(violations, fmt.Sprintf("invalid sandhi: %s + %s", tokens[i], tokens[i+1]))
		}
	}
	return len(violations) == 0, violations
}
