package out

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/domain"
	grammarout "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/port/out"
)

//go:embed rules.yaml
var defaultRules []byte

// YAMLRuleSource loads the rule table from a YAML file, falling back to the
// embedded default table when no path is configured.
type YAMLRuleSource struct {
	path string
}

func NewYAMLRuleSource(path string) grammarout.RuleSource {
	return &YAMLRuleSource{path: path}
}

func (s *YAMLRuleSource) Load(_ context.Context) (domain.RuleTable, error) {
	raw := defaultRules
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return domain.RuleTable{}, fmt.Errorf("read rule table: %w", err)
		}
		raw = b
	}
	table := domain.RuleTable{}
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return domain.RuleTable{}, fmt.Errorf("unmarshal rule table: %w", err)
	}
	if table.Version == 0 {
		return domain.RuleTable{}, fmt.Errorf("rule table missing version")
	}
	if len(table.Endings) == 0 {
		return domain.RuleTable{}, fmt.Errorf("rule table has no endings")
	}
	return table, nil
}
