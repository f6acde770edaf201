package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/kg/domain"
	kgout "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRuleStore struct {
	db *sql.DB
}

func NewSQLiteRuleStore(dbPath string) (kgout.RuleStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteRuleStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	if err := store.seed(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRuleStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sutras (
  id TEXT PRIMARY KEY,
  text TEXT NOT NULL,
  description TEXT NOT NULL,
  examples TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sutras table: %w", err)
	}
	return nil
}

// seed installs the demo sutra set on first open so lookups work out of the
// box; a populated table is left untouched.
func (s *SQLiteRuleStore) seed(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sutras`)
	var count int
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("count sutras: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, rule := range defaultSutras {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO sutras (id, text, description, examples) VALUES (?, ?, ?, ?)`,
			rule.ID, rule.Text, rule.Description, strings.Join(rule.Examples, "|"))
		if err != nil {
			return fmt.Errorf("seed sutra %s: %w", rule.ID, err)
		}
	}
	return nil
}

func (s *SQLiteRuleStore) All(ctx context.Context) ([]domain.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, description, examples FROM sutras ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sutras: %w", err)
	}
	defer rows.Close()

	var out []domain.Rule
	for rows.Next() {
		rule := domain.Rule{}
		var examples string
		if err := rows.Scan(&rule.ID, &rule.Text, &rule.Description, &examples); err != nil {
			return nil, fmt.Errorf("scan sutra: %w", err)
		}
		if examples != "" {
			rule.Examples = strings.Split(examples, "|")
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sutras: %w", err)
	}
	return out, nil
}

var defaultSutras = []domain.Rule{
	{
		ID:          "6.1.87",
		Text:        "आद्गुणः",
		Description: "The vowels a, i, u are replaced by their corresponding guna vowels",
		Examples:    []string{"अ + इ = ए", "अ + उ = ओ"},
	},
	{
		ID:          "6.1.101",
		Text:        "अकः सवर्णे दीर्घः",
		Description: "Similar simple vowels combine into the long vowel",
		Examples:    []string{"अ + अ = आ"},
	},
	{
		ID:          "8.4.68",
		Text:        "अ अ",
		Description: "Vowel sandhi rules for a and aa",
		Examples:    []string{"राम + अयम् = रामायम्"},
	},
	{
		ID:          "3.4.78",
		Text:        "तिप्तस्झि",
		Description: "Present tense verbal endings",
		Examples:    []string{"गच्छति", "तिष्ठति", "रक्षति"},
	},
}
