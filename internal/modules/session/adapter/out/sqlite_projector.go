package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	sessionout "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/out"
)

// SQLiteProjector keeps the queryable session read model on disk. Live
// session state stays in the memory store; this table survives restarts for
// listing and review.
type SQLiteProjector struct {
	db *sql.DB
}

func NewSQLiteProjector(dbPath string) (*SQLiteProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	p := &SQLiteProjector{db: db}
	if err := p.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

var _ sessionout.Projector = (*SQLiteProjector)(nil)

func (p *SQLiteProjector) ensureSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id            TEXT PRIMARY KEY,
			text_preview  TEXT NOT NULL,
			token_count   INTEGER NOT NULL,
			mask_count    INTEGER NOT NULL,
			fallback_used INTEGER NOT NULL DEFAULT 0,
			updated_at    TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure sessions schema: %w", err)
	}
	return nil
}

func (p *SQLiteProjector) UpsertSession(ctx context.Context, summary domain.Summary) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (id, text_preview, token_count, mask_count, fallback_used, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text_preview = excluded.text_preview,
			token_count = excluded.token_count,
			mask_count = excluded.mask_count,
			fallback_used = excluded.fallback_used,
			updated_at = excluded.updated_at`,
		summary.ID, summary.TextPreview, summary.TokenCount, summary.MaskCount,
		boolToInt(summary.FallbackUsed), summary.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", summary.ID, err)
	}
	return nil
}

func (p *SQLiteProjector) List(ctx context.Context) ([]domain.Summary, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, text_preview, token_count, mask_count, fallback_used, updated_at
		FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var summaries []domain.Summary
	for rows.Next() {
		var summary domain.Summary
		var fallback int
		var updated string
		if err := rows.Scan(&summary.ID, &summary.TextPreview, &summary.TokenCount,
			&summary.MaskCount, &fallback, &updated); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		summary.FallbackUsed = fallback != 0
		if ts, perr := time.Parse(time.RFC3339, updated); perr == nil {
			summary.UpdatedAt = ts
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (p *SQLiteProjector) Close() error {
	return p.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
