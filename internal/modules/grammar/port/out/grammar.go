package out

import (
	"context"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/domain"
)

// RuleSource loads a versioned rule table.
type RuleSource interface {
	Load(ctx context.Context) (domain.RuleTable, error)
}
