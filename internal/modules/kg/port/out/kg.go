package out

import (
	"context"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/kg/domain"
)

type RuleStore interface {
	All(ctx context.Context) ([]domain.Rule, error)
}
