package in

import (
	"context"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/kg/dto"
)

// Usecase answers best-effort rule lookups; an empty result is not an error.
type Usecase interface {
	Lookup(ctx context.Context, span string) ([]dto.RuleOutput, error)
}
