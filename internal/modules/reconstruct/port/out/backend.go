package out

import (
	"context"

	kgdto "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/dto"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
)

// RawCandidate is one unscored restoration proposal from a backend.
type RawCandidate struct {
	Text            string  `json:"text"`
	LMScore         float64 `json:"lm_score"`
	ModelConfidence float64 `json:"model_confidence"`
	Epistemic       float64 `json:"epistemic_uncertainty"`
	Aleatoric       float64 `json:"aleatoric_uncertainty"`
}

// GenerationRequest asks a backend for restoration proposals for one masked
// text. KGContext carries grammar rules relevant to the masked span.
type GenerationRequest struct {
	MaskedText  string             `json:"masked_text"`
	KGContext   []kgdto.RuleOutput `json:"kg_context"`
	Strategy    domain.Strategy    `json:"strategy"`
	Temperature float64            `json:"temperature"`
	Count       int                `json:"count"`
}

// GenerationBackend produces candidates. Implementations classify failures
// as apperrors.ErrBackendUnavailable (cannot reach the model) or
// apperrors.ErrBackendError (model responded but unusably).
type GenerationBackend interface {
	Generate(ctx context.Context, req GenerationRequest) ([]RawCandidate, error)
}
