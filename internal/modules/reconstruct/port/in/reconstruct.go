package in

import (
	"context"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/dto"
)

// Usecase runs one reconstruction over a session's masked regions. Backend
// trouble never surfaces to the caller: the run degrades to the exemplar
// pool and reports FallbackUsed instead. Only invalid input and unknown
// sessions fail the call.
type Usecase interface {
	Reconstruct(ctx context.Context, input dto.ReconstructInput) (dto.ReconstructOutput, error)
}
