package in

import (
	"context"

	reconstructdto "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/dto"
	reconstructin "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/in"
)

type CLIHandler struct {
	usecase reconstructin.Usecase
}

func NewCLIHandler(usecase reconstructin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Reconstruct(ctx context.Context, sessionID string, maskIDs []string, mode string, n int) (reconstructdto.ReconstructOutput, error) {
	return h.usecase.Reconstruct(ctx, reconstructdto.ReconstructInput{
		SessionID:      sessionID,
		MaskIDs:        maskIDs,
		ConstraintMode: mode,
		NumCandidates:  n,
	})
}
