package in

import (
	"context"

	sessiondto "github.com/pauljayakar30/Paninis-eye/internal/modules/session/dto"
	sessionin "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) IngestDocument(ctx context.Context, path string) (sessiondto.UploadOutput, error) {
	return h.usecase.IngestDocument(ctx, path)
}

func (h CLIHandler) Get(ctx context.Context, sessionID string) (sessiondto.SessionOutput, error) {
	return h.usecase.Get(ctx, sessionID)
}

func (h CLIHandler) Export(ctx context.Context, sessionID, format string) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, sessionID, format)
}

func (h CLIHandler) List(ctx context.Context) ([]sessiondto.SummaryOutput, error) {
	return h.usecase.List(ctx)
}
