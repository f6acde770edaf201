package in

import (
	"context"

	reconstructdomain "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/dto"
)

// Usecase manages manuscript sessions from ingestion to export.
type Usecase interface {
	// IngestImage runs OCR on an uploaded image and registers a session.
	// When the OCR collaborator is unreachable it falls back to the demo
	// manuscript instead of failing the upload.
	IngestImage(ctx context.Context, filename string, image []byte) (dto.UploadOutput, error)

	// IngestDocument extracts text from a local PDF or plain-text file and
	// registers a session around it.
	IngestDocument(ctx context.Context, path string) (dto.UploadOutput, error)

	// Get returns a session by id.
	Get(ctx context.Context, id string) (dto.SessionOutput, error)

	// Snapshot returns the stored session with its raw domain content for
	// other modules.
	Snapshot(ctx context.Context, id string) (domain.Session, error)

	// AttachResult records the latest reconstruction outcome on a session.
	AttachResult(ctx context.Context, id string, result reconstructdomain.Result) error

	// Export renders a session and its latest result as "json" or "tei".
	// Exporting twice without a new run yields identical bytes.
	Export(ctx context.Context, id, format string) (dto.ExportOutput, error)

	// List returns projected session summaries.
	List(ctx context.Context) ([]dto.SummaryOutput, error)
}
