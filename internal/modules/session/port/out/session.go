package out

import (
	"context"

	reconstructdomain "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
)

// Store holds live sessions. Get returns apperrors.ErrNotFound for unknown or
// evicted sessions. AttachResult must serialize writes per session.
type Store interface {
	Create(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	AttachResult(ctx context.Context, id string, result reconstructdomain.Result) error
}

// Projector maintains the queryable read model of sessions.
type Projector interface {
	UpsertSession(ctx context.Context, summary domain.Summary) error
	List(ctx context.Context) ([]domain.Summary, error)
}

// OCRResult is the recognized content of one manuscript image.
type OCRResult struct {
	Text   string
	Tokens []domain.Token
	Masks  []domain.Mask
}

// OCRClient talks to the external recognition collaborator.
type OCRClient interface {
	Recognize(ctx context.Context, filename string, image []byte) (OCRResult, error)
}

// PageReader extracts plain text from a document file.
type PageReader interface {
	ExtractText(path string) (string, error)
}
