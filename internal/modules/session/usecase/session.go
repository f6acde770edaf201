package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	reconstructdomain "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/dto"
	sessionin "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/in"
	sessionout "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/out"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/service"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/clock"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/id"
)

// Interactor implements the session usecase over the store, projector and
// the OCR collaborator.
type Interactor struct {
	store     sessionout.Store
	projector sessionout.Projector
	ocr       sessionout.OCRClient
	pages     sessionout.PageReader
	clock     clock.Clock
	ids       id.Generator
	log       hclog.Logger
}

func NewInteractor(
	store sessionout.Store,
	projector sessionout.Projector,
	ocr sessionout.OCRClient,
	pages sessionout.PageReader,
	clk clock.Clock,
	ids id.Generator,
	log hclog.Logger,
) *Interactor {
	return &Interactor{store: store, projector: projector, ocr: ocr, pages: pages, clock: clk, ids: ids, log: log}
}

var _ sessionin.Usecase = (*Interactor)(nil)

func (i *Interactor) IngestImage(ctx context.Context, filename string, image []byte) (dto.UploadOutput, error) {
	if filename == "" || len(image) == 0 {
		return dto.UploadOutput{}, fmt.Errorf("filename and image required: %w", apperrors.ErrInvalidInput)
	}
	result, err := i.ocr.Recognize(ctx, filename, image)
	if err != nil {
		// The upload still succeeds on the demo manuscript so the rest of
		// the pipeline stays usable without the collaborator.
		i.log.Warn("ocr unavailable, serving demo manuscript", "error", err)
		text, tokens, masks := service.DemoContent()
		result = sessionout.OCRResult{Text: text, Tokens: tokens, Masks: masks}
	}
	return i.register(ctx, filename, result)
}

func (i *Interactor) IngestDocument(ctx context.Context, path string) (dto.UploadOutput, error) {
	if path == "" {
		return dto.UploadOutput{}, fmt.Errorf("document path required: %w", apperrors.ErrInvalidInput)
	}
	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		extracted, err := i.pages.ExtractText(path)
		if err != nil {
			return dto.UploadOutput{}, fmt.Errorf("extract pdf text: %w", err)
		}
		text = extracted
	} else {
		raw, err := os.ReadFile(path)
		if err != nil {
			return dto.UploadOutput{}, fmt.Errorf("read document: %w", err)
		}
		text = string(raw)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return dto.UploadOutput{}, fmt.Errorf("document has no text: %w", apperrors.ErrInvalidInput)
	}
	return i.register(ctx, filepath.Base(path), sessionout.OCRResult{
		Text:   text,
		Tokens: service.Tokenize(text),
	})
}

func (i *Interactor) register(ctx context.Context, filename string, result sessionout.OCRResult) (dto.UploadOutput, error) {
	now := i.clock.Now()
	session := domain.Session{
		ID:         "sess_" + i.ids.New(),
		Filename:   filename,
		SourceText: result.Text,
		Tokens:     result.Tokens,
		Masks:      result.Masks,
		CreatedAt:  now,
	}
	if err := i.store.Create(ctx, session); err != nil {
		return dto.UploadOutput{}, fmt.Errorf("store session: %w", err)
	}
	if err := i.projector.UpsertSession(ctx, session.Summarize(now)); err != nil {
		i.log.Warn("project session", "session_id", session.ID, "error", err)
	}
	preview := session.SourceText
	if len([]rune(preview)) > 200 {
		preview = string([]rune(preview)[:200])
	}
	return dto.UploadOutput{
		SessionID:       session.ID,
		Filename:        session.Filename,
		TextPreview:     preview,
		Tokens:          session.Tokens,
		Masks:           session.Masks,
		ConfidenceStats: domain.Stats(session.Tokens),
	}, nil
}

func (i *Interactor) Get(ctx context.Context, sessionID string) (dto.SessionOutput, error) {
	session, err := i.Snapshot(ctx, sessionID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return dto.SessionOutput{
		SessionID:  session.ID,
		Filename:   session.Filename,
		SourceText: session.SourceText,
		Tokens:     session.Tokens,
		Masks:      session.Masks,
		CreatedAt:  session.CreatedAt.UTC().Format(time.RFC3339),
		HasResult:  session.LastResult != nil,
	}, nil
}

func (i *Interactor) Snapshot(ctx context.Context, sessionID string) (domain.Session, error) {
	if sessionID == "" {
		return domain.Session{}, fmt.Errorf("session id required: %w", apperrors.ErrInvalidInput)
	}
	session, err := i.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return session, nil
}

func (i *Interactor) AttachResult(ctx context.Context, sessionID string, result reconstructdomain.Result) error {
	if err := i.store.AttachResult(ctx, sessionID, result); err != nil {
		return fmt.Errorf("attach result to %s: %w", sessionID, err)
	}
	session, err := i.store.Get(ctx, sessionID)
	if err == nil {
		if perr := i.projector.UpsertSession(ctx, session.Summarize(i.clock.Now())); perr != nil {
			i.log.Warn("project session", "session_id", sessionID, "error", perr)
		}
	}
	return nil
}

func (i *Interactor) Export(ctx context.Context, sessionID, format string) (dto.ExportOutput, error) {
	session, err := i.Snapshot(ctx, sessionID)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	filename, mediaType, content, err := service.Export(session, format)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Filename: filename, MediaType: mediaType, Content: content}, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.SummaryOutput, error) {
	summaries, err := i.projector.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]dto.SummaryOutput, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, dto.SummaryOutput{
			SessionID:    summary.ID,
			TextPreview:  summary.TextPreview,
			TokenCount:   summary.TokenCount,
			MaskCount:    summary.MaskCount,
			FallbackUsed: summary.FallbackUsed,
			UpdatedAt:    summary.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
