package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	reconstructdomain "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	sessionout "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/out"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/service"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/usecase"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

type fakeStore struct {
	sessions map[string]domain.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]domain.Session{}}
}

func (s *fakeStore) Create(_ context.Context, session domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeStore) Get(_ context.Context, id string) (domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, apperrors.ErrNotFound
	}
	return session, nil
}

func (s *fakeStore) AttachResult(_ context.Context, id string, result reconstructdomain.Result) error {
	session, ok := s.sessions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	session.LastResult = &result
	s.sessions[id] = session
	return nil
}

type fakeProjector struct {
	upserts []domain.Summary
}

func (p *fakeProjector) UpsertSession(_ context.Context, summary domain.Summary) error {
	p.upserts = append(p.upserts, summary)
	return nil
}

func (p *fakeProjector) List(_ context.Context) ([]domain.Summary, error) {
	return p.upserts, nil
}

type fakeOCR struct {
	result sessionout.OCRResult
	err    error
}

func (o fakeOCR) Recognize(context.Context, string, []byte) (sessionout.OCRResult, error) {
	return o.result, o.err
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type fixedID struct{ value string }

func (g fixedID) New() string { return g.value }

func newInteractor(store *fakeStore, projector *fakeProjector, ocr fakeOCR) *usecase.Interactor {
	return usecase.NewInteractor(
		store, projector, ocr, nil,
		fixedClock{at: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
		fixedID{value: "abc123"},
		hclog.NewNullLogger(),
	)
}

func TestIngestImageRegistersSession(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	projector := &fakeProjector{}
	ocr := fakeOCR{result: sessionout.OCRResult{
		Text: "राम वनं गच्छति",
		Tokens: []domain.Token{
			{Text: "राम", Confidence: 0.95},
			{Text: "वनं", Confidence: 0.4},
		},
	}}
	out, err := newInteractor(store, projector, ocr).IngestImage(context.Background(), "leaf.png", []byte{1})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if out.SessionID != "sess_abc123" {
		t.Fatalf("unexpected session id %s", out.SessionID)
	}
	if out.ConfidenceStats.TotalWords != 2 || out.ConfidenceStats.LowConfidenceRegions != 1 {
		t.Fatalf("unexpected stats %+v", out.ConfidenceStats)
	}
	if len(projector.upserts) != 1 {
		t.Fatalf("expected one projection upsert, got %d", len(projector.upserts))
	}
}

func TestIngestImageFallsBackToDemoWhenOCRDown(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	ocr := fakeOCR{err: errors.New("connection refused")}
	out, err := newInteractor(store, &fakeProjector{}, ocr).IngestImage(context.Background(), "leaf.png", []byte{1})
	if err != nil {
		t.Fatalf("ingest must survive an unreachable ocr service: %v", err)
	}
	if out.TextPreview != service.DemoText {
		t.Fatalf("expected demo manuscript, got %q", out.TextPreview)
	}
	if len(out.Masks) != 2 {
		t.Fatalf("demo manuscript carries two masks, got %d", len(out.Masks))
	}
}

func TestIngestImageRejectsEmptyUpload(t *testing.T) {
	t.Parallel()
	_, err := newInteractor(newFakeStore(), &fakeProjector{}, fakeOCR{}).IngestImage(context.Background(), "", nil)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestGetUnknownSessionIsNotFound(t *testing.T) {
	t.Parallel()
	_, err := newInteractor(newFakeStore(), &fakeProjector{}, fakeOCR{}).Get(context.Background(), "sess_missing")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExportIsIdempotentBetweenRuns(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	interactor := newInteractor(store, &fakeProjector{}, fakeOCR{err: errors.New("down")})
	out, err := interactor.IngestImage(context.Background(), "leaf.png", []byte{1})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := interactor.AttachResult(context.Background(), out.SessionID, reconstructdomain.Result{
		Candidates:   []reconstructdomain.Candidate{{ID: "cand_0", Text: "गच्छति", Scores: reconstructdomain.Scores{Combined: 0.95}}},
		FallbackUsed: true,
	}); err != nil {
		t.Fatalf("attach result: %v", err)
	}
	first, err := interactor.Export(context.Background(), out.SessionID, service.FormatJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	second, err := interactor.Export(context.Background(), out.SessionID, service.FormatJSON)
	if err != nil {
		t.Fatalf("export again: %v", err)
	}
	if !bytes.Equal(first.Content, second.Content) {
		t.Fatalf("repeated export must be byte-identical")
	}
	tei, err := interactor.Export(context.Background(), out.SessionID, service.FormatTEI)
	if err != nil {
		t.Fatalf("tei export: %v", err)
	}
	if !bytes.Contains(tei.Content, []byte("<TEI")) || !bytes.Contains(tei.Content, []byte("गच्छति")) {
		t.Fatalf("tei export must wrap the candidates")
	}
	if _, err := interactor.Export(context.Background(), out.SessionID, "csv"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unsupported format must be invalid input, got %v", err)
	}
}
