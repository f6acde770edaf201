package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	grammarout "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/adapter/out"
	grammarservice "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/service"
	kgdto "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/dto"
	notifydto "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/dto"
	notifyin "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/port/in"
	reconstructdomain "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/dto"
	reconstructout "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/out"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/service"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/usecase"
	sessiondomain "github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	sessiondto "github.com/pauljayakar30/Paninis-eye/internal/modules/session/dto"
	sessionservice "github.com/pauljayakar30/Paninis-eye/internal/modules/session/service"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

type fakeSessions struct {
	mu        sync.Mutex
	sessions  map[string]sessiondomain.Session
	attached  map[string]reconstructdomain.Result
	attachErr error
}

func newFakeSessions() *fakeSessions {
	text, tokens, masks := sessionservice.DemoContent()
	return &fakeSessions{
		sessions: map[string]sessiondomain.Session{
			"sess_demo": {ID: "sess_demo", SourceText: text, Tokens: tokens, Masks: masks},
		},
		attached: map[string]reconstructdomain.Result{},
	}
}

func (f *fakeSessions) IngestImage(context.Context, string, []byte) (sessiondto.UploadOutput, error) {
	return sessiondto.UploadOutput{}, errors.New("not used")
}

func (f *fakeSessions) IngestDocument(context.Context, string) (sessiondto.UploadOutput, error) {
	return sessiondto.UploadOutput{}, errors.New("not used")
}

func (f *fakeSessions) Get(context.Context, string) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, errors.New("not used")
}

func (f *fakeSessions) Snapshot(_ context.Context, id string) (sessiondomain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return sessiondomain.Session{}, apperrors.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessions) AttachResult(_ context.Context, id string, result reconstructdomain.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return f.attachErr
	}
	if _, ok := f.sessions[id]; !ok {
		return apperrors.ErrNotFound
	}
	f.attached[id] = result
	return nil
}

func (f *fakeSessions) Export(context.Context, string, string) (sessiondto.ExportOutput, error) {
	return sessiondto.ExportOutput{}, errors.New("not used")
}

func (f *fakeSessions) List(context.Context) ([]sessiondto.SummaryOutput, error) {
	return nil, errors.New("not used")
}

type fakeKG struct {
	rules []kgdto.RuleOutput
	err   error
}

func (f fakeKG) Lookup(context.Context, string) ([]kgdto.RuleOutput, error) {
	return f.rules, f.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifydto.Event
}

func (n *recordingNotifier) Attach(string, notifyin.Conn) {}

func (n *recordingNotifier) Detach(string, notifyin.Conn) {}

func (n *recordingNotifier) Publish(_ string, event notifydto.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type steadyBackend struct {
	mu    sync.Mutex
	texts []string
	next  int
	err   error
}

func (b *steadyBackend) Generate(context.Context, reconstructout.GenerationRequest) ([]reconstructout.RawCandidate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	text := b.texts[b.next%len(b.texts)]
	b.next++
	return []reconstructout.RawCandidate{{Text: text, LMScore: 0.85, ModelConfidence: 0.8}}, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newCoordinator(t *testing.T, sessions *fakeSessions, kg fakeKG, backend *steadyBackend, notifier *recordingNotifier) *usecase.Interactor {
	t.Helper()
	table, err := grammarout.NewYAMLRuleSource("").Load(context.Background())
	if err != nil {
		t.Fatalf("load rule table: %v", err)
	}
	orchestrator := service.NewOrchestrator(backend, grammarservice.NewValidator(table, false), 4, hclog.NewNullLogger())
	return usecase.NewInteractor(sessions, kg, orchestrator, notifier, fixedClock{at: time.Unix(1700000000, 0)}, hclog.NewNullLogger())
}

func progressValues(events []notifydto.Event) []int {
	var out []int
	for _, event := range events {
		if event.Type == notifydto.TypeProgress {
			out = append(out, event.Progress)
		}
	}
	return out
}

func TestReconstructHappyPathStreamsMonotonicProgress(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	notifier := &recordingNotifier{}
	backend := &steadyBackend{texts: []string{"गच्छति", "तिष्ठति", "भवति", "पठति"}}
	kg := fakeKG{rules: []kgdto.RuleOutput{{ID: "3.4.78", Text: "तिप्तस्झि", Description: "verbal endings"}}}
	coordinator := newCoordinator(t, sessions, kg, backend, notifier)

	out, err := coordinator.Reconstruct(context.Background(), dto.ReconstructInput{
		SessionID:      "sess_demo",
		MaskIDs:        []string{"mask_0", "mask_1"},
		ConstraintMode: dto.ModeHard,
		NumCandidates:  3,
	})
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if out.FallbackUsed {
		t.Fatalf("live backend must not report fallback")
	}
	if len(out.Candidates) == 0 || len(out.Candidates) > 3 {
		t.Fatalf("unexpected candidate count %d", len(out.Candidates))
	}
	for i, candidate := range out.Candidates {
		if candidate.CandidateID != fmt.Sprintf("cand_%d", i) {
			t.Fatalf("candidate ids must be positional, got %s", candidate.CandidateID)
		}
		if i > 0 && out.Candidates[i-1].Scores.Combined < candidate.Scores.Combined {
			t.Fatalf("candidates must be ordered by combined score")
		}
	}
	progress := progressValues(notifier.events)
	if len(progress) < 3 || progress[len(progress)-1] != 100 {
		t.Fatalf("run must end at 100, got %v", progress)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Fatalf("progress must be monotonic, got %v", progress)
		}
	}
	if _, ok := sessions.attached["sess_demo"]; !ok {
		t.Fatalf("result must be attached to the session")
	}
}

func TestReconstructUnknownSessionEmitsNoProgress(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	coordinator := newCoordinator(t, newFakeSessions(), fakeKG{}, &steadyBackend{texts: []string{"गच्छति"}}, notifier)
	_, err := coordinator.Reconstruct(context.Background(), dto.ReconstructInput{SessionID: "sess_missing"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("unknown session must not stream events, got %v", notifier.events)
	}
}

func TestReconstructDegradesWhenBackendDown(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	notifier := &recordingNotifier{}
	backend := &steadyBackend{err: fmt.Errorf("dial: %w", apperrors.ErrBackendUnavailable)}
	coordinator := newCoordinator(t, sessions, fakeKG{}, backend, notifier)

	out, err := coordinator.Reconstruct(context.Background(), dto.ReconstructInput{SessionID: "sess_demo", NumCandidates: 3})
	if err != nil {
		t.Fatalf("backend trouble must degrade, not fail: %v", err)
	}
	if !out.FallbackUsed {
		t.Fatalf("degraded run must report fallback")
	}
	if len(out.Candidates) != 3 {
		t.Fatalf("expected 3 exemplars, got %d", len(out.Candidates))
	}
	if out.Candidates[0].Strategy != string(reconstructdomain.StrategyFallback) {
		t.Fatalf("exemplars carry the fallback strategy, got %s", out.Candidates[0].Strategy)
	}
	progress := progressValues(notifier.events)
	if len(progress) == 0 || progress[len(progress)-1] != 100 {
		t.Fatalf("degraded run still completes, got %v", progress)
	}
	if result, ok := sessions.attached["sess_demo"]; !ok || !result.FallbackUsed {
		t.Fatalf("degraded result must be attached with the fallback flag")
	}
}

func TestReconstructPersistFailureEndsWithErrorEvent(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	sessions.attachErr = errors.New("projection store unavailable")
	notifier := &recordingNotifier{}
	backend := &steadyBackend{texts: []string{"गच्छति", "तिष्ठति", "भवति"}}
	coordinator := newCoordinator(t, sessions, fakeKG{}, backend, notifier)

	_, err := coordinator.Reconstruct(context.Background(), dto.ReconstructInput{SessionID: "sess_demo", NumCandidates: 2})
	if err == nil {
		t.Fatalf("persist failure must surface as an error")
	}
	events := notifier.events
	if len(events) == 0 {
		t.Fatalf("failed run must stream an error event")
	}
	last := events[len(events)-1]
	if last.Type != notifydto.TypeError || last.Message == "" {
		t.Fatalf("run must end with a described error event, got %+v", last)
	}
	for _, event := range events {
		if event.Type == notifydto.TypeProgress && event.Progress == 100 {
			t.Fatalf("failed run must not report completion, got %v", events)
		}
	}
}

func TestReconstructSoftModeSurfacesGrammarNotes(t *testing.T) {
	t.Parallel()
	sessions := newFakeSessions()
	backend := &steadyBackend{texts: []string{"गच्छति", "रामक्"}}
	coordinator := newCoordinator(t, sessions, fakeKG{}, backend, &recordingNotifier{})

	out, err := coordinator.Reconstruct(context.Background(), dto.ReconstructInput{
		SessionID:      "sess_demo",
		ConstraintMode: dto.ModeSoft,
		NumCandidates:  2,
	})
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	var flagged bool
	for _, candidate := range out.Candidates {
		if candidate.Text != "रामक्" {
			continue
		}
		flagged = true
		if len(candidate.GrammarNotes) == 0 {
			t.Fatalf("penalized candidate must carry its violations, got %+v", candidate)
		}
	}
	if !flagged {
		t.Fatalf("soft mode must keep the violating candidate, got %+v", out.Candidates)
	}
}

func TestReconstructValidatesInput(t *testing.T) {
	t.Parallel()
	coordinator := newCoordinator(t, newFakeSessions(), fakeKG{}, &steadyBackend{texts: []string{"गच्छति"}}, &recordingNotifier{})
	cases := []dto.ReconstructInput{
		{},
		{SessionID: "sess_demo", ConstraintMode: "fuzzy"},
		{SessionID: "sess_demo", NumCandidates: -1},
		{SessionID: "sess_demo", MaskIDs: []string{"mask_404"}},
	}
	for i, input := range cases {
		if _, err := coordinator.Reconstruct(context.Background(), input); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}
