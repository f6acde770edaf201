package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"

	grammarout "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/adapter/out"
	grammarin "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/port/in"
	grammarservice "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/service"
	kgdto "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/dto"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/dto"
	reconstructout "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/out"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/service"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

type scriptedBackend struct {
	mu    sync.Mutex
	texts []string
	next  int
	err   error
}

func (b *scriptedBackend) Generate(_ context.Context, _ reconstructout.GenerationRequest) ([]reconstructout.RawCandidate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	text := b.texts[b.next%len(b.texts)]
	b.next++
	return []reconstructout.RawCandidate{{Text: text, LMScore: 0.8, ModelConfidence: 0.75}}, nil
}

func validator(t *testing.T, strict bool) grammarin.Validator {
	t.Helper()
	table, err := grammarout.NewYAMLRuleSource("").Load(context.Background())
	if err != nil {
		t.Fatalf("load rule table: %v", err)
	}
	return grammarservice.NewValidator(table, strict)
}

func TestCollectDedupesAndStopsAtN(t *testing.T) {
	t.Parallel()
	backend := &scriptedBackend{texts: []string{"गच्छति", "गच्छति", "तिष्ठति", "भवति"}}
	orchestrator := service.NewOrchestrator(backend, validator(t, false), 2, hclog.NewNullLogger())
	candidates, err := orchestrator.Collect(context.Background(), "राम वनं <MASK>", nil, dto.ModeHard, 2)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	seen := map[string]bool{}
	for _, candidate := range candidates {
		if seen[candidate.Text] {
			t.Fatalf("duplicate surface form %s survived", candidate.Text)
		}
		seen[candidate.Text] = true
		if candidate.IAST == "" {
			t.Fatalf("candidate %s missing transliteration", candidate.Text)
		}
	}
}

func TestCollectHardModeDropsViolations(t *testing.T) {
	t.Parallel()
	// रामक् ends in a halanta outside the ending table and never survives
	// hard mode.
	backend := &scriptedBackend{texts: []string{"रामक्", "गच्छति"}}
	orchestrator := service.NewOrchestrator(backend, validator(t, false), 2, hclog.NewNullLogger())
	candidates, err := orchestrator.Collect(context.Background(), "<MASK>", nil, dto.ModeHard, 2)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, candidate := range candidates {
		if candidate.Text == "रामक्" {
			t.Fatalf("hard mode must drop invalid candidates")
		}
	}
}

func TestCollectSoftModePenalizesViolations(t *testing.T) {
	t.Parallel()
	backend := &scriptedBackend{texts: []string{"रामक्"}}
	orchestrator := service.NewOrchestrator(backend, validator(t, false), 2, hclog.NewNullLogger())
	candidates, err := orchestrator.Collect(context.Background(), "<MASK>", nil, dto.ModeSoft, 1)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("soft mode must keep the candidate")
	}
	candidate := candidates[0]
	if len(candidate.GrammarNotes) == 0 {
		t.Fatalf("violations must be recorded")
	}
	clean := &scriptedBackend{texts: []string{"गच्छति"}}
	cleanOrchestrator := service.NewOrchestrator(clean, validator(t, false), 2, hclog.NewNullLogger())
	cleanCandidates, err := cleanOrchestrator.Collect(context.Background(), "<MASK>", nil, dto.ModeSoft, 1)
	if err != nil {
		t.Fatalf("collect clean: %v", err)
	}
	if candidate.Scores.Grammar >= cleanCandidates[0].Scores.Grammar {
		t.Fatalf("violating candidate must score below a clean one")
	}
}

func TestCollectAllInvalidYieldsNoCandidates(t *testing.T) {
	t.Parallel()
	backend := &scriptedBackend{texts: []string{"रामक्"}}
	orchestrator := service.NewOrchestrator(backend, validator(t, false), 2, hclog.NewNullLogger())
	_, err := orchestrator.Collect(context.Background(), "<MASK>", nil, dto.ModeHard, 2)
	if !errors.Is(err, apperrors.ErrNoCandidates) {
		t.Fatalf("expected no-candidates error, got %v", err)
	}
}

func TestCollectBackendDownSurfacesUnavailable(t *testing.T) {
	t.Parallel()
	backend := &scriptedBackend{err: fmt.Errorf("dial: %w", apperrors.ErrBackendUnavailable)}
	orchestrator := service.NewOrchestrator(backend, validator(t, false), 2, hclog.NewNullLogger())
	_, err := orchestrator.Collect(context.Background(), "<MASK>", nil, dto.ModeHard, 1)
	if !errors.Is(err, apperrors.ErrBackendUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestCollectAttachesKGContext(t *testing.T) {
	t.Parallel()
	backend := &scriptedBackend{texts: []string{"गच्छति"}}
	orchestrator := service.NewOrchestrator(backend, validator(t, false), 2, hclog.NewNullLogger())
	rules := []kgdto.RuleOutput{{ID: "3.4.78", Text: "तिप्तस्झि", Description: "verbal endings"}}
	candidates, err := orchestrator.Collect(context.Background(), "<MASK>", rules, dto.ModeHard, 1)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(candidates[0].CitedRules) != 1 || candidates[0].CitedRules[0].ID != "3.4.78" {
		t.Fatalf("kg context must be cited, got %+v", candidates[0].CitedRules)
	}
	if candidates[0].Scores.KGCompliance <= 0.7 {
		t.Fatalf("kg-backed candidates score higher compliance")
	}
}
