package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/semaphore"

	grammarin "github.com/pauljayakar30/Paninis-eye/internal/modules/grammar/port/in"
	kgdto "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/dto"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/dto"
	reconstructout "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/out"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/devanagari"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/translit"
)

const (
	rawPoolFactor  = 2
	maxRetries     = 2
	retryBaseDelay = 100 * time.Millisecond

	grammarBaseScore       = 0.95
	grammarViolationWeight = 0.15
	kgComplianceWithRules  = 0.9
	kgComplianceBare       = 0.7
)

// Orchestrator fans generation out across strategies, validates the raw pool
// and returns scored, deduplicated candidates. Backend concurrency is
// bounded by the semaphore.
type Orchestrator struct {
	backend   reconstructout.GenerationBackend
	validator grammarin.Validator
	sem       *semaphore.Weighted
	log       hclog.Logger
}

func NewOrchestrator(backend reconstructout.GenerationBackend, validator grammarin.Validator, maxConcurrent int64, log hclog.Logger) *Orchestrator {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Orchestrator{
		backend:   backend,
		validator: validator,
		sem:       semaphore.NewWeighted(maxConcurrent),
		log:       log,
	}
}

// Collect gathers up to n validated candidates for maskedText. Roughly 2n
// raw proposals are requested, one strategy per call round-robin. Hard mode
// drops candidates with grammar violations; soft mode keeps them with a
// penalized grammar score. Duplicate surface forms keep the first
// occurrence. Errors are the taxonomy sentinels only.
func (o *Orchestrator) Collect(ctx context.Context, maskedText string, kgRules []kgdto.RuleOutput, mode string, n int) ([]domain.Candidate, error) {
	if n < 1 {
		return nil, fmt.Errorf("candidate count must be positive: %w", apperrors.ErrInvalidInput)
	}
	total := rawPoolFactor * n
	rotation := domain.NewRotation()

	type slot struct {
		strategy domain.Strategy
		raws     []reconstructout.RawCandidate
		err      error
	}
	slots := make([]slot, total)
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		slots[i].strategy = rotation.Next()
		wg.Add(1)
		go func(s *slot) {
			defer wg.Done()
			if err := o.sem.Acquire(ctx, 1); err != nil {
				s.err = fmt.Errorf("acquire backend slot: %w", apperrors.ErrBackendUnavailable)
				return
			}
			defer o.sem.Release(1)
			s.raws, s.err = o.generateWithRetry(ctx, reconstructout.GenerationRequest{
				MaskedText:  maskedText,
				KGContext:   kgRules,
				Strategy:    s.strategy,
				Temperature: s.strategy.Temperature(),
				Count:       1,
			})
		}(&slots[i])
	}
	wg.Wait()

	seen := make(map[string]bool)
	var accepted []domain.Candidate
	var lastErr error
	failures := 0
	for _, s := range slots {
		if s.err != nil {
			failures++
			lastErr = s.err
			continue
		}
		for _, raw := range s.raws {
			candidate, ok := o.score(raw, s.strategy, kgRules, mode)
			if !ok {
				continue
			}
			if seen[candidate.Text] {
				continue
			}
			seen[candidate.Text] = true
			accepted = append(accepted, candidate)
			if len(accepted) == n {
				return accepted, nil
			}
		}
	}
	if failures == total {
		o.log.Error("all generation calls failed", "calls", total, "error", lastErr)
		if errors.Is(lastErr, apperrors.ErrBackendUnavailable) {
			return nil, lastErr
		}
		return nil, fmt.Errorf("generation failed: %w", apperrors.ErrBackendError)
	}
	if len(accepted) == 0 {
		return nil, fmt.Errorf("pool of %d raw candidates: %w", total, apperrors.ErrNoCandidates)
	}
	return accepted, nil
}

func (o *Orchestrator) generateWithRetry(ctx context.Context, req reconstructout.GenerationRequest) ([]reconstructout.RawCandidate, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("generation canceled: %w", apperrors.ErrBackendUnavailable)
			case <-time.After(retryBaseDelay * time.Duration(attempt)):
			}
		}
		raws, err := o.backend.Generate(ctx, req)
		if err == nil {
			return raws, nil
		}
		lastErr = err
		if !errors.Is(err, apperrors.ErrBackendUnavailable) {
			break
		}
		o.log.Warn("generation attempt failed", "strategy", req.Strategy, "attempt", attempt, "error", err)
	}
	return nil, lastErr
}

// score validates and enriches one raw proposal. The boolean is false when
// hard mode drops it.
func (o *Orchestrator) score(raw reconstructout.RawCandidate, strategy domain.Strategy, kgRules []kgdto.RuleOutput, mode string) (domain.Candidate, bool) {
	text := strings.Join(strings.Fields(raw.Text), " ")
	if text == "" {
		return domain.Candidate{}, false
	}
	tokens := tokenizeWords(text)
	_, violations := o.validator.Validate(tokens)
	if len(violations) > 0 && mode == dto.ModeHard {
		return domain.Candidate{}, false
	}
	grammar := grammarBaseScore - grammarViolationWeight*float64(len(violations))
	if grammar < 0 {
		grammar = 0
	}
	kgCompliance := kgComplianceBare
	if len(kgRules) > 0 {
		kgCompliance = kgComplianceWithRules
	}
	cited := make([]domain.CitedRule, 0, len(kgRules))
	for _, rule := range kgRules {
		cited = append(cited, domain.CitedRule{ID: rule.ID, Description: rule.Description})
	}
	return domain.Candidate{
		Text:        text,
		IAST:        translit.ToIAST(text),
		MorphTags:   domain.SegmentMorphology(text),
		CitedRules:  cited,
		Translation: domain.Gloss(text),
		Scores: domain.Scores{
			LM:              raw.LMScore,
			Grammar:         grammar,
			ModelConfidence: raw.ModelConfidence,
			KGCompliance:    kgCompliance,
			Epistemic:       raw.Epistemic,
			Aleatoric:       raw.Aleatoric,
		},
		Strategy:     strategy,
		GrammarNotes: violations,
	}, true
}

func tokenizeWords(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		word := devanagari.StripPunctuation(field)
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
