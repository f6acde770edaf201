package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	kgin "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/port/in"
	notifydto "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/dto"
	notifyin "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/port/in"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/dto"
	reconstructin "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/in"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/service"
	sessionin "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/in"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/clock"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

const defaultCandidates = 5

// Interactor coordinates one reconstruction run: resolve the session, mask
// the damaged spans, look up grammar context, generate, rank, persist and
// stream progress. Each run walks preparing, generating and ranking in
// order and ends exactly once, either complete, degraded or failed.
type Interactor struct {
	sessions     sessionin.Usecase
	kg           kgin.Usecase
	orchestrator *service.Orchestrator
	notifier     notifyin.Usecase
	clock        clock.Clock
	log          hclog.Logger
}

func NewInteractor(
	sessions sessionin.Usecase,
	kg kgin.Usecase,
	orchestrator *service.Orchestrator,
	notifier notifyin.Usecase,
	clk clock.Clock,
	log hclog.Logger,
) *Interactor {
	return &Interactor{sessions: sessions, kg: kg, orchestrator: orchestrator, notifier: notifier, clock: clk, log: log}
}

var _ reconstructin.Usecase = (*Interactor)(nil)

func (i *Interactor) Reconstruct(ctx context.Context, input dto.ReconstructInput) (dto.ReconstructOutput, error) {
	input, err := normalize(input)
	if err != nil {
		return dto.ReconstructOutput{}, err
	}

	// Session resolution and mask validation come before the first progress
	// event so bad requests fail without a partial stream.
	session, err := i.sessions.Snapshot(ctx, input.SessionID)
	if err != nil {
		return dto.ReconstructOutput{}, err
	}
	maskIDs := input.MaskIDs
	if len(maskIDs) == 0 {
		for _, mask := range session.Masks {
			maskIDs = append(maskIDs, mask.MaskID)
		}
	}
	maskedText, err := service.MaskedText(session, maskIDs)
	if err != nil {
		return dto.ReconstructOutput{}, err
	}

	started := i.clock.Now()
	i.progress(input.SessionID, 10, "Initializing", "Starting reconstruction")
	i.progress(input.SessionID, 25, "Preparing data", "Masking damaged regions")

	kgStarted := i.clock.Now()
	kgRules, err := i.kg.Lookup(ctx, maskedText)
	if err != nil {
		i.log.Warn("kg lookup failed, continuing without context", "session_id", input.SessionID, "error", err)
		kgRules = nil
	}
	kgElapsed := i.clock.Now().Sub(kgStarted)

	i.progress(input.SessionID, 50, "AI Processing", "Generating intelligent candidates")

	modelStarted := i.clock.Now()
	candidates, genErr := i.orchestrator.Collect(ctx, maskedText, kgRules, input.ConstraintMode, input.NumCandidates)
	modelElapsed := i.clock.Now().Sub(modelStarted)

	fallbackUsed := false
	switch {
	case genErr == nil:
		candidates = service.Rank(candidates, input.NumCandidates)
	case errors.Is(genErr, apperrors.ErrBackendUnavailable),
		errors.Is(genErr, apperrors.ErrBackendError),
		errors.Is(genErr, apperrors.ErrNoCandidates):
		i.log.Warn("generation degraded to exemplar pool", "session_id", input.SessionID, "error", genErr)
		candidates = service.Fallback(input.NumCandidates)
		fallbackUsed = true
	default:
		i.fail(input.SessionID, genErr)
		return dto.ReconstructOutput{}, genErr
	}

	for idx := range candidates {
		candidates[idx].ID = fmt.Sprintf("cand_%d", idx)
	}

	result := domain.Result{
		Candidates: candidates,
		Timings: domain.Timings{
			TotalMS:          i.clock.Now().Sub(started).Milliseconds(),
			ModelInferenceMS: modelElapsed.Milliseconds(),
			KGLookupMS:       kgElapsed.Milliseconds(),
		},
		FallbackUsed: fallbackUsed,
	}
	if err := i.sessions.AttachResult(ctx, input.SessionID, result); err != nil {
		i.fail(input.SessionID, err)
		return dto.ReconstructOutput{}, err
	}

	i.progress(input.SessionID, 100, "Complete", fmt.Sprintf("Generated %d candidates", len(candidates)))
	return toOutput(input.SessionID, maskedText, result), nil
}

func normalize(input dto.ReconstructInput) (dto.ReconstructInput, error) {
	if input.SessionID == "" {
		return input, fmt.Errorf("session id required: %w", apperrors.ErrInvalidInput)
	}
	if input.NumCandidates == 0 {
		input.NumCandidates = defaultCandidates
	}
	if input.NumCandidates < 0 {
		return input, fmt.Errorf("num_candidates must be positive: %w", apperrors.ErrInvalidInput)
	}
	switch input.ConstraintMode {
	case "":
		input.ConstraintMode = dto.ModeHard
	case dto.ModeHard, dto.ModeSoft:
	default:
		return input, fmt.Errorf("constraint_mode must be hard or soft: %w", apperrors.ErrInvalidInput)
	}
	return input, nil
}

func (i *Interactor) progress(sessionID string, percent int, stage, message string) {
	i.notifier.Publish(sessionID, notifydto.Event{
		Type:     notifydto.TypeProgress,
		Progress: percent,
		Stage:    stage,
		Message:  message,
	})
}

func (i *Interactor) fail(sessionID string, cause error) {
	i.notifier.Publish(sessionID, notifydto.Event{
		Type:    notifydto.TypeError,
		Message: cause.Error(),
	})
}

func toOutput(sessionID, maskedText string, result domain.Result) dto.ReconstructOutput {
	out := dto.ReconstructOutput{
		SessionID:  sessionID,
		MaskedText: maskedText,
		Timings: dto.TimingsOutput{
			TotalMS:          result.Timings.TotalMS,
			ModelInferenceMS: result.Timings.ModelInferenceMS,
			KGLookupMS:       result.Timings.KGLookupMS,
		},
		FallbackUsed: result.FallbackUsed,
	}
	for _, candidate := range result.Candidates {
		out.Candidates = append(out.Candidates, dto.CandidateOutput{
			CandidateID:  candidate.ID,
			Text:         candidate.Text,
			IAST:         candidate.IAST,
			MorphTags:    candidate.MorphTags,
			CitedRules:   candidate.CitedRules,
			Translation:  candidate.Translation,
			Scores:       candidate.Scores,
			Strategy:     string(candidate.Strategy),
			GrammarNotes: candidate.GrammarNotes,
		})
	}
	return out
}
