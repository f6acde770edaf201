package service_test

import (
	"testing"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/service"
)

func TestRankOrdersByCombinedScoreDescending(t *testing.T) {
	t.Parallel()
	candidates := []domain.Candidate{
		{Text: "भवति", Scores: domain.Scores{LM: 0.5, Grammar: 0.5, ModelConfidence: 0.5, KGCompliance: 0.5}},
		{Text: "गच्छति", Scores: domain.Scores{LM: 0.9, Grammar: 0.9, ModelConfidence: 0.9, KGCompliance: 0.9}},
		{Text: "पठति", Scores: domain.Scores{LM: 0.7, Grammar: 0.7, ModelConfidence: 0.7, KGCompliance: 0.7}},
	}
	ranked := service.Rank(candidates, 3)
	if ranked[0].Text != "गच्छति" || ranked[1].Text != "पठति" || ranked[2].Text != "भवति" {
		t.Fatalf("unexpected order: %s %s %s", ranked[0].Text, ranked[1].Text, ranked[2].Text)
	}
	for i, candidate := range ranked {
		if candidate.Scores.Combined != candidate.Scores.Combine() {
			t.Fatalf("candidate %d combined score not set", i)
		}
	}
	// Input order untouched.
	if candidates[0].Text != "भवति" {
		t.Fatalf("rank must not mutate its input")
	}
}

func TestRankIsStableForEqualScores(t *testing.T) {
	t.Parallel()
	same := domain.Scores{LM: 0.8, Grammar: 0.8, ModelConfidence: 0.8, KGCompliance: 0.8}
	candidates := []domain.Candidate{
		{Text: "वदति", Scores: same},
		{Text: "पठति", Scores: same},
		{Text: "भवति", Scores: same},
	}
	ranked := service.Rank(candidates, 3)
	if ranked[0].Text != "वदति" || ranked[1].Text != "पठति" || ranked[2].Text != "भवति" {
		t.Fatalf("equal scores must keep generation order, got %s %s %s", ranked[0].Text, ranked[1].Text, ranked[2].Text)
	}
}

func TestRankTruncatesToN(t *testing.T) {
	t.Parallel()
	candidates := []domain.Candidate{
		{Text: "a", Scores: domain.Scores{LM: 0.9}},
		{Text: "b", Scores: domain.Scores{LM: 0.8}},
		{Text: "c", Scores: domain.Scores{LM: 0.7}},
	}
	ranked := service.Rank(candidates, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ranked))
	}
}

func TestCombinedScoreWeights(t *testing.T) {
	t.Parallel()
	scores := domain.Scores{LM: 1, Grammar: 0, ModelConfidence: 0, KGCompliance: 0}
	if got := scores.Combine(); got != 0.3 {
		t.Fatalf("lm weight must be 0.3, got %v", got)
	}
	scores = domain.Scores{LM: 0, Grammar: 0, ModelConfidence: 1, KGCompliance: 1}
	if got := scores.Combine(); got != 0.4 {
		t.Fatalf("confidence and compliance weigh 0.2 each, got %v", got)
	}
}

func TestFallbackIsDeterministicAndBounded(t *testing.T) {
	t.Parallel()
	first := service.Fallback(2)
	second := service.Fallback(2)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 exemplars")
	}
	for i := range first {
		if first[i].Text != second[i].Text || first[i].Scores != second[i].Scores {
			t.Fatalf("fallback pool must be deterministic")
		}
		if first[i].Strategy != domain.StrategyFallback {
			t.Fatalf("fallback candidates must carry the fallback strategy")
		}
	}
	if len(service.Fallback(0)) == 0 || len(service.Fallback(50)) == 0 {
		t.Fatalf("fallback always yields at least one candidate")
	}
	all := service.Fallback(3)
	if all[0].Scores.Combined < all[1].Scores.Combined || all[1].Scores.Combined < all[2].Scores.Combined {
		t.Fatalf("exemplar pool must already be ordered by combined score")
	}
}
