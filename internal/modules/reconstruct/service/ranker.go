package service

import (
	"sort"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
)

// Rank orders candidates by combined score, highest first, and keeps at most
// n. The sort is stable so equal scores keep generation order. The input
// slice is not modified.
func Rank(candidates []domain.Candidate, n int) []domain.Candidate {
	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)
	for i := range ranked {
		ranked[i].Scores.Combined = ranked[i].Scores.Combine()
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Scores.Combined > ranked[b].Scores.Combined
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
