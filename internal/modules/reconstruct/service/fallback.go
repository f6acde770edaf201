package service

import "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"

// exemplars is the curated pool served when generation degrades. Scores are
// fixed so degraded runs are reproducible; KG compliance and model
// confidence sit below what a live backend would report.
var exemplars = []domain.Candidate{
	{
		Text:      "गच्छति",
		IAST:      "gacchati",
		MorphTags: []string{"गम्", "छ", "ति"},
		CitedRules: []domain.CitedRule{
			{ID: "3.1.44", Description: "cli luṅi"},
			{ID: "3.4.78", Description: "tiptasjhisip - verbal endings"},
		},
		Translation: domain.Gloss("गच्छति"),
		Scores:      domain.Scores{LM: 0.94, Grammar: 0.95, ModelConfidence: 0.7, KGCompliance: 0.6, Epistemic: 0.3, Aleatoric: 0.25},
		Strategy:    domain.StrategyFallback,
	},
	{
		Text:      "तिष्ठति",
		IAST:      "tiṣṭhati",
		MorphTags: []string{"स्था", "ति"},
		CitedRules: []domain.CitedRule{
			{ID: "6.4.112", Description: "śnābhyastayoḥ ātaḥ"},
			{ID: "3.4.78", Description: "tiptasjhisip - verbal endings"},
		},
		Translation: domain.Gloss("तिष्ठति"),
		Scores:      domain.Scores{LM: 0.91, Grammar: 0.94, ModelConfidence: 0.68, KGCompliance: 0.58, Epistemic: 0.32, Aleatoric: 0.27},
		Strategy:    domain.StrategyFallback,
	},
	{
		Text:      "रक्षति",
		IAST:      "rakṣati",
		MorphTags: []string{"रक्ष्", "ति"},
		CitedRules: []domain.CitedRule{
			{ID: "3.4.78", Description: "tiptasjhisip - verbal endings"},
		},
		Translation: domain.Gloss("रक्षति"),
		Scores:      domain.Scores{LM: 0.88, Grammar: 0.92, ModelConfidence: 0.66, KGCompliance: 0.56, Epistemic: 0.35, Aleatoric: 0.3},
		Strategy:    domain.StrategyFallback,
	},
}

// Fallback returns up to n exemplar candidates, always at least one. The
// pool is deterministic: same n, same candidates, same order.
func Fallback(n int) []domain.Candidate {
	if n <= 0 || n > len(exemplars) {
		n = len(exemplars)
	}
	out := make([]domain.Candidate, n)
	copy(out, exemplars[:n])
	for i := range out {
		out[i].Scores.Combined = out[i].Scores.Combine()
	}
	return out
}
