package dto

import "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"

const (
	ModeHard = "hard"
	ModeSoft = "soft"
)

type ReconstructInput struct {
	SessionID      string   `json:"session_id"`
	MaskIDs        []string `json:"mask_ids"`
	ConstraintMode string   `json:"constraint_mode"`
	NumCandidates  int      `json:"num_candidates"`
}

type CandidateOutput struct {
	CandidateID string             `json:"candidate_id"`
	Text        string             `json:"text"`
	IAST        string             `json:"iast"`
	MorphTags   []string           `json:"morphological_analysis"`
	CitedRules  []domain.CitedRule `json:"cited_sutras"`
	Translation domain.Translation `json:"translation"`
	Scores      domain.Scores      `json:"scores"`
	Strategy    string             `json:"strategy"`

	// GrammarNotes lists the violations a soft-mode run penalized the
	// candidate for. Empty for clean candidates.
	GrammarNotes []string `json:"grammar_notes,omitempty"`
}

type TimingsOutput struct {
	TotalMS          int64 `json:"total_ms"`
	ModelInferenceMS int64 `json:"model_inference_ms"`
	KGLookupMS       int64 `json:"kg_lookup_ms"`
}

type ReconstructOutput struct {
	SessionID    string            `json:"session_id"`
	MaskedText   string            `json:"masked_text"`
	Candidates   []CandidateOutput `json:"candidates"`
	Timings      TimingsOutput     `json:"timings"`
	FallbackUsed bool              `json:"fallback_used"`
}
