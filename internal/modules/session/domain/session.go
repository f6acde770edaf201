package domain

import (
	"time"

	reconstructdomain "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/domain"
)

type Token struct {
	Text                string  `json:"text"`
	StartChar           int     `json:"start_char"`
	EndChar             int     `json:"end_char"`
	Confidence          float64 `json:"confidence"`
	IsSanskrit          bool    `json:"is_sanskrit"`
	NeedsReconstruction bool    `json:"needs_reconstruction"`
}

type Mask struct {
	MaskID     string     `json:"mask_id"`
	BBox       [4]float64 `json:"bbox"`
	Confidence float64    `json:"confidence"`
	DamageType string     `json:"type"`
	Severity   string     `json:"severity"`

	// Char span in the source text covered by the damage region, when the
	// OCR collaborator can provide it. EndChar 0 means unknown.
	StartChar int `json:"start_char,omitempty"`
	EndChar   int `json:"end_char,omitempty"`
}

type ConfidenceStats struct {
	AvgConfidence        float64 `json:"avg_confidence"`
	LowConfidenceRegions int     `json:"low_confidence_regions"`
	TotalWords           int     `json:"total_words"`
}

// Session is one manuscript under work. SourceText, Tokens and Masks are set
// once at ingestion; only LastResult is overwritten afterwards.
type Session struct {
	ID         string
	Filename   string
	SourceText string
	Tokens     []Token
	Masks      []Mask
	CreatedAt  time.Time
	LastResult *reconstructdomain.Result
}

// Summary is the projected read model of a session.
type Summary struct {
	ID           string
	TextPreview  string
	TokenCount   int
	MaskCount    int
	FallbackUsed bool
	UpdatedAt    time.Time
}

const lowConfidenceThreshold = 0.7

// ClassifySeverity grades a damage region by detection confidence.
func ClassifySeverity(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "minor"
	case confidence > 0.5:
		return "moderate"
	default:
		return "severe"
	}
}

// NeedsReconstruction reports whether a token's OCR confidence is low enough
// to flag it for restoration.
func NeedsReconstruction(confidence float64) bool {
	return confidence < lowConfidenceThreshold
}

// Stats aggregates token confidence for the upload response.
func Stats(tokens []Token) ConfidenceStats {
	stats := ConfidenceStats{TotalWords: len(tokens)}
	if len(tokens) == 0 {
		return stats
	}
	sum := 0.0
	for _, token := range tokens {
		sum += token.Confidence
		if NeedsReconstruction(token.Confidence) {
			stats.LowConfidenceRegions++
		}
	}
	stats.AvgConfidence = sum / float64(len(tokens))
	return stats
}

// Summarize builds the projection row for a session.
func (s Session) Summarize(now time.Time) Summary {
	preview := s.SourceText
	if len([]rune(preview)) > 80 {
		preview = string([]rune(preview)[:80])
	}
	summary := Summary{
		ID:          s.ID,
		TextPreview: preview,
		TokenCount:  len(s.Tokens),
		MaskCount:   len(s.Masks),
		UpdatedAt:   now,
	}
	if s.LastResult != nil {
		summary.FallbackUsed = s.LastResult.FallbackUsed
	}
	return summary
}
