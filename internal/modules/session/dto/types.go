package dto

import "github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"

type UploadOutput struct {
	SessionID       string                 `json:"session_id"`
	Filename        string                 `json:"filename"`
	TextPreview     string                 `json:"text_preview"`
	Tokens          []domain.Token         `json:"tokens"`
	Masks           []domain.Mask          `json:"masks"`
	ConfidenceStats domain.ConfidenceStats `json:"confidence_stats"`
}

type SessionOutput struct {
	SessionID  string         `json:"session_id"`
	Filename   string         `json:"filename"`
	SourceText string         `json:"source_text"`
	Tokens     []domain.Token `json:"tokens"`
	Masks      []domain.Mask  `json:"masks"`
	CreatedAt  string         `json:"created_at"`
	HasResult  bool           `json:"has_result"`
}

type SummaryOutput struct {
	SessionID    string `json:"session_id"`
	TextPreview  string `json:"text_preview"`
	TokenCount   int    `json:"token_count"`
	MaskCount    int    `json:"mask_count"`
	FallbackUsed bool   `json:"fallback_used"`
	UpdatedAt    string `json:"updated_at"`
}

type ExportOutput struct {
	Filename  string `json:"filename"`
	MediaType string `json:"media_type"`
	Content   []byte `json:"content"`
}
