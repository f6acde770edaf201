package dto

type RuleOutput struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
}
