package service

import (
	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/devanagari"
)

// Tokenize splits ingested document text into word tokens with char spans.
// Document text carries no OCR confidence, so every token is trusted.
func Tokenize(text string) []domain.Token {
	var tokens []domain.Token
	runes := []rune(text)
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := devanagari.StripPunctuation(string(runes[start:end]))
		if word != "" {
			tokens = append(tokens, domain.Token{
				Text:       word,
				StartChar:  start,
				EndChar:    end,
				Confidence: 1.0,
				IsSanskrit: devanagari.ContainsDevanagari(word),
			})
		}
		start = -1
	}
	for i, r := range runes {
		if r == ' ' || r == '\n' || r == '\t' {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(runes))
	return tokens
}
