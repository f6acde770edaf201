package service

import (
	"fmt"
	"sort"

	sessiondomain "github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

const maskToken = "<MASK>"

// MaskedText replaces the char spans of the selected damage masks with the
// mask token. Masks without a known span are skipped; an unknown mask id is
// invalid input.
func MaskedText(session sessiondomain.Session, maskIDs []string) (string, error) {
	byID := make(map[string]sessiondomain.Mask, len(session.Masks))
	for _, mask := range session.Masks {
		byID[mask.MaskID] = mask
	}
	var selected []sessiondomain.Mask
	for _, maskID := range maskIDs {
		mask, ok := byID[maskID]
		if !ok {
			return "", fmt.Errorf("unknown mask id %s: %w", maskID, apperrors.ErrInvalidInput)
		}
		if mask.EndChar > mask.StartChar {
			selected = append(selected, mask)
		}
	}
	if len(selected) == 0 {
		return session.SourceText, nil
	}
	sort.Slice(selected, func(a, b int) bool { return selected[a].StartChar < selected[b].StartChar })

	runes := []rune(session.SourceText)
	var out []rune
	cursor := 0
	for _, mask := range selected {
		start, end := mask.StartChar, mask.EndChar
		if start < cursor || end > len(runes) {
			continue
		}
		out = append(out, runes[cursor:start]...)
		out = append(out, []rune(maskToken)...)
		cursor = end
	}
	out = append(out, runes[cursor:]...)
	return string(out), nil
}
