package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/service"
	sessiondomain "github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	sessionservice "github.com/pauljayakar30/Paninis-eye/internal/modules/session/service"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

func demoSession() sessiondomain.Session {
	text, tokens, masks := sessionservice.DemoContent()
	return sessiondomain.Session{ID: "sess_demo", SourceText: text, Tokens: tokens, Masks: masks}
}

func TestMaskedTextReplacesSelectedSpans(t *testing.T) {
	t.Parallel()
	session := demoSession()
	masked, err := service.MaskedText(session, []string{"mask_0", "mask_1"})
	if err != nil {
		t.Fatalf("mask: %v", err)
	}
	if strings.Count(masked, "<MASK>") != 2 {
		t.Fatalf("expected two masked spans, got %q", masked)
	}
	if strings.Contains(masked, "सीता") || strings.Contains(masked, "रक्षति") {
		t.Fatalf("damaged words must be replaced, got %q", masked)
	}
	if !strings.Contains(masked, "गच्छति") || !strings.Contains(masked, "धर्मो") {
		t.Fatalf("intact words must survive, got %q", masked)
	}
}

func TestMaskedTextRejectsUnknownMaskID(t *testing.T) {
	t.Parallel()
	_, err := service.MaskedText(demoSession(), []string{"mask_9"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown mask id must be invalid input, got %v", err)
	}
}

func TestMaskedTextWithoutSpansReturnsSource(t *testing.T) {
	t.Parallel()
	session := demoSession()
	session.Masks = append(session.Masks, sessiondomain.Mask{MaskID: "mask_blind"})
	masked, err := service.MaskedText(session, []string{"mask_blind"})
	if err != nil {
		t.Fatalf("mask: %v", err)
	}
	if masked != session.SourceText {
		t.Fatalf("spanless mask must leave the text intact")
	}
}
