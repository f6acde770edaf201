package service

import "github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"

// DemoText is the sample manuscript served when the OCR collaborator is
// unreachable.
const DemoText = "राम वनं गच्छति। सीता गृहे तिष्ठति। धर्मो रक्षति रक्षितः।"

// DemoContent returns the demo manuscript with its tokens and damage masks.
// The masks cover सीता and रक्षति so a reconstruction run has work to do.
func DemoContent() (string, []domain.Token, []domain.Mask) {
	tokens := []domain.Token{
		{Text: "राम", StartChar: 0, EndChar: 3, Confidence: 0.95, IsSanskrit: true},
		{Text: "वनं", StartChar: 4, EndChar: 7, Confidence: 0.92, IsSanskrit: true},
		{Text: "गच्छति", StartChar: 8, EndChar: 14, Confidence: 0.89, IsSanskrit: true},
		{Text: "सीता", StartChar: 16, EndChar: 20, Confidence: 0.45, IsSanskrit: true, NeedsReconstruction: true},
		{Text: "गृहे", StartChar: 21, EndChar: 25, Confidence: 0.91, IsSanskrit: true},
		{Text: "तिष्ठति", StartChar: 26, EndChar: 33, Confidence: 0.88, IsSanskrit: true},
		{Text: "धर्मो", StartChar: 35, EndChar: 40, Confidence: 0.93, IsSanskrit: true},
		{Text: "रक्षति", StartChar: 41, EndChar: 47, Confidence: 0.38, IsSanskrit: true, NeedsReconstruction: true},
		{Text: "रक्षितः", StartChar: 48, EndChar: 55, Confidence: 0.9, IsSanskrit: true},
	}
	masks := []domain.Mask{
		{MaskID: "mask_0", BBox: [4]float64{120, 40, 180, 68}, Confidence: 0.42, DamageType: "water_damage", Severity: domain.ClassifySeverity(0.42), StartChar: 16, EndChar: 20},
		{MaskID: "mask_1", BBox: [4]float64{260, 88, 322, 116}, Confidence: 0.35, DamageType: "tear", Severity: domain.ClassifySeverity(0.35), StartChar: 41, EndChar: 47},
	}
	return DemoText, tokens, masks
}
