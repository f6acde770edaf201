package usecase

import (
	"context"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/kg/dto"
	kgin "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/port/in"
	"github.com/pauljayakar30/Paninis-eye/internal/modules/kg/service"
)

type Interactor struct {
	svc *service.KGService
}

func NewInteractor(svc *service.KGService) kgin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Lookup(ctx context.Context, span string) ([]dto.RuleOutput, error) {
	rules, err := i.svc.Lookup(ctx, span)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RuleOutput, 0, len(rules))
	for _, rule := range rules {
		out = append(out, dto.RuleOutput{ID: rule.ID, Text: rule.Text, Description: rule.Description})
	}
	return out, nil
}
