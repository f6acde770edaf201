package service

import (
	"context"
	"strings"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/kg/domain"
	kgout "github.com/pauljayakar30/Paninis-eye/internal/modules/kg/port/out"
)

type KGService struct {
	store kgout.RuleStore
}

func NewKGService(store kgout.RuleStore) *KGService {
	return &KGService{store: store}
}

func (s *KGService) Lookup(ctx context.Context, span string) ([]domain.Rule, error) {
	span = strings.TrimSpace(span)
	if span == "" {
		return nil, nil
	}
	rules, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.AppliesTo(span) {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}
