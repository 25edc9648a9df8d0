package app

import (
	"context"

	"Strategus/internal/settlement/domain"
)

type SettlementRepo interface {
	GetSettlement(ctx context.Context, id int) (*domain.Settlement, error)
	ListSettlements(ctx context.Context) ([]*domain.Settlement, error)
	SaveSettlement(ctx context.Context, s *domain.Settlement) error
}
