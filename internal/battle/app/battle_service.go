package app

import (
	"context"

	"Strategus/internal/battle/domain"
)

type BattleReader interface {
	GetBattle(ctx context.Context, id int) (*domain.Battle, error)
	// ListVisible 返回尚未结束的战斗。
	ListVisible(ctx context.Context) ([]*domain.Battle, error)
}

// BattleService 是战斗的只读查询面。
type BattleService struct {
	reader BattleReader
}

func NewBattleService(reader BattleReader) *BattleService {
	return &BattleService{reader: reader}
}

func (s *BattleService) Get(ctx context.Context, id int) (*domain.Battle, error) {
	return s.reader.GetBattle(ctx, id)
}

func (s *BattleService) ListVisible(ctx context.Context) ([]*domain.Battle, error) {
	return s.reader.ListVisible(ctx)
}
