package app

import (
	"context"

	"Strategus/internal/settlement/domain"
)

// SettlementService 维护据点基础数据，查询侧供部队调度与视野投影使用。
type SettlementService struct {
	settlementRepo SettlementRepo
}

func NewSettlementService(settlementRepo SettlementRepo) *SettlementService {
	return &SettlementService{settlementRepo: settlementRepo}
}

func (s *SettlementService) Get(ctx context.Context, id int) (*domain.Settlement, error) {
	return s.settlementRepo.GetSettlement(ctx, id)
}

func (s *SettlementService) List(ctx context.Context) ([]*domain.Settlement, error) {
	return s.settlementRepo.ListSettlements(ctx)
}

// Save 新增或更新据点。未知据点等级在进入存储前拒绝。
func (s *SettlementService) Save(ctx context.Context, settlement *domain.Settlement) (*domain.Settlement, error) {
	if !settlement.Type.Valid() {
		return nil, domain.ErrSettlementInvalidType.WithData("type", string(settlement.Type))
	}

	if settlement.ID != 0 {
		// 更新前确认存在，避免 Save 把更新悄悄变成插入
		if _, err := s.settlementRepo.GetSettlement(ctx, settlement.ID); err != nil {
			return nil, err
		}
	}
	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		return nil, err
	}
	return settlement, nil
}
