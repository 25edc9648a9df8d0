package app

import (
	"context"
	"math"
	"time"

	"Strategus/internal/party/domain"
)

// TroopsService 结算据点内募兵的兵力增长。
type TroopsService struct {
	partyRepo          PartyRepo
	recruitmentPerHour float64
	maxPartyTroops     float64
}

func NewTroopsService(partyRepo PartyRepo, recruitmentPerHour, maxPartyTroops float64) *TroopsService {
	return &TroopsService{
		partyRepo:          partyRepo,
		recruitmentPerHour: recruitmentPerHour,
		maxPartyTroops:     maxPartyTroops,
	}
}

// GrowTroops 给所有募兵中的部队补算 delta 时长的兵力，封顶上限。
// 返回结算的部队数量。
func (s *TroopsService) GrowTroops(ctx context.Context, delta time.Duration) (int, error) {
	parties, err := s.partyRepo.ListParties(ctx)
	if err != nil {
		return 0, err
	}

	recruits := delta.Hours() * s.recruitmentPerHour
	var recruiting []*domain.Party
	for _, p := range parties {
		if p.Status != domain.StatusRecruitingInSettlement {
			continue
		}
		p.Troops = math.Min(p.Troops+recruits, s.maxPartyTroops)
		recruiting = append(recruiting, p)
	}
	if len(recruiting) == 0 {
		return 0, nil
	}

	if err := s.partyRepo.SaveParties(ctx, recruiting...); err != nil {
		return 0, err
	}
	return len(recruiting), nil
}
