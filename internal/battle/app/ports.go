package app

import (
	"context"

	"Strategus/internal/battle/domain"
)

type BattleRepo interface {
	// GetBattle 连同参战方与申请一起装载。
	GetBattle(ctx context.Context, id int) (*domain.Battle, error)
	ListByPhases(ctx context.Context, phases ...domain.BattlePhase) ([]*domain.Battle, error)
	// SavePhaseTransition 原子落库：战斗行、参战方名额、申请状态一起提交。
	SavePhaseTransition(ctx context.Context, b *domain.Battle) error
}
