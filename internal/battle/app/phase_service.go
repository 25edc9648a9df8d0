package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Strategus/internal/battle/domain"
	"Strategus/modules/kit/logx"
)

// PhaseService 推进战斗阶段：
//
//	Preparation -> Hiring    集结期满，分配参战名额并拒绝待决申请
//	Hiring      -> Scheduled 招募期满，挑选开战时刻
//	Scheduled   -> Live      到点开战
type PhaseService struct {
	battleRepo  BattleRepo
	scheduler   *Scheduler
	log         logx.Logger
	now         func() time.Time
	battleSlots int
	initiation  time.Duration
	hiring      time.Duration
}

func NewPhaseService(battleRepo BattleRepo, scheduler *Scheduler, log logx.Logger,
	now func() time.Time, battleSlots int, initiation, hiring time.Duration) *PhaseService {
	return &PhaseService{
		battleRepo:  battleRepo,
		scheduler:   scheduler,
		log:         log,
		now:         now,
		battleSlots: battleSlots,
		initiation:  initiation,
		hiring:      hiring,
	}
}

// AdvancePhases 推进所有到期战斗，返回推进数量。
// 单场战斗推进失败只记录并跳过，不影响其余战斗。
func (s *PhaseService) AdvancePhases(ctx context.Context) (int, error) {
	battles, err := s.battleRepo.ListByPhases(ctx,
		domain.PhasePreparation, domain.PhaseHiring, domain.PhaseScheduled)
	if err != nil {
		return 0, err
	}

	now := s.now()
	advanced := 0
	for _, b := range battles {
		oldPhase := b.Phase
		switch b.Phase {
		case domain.PhasePreparation:
			if !b.CreatedAt.Add(s.initiation).Before(now) {
				continue
			}
			if err := DistributeParticipants(b.Fighters, s.battleSlots); err != nil {
				logx.ReportBizError(ctx, s.log,
					logx.NewBizLog("battle phase advance reject", string(domain.CodeNotEnoughSlots), ""),
					zap.Int("battle_id", b.ID))
				continue
			}
			for _, a := range b.PendingApplications() {
				a.Status = domain.ApplicationDeclined
			}
			b.Phase = domain.PhaseHiring

		case domain.PhaseHiring:
			if !b.CreatedAt.Add(s.initiation).Add(s.hiring).Before(now) {
				continue
			}
			if err := s.scheduler.ScheduleBattle(b); err != nil {
				logx.ReportSysError(ctx, s.log, logx.NewSysLog("battle schedule failed", err),
					zap.Int("battle_id", b.ID))
				continue
			}
			for _, a := range b.PendingApplications() {
				a.Status = domain.ApplicationDeclined
			}
			b.Phase = domain.PhaseScheduled

		case domain.PhaseScheduled:
			if b.ScheduledFor == nil || !b.ScheduledFor.Before(now) {
				continue
			}
			b.Phase = domain.PhaseLive
		default:
			continue
		}

		if err := s.battleRepo.SavePhaseTransition(ctx, b); err != nil {
			return advanced, err
		}
		advanced++
		s.log.WithContext(ctx).Info("battle phase advanced",
			zap.Int("battle_id", b.ID),
			zap.String("from", string(oldPhase)),
			zap.String("to", string(b.Phase)))
	}
	return advanced, nil
}
