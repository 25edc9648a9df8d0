package app

import (
	"context"
	"testing"
	"time"

	"Strategus/internal/battle/domain"
	"Strategus/modules/kit/logx"
)

type fakeBattleRepo struct {
	battles []*domain.Battle
	saved   []*domain.Battle
}

func (r *fakeBattleRepo) GetBattle(ctx context.Context, id int) (*domain.Battle, error) {
	for _, b := range r.battles {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrBattleNotFound.WithData("id", id)
}

func (r *fakeBattleRepo) ListByPhases(ctx context.Context, phases ...domain.BattlePhase) ([]*domain.Battle, error) {
	var out []*domain.Battle
	for _, b := range r.battles {
		for _, p := range phases {
			if b.Phase == p {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeBattleRepo) SavePhaseTransition(ctx context.Context, b *domain.Battle) error {
	r.saved = append(r.saved, b)
	return nil
}

func newPhaseService(repo *fakeBattleRepo, now time.Time) *PhaseService {
	scheduler := NewScheduler(fixedNow(now), func(int) int { return 0 }, 12)
	return NewPhaseService(repo, scheduler, logx.NewZapLogger(nil),
		fixedNow(now), 100, 24*time.Hour, 12*time.Hour)
}

func preparationBattle(createdAt time.Time) *domain.Battle {
	attacker, defender := 1, 2
	return &domain.Battle{
		ID:        1,
		Phase:     domain.PhasePreparation,
		CreatedAt: createdAt,
		Fighters: []*domain.Fighter{
			{Side: domain.SideAttacker, Commander: true, PartyID: &attacker, Troops: 300},
			{Side: domain.SideDefender, Commander: true, PartyID: &defender, Troops: 200},
		},
		FighterApplications: []*domain.FighterApplication{
			{ID: 1, PartyID: 9, Side: domain.SideAttacker, Status: domain.ApplicationPending},
			{ID: 2, PartyID: 10, Side: domain.SideDefender, Status: domain.ApplicationAccepted},
		},
	}
}

func TestAdvancePhases_集结期满进入招募并分配名额(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	b := preparationBattle(now.Add(-25 * time.Hour))
	repo := &fakeBattleRepo{battles: []*domain.Battle{b}}

	advanced, err := newPhaseService(repo, now).AdvancePhases(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if advanced != 1 || len(repo.saved) != 1 {
		t.Fatalf("期望推进 1 场, advanced=%d saved=%d", advanced, len(repo.saved))
	}
	if b.Phase != domain.PhaseHiring {
		t.Fatalf("期望进入 Hiring, got=%v", b.Phase)
	}
	// 名额已分配：每方合计（含指挥官）等于预算
	if b.Fighters[0].ParticipantSlots+1 != 100 || b.Fighters[1].ParticipantSlots+1 != 100 {
		t.Fatalf("期望各方名额合计 100, got=%d,%d",
			b.Fighters[0].ParticipantSlots, b.Fighters[1].ParticipantSlots)
	}
	// 待决申请被拒绝，已接受的不动
	if b.FighterApplications[0].Status != domain.ApplicationDeclined {
		t.Fatalf("待决申请应被拒绝, got=%v", b.FighterApplications[0].Status)
	}
	if b.FighterApplications[1].Status != domain.ApplicationAccepted {
		t.Fatalf("已接受申请不应改变, got=%v", b.FighterApplications[1].Status)
	}
}

func TestAdvancePhases_集结期未满不动(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	b := preparationBattle(now.Add(-1 * time.Hour))
	repo := &fakeBattleRepo{battles: []*domain.Battle{b}}

	advanced, err := newPhaseService(repo, now).AdvancePhases(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if advanced != 0 || b.Phase != domain.PhasePreparation {
		t.Fatalf("期望不推进, advanced=%d phase=%v", advanced, b.Phase)
	}
}

func TestAdvancePhases_招募期满完成排期(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	b := preparationBattle(now.Add(-40 * time.Hour))
	b.Phase = domain.PhaseHiring
	b.Fighters[1].VulnerabilityHours = []int{20}
	repo := &fakeBattleRepo{battles: []*domain.Battle{b}}

	advanced, err := newPhaseService(repo, now).AdvancePhases(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if advanced != 1 || b.Phase != domain.PhaseScheduled {
		t.Fatalf("期望进入 Scheduled, advanced=%d phase=%v", advanced, b.Phase)
	}
	if b.ScheduledFor == nil {
		t.Fatalf("期望已排期")
	}
	if got := b.ScheduledFor.Hour(); got != 20 {
		t.Fatalf("期望排在守方时段 20 点, got=%d", got)
	}
}

func TestAdvancePhases_到点开战(t *testing.T) {
	now := time.Date(2025, 3, 4, 21, 0, 0, 0, time.UTC)
	scheduled := now.Add(-1 * time.Hour)
	b := &domain.Battle{ID: 3, Phase: domain.PhaseScheduled, CreatedAt: now.Add(-72 * time.Hour), ScheduledFor: &scheduled}
	future := now.Add(5 * time.Hour)
	b2 := &domain.Battle{ID: 4, Phase: domain.PhaseScheduled, CreatedAt: now.Add(-72 * time.Hour), ScheduledFor: &future}
	repo := &fakeBattleRepo{battles: []*domain.Battle{b, b2}}

	advanced, err := newPhaseService(repo, now).AdvancePhases(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if advanced != 1 {
		t.Fatalf("期望只推进到期的那场, advanced=%d", advanced)
	}
	if b.Phase != domain.PhaseLive {
		t.Fatalf("期望 Live, got=%v", b.Phase)
	}
	if b2.Phase != domain.PhaseScheduled {
		t.Fatalf("未到点的应保持 Scheduled, got=%v", b2.Phase)
	}
}

func TestAdvancePhases_名额不足跳过该场(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	b := preparationBattle(now.Add(-25 * time.Hour))
	repo := &fakeBattleRepo{battles: []*domain.Battle{b}}

	svc := newPhaseService(repo, now)
	svc.battleSlots = 0
	advanced, err := svc.AdvancePhases(context.Background())
	if err != nil {
		t.Fatalf("单场失败不应中断, err=%v", err)
	}
	if advanced != 0 || b.Phase != domain.PhasePreparation {
		t.Fatalf("期望跳过该场, advanced=%d phase=%v", advanced, b.Phase)
	}
}
