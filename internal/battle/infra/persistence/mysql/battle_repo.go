package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Strategus/internal/battle/domain"
	"Strategus/internal/battle/infra/persistence/mapper"
	"Strategus/internal/battle/infra/persistence/model"
)

type BattleRepo struct {
	db *gorm.DB
}

func NewBattleRepo(db *gorm.DB) *BattleRepo {
	return &BattleRepo{db: db}
}

func unavailable(op string, cause error, kv ...any) error {
	e := domain.ErrSystemUnavailable.WithData("op", op).WithCause(cause)
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.WithData(kv[i].(string), kv[i+1])
	}
	return e
}

const OpGetBattle = "repo.battle.GetBattle"

// GetBattle 连同参战方与申请一并装载。
func (r *BattleRepo) GetBattle(ctx context.Context, id int) (*domain.Battle, error) {
	var m model.Battle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrBattleNotFound.WithData("id", id)
	case err != nil:
		return nil, unavailable(OpGetBattle, err, "id", id)
	}

	b, err := mapper.BattleModelToEntity(&m)
	if err != nil {
		return nil, unavailable(OpGetBattle, err, "id", id)
	}
	if err := r.loadChildren(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

const OpListByPhases = "repo.battle.ListByPhases"

func (r *BattleRepo) ListByPhases(ctx context.Context, phases ...domain.BattlePhase) ([]*domain.Battle, error) {
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, string(p))
	}

	var ms []model.Battle
	if err := r.db.WithContext(ctx).Where("phase IN ?", names).Find(&ms).Error; err != nil {
		return nil, unavailable(OpListByPhases, err)
	}

	out := make([]*domain.Battle, 0, len(ms))
	for i := range ms {
		b, err := mapper.BattleModelToEntity(&ms[i])
		if err != nil {
			return nil, unavailable(OpListByPhases, err, "id", ms[i].ID)
		}
		if err := r.loadChildren(ctx, b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ListVisible 返回尚未结束的战斗，视距过滤在应用层做。
func (r *BattleRepo) ListVisible(ctx context.Context) ([]*domain.Battle, error) {
	return r.ListByPhases(ctx,
		domain.PhasePreparation, domain.PhaseHiring, domain.PhaseScheduled, domain.PhaseLive)
}

const OpCreateBattle = "repo.battle.CreateBattle"

// CreateBattle 原子创建战斗行与参战方行。
func (r *BattleRepo) CreateBattle(ctx context.Context, b *domain.Battle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bm, err := mapper.BattleEntityToModel(b)
		if err != nil {
			return unavailable(OpCreateBattle, err)
		}
		if err := tx.Create(bm).Error; err != nil {
			return unavailable(OpCreateBattle, err)
		}
		b.ID = bm.ID

		for _, f := range b.Fighters {
			f.BattleID = b.ID
			fm, err := mapper.FighterEntityToModel(f)
			if err != nil {
				return unavailable(OpCreateBattle, err)
			}
			if err := tx.Create(fm).Error; err != nil {
				return unavailable(OpCreateBattle, err)
			}
			f.ID = fm.ID
		}
		return nil
	})
}

const OpSavePhaseTransition = "repo.battle.SavePhaseTransition"

// SavePhaseTransition 原子落库：战斗行、参战方名额、申请状态一起提交。
func (r *BattleRepo) SavePhaseTransition(ctx context.Context, b *domain.Battle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bm, err := mapper.BattleEntityToModel(b)
		if err != nil {
			return unavailable(OpSavePhaseTransition, err, "id", b.ID)
		}
		if err := tx.Save(bm).Error; err != nil {
			return unavailable(OpSavePhaseTransition, err, "id", b.ID)
		}
		for _, f := range b.Fighters {
			fm, err := mapper.FighterEntityToModel(f)
			if err != nil {
				return unavailable(OpSavePhaseTransition, err, "id", b.ID)
			}
			if err := tx.Save(fm).Error; err != nil {
				return unavailable(OpSavePhaseTransition, err, "id", b.ID)
			}
		}
		for _, a := range b.FighterApplications {
			if err := tx.Save(mapper.ApplicationEntityToModel(a)).Error; err != nil {
				return unavailable(OpSavePhaseTransition, err, "id", b.ID)
			}
		}
		return nil
	})
}

const OpCreateApplication = "repo.battle.CreateApplication"

func (r *BattleRepo) CreateApplication(ctx context.Context, a *domain.FighterApplication) error {
	m := mapper.ApplicationEntityToModel(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return unavailable(OpCreateApplication, err, "battle_id", a.BattleID)
	}
	a.ID = m.ID
	return nil
}

const OpDeleteIntentApplications = "repo.battle.DeleteIntentApplicationsByParty"

func (r *BattleRepo) DeleteIntentApplicationsByParty(ctx context.Context, partyID int) error {
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND status = ?", partyID, string(domain.ApplicationIntent)).
		Delete(&model.BattleFighterApplication{}).Error
	if err != nil {
		return unavailable(OpDeleteIntentApplications, err, "party_id", partyID)
	}
	return nil
}

const OpPromoteIntentApplications = "repo.battle.PromoteIntentApplications"

// PromoteIntentApplications 把部队到场后的意向申请转为待决。
func (r *BattleRepo) PromoteIntentApplications(ctx context.Context, partyID int) error {
	err := r.db.WithContext(ctx).Model(&model.BattleFighterApplication{}).
		Where("party_id = ? AND status = ?", partyID, string(domain.ApplicationIntent)).
		Update("status", string(domain.ApplicationPending)).Error
	if err != nil {
		return unavailable(OpPromoteIntentApplications, err, "party_id", partyID)
	}
	return nil
}

const OpHasActiveSettlementBattle = "repo.battle.HasActiveSettlementBattle"

// HasActiveSettlementBattle 返回某据点是否已有未结束的战斗。
func (r *BattleRepo) HasActiveSettlementBattle(ctx context.Context, settlementID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BattleFighter{}).
		Joins("JOIN battle ON battle.id = battle_fighter.battle_id").
		Where("battle_fighter.settlement_id = ? AND battle.phase <> ?", settlementID, string(domain.PhaseEnd)).
		Count(&count).Error
	if err != nil {
		return false, unavailable(OpHasActiveSettlementBattle, err, "settlement_id", settlementID)
	}
	return count > 0, nil
}

const OpListApplicationsByParty = "repo.battle.ListApplicationsByParty"

func (r *BattleRepo) ListApplicationsByParty(ctx context.Context, partyID int, statuses ...domain.ApplicationStatus) ([]*domain.FighterApplication, error) {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	var ms []model.BattleFighterApplication
	q := r.db.WithContext(ctx).Where("party_id = ?", partyID)
	if len(names) > 0 {
		q = q.Where("status IN ?", names)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, unavailable(OpListApplicationsByParty, err, "party_id", partyID)
	}

	out := make([]*domain.FighterApplication, 0, len(ms))
	for i := range ms {
		out = append(out, mapper.ApplicationModelToEntity(&ms[i]))
	}
	return out, nil
}

func (r *BattleRepo) loadChildren(ctx context.Context, b *domain.Battle) error {
	var fms []model.BattleFighter
	if err := r.db.WithContext(ctx).Where("battle_id = ?", b.ID).Order("id").Find(&fms).Error; err != nil {
		return unavailable(OpGetBattle, err, "id", b.ID)
	}
	for i := range fms {
		f, err := mapper.FighterModelToEntity(&fms[i])
		if err != nil {
			return unavailable(OpGetBattle, err, "id", b.ID)
		}
		b.Fighters = append(b.Fighters, f)
	}

	var ams []model.BattleFighterApplication
	if err := r.db.WithContext(ctx).Where("battle_id = ?", b.ID).Order("id").Find(&ams).Error; err != nil {
		return unavailable(OpGetBattle, err, "id", b.ID)
	}
	for i := range ams {
		b.FighterApplications = append(b.FighterApplications, mapper.ApplicationModelToEntity(&ams[i]))
	}
	return nil
}
