package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Strategus/internal/party/domain"
	"Strategus/internal/party/infra/persistence/mapper"
	"Strategus/internal/party/infra/persistence/model"
)

type PartyRepo struct {
	db *gorm.DB
}

func NewPartyRepo(db *gorm.DB) *PartyRepo {
	return &PartyRepo{db: db}
}

func unavailable(op string, cause error, kv ...any) error {
	e := domain.ErrSystemUnavailable.WithData("op", op).WithCause(cause)
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.WithData(kv[i].(string), kv[i+1])
	}
	return e
}

const OpGetParty = "repo.party.GetParty"

// GetParty 连同物品堆叠与订单队列一并装载。
func (r *PartyRepo) GetParty(ctx context.Context, id int) (*domain.Party, error) {
	var m model.Party
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrPartyNotFound.WithData("id", id)
	case err != nil:
		return nil, unavailable(OpGetParty, err, "id", id)
	}

	p, err := mapper.PartyModelToEntity(&m)
	if err != nil {
		return nil, unavailable(OpGetParty, err, "id", id)
	}
	if err := loadChildren(r.db.WithContext(ctx), p); err != nil {
		return nil, err
	}
	return p, nil
}

const OpLockParty = "repo.party.LockParty"

// lockParty 以 FOR UPDATE 装载部队行，结算提交前阻断并发改动。
func lockParty(tx *gorm.DB, id int) (*domain.Party, error) {
	var m model.Party
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrPartyNotFound.WithData("id", id)
	case err != nil:
		return nil, unavailable(OpLockParty, err, "id", id)
	}

	p, err := mapper.PartyModelToEntity(&m)
	if err != nil {
		return nil, unavailable(OpLockParty, err, "id", id)
	}
	if err := loadChildren(tx, p); err != nil {
		return nil, err
	}
	return p, nil
}

const OpListParties = "repo.party.ListParties"

func (r *PartyRepo) ListParties(ctx context.Context) ([]*domain.Party, error) {
	var ms []model.Party
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, unavailable(OpListParties, err)
	}

	out := make([]*domain.Party, 0, len(ms))
	for i := range ms {
		p, err := mapper.PartyModelToEntity(&ms[i])
		if err != nil {
			return nil, unavailable(OpListParties, err, "id", ms[i].ID)
		}
		if err := loadChildren(r.db.WithContext(ctx), p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

const OpSaveParty = "repo.party.SaveParty"

// SaveParty 原子落库：部队行更新，物品堆叠与订单队列整体替换。
func (r *PartyRepo) SaveParty(ctx context.Context, p *domain.Party) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveParty(tx, p)
	})
}

const OpSaveParties = "repo.party.SaveParties"

// SaveParties 在一个事务里落库多支部队，行军结算用。
func (r *PartyRepo) SaveParties(ctx context.Context, parties ...*domain.Party) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range parties {
			if err := saveParty(tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveParty(tx *gorm.DB, p *domain.Party) error {
	pm, err := mapper.PartyEntityToModel(p)
	if err != nil {
		return unavailable(OpSaveParty, err, "id", p.ID)
	}
	if err := tx.Save(pm).Error; err != nil {
		return unavailable(OpSaveParty, err, "id", p.ID)
	}
	p.ID = pm.ID

	if err := tx.Where("party_id = ?", p.ID).Delete(&model.PartyItem{}).Error; err != nil {
		return unavailable(OpSaveParty, err, "id", p.ID)
	}
	for _, it := range p.Items {
		it.PartyID = p.ID
		im := mapper.ItemEntityToModel(it)
		im.ID = 0
		if err := tx.Create(im).Error; err != nil {
			return unavailable(OpSaveParty, err, "id", p.ID)
		}
		it.ID = im.ID
	}

	if err := tx.Where("party_id = ?", p.ID).Delete(&model.PartyOrder{}).Error; err != nil {
		return unavailable(OpSaveParty, err, "id", p.ID)
	}
	for _, o := range p.Orders {
		o.PartyID = p.ID
		om, err := mapper.OrderEntityToModel(o)
		if err != nil {
			return unavailable(OpSaveParty, err, "id", p.ID)
		}
		om.ID = 0
		if err := tx.Create(om).Error; err != nil {
			return unavailable(OpSaveParty, err, "id", p.ID)
		}
		o.ID = om.ID
	}
	return nil
}

func loadChildren(db *gorm.DB, p *domain.Party) error {
	var ims []model.PartyItem
	if err := db.Where("party_id = ?", p.ID).Order("id").Find(&ims).Error; err != nil {
		return unavailable(OpGetParty, err, "id", p.ID)
	}
	for i := range ims {
		p.Items = append(p.Items, mapper.ItemModelToEntity(&ims[i]))
	}

	var oms []model.PartyOrder
	if err := db.Where("party_id = ?", p.ID).Order("order_index").Find(&oms).Error; err != nil {
		return unavailable(OpGetParty, err, "id", p.ID)
	}
	for i := range oms {
		o, err := mapper.OrderModelToEntity(&oms[i])
		if err != nil {
			return unavailable(OpGetParty, err, "id", p.ID)
		}
		p.Orders = append(p.Orders, o)
	}
	return nil
}
