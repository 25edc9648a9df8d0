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

type TransferOfferRepo struct {
	db *gorm.DB
}

func NewTransferOfferRepo(db *gorm.DB) *TransferOfferRepo {
	return &TransferOfferRepo{db: db}
}

const OpGetOffer = "repo.transfer_offer.GetOffer"

// GetOffer 连同物品行一并装载。
func (r *TransferOfferRepo) GetOffer(ctx context.Context, id int) (*domain.TransferOffer, error) {
	var m model.PartyTransferOffer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrTransferOfferNotFound.WithData("id", id)
	case err != nil:
		return nil, unavailable(OpGetOffer, err, "id", id)
	}

	o := mapper.OfferModelToEntity(&m)
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

const OpListOffersByParty = "repo.transfer_offer.ListOffersByParty"

// ListOffersByParty 返回该部队作为任一方参与的全部要约。
func (r *TransferOfferRepo) ListOffersByParty(ctx context.Context, partyID int) ([]*domain.TransferOffer, error) {
	var ms []model.PartyTransferOffer
	err := r.db.WithContext(ctx).
		Where("party_id = ? OR target_party_id = ?", partyID, partyID).
		Order("id").Find(&ms).Error
	if err != nil {
		return nil, unavailable(OpListOffersByParty, err, "party_id", partyID)
	}

	out := make([]*domain.TransferOffer, 0, len(ms))
	for i := range ms {
		o := mapper.OfferModelToEntity(&ms[i])
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

const OpGetIntentOffer = "repo.transfer_offer.GetIntentOffer"

func (r *TransferOfferRepo) GetIntentOffer(ctx context.Context, partyID, targetPartyID int) (*domain.TransferOffer, error) {
	var m model.PartyTransferOffer
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND target_party_id = ? AND status = ?",
			partyID, targetPartyID, string(domain.TransferIntent)).
		First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrTransferOfferNotFound.
			WithData("party_id", partyID).WithData("target_party_id", targetPartyID)
	case err != nil:
		return nil, unavailable(OpGetIntentOffer, err, "party_id", partyID)
	}

	o := mapper.OfferModelToEntity(&m)
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

const OpCreateOffer = "repo.transfer_offer.CreateOffer"

// CreateOffer 原子创建要约行与物品行。
func (r *TransferOfferRepo) CreateOffer(ctx context.Context, o *domain.TransferOffer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		om := mapper.OfferEntityToModel(o)
		if err := tx.Create(om).Error; err != nil {
			return unavailable(OpCreateOffer, err)
		}
		o.ID = om.ID

		for _, it := range o.Items {
			it.OfferID = o.ID
			im := mapper.OfferItemEntityToModel(it)
			if err := tx.Create(im).Error; err != nil {
				return unavailable(OpCreateOffer, err)
			}
			it.ID = im.ID
		}
		return nil
	})
}

const OpSaveOfferStatus = "repo.transfer_offer.SaveOfferStatus"

func (r *TransferOfferRepo) SaveOfferStatus(ctx context.Context, o *domain.TransferOffer) error {
	err := r.db.WithContext(ctx).Model(&model.PartyTransferOffer{}).
		Where("id = ?", o.ID).
		Update("status", string(o.Status)).Error
	if err != nil {
		return unavailable(OpSaveOfferStatus, err, "id", o.ID)
	}
	return nil
}

const OpDeleteIntentOffers = "repo.transfer_offer.DeleteIntentOffersByParty"

// DeleteIntentOffersByParty 连同物品行一起清掉随订单废弃的 Intent 要约。
func (r *TransferOfferRepo) DeleteIntentOffersByParty(ctx context.Context, partyID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int
		err := tx.Model(&model.PartyTransferOffer{}).
			Where("party_id = ? AND status = ?", partyID, string(domain.TransferIntent)).
			Pluck("id", &ids).Error
		if err != nil {
			return unavailable(OpDeleteIntentOffers, err, "party_id", partyID)
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("offer_id IN ?", ids).Delete(&model.PartyTransferOfferItem{}).Error; err != nil {
			return unavailable(OpDeleteIntentOffers, err, "party_id", partyID)
		}
		if err := tx.Where("id IN ?", ids).Delete(&model.PartyTransferOffer{}).Error; err != nil {
			return unavailable(OpDeleteIntentOffers, err, "party_id", partyID)
		}
		return nil
	})
}

const OpSettleOffer = "repo.transfer_offer.SettleOffer"

// SettleOffer 单事务结算：要约行加锁复核 Pending 状态，双方部队行加锁后
// 执行 settle 回调，再把余额落库并删除要约连同物品行。
// 回调返回错误则整个事务回滚，什么都不落库。
func (r *TransferOfferRepo) SettleOffer(ctx context.Context, offerID int, settle func(from, to *domain.Party) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var om model.PartyTransferOffer
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", offerID).First(&om).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 并发答复已把这份要约结算掉了
			return domain.ErrTransferOfferInvalidStatus.WithData("offer_id", offerID)
		case err != nil:
			return unavailable(OpSettleOffer, err, "offer_id", offerID)
		}
		if om.Status != string(domain.TransferPending) {
			return domain.ErrTransferOfferInvalidStatus.
				WithData("offer_id", offerID).
				WithData("status", om.Status)
		}

		from, err := lockParty(tx, om.PartyID)
		if err != nil {
			return err
		}
		to, err := lockParty(tx, om.TargetPartyID)
		if err != nil {
			return err
		}
		if err := settle(from, to); err != nil {
			return err
		}

		if err := saveParty(tx, from); err != nil {
			return err
		}
		if err := saveParty(tx, to); err != nil {
			return err
		}
		if err := tx.Where("offer_id = ?", offerID).Delete(&model.PartyTransferOfferItem{}).Error; err != nil {
			return unavailable(OpSettleOffer, err, "offer_id", offerID)
		}
		if err := tx.Where("id = ?", offerID).Delete(&model.PartyTransferOffer{}).Error; err != nil {
			return unavailable(OpSettleOffer, err, "offer_id", offerID)
		}
		return nil
	})
}

func (r *TransferOfferRepo) loadItems(ctx context.Context, o *domain.TransferOffer) error {
	var ims []model.PartyTransferOfferItem
	if err := r.db.WithContext(ctx).Where("offer_id = ?", o.ID).Order("id").Find(&ims).Error; err != nil {
		return unavailable(OpGetOffer, err, "id", o.ID)
	}
	for i := range ims {
		o.Items = append(o.Items, mapper.OfferItemModelToEntity(&ims[i]))
	}
	return nil
}
