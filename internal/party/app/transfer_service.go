package app

import (
	"context"

	"go.uber.org/zap"

	"Strategus/internal/party/domain"
	"Strategus/modules/kit/logx"
)

// TransferService 处理转让要约的答复与结算。
type TransferService struct {
	partyRepo PartyRepo
	offerRepo TransferOfferRepo
	log       logx.Logger
}

func NewTransferService(partyRepo PartyRepo, offerRepo TransferOfferRepo, log logx.Logger) *TransferService {
	return &TransferService{partyRepo: partyRepo, offerRepo: offerRepo, log: log}
}

// Respond 由要约目标方答复一个 Pending 要约。
// accept 为 true 时 accepted 给出实际接受的数量，可以部分接受；
// 数量以要约为上限，兑付以发起方答复时刻的实际余额为准。
// 无论接受还是拒绝，要约行都会被删除。
func (s *TransferService) Respond(ctx context.Context, partyID, offerID int,
	accept bool, accepted *domain.TransferAmounts) (*domain.TransferOffer, error) {

	responding, err := s.partyRepo.GetParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	offer, err := s.offerRepo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.TargetPartyID != responding.ID {
		return nil, domain.ErrTransferOfferNotAllowed.
			WithData("offer_id", offer.ID).
			WithData("party_id", responding.ID)
	}
	if offer.Status != domain.TransferPending {
		return nil, domain.ErrTransferOfferInvalidStatus.
			WithData("offer_id", offer.ID).
			WithData("status", string(offer.Status))
	}

	if !accept {
		err := s.offerRepo.SettleOffer(ctx, offer.ID, func(from, _ *domain.Party) error {
			releaseOffering(from)
			return nil
		})
		if err != nil {
			return nil, err
		}
		offer.Status = domain.TransferDeclined
		s.log.WithContext(ctx).Info("party declined transfer offer",
			zap.Int("party_id", partyID), zap.Int("offer_id", offerID))
		return offer, nil
	}

	if accepted == nil {
		return nil, domain.ErrTransferOfferMissingAmounts.WithData("offer_id", offer.ID)
	}
	if err := offer.ValidateAccepted(*accepted); err != nil {
		return nil, err
	}

	// 要约只是上限而不是预留，兑付在锁定后的发起方当前余额上重新校验
	err = s.offerRepo.SettleOffer(ctx, offer.ID, func(from, to *domain.Party) error {
		if err := domain.ValidateSource(from, *accepted, 0); err != nil {
			return err
		}
		domain.Settle(from, to, *accepted)
		releaseOffering(from)
		return nil
	})
	if err != nil {
		return nil, err
	}
	offer.Status = domain.TransferAccepted
	s.log.WithContext(ctx).Info("party accepted transfer offer",
		zap.Int("party_id", partyID), zap.Int("offer_id", offerID),
		zap.Int("gold", accepted.Gold), zap.Float64("troops", accepted.Troops))
	return offer, nil
}

// releaseOffering 让等待答复的发起方恢复行动。
func releaseOffering(p *domain.Party) {
	if p.Status == domain.StatusAwaitingPartyOfferDecision {
		p.Status = domain.StatusIdle
		p.CurrentPartyID = nil
	}
}
