package app

import (
	"context"
	"errors"
	"testing"

	"Strategus/internal/party/domain"
	"Strategus/modules/kit/logx"
)

func pendingOfferFixture() (*fakePartyRepo, *fakeOfferRepo, *domain.Party, *domain.Party) {
	fromID, toID := 1, 2
	offering := &domain.Party{
		ID:     fromID,
		Gold:   1000,
		Troops: 100,
		Status: domain.StatusAwaitingPartyOfferDecision,
		CurrentPartyID: &toID,
		Items: []*domain.PartyItem{
			{PartyID: fromID, ItemID: "grain", Count: 40},
		},
	}
	responding := &domain.Party{ID: toID, Gold: 50, Troops: 30, Status: domain.StatusIdle}
	partyRepo := &fakePartyRepo{parties: []*domain.Party{offering, responding}}
	offerRepo := &fakeOfferRepo{offers: []*domain.TransferOffer{{
		ID: 7, PartyID: fromID, TargetPartyID: toID, Status: domain.TransferPending,
		Gold: 500, Troops: 20,
		Items: []*domain.TransferOfferItem{{OfferID: 7, ItemID: "grain", Count: 30}},
	}}, nextID: 7}
	offerRepo.parties = partyRepo
	return partyRepo, offerRepo, offering, responding
}

func newTransferService(partyRepo *fakePartyRepo, offerRepo *fakeOfferRepo) *TransferService {
	return NewTransferService(partyRepo, offerRepo, logx.NewZapLogger(nil))
}

func TestRespond_部分接受按接受数交割(t *testing.T) {
	partyRepo, offerRepo, offering, responding := pendingOfferFixture()
	svc := newTransferService(partyRepo, offerRepo)

	offer, err := svc.Respond(context.Background(), responding.ID, 7, true, &domain.TransferAmounts{
		Gold:   200,
		Troops: 10,
		Items:  []domain.TransferAmountItem{{ItemID: "grain", Count: 15}},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if offer.Status != domain.TransferAccepted {
		t.Fatalf("期望 Accepted, got=%v", offer.Status)
	}
	if offering.Gold != 800 || responding.Gold != 250 {
		t.Fatalf("金币交割错误, from=%d to=%d", offering.Gold, responding.Gold)
	}
	if offering.Troops != 90 || responding.Troops != 40 {
		t.Fatalf("兵力交割错误, from=%v to=%v", offering.Troops, responding.Troops)
	}
	if it := offering.Item("grain"); it == nil || it.Count != 25 {
		t.Fatalf("发起方粮食余量期望 25, got=%+v", it)
	}
	if it := responding.Item("grain"); it == nil || it.Count != 15 {
		t.Fatalf("接收方粮食期望 15, got=%+v", it)
	}
	// 要约行删除，发起方恢复行动
	if len(offerRepo.settled) != 1 || len(offerRepo.offers) != 0 {
		t.Fatalf("期望要约已结算删除, settled=%v", offerRepo.settled)
	}
	if offering.Status != domain.StatusIdle || offering.CurrentPartyID != nil {
		t.Fatalf("发起方应恢复 Idle, got=%v", offering.Status)
	}
}

func TestRespond_拒绝不动余额(t *testing.T) {
	partyRepo, offerRepo, offering, responding := pendingOfferFixture()
	svc := newTransferService(partyRepo, offerRepo)

	offer, err := svc.Respond(context.Background(), responding.ID, 7, false, nil)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if offer.Status != domain.TransferDeclined {
		t.Fatalf("期望 Declined, got=%v", offer.Status)
	}
	if offering.Gold != 1000 || responding.Gold != 50 || offering.Troops != 100 {
		t.Fatalf("拒绝不应变更余额")
	}
	if len(offerRepo.offers) != 0 {
		t.Fatalf("拒绝也应删除要约行")
	}
	if offering.Status != domain.StatusIdle {
		t.Fatalf("发起方应恢复 Idle, got=%v", offering.Status)
	}
}

func TestRespond_各类校验错误(t *testing.T) {
	partyRepo, offerRepo, offering, responding := pendingOfferFixture()
	svc := newTransferService(partyRepo, offerRepo)
	ctx := context.Background()

	if _, err := svc.Respond(ctx, 99, 7, false, nil); !errors.Is(err, domain.ErrPartyNotFound) {
		t.Fatalf("期望 ErrPartyNotFound, got=%v", err)
	}
	if _, err := svc.Respond(ctx, responding.ID, 99, false, nil); !errors.Is(err, domain.ErrTransferOfferNotFound) {
		t.Fatalf("期望 ErrTransferOfferNotFound, got=%v", err)
	}
	// 发起方自己不能答复
	if _, err := svc.Respond(ctx, offering.ID, 7, true, &domain.TransferAmounts{}); !errors.Is(err, domain.ErrTransferOfferNotAllowed) {
		t.Fatalf("期望 ErrTransferOfferNotAllowed, got=%v", err)
	}
	if _, err := svc.Respond(ctx, responding.ID, 7, true, nil); !errors.Is(err, domain.ErrTransferOfferMissingAmounts) {
		t.Fatalf("期望 ErrTransferOfferMissingAmounts, got=%v", err)
	}
	if _, err := svc.Respond(ctx, responding.ID, 7, true, &domain.TransferAmounts{Gold: 501}); !errors.Is(err, domain.ErrTransferOfferInvalidAmount) {
		t.Fatalf("期望 ErrTransferOfferInvalidAmount, got=%v", err)
	}
	// 校验失败不产生任何结算
	if len(offerRepo.settled) != 0 || offering.Gold != 1000 {
		t.Fatalf("校验失败不应结算")
	}
}

func TestRespond_Intent要约不可答复(t *testing.T) {
	partyRepo, offerRepo, _, responding := pendingOfferFixture()
	offerRepo.offers[0].Status = domain.TransferIntent
	svc := newTransferService(partyRepo, offerRepo)

	_, err := svc.Respond(context.Background(), responding.ID, 7, true, &domain.TransferAmounts{})
	if !errors.Is(err, domain.ErrTransferOfferInvalidStatus) {
		t.Fatalf("期望 ErrTransferOfferInvalidStatus, got=%v", err)
	}
}

func TestRespond_要约被并发结算后答复失败(t *testing.T) {
	partyRepo, offerRepo, offering, responding := pendingOfferFixture()
	// 状态预检通过之后、结算事务复核之前，另一份答复先把要约结算掉了
	offerRepo.beforeSettle = func() {
		offerRepo.offers = nil
	}
	svc := newTransferService(partyRepo, offerRepo)

	_, err := svc.Respond(context.Background(), responding.ID, 7, true, &domain.TransferAmounts{Gold: 200})
	if !errors.Is(err, domain.ErrTransferOfferInvalidStatus) {
		t.Fatalf("期望 ErrTransferOfferInvalidStatus, got=%v", err)
	}
	if offering.Gold != 1000 || responding.Gold != 50 {
		t.Fatalf("冲突答复不应变更余额, from=%d to=%d", offering.Gold, responding.Gold)
	}
	if len(offerRepo.settled) != 0 {
		t.Fatalf("冲突答复不应产生结算")
	}
}

func TestRespond_同一发起方的两份要约不能重复兑付(t *testing.T) {
	partyRepo, offerRepo, offering, responding := pendingOfferFixture()
	thirdID := 3
	third := &domain.Party{ID: thirdID, Gold: 0, Troops: 10, Status: domain.StatusIdle}
	partyRepo.parties = append(partyRepo.parties, third)
	offerRepo.offers[0].Gold = 800
	offerRepo.offers = append(offerRepo.offers, &domain.TransferOffer{
		ID: 8, PartyID: offering.ID, TargetPartyID: thirdID,
		Status: domain.TransferPending, Gold: 800,
	})
	svc := newTransferService(partyRepo, offerRepo)
	ctx := context.Background()

	if _, err := svc.Respond(ctx, responding.ID, 7, true, &domain.TransferAmounts{Gold: 800}); err != nil {
		t.Fatalf("首份兑付应当成功, err=%v", err)
	}
	// 第二份在结算时刻的余额上复核，1000 金币不够兑付两次 800
	_, err := svc.Respond(ctx, thirdID, 8, true, &domain.TransferAmounts{Gold: 800})
	if !errors.Is(err, domain.ErrPartyNotEnoughGold) {
		t.Fatalf("期望 ErrPartyNotEnoughGold, got=%v", err)
	}
	if offering.Gold != 200 || responding.Gold != 850 || third.Gold != 0 {
		t.Fatalf("金币不守恒, from=%d to=%d third=%d", offering.Gold, responding.Gold, third.Gold)
	}
}

func TestRespond_兑付看发起方当前余额(t *testing.T) {
	partyRepo, offerRepo, offering, responding := pendingOfferFixture()
	// 要约挂出后发起方金币被别处花掉了
	offering.Gold = 100
	svc := newTransferService(partyRepo, offerRepo)

	_, err := svc.Respond(context.Background(), responding.ID, 7, true, &domain.TransferAmounts{Gold: 200})
	if !errors.Is(err, domain.ErrPartyNotEnoughGold) {
		t.Fatalf("期望 ErrPartyNotEnoughGold, got=%v", err)
	}
}
