package app

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
)

func orderFixture() (*fakePartyRepo, *fakeOfferRepo, *fakeBattleGateway, *fakeSettlementReader) {
	me := &domain.Party{
		ID: 1, Gold: 1000, Troops: 100, Status: domain.StatusIdle,
		Position: orb.Point{0, 0},
		Items:    []*domain.PartyItem{{PartyID: 1, ItemID: "grain", Count: 40}},
	}
	near := &domain.Party{ID: 2, Troops: 50, Status: domain.StatusIdle, Position: orb.Point{10, 0}}
	far := &domain.Party{ID: 3, Troops: 50, Status: domain.StatusIdle, Position: orb.Point{100, 0}}
	partyRepo := &fakePartyRepo{parties: []*domain.Party{me, near, far}}
	offerRepo := &fakeOfferRepo{}
	battles := &fakeBattleGateway{battles: []*battledomain.Battle{
		{ID: 5, Phase: battledomain.PhaseHiring, Position: orb.Point{20, 0}},
	}, nextID: 10}
	settlements := &fakeSettlementReader{}
	return partyRepo, offerRepo, battles, settlements
}

func newOrderService(partyRepo *fakePartyRepo, offerRepo *fakeOfferRepo,
	battles *fakeBattleGateway, settlements *fakeSettlementReader) *OrderService {
	return NewOrderService(partyRepo, offerRepo, battles, settlements, 50, 10)
}

func TestUpdateOrders_整体替换并重建随单实体(t *testing.T) {
	partyRepo, offerRepo, battles, settlements := orderFixture()
	// 旧队列遗留的 Intent 实体
	offerRepo.offers = []*domain.TransferOffer{{ID: 1, PartyID: 1, TargetPartyID: 3, Status: domain.TransferIntent}}
	battles.applications = []*battledomain.FighterApplication{
		{ID: 1, BattleID: 5, PartyID: 1, Side: battledomain.SideAttacker, Status: battledomain.ApplicationIntent},
	}
	svc := newOrderService(partyRepo, offerRepo, battles, settlements)

	party, err := svc.UpdateOrders(context.Background(), 1, []OrderItem{
		{Type: domain.OrderMoveToPoint, Waypoints: orb.MultiPoint{{5, 5}}},
		{Type: domain.OrderTransferOfferParty, TargetPartyID: 2, TransferIntent: &domain.TransferAmounts{
			Gold: 100, Troops: 20,
			Items: []domain.TransferAmountItem{{ItemID: "grain", Count: 10}},
		}},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(party.Orders) != 2 || party.Orders[0].Index != 0 || party.Orders[1].Index != 1 {
		t.Fatalf("期望重建 2 条订单, got=%+v", party.Orders)
	}
	// 旧 Intent 要约被清掉，新 Intent 要约按新队列创建
	if len(offerRepo.offers) != 1 || offerRepo.offers[0].TargetPartyID != 2 {
		t.Fatalf("期望只剩新要约, got=%+v", offerRepo.offers)
	}
	if offerRepo.offers[0].Status != domain.TransferIntent || offerRepo.offers[0].Gold != 100 {
		t.Fatalf("新要约内容错误, got=%+v", offerRepo.offers[0])
	}
	// 旧 Intent 申请被清掉
	if len(battles.applications) != 0 {
		t.Fatalf("旧 Intent 申请应被清除, got=%+v", battles.applications)
	}
	if partyRepo.saveCalls == 0 {
		t.Fatalf("期望已落库")
	}
}

func TestUpdateOrders_JoinBattle登记意向申请(t *testing.T) {
	partyRepo, offerRepo, battles, settlements := orderFixture()
	svc := newOrderService(partyRepo, offerRepo, battles, settlements)

	_, err := svc.UpdateOrders(context.Background(), 1, []OrderItem{
		{Type: domain.OrderJoinBattle, TargetBattleID: 5,
			JoinSides: []battledomain.Side{battledomain.SideAttacker, battledomain.SideDefender}},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(battles.applications) != 2 {
		t.Fatalf("期望登记 2 条意向申请, got=%d", len(battles.applications))
	}
	for _, a := range battles.applications {
		if a.Status != battledomain.ApplicationIntent || a.BattleID != 5 || a.PartyID != 1 {
			t.Fatalf("申请内容错误, got=%+v", a)
		}
	}
}

func TestUpdateOrders_战斗中不可下单(t *testing.T) {
	partyRepo, offerRepo, battles, settlements := orderFixture()
	partyRepo.parties[0].Status = domain.StatusInBattle
	svc := newOrderService(partyRepo, offerRepo, battles, settlements)

	_, err := svc.UpdateOrders(context.Background(), 1, nil)
	if !errors.Is(err, domain.ErrPartyInBattle) {
		t.Fatalf("期望 ErrPartyInBattle, got=%v", err)
	}
}

func TestUpdateOrders_目标超出视野被拒(t *testing.T) {
	partyRepo, offerRepo, battles, settlements := orderFixture()
	svc := newOrderService(partyRepo, offerRepo, battles, settlements)

	_, err := svc.UpdateOrders(context.Background(), 1, []OrderItem{
		{Type: domain.OrderAttackParty, TargetPartyID: 3},
	})
	if !errors.Is(err, domain.ErrPartyNotInSight) {
		t.Fatalf("期望 ErrPartyNotInSight, got=%v", err)
	}
}

func TestUpdateOrders_非末位只能是MoveToPoint(t *testing.T) {
	partyRepo, offerRepo, battles, settlements := orderFixture()
	svc := newOrderService(partyRepo, offerRepo, battles, settlements)

	_, err := svc.UpdateOrders(context.Background(), 1, []OrderItem{
		{Type: domain.OrderAttackParty, TargetPartyID: 2},
		{Type: domain.OrderMoveToPoint, Waypoints: orb.MultiPoint{{1, 1}}},
	})
	if !errors.Is(err, domain.ErrInvalidOrder) {
		t.Fatalf("期望 ErrInvalidOrder, got=%v", err)
	}
}

func TestUpdateOrders_转让意向资源不足被拒(t *testing.T) {
	partyRepo, offerRepo, battles, settlements := orderFixture()
	svc := newOrderService(partyRepo, offerRepo, battles, settlements)

	// 转出 95 兵后剩 5，低于下限 10
	_, err := svc.UpdateOrders(context.Background(), 1, []OrderItem{
		{Type: domain.OrderTransferOfferParty, TargetPartyID: 2,
			TransferIntent: &domain.TransferAmounts{Troops: 95}},
	})
	if !errors.Is(err, domain.ErrTransferOfferInvalidAmount) {
		t.Fatalf("期望 ErrTransferOfferInvalidAmount, got=%v", err)
	}
}
