package app

import (
	"context"
	"testing"

	"github.com/paulmach/orb"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
	settlementdomain "Strategus/internal/settlement/domain"
)

func projectionFixture() (*fakePartyRepo, *fakeOfferRepo, *fakeBattleGateway, *fakeSettlementReader, *fakeTerrainProvider) {
	me := &domain.Party{ID: 1, Status: domain.StatusIdle, Position: orb.Point{0, 0}}
	visible := &domain.Party{ID: 2, Status: domain.StatusIdle, Position: orb.Point{10, 0}}
	hiddenByStatus := &domain.Party{ID: 3, Status: domain.StatusIdleInSettlement, Position: orb.Point{5, 0}}
	hiddenByDistance := &domain.Party{ID: 4, Status: domain.StatusIdle, Position: orb.Point{100, 0}}
	partyRepo := &fakePartyRepo{parties: []*domain.Party{me, visible, hiddenByStatus, hiddenByDistance}}

	settlements := &fakeSettlementReader{settlements: []*settlementdomain.Settlement{
		{ID: 7, Position: orb.Point{20, 0}},
		{ID: 8, Position: orb.Point{200, 0}},
	}}
	battles := &fakeBattleGateway{battles: []*battledomain.Battle{
		{ID: 5, Phase: battledomain.PhaseHiring, Position: orb.Point{30, 0}},
		{ID: 6, Phase: battledomain.PhaseEnd, Position: orb.Point{30, 0}},
	}}
	return partyRepo, &fakeOfferRepo{}, battles, settlements, &fakeTerrainProvider{}
}

func newProjectionService(partyRepo *fakePartyRepo, offerRepo *fakeOfferRepo, battles *fakeBattleGateway,
	settlements *fakeSettlementReader, terrains *fakeTerrainProvider) *ProjectionService {
	return NewProjectionService(partyRepo, offerRepo, battles, settlements, terrains, 50)
}

func TestGetUpdate_视野过滤(t *testing.T) {
	partyRepo, offerRepo, battles, settlements, terrains := projectionFixture()
	svc := newProjectionService(partyRepo, offerRepo, battles, settlements, terrains)

	update, err := svc.GetUpdate(context.Background(), 1)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(update.VisibleParties) != 1 || update.VisibleParties[0].ID != 2 {
		t.Fatalf("只应看到野外且在视距内的部队, got=%+v", update.VisibleParties)
	}
	if len(update.VisibleSettlements) != 1 || update.VisibleSettlements[0].ID != 7 {
		t.Fatalf("只应看到视距内的据点, got=%+v", update.VisibleSettlements)
	}
	if len(update.VisibleBattles) != 1 || update.VisibleBattles[0].ID != 5 {
		t.Fatalf("只应看到视距内未结束的战斗, got=%+v", update.VisibleBattles)
	}
	if update.Party.Speed != 2.0 {
		t.Fatalf("零兵力基准速度应为 2.0, got=%v", update.Party.Speed)
	}
}

func TestGetUpdate_订单路径首尾相接(t *testing.T) {
	partyRepo, offerRepo, battles, settlements, terrains := projectionFixture()
	me := partyRepo.parties[0]
	me.Orders = []*domain.Order{
		{Type: domain.OrderMoveToPoint, Index: 0, Waypoints: orb.MultiPoint{{4, 0}}},
		{Type: domain.OrderMoveToPoint, Index: 1, Waypoints: orb.MultiPoint{{4, 3}}},
	}
	svc := newProjectionService(partyRepo, offerRepo, battles, settlements, terrains)

	update, err := svc.GetUpdate(context.Background(), 1)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(update.Party.Orders) != 2 {
		t.Fatalf("期望 2 条订单投影, got=%d", len(update.Party.Orders))
	}
	first := update.Party.Orders[0].PathSegments
	second := update.Party.Orders[1].PathSegments
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("无地形时每条腿一段, got=%d,%d", len(first), len(second))
	}
	if first[0].Start != (orb.Point{0, 0}) || first[0].End != (orb.Point{4, 0}) {
		t.Fatalf("第一段 %v -> %v", first[0].Start, first[0].End)
	}
	// 第二条订单从第一条的终点起步
	if second[0].Start != (orb.Point{4, 0}) || second[0].End != (orb.Point{4, 3}) {
		t.Fatalf("第二段应接在第一段之后, got=%v -> %v", second[0].Start, second[0].End)
	}
	if first[0].Distance != 4 || second[0].Distance != 3 {
		t.Fatalf("分段距离错误, got=%v,%v", first[0].Distance, second[0].Distance)
	}
	if first[0].SpeedMultiplier != 1.0 || first[0].Speed != update.Party.Speed {
		t.Fatalf("无地形分段按基准速度, got=%+v", first[0])
	}
}

func TestGetUpdate_随单意向一并返回(t *testing.T) {
	partyRepo, offerRepo, battles, settlements, terrains := projectionFixture()
	me := partyRepo.parties[0]
	battleID, targetID := 5, 2
	me.Orders = []*domain.Order{
		{Type: domain.OrderMoveToPoint, Index: 0, Waypoints: orb.MultiPoint{{1, 0}}},
		{Type: domain.OrderJoinBattle, Index: 1, TargetBattleID: &battleID},
	}
	battles.applications = []*battledomain.FighterApplication{
		{ID: 1, BattleID: 5, PartyID: 1, Side: battledomain.SideDefender, Status: battledomain.ApplicationIntent},
		{ID: 2, BattleID: 9, PartyID: 1, Side: battledomain.SideAttacker, Status: battledomain.ApplicationIntent},
	}
	offerRepo.offers = []*domain.TransferOffer{
		{ID: 11, PartyID: 1, TargetPartyID: targetID, Status: domain.TransferIntent, Gold: 5},
		{ID: 12, PartyID: 9, TargetPartyID: 1, Status: domain.TransferPending, Gold: 7},
	}
	svc := newProjectionService(partyRepo, offerRepo, battles, settlements, terrains)

	update, err := svc.GetUpdate(context.Background(), 1)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	join := update.Party.Orders[1]
	if len(join.JoinIntentSides) != 1 || join.JoinIntentSides[0] != battledomain.SideDefender {
		t.Fatalf("只应带上该战斗的意向侧别, got=%v", join.JoinIntentSides)
	}
	// 本部队参与的全部要约（两个方向）都在快照里
	if len(update.Party.TransferOffers) != 2 {
		t.Fatalf("期望 2 条要约, got=%d", len(update.Party.TransferOffers))
	}
}

func TestGetUpdate_转让订单带上Intent要约(t *testing.T) {
	partyRepo, offerRepo, battles, settlements, terrains := projectionFixture()
	me := partyRepo.parties[0]
	targetID := 2
	me.Orders = []*domain.Order{
		{Type: domain.OrderTransferOfferParty, Index: 0, TargetPartyID: &targetID},
	}
	offerRepo.offers = []*domain.TransferOffer{
		{ID: 11, PartyID: 1, TargetPartyID: targetID, Status: domain.TransferIntent, Gold: 5},
	}
	svc := newProjectionService(partyRepo, offerRepo, battles, settlements, terrains)

	update, err := svc.GetUpdate(context.Background(), 1)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	projection := update.Party.Orders[0]
	if projection.TransferIntent == nil || projection.TransferIntent.ID != 11 {
		t.Fatalf("期望带上 Intent 要约, got=%+v", projection.TransferIntent)
	}
	// 目标在 (10,0)，路径指向目标当前位置
	segments := projection.PathSegments
	if len(segments) != 1 || segments[0].End != (orb.Point{10, 0}) {
		t.Fatalf("路径应指向目标当前位置, got=%+v", segments)
	}
}
