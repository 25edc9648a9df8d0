package app

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
	settlementdomain "Strategus/internal/settlement/domain"
	worlddomain "Strategus/internal/world/domain"
	worldservice "Strategus/internal/world/service"
	"Strategus/modules/kit/logx"
)

// MovementService 按真实流逝时间推进所有部队的订单队列。
// 没有游戏内时钟，每次调用补算上一次调用以来的位移与交互。
type MovementService struct {
	partyRepo           PartyRepo
	offerRepo           TransferOfferRepo
	battles             BattleGateway
	settlements         SettlementReader
	terrains            TerrainProvider
	log                 logx.Logger
	now                 func() time.Time
	viewDistance        float64
	interactionDistance float64
}

func NewMovementService(partyRepo PartyRepo, offerRepo TransferOfferRepo, battles BattleGateway,
	settlements SettlementReader, terrains TerrainProvider, log logx.Logger,
	now func() time.Time, viewDistance, interactionDistance float64) *MovementService {
	return &MovementService{
		partyRepo:           partyRepo,
		offerRepo:           offerRepo,
		battles:             battles,
		settlements:         settlements,
		terrains:            terrains,
		log:                 log,
		now:                 now,
		viewDistance:        viewDistance,
		interactionDistance: interactionDistance,
	}
}

// MoveParties 推进所有带订单的部队 delta 时长，返回处理的部队数量。
func (s *MovementService) MoveParties(ctx context.Context, delta time.Duration) (int, error) {
	parties, err := s.partyRepo.ListParties(ctx)
	if err != nil {
		return 0, err
	}
	terrains, err := s.terrains.ListTerrains(ctx)
	if err != nil {
		return 0, err
	}

	byID := make(map[int]*domain.Party, len(parties))
	for _, p := range parties {
		byID[p.ID] = p
	}

	moved := 0
	for _, party := range parties {
		if len(party.Orders) == 0 {
			continue
		}
		moved++

		baseSpeed := partyBaseSpeed(party)
		remaining := delta.Seconds()
		for remaining > 0 && len(party.Orders) > 0 {
			order := party.Orders[0]
			switch order.Type {
			case domain.OrderMoveToPoint:
				remaining = s.moveToPoint(ctx, party, order, baseSpeed, remaining, terrains)
			case domain.OrderFollowParty, domain.OrderAttackParty, domain.OrderTransferOfferParty:
				remaining, err = s.moveToParty(ctx, party, order, byID, baseSpeed, remaining, terrains)
			case domain.OrderMoveToSettlement, domain.OrderAttackSettlement:
				remaining, err = s.moveToSettlement(ctx, party, order, baseSpeed, remaining, terrains)
			case domain.OrderJoinBattle:
				remaining, err = s.moveToBattle(ctx, party, order, baseSpeed, remaining, terrains)
			default:
				s.dropFrontOrder(ctx, party, order, "unknown order type")
			}
			if err != nil {
				return moved, err
			}
		}
	}

	if err := s.partyRepo.SaveParties(ctx, parties...); err != nil {
		return moved, err
	}
	return moved, nil
}

// partyBaseSpeed 计算不含地形系数的基准速度，地形逐段再乘。
func partyBaseSpeed(p *domain.Party) float64 {
	var mounts []worldservice.MountStack
	for _, it := range p.Items {
		if it.MountHitPoints > 0 {
			mounts = append(mounts, worldservice.MountStack{HitPoints: it.MountHitPoints, Count: it.Count})
		}
	}
	return worldservice.ComputeSpeed(p.Troops, mounts, nil).BaseSpeedWithoutTerrain
}

func (s *MovementService) dropFrontOrder(ctx context.Context, p *domain.Party, o *domain.Order, reason string) {
	s.log.WithContext(ctx).Warn("party order dropped",
		zap.Int("party_id", p.ID), zap.String("order_type", string(o.Type)), zap.String("reason", reason))
	p.Orders = p.Orders[1:]
}

func (s *MovementService) moveToPoint(ctx context.Context, p *domain.Party, o *domain.Order,
	baseSpeed, remaining float64, terrains worlddomain.Catalog) float64 {

	if len(o.Waypoints) == 0 {
		s.dropFrontOrder(ctx, p, o, "no waypoints")
		return remaining
	}

	reachedCount := 0
	for remaining > 0 && reachedCount < len(o.Waypoints) {
		var reached bool
		remaining, reached = moveTowards(p, o.Waypoints[reachedCount], baseSpeed, remaining, terrains)
		if !reached {
			break
		}
		reachedCount++
	}
	o.Waypoints = o.Waypoints[reachedCount:]

	if len(o.Waypoints) == 0 {
		p.Orders = p.Orders[1:]
	}
	return remaining
}

func (s *MovementService) moveToParty(ctx context.Context, p *domain.Party, o *domain.Order,
	byID map[int]*domain.Party, baseSpeed, remaining float64, terrains worlddomain.Catalog) (float64, error) {

	if o.TargetPartyID == nil {
		s.dropFrontOrder(ctx, p, o, "no target party")
		return remaining, nil
	}
	target, ok := byID[*o.TargetPartyID]
	if !ok {
		s.dropFrontOrder(ctx, p, o, "target party gone")
		return remaining, nil
	}
	if planar.Distance(p.Position, target.Position) > s.viewDistance {
		// 目标脱离视野，订单作废
		s.dropFrontOrder(ctx, p, o, "target out of sight")
		return remaining, nil
	}

	if o.Type == domain.OrderFollowParty {
		// 跟随永远消耗完本轮时间，避免在同一订单上死循环
		moveTowards(p, target.Position, baseSpeed, remaining, terrains)
		return 0, nil
	}

	if planar.Distance(p.Position, target.Position) > s.interactionDistance {
		left, _ := moveTowards(p, target.Position, baseSpeed, remaining, terrains)
		return left, nil
	}

	switch o.Type {
	case domain.OrderAttackParty:
		if !target.Status.Attackable() {
			s.dropFrontOrder(ctx, p, o, "target not attackable")
			return remaining, nil
		}
		if err := s.startBattle(ctx, p, target); err != nil {
			return remaining, err
		}
	case domain.OrderTransferOfferParty:
		if err := s.promoteTransferOffer(ctx, p, target); err != nil {
			return remaining, err
		}
	}
	return remaining, nil
}

// promoteTransferOffer 发起方抵达后将 Intent 要约升级为 Pending，
// 发起方停下等待对方答复。
func (s *MovementService) promoteTransferOffer(ctx context.Context, p, target *domain.Party) error {
	offer, err := s.offerRepo.GetIntentOffer(ctx, p.ID, target.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTransferOfferNotFound) {
			s.dropFrontOrder(ctx, p, p.Orders[0], "intent offer gone")
			return nil
		}
		return err
	}
	offer.Status = domain.TransferPending
	if err := s.offerRepo.SaveOfferStatus(ctx, offer); err != nil {
		return err
	}
	p.Status = domain.StatusAwaitingPartyOfferDecision
	p.CurrentPartyID = &target.ID
	p.ClearOrders()
	return nil
}

func (s *MovementService) moveToSettlement(ctx context.Context, p *domain.Party, o *domain.Order,
	baseSpeed, remaining float64, terrains worlddomain.Catalog) (float64, error) {

	if o.TargetSettlementID == nil {
		s.dropFrontOrder(ctx, p, o, "no target settlement")
		return remaining, nil
	}
	target, err := s.settlements.GetSettlement(ctx, *o.TargetSettlementID)
	if err != nil {
		return remaining, err
	}

	if planar.Distance(p.Position, target.Position) > s.interactionDistance {
		left, _ := moveTowards(p, target.Position, baseSpeed, remaining, terrains)
		return left, nil
	}

	p.Position = target.Position
	if o.Type == domain.OrderMoveToSettlement {
		p.Status = domain.StatusIdleInSettlement
		p.CurrentSettlementID = &target.ID
		p.Orders = p.Orders[1:]
		return remaining, nil
	}
	if err := s.startSettlementBattle(ctx, p, target); err != nil {
		return remaining, err
	}
	return remaining, nil
}

func (s *MovementService) moveToBattle(ctx context.Context, p *domain.Party, o *domain.Order,
	baseSpeed, remaining float64, terrains worlddomain.Catalog) (float64, error) {

	if o.TargetBattleID == nil {
		s.dropFrontOrder(ctx, p, o, "no target battle")
		return remaining, nil
	}
	target, err := s.battles.GetBattle(ctx, *o.TargetBattleID)
	if err != nil {
		if errors.Is(err, battledomain.ErrBattleNotFound) {
			s.dropFrontOrder(ctx, p, o, "target battle gone")
			return remaining, nil
		}
		return remaining, err
	}

	if planar.Distance(p.Position, target.Position) > s.interactionDistance {
		left, _ := moveTowards(p, target.Position, baseSpeed, remaining, terrains)
		return left, nil
	}

	// 到场后申请转入待决，部队停下等待指挥官裁决
	if err := s.battles.PromoteIntentApplications(ctx, p.ID); err != nil {
		return remaining, err
	}
	p.Position = target.Position
	p.Status = domain.StatusAwaitingBattleJoinDecision
	p.CurrentBattleID = &target.ID
	p.ClearOrders()
	return remaining, nil
}

func (s *MovementService) startBattle(ctx context.Context, attacker, defender *domain.Party) error {
	battle := &battledomain.Battle{
		Phase:     battledomain.PhasePreparation,
		Region:    defender.Region,
		Position:  midPoint(attacker.Position, defender.Position),
		CreatedAt: s.now(),
		Fighters: []*battledomain.Fighter{
			{
				PartyID:            &attacker.ID,
				Side:               battledomain.SideAttacker,
				Commander:          true,
				Troops:             attacker.Troops,
				VulnerabilityHours: attacker.VulnerabilityHours,
			},
			{
				PartyID:            &defender.ID,
				Side:               battledomain.SideDefender,
				Commander:          true,
				Troops:             defender.Troops,
				VulnerabilityHours: defender.VulnerabilityHours,
			},
		},
	}
	if err := s.battles.CreateBattle(ctx, battle); err != nil {
		return err
	}

	attacker.Status = domain.StatusInBattle
	attacker.CurrentBattleID = &battle.ID
	attacker.ClearOrders()
	defender.Status = domain.StatusInBattle
	defender.CurrentBattleID = &battle.ID
	defender.ClearOrders()

	s.log.WithContext(ctx).Info("party initiated a battle",
		zap.Int("attacker_id", attacker.ID), zap.Int("defender_id", defender.ID),
		zap.Int("battle_id", battle.ID))
	return nil
}

// startSettlementBattle 对据点开战。同一据点最多一场未结束的战斗。
func (s *MovementService) startSettlementBattle(ctx context.Context, attacker *domain.Party,
	settlement *settlementdomain.Settlement) error {

	inProgress, err := s.battles.HasActiveSettlementBattle(ctx, settlement.ID)
	if err != nil {
		return err
	}
	attacker.Orders = attacker.Orders[1:]
	if inProgress {
		return nil
	}

	battle := &battledomain.Battle{
		Phase:     battledomain.PhasePreparation,
		Region:    settlement.Region,
		Position:  midPoint(attacker.Position, settlement.Position),
		CreatedAt: s.now(),
		Fighters: []*battledomain.Fighter{
			{
				PartyID:            &attacker.ID,
				Side:               battledomain.SideAttacker,
				Commander:          true,
				Troops:             attacker.Troops,
				VulnerabilityHours: attacker.VulnerabilityHours,
			},
			{
				SettlementID: &settlement.ID,
				Side:         battledomain.SideDefender,
				Commander:    true,
				Troops:       settlement.Troops,
			},
		},
	}
	if err := s.battles.CreateBattle(ctx, battle); err != nil {
		return err
	}

	attacker.Status = domain.StatusInBattle
	attacker.CurrentBattleID = &battle.ID
	attacker.ClearOrders()

	s.log.WithContext(ctx).Info("party initiated a settlement battle",
		zap.Int("attacker_id", attacker.ID), zap.Int("settlement_id", settlement.ID),
		zap.Int("battle_id", battle.ID))
	return nil
}

// moveTowards 沿直线向 target 推进，按地形边界逐段结算耗时。
// 返回剩余时间和是否抵达。
func moveTowards(p *domain.Party, target orb.Point, baseSpeed, remaining float64,
	terrains worlddomain.Catalog) (float64, bool) {

	if planar.Distance(p.Position, target) < 1e-10 {
		return remaining, true
	}

	segments := worldservice.BuildPathSegments(p.Position, target, terrains)
	for _, seg := range segments {
		segDistance := planar.Distance(p.Position, seg.End)
		speed := baseSpeed * seg.TerrainMultiplier
		if speed <= 0 {
			// 不可通行地形，停在边界上
			return 0, false
		}
		reachable := speed * remaining
		if segDistance <= reachable {
			remaining -= segDistance / speed
			p.Position = seg.End
			continue
		}
		p.Position = worldservice.Interpolate(p.Position, seg.End, reachable/segDistance)
		return 0, false
	}
	return remaining, true
}

func midPoint(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}
