package app

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
)

// OrderItem 是一次订单重排中的一项。
// JoinSides 仅 JoinBattle 使用，TransferIntent 仅 TransferOfferParty 使用。
type OrderItem struct {
	Type               domain.OrderType
	Waypoints          orb.MultiPoint
	TargetPartyID      int
	TargetSettlementID int
	TargetBattleID     int
	JoinSides          []battledomain.Side
	TransferIntent     *domain.TransferAmounts
}

// OrderService 整体替换部队的订单队列，并维护随订单存在的临时实体
// （Intent 要约、Intent 入场申请）。
type OrderService struct {
	partyRepo      PartyRepo
	offerRepo      TransferOfferRepo
	battles        BattleGateway
	settlements    SettlementReader
	viewDistance   float64
	minPartyTroops float64
}

func NewOrderService(partyRepo PartyRepo, offerRepo TransferOfferRepo, battles BattleGateway,
	settlements SettlementReader, viewDistance, minPartyTroops float64) *OrderService {
	return &OrderService{
		partyRepo:      partyRepo,
		offerRepo:      offerRepo,
		battles:        battles,
		settlements:    settlements,
		viewDistance:   viewDistance,
		minPartyTroops: minPartyTroops,
	}
}

// UpdateOrders 用新队列整体替换旧队列。
// 旧队列连同其 Intent 要约、Intent 入场申请一起废弃，再按新队列重建。
func (s *OrderService) UpdateOrders(ctx context.Context, partyID int, items []OrderItem) (*domain.Party, error) {
	if err := validateOrderItems(items); err != nil {
		return nil, err
	}

	party, err := s.partyRepo.GetParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party.Status == domain.StatusInBattle || party.Status == domain.StatusAwaitingBattleJoinDecision {
		return nil, domain.ErrPartyInBattle.WithData("party_id", partyID)
	}

	if err := s.offerRepo.DeleteIntentOffersByParty(ctx, partyID); err != nil {
		return nil, err
	}
	if err := s.battles.DeleteIntentApplicationsByParty(ctx, partyID); err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(items))
	for idx, item := range items {
		order := &domain.Order{
			PartyID:   partyID,
			Type:      item.Type,
			Index:     idx,
			Waypoints: item.Waypoints,
		}

		switch {
		case item.Type.TargetsParty():
			target, err := s.partyRepo.GetParty(ctx, item.TargetPartyID)
			if err != nil {
				return nil, err
			}
			if planar.Distance(party.Position, target.Position) > s.viewDistance {
				return nil, domain.ErrPartyNotInSight.WithData("target_party_id", target.ID)
			}
			if item.Type == domain.OrderTransferOfferParty {
				// 下单时就校验余量，避免部队带着兑付不了的要约上路
				if err := domain.ValidateSource(party, *item.TransferIntent, s.minPartyTroops); err != nil {
					return nil, err
				}
				offer := &domain.TransferOffer{
					PartyID:       party.ID,
					TargetPartyID: target.ID,
					Status:        domain.TransferIntent,
					Gold:          item.TransferIntent.Gold,
					Troops:        item.TransferIntent.Troops,
				}
				for _, it := range item.TransferIntent.Items {
					offer.Items = append(offer.Items, &domain.TransferOfferItem{
						ItemID: it.ItemID,
						Count:  it.Count,
					})
				}
				if err := s.offerRepo.CreateOffer(ctx, offer); err != nil {
					return nil, err
				}
			}
			order.TargetPartyID = &target.ID

		case item.Type.TargetsSettlement():
			settlement, err := s.settlements.GetSettlement(ctx, item.TargetSettlementID)
			if err != nil {
				return nil, err
			}
			order.TargetSettlementID = &settlement.ID

		case item.Type == domain.OrderJoinBattle:
			battle, err := s.battles.GetBattle(ctx, item.TargetBattleID)
			if err != nil {
				return nil, err
			}
			for _, side := range item.JoinSides {
				if err := s.battles.CreateApplication(ctx, &battledomain.FighterApplication{
					BattleID: battle.ID,
					PartyID:  party.ID,
					Side:     side,
					Status:   battledomain.ApplicationIntent,
				}); err != nil {
					return nil, err
				}
			}
			order.TargetBattleID = &battle.ID
		}

		orders = append(orders, order)
	}

	party.Orders = orders
	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

// validateOrderItems 校验队列结构与各项必填字段。
func validateOrderItems(items []OrderItem) error {
	for i, item := range items {
		if !item.Type.Valid() {
			return domain.ErrInvalidOrder.WithData("index", i).WithData("type", string(item.Type))
		}
		// 只有 MoveToPoint 可以出现在非末位
		if i < len(items)-1 && item.Type != domain.OrderMoveToPoint {
			return domain.ErrInvalidOrder.WithData("index", i).WithData("type", string(item.Type))
		}
		switch {
		case item.Type == domain.OrderMoveToPoint && len(item.Waypoints) == 0:
			return domain.ErrInvalidOrder.WithData("index", i).WithData("reason", "waypoints required")
		case item.Type.TargetsParty() && item.TargetPartyID <= 0:
			return domain.ErrInvalidOrder.WithData("index", i).WithData("reason", "target party required")
		case item.Type == domain.OrderTransferOfferParty && item.TransferIntent == nil:
			return domain.ErrInvalidOrder.WithData("index", i).WithData("reason", "transfer intent required")
		case item.Type.TargetsSettlement() && item.TargetSettlementID <= 0:
			return domain.ErrInvalidOrder.WithData("index", i).WithData("reason", "target settlement required")
		case item.Type == domain.OrderJoinBattle && (item.TargetBattleID <= 0 || len(item.JoinSides) == 0):
			return domain.ErrInvalidOrder.WithData("index", i).WithData("reason", "target battle and sides required")
		}
	}
	return nil
}
