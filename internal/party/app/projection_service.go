package app

import (
	"context"
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/domain"
	settlementdomain "Strategus/internal/settlement/domain"
	worlddomain "Strategus/internal/world/domain"
	worldservice "Strategus/internal/world/service"
)

// visibleStatuses 是会出现在他人视野里的部队状态。
// 据点内与战斗中的部队对外不可见。
var visibleStatuses = map[domain.PartyStatus]bool{
	domain.StatusIdle:                       true,
	domain.StatusAwaitingBattleJoinDecision: true,
	domain.StatusAwaitingPartyOfferDecision: true,
}

// StrategusUpdate 是一支部队的完整视野快照。
type StrategusUpdate struct {
	Party              *PartyState
	VisibleParties     []*domain.Party
	VisibleSettlements []*settlementdomain.Settlement
	VisibleBattles     []*battledomain.Battle
}

// PartyState 是本方部队的状态与订单投影。
type PartyState struct {
	Party  *domain.Party
	Speed  float64
	Orders []*OrderProjection
	// TransferOffers 是该部队作为任一方参与的全部要约。
	TransferOffers []*domain.TransferOffer
}

// OrderProjection 是一条订单的预计路径与随单意向。
// 路径按当前目标位置推算，目标一旦移动投影即过期，仅供展示。
type OrderProjection struct {
	Order        *domain.Order
	PathSegments []PathSegmentProjection
	// JoinIntentSides 是 JoinBattle 订单尚未提交的意向侧别。
	JoinIntentSides []battledomain.Side
	// TransferIntent 是 TransferOfferParty 订单随行的 Intent 要约。
	TransferIntent *domain.TransferOffer
}

type PathSegmentProjection struct {
	Start           orb.Point
	End             orb.Point
	Distance        float64
	SpeedMultiplier float64
	Speed           float64
}

// ProjectionService 组装某部队视角的战役地图快照。只读，不产生任何状态变更。
type ProjectionService struct {
	partyRepo    PartyRepo
	offerRepo    TransferOfferRepo
	battles      BattleGateway
	settlements  SettlementReader
	terrains     TerrainProvider
	viewDistance float64
}

func NewProjectionService(partyRepo PartyRepo, offerRepo TransferOfferRepo, battles BattleGateway,
	settlements SettlementReader, terrains TerrainProvider, viewDistance float64) *ProjectionService {
	return &ProjectionService{
		partyRepo:    partyRepo,
		offerRepo:    offerRepo,
		battles:      battles,
		settlements:  settlements,
		terrains:     terrains,
		viewDistance: viewDistance,
	}
}

// GetUpdate 返回 partyID 视角的完整快照。
func (s *ProjectionService) GetUpdate(ctx context.Context, partyID int) (*StrategusUpdate, error) {
	party, err := s.partyRepo.GetParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	parties, err := s.partyRepo.ListParties(ctx)
	if err != nil {
		return nil, err
	}
	var visibleParties []*domain.Party
	for _, p := range parties {
		if p.ID == party.ID || !visibleStatuses[p.Status] {
			continue
		}
		if planar.Distance(p.Position, party.Position) <= s.viewDistance {
			visibleParties = append(visibleParties, p)
		}
	}

	settlements, err := s.settlements.ListSettlements(ctx)
	if err != nil {
		return nil, err
	}
	var visibleSettlements []*settlementdomain.Settlement
	for _, st := range settlements {
		if planar.Distance(st.Position, party.Position) <= s.viewDistance {
			visibleSettlements = append(visibleSettlements, st)
		}
	}

	battles, err := s.battles.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	var visibleBattles []*battledomain.Battle
	for _, b := range battles {
		if planar.Distance(b.Position, party.Position) <= s.viewDistance {
			visibleBattles = append(visibleBattles, b)
		}
	}

	terrains, err := s.terrains.ListTerrains(ctx)
	if err != nil {
		return nil, err
	}
	speed := partyBaseSpeed(party)

	state := &PartyState{Party: party, Speed: speed}
	// 上一条订单的终点是下一条订单的起点
	current := party.Position
	for _, order := range party.Orders {
		projection, err := s.projectOrder(ctx, party, order, parties, settlements, battles, terrains, current, speed)
		if err != nil {
			return nil, err
		}
		if n := len(projection.PathSegments); n > 0 {
			current = projection.PathSegments[n-1].End
		}
		state.Orders = append(state.Orders, projection)
	}

	offers, err := s.offerRepo.ListOffersByParty(ctx, party.ID)
	if err != nil {
		return nil, err
	}
	state.TransferOffers = offers

	return &StrategusUpdate{
		Party:              state,
		VisibleParties:     visibleParties,
		VisibleSettlements: visibleSettlements,
		VisibleBattles:     visibleBattles,
	}, nil
}

func (s *ProjectionService) projectOrder(ctx context.Context, party *domain.Party, order *domain.Order,
	parties []*domain.Party, settlements []*settlementdomain.Settlement, battles []*battledomain.Battle,
	terrains worlddomain.Catalog, start orb.Point, speed float64) (*OrderProjection, error) {

	projection := &OrderProjection{Order: order}
	points := orderPoints(start, order, parties, settlements, battles)
	for i := 0; i+1 < len(points); i++ {
		for _, seg := range worldservice.BuildPathSegments(points[i], points[i+1], terrains) {
			projection.PathSegments = append(projection.PathSegments, PathSegmentProjection{
				Start:           seg.Start,
				End:             seg.End,
				Distance:        seg.Distance(),
				SpeedMultiplier: seg.TerrainMultiplier,
				Speed:           speed * seg.TerrainMultiplier,
			})
		}
	}

	switch order.Type {
	case domain.OrderJoinBattle:
		if order.TargetBattleID == nil {
			break
		}
		applications, err := s.battles.ListApplicationsByParty(ctx, party.ID, battledomain.ApplicationIntent)
		if err != nil {
			return nil, err
		}
		for _, a := range applications {
			if a.BattleID == *order.TargetBattleID {
				projection.JoinIntentSides = append(projection.JoinIntentSides, a.Side)
			}
		}
	case domain.OrderTransferOfferParty:
		if order.TargetPartyID == nil {
			break
		}
		offer, err := s.offerRepo.GetIntentOffer(ctx, party.ID, *order.TargetPartyID)
		if err != nil && !errors.Is(err, domain.ErrTransferOfferNotFound) {
			return nil, err
		}
		projection.TransferIntent = offer
	}
	return projection, nil
}

// orderPoints 返回订单的途径点序列，起点在前。
// 目标类订单取目标的当前位置，目标不在集合里则没有路径。
func orderPoints(start orb.Point, order *domain.Order, parties []*domain.Party,
	settlements []*settlementdomain.Settlement, battles []*battledomain.Battle) []orb.Point {

	points := []orb.Point{start}
	switch {
	case order.Type == domain.OrderMoveToPoint:
		points = append(points, order.Waypoints...)
	case order.Type.TargetsParty():
		if order.TargetPartyID == nil {
			break
		}
		for _, p := range parties {
			if p.ID == *order.TargetPartyID {
				points = append(points, p.Position)
				break
			}
		}
	case order.Type.TargetsSettlement():
		if order.TargetSettlementID == nil {
			break
		}
		for _, st := range settlements {
			if st.ID == *order.TargetSettlementID {
				points = append(points, st.Position)
				break
			}
		}
	case order.Type == domain.OrderJoinBattle:
		if order.TargetBattleID == nil {
			break
		}
		for _, b := range battles {
			if b.ID == *order.TargetBattleID {
				points = append(points, b.Position)
				break
			}
		}
	}
	return points
}
