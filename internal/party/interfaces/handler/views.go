package handler

import (
	"github.com/paulmach/orb/geojson"

	battledomain "Strategus/internal/battle/domain"
	"Strategus/internal/party/app"
	"Strategus/internal/party/domain"
	settlementdomain "Strategus/internal/settlement/domain"
)

type partyItemView struct {
	ItemID         string `json:"item_id"`
	Count          int    `json:"count"`
	MountHitPoints int    `json:"mount_hit_points,omitempty"`
}

type orderView struct {
	Type               string            `json:"type"`
	Index              int               `json:"index"`
	Waypoints          *geojson.Geometry `json:"waypoints,omitempty"`
	TargetPartyID      *int              `json:"target_party_id,omitempty"`
	TargetSettlementID *int              `json:"target_settlement_id,omitempty"`
	TargetBattleID     *int              `json:"target_battle_id,omitempty"`
}

type partyView struct {
	ID                  int               `json:"id"`
	Name                string            `json:"name"`
	Region              string            `json:"region"`
	Gold                int               `json:"gold"`
	Troops              float64           `json:"troops"`
	Position            *geojson.Geometry `json:"position"`
	Status              string            `json:"status"`
	CurrentPartyID      *int              `json:"current_party_id,omitempty"`
	CurrentSettlementID *int              `json:"current_settlement_id,omitempty"`
	CurrentBattleID     *int              `json:"current_battle_id,omitempty"`
	Items               []partyItemView   `json:"items"`
	Orders              []orderView       `json:"orders"`
}

type offerItemView struct {
	ItemID string `json:"item_id"`
	Count  int    `json:"count"`
}

type offerView struct {
	ID            int             `json:"id"`
	PartyID       int             `json:"party_id"`
	TargetPartyID int             `json:"target_party_id"`
	Status        string          `json:"status"`
	Gold          int             `json:"gold"`
	Troops        float64         `json:"troops"`
	Items         []offerItemView `json:"items"`
}

type pathSegmentView struct {
	Start           *geojson.Geometry `json:"start"`
	End             *geojson.Geometry `json:"end"`
	Distance        float64           `json:"distance"`
	SpeedMultiplier float64           `json:"speed_multiplier"`
	Speed           float64           `json:"speed"`
}

type orderProjectionView struct {
	Order           orderView         `json:"order"`
	PathSegments    []pathSegmentView `json:"path_segments"`
	JoinIntentSides []string          `json:"join_intent_sides,omitempty"`
	TransferIntent  *offerView        `json:"transfer_intent,omitempty"`
}

type visiblePartyView struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	Region   string            `json:"region"`
	Troops   float64           `json:"troops"`
	Position *geojson.Geometry `json:"position"`
	Status   string            `json:"status"`
}

type visibleSettlementView struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Region   string            `json:"region"`
	Position *geojson.Geometry `json:"position"`
}

type visibleBattleView struct {
	ID       int               `json:"id"`
	Region   string            `json:"region"`
	Phase    string            `json:"phase"`
	Position *geojson.Geometry `json:"position"`
}

type updateView struct {
	Party              partyView               `json:"party"`
	Speed              float64                 `json:"speed"`
	Orders             []orderProjectionView   `json:"orders"`
	TransferOffers     []offerView             `json:"transfer_offers"`
	VisibleParties     []visiblePartyView      `json:"visible_parties"`
	VisibleSettlements []visibleSettlementView `json:"visible_settlements"`
	VisibleBattles     []visibleBattleView     `json:"visible_battles"`
}

func newOrderView(o *domain.Order) orderView {
	view := orderView{
		Type:               string(o.Type),
		Index:              o.Index,
		TargetPartyID:      o.TargetPartyID,
		TargetSettlementID: o.TargetSettlementID,
		TargetBattleID:     o.TargetBattleID,
	}
	if len(o.Waypoints) > 0 {
		view.Waypoints = geojson.NewGeometry(o.Waypoints)
	}
	return view
}

func newPartyView(p *domain.Party) partyView {
	items := make([]partyItemView, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, partyItemView{
			ItemID:         it.ItemID,
			Count:          it.Count,
			MountHitPoints: it.MountHitPoints,
		})
	}
	orders := make([]orderView, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, newOrderView(o))
	}
	return partyView{
		ID:                  p.ID,
		Name:                p.Name,
		Region:              p.Region,
		Gold:                p.Gold,
		Troops:              p.Troops,
		Position:            geojson.NewGeometry(p.Position),
		Status:              string(p.Status),
		CurrentPartyID:      p.CurrentPartyID,
		CurrentSettlementID: p.CurrentSettlementID,
		CurrentBattleID:     p.CurrentBattleID,
		Items:               items,
		Orders:              orders,
	}
}

func newOfferView(o *domain.TransferOffer) offerView {
	items := make([]offerItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, offerItemView{ItemID: it.ItemID, Count: it.Count})
	}
	return offerView{
		ID:            o.ID,
		PartyID:       o.PartyID,
		TargetPartyID: o.TargetPartyID,
		Status:        string(o.Status),
		Gold:          o.Gold,
		Troops:        o.Troops,
		Items:         items,
	}
}

func newProjectionView(p *app.OrderProjection) orderProjectionView {
	view := orderProjectionView{Order: newOrderView(p.Order)}
	for _, seg := range p.PathSegments {
		view.PathSegments = append(view.PathSegments, pathSegmentView{
			Start:           geojson.NewGeometry(seg.Start),
			End:             geojson.NewGeometry(seg.End),
			Distance:        seg.Distance,
			SpeedMultiplier: seg.SpeedMultiplier,
			Speed:           seg.Speed,
		})
	}
	for _, side := range p.JoinIntentSides {
		view.JoinIntentSides = append(view.JoinIntentSides, string(side))
	}
	if p.TransferIntent != nil {
		intent := newOfferView(p.TransferIntent)
		view.TransferIntent = &intent
	}
	return view
}

func newUpdateView(u *app.StrategusUpdate) updateView {
	view := updateView{
		Party: newPartyView(u.Party.Party),
		Speed: u.Party.Speed,
	}
	for _, p := range u.Party.Orders {
		view.Orders = append(view.Orders, newProjectionView(p))
	}
	for _, o := range u.Party.TransferOffers {
		view.TransferOffers = append(view.TransferOffers, newOfferView(o))
	}
	for _, p := range u.VisibleParties {
		view.VisibleParties = append(view.VisibleParties, newVisiblePartyView(p))
	}
	for _, s := range u.VisibleSettlements {
		view.VisibleSettlements = append(view.VisibleSettlements, newVisibleSettlementView(s))
	}
	for _, b := range u.VisibleBattles {
		view.VisibleBattles = append(view.VisibleBattles, newVisibleBattleView(b))
	}
	return view
}

func newVisiblePartyView(p *domain.Party) visiblePartyView {
	return visiblePartyView{
		ID:       p.ID,
		Name:     p.Name,
		Region:   p.Region,
		Troops:   p.Troops,
		Position: geojson.NewGeometry(p.Position),
		Status:   string(p.Status),
	}
}

func newVisibleSettlementView(s *settlementdomain.Settlement) visibleSettlementView {
	return visibleSettlementView{
		ID:       s.ID,
		Name:     s.Name,
		Type:     string(s.Type),
		Region:   s.Region,
		Position: geojson.NewGeometry(s.Position),
	}
}

func newVisibleBattleView(b *battledomain.Battle) visibleBattleView {
	return visibleBattleView{
		ID:       b.ID,
		Region:   b.Region,
		Phase:    string(b.Phase),
		Position: geojson.NewGeometry(b.Position),
	}
}
