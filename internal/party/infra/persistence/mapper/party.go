package mapper

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"Strategus/internal/party/domain"
	"Strategus/internal/party/infra/persistence/model"
)

func PartyModelToEntity(m *model.Party) (*domain.Party, error) {
	pos, err := PointFromJSON(m.Position)
	if err != nil {
		return nil, err
	}
	var hours []int
	if m.VulnerabilityHours != "" {
		if err := json.Unmarshal([]byte(m.VulnerabilityHours), &hours); err != nil {
			return nil, err
		}
	}
	return &domain.Party{
		ID:                  m.ID,
		Name:                m.Name,
		Region:              m.Region,
		Gold:                m.Gold,
		Troops:              m.Troops,
		Position:            pos,
		Status:              domain.PartyStatus(m.Status),
		CurrentPartyID:      m.CurrentPartyID,
		CurrentSettlementID: m.CurrentSettlementID,
		CurrentBattleID:     m.CurrentBattleID,
		VulnerabilityHours:  hours,
	}, nil
}

func PartyEntityToModel(p *domain.Party) (*model.Party, error) {
	pos, err := PointToJSON(p.Position)
	if err != nil {
		return nil, err
	}
	hours, err := json.Marshal(p.VulnerabilityHours)
	if err != nil {
		return nil, err
	}
	return &model.Party{
		ID:                  p.ID,
		Name:                p.Name,
		Region:              p.Region,
		Gold:                p.Gold,
		Troops:              p.Troops,
		Position:            pos,
		Status:              string(p.Status),
		CurrentPartyID:      p.CurrentPartyID,
		CurrentSettlementID: p.CurrentSettlementID,
		CurrentBattleID:     p.CurrentBattleID,
		VulnerabilityHours:  string(hours),
	}, nil
}

func ItemModelToEntity(m *model.PartyItem) *domain.PartyItem {
	return &domain.PartyItem{
		ID:             m.ID,
		PartyID:        m.PartyID,
		ItemID:         m.ItemID,
		Count:          m.Count,
		MountHitPoints: m.MountHitPoints,
	}
}

func ItemEntityToModel(it *domain.PartyItem) *model.PartyItem {
	return &model.PartyItem{
		ID:             it.ID,
		PartyID:        it.PartyID,
		ItemID:         it.ItemID,
		Count:          it.Count,
		MountHitPoints: it.MountHitPoints,
	}
}

func OrderModelToEntity(m *model.PartyOrder) (*domain.Order, error) {
	var waypoints orb.MultiPoint
	if m.Waypoints != "" {
		geom, err := geojson.UnmarshalGeometry([]byte(m.Waypoints))
		if err != nil {
			return nil, err
		}
		mp, ok := geom.Geometry().(orb.MultiPoint)
		if !ok {
			return nil, domain.ErrSystemUnavailable.WithData("reason", "waypoints is not a multipoint")
		}
		waypoints = mp
	}
	return &domain.Order{
		ID:                 m.ID,
		PartyID:            m.PartyID,
		Type:               domain.OrderType(m.Type),
		Index:              m.OrderIndex,
		Waypoints:          waypoints,
		TargetPartyID:      m.TargetPartyID,
		TargetSettlementID: m.TargetSettlementID,
		TargetBattleID:     m.TargetBattleID,
	}, nil
}

func OrderEntityToModel(o *domain.Order) (*model.PartyOrder, error) {
	waypoints := ""
	if len(o.Waypoints) > 0 {
		raw, err := json.Marshal(geojson.NewGeometry(o.Waypoints))
		if err != nil {
			return nil, err
		}
		waypoints = string(raw)
	}
	return &model.PartyOrder{
		ID:                 o.ID,
		PartyID:            o.PartyID,
		Type:               string(o.Type),
		OrderIndex:         o.Index,
		Waypoints:          waypoints,
		TargetPartyID:      o.TargetPartyID,
		TargetSettlementID: o.TargetSettlementID,
		TargetBattleID:     o.TargetBattleID,
	}, nil
}

func OfferModelToEntity(m *model.PartyTransferOffer) *domain.TransferOffer {
	return &domain.TransferOffer{
		ID:            m.ID,
		PartyID:       m.PartyID,
		TargetPartyID: m.TargetPartyID,
		Status:        domain.TransferOfferStatus(m.Status),
		Gold:          m.Gold,
		Troops:        m.Troops,
	}
}

func OfferEntityToModel(o *domain.TransferOffer) *model.PartyTransferOffer {
	return &model.PartyTransferOffer{
		ID:            o.ID,
		PartyID:       o.PartyID,
		TargetPartyID: o.TargetPartyID,
		Status:        string(o.Status),
		Gold:          o.Gold,
		Troops:        o.Troops,
	}
}

func OfferItemModelToEntity(m *model.PartyTransferOfferItem) *domain.TransferOfferItem {
	return &domain.TransferOfferItem{
		ID:      m.ID,
		OfferID: m.OfferID,
		ItemID:  m.ItemID,
		Count:   m.Count,
	}
}

func OfferItemEntityToModel(it *domain.TransferOfferItem) *model.PartyTransferOfferItem {
	return &model.PartyTransferOfferItem{
		ID:      it.ID,
		OfferID: it.OfferID,
		ItemID:  it.ItemID,
		Count:   it.Count,
	}
}

// PointFromJSON 解析 GeoJSON Point 字段。
func PointFromJSON(raw string) (orb.Point, error) {
	geom, err := geojson.UnmarshalGeometry([]byte(raw))
	if err != nil {
		return orb.Point{}, err
	}
	p, ok := geom.Geometry().(orb.Point)
	if !ok {
		return orb.Point{}, domain.ErrSystemUnavailable.WithData("reason", "position is not a point")
	}
	return p, nil
}

func PointToJSON(p orb.Point) (string, error) {
	raw, err := json.Marshal(geojson.NewGeometry(p))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
