package mapper

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"Strategus/internal/battle/domain"
	"Strategus/internal/battle/infra/persistence/model"
)

func BattleModelToEntity(m *model.Battle) (*domain.Battle, error) {
	pos, err := PointFromJSON(m.Position)
	if err != nil {
		return nil, err
	}
	return &domain.Battle{
		ID:           m.ID,
		Region:       m.Region,
		Phase:        domain.BattlePhase(m.Phase),
		Position:     pos,
		ScheduledFor: m.ScheduledFor,
		CreatedAt:    m.CreatedAt,
	}, nil
}

func BattleEntityToModel(b *domain.Battle) (*model.Battle, error) {
	pos, err := PointToJSON(b.Position)
	if err != nil {
		return nil, err
	}
	return &model.Battle{
		ID:           b.ID,
		Region:       b.Region,
		Phase:        string(b.Phase),
		Position:     pos,
		ScheduledFor: b.ScheduledFor,
		CreatedAt:    b.CreatedAt,
	}, nil
}

func FighterModelToEntity(m *model.BattleFighter) (*domain.Fighter, error) {
	var hours []int
	if m.VulnerabilityHours != "" {
		if err := json.Unmarshal([]byte(m.VulnerabilityHours), &hours); err != nil {
			return nil, err
		}
	}
	return &domain.Fighter{
		ID:                 m.ID,
		BattleID:           m.BattleID,
		PartyID:            m.PartyID,
		SettlementID:       m.SettlementID,
		Side:               domain.Side(m.Side),
		Commander:          m.Commander,
		Troops:             m.Troops,
		ParticipantSlots:   m.ParticipantSlots,
		VulnerabilityHours: hours,
	}, nil
}

func FighterEntityToModel(f *domain.Fighter) (*model.BattleFighter, error) {
	hours, err := json.Marshal(f.VulnerabilityHours)
	if err != nil {
		return nil, err
	}
	return &model.BattleFighter{
		ID:                 f.ID,
		BattleID:           f.BattleID,
		PartyID:            f.PartyID,
		SettlementID:       f.SettlementID,
		Side:               string(f.Side),
		Commander:          f.Commander,
		Troops:             f.Troops,
		ParticipantSlots:   f.ParticipantSlots,
		VulnerabilityHours: string(hours),
	}, nil
}

func ApplicationModelToEntity(m *model.BattleFighterApplication) *domain.FighterApplication {
	return &domain.FighterApplication{
		ID:       m.ID,
		BattleID: m.BattleID,
		PartyID:  m.PartyID,
		Side:     domain.Side(m.Side),
		Status:   domain.ApplicationStatus(m.Status),
	}
}

func ApplicationEntityToModel(a *domain.FighterApplication) *model.BattleFighterApplication {
	return &model.BattleFighterApplication{
		ID:       a.ID,
		BattleID: a.BattleID,
		PartyID:  a.PartyID,
		Side:     string(a.Side),
		Status:   string(a.Status),
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
