package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gorm.io/gorm"

	"Strategus/internal/settlement/domain"
	"Strategus/internal/settlement/infra/persistence/model"
)

type SettlementRepo struct {
	db *gorm.DB
}

func NewSettlementRepo(db *gorm.DB) *SettlementRepo {
	return &SettlementRepo{db: db}
}

const OpGetSettlement = "repo.settlement.GetSettlement"

func (r *SettlementRepo) GetSettlement(ctx context.Context, id int) (*domain.Settlement, error) {
	var m model.Settlement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
		return modelToEntity(&m)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrSettlementNotFound.WithData("id", id)
	default:
		return nil, domain.ErrSystemUnavailable.
			WithData("op", OpGetSettlement).
			WithData("id", id).
			WithCause(err)
	}
}

const OpListSettlements = "repo.settlement.ListSettlements"

func (r *SettlementRepo) ListSettlements(ctx context.Context) ([]*domain.Settlement, error) {
	var ms []model.Settlement
	if err := r.db.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.
			WithData("op", OpListSettlements).
			WithCause(err)
	}

	out := make([]*domain.Settlement, 0, len(ms))
	for i := range ms {
		s, err := modelToEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

const OpSaveSettlement = "repo.settlement.SaveSettlement"

func (r *SettlementRepo) SaveSettlement(ctx context.Context, s *domain.Settlement) error {
	m, err := entityToModel(s)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return domain.ErrSystemUnavailable.
			WithData("op", OpSaveSettlement).
			WithData("id", s.ID).
			WithCause(err)
	}
	s.ID = m.ID
	return nil
}

func modelToEntity(m *model.Settlement) (*domain.Settlement, error) {
	geom, err := geojson.UnmarshalGeometry([]byte(m.Position))
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("id", m.ID).WithCause(err)
	}
	pos, ok := geom.Geometry().(orb.Point)
	if !ok {
		return nil, domain.ErrSystemUnavailable.WithData("id", m.ID).WithData("reason", "position is not a point")
	}
	return &domain.Settlement{
		ID:           m.ID,
		Name:         m.Name,
		Type:         domain.SettlementType(m.Type),
		Region:       m.Region,
		Position:     pos,
		Troops:       m.Troops,
		OwnerPartyID: m.OwnerPartyID,
	}, nil
}

func entityToModel(s *domain.Settlement) (*model.Settlement, error) {
	raw, err := json.Marshal(geojson.NewGeometry(s.Position))
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("id", s.ID).WithCause(err)
	}
	return &model.Settlement{
		ID:           s.ID,
		Name:         s.Name,
		Type:         string(s.Type),
		Region:       s.Region,
		Position:     string(raw),
		Troops:       s.Troops,
		OwnerPartyID: s.OwnerPartyID,
	}, nil
}
