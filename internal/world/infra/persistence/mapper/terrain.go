package mapper

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"Strategus/internal/world/domain"
	"Strategus/internal/world/infra/persistence/model"
)

// TerrainModelToEntity 反序列化 GeoJSON 边界并还原领域对象。
func TerrainModelToEntity(m *model.Terrain) (*domain.Terrain, error) {
	geom, err := geojson.UnmarshalGeometry([]byte(m.Boundary))
	if err != nil {
		return nil, err
	}
	boundary, ok := geom.Geometry().(orb.Polygon)
	if !ok {
		return nil, domain.ErrTerrainInvalidType.WithData("id", m.ID)
	}
	return &domain.Terrain{
		ID:       m.ID,
		Type:     domain.TerrainType(m.Type),
		Boundary: boundary,
	}, nil
}

func TerrainEntityToModel(t *domain.Terrain) (*model.Terrain, error) {
	raw, err := json.Marshal(geojson.NewGeometry(t.Boundary))
	if err != nil {
		return nil, err
	}
	return &model.Terrain{
		ID:       t.ID,
		Type:     string(t.Type),
		Boundary: string(raw),
	}, nil
}
