package app

import (
	"context"

	"github.com/paulmach/orb"

	"Strategus/internal/world/domain"
)

// TerrainService 维护地图编辑用的地形区域，查询侧供移动与路径计算使用。
type TerrainService struct {
	terrainRepo TerrainRepo
}

func NewTerrainService(terrainRepo TerrainRepo) *TerrainService {
	return &TerrainService{terrainRepo: terrainRepo}
}

func (s *TerrainService) List(ctx context.Context) (domain.Catalog, error) {
	return s.terrainRepo.ListTerrains(ctx)
}

// Save 新增或更新地形区域。未知地形种类在进入存储前拒绝。
func (s *TerrainService) Save(ctx context.Context, id int, terrainType domain.TerrainType, boundary orb.Polygon) (*domain.Terrain, error) {
	if !terrainType.Valid() {
		return nil, domain.ErrTerrainInvalidType.WithData("type", string(terrainType))
	}

	t := &domain.Terrain{ID: id, Type: terrainType, Boundary: boundary}
	if id != 0 {
		// 更新前确认存在，避免 Save 把更新悄悄变成插入
		if _, err := s.terrainRepo.GetTerrain(ctx, id); err != nil {
			return nil, err
		}
	}
	if err := s.terrainRepo.SaveTerrain(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TerrainService) Delete(ctx context.Context, id int) error {
	return s.terrainRepo.DeleteTerrain(ctx, id)
}
