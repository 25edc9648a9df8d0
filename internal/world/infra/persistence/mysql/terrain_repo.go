package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Strategus/internal/world/domain"
	"Strategus/internal/world/infra/persistence/mapper"
	"Strategus/internal/world/infra/persistence/model"
)

type TerrainRepo struct {
	db *gorm.DB
}

func NewTerrainRepo(db *gorm.DB) *TerrainRepo {
	return &TerrainRepo{db: db}
}

const OpListTerrains = "repo.terrain.ListTerrains"

// ListTerrains 加载全部地形区域，移动与路径计算按请求一次性读取。
func (r *TerrainRepo) ListTerrains(ctx context.Context) (domain.Catalog, error) {
	var ms []model.Terrain
	if err := r.db.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.
			WithData("op", OpListTerrains).
			WithCause(err)
	}

	out := make(domain.Catalog, 0, len(ms))
	for i := range ms {
		t, err := mapper.TerrainModelToEntity(&ms[i])
		if err != nil {
			return nil, domain.ErrSystemUnavailable.
				WithData("op", OpListTerrains).
				WithData("id", ms[i].ID).
				WithCause(err)
		}
		out = append(out, t)
	}
	return out, nil
}

const OpSaveTerrain = "repo.terrain.SaveTerrain"

func (r *TerrainRepo) SaveTerrain(ctx context.Context, t *domain.Terrain) error {
	m, err := mapper.TerrainEntityToModel(t)
	if err != nil {
		return domain.ErrSystemUnavailable.
			WithData("op", OpSaveTerrain).
			WithCause(err)
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return domain.ErrSystemUnavailable.
			WithData("op", OpSaveTerrain).
			WithData("id", t.ID).
			WithCause(err)
	}
	t.ID = m.ID
	return nil
}

const OpDeleteTerrain = "repo.terrain.DeleteTerrain"

func (r *TerrainRepo) DeleteTerrain(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&model.Terrain{}, id)
	switch {
	case res.Error != nil:
		return domain.ErrSystemUnavailable.
			WithData("op", OpDeleteTerrain).
			WithData("id", id).
			WithCause(res.Error)
	case res.RowsAffected == 0:
		return domain.ErrTerrainNotFound.WithData("id", id)
	default:
		return nil
	}
}

const OpGetTerrain = "repo.terrain.GetTerrain"

func (r *TerrainRepo) GetTerrain(ctx context.Context, id int) (*domain.Terrain, error) {
	var m model.Terrain
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error

	switch {
	case err == nil:
		return mapperEntityOrUnavailable(&m, id)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrTerrainNotFound.WithData("id", id)
	default:
		return nil, domain.ErrSystemUnavailable.
			WithData("op", OpGetTerrain).
			WithData("id", id).
			WithCause(err)
	}
}

func mapperEntityOrUnavailable(m *model.Terrain, id int) (*domain.Terrain, error) {
	t, err := mapper.TerrainModelToEntity(m)
	if err != nil {
		return nil, domain.ErrSystemUnavailable.
			WithData("op", OpGetTerrain).
			WithData("id", id).
			WithCause(err)
	}
	return t, nil
}
