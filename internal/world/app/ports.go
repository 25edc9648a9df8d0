package app

import (
	"context"

	"Strategus/internal/world/domain"
)

type TerrainRepo interface {
	ListTerrains(ctx context.Context) (domain.Catalog, error)
	GetTerrain(ctx context.Context, id int) (*domain.Terrain, error)
	SaveTerrain(ctx context.Context, t *domain.Terrain) error
	DeleteTerrain(ctx context.Context, id int) error
}
