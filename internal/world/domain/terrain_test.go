package domain

import (
	"testing"

	"github.com/paulmach/orb"
)

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}}
}

func TestCatalog_无覆盖时按平原计(t *testing.T) {
	c := Catalog{
		{ID: 1, Type: TerrainThickForest, Boundary: square(10, 10, 20, 20)},
	}

	p := orb.Point{0, 0}
	if got := c.TypeAt(p); got != TerrainPlain {
		t.Fatalf("期望 Plain, got=%v", got)
	}
	if got := c.MultiplierAt(p); got != 1.0 {
		t.Fatalf("期望系数 1.0, got=%v", got)
	}
}

func TestCatalog_取覆盖点的第一块地形(t *testing.T) {
	c := Catalog{
		{ID: 1, Type: TerrainShallowWater, Boundary: square(0, 0, 10, 10)},
		{ID: 2, Type: TerrainThickForest, Boundary: square(0, 0, 10, 10)},
	}

	p := orb.Point{5, 5}
	terrain := c.At(p)
	if terrain == nil || terrain.ID != 1 {
		t.Fatalf("期望命中 ID=1 的地形, got=%+v", terrain)
	}
	if got := c.MultiplierAt(p); got != 0.2 {
		t.Fatalf("期望浅水系数 0.2, got=%v", got)
	}
}

func TestTerrainType_不可通行地形系数为零(t *testing.T) {
	for _, tt := range []TerrainType{TerrainBarrier, TerrainDeepWater} {
		if got := tt.SpeedMultiplier(); got != 0 {
			t.Fatalf("%v 期望系数 0, got=%v", tt, got)
		}
	}
}

func TestTerrainType_枚举校验(t *testing.T) {
	if !TerrainSparseForest.Valid() {
		t.Fatalf("SparseForest 应合法")
	}
	if TerrainType("Swamp").Valid() {
		t.Fatalf("未知地形应不合法")
	}
}
