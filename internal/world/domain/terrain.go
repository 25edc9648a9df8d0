package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// TerrainType 表示地形种类，决定部队通过时的速度系数。
type TerrainType string

const (
	TerrainPlain        TerrainType = "Plain"
	TerrainSparseForest TerrainType = "SparseForest"
	TerrainThickForest  TerrainType = "ThickForest"
	TerrainBarrier      TerrainType = "Barrier"
	TerrainShallowWater TerrainType = "ShallowWater"
	TerrainDeepWater    TerrainType = "DeepWater"
)

// speedMultipliers 是各地形的速度系数。
// Barrier 和 DeepWater 为 0，即不可通行。
var speedMultipliers = map[TerrainType]float64{
	TerrainPlain:        1.0,
	TerrainSparseForest: 0.8,
	TerrainThickForest:  0.5,
	TerrainBarrier:      0,
	TerrainDeepWater:    0,
	TerrainShallowWater: 0.2,
}

// SpeedMultiplier 返回地形的速度系数。未知地形按平原处理。
func (t TerrainType) SpeedMultiplier() float64 {
	if m, ok := speedMultipliers[t]; ok {
		return m
	}
	return 1.0
}

// Valid 校验枚举值是否合法，边界层用于拒绝未知输入。
func (t TerrainType) Valid() bool {
	_, ok := speedMultipliers[t]
	return ok
}

// Terrain 是地图上一块带边界多边形的地形区域。
type Terrain struct {
	ID       int
	Type     TerrainType
	Boundary orb.Polygon
}

// Contains 判断点是否落在地形边界内。
func (t *Terrain) Contains(p orb.Point) bool {
	return planar.PolygonContains(t.Boundary, p)
}

// Catalog 是一次请求内加载的全部地形区域。
// 查询语义：取覆盖该点的第一块地形；无覆盖则按平原计。
type Catalog []*Terrain

// At 返回覆盖指定点的地形，没有则返回 nil。
func (c Catalog) At(p orb.Point) *Terrain {
	for _, t := range c {
		if t.Contains(p) {
			return t
		}
	}
	return nil
}

// TypeAt 返回指定点的地形种类，无覆盖时为平原。
func (c Catalog) TypeAt(p orb.Point) TerrainType {
	if t := c.At(p); t != nil {
		return t.Type
	}
	return TerrainPlain
}

// MultiplierAt 返回指定点的速度系数。
func (c Catalog) MultiplierAt(p orb.Point) float64 {
	if t := c.At(p); t != nil {
		return t.Type.SpeedMultiplier()
	}
	return 1.0
}
