package service

import (
	"math"
	"sort"

	"Strategus/internal/world/domain"
)

// 速度模型的基准参数。数值沿用战役地图的整体调校。
const (
	baseSpeed        = 1.0
	weightFactor     = 1.0
	forcedMarchSpeed = 2.0
)

// MountStack 是部队携带的一组同型号坐骑。
// HitPoints 用作坐骑的耐力指标，持续行军看的是耐力而不是冲刺速度。
type MountStack struct {
	HitPoints int
	Count     int
}

// SpeedBreakdown 是速度计算的完整分解，供界面展示和测试复现。
type SpeedBreakdown struct {
	BaseSpeed               float64
	TerrainSpeedFactor      float64
	CurrentTerrainType      *domain.TerrainType
	WeightFactor            float64
	MountInfluence          float64
	TroopInfluence          float64
	BaseSpeedWithoutTerrain float64
	FinalSpeed              float64
}

// ComputeSpeed 计算部队速度。纯函数，零兵力零坐骑也有定义。
// terrain 为 nil 时按中性系数（平原）计算。
func ComputeSpeed(troops float64, mounts []MountStack, terrain *domain.TerrainType) SpeedBreakdown {
	terrainFactor := 1.0
	if terrain != nil {
		terrainFactor = terrain.SpeedMultiplier()
	}

	troopInfluence := troopInfluence(troops)
	mountInfluence := mountsInfluence(troops, mounts)
	withoutTerrain := baseSpeed * weightFactor * mountInfluence * troopInfluence

	return SpeedBreakdown{
		BaseSpeed:               baseSpeed,
		TerrainSpeedFactor:      terrainFactor,
		CurrentTerrainType:      terrain,
		WeightFactor:            weightFactor,
		MountInfluence:          mountInfluence,
		TroopInfluence:          troopInfluence,
		BaseSpeedWithoutTerrain: withoutTerrain,
		FinalSpeed:              withoutTerrain * terrainFactor,
	}
}

// troopInfluence 按部队规模的数量级衰减速度：
//
//	troops=1 -> 2, troops=100 -> 1, troops=1000 -> 2/3, troops=10000 -> 2/4
func troopInfluence(troops float64) float64 {
	return 2 / (1 + math.Log10(1+troops/10))
}

// mountsInfluence 计算坐骑对速度的影响。
// 士兵优先挑耐力最好的坐骑；坐骑够分时，速度由实际用到的最差坐骑决定。
// 坐骑不够时部分士兵步行，可以轮换骑行，所以步行比例越低整体越快。
func mountsInfluence(troops float64, mounts []MountStack) float64 {
	if troops <= 0 {
		return 1
	}

	sorted := make([]MountStack, len(mounts))
	copy(sorted, mounts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HitPoints > sorted[j].HitPoints
	})

	mounted := 0
	for _, stack := range sorted {
		mounted += stack.Count
		mountSpeed := float64(stack.HitPoints / 100)
		if float64(mounted) >= troops && mountSpeed >= forcedMarchSpeed {
			return mountSpeed
		}
	}

	ratio := float64(mounted) / troops
	return forcedMarchSpeed*ratio + (1 - ratio)
}
