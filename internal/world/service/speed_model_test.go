package service

import (
	"math"
	"testing"

	"Strategus/internal/world/domain"
)

func TestComputeSpeed_士兵优先用最好的坐骑(t *testing.T) {
	// 两支部队的顶级坐骑相同，第二支多出来的都是较差坐骑。
	// 坐骑够分时速度由实际用到的最差坐骑决定，第二支不应更快。
	fast := ComputeSpeed(10, []MountStack{
		{HitPoints: 450, Count: 5},
		{HitPoints: 350, Count: 5},
		{HitPoints: 250, Count: 5},
	}, nil)
	slow := ComputeSpeed(10, []MountStack{
		{HitPoints: 450, Count: 5},
		{HitPoints: 350, Count: 10},
		{HitPoints: 250, Count: 10},
	}, nil)

	if fast.FinalSpeed < slow.FinalSpeed {
		t.Fatalf("期望 fast>=slow, fast=%v slow=%v", fast.FinalSpeed, slow.FinalSpeed)
	}
}

func TestComputeSpeed_招兵应降低速度(t *testing.T) {
	mounts := []MountStack{
		{HitPoints: 450, Count: 150},
		{HitPoints: 350, Count: 100},
		{HitPoints: 250, Count: 50},
	}
	totalMounts := 300

	previous := math.MaxFloat64
	for troops := 10; troops <= 1000; troops += 10 {
		speed := ComputeSpeed(float64(troops), mounts, nil).FinalSpeed
		if troops < totalMounts {
			// 坐骑够分：速度可以持平，不应上升
			if speed > previous {
				t.Fatalf("troops=%d 速度上升 %v -> %v", troops, previous, speed)
			}
		} else {
			// 坐骑不够：步行士兵变多，速度应严格下降
			if speed >= previous {
				t.Fatalf("troops=%d 速度未严格下降 %v -> %v", troops, previous, speed)
			}
		}
		previous = speed
	}
}

func TestComputeSpeed_买坐骑应提升速度(t *testing.T) {
	previous := 0.0
	for factor := 1; factor <= 100; factor++ {
		speed := ComputeSpeed(1000, []MountStack{
			{HitPoints: 450, Count: 6 * factor},
			{HitPoints: 350, Count: 2 * factor},
			{HitPoints: 250, Count: 2 * factor},
		}, nil).FinalSpeed
		if speed <= previous {
			t.Fatalf("factor=%d 速度未提升 %v -> %v", factor, previous, speed)
		}
		previous = speed
	}
}

func TestComputeSpeed_地形影响最终速度(t *testing.T) {
	mounts := []MountStack{
		{HitPoints: 450, Count: 50},
		{HitPoints: 350, Count: 30},
		{HitPoints: 250, Count: 20},
	}

	plain := domain.TerrainPlain
	forest := domain.TerrainThickForest
	plainSpeed := ComputeSpeed(100, mounts, &plain).FinalSpeed
	forestSpeed := ComputeSpeed(100, mounts, &forest).FinalSpeed

	if plainSpeed <= forestSpeed {
		t.Fatalf("期望平原快于密林, plain=%v forest=%v", plainSpeed, forestSpeed)
	}
}

func TestComputeSpeed_零兵力零坐骑有定义(t *testing.T) {
	got := ComputeSpeed(0, nil, nil)
	if math.IsNaN(got.FinalSpeed) || math.IsInf(got.FinalSpeed, 0) || got.FinalSpeed < 0 {
		t.Fatalf("期望退化输入下速度有定义且非负, got=%v", got.FinalSpeed)
	}

	got = ComputeSpeed(0, []MountStack{{HitPoints: 150, Count: 3}}, nil)
	if math.IsNaN(got.FinalSpeed) || math.IsInf(got.FinalSpeed, 0) || got.FinalSpeed < 0 {
		t.Fatalf("期望零兵力带坐骑时速度有定义且非负, got=%v", got.FinalSpeed)
	}
}

func TestComputeSpeed_分解字段自洽(t *testing.T) {
	forest := domain.TerrainThickForest
	got := ComputeSpeed(100, []MountStack{{HitPoints: 300, Count: 120}}, &forest)

	withoutTerrain := got.BaseSpeed * got.WeightFactor * got.MountInfluence * got.TroopInfluence
	if math.Abs(got.BaseSpeedWithoutTerrain-withoutTerrain) > 1e-12 {
		t.Fatalf("BaseSpeedWithoutTerrain 不自洽: %v vs %v", got.BaseSpeedWithoutTerrain, withoutTerrain)
	}
	if math.Abs(got.FinalSpeed-withoutTerrain*got.TerrainSpeedFactor) > 1e-12 {
		t.Fatalf("FinalSpeed 不自洽: %v", got.FinalSpeed)
	}
	if got.TerrainSpeedFactor != 0.5 {
		t.Fatalf("期望密林系数 0.5, got=%v", got.TerrainSpeedFactor)
	}
	if got.CurrentTerrainType == nil || *got.CurrentTerrainType != domain.TerrainThickForest {
		t.Fatalf("期望带回当前地形, got=%v", got.CurrentTerrainType)
	}
}
