package service

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"Strategus/internal/world/domain"
)

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}}
}

func TestBuildPathSegments_穿越密林切成三段(t *testing.T) {
	terrains := domain.Catalog{
		{ID: 1, Type: domain.TerrainThickForest, Boundary: square(4, -5, 6, 5)},
	}

	segments := BuildPathSegments(orb.Point{0, 0}, orb.Point{10, 0}, terrains)
	if len(segments) != 3 {
		t.Fatalf("期望 3 段, got=%d", len(segments))
	}

	wantMultipliers := []float64{1.0, 0.5, 1.0}
	wantDistances := []float64{4, 2, 4}
	for i, seg := range segments {
		if seg.TerrainMultiplier != wantMultipliers[i] {
			t.Fatalf("段 %d 期望系数 %v, got=%v", i, wantMultipliers[i], seg.TerrainMultiplier)
		}
		if math.Abs(seg.Distance()-wantDistances[i]) > 1e-9 {
			t.Fatalf("段 %d 期望长度 %v, got=%v", i, wantDistances[i], seg.Distance())
		}
	}
}

func TestBuildPathSegments_首尾相接且复原全程(t *testing.T) {
	terrains := domain.Catalog{
		{ID: 1, Type: domain.TerrainShallowWater, Boundary: square(2, 0, 5, 10)},
		{ID: 2, Type: domain.TerrainSparseForest, Boundary: square(5, 0, 8, 10)},
	}

	start, end := orb.Point{0, 1}, orb.Point{10, 9}
	segments := BuildPathSegments(start, end, terrains)
	if len(segments) == 0 {
		t.Fatalf("期望非空分段")
	}

	if segments[0].Start != start {
		t.Fatalf("首段起点应为 start, got=%v", segments[0].Start)
	}
	if segments[len(segments)-1].End != end {
		t.Fatalf("末段终点应为 end, got=%v", segments[len(segments)-1].End)
	}

	sum := 0.0
	for i, seg := range segments {
		if i > 0 && seg.Start != segments[i-1].End {
			t.Fatalf("段 %d 与上一段不相接: %v vs %v", i, seg.Start, segments[i-1].End)
		}
		sum += seg.Distance()
	}
	total := math.Hypot(10, 8)
	if math.Abs(sum-total) > 1e-9 {
		t.Fatalf("分段总长 %v 应等于全程 %v", sum, total)
	}
}

func TestBuildPathSegments_无地形时单段中性系数(t *testing.T) {
	segments := BuildPathSegments(orb.Point{0, 0}, orb.Point{3, 4}, nil)
	if len(segments) != 1 {
		t.Fatalf("期望 1 段, got=%d", len(segments))
	}
	if segments[0].TerrainMultiplier != 1.0 {
		t.Fatalf("期望中性系数 1.0, got=%v", segments[0].TerrainMultiplier)
	}
	if math.Abs(segments[0].Distance()-5) > 1e-9 {
		t.Fatalf("期望长度 5, got=%v", segments[0].Distance())
	}
}

func TestBuildPathSegments_起终点重合返回空(t *testing.T) {
	p := orb.Point{2, 2}
	if segments := BuildPathSegments(p, p, nil); len(segments) != 0 {
		t.Fatalf("期望空分段, got=%d", len(segments))
	}
}

func TestBuildPathSegments_不可通行地形系数为零(t *testing.T) {
	terrains := domain.Catalog{
		{ID: 1, Type: domain.TerrainDeepWater, Boundary: square(4, -1, 6, 1)},
	}

	segments := BuildPathSegments(orb.Point{0, 0}, orb.Point{10, 0}, terrains)
	var hitZero bool
	for _, seg := range segments {
		if seg.TerrainMultiplier == 0 {
			hitZero = true
		}
	}
	if !hitZero {
		t.Fatalf("期望存在系数为 0 的分段, got=%+v", segments)
	}
}

func TestInterpolate_线性插值(t *testing.T) {
	got := Interpolate(orb.Point{0, 0}, orb.Point{10, 20}, 0.5)
	if got != (orb.Point{5, 10}) {
		t.Fatalf("期望 (5,10), got=%v", got)
	}
	if got := Interpolate(orb.Point{1, 1}, orb.Point{9, 9}, 0); got != (orb.Point{1, 1}) {
		t.Fatalf("ratio=0 应返回起点, got=%v", got)
	}
	if got := Interpolate(orb.Point{1, 1}, orb.Point{9, 9}, 1); got != (orb.Point{9, 9}) {
		t.Fatalf("ratio=1 应返回终点, got=%v", got)
	}
}
