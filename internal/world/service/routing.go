package service

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"Strategus/internal/world/domain"
)

// 两个交点距离差小于该值时视为同一点，避免浮点噪声切出零长度分段。
const crossingEpsilon = 1e-9

// PathSegment 是直线路径按地形边界切出的一段，段内速度系数恒定。
type PathSegment struct {
	Start             orb.Point
	End               orb.Point
	TerrainMultiplier float64
}

// Distance 返回分段长度。
func (s PathSegment) Distance() float64 {
	return planar.Distance(s.Start, s.End)
}

// Interpolate 返回 start 到 end 连线上比例为 ratio 的点。
func Interpolate(start, end orb.Point, ratio float64) orb.Point {
	return orb.Point{
		start[0] + (end[0]-start[0])*ratio,
		start[1] + (end[1]-start[1])*ratio,
	}
}

// BuildPathSegments 把 start 到 end 的直线按地形边界交点切分。
// 每段的系数取段中点所在地形，段按路径方向有序且首尾相接。
func BuildPathSegments(start, end orb.Point, terrains domain.Catalog) []PathSegment {
	total := planar.Distance(start, end)
	if total <= 0 {
		return nil
	}

	distances := []float64{0, total}
	for _, t := range terrains {
		for _, ring := range t.Boundary {
			for i := 0; i+1 < len(ring); i++ {
				distances = append(distances, crossingDistances(start, end, ring[i], ring[i+1], total)...)
			}
		}
	}

	sort.Float64s(distances)
	distances = dedupeDistances(distances)
	// 去重可能吃掉与 total 几乎重合的终点，强制末位对齐
	distances[len(distances)-1] = total

	segments := make([]PathSegment, 0, len(distances)-1)
	for i := 0; i+1 < len(distances); i++ {
		segStart := start
		if distances[i] > 0 {
			segStart = Interpolate(start, end, distances[i]/total)
		}
		segEnd := end
		if distances[i+1] < total {
			segEnd = Interpolate(start, end, distances[i+1]/total)
		}

		mid := Interpolate(segStart, segEnd, 0.5)
		segments = append(segments, PathSegment{
			Start:             segStart,
			End:               segEnd,
			TerrainMultiplier: terrains.MultiplierAt(mid),
		})
	}
	return segments
}

// crossingDistances 求路径 a->b 与边 c->d 的交点，返回交点在路径上的距离。
// 共线重叠时取边端点在路径上的投影。
func crossingDistances(a, b, c, d orb.Point, total float64) []float64 {
	r := orb.Point{b[0] - a[0], b[1] - a[1]}
	s := orb.Point{d[0] - c[0], d[1] - c[1]}
	ac := orb.Point{c[0] - a[0], c[1] - a[1]}

	denom := cross(r, s)
	acr := cross(ac, r)

	if denom == 0 {
		if acr != 0 {
			// 平行不共线
			return nil
		}
		// 共线：把边端点投影到路径参数上
		rr := dot(r, r)
		if rr == 0 {
			return nil
		}
		var out []float64
		for _, p := range []orb.Point{c, d} {
			t := dot(orb.Point{p[0] - a[0], p[1] - a[1]}, r) / rr
			if t >= 0 && t <= 1 {
				out = append(out, t*total)
			}
		}
		return out
	}

	t := cross(ac, s) / denom
	u := acr / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return nil
	}
	return []float64{t * total}
}

func dedupeDistances(sorted []float64) []float64 {
	out := sorted[:0]
	for _, d := range sorted {
		if len(out) == 0 || d-out[len(out)-1] > crossingEpsilon {
			out = append(out, d)
		}
	}
	return out
}

func cross(p, q orb.Point) float64 {
	return p[0]*q[1] - p[1]*q[0]
}

func dot(p, q orb.Point) float64 {
	return p[0]*q[0] + p[1]*q[1]
}
