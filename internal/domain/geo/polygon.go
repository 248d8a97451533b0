package geo

import (
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// GeometryContains ポリゴン（Polygon/MultiPolygon）が点を含むか判定する
// それ以外のジオメトリ型は常にfalse
func GeometryContains(g orb.Geometry, p orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, p)
	default:
		return false
	}
}

// RandomPointsInPolygon ポリゴン内の一様ランダムな点を指定数生成する
// バウンディングボックス内で棄却サンプリングを行う
// 退化したジオメトリで無限ループしないよう試行回数に上限を設ける
func RandomPointsInPolygon(g orb.Geometry, numPoints int, rng *rand.Rand) []orb.Point {
	if numPoints <= 0 {
		return nil
	}
	bound := g.Bound()
	if bound.IsEmpty() {
		return nil
	}

	points := make([]orb.Point, 0, numPoints)
	maxAttempts := numPoints * 10000
	for attempts := 0; len(points) < numPoints && attempts < maxAttempts; attempts++ {
		candidate := orb.Point{
			bound.Min[0] + rng.Float64()*(bound.Max[0]-bound.Min[0]),
			bound.Min[1] + rng.Float64()*(bound.Max[1]-bound.Min[1]),
		}
		if GeometryContains(g, candidate) {
			points = append(points, candidate)
		}
	}
	return points
}
