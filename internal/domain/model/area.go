package model

import (
	"sort"

	"github.com/paulmach/orb"
)

// AreaPolygon 名前付きポリゴン（マーケティングエリア・行政区）の1件を表すモデル
// GeometryはWGS84経緯度のPolygonまたはMultiPolygonに限定する
type AreaPolygon struct {
	Name              string       `json:"name"`               // コレクション内でユニークな名前
	Geometry          orb.Geometry `json:"-"`                  // 閉じた平面領域
	Bound             orb.Bound    `json:"-"`                  // 包含判定の前置フィルタ用バウンディングボックス
	Population        *float64     `json:"population"`         // 人口（行政区のみ、NULLABLE）
	PopulationDensity *float64     `json:"population_density"` // 人口密度（NULLABLE）
}

// NewAreaPolygon バウンディングボックスを計算済みのAreaPolygonを作成する
func NewAreaPolygon(name string, geometry orb.Geometry) AreaPolygon {
	return AreaPolygon{
		Name:     name,
		Geometry: geometry,
		Bound:    geometry.Bound(),
	}
}

// AreaNames コレクション内のポリゴン名をソート済みで取得する
func AreaNames(polygons []AreaPolygon) []string {
	names := make([]string, 0, len(polygons))
	for _, p := range polygons {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
