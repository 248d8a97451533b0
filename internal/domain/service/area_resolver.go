package service

import (
	"github.com/paulmach/orb"

	"VendorMap-App/internal/domain/geo"
	"VendorMap-App/internal/domain/model"
)

// AreaResolver 点がどの名前付きポリゴンに含まれるかを解決するインターフェース
// インデックスの有無は純粋な最適化であり、観測できる結果は線形走査の定義と常に一致する
type AreaResolver interface {
	// Resolve 各点について、コレクション順で最初に内部に含むポリゴンの名前を返す（なければnil）
	Resolve(points []model.GridPoint) []*string
}

// NewAreaResolver ポリゴンコレクションに応じた解決戦略を構築時に選択する
// ポリゴンがあればバウンディングボックス前置フィルタ付き、なければ線形版（全件不一致）
func NewAreaResolver(polygons []model.AreaPolygon) AreaResolver {
	if len(polygons) > 0 {
		return newIndexedAreaResolver(polygons)
	}
	return NewLinearAreaResolver(polygons)
}

// indexedAreaResolver バウンディングボックスの前置フィルタで包含判定を間引く実装
type indexedAreaResolver struct {
	polygons []model.AreaPolygon
	bounds   []orb.Bound
}

func newIndexedAreaResolver(polygons []model.AreaPolygon) *indexedAreaResolver {
	bounds := make([]orb.Bound, len(polygons))
	for i := range polygons {
		// 読み込み側でBoundが未計算でも動くよう、ここで確定させる
		if polygons[i].Bound.IsEmpty() && polygons[i].Geometry != nil {
			bounds[i] = polygons[i].Geometry.Bound()
		} else {
			bounds[i] = polygons[i].Bound
		}
	}
	return &indexedAreaResolver{polygons: polygons, bounds: bounds}
}

// Resolve コレクション順を保ったままバウンディングボックス不一致をスキップする
func (r *indexedAreaResolver) Resolve(points []model.GridPoint) []*string {
	names := make([]*string, len(points))
	for i, point := range points {
		p := orb.Point{point.Lng, point.Lat}
		for j := range r.polygons {
			if !r.bounds[j].Contains(p) {
				continue
			}
			if geo.GeometryContains(r.polygons[j].Geometry, p) {
				name := r.polygons[j].Name
				names[i] = &name
				break
			}
		}
	}
	return names
}

// LinearAreaResolver 全ポリゴンを順に走査する素朴な実装（インデックス版の対照定義）
type LinearAreaResolver struct {
	polygons []model.AreaPolygon
}

// NewLinearAreaResolver LinearAreaResolverの新しいインスタンスを作成
func NewLinearAreaResolver(polygons []model.AreaPolygon) *LinearAreaResolver {
	return &LinearAreaResolver{polygons: polygons}
}

// Resolve 各点をコレクション順で走査し、最初に含むポリゴンの名前を返す
func (r *LinearAreaResolver) Resolve(points []model.GridPoint) []*string {
	names := make([]*string, len(points))
	for i, point := range points {
		p := orb.Point{point.Lng, point.Lat}
		for j := range r.polygons {
			if geo.GeometryContains(r.polygons[j].Geometry, p) {
				name := r.polygons[j].Name
				names[i] = &name
				break
			}
		}
	}
	return names
}
