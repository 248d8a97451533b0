package service

import (
	"github.com/paulmach/orb"

	"VendorMap-App/internal/domain/geo"
	"VendorMap-App/internal/domain/model"
)

// PolygonEnrichmentService ポリゴンにベンダー・ユーザー統計を付与するサービス
type PolygonEnrichmentService struct{}

// NewPolygonEnrichmentService PolygonEnrichmentServiceの新しいインスタンスを作成
func NewPolygonEnrichmentService() *PolygonEnrichmentService {
	return &PolygonEnrichmentService{}
}

// Enrich 各ポリゴンに統計を付与する
// vendors: フィルタ適用済みベンダー
// filteredOrders: 期間・業態などのフィルタ適用済み注文
// allCityOrders: 都市のみで絞った注文（全期間のユニークユーザー数の分母用）
// 点が座標を持たない行は寄与なしとして除外し、該当なしのカウントはすべて0を返す
func (s *PolygonEnrichmentService) Enrich(polygons []model.AreaPolygon, vendors []model.Vendor, filteredOrders, allCityOrders []model.Order) []model.EnrichedArea {
	if len(polygons) == 0 {
		return []model.EnrichedArea{}
	}

	enriched := make([]model.EnrichedArea, len(polygons))
	for i := range polygons {
		area := model.EnrichedArea{
			AreaPolygon: polygons[i],
			GradeCounts: map[string]int{},
		}

		bound := polygons[i].Bound
		if bound.IsEmpty() && polygons[i].Geometry != nil {
			bound = polygons[i].Geometry.Bound()
		}

		// ベンダー数とグレード内訳（point-in-polygon結合）
		for j := range vendors {
			v := &vendors[j]
			if !v.HasLocation() {
				continue
			}
			p := orb.Point{*v.Longitude, *v.Latitude}
			if !bound.Contains(p) || !geo.GeometryContains(polygons[i].Geometry, p) {
				continue
			}
			area.VendorCount++
			area.GradeCounts[v.GradeLabel()]++
		}

		// フィルタ適用後と都市全体のユニークユーザー数
		area.UniqueUserCount = countUniqueUsersInside(polygons[i].Geometry, bound, filteredOrders)
		area.TotalUniqueUserCount = countUniqueUsersInside(polygons[i].Geometry, bound, allCityOrders)

		// 人口あたり指標（人口が0または欠損なら0のまま）
		if polygons[i].Population != nil && *polygons[i].Population > 0 {
			area.VendorPer10kPop = float64(area.VendorCount) / *polygons[i].Population * 10000
		}

		enriched[i] = area
	}
	return enriched
}

// countUniqueUsersInside ポリゴン内に落ちる注文のユニークユーザーIDを数える
func countUniqueUsersInside(geometry orb.Geometry, bound orb.Bound, orders []model.Order) int {
	users := make(map[string]struct{})
	for i := range orders {
		o := &orders[i]
		if o.UserID == nil || !o.HasCustomerLocation() {
			continue
		}
		p := orb.Point{*o.CustomerLongitude, *o.CustomerLatitude}
		if !bound.Contains(p) || !geo.GeometryContains(geometry, p) {
			continue
		}
		users[*o.UserID] = struct{}{}
	}
	return len(users)
}
