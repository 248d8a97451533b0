package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/paulmach/orb/geojson"

	"VendorMap-App/internal/cache"
	"VendorMap-App/internal/domain/model"
	"VendorMap-App/internal/domain/service"
)

// ErrDataNotLoaded 基盤データセット未読み込み時のエラー（呼び出し側は503として扱う）
var ErrDataNotLoaded = errors.New("データセットが読み込まれていません")

// MapDataUseCase 地図データリクエストを処理するユースケース
type MapDataUseCase interface {
	// GetMapData フィルタに従ってベンダー・ヒートマップ・ポリゴン・カバレッジグリッドを返す
	GetMapData(ctx context.Context, query *model.MapDataQuery) (*model.MapDataResponse, error)
}

// mapDataUseCaseImpl MapDataUseCaseの実装
type mapDataUseCaseImpl struct {
	dataset       *model.Dataset
	gridGenerator *service.GridGenerator
	coverage      *service.CoverageCalculator
	heatmap       *service.HeatmapAggregator
	population    *service.PopulationSampler
	enrichment    *service.PolygonEnrichmentService
	coverageCache *cache.CoverageCache
	areaResolvers map[string]service.AreaResolver // 都市名→マーケティングエリア解決器（起動時に構築）
}

// NewMapDataUseCase 新しいMapDataUseCaseインスタンスを作成
func NewMapDataUseCase(dataset *model.Dataset) MapDataUseCase {
	resolvers := make(map[string]service.AreaResolver)
	if dataset != nil {
		for cityName, polygons := range dataset.MarketingAreas {
			resolvers[cityName] = service.NewAreaResolver(polygons)
		}
	}
	return &mapDataUseCaseImpl{
		dataset:       dataset,
		gridGenerator: service.NewGridGenerator(),
		coverage:      service.NewCoverageCalculator(),
		heatmap:       service.NewHeatmapAggregator(),
		population:    service.NewPopulationSampler(),
		enrichment:    service.NewPolygonEnrichmentService(),
		coverageCache: cache.NewCoverageCache(),
		areaResolvers: resolvers,
	}
}

// GetMapData フィルタ適用からレスポンス組み立てまでを同期的に実行する
func (u *mapDataUseCaseImpl) GetMapData(ctx context.Context, query *model.MapDataQuery) (*model.MapDataResponse, error) {
	if !u.dataset.IsReady() {
		return nil, ErrDataNotLoaded
	}
	start := time.Now()

	vendors := u.filterVendors(query)
	filteredOrders, allCityOrders := u.filterOrders(query)

	response := &model.MapDataResponse{
		Vendors:      vendors,
		HeatmapData:  []model.HeatmapPoint{},
		Polygons:     geojson.NewFeatureCollection(),
		CoverageGrid: []model.CoverageGridPoint{},
	}

	response.HeatmapData = u.buildHeatmap(query, filteredOrders)

	if query.AreaTypeDisplay == model.AreaTypeCoverageGrid {
		response.CoverageGrid = u.buildCoverageGrid(query, vendors)
	} else if query.AreaTypeDisplay != model.AreaTypeNone {
		response.Polygons = u.buildPolygons(query, vendors, filteredOrders, allCityOrders)
	}

	response.ProcessingTime = time.Since(start).Seconds()
	log.Printf("✅ map-dataリクエスト処理完了 (%.2f秒)", response.ProcessingTime)
	return response, nil
}

// filterVendors フィルタパラメータをベンダーの作業用コピーに順に適用する
// 共有スナップショットは書き換えず、半径変更はOriginalRadiusから再計算する
func (u *mapDataUseCaseImpl) filterVendors(query *model.MapDataQuery) []model.Vendor {
	vendors := model.ApplyRadiusModifier(u.dataset.Vendors, query.RadiusMode, query.RadiusModifier, query.RadiusFixed)

	// 座標のない行は空間処理に使えないためマーカーからも除外する
	vendors = keepVendors(vendors, func(v *model.Vendor) bool {
		return v.Code != "" && v.HasLocation()
	})

	if query.City != "all" {
		vendors = keepVendors(vendors, func(v *model.Vendor) bool { return v.CityName == query.City })
	}

	if len(query.VendorCodes) > 0 {
		allowed := toSet(query.VendorCodes)
		vendors = keepVendors(vendors, func(v *model.Vendor) bool {
			_, ok := allowed[v.Code]
			return ok
		})
	}

	vendors = u.filterVendorsByArea(query, vendors)

	if len(query.BusinessLines) > 0 {
		// 選択業態の注文を持つベンダーだけを残す
		selected := toSet(query.BusinessLines)
		relevant := make(map[string]struct{})
		for i := range u.dataset.Orders {
			o := &u.dataset.Orders[i]
			if o.BusinessLine == nil || o.VendorCode == "" {
				continue
			}
			if _, ok := selected[*o.BusinessLine]; ok {
				relevant[o.VendorCode] = struct{}{}
			}
		}
		vendors = keepVendors(vendors, func(v *model.Vendor) bool {
			_, ok := relevant[v.Code]
			return ok
		})
	}

	if len(query.VendorStatusIDs) > 0 {
		statuses := make(map[int]struct{}, len(query.VendorStatusIDs))
		for _, s := range query.VendorStatusIDs {
			statuses[s] = struct{}{}
		}
		vendors = keepVendors(vendors, func(v *model.Vendor) bool {
			if v.StatusID == nil {
				return false
			}
			_, ok := statuses[int(*v.StatusID)]
			return ok
		})
	}

	if len(query.VendorGrades) > 0 {
		grades := toSet(query.VendorGrades)
		vendors = keepVendors(vendors, func(v *model.Vendor) bool {
			_, ok := grades[v.GradeLabel()]
			return ok
		})
	}

	vendors = filterByBinaryFlag(vendors, query.VendorVisible, func(v *model.Vendor) *float64 { return v.Visible })
	vendors = filterByBinaryFlag(vendors, query.VendorIsOpen, func(v *model.Vendor) *float64 { return v.Open })

	return vendors
}

// filterVendorsByArea エリア指定によるベンダーの絞り込み
// マーケティングエリアは注文履歴経由、行政区はpoint-in-polygonで判定する
func (u *mapDataUseCaseImpl) filterVendorsByArea(query *model.MapDataQuery, vendors []model.Vendor) []model.Vendor {
	if query.VendorAreaMainType == "all" || len(query.VendorAreaSubTypes) == 0 || len(vendors) == 0 {
		return vendors
	}

	if query.VendorAreaMainType == model.AreaTypeMarketingAreas {
		selected := toSet(query.VendorAreaSubTypes)
		relevant := make(map[string]struct{})
		for i := range u.dataset.Orders {
			o := &u.dataset.Orders[i]
			if o.MarketingArea == nil || o.VendorCode == "" {
				continue
			}
			if _, ok := selected[*o.MarketingArea]; ok {
				relevant[o.VendorCode] = struct{}{}
			}
		}
		return keepVendors(vendors, func(v *model.Vendor) bool {
			_, ok := relevant[v.Code]
			return ok
		})
	}

	// 行政区レイヤーによる絞り込みはテヘランのみ
	if query.City != "tehran" {
		return vendors
	}
	var layer []model.AreaPolygon
	switch query.VendorAreaMainType {
	case model.AreaTypeTehranRegion:
		layer = u.dataset.TehranRegion
	case model.AreaTypeTehranMainDistricts:
		layer = u.dataset.TehranMainDistricts
	default:
		return vendors
	}

	selected := toSet(query.VendorAreaSubTypes)
	target := make([]model.AreaPolygon, 0, len(layer))
	for _, p := range layer {
		if _, ok := selected[p.Name]; ok {
			target = append(target, p)
		}
	}
	if len(target) == 0 {
		return vendors
	}

	resolver := service.NewAreaResolver(target)
	points := make([]model.GridPoint, len(vendors))
	for i := range vendors {
		points[i] = model.GridPoint{Lat: *vendors[i].Latitude, Lng: *vendors[i].Longitude}
	}
	names := resolver.Resolve(points)
	kept := make([]model.Vendor, 0, len(vendors))
	for i := range vendors {
		if names[i] != nil {
			kept = append(kept, vendors[i])
		}
	}
	return kept
}

// filterOrders 注文を都市→期間→業態の順で絞り込む
// 2つ目の戻り値は都市のみで絞った注文（全期間ベースラインの分母用）
func (u *mapDataUseCaseImpl) filterOrders(query *model.MapDataQuery) ([]model.Order, []model.Order) {
	cityOrders := u.dataset.Orders
	if query.City != "all" {
		cityOrders = keepOrders(u.dataset.Orders, func(o *model.Order) bool { return o.CityName == query.City })
	}
	allCityOrders := cityOrders

	filtered := cityOrders
	if query.StartDate != nil {
		filtered = keepOrders(filtered, func(o *model.Order) bool {
			return o.CreatedAt != nil && !o.CreatedAt.Before(*query.StartDate)
		})
	}
	if query.EndDate != nil {
		filtered = keepOrders(filtered, func(o *model.Order) bool {
			return o.CreatedAt != nil && !o.CreatedAt.After(*query.EndDate)
		})
	}
	if len(query.BusinessLines) > 0 {
		selected := toSet(query.BusinessLines)
		filtered = keepOrders(filtered, func(o *model.Order) bool {
			if o.BusinessLine == nil {
				return false
			}
			_, ok := selected[*o.BusinessLine]
			return ok
		})
	}
	return filtered, allCityOrders
}

// buildHeatmap ヒートマップ種別に応じた点列を生成する
func (u *mapDataUseCaseImpl) buildHeatmap(query *model.MapDataQuery, filteredOrders []model.Order) []model.HeatmapPoint {
	switch query.HeatmapType {
	case model.HeatmapTypeOrderDensity:
		return u.heatmap.Normalize(u.heatmap.AggregateSum(orderObservations(filteredOrders, func(o *model.Order) bool { return true })))
	case model.HeatmapTypeOrderDensityOrganic:
		return u.heatmap.Normalize(u.heatmap.AggregateSum(orderObservations(filteredOrders, func(o *model.Order) bool { return o.IsOrganic() })))
	case model.HeatmapTypeOrderDensityNonOrganic:
		return u.heatmap.Normalize(u.heatmap.AggregateSum(orderObservations(filteredOrders, func(o *model.Order) bool {
			return o.Organic != nil && *o.Organic == 0
		})))
	case model.HeatmapTypeUserDensity:
		observations := make([]model.HeatmapObservation, 0, len(filteredOrders))
		for i := range filteredOrders {
			o := &filteredOrders[i]
			if !o.HasCustomerLocation() || o.UserID == nil {
				continue
			}
			observations = append(observations, model.HeatmapObservation{
				Lat:    *o.CustomerLatitude,
				Lng:    *o.CustomerLongitude,
				UserID: *o.UserID,
			})
		}
		return u.heatmap.AggregateUniqueUsers(observations)
	case model.HeatmapTypePopulation:
		return u.buildPopulationHeatmap(query)
	default:
		return []model.HeatmapPoint{}
	}
}

// buildPopulationHeatmap 行政区の人口からランダム点を生成する（テヘランのみ）
func (u *mapDataUseCaseImpl) buildPopulationHeatmap(query *model.MapDataQuery) []model.HeatmapPoint {
	if query.City != "tehran" {
		return []model.HeatmapPoint{}
	}

	var source []model.AreaPolygon
	switch query.AreaTypeDisplay {
	case model.AreaTypeTehranMainDistricts, model.AreaTypeAllTehranDistricts:
		source = u.dataset.TehranMainDistricts
	case model.AreaTypeTehranRegion:
		source = u.dataset.TehranRegion
	default:
		return []model.HeatmapPoint{}
	}

	if len(query.AreaSubTypeFilters) > 0 {
		selected := toSet(query.AreaSubTypeFilters)
		filtered := make([]model.AreaPolygon, 0, len(source))
		for _, p := range source {
			if _, ok := selected[p.Name]; ok {
				filtered = append(filtered, p)
			}
		}
		source = filtered
	}

	points := u.population.GeneratePoints(source)
	log.Printf("✅ 人口ヒートマップ生成: %d点", len(points))
	return points
}

// buildCoverageGrid カバレッジグリッドをキャッシュ越しに計算する
func (u *mapDataUseCaseImpl) buildCoverageGrid(query *model.MapDataQuery, vendors []model.Vendor) []model.CoverageGridPoint {
	codes := make([]string, len(vendors))
	for i := range vendors {
		codes[i] = vendors[i].Code
	}
	key := cache.Fingerprint(query.City, codes, query.RadiusModifier, query.RadiusMode, query.RadiusFixed)
	if cached, ok := u.coverageCache.Get(key); ok {
		log.Printf("✅ カバレッジグリッドをキャッシュから返却")
		return cached
	}

	gridPoints := u.gridGenerator.Generate(query.City, model.DefaultGridSizeMeters)
	coverageResults := u.coverage.Calculate(gridPoints, vendors)

	var areaNames []*string
	if resolver, ok := u.areaResolvers[query.City]; ok {
		areaNames = resolver.Resolve(gridPoints)
	} else {
		areaNames = make([]*string, len(gridPoints))
	}

	// カバーされていない点は応答に含めない
	gridData := make([]model.CoverageGridPoint, 0, len(coverageResults))
	for i, coverage := range coverageResults {
		if coverage.TotalVendors == 0 {
			continue
		}
		gridData = append(gridData, model.CoverageGridPoint{
			Lat:           coverage.Lat,
			Lng:           coverage.Lng,
			Coverage:      coverage,
			MarketingArea: areaNames[i],
		})
	}

	u.coverageCache.Set(key, gridData)
	log.Printf("✅ カバレッジグリッド計算完了: %d点（格子%d点中）", len(gridData), len(gridPoints))
	return gridData
}

// buildPolygons 表示対象のポリゴンレイヤーを統計付きGeoJSONに変換する
func (u *mapDataUseCaseImpl) buildPolygons(query *model.MapDataQuery, vendors []model.Vendor, filteredOrders, allCityOrders []model.Order) *geojson.FeatureCollection {
	var enriched []model.EnrichedArea
	switch query.AreaTypeDisplay {
	case model.AreaTypeMarketingAreas:
		enriched = u.enrichment.Enrich(u.dataset.MarketingAreas[query.City], vendors, filteredOrders, allCityOrders)
	case model.AreaTypeTehranRegion:
		if query.City == "tehran" {
			enriched = u.enrichment.Enrich(u.dataset.TehranRegion, vendors, filteredOrders, allCityOrders)
		}
	case model.AreaTypeTehranMainDistricts:
		if query.City == "tehran" {
			enriched = u.enrichment.Enrich(u.dataset.TehranMainDistricts, vendors, filteredOrders, allCityOrders)
		}
	case model.AreaTypeAllTehranDistricts:
		// 「全レイヤー」は両行政区レイヤーの連結
		if query.City == "tehran" {
			enriched = append(enriched, u.enrichment.Enrich(u.dataset.TehranRegion, vendors, filteredOrders, allCityOrders)...)
			enriched = append(enriched, u.enrichment.Enrich(u.dataset.TehranMainDistricts, vendors, filteredOrders, allCityOrders)...)
		}
	}

	if len(query.AreaSubTypeFilters) > 0 {
		selected := toSet(query.AreaSubTypeFilters)
		filtered := make([]model.EnrichedArea, 0, len(enriched))
		for _, area := range enriched {
			if _, ok := selected[area.Name]; ok {
				filtered = append(filtered, area)
			}
		}
		enriched = filtered
	}

	collection := geojson.NewFeatureCollection()
	for _, area := range enriched {
		feature := geojson.NewFeature(area.Geometry)
		feature.Properties = geojson.Properties{
			"name":                    area.Name,
			"vendor_count":            area.VendorCount,
			"grade_counts":            area.GradeCounts,
			"unique_user_count":       area.UniqueUserCount,
			"total_unique_user_count": area.TotalUniqueUserCount,
			"vendor_per_10k_pop":      area.VendorPer10kPop,
		}
		if area.Population != nil {
			feature.Properties["population"] = *area.Population
		}
		if area.PopulationDensity != nil {
			feature.Properties["population_density"] = *area.PopulationDensity
		}
		collection.Append(feature)
	}
	return collection
}

// orderObservations 顧客座標付きの注文を重み1の観測点に変換する
func orderObservations(orders []model.Order, keep func(*model.Order) bool) []model.HeatmapObservation {
	observations := make([]model.HeatmapObservation, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if !o.HasCustomerLocation() || !keep(o) {
			continue
		}
		observations = append(observations, model.HeatmapObservation{
			Lat:    *o.CustomerLatitude,
			Lng:    *o.CustomerLongitude,
			Weight: 1,
		})
	}
	return observations
}

// keepVendors 条件を満たすベンダーだけを残す
func keepVendors(vendors []model.Vendor, keep func(*model.Vendor) bool) []model.Vendor {
	kept := make([]model.Vendor, 0, len(vendors))
	for i := range vendors {
		if keep(&vendors[i]) {
			kept = append(kept, vendors[i])
		}
	}
	return kept
}

// keepOrders 条件を満たす注文だけを残す
func keepOrders(orders []model.Order, keep func(*model.Order) bool) []model.Order {
	kept := make([]model.Order, 0, len(orders))
	for i := range orders {
		if keep(&orders[i]) {
			kept = append(kept, orders[i])
		}
	}
	return kept
}

// filterByBinaryFlag "any"以外のとき0/1フラグで絞り込む
func filterByBinaryFlag(vendors []model.Vendor, value string, get func(*model.Vendor) *float64) []model.Vendor {
	if value != "0" && value != "1" {
		return vendors
	}
	want := 0.0
	if value == "1" {
		want = 1.0
	}
	return keepVendors(vendors, func(v *model.Vendor) bool {
		flag := get(v)
		return flag != nil && *flag == want
	})
}

// toSet 文字列スライスを検索用のセットに変換
func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
