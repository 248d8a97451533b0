package model

import "github.com/paulmach/orb/geojson"

// CityInfo 初期データAPIで返す都市の1件
type CityInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// InitialDataResponse GET /api/initial-data のレスポンス
type InitialDataResponse struct {
	Cities                []CityInfo          `json:"cities"`
	BusinessLines         []string            `json:"business_lines"`
	MarketingAreasByCity  map[string][]string `json:"marketing_areas_by_city"`
	TehranRegionDistricts []string            `json:"tehran_region_districts"`
	TehranMainDistricts   []string            `json:"tehran_main_districts"`
	VendorStatuses        []int               `json:"vendor_statuses"`
	VendorGrades          []string            `json:"vendor_grades"`
}

// MapDataResponse GET /api/map-data のレスポンス
type MapDataResponse struct {
	Vendors        []Vendor                   `json:"vendors"`
	HeatmapData    []HeatmapPoint             `json:"heatmap_data"`
	Polygons       *geojson.FeatureCollection `json:"polygons"`
	CoverageGrid   []CoverageGridPoint        `json:"coverage_grid"`
	ProcessingTime float64                    `json:"processing_time"` // 秒
}

// EnrichedArea 統計付与済みのポリゴン1件
type EnrichedArea struct {
	AreaPolygon
	VendorCount          int            `json:"vendor_count"`            // ポリゴン内のベンダー数
	GradeCounts          map[string]int `json:"grade_counts"`            // グレード→件数（0件は含めない）
	UniqueUserCount      int            `json:"unique_user_count"`       // フィルタ適用後のユニークユーザー数
	TotalUniqueUserCount int            `json:"total_unique_user_count"` // 都市全体（期間・業態フィルタなし）のユニークユーザー数
	VendorPer10kPop      float64        `json:"vendor_per_10k_pop"`      // 人口1万人あたりベンダー数（人口がなければ0）
}
