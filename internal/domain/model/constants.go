package model

// CityIDMap 都市IDから都市名へのマッピング
var CityIDMap = map[int]string{
	1: "mashhad",
	2: "tehran",
	5: "shiraz",
}

// CityNameToIDMap 都市名から都市IDへのマッピング
var CityNameToIDMap = map[string]int{
	"mashhad": 1,
	"tehran":  2,
	"shiraz":  5,
}

// CityBoundary グリッド生成に使用する都市の境界ボックス（概算値）
type CityBoundary struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// CityBoundaries 都市名ごとの境界ボックス
var CityBoundaries = map[string]CityBoundary{
	"tehran":  {MinLat: 35.5, MaxLat: 35.85, MinLng: 51.1, MaxLng: 51.7},
	"mashhad": {MinLat: 36.15, MaxLat: 36.45, MinLng: 59.35, MaxLng: 59.8},
	"shiraz":  {MinLat: 29.5, MaxLat: 29.75, MinLng: 52.4, MaxLng: 52.7},
}

// カテゴリ欠損時のセンチネルラベル（欠損行を落とさず集計するため）
const (
	BusinessLineUnknown = "Unknown"
	GradeUngraded       = "Ungraded"
)

// ヒートマップ種別の定数
const (
	HeatmapTypeNone                   = "none"
	HeatmapTypeOrderDensity           = "order_density"
	HeatmapTypeOrderDensityOrganic    = "order_density_organic"
	HeatmapTypeOrderDensityNonOrganic = "order_density_non_organic"
	HeatmapTypeUserDensity            = "user_density"
	HeatmapTypePopulation             = "population"
)

// 表示エリア種別の定数
const (
	AreaTypeMarketingAreas      = "tapsifood_marketing_areas"
	AreaTypeTehranRegion        = "tehran_region_districts"
	AreaTypeTehranMainDistricts = "tehran_main_districts"
	AreaTypeAllTehranDistricts  = "all_tehran_districts"
	AreaTypeCoverageGrid        = "coverage_grid"
	AreaTypeNone                = "none"
)

// 半径変更モードの定数
const (
	RadiusModePercentage = "percentage"
	RadiusModeFixed      = "fixed"
)

// DefaultGridSizeMeters カバレッジグリッドの既定セルサイズ（メートル）
const DefaultGridSizeMeters = 200.0

// DefaultHeatmapPrecision ヒートマップ集約時の座標丸め桁数（約11m分解能）
const DefaultHeatmapPrecision = 4

// PopulationPointDivisor 人口ヒートマップの点生成密度（住民n人あたり1点）
const PopulationPointDivisor = 1000.0

// GetCityName 都市IDから都市名を取得する（未知のIDは空文字列）
func GetCityName(cityID int) string {
	if name, ok := CityIDMap[cityID]; ok {
		return name
	}
	return ""
}

// GetCityID 都市名から都市IDを取得する（未知の名前は0）
func GetCityID(cityName string) int {
	if id, ok := CityNameToIDMap[cityName]; ok {
		return id
	}
	return 0
}
