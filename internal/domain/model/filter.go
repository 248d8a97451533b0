package model

import "time"

// MapDataQuery /api/map-dataリクエストのフィルタパラメータ一式
type MapDataQuery struct {
	City               string     // 都市名または"all"
	StartDate          *time.Time // 注文期間の開始（その日の00:00:00）
	EndDate            *time.Time // 注文期間の終了（その日の23:59:59まで含む）
	BusinessLines      []string   // 業態の複数選択
	VendorCodes        []string   // ベンダーコードの許可リスト
	VendorStatusIDs    []int      // ステータスIDフィルタ
	VendorGrades       []string   // グレードフィルタ
	VendorVisible      string     // "any" / "0" / "1"
	VendorIsOpen       string     // "any" / "0" / "1"
	VendorAreaMainType string     // ベンダーをエリアで絞る際のエリア種別
	VendorAreaSubTypes []string   // 上記エリア内のサブエリア名
	HeatmapType        string     // ヒートマップ種別
	AreaTypeDisplay    string     // 表示するポリゴンレイヤーの種別
	AreaSubTypeFilters []string   // 表示ポリゴンのサブエリア名フィルタ
	RadiusModifier     float64    // 半径の倍率（percentageモード）
	RadiusMode         string     // "percentage" または "fixed"
	RadiusFixed        float64    // 固定半径（km、fixedモード）
}

// NewMapDataQuery 既定値入りのMapDataQueryを作成する
func NewMapDataQuery() *MapDataQuery {
	return &MapDataQuery{
		City:               "tehran",
		VendorVisible:      "any",
		VendorIsOpen:       "any",
		VendorAreaMainType: "all",
		HeatmapType:        HeatmapTypeNone,
		AreaTypeDisplay:    AreaTypeMarketingAreas,
		RadiusModifier:     1.0,
		RadiusMode:         RadiusModePercentage,
		RadiusFixed:        3.0,
	}
}
