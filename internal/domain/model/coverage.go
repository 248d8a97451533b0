package model

// GridPoint カバレッジ解析用の格子点（生成のみで永続化しない）
type GridPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoverageResult 格子点1点あたりのカバレッジ計算結果
type CoverageResult struct {
	Lat            float64        `json:"lat"`
	Lng            float64        `json:"lng"`
	TotalVendors   int            `json:"total_vendors"`    // 半径円がこの点を含むベンダー数
	ByBusinessLine map[string]int `json:"by_business_line"` // 業態ごとのカバー数
	ByGrade        map[string]int `json:"by_grade"`         // グレードごとのカバー数
}

// CoverageGridPoint マーケティングエリア解決済みのカバレッジグリッド1点
type CoverageGridPoint struct {
	Lat           float64        `json:"lat"`
	Lng           float64        `json:"lng"`
	Coverage      CoverageResult `json:"coverage"`
	MarketingArea *string        `json:"marketing_area"` // 含まれるエリア名（なければnull）
}
