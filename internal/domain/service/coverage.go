package service

import (
	"VendorMap-App/internal/domain/geo"
	"VendorMap-App/internal/domain/model"
)

// defaultCoverageBatchSize 一度に処理する格子点の数（スループット目的のみで結果には影響しない）
const defaultCoverageBatchSize = 100

// CoverageCalculator 格子点ごとのベンダーカバレッジを計算するサービス
type CoverageCalculator struct {
	batchSize int
}

// NewCoverageCalculator CoverageCalculatorの新しいインスタンスを作成
func NewCoverageCalculator() *CoverageCalculator {
	return &CoverageCalculator{batchSize: defaultCoverageBatchSize}
}

// newCoverageCalculatorWithBatchSize バッチサイズ指定版（バッチ非依存性の検証用）
func newCoverageCalculatorWithBatchSize(batchSize int) *CoverageCalculator {
	return &CoverageCalculator{batchSize: batchSize}
}

// Calculate 全格子点に対してカバレッジを計算し、入力順を保った結果を返す
// 距離は平面近似（格子点側の緯度でcos補正）、半径境界上の点はカバー扱い
// 緯度・経度・半径のいずれかが欠損したベンダーは計算から除外する
func (c *CoverageCalculator) Calculate(gridPoints []model.GridPoint, vendors []model.Vendor) []model.CoverageResult {
	if len(gridPoints) == 0 {
		return []model.CoverageResult{}
	}

	validVendors := make([]model.Vendor, 0, len(vendors))
	for i := range vendors {
		if vendors[i].HasLocation() && vendors[i].HasRadius() {
			validVendors = append(validVendors, vendors[i])
		}
	}
	if len(validVendors) == 0 {
		return []model.CoverageResult{}
	}

	results := make([]model.CoverageResult, 0, len(gridPoints))
	for start := 0; start < len(gridPoints); start += c.batchSize {
		end := start + c.batchSize
		if end > len(gridPoints) {
			end = len(gridPoints)
		}
		for _, point := range gridPoints[start:end] {
			results = append(results, c.coverageAt(point, validVendors))
		}
	}
	return results
}

// coverageAt 1つの格子点に対するカバレッジを集計する
func (c *CoverageCalculator) coverageAt(point model.GridPoint, vendors []model.Vendor) model.CoverageResult {
	result := model.CoverageResult{
		Lat:            point.Lat,
		Lng:            point.Lng,
		ByBusinessLine: map[string]int{},
		ByGrade:        map[string]int{},
	}
	for i := range vendors {
		v := &vendors[i]
		d := geo.ApproxDistanceMeters(point.Lat, point.Lng, *v.Latitude, *v.Longitude)
		if d <= v.RadiusMeters() {
			result.TotalVendors++
			result.ByBusinessLine[v.BusinessLineLabel()]++
			result.ByGrade[v.GradeLabel()]++
		}
	}
	return result
}
