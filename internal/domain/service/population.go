package service

import (
	"math/rand"
	"time"

	"VendorMap-App/internal/domain/geo"
	"VendorMap-App/internal/domain/model"
)

// PopulationSampler 行政区の人口をポリゴン内のランダム点列に変換するサービス
// 住民divisor人あたり1点を生成し、値は生の重み1のまま返す（正規化しない）
type PopulationSampler struct {
	divisor float64
	rng     *rand.Rand
}

// NewPopulationSampler 既定の密度でPopulationSamplerを作成
func NewPopulationSampler() *PopulationSampler {
	return newPopulationSamplerWithSource(model.PopulationPointDivisor, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// newPopulationSamplerWithSource 乱数源指定版（決定的なテスト用）
func newPopulationSamplerWithSource(divisor float64, rng *rand.Rand) *PopulationSampler {
	return &PopulationSampler{divisor: divisor, rng: rng}
}

// GeneratePoints 人口属性を持つ各ポリゴンについて内部のランダム点を生成する
// 人口が欠損または0以下のポリゴンは点を生成しない
func (s *PopulationSampler) GeneratePoints(polygons []model.AreaPolygon) []model.HeatmapPoint {
	points := []model.HeatmapPoint{}
	for i := range polygons {
		poly := &polygons[i]
		if poly.Population == nil || *poly.Population <= 0 || poly.Geometry == nil {
			continue
		}
		numPoints := int(*poly.Population / s.divisor)
		if numPoints <= 0 {
			continue
		}
		for _, p := range geo.RandomPointsInPolygon(poly.Geometry, numPoints, s.rng) {
			points = append(points, model.HeatmapPoint{Lat: p.Lat(), Lng: p.Lon(), Value: 1})
		}
	}
	return points
}
