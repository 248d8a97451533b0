package service

import (
	"math"

	"VendorMap-App/internal/domain/geo"
	"VendorMap-App/internal/domain/model"
)

// GridGenerator カバレッジ解析用の格子点を生成するサービス
type GridGenerator struct{}

// NewGridGenerator GridGeneratorの新しいインスタンスを作成
func NewGridGenerator() *GridGenerator {
	return &GridGenerator{}
}

// Generate 都市の境界ボックスを覆う格子点を行優先（緯度→経度）で生成する
// セルサイズはメートル指定で、1度≈111kmの固定緯度近似で度に換算する
// 末尾の点は最大境界を1ステップ未満だけ超えることがある（包含側に倒す）
// 未知の都市は空のスライスを返す（エラーにしない）
func (g *GridGenerator) Generate(cityName string, cellSizeMeters float64) []model.GridPoint {
	bounds, ok := model.CityBoundaries[cityName]
	if !ok {
		return []model.GridPoint{}
	}

	stepDeg := cellSizeMeters / geo.MetersPerDegree

	// 整数ステップで生成し、浮動小数の累積誤差で点数が揺れないようにする
	latSteps := int(math.Ceil((bounds.MaxLat - bounds.MinLat) / stepDeg))
	lngSteps := int(math.Ceil((bounds.MaxLng - bounds.MinLng) / stepDeg))

	gridPoints := make([]model.GridPoint, 0, (latSteps+1)*(lngSteps+1))
	for i := 0; i <= latSteps; i++ {
		lat := bounds.MinLat + float64(i)*stepDeg
		for j := 0; j <= lngSteps; j++ {
			lng := bounds.MinLng + float64(j)*stepDeg
			gridPoints = append(gridPoints, model.GridPoint{Lat: lat, Lng: lng})
		}
	}
	return gridPoints
}
