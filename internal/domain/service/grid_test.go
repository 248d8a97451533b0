package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorMap-App/internal/domain/geo"
	"VendorMap-App/internal/domain/model"
)

func TestGridGenerator_Generate(t *testing.T) {
	generator := NewGridGenerator()

	t.Run("未知の都市は空スライス", func(t *testing.T) {
		points := generator.Generate("atlantis", 200)
		require.NotNil(t, points)
		assert.Empty(t, points)
	})

	t.Run("点数は軸ごとのceil式と一致する", func(t *testing.T) {
		for city, bounds := range model.CityBoundaries {
			points := generator.Generate(city, 200)

			stepDeg := 200.0 / geo.MetersPerDegree
			latCount := int(math.Ceil((bounds.MaxLat-bounds.MinLat)/stepDeg)) + 1
			lngCount := int(math.Ceil((bounds.MaxLng-bounds.MinLng)/stepDeg)) + 1
			assert.Len(t, points, latCount*lngCount, "city=%s", city)
		}
	})

	t.Run("テヘラン200mの格子点数", func(t *testing.T) {
		points := generator.Generate("tehran", 200)
		assert.Len(t, points, 196*335)
	})

	t.Run("全点が境界ボックス+1ステップ以内に収まる", func(t *testing.T) {
		bounds := model.CityBoundaries["tehran"]
		stepDeg := 200.0 / geo.MetersPerDegree

		for _, p := range generator.Generate("tehran", 200) {
			assert.GreaterOrEqual(t, p.Lat, bounds.MinLat)
			assert.GreaterOrEqual(t, p.Lng, bounds.MinLng)
			assert.Less(t, p.Lat, bounds.MaxLat+stepDeg)
			assert.Less(t, p.Lng, bounds.MaxLng+stepDeg)
		}
	})

	t.Run("行優先で南西の角から始まる", func(t *testing.T) {
		bounds := model.CityBoundaries["shiraz"]
		points := generator.Generate("shiraz", 200)
		require.NotEmpty(t, points)

		stepDeg := 200.0 / geo.MetersPerDegree
		assert.Equal(t, bounds.MinLat, points[0].Lat)
		assert.Equal(t, bounds.MinLng, points[0].Lng)
		// 2点目は同じ緯度で経度が1ステップ進む
		assert.Equal(t, points[0].Lat, points[1].Lat)
		assert.InDelta(t, bounds.MinLng+stepDeg, points[1].Lng, 1e-12)
	})

	t.Run("セルサイズを大きくすると点数が減る", func(t *testing.T) {
		fine := generator.Generate("mashhad", 200)
		coarse := generator.Generate("mashhad", 1000)
		assert.Greater(t, len(fine), len(coarse))
	})
}
