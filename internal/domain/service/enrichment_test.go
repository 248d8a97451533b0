package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorMap-App/internal/domain/model"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// testOrder 座標とユーザーIDを持つ注文を作る
func testOrder(userID string, lat, lng float64) model.Order {
	return model.Order{
		VendorCode:        "v1",
		CustomerLatitude:  floatPtr(lat),
		CustomerLongitude: floatPtr(lng),
		UserID:            strPtr(userID),
	}
}

func TestPolygonEnrichmentService_Enrich(t *testing.T) {
	service := NewPolygonEnrichmentService()
	area := squareArea("central", 35.0, 51.0, 36.0, 52.0)

	t.Run("空のポリゴン集合は空結果", func(t *testing.T) {
		assert.Empty(t, service.Enrich(nil, nil, nil, nil))
	})

	t.Run("ポリゴン内のベンダーだけを数える", func(t *testing.T) {
		inside := testVendor("v1", 35.5, 51.5, 3)
		inside.Grade = strPtr("A")
		insideUngraded := testVendor("v2", 35.6, 51.6, 3)
		outside := testVendor("v3", 37.0, 51.5, 3)
		noCoords := model.Vendor{Code: "v4", Grade: strPtr("A")}

		enriched := service.Enrich([]model.AreaPolygon{area},
			[]model.Vendor{inside, insideUngraded, outside, noCoords}, nil, nil)
		require.Len(t, enriched, 1)

		assert.Equal(t, 2, enriched[0].VendorCount)
		assert.Equal(t, 1, enriched[0].GradeCounts["A"])
		assert.Equal(t, 1, enriched[0].GradeCounts[model.GradeUngraded])
		// 0件のグレードはキー自体を含めない
		assert.NotContains(t, enriched[0].GradeCounts, "B")
	})

	t.Run("ユニークユーザーは重複注文を1回だけ数える", func(t *testing.T) {
		orders := []model.Order{
			testOrder("u1", 35.5, 51.5),
			testOrder("u1", 35.6, 51.6),
			testOrder("u2", 35.5, 51.5),
			testOrder("u3", 34.0, 51.5), // ポリゴン外
		}

		enriched := service.Enrich([]model.AreaPolygon{area}, nil, orders, orders)
		require.Len(t, enriched, 1)
		assert.Equal(t, 2, enriched[0].UniqueUserCount)
	})

	t.Run("都市全体のユーザー数はフィルタ後以上", func(t *testing.T) {
		cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		recent := testOrder("u-recent", 35.5, 51.5)
		recent.CreatedAt = &cutoff
		old := testOrder("u-old", 35.6, 51.6)

		filtered := []model.Order{recent}
		allCity := []model.Order{recent, old}

		enriched := service.Enrich([]model.AreaPolygon{area}, nil, filtered, allCity)
		require.Len(t, enriched, 1)
		assert.Equal(t, 1, enriched[0].UniqueUserCount)
		assert.Equal(t, 2, enriched[0].TotalUniqueUserCount)
		assert.GreaterOrEqual(t, enriched[0].TotalUniqueUserCount, enriched[0].UniqueUserCount)
	})

	t.Run("人口1万人あたりベンダー数", func(t *testing.T) {
		populated := area
		populated.Population = floatPtr(20000)

		enriched := service.Enrich([]model.AreaPolygon{populated},
			[]model.Vendor{testVendor("v1", 35.5, 51.5, 3), testVendor("v2", 35.6, 51.6, 3)}, nil, nil)
		require.Len(t, enriched, 1)
		assert.Equal(t, 1.0, enriched[0].VendorPer10kPop)
	})

	t.Run("人口が欠損なら指標は0", func(t *testing.T) {
		enriched := service.Enrich([]model.AreaPolygon{area},
			[]model.Vendor{testVendor("v1", 35.5, 51.5, 3)}, nil, nil)
		require.Len(t, enriched, 1)
		assert.Equal(t, 0.0, enriched[0].VendorPer10kPop)
	})

	t.Run("UserIDが欠損した注文は寄与しない", func(t *testing.T) {
		anonymous := testOrder("", 35.5, 51.5)
		anonymous.UserID = nil

		enriched := service.Enrich([]model.AreaPolygon{area}, nil, []model.Order{anonymous}, []model.Order{anonymous})
		require.Len(t, enriched, 1)
		assert.Equal(t, 0, enriched[0].UniqueUserCount)
	})
}

func TestPopulationSampler_GeneratePoints(t *testing.T) {
	t.Run("人口divisorあたり1点を重み1で生成する", func(t *testing.T) {
		sampler := newPopulationSamplerWithSource(1000, newTestRand())
		area := squareArea("district-1", 35.0, 51.0, 36.0, 52.0)
		area.Population = floatPtr(5000)

		points := sampler.GeneratePoints([]model.AreaPolygon{area})
		require.Len(t, points, 5)
		for _, p := range points {
			assert.Equal(t, 1.0, p.Value)
			assert.GreaterOrEqual(t, p.Lat, 35.0)
			assert.LessOrEqual(t, p.Lat, 36.0)
			assert.GreaterOrEqual(t, p.Lng, 51.0)
			assert.LessOrEqual(t, p.Lng, 52.0)
		}
	})

	t.Run("人口が欠損・0以下のポリゴンは点を生成しない", func(t *testing.T) {
		sampler := newPopulationSamplerWithSource(1000, newTestRand())
		noPop := squareArea("district-2", 35.0, 51.0, 36.0, 52.0)
		zeroPop := squareArea("district-3", 35.0, 51.0, 36.0, 52.0)
		zeroPop.Population = floatPtr(0)

		assert.Empty(t, sampler.GeneratePoints([]model.AreaPolygon{noPop, zeroPop}))
	})

	t.Run("divisor未満の人口は点を生成しない", func(t *testing.T) {
		sampler := newPopulationSamplerWithSource(1000, newTestRand())
		small := squareArea("district-4", 35.0, 51.0, 36.0, 52.0)
		small.Population = floatPtr(999)

		assert.Empty(t, sampler.GeneratePoints([]model.AreaPolygon{small}))
	})
}
