package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorMap-App/internal/domain/model"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// testVendor 座標と半径を持つ最小構成のベンダーを作る
func testVendor(code string, lat, lng, radiusKm float64) model.Vendor {
	return model.Vendor{
		Code:           code,
		Latitude:       floatPtr(lat),
		Longitude:      floatPtr(lng),
		Radius:         floatPtr(radiusKm),
		OriginalRadius: floatPtr(radiusKm),
	}
}

func TestCoverageCalculator_Calculate(t *testing.T) {
	calculator := NewCoverageCalculator()

	t.Run("格子点もベンダーも空なら空結果", func(t *testing.T) {
		assert.Empty(t, calculator.Calculate(nil, nil))
		assert.Empty(t, calculator.Calculate([]model.GridPoint{{Lat: 35.7, Lng: 51.4}}, nil))
		assert.Empty(t, calculator.Calculate(nil, []model.Vendor{testVendor("v1", 35.7, 51.4, 3)}))
	})

	t.Run("半径3kmのベンダーは約900m先をカバーし5.5km先はカバーしない", func(t *testing.T) {
		vendors := []model.Vendor{testVendor("v1", 35.70, 51.40, 3)}
		grid := []model.GridPoint{
			{Lat: 35.70, Lng: 51.41}, // 約901m
			{Lat: 35.75, Lng: 51.40}, // 約5550m
		}

		results := calculator.Calculate(grid, vendors)
		require.Len(t, results, 2)
		assert.Equal(t, 1, results[0].TotalVendors)
		assert.Equal(t, 0, results[1].TotalVendors)
	})

	t.Run("半径境界ちょうどの点はカバー扱い", func(t *testing.T) {
		// 緯度差0.25度は2進数で正確なので距離はちょうど27750m
		vendors := []model.Vendor{testVendor("v1", 35.5, 51.40, 27.75)}
		grid := []model.GridPoint{{Lat: 35.75, Lng: 51.40}}

		results := calculator.Calculate(grid, vendors)
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].TotalVendors)
	})

	t.Run("座標か半径が欠損したベンダーは除外される", func(t *testing.T) {
		noCoords := model.Vendor{Code: "v2", Radius: floatPtr(3)}
		noRadius := model.Vendor{Code: "v3", Latitude: floatPtr(35.70), Longitude: floatPtr(51.40)}
		grid := []model.GridPoint{{Lat: 35.70, Lng: 51.40}}

		results := calculator.Calculate(grid, []model.Vendor{noCoords, noRadius})
		assert.Empty(t, results)
	})

	t.Run("業態・グレード欠損はセンチネルで集計される", func(t *testing.T) {
		vendor := testVendor("v1", 35.70, 51.40, 3)
		graded := testVendor("v2", 35.70, 51.40, 3)
		graded.BusinessLine = strPtr("Restaurant")
		graded.Grade = strPtr("A")

		results := calculator.Calculate([]model.GridPoint{{Lat: 35.70, Lng: 51.40}}, []model.Vendor{vendor, graded})
		require.Len(t, results, 1)

		assert.Equal(t, 2, results[0].TotalVendors)
		assert.Equal(t, 1, results[0].ByBusinessLine[model.BusinessLineUnknown])
		assert.Equal(t, 1, results[0].ByBusinessLine["Restaurant"])
		assert.Equal(t, 1, results[0].ByGrade[model.GradeUngraded])
		assert.Equal(t, 1, results[0].ByGrade["A"])
	})

	t.Run("半径を2倍にするとカバー点集合は単調に広がる", func(t *testing.T) {
		grid := NewGridGenerator().Generate("shiraz", 1000)
		base := []model.Vendor{testVendor("v1", 29.62, 52.55, 2)}
		doubled := model.ApplyRadiusModifier(base, model.RadiusModePercentage, 2.0, 0)

		baseResults := calculator.Calculate(grid, base)
		doubledResults := calculator.Calculate(grid, doubled)
		require.Len(t, doubledResults, len(baseResults))

		covered := 0
		for i := range baseResults {
			if baseResults[i].TotalVendors > 0 {
				assert.Positive(t, doubledResults[i].TotalVendors)
				covered++
			}
		}
		assert.Positive(t, covered)
	})

	t.Run("結果はバッチサイズに依存しない", func(t *testing.T) {
		grid := NewGridGenerator().Generate("shiraz", 2000)
		vendors := []model.Vendor{
			testVendor("v1", 29.60, 52.50, 3),
			testVendor("v2", 29.70, 52.60, 5),
		}
		vendors[0].BusinessLine = strPtr("Cafe")

		expected := newCoverageCalculatorWithBatchSize(1).Calculate(grid, vendors)
		for _, size := range []int{7, 100, len(grid) + 1} {
			assert.Equal(t, expected, newCoverageCalculatorWithBatchSize(size).Calculate(grid, vendors), "batchSize=%d", size)
		}
	})
}

func TestApplyRadiusModifier(t *testing.T) {
	t.Run("percentageモードは元の半径に係数を掛ける", func(t *testing.T) {
		vendors := []model.Vendor{testVendor("v1", 35.7, 51.4, 4)}
		modified := model.ApplyRadiusModifier(vendors, model.RadiusModePercentage, 1.5, 0)

		require.Len(t, modified, 1)
		assert.Equal(t, 6.0, *modified[0].Radius)
		// 元のスライスは変更されない
		assert.Equal(t, 4.0, *vendors[0].Radius)
	})

	t.Run("fixedモードは全ベンダーを固定半径にする", func(t *testing.T) {
		vendors := []model.Vendor{
			testVendor("v1", 35.7, 51.4, 4),
			testVendor("v2", 35.7, 51.4, 7),
		}
		modified := model.ApplyRadiusModifier(vendors, model.RadiusModeFixed, 1.0, 2.5)

		for _, v := range modified {
			assert.Equal(t, 2.5, *v.Radius)
		}
	})

	t.Run("係数は常に元の半径に適用される（累積しない）", func(t *testing.T) {
		vendors := []model.Vendor{testVendor("v1", 35.7, 51.4, 4)}
		once := model.ApplyRadiusModifier(vendors, model.RadiusModePercentage, 2.0, 0)
		twice := model.ApplyRadiusModifier(once, model.RadiusModePercentage, 2.0, 0)
		assert.Equal(t, 8.0, *twice[0].Radius)
	})
}
