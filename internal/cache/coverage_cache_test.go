package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VendorMap-App/internal/domain/model"
)

func TestFingerprint(t *testing.T) {
	t.Run("ベンダーコードの順序はキーに影響しない", func(t *testing.T) {
		a := Fingerprint("tehran", []string{"v1", "v2", "v3"}, 1.0, model.RadiusModePercentage, 3.0)
		b := Fingerprint("tehran", []string{"v3", "v1", "v2"}, 1.0, model.RadiusModePercentage, 3.0)
		assert.Equal(t, a, b)
	})

	t.Run("半径係数が違えばキーも違う", func(t *testing.T) {
		a := Fingerprint("tehran", []string{"v1"}, 1.0, model.RadiusModePercentage, 3.0)
		b := Fingerprint("tehran", []string{"v1"}, 1.5, model.RadiusModePercentage, 3.0)
		assert.NotEqual(t, a, b)
	})

	t.Run("半径モードが違えばキーも違う", func(t *testing.T) {
		a := Fingerprint("tehran", []string{"v1"}, 1.0, model.RadiusModePercentage, 3.0)
		b := Fingerprint("tehran", []string{"v1"}, 1.0, model.RadiusModeFixed, 3.0)
		assert.NotEqual(t, a, b)
	})

	t.Run("都市が違えばキーも違う", func(t *testing.T) {
		a := Fingerprint("tehran", nil, 1.0, model.RadiusModePercentage, 3.0)
		b := Fingerprint("mashhad", nil, 1.0, model.RadiusModePercentage, 3.0)
		assert.NotEqual(t, a, b)
	})

	t.Run("同一パラメータなら常に同じキー", func(t *testing.T) {
		a := Fingerprint("shiraz", []string{"v9"}, 0.8, model.RadiusModePercentage, 3.0)
		b := Fingerprint("shiraz", []string{"v9"}, 0.8, model.RadiusModePercentage, 3.0)
		assert.Equal(t, a, b)
		assert.Len(t, a, 32) // md5の16進表現
	})

	t.Run("入力のスライスは変更されない", func(t *testing.T) {
		codes := []string{"v3", "v1", "v2"}
		Fingerprint("tehran", codes, 1.0, model.RadiusModePercentage, 3.0)
		assert.Equal(t, []string{"v3", "v1", "v2"}, codes)
	})
}

func TestCoverageCache(t *testing.T) {
	point := func(lat, lng float64, total int) model.CoverageGridPoint {
		return model.CoverageGridPoint{
			Lat: lat, Lng: lng,
			Coverage: model.CoverageResult{Lat: lat, Lng: lng, TotalVendors: total},
		}
	}

	t.Run("SetしたものがGetで取れる", func(t *testing.T) {
		c := NewCoverageCache()
		key := Fingerprint("tehran", []string{"v1"}, 1.0, model.RadiusModePercentage, 3.0)

		_, ok := c.Get(key)
		assert.False(t, ok)

		stored := []model.CoverageGridPoint{point(35.7, 51.4, 2)}
		c.Set(key, stored)

		got, ok := c.Get(key)
		require.True(t, ok)
		assert.Equal(t, stored, got)
	})

	t.Run("空の結果もキャッシュできる", func(t *testing.T) {
		c := NewCoverageCache()
		c.Set("empty", []model.CoverageGridPoint{})

		got, ok := c.Get("empty")
		require.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("上限超過でキャッシュ全体が消去される", func(t *testing.T) {
		c := NewCoverageCacheWithSize(3)
		for i := 0; i < 5; i++ {
			c.Set(fmt.Sprintf("key-%d", i), []model.CoverageGridPoint{point(35.7, 51.4, i)})
		}

		// 5回目のSetの前に全消去されるため最後の1件だけが残る
		assert.Equal(t, 1, c.Len())
		_, ok := c.Get("key-0")
		assert.False(t, ok)
		_, ok = c.Get("key-4")
		assert.True(t, ok)
	})

	t.Run("同一キーの上書きはエントリ数を増やさない", func(t *testing.T) {
		c := NewCoverageCache()
		c.Set("key", []model.CoverageGridPoint{point(35.7, 51.4, 1)})
		c.Set("key", []model.CoverageGridPoint{point(35.7, 51.4, 9)})

		assert.Equal(t, 1, c.Len())
		got, _ := c.Get("key")
		require.Len(t, got, 1)
		assert.Equal(t, 9, got[0].Coverage.TotalVendors)
	})
}
