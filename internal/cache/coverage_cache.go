// Package cache カバレッジ計算結果のプロセス内メモ化を提供する
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"

	"VendorMap-App/internal/domain/model"
)

// DefaultCacheSize キャッシュのエントリ数上限（メモリ保護）
const DefaultCacheSize = 100

// coverageCacheKey フィンガープリントに含めるパラメータ一式
// カバレッジ結果に影響するパラメータは必ずここに含めること
// （結果に影響するのにキーから漏れたパラメータは誤ヒットの原因になる）
type coverageCacheKey struct {
	City           string   `json:"city"`
	VendorCodes    []string `json:"vendor_codes"`
	RadiusModifier float64  `json:"radius_modifier"`
	RadiusMode     string   `json:"radius_mode"`
	RadiusFixed    float64  `json:"radius_fixed"`
}

// CoverageCache カバレッジグリッドの結果キャッシュ
// 上限超過時はLRUではなく全消去する（ヒット率よりも単純さを優先した仕様）
type CoverageCache struct {
	mu         sync.Mutex
	entries    map[string][]model.CoverageGridPoint
	maxEntries int
}

// NewCoverageCache 既定の上限でCoverageCacheを作成
func NewCoverageCache() *CoverageCache {
	return NewCoverageCacheWithSize(DefaultCacheSize)
}

// NewCoverageCacheWithSize 上限指定版（テスト用）
func NewCoverageCacheWithSize(maxEntries int) *CoverageCache {
	return &CoverageCache{
		entries:    make(map[string][]model.CoverageGridPoint),
		maxEntries: maxEntries,
	}
}

// Fingerprint フィルタパラメータから決定的なキャッシュキーを計算する
// ベンダーコードはソートして順序差によるキー分裂を防ぐ
func Fingerprint(city string, vendorCodes []string, radiusModifier float64, radiusMode string, radiusFixed float64) string {
	codes := make([]string, len(vendorCodes))
	copy(codes, vendorCodes)
	sort.Strings(codes)

	// 構造体のフィールド順でエンコードされるため出力は決定的
	encoded, _ := json.Marshal(coverageCacheKey{
		City:           city,
		VendorCodes:    codes,
		RadiusModifier: radiusModifier,
		RadiusMode:     radiusMode,
		RadiusFixed:    radiusFixed,
	})
	sum := md5.Sum(encoded)
	return hex.EncodeToString(sum[:])
}

// Get キーに対応する結果を取得する
func (c *CoverageCache) Get(key string) ([]model.CoverageGridPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[key]
	return result, ok
}

// Set 結果を保存する。エントリ数が上限を超えていたら先に全消去する
// 上限を超えた後は、どのエントリも残っていることを呼び出し側は期待してはならない
func (c *CoverageCache) Set(key string, result []model.CoverageGridPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) > c.maxEntries {
		c.entries = make(map[string][]model.CoverageGridPoint)
	}
	c.entries[key] = result
}

// Len 現在のエントリ数を取得する
func (c *CoverageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
