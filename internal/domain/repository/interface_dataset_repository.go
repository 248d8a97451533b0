package repository

import (
	"context"

	"VendorMap-App/internal/domain/model"
)

// VendorRepository ベンダーデータソースのインターフェース
type VendorRepository interface {
	// LoadVendors 全ベンダーを読み込む（グレードのマージ込み）
	LoadVendors(ctx context.Context) ([]model.Vendor, error)
}

// OrderRepository 注文データソースのインターフェース
type OrderRepository interface {
	// LoadOrders 全注文履歴を読み込む
	LoadOrders(ctx context.Context) ([]model.Order, error)
}

// AreaRepository ポリゴンデータソースのインターフェース
type AreaRepository interface {
	// LoadMarketingAreas 都市ごとのマーケティングエリアを読み込む
	LoadMarketingAreas(ctx context.Context) (map[string][]model.AreaPolygon, error)

	// LoadTehranRegionDistricts テヘランの地域区レイヤーを読み込む
	LoadTehranRegionDistricts(ctx context.Context) ([]model.AreaPolygon, error)

	// LoadTehranMainDistricts テヘランの本区レイヤーを読み込む
	LoadTehranMainDistricts(ctx context.Context) ([]model.AreaPolygon, error)
}
