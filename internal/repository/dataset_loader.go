package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"VendorMap-App/internal/domain/model"
	"VendorMap-App/internal/domain/repository"
)

// DatasetLoader 各データソースから共有データセットのスナップショットを組み立てるローダー
type DatasetLoader struct {
	vendorRepo repository.VendorRepository
	orderRepo  repository.OrderRepository
	areaRepo   repository.AreaRepository
}

// NewDatasetLoader DatasetLoaderの新しいインスタンスを作成
func NewDatasetLoader(vendorRepo repository.VendorRepository, orderRepo repository.OrderRepository, areaRepo repository.AreaRepository) *DatasetLoader {
	return &DatasetLoader{
		vendorRepo: vendorRepo,
		orderRepo:  orderRepo,
		areaRepo:   areaRepo,
	}
}

// Load 全データを読み込んで不変のスナップショットを返す
// ベンダーまたは注文の読み込み失敗は致命的エラー、ポリゴンは個別に劣化を許容する
func (l *DatasetLoader) Load(ctx context.Context) (*model.Dataset, error) {
	log.Printf("🚀 データ読み込み開始")
	start := time.Now()

	orders, err := l.orderRepo.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("注文データの読み込みに失敗: %w", err)
	}

	vendors, err := l.vendorRepo.LoadVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("ベンダーデータの読み込みに失敗: %w", err)
	}

	// ベンダーの業態は注文履歴から推定する（そのベンダーで最も多い業態）
	inferBusinessLines(vendors, orders)

	marketingAreas, err := l.areaRepo.LoadMarketingAreas(ctx)
	if err != nil {
		log.Printf("⚠️ マーケティングエリアの読み込みに失敗、空で続行: %v", err)
		marketingAreas = map[string][]model.AreaPolygon{}
	}

	tehranRegion, err := l.areaRepo.LoadTehranRegionDistricts(ctx)
	if err != nil {
		log.Printf("⚠️ テヘラン地域区レイヤーの読み込みに失敗、空で続行: %v", err)
		tehranRegion = []model.AreaPolygon{}
	}

	tehranMain, err := l.areaRepo.LoadTehranMainDistricts(ctx)
	if err != nil {
		log.Printf("⚠️ テヘラン本区レイヤーの読み込みに失敗、空で続行: %v", err)
		tehranMain = []model.AreaPolygon{}
	}

	log.Printf("✅ データ読み込み完了 (%.2f秒)", time.Since(start).Seconds())
	return &model.Dataset{
		Vendors:             vendors,
		Orders:              orders,
		MarketingAreas:      marketingAreas,
		TehranRegion:        tehranRegion,
		TehranMainDistricts: tehranMain,
	}, nil
}

// inferBusinessLines 注文履歴の最頻業態をベンダーの業態として設定する
// 既に業態を持つベンダーは上書きしない
func inferBusinessLines(vendors []model.Vendor, orders []model.Order) {
	counts := make(map[string]map[string]int)
	for i := range orders {
		o := &orders[i]
		if o.VendorCode == "" || o.BusinessLine == nil || *o.BusinessLine == "" {
			continue
		}
		if counts[o.VendorCode] == nil {
			counts[o.VendorCode] = make(map[string]int)
		}
		counts[o.VendorCode][*o.BusinessLine]++
	}

	inferred := 0
	for i := range vendors {
		if vendors[i].BusinessLine != nil {
			continue
		}
		lines, ok := counts[vendors[i].Code]
		if !ok {
			continue
		}
		best, bestCount := "", 0
		for line, count := range lines {
			// 同数のときは名前順で決定的に選ぶ
			if count > bestCount || (count == bestCount && line < best) {
				best, bestCount = line, count
			}
		}
		if best != "" {
			line := best
			vendors[i].BusinessLine = &line
			inferred++
		}
	}
	if inferred > 0 {
		log.Printf("✅ 業態を注文履歴から推定: %d件", inferred)
	}
}
