package repository

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"VendorMap-App/internal/domain/model"
)

// CSVOrderRepository CSVファイルから注文履歴を読み込むリポジトリ
type CSVOrderRepository struct {
	srcDir string
}

// NewCSVOrderRepository CSVOrderRepositoryの新しいインスタンスを作成
func NewCSVOrderRepository(srcDir string) *CSVOrderRepository {
	return &CSVOrderRepository{srcDir: srcDir}
}

// LoadOrders 注文CSVを読み込む。個別行の欠損はnilのまま保持する
func (r *CSVOrderRepository) LoadOrders(ctx context.Context) ([]model.Order, error) {
	path := filepath.Join(r.srcDir, "order", "x_map_order.csv")
	header, rows, err := readCSVRows(path)
	if err != nil {
		return nil, fmt.Errorf("注文CSVの読み込みに失敗: %w", err)
	}

	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		order := model.Order{
			VendorCode:        fieldAt(header, row, "vendor_code"),
			CityID:            optInt(fieldAt(header, row, "city_id")),
			CustomerLatitude:  optFloat(fieldAt(header, row, "customer_latitude")),
			CustomerLongitude: optFloat(fieldAt(header, row, "customer_longitude")),
			BusinessLine:      optString(fieldAt(header, row, "business_line")),
			MarketingArea:     optString(fieldAt(header, row, "marketing_area")),
			CreatedAt:         optTime(fieldAt(header, row, "created_at")),
			Organic:           optInt(fieldAt(header, row, "organic")),
			UserID:            optString(fieldAt(header, row, "user_id")),
		}
		if order.CityID != nil {
			order.CityName = model.GetCityName(*order.CityID)
		}
		orders = append(orders, order)
	}

	log.Printf("✅ 注文読み込み完了: %d件", len(orders))
	return orders, nil
}
