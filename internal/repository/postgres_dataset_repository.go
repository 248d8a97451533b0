package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"VendorMap-App/internal/domain/model"
	"VendorMap-App/internal/infrastructure/database"
)

// PostgresDatasetRepository PostgreSQLからベンダー・注文を読み込むリポジトリ
// DATABASE_URLが設定された環境ではCSVの代わりにこちらを使う
type PostgresDatasetRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresDatasetRepository PostgresDatasetRepositoryの新しいインスタンスを作成
func NewPostgresDatasetRepository(client *database.PostgreSQLClient) *PostgresDatasetRepository {
	return &PostgresDatasetRepository{client: client}
}

// LoadVendors map_vendorsテーブルから全ベンダーを読み込む（グレード結合済み）
func (r *PostgresDatasetRepository) LoadVendors(ctx context.Context) ([]model.Vendor, error) {
	query := `
		SELECT v.vendor_code, v.city_id, v.vendor_name, v.latitude, v.longitude,
		       v.radius, v.status_id, v.visible, v.open, g.grade
		FROM map_vendors v
		LEFT JOIN vendor_grades g ON g.vendor_code = v.vendor_code`
	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ベンダーの取得に失敗: %w", err)
	}
	defer rows.Close()

	var vendors []model.Vendor
	for rows.Next() {
		var (
			vendor    model.Vendor
			cityID    sql.NullInt64
			name      sql.NullString
			lat, lng  sql.NullFloat64
			radius    sql.NullFloat64
			statusID  sql.NullFloat64
			visible   sql.NullFloat64
			open      sql.NullFloat64
			grade     sql.NullString
		)
		if err := rows.Scan(&vendor.Code, &cityID, &name, &lat, &lng, &radius, &statusID, &visible, &open, &grade); err != nil {
			// 1行のスキャン失敗でロード全体は止めない
			log.Printf("⚠️ ベンダー行のスキャンに失敗、スキップ: %v", err)
			continue
		}
		if cityID.Valid {
			id := int(cityID.Int64)
			vendor.CityID = &id
			vendor.CityName = model.GetCityName(id)
		}
		vendor.VendorName = nullString(name)
		vendor.Latitude = nullFloat(lat)
		vendor.Longitude = nullFloat(lng)
		vendor.Radius = nullFloat(radius)
		vendor.StatusID = nullFloat(statusID)
		vendor.Visible = nullFloat(visible)
		vendor.Open = nullFloat(open)
		vendor.Grade = nullString(grade)
		if vendor.Radius != nil {
			original := *vendor.Radius
			vendor.OriginalRadius = &original
		}
		vendors = append(vendors, vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ベンダーの走査に失敗: %w", err)
	}

	log.Printf("✅ ベンダー読み込み完了 (PostgreSQL): %d件", len(vendors))
	return vendors, nil
}

// LoadOrders map_ordersテーブルから全注文を読み込む
func (r *PostgresDatasetRepository) LoadOrders(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT vendor_code, city_id, customer_latitude, customer_longitude,
		       business_line, marketing_area, created_at, organic, user_id
		FROM map_orders`
	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("注文の取得に失敗: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var (
			order     model.Order
			cityID    sql.NullInt64
			lat, lng  sql.NullFloat64
			bl, ma    sql.NullString
			createdAt sql.NullTime
			organic   sql.NullInt64
			userID    sql.NullString
		)
		if err := rows.Scan(&order.VendorCode, &cityID, &lat, &lng, &bl, &ma, &createdAt, &organic, &userID); err != nil {
			log.Printf("⚠️ 注文行のスキャンに失敗、スキップ: %v", err)
			continue
		}
		if cityID.Valid {
			id := int(cityID.Int64)
			order.CityID = &id
			order.CityName = model.GetCityName(id)
		}
		order.CustomerLatitude = nullFloat(lat)
		order.CustomerLongitude = nullFloat(lng)
		order.BusinessLine = nullString(bl)
		order.MarketingArea = nullString(ma)
		if createdAt.Valid {
			t := createdAt.Time
			order.CreatedAt = &t
		}
		if organic.Valid {
			v := int(organic.Int64)
			order.Organic = &v
		}
		order.UserID = nullString(userID)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("注文の走査に失敗: %w", err)
	}

	log.Printf("✅ 注文読み込み完了 (PostgreSQL): %d件", len(orders))
	return orders, nil
}

// nullFloat sql.NullFloat64をポインタに変換
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// nullString sql.NullStringをポインタに変換
func nullString(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}
