package model

import "time"

// Order 注文履歴の1行を表すモデル（読み込み後は不変、参照とフィルタのみ）
type Order struct {
	VendorCode        string     `json:"vendor_code"`        // ベンダーコード（外部キー相当、強制はしない）
	CityID            *int       `json:"city_id"`            // 都市ID（NULLABLE）
	CityName          string     `json:"city_name"`          // 都市名（city_idから解決）
	CustomerLatitude  *float64   `json:"customer_latitude"`  // 顧客緯度（NULLABLE）
	CustomerLongitude *float64   `json:"customer_longitude"` // 顧客経度（NULLABLE）
	BusinessLine      *string    `json:"business_line"`      // 業態（NULLABLE）
	MarketingArea     *string    `json:"marketing_area"`     // マーケティングエリア名（NULLABLE）
	CreatedAt         *time.Time `json:"created_at"`         // 注文日時（NULLABLE）
	Organic           *int       `json:"organic"`            // オーガニック注文フラグ 0/1（NULLABLE）
	UserID            *string    `json:"user_id"`            // ユーザーID（NULLABLE）
}

// HasCustomerLocation 顧客の緯度経度が揃っているかチェック
func (o *Order) HasCustomerLocation() bool {
	return o.CustomerLatitude != nil && o.CustomerLongitude != nil
}

// IsOrganic オーガニック注文かどうかを判定する（欠損時はfalse）
func (o *Order) IsOrganic() bool {
	return o.Organic != nil && *o.Organic == 1
}
