package model

// Vendor 加盟店（ベンダー）を表すモデル
// 位置・半径・カテゴリ類はCSVの欠損をそのまま保持するためポインタで持つ
type Vendor struct {
	Code           string   `json:"vendor_code"`               // ユニークなベンダーコード
	CityID         *int     `json:"city_id"`                   // 都市ID（NULLABLE）
	CityName       string   `json:"city_name"`                 // 都市名（city_idから解決、未知なら空）
	VendorName     *string  `json:"vendor_name"`               // 店舗名（NULLABLE）
	Latitude       *float64 `json:"latitude"`                  // 緯度（NULLABLE）
	Longitude      *float64 `json:"longitude"`                 // 経度（NULLABLE）
	Radius         *float64 `json:"radius"`                    // サービス半径（km、リクエスト単位で変更可）
	OriginalRadius *float64 `json:"original_radius"`           // 読み込み時の半径（変更のリセット基準、不変）
	BusinessLine   *string  `json:"business_line"`             // 業態（NULLABLE）
	Grade          *string  `json:"grade"`                     // グレード（NULLABLE）
	StatusID       *float64 `json:"status_id"`                 // ステータスID（NULLABLE）
	Visible        *float64 `json:"visible"`                   // 表示フラグ（NULLABLE）
	Open           *float64 `json:"open"`                      // 営業中フラグ（NULLABLE）
}

// HasLocation 緯度経度が揃っているかチェック
func (v *Vendor) HasLocation() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// HasRadius 半径が設定されているかチェック
func (v *Vendor) HasRadius() bool {
	return v.Radius != nil
}

// BusinessLineLabel 業態ラベルを取得する（欠損時はUnknown）
func (v *Vendor) BusinessLineLabel() string {
	if v.BusinessLine != nil && *v.BusinessLine != "" {
		return *v.BusinessLine
	}
	return BusinessLineUnknown
}

// GradeLabel グレードラベルを取得する（欠損時はUngraded）
func (v *Vendor) GradeLabel() string {
	if v.Grade != nil && *v.Grade != "" {
		return *v.Grade
	}
	return GradeUngraded
}

// RadiusMeters サービス半径をメートルで取得する（kmからの換算）
func (v *Vendor) RadiusMeters() float64 {
	if v.Radius == nil {
		return 0
	}
	return *v.Radius * 1000
}

// ApplyRadiusModifier 半径変更を適用した作業用コピーを返す
// 共有データセットは決して書き換えず、OriginalRadiusを基準に毎回再計算する
func ApplyRadiusModifier(vendors []Vendor, mode string, modifier, fixed float64) []Vendor {
	modified := make([]Vendor, len(vendors))
	copy(modified, vendors)
	for i := range modified {
		if modified[i].OriginalRadius == nil {
			continue
		}
		var r float64
		if mode == RadiusModeFixed {
			r = fixed
		} else {
			r = *modified[i].OriginalRadius * modifier
		}
		modified[i].Radius = &r
	}
	return modified
}
