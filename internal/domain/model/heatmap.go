package model

// HeatmapObservation ヒートマップ集約への入力となる生の観測点
type HeatmapObservation struct {
	Lat    float64 // 緯度
	Lng    float64 // 経度
	Weight float64 // 集約時の重み（注文密度では1件あたり1）
	UserID string  // ユニークユーザー集計用のID（不要なら空）
}

// HeatmapPoint 集約・正規化済みのヒートマップ1点
type HeatmapPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Value float64 `json:"value"` // 正規化後は0〜100、人口サンプリングでは生の重み
}

// NormalizedValue 外れ値除去＋正規化ユーティリティの出力1行
// 線形正規化とlog1p正規化を併記し、利用側がどちらかを選べるようにする
type NormalizedValue struct {
	Value         float64 `json:"value"`          // 元の値
	Normalized    float64 `json:"normalized"`     // min-max正規化（0〜100）
	LogNormalized float64 `json:"log_normalized"` // ln(1+x)後にmin-max正規化（0〜100）
}
