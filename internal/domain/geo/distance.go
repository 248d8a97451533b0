// Package geo 座標系に関する純粋な幾何ユーティリティを提供する
package geo

import "math"

// MetersPerDegree 緯度1度あたりの距離の近似値（約111km）
const MetersPerDegree = 111000.0

// ApproxDistanceMeters 2点間の平面近似距離をメートルで計算する
// 経度方向のスケーリングは1点目（格子点側）の緯度のcosを使う
// 都市スケールでは十分な精度の意図的な簡略化であり、測地線距離ではない
func ApproxDistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	latDiff := (lat1 - lat2) * MetersPerDegree
	lngDiff := (lng1 - lng2) * MetersPerDegree * math.Cos(lat1*math.Pi/180)
	return math.Sqrt(latDiff*latDiff + lngDiff*lngDiff)
}
