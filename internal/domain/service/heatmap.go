package service

import (
	"math"
	"sort"

	"VendorMap-App/internal/domain/model"
)

// HeatmapAggregator 生の観測点を粗い格子にバケット化して集約するサービス
// バケットは座標を固定桁数（既定4桁≈11m）で丸めて作る
type HeatmapAggregator struct {
	precision int
}

// NewHeatmapAggregator 既定の丸め桁数でHeatmapAggregatorを作成
func NewHeatmapAggregator() *HeatmapAggregator {
	return &HeatmapAggregator{precision: model.DefaultHeatmapPrecision}
}

// bucketKey 丸め済み座標のバケットキー
type bucketKey struct {
	lat float64
	lng float64
}

// AggregateSum 同一バケット内の重みを合計する（注文密度など）
// 正規化は行わず生の合計を返す（重みの総和は保存される）
func (h *HeatmapAggregator) AggregateSum(observations []model.HeatmapObservation) []model.HeatmapPoint {
	if len(observations) == 0 {
		return []model.HeatmapPoint{}
	}

	sums := make(map[bucketKey]float64)
	for _, obs := range observations {
		key := bucketKey{
			lat: roundTo(obs.Lat, h.precision),
			lng: roundTo(obs.Lng, h.precision),
		}
		sums[key] += obs.Weight
	}
	return toSortedPoints(sums)
}

// AggregateUniqueUsers 同一バケット内のユニークユーザー数を数え、0〜100に正規化して返す
func (h *HeatmapAggregator) AggregateUniqueUsers(observations []model.HeatmapObservation) []model.HeatmapPoint {
	if len(observations) == 0 {
		return []model.HeatmapPoint{}
	}

	users := make(map[bucketKey]map[string]struct{})
	for _, obs := range observations {
		key := bucketKey{
			lat: roundTo(obs.Lat, h.precision),
			lng: roundTo(obs.Lng, h.precision),
		}
		if users[key] == nil {
			users[key] = make(map[string]struct{})
		}
		users[key][obs.UserID] = struct{}{}
	}

	counts := make(map[bucketKey]float64, len(users))
	for key, set := range users {
		counts[key] = float64(len(set))
	}
	return h.Normalize(toSortedPoints(counts))
}

// Normalize バケット値をmin-maxで0〜100に正規化する
// 全バケットが同じ値のときは一律50（ゼロ除算を避けつつ中間の信号を残す）
func (h *HeatmapAggregator) Normalize(points []model.HeatmapPoint) []model.HeatmapPoint {
	if len(points) == 0 {
		return points
	}

	minVal, maxVal := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	normalized := make([]model.HeatmapPoint, len(points))
	for i, p := range points {
		value := 50.0
		if maxVal > minVal {
			value = (p.Value - minVal) / (maxVal - minVal) * 100
		}
		normalized[i] = model.HeatmapPoint{Lat: p.Lat, Lng: p.Lng, Value: value}
	}
	return normalized
}

// TrimOutliersAndNormalize 指定パーセンタイル範囲外の行を除去し、
// 線形正規化とlog1p正規化（裾の重い分布向け）を併記して返す
// null・0以下の値は事前に除外し、残った行の入力順を保つ
func (h *HeatmapAggregator) TrimOutliersAndNormalize(values []float64, lowerPercentile, upperPercentile float64) []model.NormalizedValue {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) == 0 {
		return []model.NormalizedValue{}
	}

	lowerBound := quantile(positive, lowerPercentile/100)
	upperBound := quantile(positive, upperPercentile/100)

	kept := make([]float64, 0, len(positive))
	for _, v := range positive {
		if v >= lowerBound && v <= upperBound {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return []model.NormalizedValue{}
	}

	minVal, maxVal := kept[0], kept[0]
	logMin, logMax := math.Log1p(kept[0]), math.Log1p(kept[0])
	for _, v := range kept[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
		lv := math.Log1p(v)
		if lv < logMin {
			logMin = lv
		}
		if lv > logMax {
			logMax = lv
		}
	}

	rows := make([]model.NormalizedValue, len(kept))
	for i, v := range kept {
		row := model.NormalizedValue{Value: v, Normalized: 50, LogNormalized: 50}
		if maxVal > minVal {
			row.Normalized = (v - minVal) / (maxVal - minVal) * 100
		}
		if logMax > logMin {
			row.LogNormalized = (math.Log1p(v) - logMin) / (logMax - logMin) * 100
		}
		rows[i] = row
	}
	return rows
}

// roundTo 指定桁数で四捨五入する
func roundTo(value float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(value*factor) / factor
}

// quantile ソート済み配列に対する線形補間パーセンタイル（0〜1）
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// toSortedPoints バケットを緯度→経度順の安定した並びでスライス化する
func toSortedPoints(buckets map[bucketKey]float64) []model.HeatmapPoint {
	points := make([]model.HeatmapPoint, 0, len(buckets))
	for key, value := range buckets {
		points = append(points, model.HeatmapPoint{Lat: key.lat, Lng: key.lng, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Lat != points[j].Lat {
			return points[i].Lat < points[j].Lat
		}
		return points[i].Lng < points[j].Lng
	})
	return points
}
