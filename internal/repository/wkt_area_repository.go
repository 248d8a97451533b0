package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"VendorMap-App/internal/domain/model"
)

// WKTAreaRepository WKT入りCSVからポリゴンコレクションを読み込むリポジトリ
// ジオメトリはWGS84経緯度のPolygon/MultiPolygonのみ受け付け、
// 座標が経緯度の範囲外の行は別の座標参照系とみなして棄却する
type WKTAreaRepository struct {
	srcDir string
}

// NewWKTAreaRepository WKTAreaRepositoryの新しいインスタンスを作成
func NewWKTAreaRepository(srcDir string) *WKTAreaRepository {
	return &WKTAreaRepository{srcDir: srcDir}
}

// LoadMarketingAreas 都市ごとのマーケティングエリアCSVを読み込む
// ファイルが見つからない都市は空のコレクションとして扱う（エラーにしない）
func (r *WKTAreaRepository) LoadMarketingAreas(ctx context.Context) (map[string][]model.AreaPolygon, error) {
	areas := make(map[string][]model.AreaPolygon)
	for _, cityName := range []string{"mashhad", "tehran", "shiraz"} {
		path := filepath.Join(r.srcDir, "polygons", "tapsifood_marketing_areas", cityName+"_polygons.csv")
		polygons, err := r.loadPolygonCSV(path, cityName+"_area")
		if err != nil {
			log.Printf("⚠️ %sのマーケティングエリア読み込みに失敗: %v", cityName, err)
			areas[cityName] = []model.AreaPolygon{}
			continue
		}
		log.Printf("✅ %sのマーケティングエリア読み込み完了: %d件", cityName, len(polygons))
		areas[cityName] = polygons
	}
	return areas, nil
}

// LoadTehranRegionDistricts テヘランの地域区レイヤーを読み込む
func (r *WKTAreaRepository) LoadTehranRegionDistricts(ctx context.Context) ([]model.AreaPolygon, error) {
	return r.loadDistrictLayer("tehran_region_districts.csv")
}

// LoadTehranMainDistricts テヘランの本区レイヤーを読み込む
func (r *WKTAreaRepository) LoadTehranMainDistricts(ctx context.Context) ([]model.AreaPolygon, error) {
	return r.loadDistrictLayer("tehran_main_districts.csv")
}

// loadDistrictLayer 行政区レイヤーのCSVを読み込む（ファイルなしは空として扱う）
func (r *WKTAreaRepository) loadDistrictLayer(filename string) ([]model.AreaPolygon, error) {
	path := filepath.Join(r.srcDir, "polygons", "tehran_districts", filename)
	if _, err := os.Stat(path); err != nil {
		log.Printf("⚠️ 行政区レイヤーが見つかりません: %s", filename)
		return []model.AreaPolygon{}, nil
	}
	polygons, err := r.loadPolygonCSV(path, "District")
	if err != nil {
		return nil, err
	}
	log.Printf("✅ %s読み込み完了: %d件", filename, len(polygons))
	return polygons, nil
}

// loadPolygonCSV WKTカラム付きCSVを解析してポリゴン列を返す
// 名前がない行はdefaultPrefix＋連番で補完する
func (r *WKTAreaRepository) loadPolygonCSV(path, defaultPrefix string) ([]model.AreaPolygon, error) {
	header, rows, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}

	polygons := make([]model.AreaPolygon, 0, len(rows))
	for i, row := range rows {
		wktText := fieldAt(header, row, "WKT")
		if wktText == "" {
			continue
		}
		geometry, err := wkt.Unmarshal(wktText)
		if err != nil {
			log.Printf("⚠️ WKTの解析に失敗（%s 行%d）: %v", filepath.Base(path), i+2, err)
			continue
		}
		if !isSupportedGeometry(geometry) {
			log.Printf("⚠️ 未対応のジオメトリ型をスキップ（%s 行%d）: %T", filepath.Base(path), i+2, geometry)
			continue
		}
		if !looksLikeWGS84(geometry.Bound()) {
			// 投影座標系のままのエクスポートは使えない（EPSG:4326に揃える不変条件）
			log.Printf("⚠️ 経緯度の範囲外のジオメトリをスキップ（%s 行%d）: 再投影が必要", filepath.Base(path), i+2)
			continue
		}

		name := fieldAt(header, row, "name")
		if name == "" {
			name = fmt.Sprintf("%s_%d", defaultPrefix, i+1)
		}

		polygon := model.NewAreaPolygon(name, geometry)
		polygon.Population = optFloat(fieldAt(header, row, "population"))
		polygon.PopulationDensity = optFloat(fieldAt(header, row, "population_density"))
		polygons = append(polygons, polygon)
	}
	return polygons, nil
}

// isSupportedGeometry Polygon/MultiPolygonのみを閉じた平面領域として受け付ける
func isSupportedGeometry(g orb.Geometry) bool {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return true
	default:
		return false
	}
}

// looksLikeWGS84 バウンディングボックスが経緯度の定義域に収まっているかチェック
func looksLikeWGS84(bound orb.Bound) bool {
	return bound.Min[0] >= -180 && bound.Max[0] <= 180 &&
		bound.Min[1] >= -90 && bound.Max[1] <= 90
}
