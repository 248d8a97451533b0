package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"VendorMap-App/internal/domain/model"
)

// CSVVendorRepository CSVファイルからベンダーを読み込むリポジトリ
// 生のベンダーCSVとグレードファイル（CSVまたはExcel）をvendor_codeで結合する
type CSVVendorRepository struct {
	srcDir string
}

// NewCSVVendorRepository CSVVendorRepositoryの新しいインスタンスを作成
func NewCSVVendorRepository(srcDir string) *CSVVendorRepository {
	return &CSVVendorRepository{srcDir: srcDir}
}

// LoadVendors ベンダーCSVを読み込み、グレードをマージして返す
// 個別行の欠損は許容する（座標や半径がない行もそのまま保持し、空間処理側で除外する）
func (r *CSVVendorRepository) LoadVendors(ctx context.Context) ([]model.Vendor, error) {
	path := filepath.Join(r.srcDir, "vendor", "x_map_vendor.csv")
	header, rows, err := readCSVRows(path)
	if err != nil {
		return nil, fmt.Errorf("ベンダーCSVの読み込みに失敗: %w", err)
	}

	vendors := make([]model.Vendor, 0, len(rows))
	for _, row := range rows {
		code := fieldAt(header, row, "vendor_code")
		if code == "" {
			continue
		}
		vendor := model.Vendor{
			Code:       code,
			CityID:     optInt(fieldAt(header, row, "city_id")),
			VendorName: optString(fieldAt(header, row, "vendor_name")),
			Latitude:   optFloat(fieldAt(header, row, "latitude")),
			Longitude:  optFloat(fieldAt(header, row, "longitude")),
			Radius:     optFloat(fieldAt(header, row, "radius")),
			StatusID:   optFloat(fieldAt(header, row, "status_id")),
			Visible:    optFloat(fieldAt(header, row, "visible")),
			Open:       optFloat(fieldAt(header, row, "open")),
		}
		if vendor.CityID != nil {
			vendor.CityName = model.GetCityName(*vendor.CityID)
		}
		// リセット基準の半径は読み込み時の値で固定する
		if vendor.Radius != nil {
			original := *vendor.Radius
			vendor.OriginalRadius = &original
		}
		vendors = append(vendors, vendor)
	}

	grades, err := r.loadGrades()
	if err != nil {
		log.Printf("⚠️ グレードファイルの読み込みに失敗、グレードなしで続行: %v", err)
	} else if len(grades) > 0 {
		merged := 0
		for i := range vendors {
			if grade, ok := grades[vendors[i].Code]; ok {
				g := grade
				vendors[i].Grade = &g
				merged++
			}
		}
		log.Printf("✅ グレードをマージ: %d件のベンダーにグレードを設定", merged)
	}

	log.Printf("✅ ベンダー読み込み完了: %d件", len(vendors))
	return vendors, nil
}

// loadGrades グレードファイルを読み込む（graded.csv優先、なければgraded.xlsx）
func (r *CSVVendorRepository) loadGrades() (map[string]string, error) {
	csvPath := filepath.Join(r.srcDir, "vendor", "graded.csv")
	if _, err := os.Stat(csvPath); err == nil {
		return r.loadGradesCSV(csvPath)
	}
	xlsxPath := filepath.Join(r.srcDir, "vendor", "graded.xlsx")
	if _, err := os.Stat(xlsxPath); err == nil {
		return r.loadGradesExcel(xlsxPath)
	}
	return map[string]string{}, nil
}

// loadGradesCSV CSV形式のグレードファイルを読み込む
func (r *CSVVendorRepository) loadGradesCSV(path string) (map[string]string, error) {
	header, rows, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}
	grades := make(map[string]string, len(rows))
	for _, row := range rows {
		code := fieldAt(header, row, "vendor_code")
		grade := fieldAt(header, row, "grade")
		if code != "" && grade != "" {
			grades[code] = grade
		}
	}
	return grades, nil
}

// loadGradesExcel Excel形式のグレードファイルを読み込む（アナリスト作成のxlsx向け）
// 先頭シートの1行目をヘッダーとして扱う
func (r *CSVVendorRepository) loadGradesExcel(path string) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return map[string]string{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]string{}, nil
	}

	codeIdx, gradeIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "vendor_code":
			codeIdx = i
		case "grade":
			gradeIdx = i
		}
	}
	if codeIdx < 0 || gradeIdx < 0 {
		return nil, fmt.Errorf("vendor_code/gradeカラムが見つかりません: %s", path)
	}

	grades := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		if codeIdx >= len(row) || gradeIdx >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[codeIdx])
		grade := strings.TrimSpace(row[gradeIdx])
		if code != "" && grade != "" {
			grades[code] = grade
		}
	}
	return grades, nil
}
