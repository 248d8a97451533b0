package model

import "sort"

// Dataset プロセス起動時に一度だけ読み込む共有データセットのスナップショット
// 読み込み後は不変として扱い、リクエスト間で読み取り専用に共有する
type Dataset struct {
	Vendors             []Vendor
	Orders              []Order
	MarketingAreas      map[string][]AreaPolygon // 都市名 → マーケティングエリア
	TehranRegion        []AreaPolygon            // テヘランの地域区レイヤー
	TehranMainDistricts []AreaPolygon            // テヘランの本区レイヤー
}

// IsReady 基盤データセットが揃っているかチェック（揃っていなければエンジンは利用不可）
func (d *Dataset) IsReady() bool {
	return d != nil && d.Vendors != nil && d.Orders != nil
}

// BusinessLines 注文データに現れる業態の一覧をソート済みで取得する
func (d *Dataset) BusinessLines() []string {
	return sortedDistinct(d.Orders, func(o *Order) *string { return o.BusinessLine })
}

// VendorGrades ベンダーデータに現れるグレードの一覧をソート済みで取得する
func (d *Dataset) VendorGrades() []string {
	seen := make(map[string]struct{})
	for i := range d.Vendors {
		seen[d.Vendors[i].GradeLabel()] = struct{}{}
	}
	grades := make([]string, 0, len(seen))
	for g := range seen {
		grades = append(grades, g)
	}
	sort.Strings(grades)
	return grades
}

// VendorStatuses ベンダーデータに現れるステータスIDの一覧をソート済みで取得する
func (d *Dataset) VendorStatuses() []int {
	seen := make(map[int]struct{})
	for i := range d.Vendors {
		if d.Vendors[i].StatusID != nil {
			seen[int(*d.Vendors[i].StatusID)] = struct{}{}
		}
	}
	statuses := make([]int, 0, len(seen))
	for s := range seen {
		statuses = append(statuses, s)
	}
	sort.Ints(statuses)
	return statuses
}

// sortedDistinct NULLABLEな文字列カラムのユニーク値をソート済みで取り出す
func sortedDistinct(orders []Order, get func(*Order) *string) []string {
	seen := make(map[string]struct{})
	for i := range orders {
		if v := get(&orders[i]); v != nil && *v != "" {
			seen[*v] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
