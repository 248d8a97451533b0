package repository

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

// readCSVRows CSVファイルをヘッダーのカラム名→添字のマップ付きで読み込む
func readCSVRows(path string) (map[string]int, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // 行ごとの欠けたカラムは各行の解析側で吸収する
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return map[string]int{}, nil, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	return header, records[1:], nil
}

// fieldAt カラム名で行から値を取り出す（カラムや値がなければ空文字列）
func fieldAt(header map[string]int, row []string, column string) string {
	idx, ok := header[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// optFloat 空文字列をnilとして扱うfloat解析
func optFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// optInt 空文字列をnilとして扱うint解析
func optInt(value string) *int {
	if value == "" {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		// "1.0"のような表記のカラムにも耐える
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return nil
		}
		i = int(f)
	}
	return &i
}

// optString 空文字列をnilとして扱う
func optString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// optTime よくある日時フォーマットを順に試す解析（全滅ならnil）
func optTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return &t
		}
	}
	return nil
}
