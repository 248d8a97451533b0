package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"VendorMap-App/internal/domain/model"
	"VendorMap-App/internal/usecase"
)

// vendorCodeSeparator ベンダーコード入力の区切り（空白・カンマ・セミコロン・改行）
var vendorCodeSeparator = regexp.MustCompile(`[\s,;]+`)

// MapDataHandler 地図データAPIのHTTPハンドラー
type MapDataHandler struct {
	mapDataUseCase usecase.MapDataUseCase
}

// NewMapDataHandler MapDataHandlerの新しいインスタンスを作成
func NewMapDataHandler(mapDataUseCase usecase.MapDataUseCase) *MapDataHandler {
	return &MapDataHandler{mapDataUseCase: mapDataUseCase}
}

// GetMapData GET /api/map-data - フィルタ適用済みの地図データ一式を取得
func (h *MapDataHandler) GetMapData(c *gin.Context) {
	query, err := parseMapDataQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
		return
	}

	response, err := h.mapDataUseCase.GetMapData(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, usecase.ErrDataNotLoaded) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "data_not_loaded",
				"message": "Server data not loaded",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to build map data: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// parseMapDataQuery クエリパラメータをMapDataQueryに詰め替える
// 未指定のパラメータは既定値のまま、型不正のみエラーにする
func parseMapDataQuery(c *gin.Context) (*model.MapDataQuery, error) {
	query := model.NewMapDataQuery()

	if city := c.Query("city"); city != "" {
		query.City = city
	}

	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, errors.New("start_date must be in YYYY-MM-DD format")
		}
		query.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, errors.New("end_date must be in YYYY-MM-DD format")
		}
		// 終了日はその日の終わりまで含める
		end := t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		query.EndDate = &end
	}

	query.BusinessLines = nonEmpty(c.QueryArray("business_lines"))
	query.VendorGrades = nonEmpty(c.QueryArray("vendor_grades"))
	query.VendorAreaSubTypes = nonEmpty(c.QueryArray("vendor_area_sub_type"))
	query.AreaSubTypeFilters = nonEmpty(c.QueryArray("area_sub_type_filter"))

	for _, s := range c.QueryArray("vendor_status_ids") {
		if id, err := strconv.Atoi(s); err == nil {
			query.VendorStatusIDs = append(query.VendorStatusIDs, id)
		}
	}

	if codes := c.Query("vendor_codes_filter"); codes != "" {
		query.VendorCodes = nonEmpty(vendorCodeSeparator.Split(codes, -1))
	}

	if v := c.Query("vendor_visible"); v != "" {
		query.VendorVisible = v
	}
	if v := c.Query("vendor_is_open"); v != "" {
		query.VendorIsOpen = v
	}
	if v := c.Query("vendor_area_main_type"); v != "" {
		query.VendorAreaMainType = v
	}
	if v := c.Query("heatmap_type_request"); v != "" {
		query.HeatmapType = v
	}
	if v := c.Query("area_type_display"); v != "" {
		query.AreaTypeDisplay = v
	}

	if v := c.Query("radius_modifier"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("radius_modifier must be a number")
		}
		query.RadiusModifier = f
	}
	if v := c.Query("radius_mode"); v != "" {
		if v != model.RadiusModePercentage && v != model.RadiusModeFixed {
			return nil, errors.New("radius_mode must be 'percentage' or 'fixed'")
		}
		query.RadiusMode = v
	}
	if v := c.Query("radius_fixed"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("radius_fixed must be a number")
		}
		query.RadiusFixed = f
	}

	return query, nil
}

// nonEmpty 空要素を取り除く
func nonEmpty(values []string) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return kept
}
