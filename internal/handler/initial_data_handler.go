package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"VendorMap-App/internal/usecase"
)

// InitialDataHandler 初期データAPIのHTTPハンドラー
type InitialDataHandler struct {
	initialDataUseCase usecase.InitialDataUseCase
}

// NewInitialDataHandler InitialDataHandlerの新しいインスタンスを作成
func NewInitialDataHandler(initialDataUseCase usecase.InitialDataUseCase) *InitialDataHandler {
	return &InitialDataHandler{initialDataUseCase: initialDataUseCase}
}

// GetInitialData GET /api/initial-data - ダッシュボードのフィルタ選択肢を取得
func (h *InitialDataHandler) GetInitialData(c *gin.Context) {
	response, err := h.initialDataUseCase.GetInitialData(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrDataNotLoaded) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "data_not_loaded",
				"message": "Data not loaded properly",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get initial data: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
