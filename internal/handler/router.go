package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewRouter ルーティングとミドルウェアを設定したginエンジンを作成する
func NewRouter(mapDataHandler *MapDataHandler, initialDataHandler *InitialDataHandler, publicDir string) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())

	api := router.Group("/api")
	api.GET("/health", healthHandler)
	api.GET("/initial-data", initialDataHandler.GetInitialData)
	api.GET("/map-data", mapDataHandler.GetMapData)

	// フロントエンドの静的ファイル配信
	if _, err := os.Stat(publicDir); err == nil {
		router.StaticFile("/", filepath.Join(publicDir, "index.html"))
		router.Static("/assets", filepath.Join(publicDir, "assets"))
	}

	return router
}

// healthHandler GET /api/health - ヘルスチェック
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "VendorMap-App",
	})
}

// corsMiddleware ダッシュボード向けのCORS設定
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestIDMiddleware リクエストごとにIDを振ってレスポンスヘッダーに付与する
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
