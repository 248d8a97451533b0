package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/joho/godotenv"

	domainrepo "VendorMap-App/internal/domain/repository"
	"VendorMap-App/internal/handler"
	"VendorMap-App/internal/infrastructure/database"
	"VendorMap-App/internal/repository"
	"VendorMap-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	srcDir := envOrDefault("SRC_DIR", "./src")
	publicDir := envOrDefault("PUBLIC_DIR", "./public")
	port := envOrDefault("PORT", "5001")

	vendorRepo, orderRepo := selectDatasetSource(srcDir)
	areaRepo := repository.NewWKTAreaRepository(srcDir)

	loader := repository.NewDatasetLoader(vendorRepo, orderRepo, areaRepo)
	dataset, err := loader.Load(context.Background())
	if err != nil {
		log.Fatalf("データセットの読み込みに失敗: %v", err)
	}

	mapDataUseCase := usecase.NewMapDataUseCase(dataset)
	initialDataUseCase := usecase.NewInitialDataUseCase(dataset)

	mapDataHandler := handler.NewMapDataHandler(mapDataUseCase)
	initialDataHandler := handler.NewInitialDataHandler(initialDataUseCase)
	router := handler.NewRouter(mapDataHandler, initialDataHandler, publicDir)

	if os.Getenv("NO_BROWSER") == "" {
		go openBrowser("http://127.0.0.1:" + port + "/")
	}

	fmt.Printf("VendorMap-App server starting on :%s...\n", port)
	log.Fatal(router.Run(":" + port))
}

// selectDatasetSource DATABASE_URLがあればPostgreSQL、なければCSVからデータを読む
func selectDatasetSource(srcDir string) (domainrepo.VendorRepository, domainrepo.OrderRepository) {
	if os.Getenv("DATABASE_URL") != "" {
		fmt.Println("Initializing PostgreSQL dataset source...")
		client, err := database.NewPostgreSQLClientWithRetry(5, 2*time.Second)
		if err != nil {
			log.Fatalf("PostgreSQL接続に失敗: %v", err)
		}
		pgRepo := repository.NewPostgresDatasetRepository(client)
		return pgRepo, pgRepo
	}
	fmt.Println("Using CSV dataset source:", srcDir)
	return repository.NewCSVVendorRepository(srcDir), repository.NewCSVOrderRepository(srcDir)
}

// openBrowser サーバー起動後にダッシュボードをブラウザで開く
func openBrowser(url string) {
	time.Sleep(1 * time.Second)
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = exec.Command("open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("⚠️ ブラウザを開けませんでした: %v", err)
	}
}

// envOrDefault 環境変数の値、未設定なら既定値を返す
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
