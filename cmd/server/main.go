package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reciperoll/internal/handlers"
	"reciperoll/internal/ingestion"
	"reciperoll/internal/models"
	"reciperoll/internal/storage"
	"reciperoll/internal/version"
	"reciperoll/internal/worker"
)

func main() {
	// .envファイルを読み込み（存在しない場合はスキップ）
	_ = godotenv.Load()

	// 環境変数からポート番号を取得（デフォルト: 8080）
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// データベースパスを取得（デフォルト: ~/.reciperoll/reciperoll.db）
	dbPath := os.Getenv("RECIPEROLL_DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		dbPath = filepath.Join(home, ".reciperoll", "reciperoll.db")
	}

	// モデル・データディレクトリ
	modelsDir := os.Getenv("RECIPEROLL_MODELS_DIR")
	if modelsDir == "" {
		modelsDir = "models"
	}
	dataDir := os.Getenv("RECIPEROLL_DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Dir(dbPath)
	}

	// データベース初期化
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Printf("Database initialized at %s", dbPath)

	// リポジトリ作成
	sourceRepo := storage.NewSourceRepository(db)
	artifactRepo := storage.NewArtifactRepository(db)
	jobRepo := storage.NewJobRepository(db)

	// インジェスター作成
	audioIngester := ingestion.NewAudioIngester(sourceRepo, artifactRepo, jobRepo, modelsDir, dataDir)
	defer audioIngester.Close()
	videoIngester := ingestion.NewVideoIngester(sourceRepo, artifactRepo, jobRepo, dataDir)

	// ワーカー作成・起動
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.NewWorker(jobRepo)
	if interval := os.Getenv("RECIPEROLL_WORKER_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			w.SetInterval(d)
		}
	}
	w.RegisterHandler(models.JobTypeTranscribe, audioIngester.ProcessTranscription)
	w.RegisterHandler(models.JobTypeExtractFrames, videoIngester.ProcessExtraction)
	w.Start(ctx)
	defer w.Stop()

	// ハンドラー作成
	sourceHandler := handlers.NewSourceHandler(sourceRepo, artifactRepo)
	jobHandler := handlers.NewJobHandler(jobRepo, sourceRepo)
	audioHandler := handlers.NewAudioHandler(audioIngester, sourceRepo, artifactRepo)
	videoHandler := handlers.NewVideoHandler(videoIngester)
	xhsHandler := handlers.NewXhsHandler()

	// Echoインスタンスの作成
	e := echo.New()

	// ミドルウェアの設定
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"version": version.Version,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API ルートの登録
	api := e.Group("/api")

	// Sources API
	api.POST("/sources", sourceHandler.Create)
	api.GET("/sources", sourceHandler.List)
	api.GET("/sources/:id", sourceHandler.Get)
	api.GET("/sources/:id/artifacts", sourceHandler.Artifacts)
	api.GET("/sources/:id/transcript", audioHandler.Transcript)
	api.POST("/sources/:id/jobs", jobHandler.Enqueue)
	api.POST("/sources/:id/retranscribe", audioHandler.Retranscribe)
	api.GET("/artifacts/:id/content", sourceHandler.ArtifactContent)

	// Ingest API
	api.POST("/ingest/audio", audioHandler.Upload)
	api.POST("/ingest/frames", videoHandler.RegisterFrames)

	// Extractor API
	api.GET("/extractor/stats", videoHandler.Stats)
	api.POST("/extractor/reset", videoHandler.ResetStats)

	// Jobs API
	api.GET("/jobs", jobHandler.List)
	api.GET("/jobs/stats", jobHandler.Stats)
	api.GET("/jobs/:id", jobHandler.Get)
	api.DELETE("/jobs/:id", jobHandler.Delete)

	// XHS API
	api.POST("/xhs/extract-url", xhsHandler.ExtractURL)

	// グレースフルシャットダウン
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		e.Close()
	}()

	// サーバー起動
	log.Printf("Starting reciperoll v%s on port %s", version.Version, port)
	if err := e.Start(fmt.Sprintf(":%s", port)); err != nil {
		log.Println("Server stopped")
	}
}
