package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/nutrilog/nutrilog/internal/api"
	"github.com/nutrilog/nutrilog/internal/db"
	"github.com/nutrilog/nutrilog/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "nutrilog.db"))
	port := getEnv("PORT", "8080")
	baseURL := getEnv("BASE_URL", "http://localhost:"+port)
	uploadsDir := getEnv("UPLOADS_DIR", "uploads")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	mailer := buildMailer(bootCtx)
	detector := buildDetector(bootCtx)
	cancelBoot()

	handler, err := api.NewHandler(database, secretKey, baseURL, uploadsDir, location, mailer, detector)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "NutriLog",
		DisableStartupMessage: true,
		BodyLimit:             12 << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/uploads", uploadsDir)
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	handler.Worker().Start(lifecycleCtx)
	if err := handler.Worker().RequeueUnfinished(); err != nil {
		log.Printf("requeue of unfinished analyses failed: %v", err)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("NutriLog listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func buildMailer(ctx context.Context) services.Mailer {
	if os.Getenv("SES_EMAIL") == "" {
		log.Printf("SES_EMAIL not set, verification links are logged instead of mailed")
		return services.LogMailer{}
	}
	mailer, err := services.NewSESMailer(ctx)
	if err != nil {
		log.Printf("SES mailer unavailable (%v), falling back to log output", err)
		return services.LogMailer{}
	}
	return mailer
}

func buildDetector(ctx context.Context) services.LabelDetector {
	if os.Getenv("AWS_REGION") == "" {
		log.Printf("AWS_REGION not set, meal photo analysis is disabled")
		return services.UnconfiguredDetector{}
	}
	detector, err := services.NewRekognitionDetector(ctx)
	if err != nil {
		log.Printf("image analysis unavailable (%v), uploads will fail analysis", err)
		return services.UnconfiguredDetector{}
	}
	return detector
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
