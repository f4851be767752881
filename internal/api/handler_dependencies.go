package api

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nutrilog/nutrilog/internal/db"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/services"
	"gorm.io/gorm"
)

func NewHandler(
	database *gorm.DB,
	secretKey string,
	baseURL string,
	uploadsDir string,
	location *time.Location,
	mailer services.Mailer,
	detector services.LabelDetector,
) (*Handler, error) {
	if location == nil {
		location = time.UTC
	}
	if mailer == nil {
		mailer = services.LogMailer{}
	}
	if detector == nil {
		detector = services.UnconfiguredDetector{}
	}

	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}

	repos := db.NewRepositories(database)
	catalogService := services.NewCatalogService(repos.Foods)
	if err := catalogService.Seed(); err != nil {
		return nil, err
	}

	worker := services.NewAnalysisWorker(repos.Meals, catalogService, detector, func(meal models.Meal) ([]byte, error) {
		return os.ReadFile(filepath.Join(uploadsDir, filepath.Base(meal.ImageURL)))
	})

	return &Handler{
		secretKey:      []byte(secretKey),
		location:       location,
		baseURL:        baseURL,
		uploadsDir:     uploadsDir,
		authService:    services.NewAuthService(repos.Users),
		profileService: services.NewProfileService(repos.Users),
		mealService:    services.NewMealService(repos.Meals),
		catalogService: catalogService,
		statsService:   services.NewStatsService(repos.Meals),
		worker:         worker,
		mailer:         mailer,
	}, nil
}

// Worker exposes the analysis worker so the entrypoint can run its lifecycle.
func (handler *Handler) Worker() *services.AnalysisWorker {
	return handler.worker
}
