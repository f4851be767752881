package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nutrilog/nutrilog/internal/services"
)

const (
	contextUserKey = "current_user"

	authTokenTTL = 7 * 24 * time.Hour
)

type Handler struct {
	secretKey  []byte
	location   *time.Location
	baseURL    string
	uploadsDir string

	authService    *services.AuthService
	profileService *services.ProfileService
	mealService    *services.MealService
	catalogService *services.CatalogService
	statsService   *services.StatsService
	worker         *services.AnalysisWorker
	mailer         services.Mailer
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
