package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nutrilog/nutrilog/internal/db"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/services"
	"gorm.io/gorm"
)

type stubDetector struct {
	labels []services.Label
	err    error
}

func (detector stubDetector) DetectLabels(ctx context.Context, image []byte) ([]services.Label, error) {
	return detector.labels, detector.err
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newTestAppWithDetector(t, stubDetector{})
}

func newTestAppWithDetector(t *testing.T, detector services.LabelDetector) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "nutrilog-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	uploadsDir := filepath.Join(t.TempDir(), "uploads")
	handler, err := NewHandler(database, "test-secret-key", "http://localhost:8080", uploadsDir, time.UTC, services.LogMailer{}, detector)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	t.Cleanup(cancelWorker)
	handler.Worker().Start(workerCtx)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, app *fiber.App, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response, out any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()

	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		response.Body.Close()
		t.Fatalf("expected status %d, got %d (body: %s)", expected, response.StatusCode, body)
	}
}

func errorMessage(t *testing.T, response *http.Response) string {
	t.Helper()

	envelope := struct {
		Error string `json:"error"`
	}{}
	decodeBody(t, response, &envelope)
	return envelope.Error
}

var testUserSequence int

// signUpVerifiedUser registers, verifies via the emailed token path, logs in
// and returns the bearer token.
func signUpVerifiedUser(t *testing.T, app *fiber.App, database *gorm.DB) string {
	t.Helper()

	testUserSequence++
	email := fmt.Sprintf("user%d@example.com", testUserSequence)
	password := "password123"

	response := jsonRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": password,
	})
	expectStatus(t, response, http.StatusCreated)
	response.Body.Close()

	var user models.User
	if err := database.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("load registered user: %v", err)
	}
	if user.EmailVerificationToken == "" {
		t.Fatal("expected a verification token after registration")
	}

	response = jsonRequest(t, app, http.MethodGet, "/api/auth/verify-email/"+user.EmailVerificationToken, "", nil)
	expectStatus(t, response, http.StatusOK)
	response.Body.Close()

	response = jsonRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	expectStatus(t, response, http.StatusOK)

	login := struct {
		Token string `json:"token"`
	}{}
	decodeBody(t, response, &login)
	if login.Token == "" {
		t.Fatal("expected a bearer token from login")
	}
	return login.Token
}
