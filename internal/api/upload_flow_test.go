package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nutrilog/nutrilog/internal/services"
)

func uploadImage(t *testing.T, app *fiber.App, token string, fileName string, contentType string, payload []byte) *http.Response {
	t.Helper()

	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write image payload: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/api/meals/upload", buffer)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.Header.Set("Authorization", "Bearer "+token)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	return response
}

func TestUpload_CreatesUploadedMeal(t *testing.T) {
	app, database := newTestApp(t)
	token := signUpVerifiedUser(t, app, database)

	response := uploadImage(t, app, token, "lunch.jpg", "image/jpeg", []byte("jpeg-bytes"))
	expectStatus(t, response, http.StatusCreated)

	var receipt uploadResponse
	decodeBody(t, response, &receipt)

	if receipt.ID == "" {
		t.Fatal("expected a meal id in the upload receipt")
	}
	if receipt.Status != "UPLOADED" {
		t.Fatalf("expected UPLOADED status, got %s", receipt.Status)
	}
	if receipt.ImageURL == "" {
		t.Fatal("expected an image URL in the upload receipt")
	}
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	app, database := newTestApp(t)
	token := signUpVerifiedUser(t, app, database)

	response := uploadImage(t, app, token, "notes.txt", "text/plain", []byte("hello"))
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for text upload, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestUpload_RequiresImageField(t *testing.T) {
	app, database := newTestApp(t)
	token := signUpVerifiedUser(t, app, database)

	response := jsonRequest(t, app, http.MethodPost, "/api/meals/upload", token, map[string]string{})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without image field, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func waitForTerminalStatus(t *testing.T, app *fiber.App, token string, mealID string) mealResponse {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		response := jsonRequest(t, app, http.MethodGet, "/api/meals/"+mealID+"/analysis", token, nil)
		expectStatus(t, response, http.StatusOK)

		var meal mealResponse
		decodeBody(t, response, &meal)
		if meal.Status == "ANALYZED" || meal.Status == "FAILED" {
			return meal
		}
		if time.Now().After(deadline) {
			t.Fatalf("meal %s still %s after deadline", mealID, meal.Status)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestUpload_WorkerAnalyzesRecognizedFood(t *testing.T) {
	detector := stubDetector{labels: []services.Label{{Name: "Banana", Confidence: 0.93}}}
	app, database := newTestAppWithDetector(t, detector)
	token := signUpVerifiedUser(t, app, database)

	response := uploadImage(t, app, token, "banana.jpg", "image/jpeg", []byte("jpeg-bytes"))
	expectStatus(t, response, http.StatusCreated)
	var receipt uploadResponse
	decodeBody(t, response, &receipt)

	meal := waitForTerminalStatus(t, app, token, receipt.ID)
	if meal.Status != "ANALYZED" {
		t.Fatalf("expected ANALYZED, got %s (%s)", meal.Status, meal.ErrorMessage)
	}
	if len(meal.DetectedFoods) != 1 || meal.DetectedFoods[0].Name != "Banana" {
		t.Fatalf("expected detected banana, got %+v", meal.DetectedFoods)
	}
	if meal.DetectedFoods[0].QuantityGrams != 150 {
		t.Fatalf("expected default 150g portion, got %v", meal.DetectedFoods[0].QuantityGrams)
	}
	if meal.NutritionSummary == nil || meal.NutritionSummary.TotalCalories != 133.5 {
		t.Fatalf("expected 133.5 kcal summary, got %+v", meal.NutritionSummary)
	}
	if meal.AnalyzedAt == nil {
		t.Fatal("expected analyzedAt on terminal meal")
	}
}

func TestUpload_WorkerFailsUnrecognizedFood(t *testing.T) {
	detector := stubDetector{labels: []services.Label{{Name: "Skyscraper", Confidence: 0.99}}}
	app, database := newTestAppWithDetector(t, detector)
	token := signUpVerifiedUser(t, app, database)

	response := uploadImage(t, app, token, "city.jpg", "image/jpeg", []byte("jpeg-bytes"))
	expectStatus(t, response, http.StatusCreated)
	var receipt uploadResponse
	decodeBody(t, response, &receipt)

	meal := waitForTerminalStatus(t, app, token, receipt.ID)
	if meal.Status != "FAILED" {
		t.Fatalf("expected FAILED, got %s", meal.Status)
	}
	if meal.ErrorMessage != "low confidence" {
		t.Fatalf("expected low confidence message, got %q", meal.ErrorMessage)
	}
}
