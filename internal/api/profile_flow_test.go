package api

import (
	"net/http"
	"testing"
)

func TestProfile_StartsWithoutOnboardingData(t *testing.T) {
	app, database := newTestApp(t)
	token := signUpVerifiedUser(t, app, database)

	response := jsonRequest(t, app, http.MethodGet, "/api/user/profile", token, nil)
	expectStatus(t, response, http.StatusOK)

	var profile profileResponse
	decodeBody(t, response, &profile)

	if profile.Height != nil || profile.Weight != nil || profile.Goal != "" {
		t.Fatalf("expected empty onboarding fields, got %+v", profile)
	}
	if profile.BMR != nil || profile.TDEE != nil || profile.NutritionGoals != nil {
		t.Fatal("expected no derived values before onboarding")
	}
}

func TestProfile_UpdateDerivesGoals(t *testing.T) {
	app, database := newTestApp(t)
	token := signUpVerifiedUser(t, app, database)

	response := jsonRequest(t, app, http.MethodPut, "/api/user/profile", token, map[string]any{
		"height":        180.0,
		"weight":        80.0,
		"dateOfBirth":   "1996-01-15",
		"gender":        "MALE",
		"activityLevel": "MODERATELY_ACTIVE",
		"goal":          "WEIGHT_LOSS",
	})
	expectStatus(t, response, http.StatusOK)

	var profile profileResponse
	decodeBody(t, response, &profile)

	if profile.Age == nil || *profile.Age < 29 {
		t.Fatalf("expected derived age, got %v", profile.Age)
	}
	if profile.BMR == nil || profile.TDEE == nil {
		t.Fatal("expected derived BMR and TDEE after onboarding")
	}
	if profile.NutritionGoals == nil {
		t.Fatal("expected nutrition goals after onboarding")
	}
	if profile.NutritionGoals.Calories >= *profile.TDEE {
		t.Fatalf("expected weight loss calories below TDEE, got %v >= %v",
			profile.NutritionGoals.Calories, *profile.TDEE)
	}
}

func TestProfile_PartialUpdateKeepsOtherFields(t *testing.T) {
	app, database := newTestApp(t)
	token := signUpVerifiedUser(t, app, database)

	response := jsonRequest(t, app, http.MethodPut, "/api/user/profile", token, map[string]any{
		"height": 170.0,
		"weight": 65.0,
		"goal":   "MAINTENANCE",
	})
	expectStatus(t, response, http.StatusOK)
	response.Body.Close()

	response = jsonRequest(t, app, http.MethodPut, "/api/user/profile", token, map[string]any{
		"weight": 64.0,
	})
	expectStatus(t, response, http.StatusOK)

	var profile profileResponse
	decodeBody(t, response, &profile)

	if profile.Height == nil || *profile.Height != 170 {
		t.Fatalf("expected height 170 untouched, got %v", profile.Height)
	}
	if profile.Weight == nil || *profile.Weight != 64 {
		t.Fatalf("expected weight updated to 64, got %v", profile.Weight)
	}
	if profile.Goal != "MAINTENANCE" {
		t.Fatalf("expected goal untouched, got %q", profile.Goal)
	}
}

func TestProfile_RejectsInvalidValues(t *testing.T) {
	app, database := newTestApp(t)
	token := signUpVerifiedUser(t, app, database)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"invalid goal", map[string]any{"goal": "GET_SWOLE"}},
		{"invalid gender", map[string]any{"gender": "YES"}},
		{"invalid activity", map[string]any{"activityLevel": "NONE"}},
		{"negative height", map[string]any{"height": -10.0}},
		{"zero weight", map[string]any{"weight": 0.0}},
		{"bad date", map[string]any{"dateOfBirth": "15/01/1996"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response := jsonRequest(t, app, http.MethodPut, "/api/user/profile", token, test.body)
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", response.StatusCode)
			}
			response.Body.Close()
		})
	}
}
