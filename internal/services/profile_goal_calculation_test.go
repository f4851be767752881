package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

func floatPtr(value float64) *float64 { return &value }
func intPtr(value int) *int           { return &value }
func strPtr(value string) *string     { return &value }

func TestCalculateBMR_MifflinStJeorByGender(t *testing.T) {
	t.Parallel()

	male := CalculateBMR(floatPtr(80), floatPtr(180), intPtr(30), models.GenderMale)
	if male == nil || *male != 1780 {
		t.Fatalf("expected male BMR 1780, got %v", male)
	}

	female := CalculateBMR(floatPtr(60), floatPtr(165), intPtr(25), models.GenderFemale)
	if female == nil || *female != 1345.25 {
		t.Fatalf("expected female BMR 1345.25, got %v", female)
	}

	other := CalculateBMR(floatPtr(80), floatPtr(180), intPtr(30), models.GenderOther)
	if other == nil || *other != 1697 {
		t.Fatalf("expected other BMR 1697, got %v", other)
	}
}

func TestCalculateBMR_RequiresAllInputs(t *testing.T) {
	t.Parallel()

	if got := CalculateBMR(nil, floatPtr(180), intPtr(30), models.GenderMale); got != nil {
		t.Fatalf("expected nil BMR without weight, got %v", *got)
	}
	if got := CalculateBMR(floatPtr(80), floatPtr(180), intPtr(30), ""); got != nil {
		t.Fatalf("expected nil BMR without gender, got %v", *got)
	}
}

func TestCalculateTDEE_AppliesActivityFactor(t *testing.T) {
	t.Parallel()

	bmr := floatPtr(1780)

	tests := []struct {
		activityLevel string
		expected      float64
	}{
		{models.ActivitySedentary, 2136},
		{models.ActivityLightlyActive, 2447.5},
		{models.ActivityModeratelyActive, 2759},
		{models.ActivityVeryActive, 3070.5},
		{models.ActivityExtremelyActive, 3382},
	}
	for _, test := range tests {
		got := CalculateTDEE(bmr, test.activityLevel)
		if got == nil || *got != test.expected {
			t.Fatalf("activity %s: expected TDEE %v, got %v", test.activityLevel, test.expected, got)
		}
	}
}

func TestCalculateNutritionGoals_WeightLossCutsCaloriesAndRaisesProtein(t *testing.T) {
	t.Parallel()

	goals := CalculateNutritionGoals(floatPtr(2759), models.GoalWeightLoss)
	if goals == nil {
		t.Fatal("expected goals, got nil")
	}
	if goals.Calories != 2345.15 {
		t.Fatalf("expected 2345.15 kcal, got %v", goals.Calories)
	}
	if goals.Protein != 234.52 {
		t.Fatalf("expected 234.52g protein, got %v", goals.Protein)
	}
	if goals.Carbohydrates != 175.89 {
		t.Fatalf("expected 175.89g carbs, got %v", goals.Carbohydrates)
	}
	if goals.Fat != 78.17 {
		t.Fatalf("expected 78.17g fat, got %v", goals.Fat)
	}
}

func TestCalculateNutritionGoals_MaintenanceKeepsTDEE(t *testing.T) {
	t.Parallel()

	goals := CalculateNutritionGoals(floatPtr(1614.3), models.GoalMaintenance)
	if goals == nil {
		t.Fatal("expected goals, got nil")
	}
	if goals.Calories != 1614.3 {
		t.Fatalf("expected 1614.3 kcal, got %v", goals.Calories)
	}
	if goals.Protein != 121.07 {
		t.Fatalf("expected 121.07g protein, got %v", goals.Protein)
	}
	if goals.Carbohydrates != 161.43 {
		t.Fatalf("expected 161.43g carbs, got %v", goals.Carbohydrates)
	}
	if goals.Fat != 53.81 {
		t.Fatalf("expected 53.81g fat, got %v", goals.Fat)
	}
}

func TestCalculateNutritionGoals_SurplusGoals(t *testing.T) {
	t.Parallel()

	muscle := CalculateNutritionGoals(floatPtr(2000), models.GoalMuscleGain)
	if muscle == nil || muscle.Calories != 2200 {
		t.Fatalf("expected 2200 kcal for muscle gain, got %v", muscle)
	}

	gain := CalculateNutritionGoals(floatPtr(2000), models.GoalWeightGain)
	if gain == nil || gain.Calories != 2300 {
		t.Fatalf("expected 2300 kcal for weight gain, got %v", gain)
	}
	if gain.Protein != 143.75 {
		t.Fatalf("expected 143.75g protein for weight gain, got %v", gain.Protein)
	}
}

func TestCalculateAge_BirthdayBoundary(t *testing.T) {
	t.Parallel()

	dob := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2026, time.June, 14, 12, 0, 0, 0, time.UTC)
	if age := CalculateAge(&dob, dayBefore); age == nil || *age != 35 {
		t.Fatalf("expected age 35 before birthday, got %v", age)
	}

	onBirthday := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	if age := CalculateAge(&dob, onBirthday); age == nil || *age != 36 {
		t.Fatalf("expected age 36 on birthday, got %v", age)
	}

	if age := CalculateAge(nil, onBirthday); age != nil {
		t.Fatalf("expected nil age without date of birth, got %v", *age)
	}
}

func TestGoalsForUser_FallsBackToDefaultsWhileIncomplete(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	user := &models.User{}

	if got := GoalsForUser(user, now); got != DefaultNutritionGoals {
		t.Fatalf("expected default goals for empty profile, got %+v", got)
	}
}

func TestNeedsOnboarding_GatedOnHeightWeightGoal(t *testing.T) {
	t.Parallel()

	complete := &models.User{
		HeightCm: floatPtr(180),
		WeightKg: floatPtr(80),
		Goal:     models.GoalMaintenance,
	}
	if NeedsOnboarding(complete) {
		t.Fatal("expected complete profile to pass onboarding gate")
	}

	missingGoal := &models.User{HeightCm: floatPtr(180), WeightKg: floatPtr(80)}
	if !NeedsOnboarding(missingGoal) {
		t.Fatal("expected missing goal to require onboarding")
	}
	missingWeight := &models.User{HeightCm: floatPtr(180), Goal: models.GoalMaintenance}
	if !NeedsOnboarding(missingWeight) {
		t.Fatal("expected missing weight to require onboarding")
	}
	if !NeedsOnboarding(nil) {
		t.Fatal("expected nil user to require onboarding")
	}
}

type profileRepoStub struct {
	user    models.User
	updates map[string]any
	findErr error
}

func (stub *profileRepoStub) FindByID(userID uint) (models.User, error) {
	if stub.findErr != nil {
		return models.User{}, stub.findErr
	}
	return stub.user, nil
}

func (stub *profileRepoStub) UpdateByID(userID uint, updates map[string]any) error {
	stub.updates = updates
	return nil
}

func TestUpdateProfile_RejectsInvalidEnumValues(t *testing.T) {
	t.Parallel()

	service := NewProfileService(&profileRepoStub{})

	if _, err := service.UpdateProfile(1, ProfileUpdate{Gender: strPtr("ALIEN")}); !errors.Is(err, ErrInvalidGender) {
		t.Fatalf("expected ErrInvalidGender, got %v", err)
	}
	if _, err := service.UpdateProfile(1, ProfileUpdate{ActivityLevel: strPtr("couch")}); !errors.Is(err, ErrInvalidActivityLevel) {
		t.Fatalf("expected ErrInvalidActivityLevel, got %v", err)
	}
	if _, err := service.UpdateProfile(1, ProfileUpdate{Goal: strPtr("BULK")}); !errors.Is(err, ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
	if _, err := service.UpdateProfile(1, ProfileUpdate{HeightCm: floatPtr(-5)}); !errors.Is(err, ErrInvalidHeight) {
		t.Fatalf("expected ErrInvalidHeight, got %v", err)
	}
	if _, err := service.UpdateProfile(1, ProfileUpdate{WeightKg: floatPtr(0)}); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight, got %v", err)
	}
}

func TestUpdateProfile_OnlySetFieldsAreWritten(t *testing.T) {
	t.Parallel()

	stub := &profileRepoStub{}
	service := NewProfileService(stub)

	_, err := service.UpdateProfile(1, ProfileUpdate{
		HeightCm: floatPtr(175),
		Goal:     strPtr(models.GoalWeightLoss),
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if len(stub.updates) != 2 {
		t.Fatalf("expected 2 columns updated, got %v", stub.updates)
	}
	if stub.updates["height_cm"] != 175.0 {
		t.Fatalf("expected height_cm 175, got %v", stub.updates["height_cm"])
	}
	if stub.updates["goal"] != models.GoalWeightLoss {
		t.Fatalf("expected goal %s, got %v", models.GoalWeightLoss, stub.updates["goal"])
	}
}

func TestUpdateProfile_NoFieldsSkipsWrite(t *testing.T) {
	t.Parallel()

	stub := &profileRepoStub{}
	service := NewProfileService(stub)

	if _, err := service.UpdateProfile(1, ProfileUpdate{}); err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if stub.updates != nil {
		t.Fatalf("expected no repository write for empty update, got %v", stub.updates)
	}
}
