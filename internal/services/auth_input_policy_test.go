package services

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("expected user@example.com, got %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		expected error
	}{
		{"valid", "user@example.com", nil},
		{"valid with surrounding spaces", "  user@example.com  ", nil},
		{"empty", "   ", ErrEmailRequired},
		{"missing at", "userexample.com", ErrEmailInvalid},
		{"missing domain dot", "user@example", ErrEmailInvalid},
		{"spaces inside", "us er@example.com", ErrEmailInvalid},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateEmail(test.email); !errors.Is(err, test.expected) {
				t.Fatalf("expected %v, got %v", test.expected, err)
			}
		})
	}
}

func TestValidateRegistrationName(t *testing.T) {
	t.Parallel()

	if err := ValidateRegistrationName("Alex"); err != nil {
		t.Fatalf("expected valid name, got %v", err)
	}
	if err := ValidateRegistrationName("   "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("longenough"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
	if err := ValidatePassword("short7!"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}
