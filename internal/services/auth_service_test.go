package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
)

type authRepoStub struct {
	user         models.User
	findErr      error
	token        string
	tokenExpiry  time.Time
	verifiedUser uint
}

func (stub *authRepoStub) ExistsByNormalizedEmail(email string) (bool, error) {
	return stub.findErr == nil, nil
}

func (stub *authRepoStub) FindByNormalizedEmail(email string) (models.User, error) {
	return stub.user, stub.findErr
}

func (stub *authRepoStub) FindByID(userID uint) (models.User, error) {
	return stub.user, stub.findErr
}

func (stub *authRepoStub) Create(user *models.User) error {
	user.ID = 1
	return nil
}

func (stub *authRepoStub) FindByVerificationToken(token string) (models.User, error) {
	if token != stub.token {
		return models.User{}, stub.notFound()
	}
	return stub.user, nil
}

func (stub *authRepoStub) SetVerificationToken(userID uint, token string, expiry time.Time) error {
	stub.token = token
	stub.tokenExpiry = expiry
	return nil
}

func (stub *authRepoStub) MarkEmailVerified(userID uint) error {
	stub.verifiedUser = userID
	return nil
}

func (stub *authRepoStub) notFound() error {
	return errors.New("record not found")
}

func TestIssueVerificationToken_StoresTokenWith24HourExpiry(t *testing.T) {
	t.Parallel()

	stub := &authRepoStub{}
	service := NewAuthService(stub)
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)

	token, err := service.IssueVerificationToken(1, now)
	if err != nil {
		t.Fatalf("issue verification token: %v", err)
	}
	if token == "" || token != stub.token {
		t.Fatalf("expected stored token to be returned, got %q (stored %q)", token, stub.token)
	}
	if !stub.tokenExpiry.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h expiry, got %s", stub.tokenExpiry)
	}
}

func TestVerifyEmail_MarksAccountVerified(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	stub := &authRepoStub{
		user:  models.User{ID: 7, Email: "user@example.com", EmailVerificationExpiry: &expiry},
		token: "valid-token",
	}
	service := NewAuthService(stub)

	now := expiry.Add(-time.Hour)
	user, err := service.VerifyEmail("valid-token", now)
	if err != nil {
		t.Fatalf("verify email: %v", err)
	}
	if !user.EmailVerified {
		t.Fatal("expected returned user to be verified")
	}
	if stub.verifiedUser != 7 {
		t.Fatalf("expected user 7 marked verified, got %d", stub.verifiedUser)
	}
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	t.Parallel()

	service := NewAuthService(&authRepoStub{token: "other"})

	if _, err := service.VerifyEmail("missing", time.Now()); !errors.Is(err, ErrVerificationTokenNotFound) {
		t.Fatalf("expected ErrVerificationTokenNotFound, got %v", err)
	}
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2026, time.August, 27, 10, 0, 0, 0, time.UTC)
	stub := &authRepoStub{
		user:  models.User{ID: 7, EmailVerificationExpiry: &expiry},
		token: "stale-token",
	}
	service := NewAuthService(stub)

	now := expiry.Add(time.Minute)
	if _, err := service.VerifyEmail("stale-token", now); !errors.Is(err, ErrVerificationTokenExpired) {
		t.Fatalf("expected ErrVerificationTokenExpired, got %v", err)
	}
	if stub.verifiedUser != 0 {
		t.Fatal("expected expired token not to verify the account")
	}
}

func TestVerifyEmail_MissingExpiryTreatedAsExpired(t *testing.T) {
	t.Parallel()

	stub := &authRepoStub{
		user:  models.User{ID: 7},
		token: "legacy-token",
	}
	service := NewAuthService(stub)

	if _, err := service.VerifyEmail("legacy-token", time.Now()); !errors.Is(err, ErrVerificationTokenExpired) {
		t.Fatalf("expected ErrVerificationTokenExpired, got %v", err)
	}
}
