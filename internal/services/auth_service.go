package services

import (
	"errors"
	"time"

	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/security"
)

const verificationTokenTTL = 24 * time.Hour

var (
	ErrVerificationTokenNotFound = errors.New("verification token not found")
	ErrVerificationTokenExpired  = errors.New("verification token expired")
	ErrEmailNotVerified          = errors.New("email not verified")
	ErrInvalidCredentials        = errors.New("invalid credentials")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	FindByVerificationToken(token string) (models.User, error)
	SetVerificationToken(userID uint, token string, expiry time.Time) error
	MarkEmailVerified(userID uint) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) RegistrationEmailExists(email string) (bool, error) {
	return service.users.ExistsByNormalizedEmail(email)
}

func (service *AuthService) CreateUser(user *models.User) error {
	return service.users.Create(user)
}

func (service *AuthService) FindByNormalizedEmail(email string) (models.User, error) {
	return service.users.FindByNormalizedEmail(email)
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// IssueVerificationToken stores a fresh token for the user and returns it.
func (service *AuthService) IssueVerificationToken(userID uint, now time.Time) (string, error) {
	token, err := security.VerificationToken()
	if err != nil {
		return "", err
	}
	if err := service.users.SetVerificationToken(userID, token, now.Add(verificationTokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyEmail resolves a token, enforces its expiry, and marks the account verified.
func (service *AuthService) VerifyEmail(token string, now time.Time) (models.User, error) {
	user, err := service.users.FindByVerificationToken(token)
	if err != nil {
		return models.User{}, ErrVerificationTokenNotFound
	}
	if user.EmailVerificationExpiry == nil || user.EmailVerificationExpiry.Before(now) {
		return models.User{}, ErrVerificationTokenExpired
	}
	if err := service.users.MarkEmailVerified(user.ID); err != nil {
		return models.User{}, err
	}
	user.EmailVerified = true
	return user, nil
}
