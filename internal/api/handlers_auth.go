package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nutrilog/nutrilog/internal/models"
	"github.com/nutrilog/nutrilog/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := services.ValidateRegistrationName(input.Name); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := services.ValidateEmail(input.Email); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := services.ValidatePassword(input.Password); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	email := services.NormalizeEmail(input.Email)
	exists, err := handler.authService.RegistrationEmailExists(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to register")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email is already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to register")
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(passwordHash),
		ProfileURL:   input.ProfileURL,
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to register")
	}

	if err := handler.sendVerificationMail(c, &user); err != nil {
		log.Printf("auth: verification email for %s not sent: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(buildAuthResponse(&user, ""))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.FindByNormalizedEmail(services.NormalizeEmail(input.Email))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	}
	if !user.EmailVerified {
		return apiError(c, fiber.StatusForbidden, services.ErrEmailNotVerified.Error())
	}

	token, err := handler.buildToken(&user, time.Now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	return c.JSON(buildAuthResponse(&user, token))
}

func (handler *Handler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")

	user, err := handler.authService.VerifyEmail(token, time.Now())
	switch {
	case errors.Is(err, services.ErrVerificationTokenNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrVerificationTokenExpired):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to verify email")
	}

	return c.JSON(fiber.Map{"verified": true, "email": user.Email})
}

func (handler *Handler) SendVerificationEmail(c *fiber.Ctx) error {
	input := sendVerificationInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := services.ValidateEmail(input.Email); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := handler.authService.FindByNormalizedEmail(services.NormalizeEmail(input.Email))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "account not found")
	}
	if user.EmailVerified {
		return apiError(c, fiber.StatusConflict, "email already verified")
	}

	if err := handler.sendVerificationMail(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to send verification email")
	}

	return c.JSON(fiber.Map{"sent": true})
}

func (handler *Handler) sendVerificationMail(c *fiber.Ctx, user *models.User) error {
	token, err := handler.authService.IssueVerificationToken(user.ID, time.Now())
	if err != nil {
		return err
	}
	verifyURL := handler.baseURL + "/api/auth/verify-email/" + token
	return handler.mailer.SendVerificationEmail(c.Context(), user.Email, verifyURL)
}
