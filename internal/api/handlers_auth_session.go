package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/models"
	"github.com/terraincognita07/couplesync/internal/services"
	"golang.org/x/crypto/bcrypt"
)

const (
	passwordResetTokenTTL = 30 * time.Minute

	recoveryAttemptLimit  = 5
	recoveryAttemptWindow = 15 * time.Minute
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email, message := parseCredentials(input.Email, input.Password, input.ConfirmPassword)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	exists, err := handler.authService.RegistrationEmailExists(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	recoveryCode, recoveryHash, err := services.GenerateRecoveryCodeHash()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	user := models.User{
		Email:            email,
		PasswordHash:     string(passwordHash),
		RecoveryCodeHash: recoveryHash,
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	if err := handler.setAuthCookie(c, &user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	// The recovery code is shown exactly once; only its bcrypt hash is stored.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id":       user.ID,
		"email":         user.Email,
		"recovery_code": recoveryCode,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := normalizeEmail(input.Email)
	user, err := handler.authService.FindByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	return c.JSON(fiber.Map{
		"user_id":              user.ID,
		"email":                user.Email,
		"onboarding_completed": user.OnboardingCompleted,
		"must_change_password": user.MustChangePassword,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"status": "ok"})
}

// ForgotPassword exchanges a recovery code for a short-lived reset token.
// Failures count against a per-IP limiter to slow down code guessing.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	input := forgotPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.recoveryLimiter.tooManyRecent(limiterKey, now, recoveryAttemptLimit, recoveryAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
	}

	code := services.NormalizeRecoveryCode(input.RecoveryCode)
	if !recoveryCodeRegex.MatchString(code) {
		handler.recoveryLimiter.addFailure(limiterKey, now, recoveryAttemptWindow)
		return apiError(c, fiber.StatusBadRequest, "invalid recovery code")
	}

	user, err := handler.authService.FindUserByRecoveryCode(code)
	if err != nil {
		if errors.Is(err, services.ErrRecoveryCodeNotFound) {
			handler.recoveryLimiter.addFailure(limiterKey, now, recoveryAttemptWindow)
			return apiError(c, fiber.StatusBadRequest, "invalid recovery code")
		}
		return apiError(c, fiber.StatusInternalServerError, "recovery failed")
	}

	token, err := handler.buildPasswordResetToken(user.ID, user.PasswordHash, passwordResetTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "recovery failed")
	}

	handler.recoveryLimiter.reset(limiterKey)
	return c.JSON(fiber.Map{
		"reset_token": token,
		"expires_in":  int(passwordResetTokenTTL.Seconds()),
	})
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	input := resetPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	claims, err := handler.parsePasswordResetToken(input.Token)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid or expired reset token")
	}

	if message := validatePasswordStrength(input.Password); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	if input.Password != input.ConfirmPassword {
		return apiError(c, fiber.StatusBadRequest, "passwords do not match")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid or expired reset token")
	}

	// The token fingerprints the password hash it was issued against, so
	// each token works at most once.
	if !services.IsPasswordStateFingerprintMatch(claims.PasswordState, user.PasswordHash) {
		return apiError(c, fiber.StatusUnauthorized, "invalid or expired reset token")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "password reset failed")
	}

	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = false
	if err := handler.authService.SaveUser(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "password reset failed")
	}

	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"status": "password updated"})
}
