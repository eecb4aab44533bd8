package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/services"
)

func (handler *Handler) Profile(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{
		"user_id":              user.ID,
		"email":                user.Email,
		"full_name":            user.FullName,
		"nickname":             user.Nickname,
		"display_name":         user.DisplayName(),
		"top_love_language":    user.TopLoveLanguage,
		"second_love_language": user.SecondLoveLanguage,
		"onboarding_completed": user.OnboardingCompleted,
	})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := onboardingInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	err := handler.onboardingService.UpdateProfile(user.ID, services.OnboardingProfile{
		FullName:           input.FullName,
		Nickname:           input.Nickname,
		TopLoveLanguage:    input.TopLoveLanguage,
		SecondLoveLanguage: input.SecondLoveLanguage,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFullNameRequired),
			errors.Is(err, services.ErrUnknownLoveLanguage),
			errors.Is(err, services.ErrDuplicateLoveLanguage):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "profile update failed")
		}
	}

	return c.JSON(fiber.Map{"status": "profile updated"})
}
