package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/models"
	"github.com/terraincognita07/couplesync/internal/services"
)

func (handler *Handler) OnboardingOptions(c *fiber.Ctx) error {
	languages := models.LoveLanguages()
	options := make([]fiber.Map, 0, len(languages))
	for _, language := range languages {
		options = append(options, fiber.Map{
			"name": language,
			"icon": models.LoveLanguageIcon(language),
		})
	}
	return c.JSON(fiber.Map{"love_languages": options})
}

func (handler *Handler) CompleteOnboarding(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := onboardingInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	err := handler.onboardingService.Complete(user.ID, services.OnboardingProfile{
		FullName:           input.FullName,
		Nickname:           input.Nickname,
		TopLoveLanguage:    input.TopLoveLanguage,
		SecondLoveLanguage: input.SecondLoveLanguage,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOnboardingAlreadyCompleted):
			return apiError(c, fiber.StatusConflict, "onboarding already completed")
		case errors.Is(err, services.ErrFullNameRequired),
			errors.Is(err, services.ErrUnknownLoveLanguage),
			errors.Is(err, services.ErrDuplicateLoveLanguage):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "onboarding failed")
		}
	}

	return c.JSON(fiber.Map{"status": "onboarding completed"})
}
