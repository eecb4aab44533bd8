package api

import "github.com/gofiber/fiber/v2"

// AuthRequired authenticates the cookie session and forces fresh accounts
// through onboarding before anything else (logout stays reachable).
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	c.Locals(contextUserKey, user)
	if !user.OnboardingCompleted && !isOnboardingExemptPath(c.Path()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "onboarding required"})
	}

	return c.Next()
}

func isOnboardingExemptPath(path string) bool {
	return path == "/api/onboarding" || path == "/api/auth/logout"
}
