package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/models"
)

const (
	authCookieName = "couplesync_auth"
	contextUserKey = "current_user"
)

// currentUser returns the user AuthRequired stored on the request, or nil
// on routes that skipped the middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(contextUserKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
