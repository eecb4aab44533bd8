package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/onboarding", handler.AuthRequired, handler.OnboardingOptions)
	api.Post("/onboarding", handler.AuthRequired, handler.CompleteOnboarding)

	api.Get("/profile", handler.AuthRequired, handler.Profile)
	api.Put("/profile", handler.AuthRequired, handler.UpdateProfile)

	metrics := api.Group("/metrics", handler.AuthRequired)
	metrics.Get("", handler.ListMetrics)
	metrics.Post("", handler.CreateMetric)
	metrics.Get("/icons", handler.MetricIcons)
	metrics.Put("/:id", handler.UpdateMetric)
	metrics.Put("/:id/value", handler.UpdateMetricValue)
	metrics.Delete("/:id", handler.DeleteMetric)

	partner := api.Group("/partner", handler.AuthRequired)
	partner.Get("", handler.PartnerStatus)
	partner.Post("/code", handler.IssuePartnerCode)
	partner.Post("/link", handler.LinkPartner)

	sync := api.Group("/sync", handler.AuthRequired)
	sync.Get("/overview", handler.SyncOverview)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
