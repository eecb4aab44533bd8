package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/models"
	"github.com/terraincognita07/couplesync/internal/services"
)

// SyncOverview is the dashboard payload: both weighted averages plus the
// delta and sync percentage. Averages are null when a side has no data, and
// the comparison is neutral in that case.
func (handler *Handler) SyncOverview(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userMetrics, err := handler.metricService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load sync overview")
	}

	response := fiber.Map{
		"linked":        false,
		"user_score":    scoreOrNil(userMetrics),
		"partner_score": nil,
	}

	partnerID, hasPartner, err := handler.relationshipService.Partner(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load sync overview")
	}
	if !hasPartner {
		return c.JSON(response)
	}

	partnerMetrics, err := handler.metricService.ListForUser(partnerID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load sync overview")
	}
	partner, err := handler.authService.FindByID(partnerID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load sync overview")
	}

	result := services.SyncDelta(userMetrics, partnerMetrics)
	response["linked"] = true
	response["partner_score"] = scoreOrNil(partnerMetrics)
	response["partner_name"] = partner.DisplayName()
	response["delta"] = result.Delta
	response["sync_percent"] = result.SyncPercent
	return c.JSON(response)
}

// scoreOrNil turns the empty-set aggregation error into a null score for the
// JSON payload.
func scoreOrNil(metrics []models.Metric) interface{} {
	score, err := services.WeightedAverage(metrics)
	if errors.Is(err, services.ErrNoMetricData) {
		return nil
	}
	return score
}
