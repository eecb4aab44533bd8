package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/couplesync/internal/models"
	"github.com/terraincognita07/couplesync/internal/services"
)

func metricView(metric models.Metric) fiber.Map {
	return fiber.Map{
		"id":           metric.ID,
		"name":         metric.Name,
		"scale_type":   metric.ScaleType,
		"value":        metric.Value,
		"weight":       metric.Weight,
		"icon":         metric.Icon,
		"emoji":        models.MetricIconEmoji(metric.Icon),
		"is_protected": metric.IsProtected,
		"updated_at":   metric.UpdatedAt,
	}
}

func metricViews(metrics []models.Metric) []fiber.Map {
	views := make([]fiber.Map, 0, len(metrics))
	for _, metric := range metrics {
		views = append(views, metricView(metric))
	}
	return views
}

func parseMetricID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, errors.New("invalid metric id")
	}
	return uint(value), nil
}

func (handler *Handler) ListMetrics(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	metrics, err := handler.metricService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load metrics")
	}

	return c.JSON(fiber.Map{"metrics": metricViews(metrics)})
}

func (handler *Handler) CreateMetric(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := metricCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	metric, err := handler.metricService.CreateForUser(user.ID, input.Name, input.ScaleType, input.Weight, input.Icon)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidMetricName),
			errors.Is(err, services.ErrInvalidMetricScale),
			errors.Is(err, services.ErrInvalidMetricIcon):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to create metric")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(metricView(metric))
}

func (handler *Handler) UpdateMetric(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	metricID, err := parseMetricID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid metric id")
	}

	input := metricUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	metric, err := handler.metricService.UpdateDetailsForUser(user.ID, metricID, input.Name, input.Weight, input.Icon)
	if err != nil {
		return handler.metricErrorResponse(c, err, "failed to update metric")
	}

	return c.JSON(metricView(metric))
}

func (handler *Handler) UpdateMetricValue(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	metricID, err := parseMetricID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid metric id")
	}

	input := metricValueInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	metric, err := handler.metricService.UpdateValueForUser(user.ID, metricID, input.Value)
	if err != nil {
		return handler.metricErrorResponse(c, err, "failed to update metric value")
	}

	return c.JSON(metricView(metric))
}

func (handler *Handler) DeleteMetric(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	metricID, err := parseMetricID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid metric id")
	}

	if err := handler.metricService.DeleteForUser(user.ID, metricID); err != nil {
		return handler.metricErrorResponse(c, err, "failed to delete metric")
	}

	return c.JSON(fiber.Map{"status": "metric deleted"})
}

func (handler *Handler) MetricIcons(c *fiber.Ctx) error {
	catalog := models.MetricIconCatalog()
	icons := make([]fiber.Map, 0, len(catalog))
	for _, icon := range catalog {
		icons = append(icons, fiber.Map{"key": icon.Key, "emoji": icon.Emoji})
	}
	return c.JSON(fiber.Map{"icons": icons})
}

func (handler *Handler) metricErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrMetricNotFound):
		return apiError(c, fiber.StatusNotFound, "metric not found")
	case errors.Is(err, services.ErrProtectedMetric):
		return apiError(c, fiber.StatusForbidden, "protected metric cannot be changed")
	case errors.Is(err, services.ErrInvalidMetricName),
		errors.Is(err, services.ErrInvalidMetricScale),
		errors.Is(err, services.ErrInvalidMetricValue),
		errors.Is(err, services.ErrInvalidMetricIcon):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}
