package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/couplesync/internal/models"
)

var (
	ErrInvalidMetricName  = errors.New("invalid metric name")
	ErrInvalidMetricScale = errors.New("invalid metric scale")
	ErrInvalidMetricValue = errors.New("metric value out of range")
	ErrInvalidMetricIcon  = errors.New("unknown metric icon")
	ErrMetricNotFound     = errors.New("metric not found")
	ErrProtectedMetric    = errors.New("protected metric cannot be changed")
)

const maxMetricNameLength = 80

type MetricRepository interface {
	ListByUser(userID uint) ([]models.Metric, error)
	FindByIDForUser(metricID uint, userID uint) (models.Metric, error)
	Create(metric *models.Metric) error
	UpdateValue(metricID uint, value float64) error
	UpdateDetails(metricID uint, name string, weight float64, icon string) error
	Delete(metric *models.Metric) error
}

type MetricService struct {
	metrics MetricRepository
}

func NewMetricService(metrics MetricRepository) *MetricService {
	return &MetricService{metrics: metrics}
}

func (service *MetricService) ListForUser(userID uint) ([]models.Metric, error) {
	return service.metrics.ListByUser(userID)
}

func (service *MetricService) CreateForUser(userID uint, name string, scaleType string, weight float64, icon string) (models.Metric, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxMetricNameLength {
		return models.Metric{}, ErrInvalidMetricName
	}

	scaleType = strings.ToLower(strings.TrimSpace(scaleType))
	if scaleType != models.ScaleNumber && scaleType != models.ScalePercentage {
		return models.Metric{}, ErrInvalidMetricScale
	}

	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = models.DefaultMetricIcon
	}
	if !models.IsValidMetricIcon(icon) {
		return models.Metric{}, ErrInvalidMetricIcon
	}

	metric := models.Metric{
		UserID:      userID,
		Name:        name,
		ScaleType:   scaleType,
		Value:       initialMetricValue(scaleType),
		Weight:      NormalizeMetricWeight(weight),
		Icon:        icon,
		IsProtected: false,
	}
	if err := service.metrics.Create(&metric); err != nil {
		return models.Metric{}, fmt.Errorf("create metric: %w", err)
	}
	return metric, nil
}

// UpdateValueForUser changes only the value; that is allowed for protected
// metrics too.
func (service *MetricService) UpdateValueForUser(userID uint, metricID uint, value float64) (models.Metric, error) {
	metric, err := service.metrics.FindByIDForUser(metricID, userID)
	if err != nil {
		return models.Metric{}, fmt.Errorf("%w: %v", ErrMetricNotFound, err)
	}
	if err := ValidateMetricValue(metric.ScaleType, value); err != nil {
		return models.Metric{}, err
	}
	if err := service.metrics.UpdateValue(metric.ID, value); err != nil {
		return models.Metric{}, fmt.Errorf("update metric value: %w", err)
	}
	metric.Value = value
	return metric, nil
}

func (service *MetricService) UpdateDetailsForUser(userID uint, metricID uint, name string, weight float64, icon string) (models.Metric, error) {
	metric, err := service.metrics.FindByIDForUser(metricID, userID)
	if err != nil {
		return models.Metric{}, fmt.Errorf("%w: %v", ErrMetricNotFound, err)
	}
	if metric.IsProtected {
		return models.Metric{}, ErrProtectedMetric
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxMetricNameLength {
		return models.Metric{}, ErrInvalidMetricName
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = metric.Icon
	}
	if !models.IsValidMetricIcon(icon) {
		return models.Metric{}, ErrInvalidMetricIcon
	}
	weight = NormalizeMetricWeight(weight)

	if err := service.metrics.UpdateDetails(metric.ID, name, weight, icon); err != nil {
		return models.Metric{}, fmt.Errorf("update metric: %w", err)
	}
	metric.Name = name
	metric.Weight = weight
	metric.Icon = icon
	return metric, nil
}

func (service *MetricService) DeleteForUser(userID uint, metricID uint) error {
	metric, err := service.metrics.FindByIDForUser(metricID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMetricNotFound, err)
	}
	if metric.IsProtected {
		return ErrProtectedMetric
	}
	if err := service.metrics.Delete(&metric); err != nil {
		return fmt.Errorf("delete metric: %w", err)
	}
	return nil
}

// ValidateMetricValue enforces the scale ranges: 0-10 for number metrics,
// 0-100 for percentage metrics.
func ValidateMetricValue(scaleType string, value float64) error {
	switch scaleType {
	case models.ScaleNumber:
		if value < 0 || value > models.NumberScaleMax {
			return ErrInvalidMetricValue
		}
	case models.ScalePercentage:
		if value < 0 || value > models.PercentageScaleMax {
			return ErrInvalidMetricValue
		}
	default:
		return ErrInvalidMetricScale
	}
	return nil
}

// NormalizeMetricWeight substitutes the default weight for absent or
// non-positive input; stored weights are always positive.
func NormalizeMetricWeight(weight float64) float64 {
	if weight <= 0 {
		return models.DefaultMetricWeight
	}
	return weight
}

func initialMetricValue(scaleType string) float64 {
	if scaleType == models.ScalePercentage {
		return models.PercentageScaleMax / 2
	}
	return models.NumberScaleMax / 2
}
