package services

import (
	"errors"
	"math"

	"github.com/terraincognita07/couplesync/internal/models"
)

// ErrNoMetricData marks an aggregation with nothing to aggregate: no metrics
// or zero total weight.
var ErrNoMetricData = errors.New("no metric data to aggregate")

// SyncResult is the alignment between two users' scores. Delta keeps its
// sign (user above/below partner); SyncPercent is direction-agnostic.
type SyncResult struct {
	Delta       int
	SyncPercent int
}

// NormalizedMetricValue maps any metric onto the 0-100 scale. Percentage
// metrics pass through; number metrics are stretched from 0-10.
func NormalizedMetricValue(metric models.Metric) float64 {
	if metric.ScaleType == models.ScalePercentage {
		return metric.Value
	}
	return metric.Value / models.NumberScaleMax * models.PercentageScaleMax
}

// WeightedAverage collapses a metric set into one integer percentage,
// weight-combined after scale normalization and rounded to nearest.
func WeightedAverage(metrics []models.Metric) (int, error) {
	if len(metrics) == 0 {
		return 0, ErrNoMetricData
	}

	var total, weightSum float64
	for _, metric := range metrics {
		total += NormalizedMetricValue(metric) * metric.Weight
		weightSum += metric.Weight
	}
	if weightSum <= 0 {
		return 0, ErrNoMetricData
	}

	return int(math.Round(total / weightSum)), nil
}

// SyncDelta compares two users' weighted averages. When either side has no
// data the result is neutral (delta 0, full sync) rather than an error; the
// dashboard deliberately shows alignment, not absence.
func SyncDelta(userMetrics []models.Metric, partnerMetrics []models.Metric) SyncResult {
	userAverage, userErr := WeightedAverage(userMetrics)
	partnerAverage, partnerErr := WeightedAverage(partnerMetrics)
	if userErr != nil || partnerErr != nil {
		return SyncResult{Delta: 0, SyncPercent: int(models.PercentageScaleMax)}
	}

	delta := userAverage - partnerAverage
	divergence := delta
	if divergence < 0 {
		divergence = -divergence
	}
	if divergence > int(models.PercentageScaleMax) {
		divergence = int(models.PercentageScaleMax)
	}

	return SyncResult{
		Delta:       delta,
		SyncPercent: int(models.PercentageScaleMax) - divergence,
	}
}
