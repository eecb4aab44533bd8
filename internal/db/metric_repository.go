package db

import (
	"github.com/terraincognita07/couplesync/internal/models"
	"gorm.io/gorm"
)

type MetricRepository struct {
	database *gorm.DB
}

func NewMetricRepository(database *gorm.DB) *MetricRepository {
	return &MetricRepository{database: database}
}

func (repo *MetricRepository) ListByUser(userID uint) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (repo *MetricRepository) FindByIDForUser(metricID uint, userID uint) (models.Metric, error) {
	var metric models.Metric
	if err := repo.database.
		Where("id = ? AND user_id = ?", metricID, userID).
		First(&metric).Error; err != nil {
		return models.Metric{}, err
	}
	return metric, nil
}

func (repo *MetricRepository) Create(metric *models.Metric) error {
	return repo.database.Create(metric).Error
}

func (repo *MetricRepository) UpdateValue(metricID uint, value float64) error {
	return repo.database.Model(&models.Metric{}).
		Where("id = ?", metricID).
		Update("value", value).Error
}

func (repo *MetricRepository) UpdateDetails(metricID uint, name string, weight float64, icon string) error {
	return repo.database.Model(&models.Metric{}).
		Where("id = ?", metricID).
		Updates(map[string]any{
			"name":   name,
			"weight": weight,
			"icon":   icon,
		}).Error
}

func (repo *MetricRepository) Delete(metric *models.Metric) error {
	return repo.database.Delete(metric).Error
}
