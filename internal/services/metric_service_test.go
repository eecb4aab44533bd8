package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/couplesync/internal/models"
	"gorm.io/gorm"
)

type fakeMetricRepository struct {
	byID   map[uint]models.Metric
	nextID uint
}

func newFakeMetricRepository() *fakeMetricRepository {
	return &fakeMetricRepository{byID: make(map[uint]models.Metric)}
}

func (repo *fakeMetricRepository) ListByUser(userID uint) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0)
	for id := uint(1); id <= repo.nextID; id++ {
		if metric, ok := repo.byID[id]; ok && metric.UserID == userID {
			metrics = append(metrics, metric)
		}
	}
	return metrics, nil
}

func (repo *fakeMetricRepository) FindByIDForUser(metricID uint, userID uint) (models.Metric, error) {
	metric, ok := repo.byID[metricID]
	if !ok || metric.UserID != userID {
		return models.Metric{}, gorm.ErrRecordNotFound
	}
	return metric, nil
}

func (repo *fakeMetricRepository) Create(metric *models.Metric) error {
	repo.nextID++
	metric.ID = repo.nextID
	repo.byID[metric.ID] = *metric
	return nil
}

func (repo *fakeMetricRepository) UpdateValue(metricID uint, value float64) error {
	metric, ok := repo.byID[metricID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	metric.Value = value
	repo.byID[metricID] = metric
	return nil
}

func (repo *fakeMetricRepository) UpdateDetails(metricID uint, name string, weight float64, icon string) error {
	metric, ok := repo.byID[metricID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	metric.Name = name
	metric.Weight = weight
	metric.Icon = icon
	repo.byID[metricID] = metric
	return nil
}

func (repo *fakeMetricRepository) Delete(metric *models.Metric) error {
	delete(repo.byID, metric.ID)
	return nil
}

func seedProtectedMetric(repo *fakeMetricRepository, userID uint) models.Metric {
	metric := models.Metric{
		UserID:      userID,
		Name:        "Quality Time",
		ScaleType:   models.ScaleNumber,
		Value:       5,
		Weight:      2,
		Icon:        "clock",
		IsProtected: true,
	}
	_ = repo.Create(&metric)
	return metric
}

func TestCreateForUserDefaults(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)

	metric, err := service.CreateForUser(1, "  Date nights ", "Percentage", 0, "")
	if err != nil {
		t.Fatalf("CreateForUser returned error: %v", err)
	}

	if metric.Name != "Date nights" {
		t.Fatalf("name = %q, want trimmed %q", metric.Name, "Date nights")
	}
	if metric.ScaleType != models.ScalePercentage {
		t.Fatalf("scale = %q, want %q", metric.ScaleType, models.ScalePercentage)
	}
	if metric.Value != 50 {
		t.Fatalf("initial value = %v, want 50", metric.Value)
	}
	if metric.Weight != models.DefaultMetricWeight {
		t.Fatalf("weight = %v, want default %v", metric.Weight, models.DefaultMetricWeight)
	}
	if metric.Icon != models.DefaultMetricIcon {
		t.Fatalf("icon = %q, want default %q", metric.Icon, models.DefaultMetricIcon)
	}
	if metric.IsProtected {
		t.Fatal("user-created metric must not be protected")
	}
}

func TestCreateForUserValidation(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)

	if _, err := service.CreateForUser(1, "   ", models.ScaleNumber, 1, ""); !errors.Is(err, ErrInvalidMetricName) {
		t.Fatalf("blank name error = %v, want ErrInvalidMetricName", err)
	}
	longName := strings.Repeat("x", maxMetricNameLength+1)
	if _, err := service.CreateForUser(1, longName, models.ScaleNumber, 1, ""); !errors.Is(err, ErrInvalidMetricName) {
		t.Fatalf("long name error = %v, want ErrInvalidMetricName", err)
	}
	if _, err := service.CreateForUser(1, "Mood", "stars", 1, ""); !errors.Is(err, ErrInvalidMetricScale) {
		t.Fatalf("bad scale error = %v, want ErrInvalidMetricScale", err)
	}
	if _, err := service.CreateForUser(1, "Mood", models.ScaleNumber, 1, "dragon"); !errors.Is(err, ErrInvalidMetricIcon) {
		t.Fatalf("bad icon error = %v, want ErrInvalidMetricIcon", err)
	}
}

func TestUpdateValueForUserRanges(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)

	metric, err := service.CreateForUser(1, "Mood", models.ScaleNumber, 1, "")
	if err != nil {
		t.Fatalf("CreateForUser returned error: %v", err)
	}

	updated, err := service.UpdateValueForUser(1, metric.ID, 8.5)
	if err != nil {
		t.Fatalf("UpdateValueForUser returned error: %v", err)
	}
	if updated.Value != 8.5 {
		t.Fatalf("value = %v, want 8.5", updated.Value)
	}

	if _, err := service.UpdateValueForUser(1, metric.ID, 10.5); !errors.Is(err, ErrInvalidMetricValue) {
		t.Fatalf("out-of-range error = %v, want ErrInvalidMetricValue", err)
	}
	if _, err := service.UpdateValueForUser(1, metric.ID, -1); !errors.Is(err, ErrInvalidMetricValue) {
		t.Fatalf("negative error = %v, want ErrInvalidMetricValue", err)
	}
}

func TestUpdateValueAllowedOnProtectedMetric(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)
	metric := seedProtectedMetric(repo, 1)

	updated, err := service.UpdateValueForUser(1, metric.ID, 9)
	if err != nil {
		t.Fatalf("UpdateValueForUser returned error: %v", err)
	}
	if updated.Value != 9 {
		t.Fatalf("value = %v, want 9", updated.Value)
	}
}

func TestUpdateDetailsRejectedOnProtectedMetric(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)
	metric := seedProtectedMetric(repo, 1)

	if _, err := service.UpdateDetailsForUser(1, metric.ID, "Renamed", 1, "heart"); !errors.Is(err, ErrProtectedMetric) {
		t.Fatalf("UpdateDetailsForUser error = %v, want ErrProtectedMetric", err)
	}
}

func TestDeleteRejectedOnProtectedMetric(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)
	metric := seedProtectedMetric(repo, 1)

	if err := service.DeleteForUser(1, metric.ID); !errors.Is(err, ErrProtectedMetric) {
		t.Fatalf("DeleteForUser error = %v, want ErrProtectedMetric", err)
	}
	if _, err := repo.FindByIDForUser(metric.ID, 1); err != nil {
		t.Fatalf("protected metric should survive delete attempt: %v", err)
	}
}

func TestMetricOwnershipEnforced(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)

	metric, err := service.CreateForUser(1, "Mood", models.ScaleNumber, 1, "")
	if err != nil {
		t.Fatalf("CreateForUser returned error: %v", err)
	}

	if _, err := service.UpdateValueForUser(2, metric.ID, 3); !errors.Is(err, ErrMetricNotFound) {
		t.Fatalf("foreign update error = %v, want ErrMetricNotFound", err)
	}
	if err := service.DeleteForUser(2, metric.ID); !errors.Is(err, ErrMetricNotFound) {
		t.Fatalf("foreign delete error = %v, want ErrMetricNotFound", err)
	}
}

func TestDeleteForUserRemovesMetric(t *testing.T) {
	t.Parallel()

	repo := newFakeMetricRepository()
	service := NewMetricService(repo)

	metric, err := service.CreateForUser(1, "Mood", models.ScaleNumber, 1, "")
	if err != nil {
		t.Fatalf("CreateForUser returned error: %v", err)
	}
	if err := service.DeleteForUser(1, metric.ID); err != nil {
		t.Fatalf("DeleteForUser returned error: %v", err)
	}
	if _, err := service.UpdateValueForUser(1, metric.ID, 3); !errors.Is(err, ErrMetricNotFound) {
		t.Fatalf("deleted metric error = %v, want ErrMetricNotFound", err)
	}
}

func TestNormalizeMetricWeight(t *testing.T) {
	t.Parallel()

	if got := NormalizeMetricWeight(-2); got != models.DefaultMetricWeight {
		t.Fatalf("NormalizeMetricWeight(-2) = %v, want default", got)
	}
	if got := NormalizeMetricWeight(0); got != models.DefaultMetricWeight {
		t.Fatalf("NormalizeMetricWeight(0) = %v, want default", got)
	}
	if got := NormalizeMetricWeight(2.5); got != 2.5 {
		t.Fatalf("NormalizeMetricWeight(2.5) = %v, want 2.5", got)
	}
}
