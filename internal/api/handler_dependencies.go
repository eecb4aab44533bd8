package api

import (
	"time"

	"github.com/terraincognita07/couplesync/internal/db"
	"github.com/terraincognita07/couplesync/internal/services"
	"gorm.io/gorm"
)

type dependencies struct {
	repositories        *db.Repositories
	authService         *services.AuthService
	codeService         *services.PartnerCodeService
	relationshipService *services.RelationshipService
	metricService       *services.MetricService
	onboardingService   *services.OnboardingService
}

func (handler *Handler) wireDependencies(database *gorm.DB, partnerCodeTTL time.Duration) {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.codeService = services.NewPartnerCodeService(handler.repositories.PartnerCodes, partnerCodeTTL)
	handler.relationshipService = services.NewRelationshipService(handler.repositories.Relationships, handler.codeService)
	handler.metricService = services.NewMetricService(handler.repositories.Metrics)
	handler.onboardingService = services.NewOnboardingService(handler.repositories.Users)
}
