package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Metrics       *MetricRepository
	PartnerCodes  *PartnerCodeRepository
	Relationships *RelationshipRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Metrics:       NewMetricRepository(database),
		PartnerCodes:  NewPartnerCodeRepository(database),
		Relationships: NewRelationshipRepository(database),
	}
}

// isUniqueConstraintViolation reports whether err comes from a UNIQUE index.
// The string fallback covers sqlite errors the gorm translator misses.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errorIsDuplicatedKey(err) {
		return true
	}
	return containsUniqueConstraintMessage(err.Error())
}
