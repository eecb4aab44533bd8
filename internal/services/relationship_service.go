package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/couplesync/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSelfLink      = errors.New("cannot link your own code")
	ErrAlreadyLinked = errors.New("already linked to a partner")
)

type RelationshipRepository interface {
	IsLinked(userID uint) (bool, error)
	FindPartnerID(userID uint) (uint, bool, error)
	FindByUser(userID uint) (models.Relationship, bool, error)
	CreateLink(requesterID uint, otherID uint, establishedAt time.Time) (models.Relationship, error)
}

type RelationshipService struct {
	relationships RelationshipRepository
	codes         *PartnerCodeService
	now           func() time.Time
}

func NewRelationshipService(relationships RelationshipRepository, codes *PartnerCodeService) *RelationshipService {
	return &RelationshipService{
		relationships: relationships,
		codes:         codes,
		now:           time.Now,
	}
}

// Link pairs the requester with the owner of code. The pre-checks give
// friendly errors; the member uniqueness constraint underneath CreateLink is
// what actually decides a concurrent race, so the loser of two simultaneous
// submissions also comes back as ErrAlreadyLinked.
func (service *RelationshipService) Link(requesterID uint, rawCode string) (models.Relationship, error) {
	code, err := service.codes.ResolveCode(rawCode)
	if err != nil {
		return models.Relationship{}, err
	}
	if code.UserID == requesterID {
		return models.Relationship{}, ErrSelfLink
	}

	for _, participantID := range []uint{requesterID, code.UserID} {
		linked, err := service.relationships.IsLinked(participantID)
		if err != nil {
			return models.Relationship{}, err
		}
		if linked {
			return models.Relationship{}, ErrAlreadyLinked
		}
	}

	relationship, err := service.relationships.CreateLink(requesterID, code.UserID, service.now())
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Relationship{}, ErrAlreadyLinked
		}
		return models.Relationship{}, err
	}
	return relationship, nil
}

// Partner is the canonical "who is my partner" lookup; nothing else in the
// codebase derives or caches this independently.
func (service *RelationshipService) Partner(userID uint) (uint, bool, error) {
	return service.relationships.FindPartnerID(userID)
}

func (service *RelationshipService) RelationshipFor(userID uint) (models.Relationship, bool, error) {
	return service.relationships.FindByUser(userID)
}
