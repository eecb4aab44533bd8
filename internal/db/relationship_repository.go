package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/couplesync/internal/models"
	"gorm.io/gorm"
)

type RelationshipRepository struct {
	database *gorm.DB
}

func NewRelationshipRepository(database *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{database: database}
}

func (repo *RelationshipRepository) IsLinked(userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.RelationshipMember{}).
		Where("user_id = ?", userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

type partnerRow struct {
	UserID uint `gorm:"column:user_id"`
}

// FindPartnerID returns the other side of the caller's relationship, or
// found=false when the user is unlinked.
func (repo *RelationshipRepository) FindPartnerID(userID uint) (uint, bool, error) {
	rows := make([]partnerRow, 0, 1)
	if err := repo.database.Raw(`
SELECT other.user_id
FROM relationship_members AS own
JOIN relationship_members AS other
  ON other.relationship_id = own.relationship_id
 AND other.user_id <> own.user_id
WHERE own.user_id = ?`, userID).Scan(&rows).Error; err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].UserID, true, nil
}

func (repo *RelationshipRepository) FindByUser(userID uint) (models.Relationship, bool, error) {
	var member models.RelationshipMember
	err := repo.database.Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Relationship{}, false, nil
		}
		return models.Relationship{}, false, err
	}

	var relationship models.Relationship
	if err := repo.database.First(&relationship, member.RelationshipID).Error; err != nil {
		return models.Relationship{}, false, err
	}
	return relationship, true, nil
}

// CreateLink persists the unordered pair in one transaction: a relationship
// row plus one member row per participant, consuming both sides' live
// pairing codes. The primary key on relationship_members.user_id turns a
// concurrent link race into one winner; the loser gets gorm.ErrDuplicatedKey.
func (repo *RelationshipRepository) CreateLink(requesterID uint, otherID uint, establishedAt time.Time) (models.Relationship, error) {
	relationship := models.Relationship{EstablishedAt: establishedAt}

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&relationship).Error; err != nil {
			return err
		}

		for _, participantID := range []uint{requesterID, otherID} {
			member := models.RelationshipMember{
				UserID:         participantID,
				RelationshipID: relationship.ID,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id IN ?", []uint{requesterID, otherID}).
			Delete(&models.PartnerCode{}).Error
	})
	if err != nil {
		return models.Relationship{}, wrapDuplicateKey(err)
	}
	return relationship, nil
}
