package db

import (
	"github.com/terraincognita07/couplesync/internal/models"
	"gorm.io/gorm"
)

type PartnerCodeRepository struct {
	database *gorm.DB
}

func NewPartnerCodeRepository(database *gorm.DB) *PartnerCodeRepository {
	return &PartnerCodeRepository{database: database}
}

func (repo *PartnerCodeRepository) FindByUser(userID uint) (models.PartnerCode, error) {
	var code models.PartnerCode
	if err := repo.database.Where("user_id = ?", userID).First(&code).Error; err != nil {
		return models.PartnerCode{}, err
	}
	return code, nil
}

// FindByCode expects the code already normalized (uppercase, trimmed);
// lookup is exact-match.
func (repo *PartnerCodeRepository) FindByCode(code string) (models.PartnerCode, error) {
	var record models.PartnerCode
	if err := repo.database.Where("code = ?", code).First(&record).Error; err != nil {
		return models.PartnerCode{}, err
	}
	return record, nil
}

// Replace drops the owner's previous code and stores the new one. A
// gorm.ErrDuplicatedKey result means the generated code string is already
// taken by another user; callers regenerate and retry.
func (repo *PartnerCodeRepository) Replace(code *models.PartnerCode) error {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", code.UserID).Delete(&models.PartnerCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
	return wrapDuplicateKey(err)
}
