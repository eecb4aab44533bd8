package db

import (
	"github.com/terraincognita07/couplesync/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return wrapDuplicateKey(repo.database.Create(user).Error)
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) ListWithRecoveryCodeHash() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Where("recovery_code_hash <> ''").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) UpdateProfile(userID uint, fullName string, nickname string, topLoveLanguage string, secondLoveLanguage string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"full_name":            fullName,
		"nickname":             nickname,
		"top_love_language":    topLoveLanguage,
		"second_love_language": secondLoveLanguage,
	}).Error
}

// CompleteOnboarding stores the profile, seeds the default metric set and
// flips the completion flag in one transaction.
func (repo *UserRepository) CompleteOnboarding(userID uint, fullName string, nickname string, topLoveLanguage string, secondLoveLanguage string, defaults []models.Metric) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"full_name":            fullName,
			"nickname":             nickname,
			"top_love_language":    topLoveLanguage,
			"second_love_language": secondLoveLanguage,
			"onboarding_completed": true,
		}).Error; err != nil {
			return err
		}

		for index := range defaults {
			defaults[index].UserID = userID
			if err := tx.Create(&defaults[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
