package models

import "time"

type User struct {
	ID                  uint      `gorm:"primaryKey"`
	Email               string    `gorm:"uniqueIndex;not null"`
	PasswordHash        string    `gorm:"not null"`
	RecoveryCodeHash    string    `gorm:"not null;default:''"`
	FullName            string    `gorm:"not null;default:''"`
	Nickname            string    `gorm:"not null;default:''"`
	TopLoveLanguage     string    `gorm:"not null;default:''"`
	SecondLoveLanguage  string    `gorm:"not null;default:''"`
	OnboardingCompleted bool      `gorm:"not null;default:false"`
	MustChangePassword  bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time `gorm:"not null"`
}

// DisplayName prefers the nickname chosen during onboarding.
func (user User) DisplayName() string {
	if user.Nickname != "" {
		return user.Nickname
	}
	return user.FullName
}
