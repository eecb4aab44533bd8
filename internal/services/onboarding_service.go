package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/couplesync/internal/models"
)

var (
	ErrFullNameRequired           = errors.New("full name is required")
	ErrUnknownLoveLanguage        = errors.New("unknown love language")
	ErrDuplicateLoveLanguage      = errors.New("love languages must differ")
	ErrOnboardingAlreadyCompleted = errors.New("onboarding already completed")
)

const (
	maxProfileNameLength = 120

	// The seeded love-language metrics carry double weight, matching how
	// much they dominate the sync score for a fresh account.
	defaultLoveLanguageWeight = 2
	defaultLoveLanguageValue  = models.NumberScaleMax / 2
)

type OnboardingUserRepository interface {
	FindByID(userID uint) (models.User, error)
	CompleteOnboarding(userID uint, fullName string, nickname string, topLoveLanguage string, secondLoveLanguage string, defaults []models.Metric) error
	UpdateProfile(userID uint, fullName string, nickname string, topLoveLanguage string, secondLoveLanguage string) error
}

type OnboardingService struct {
	users OnboardingUserRepository
}

type OnboardingProfile struct {
	FullName           string
	Nickname           string
	TopLoveLanguage    string
	SecondLoveLanguage string
}

func NewOnboardingService(users OnboardingUserRepository) *OnboardingService {
	return &OnboardingService{users: users}
}

// Complete validates the profile, seeds the protected default metric set and
// marks onboarding finished. Calling it twice is rejected, not re-applied.
func (service *OnboardingService) Complete(userID uint, input OnboardingProfile) error {
	profile, err := sanitizeOnboardingProfile(input)
	if err != nil {
		return err
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		return err
	}
	if user.OnboardingCompleted {
		return ErrOnboardingAlreadyCompleted
	}

	defaults := DefaultMetricsForLanguages(profile.TopLoveLanguage, profile.SecondLoveLanguage)
	return service.users.CompleteOnboarding(
		userID,
		profile.FullName,
		profile.Nickname,
		profile.TopLoveLanguage,
		profile.SecondLoveLanguage,
		defaults,
	)
}

// UpdateProfile edits the same fields after onboarding. Seeded metrics are
// independent records and keep their names.
func (service *OnboardingService) UpdateProfile(userID uint, input OnboardingProfile) error {
	profile, err := sanitizeOnboardingProfile(input)
	if err != nil {
		return err
	}
	return service.users.UpdateProfile(
		userID,
		profile.FullName,
		profile.Nickname,
		profile.TopLoveLanguage,
		profile.SecondLoveLanguage,
	)
}

func sanitizeOnboardingProfile(input OnboardingProfile) (OnboardingProfile, error) {
	profile := OnboardingProfile{
		FullName:           strings.TrimSpace(input.FullName),
		Nickname:           strings.TrimSpace(input.Nickname),
		TopLoveLanguage:    strings.TrimSpace(input.TopLoveLanguage),
		SecondLoveLanguage: strings.TrimSpace(input.SecondLoveLanguage),
	}

	if profile.FullName == "" || len(profile.FullName) > maxProfileNameLength {
		return OnboardingProfile{}, ErrFullNameRequired
	}
	if len(profile.Nickname) > maxProfileNameLength {
		return OnboardingProfile{}, ErrFullNameRequired
	}
	if !models.IsValidLoveLanguage(profile.TopLoveLanguage) || !models.IsValidLoveLanguage(profile.SecondLoveLanguage) {
		return OnboardingProfile{}, ErrUnknownLoveLanguage
	}
	if profile.TopLoveLanguage == profile.SecondLoveLanguage {
		return OnboardingProfile{}, ErrDuplicateLoveLanguage
	}

	return profile, nil
}

// DefaultMetricsForLanguages builds the protected metric set a new account
// starts with: one number-scale metric per chosen love language.
func DefaultMetricsForLanguages(languages ...string) []models.Metric {
	defaults := make([]models.Metric, 0, len(languages))
	for _, language := range languages {
		defaults = append(defaults, models.Metric{
			Name:        language,
			ScaleType:   models.ScaleNumber,
			Value:       defaultLoveLanguageValue,
			Weight:      defaultLoveLanguageWeight,
			Icon:        models.LoveLanguageIcon(language),
			IsProtected: true,
		})
	}
	return defaults
}
