package api

import (
	"regexp"
	"time"

	"gorm.io/gorm"
)

var recoveryCodeRegex = regexp.MustCompile(`^SYNC-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`)
var passwordLengthRegex = regexp.MustCompile(`^.{8,}$`)
var passwordUpperRegex = regexp.MustCompile(`\p{Lu}`)
var passwordLowerRegex = regexp.MustCompile(`\p{Ll}`)
var passwordDigitRegex = regexp.MustCompile(`\d`)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db              *gorm.DB
	secretKey       []byte
	location        *time.Location
	cookieSecure    bool
	partnerCodeTTL  time.Duration
	recoveryLimiter *attemptLimiter

	dependencies
}

// NewHandler wires the full dependency graph over the shared database
// handle. partnerCodeTTL <= 0 means pairing codes never expire.
func NewHandler(database *gorm.DB, secret string, location *time.Location, cookieSecure bool, partnerCodeTTL time.Duration) *Handler {
	if location == nil {
		location = time.Local
	}

	handler := &Handler{
		db:              database,
		secretKey:       []byte(secret),
		location:        location,
		cookieSecure:    cookieSecure,
		partnerCodeTTL:  partnerCodeTTL,
		recoveryLimiter: newAttemptLimiter(),
	}
	handler.wireDependencies(database, partnerCodeTTL)
	return handler
}

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type forgotPasswordInput struct {
	RecoveryCode string `json:"recovery_code" form:"recovery_code"`
}

type resetPasswordInput struct {
	Token           string `json:"token" form:"token"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type onboardingInput struct {
	FullName           string `json:"full_name" form:"full_name"`
	Nickname           string `json:"nickname" form:"nickname"`
	TopLoveLanguage    string `json:"top_love_language" form:"top_love_language"`
	SecondLoveLanguage string `json:"second_love_language" form:"second_love_language"`
}

type metricCreateInput struct {
	Name      string  `json:"name" form:"name"`
	ScaleType string  `json:"scale_type" form:"scale_type"`
	Weight    float64 `json:"weight" form:"weight"`
	Icon      string  `json:"icon" form:"icon"`
}

type metricUpdateInput struct {
	Name   string  `json:"name" form:"name"`
	Weight float64 `json:"weight" form:"weight"`
	Icon   string  `json:"icon" form:"icon"`
}

type metricValueInput struct {
	Value float64 `json:"value" form:"value"`
}

type linkPartnerInput struct {
	Code string `json:"code" form:"code"`
}
