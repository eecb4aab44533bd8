package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/couplesync/internal/models"
	"github.com/terraincognita07/couplesync/internal/security"
	"gorm.io/gorm"
)

var (
	ErrInvalidCode             = errors.New("invalid partner code")
	ErrCodeGenerationExhausted = errors.New("partner code generation exhausted")
)

const (
	// PartnerCodeLength is fixed: a 2-character fragment derived from the
	// owner identity plus 6 characters of random entropy.
	PartnerCodeLength        = 8
	partnerCodeEntropyLength = 6

	maxCodeGenerationAttempts = 5
)

type PartnerCodeRepository interface {
	FindByUser(userID uint) (models.PartnerCode, error)
	FindByCode(code string) (models.PartnerCode, error)
	Replace(code *models.PartnerCode) error
}

type PartnerCodeService struct {
	codes PartnerCodeRepository
	ttl   time.Duration
	now   func() time.Time
}

// NewPartnerCodeService builds the code issuer. ttl <= 0 disables expiry;
// otherwise codes older than ttl stop resolving.
func NewPartnerCodeService(codes PartnerCodeRepository, ttl time.Duration) *PartnerCodeService {
	return &PartnerCodeService{
		codes: codes,
		ttl:   ttl,
		now:   time.Now,
	}
}

// NormalizePartnerCode maps user input into the canonical stored form.
// Codes are case-insensitive.
func NormalizePartnerCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IssueCode generates a fresh code for owner, replacing any previous one.
// Collisions with another user's live code are retried with new entropy a
// bounded number of times.
func (service *PartnerCodeService) IssueCode(ownerID uint) (models.PartnerCode, error) {
	for attempt := 0; attempt < maxCodeGenerationAttempts; attempt++ {
		code, err := buildPartnerCode(ownerID)
		if err != nil {
			return models.PartnerCode{}, err
		}

		record := models.PartnerCode{
			UserID:   ownerID,
			Code:     code,
			IssuedAt: service.now(),
		}
		err = service.codes.Replace(&record)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.PartnerCode{}, err
		}
	}
	return models.PartnerCode{}, ErrCodeGenerationExhausted
}

// ResolveCode normalizes raw exactly like issuance does and looks the code
// up verbatim. Misses and expired codes both surface as ErrInvalidCode.
func (service *PartnerCodeService) ResolveCode(raw string) (models.PartnerCode, error) {
	normalized := NormalizePartnerCode(raw)
	if len(normalized) != PartnerCodeLength {
		return models.PartnerCode{}, ErrInvalidCode
	}

	record, err := service.codes.FindByCode(normalized)
	if err != nil {
		return models.PartnerCode{}, ErrInvalidCode
	}
	if service.expired(record) {
		return models.PartnerCode{}, ErrInvalidCode
	}
	return record, nil
}

func (service *PartnerCodeService) LiveCodeForUser(userID uint) (models.PartnerCode, bool, error) {
	record, err := service.codes.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PartnerCode{}, false, nil
		}
		return models.PartnerCode{}, false, err
	}
	if service.expired(record) {
		return models.PartnerCode{}, false, nil
	}
	return record, true, nil
}

func (service *PartnerCodeService) expired(record models.PartnerCode) bool {
	return service.ttl > 0 && service.now().Sub(record.IssuedAt) > service.ttl
}

func buildPartnerCode(ownerID uint) (string, error) {
	entropy, err := security.RandomString(partnerCodeEntropyLength, security.CodeAlphabet)
	if err != nil {
		return "", err
	}
	return partnerCodeFragment(ownerID) + entropy, nil
}

// partnerCodeFragment encodes the owner id into two alphabet characters, the
// human-shareable stand-in for the original identity prefix.
func partnerCodeFragment(ownerID uint) string {
	size := uint(len(security.CodeAlphabet))
	first := security.CodeAlphabet[ownerID%size]
	second := security.CodeAlphabet[(ownerID/size)%size]
	return string([]byte{first, second})
}
