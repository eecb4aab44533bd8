package db

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/couplesync/internal/models"
	"gorm.io/gorm"
)

func TestReplaceSwapsOwnerCode(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	codes := NewPartnerCodeRepository(database)
	user := createTestUser(t, database, "codes@example.com")

	first := models.PartnerCode{UserID: user.ID, Code: "AA111111", IssuedAt: time.Now()}
	if err := codes.Replace(&first); err != nil {
		t.Fatalf("first Replace returned error: %v", err)
	}

	second := models.PartnerCode{UserID: user.ID, Code: "AA222222", IssuedAt: time.Now()}
	if err := codes.Replace(&second); err != nil {
		t.Fatalf("second Replace returned error: %v", err)
	}

	var total int64
	if err := database.Model(&models.PartnerCode{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		t.Fatalf("count codes: %v", err)
	}
	if total != 1 {
		t.Fatalf("codes per user = %d, want 1", total)
	}

	if _, err := codes.FindByCode("AA111111"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("old code lookup error = %v, want gorm.ErrRecordNotFound", err)
	}
	current, err := codes.FindByUser(user.ID)
	if err != nil {
		t.Fatalf("FindByUser returned error: %v", err)
	}
	if current.Code != "AA222222" {
		t.Fatalf("live code = %q, want AA222222", current.Code)
	}
}

func TestReplaceCollidingCodeTaggedAsDuplicate(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	codes := NewPartnerCodeRepository(database)
	first := createTestUser(t, database, "one@example.com")
	second := createTestUser(t, database, "two@example.com")

	original := models.PartnerCode{UserID: first.ID, Code: "ZZ999999", IssuedAt: time.Now()}
	if err := codes.Replace(&original); err != nil {
		t.Fatalf("seed Replace returned error: %v", err)
	}

	colliding := models.PartnerCode{UserID: second.ID, Code: "ZZ999999", IssuedAt: time.Now()}
	if err := codes.Replace(&colliding); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("colliding Replace error = %v, want gorm.ErrDuplicatedKey", err)
	}
}
