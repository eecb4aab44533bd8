package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func errorIsDuplicatedKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func containsUniqueConstraintMessage(message string) bool {
	return strings.Contains(message, "UNIQUE constraint failed")
}

// wrapDuplicateKey tags unique-index violations with gorm.ErrDuplicatedKey so
// callers can match them with errors.Is regardless of driver wording.
func wrapDuplicateKey(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueConstraintViolation(err) && !errorIsDuplicatedKey(err) {
		return fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
	}
	return err
}
