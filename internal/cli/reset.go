package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/terraincognita07/couplesync/internal/db"
	"github.com/terraincognita07/couplesync/internal/models"
	"github.com/terraincognita07/couplesync/internal/security"
	"github.com/terraincognita07/couplesync/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand is the operator escape hatch for a locked-out
// account: it sets a temporary password (or one typed at the prompt) and
// rotates the recovery code, printing both exactly once.
func RunResetPasswordCommand(dbPath string, email string, promptPassword bool) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	var newPassword string
	if promptPassword {
		newPassword, err = promptForNewPassword(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		user.MustChangePassword = false
	} else {
		newPassword, err = generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
		user.MustChangePassword = true
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)

	recoveryCode, recoveryHash, err := services.GenerateRecoveryCodeHash()
	if err != nil {
		return fmt.Errorf("generate recovery code: %w", err)
	}
	user.RecoveryCodeHash = recoveryHash

	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	fmt.Println("Password reset successful")
	if !promptPassword {
		fmt.Printf("Temporary password: %s\n", newPassword)
		fmt.Println("User must change password on next login.")
	}
	fmt.Printf("New recovery code: %s\n", recoveryCode)
	fmt.Println("The previous recovery code no longer works.")

	return nil
}

func promptForNewPassword(stdin *os.File, stdout *os.File) (string, error) {
	fmt.Fprint(stdout, "New password: ")
	first, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(stdout, "Confirm password: ")
	second, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}
	return string(first), nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
