package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/omspdev/omsp/internal/db"
	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand rotates a user's password to a fresh temporary one
// and prints it. It runs against the database file directly, so it works even
// when the sysadmin account itself is locked out.
func RunResetPasswordCommand(dbPath string, email string) error {
	// Emails match the stored value exactly, case included, same as login.
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(trimmedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	repositories := db.NewRepositories(database)

	user, err := repositories.Users.FindByEmail(trimmedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", trimmedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	if err := repositories.Users.UpdatePasswordHash(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	// The reset happens outside any session, so the audit entry names the
	// operator console as the actor.
	entry := models.ActivityLog{
		UserID:     user.ID,
		UserName:   "system",
		UserRole:   models.RoleSysadmin,
		Action:     fmt.Sprintf("Reset password for %s", user.Email),
		ActionType: models.ActionTypePasswordReset,
		RecordType: models.RecordTypeUser,
		RecordID:   user.ID,
		CreatedAt:  time.Now(),
	}
	if err := repositories.Activity.Create(&entry); err != nil {
		return fmt.Errorf("record password reset: %w", err)
	}

	fmt.Println("✅ Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("Share it over a trusted channel and have the user sign in promptly.")

	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
