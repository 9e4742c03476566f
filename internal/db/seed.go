package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var builtinFACaseTypes = []string{
	"Medical",
	"Burial",
	"Educational",
	"Food",
	"Transportation",
}

var builtinPACategories = []string{
	"Employment Referral",
	"Hospital Referral",
	"Document Processing",
	"Legal Aid",
}

// Seed provisions the administrator account and the built-in FA case types
// and PA categories on first start. The app_state "initialized" row makes
// repeat calls a no-op.
func Seed(database *gorm.DB, adminEmail string, adminPassword string, now time.Time) error {
	var state models.AppState
	err := database.First(&state, "key = ?", models.AppStateInitialized).Error
	if err == nil && state.Value == "true" {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load app state: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Email:        adminEmail,
			PasswordHash: string(passwordHash),
			FullName:     "System Administrator",
			Role:         models.RoleSysadmin,
			IsActive:     true,
			CreatedAt:    now,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed administrator: %w", err)
		}

		for _, name := range builtinFACaseTypes {
			caseType := models.FACaseType{Name: name, IsBuiltin: true, CreatedAt: now}
			if err := tx.Create(&caseType).Error; err != nil {
				return fmt.Errorf("seed case type %s: %w", name, err)
			}
		}
		for _, name := range builtinPACategories {
			category := models.PACategory{Name: name, IsBuiltin: true, CreatedAt: now}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("seed PA category %s: %w", name, err)
			}
		}

		state := models.AppState{Key: models.AppStateInitialized, Value: "true", UpdatedAt: now}
		if err := tx.Create(&state).Error; err != nil {
			return fmt.Errorf("record seed flag: %w", err)
		}
		return nil
	})
}
