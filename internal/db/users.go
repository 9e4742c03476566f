package db

import (
	"time"

	"github.com/omspdev/omsp/internal/models"
	"gorm.io/gorm"
)

// UserRepository persists accounts. It backs both the login path and the
// administrator's provisioning surface.
type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repository *UserRepository) Create(user *models.User) error {
	return repository.database.Create(user).Error
}

// FindByEmail matches the stored email exactly; the column's default BINARY
// collation keeps the comparison case-sensitive.
func (repository *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := repository.database.First(&user, "email = ?", email).Error
	return user, err
}

func (repository *UserRepository) FindByID(userID string) (models.User, error) {
	var user models.User
	err := repository.database.First(&user, "id = ?", userID).Error
	return user, err
}

func (repository *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := repository.database.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (repository *UserRepository) StampLastLogin(userID string, at time.Time) error {
	return repository.database.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (repository *UserRepository) SetActive(userID string, active bool) error {
	result := repository.database.Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePasswordHash rotates a stored hash; used by the reset CLI.
func (repository *UserRepository) UpdatePasswordHash(userID string, passwordHash string) error {
	result := repository.database.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repository *UserRepository) ListAll() ([]models.User, error) {
	users := make([]models.User, 0)
	err := repository.database.Order("created_at").Find(&users).Error
	return users, err
}
