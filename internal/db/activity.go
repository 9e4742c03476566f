package db

import (
	"github.com/omspdev/omsp/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository appends and reads audit entries. There are no update or
// delete methods on purpose.
type ActivityRepository struct {
	database *gorm.DB
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{database: database}
}

func (repository *ActivityRepository) Create(entry *models.ActivityLog) error {
	return repository.database.Create(entry).Error
}

func (repository *ActivityRepository) ListRecent(limit int, offset int) ([]models.ActivityLog, error) {
	entries := make([]models.ActivityLog, 0)
	err := repository.database.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (repository *ActivityRepository) ListByUser(userID string, limit int, offset int) ([]models.ActivityLog, error) {
	entries := make([]models.ActivityLog, 0)
	err := repository.database.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}
