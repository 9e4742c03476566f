package db

import (
	"github.com/omspdev/omsp/internal/models"
	"gorm.io/gorm"
)

// SessionRepository persists login sessions. A user holds at most one row;
// the service deletes by user before creating.
type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repository *SessionRepository) Create(session *models.Session) error {
	return repository.database.Create(session).Error
}

func (repository *SessionRepository) FindByID(sessionID string) (models.Session, error) {
	var session models.Session
	err := repository.database.First(&session, "id = ?", sessionID).Error
	return session, err
}

func (repository *SessionRepository) DeleteByID(sessionID string) error {
	return repository.database.Delete(&models.Session{}, "id = ?", sessionID).Error
}

func (repository *SessionRepository) DeleteByUserID(userID string) error {
	return repository.database.Delete(&models.Session{}, "user_id = ?", userID).Error
}
