package services

import (
	"fmt"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"github.com/rs/zerolog"
)

// ActivityRepository persists audit entries. Implementations must only ever
// insert; there is no update or delete path anywhere in the system.
type ActivityRepository interface {
	Create(entry *models.ActivityLog) error
	ListRecent(limit int, offset int) ([]models.ActivityLog, error)
	ListByUser(userID string, limit int, offset int) ([]models.ActivityLog, error)
}

// ActivityService appends audit-trail entries for every state-changing
// operation, stamped with the acting session's identity.
type ActivityService struct {
	entries ActivityRepository
	logger  zerolog.Logger
}

func NewActivityService(entries ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{entries: entries, logger: logger}
}

// Append writes one audit entry. A failed insert is retried once; storage
// failures are the only condition treated as possibly transient.
func (service *ActivityService) Append(session models.Session, now time.Time, action string, actionType string, recordType string, recordID string, details string) (models.ActivityLog, error) {
	entry := models.ActivityLog{
		UserID:     session.UserID,
		UserName:   session.FullName,
		UserRole:   session.Role,
		Action:     action,
		ActionType: actionType,
		RecordType: recordType,
		RecordID:   recordID,
		Details:    details,
		CreatedAt:  now,
	}

	err := service.entries.Create(&entry)
	if err != nil {
		err = service.entries.Create(&entry)
	}
	if err != nil {
		service.logger.Error().Err(err).
			Str("action_type", actionType).
			Str("record_type", recordType).
			Msg("append activity entry failed")
		return models.ActivityLog{}, fmt.Errorf("append activity entry: %w", err)
	}

	service.logger.Debug().
		Str("user_id", entry.UserID).
		Str("action_type", entry.ActionType).
		Str("record_type", entry.RecordType).
		Str("record_id", entry.RecordID).
		Msg(entry.Action)
	return entry, nil
}

// ListRecent returns audit entries newest first.
func (service *ActivityService) ListRecent(limit int, offset int) ([]models.ActivityLog, error) {
	return service.entries.ListRecent(sanitizePageSize(limit), maxInt(offset, 0))
}

// ListForUser returns one user's audit entries newest first.
func (service *ActivityService) ListForUser(userID string, limit int, offset int) ([]models.ActivityLog, error) {
	return service.entries.ListByUser(userID, sanitizePageSize(limit), maxInt(offset, 0))
}

const defaultActivityPageSize = 50

func sanitizePageSize(limit int) int {
	if limit <= 0 || limit > 500 {
		return defaultActivityPageSize
	}
	return limit
}

func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
