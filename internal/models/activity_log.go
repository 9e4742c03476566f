package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionTypeLogin          = "login"
	ActionTypeLogout         = "logout"
	ActionTypeCreate         = "create"
	ActionTypeUpdate         = "update"
	ActionTypeStatusChange   = "status_change"
	ActionTypeArchive        = "archive"
	ActionTypeDelete         = "delete"
	ActionTypeArchiveRequest = "archive_request"
	ActionTypeArchiveApprove = "archive_approve"
	ActionTypePasswordReset  = "password_reset"
)

const (
	RecordTypeSession     = "session"
	RecordTypeUser        = "user"
	RecordTypeBoardMember = "board_member"
	RecordTypeFARecord    = "fa_record"
	RecordTypePARecord    = "pa_record"
	RecordTypeCaseType    = "fa_case_type"
	RecordTypePACategory  = "pa_category"
)

// ActivityLog is one append-only audit entry. Rows are never updated or
// deleted by any code path; actor identity is denormalized so entries stay
// readable after account changes.
type ActivityLog struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index;not null"`
	UserName   string `gorm:"not null"`
	UserRole   string `gorm:"not null"`
	Action     string `gorm:"not null"`
	ActionType string `gorm:"not null"`
	RecordType string `gorm:"not null"`
	RecordID   string
	Details    string
	CreatedAt  time.Time `gorm:"index"`
}

func (entry *ActivityLog) BeforeCreate(*gorm.DB) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return nil
}
