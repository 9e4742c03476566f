package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardMember is the elected official a board-member user represents. It is
// the aggregate root for assistance records and budget ledgers: every FA/PA
// record and budget row is scoped to a board member ID.
//
// Archival state is two independent flags. ArchiveRequested is set once by
// the board member after the term ends and stays set until the administrator
// completes the archive, which sets IsArchived and clears the request.
type BoardMember struct {
	ID                 string    `gorm:"primaryKey"`
	UserID             string    `gorm:"uniqueIndex;not null"`
	DistrictName       string    `gorm:"not null"`
	TermStart          time.Time `gorm:"type:date;not null"`
	TermEnd            time.Time `gorm:"type:date;not null"`
	IsArchived         bool      `gorm:"not null;default:false"`
	ArchiveRequested   bool      `gorm:"not null;default:false"`
	ArchiveRequestedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (member *BoardMember) BeforeCreate(*gorm.DB) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	return nil
}

// SecretaryAssignment links a secretary user to a board member they work
// for. A secretary may serve several board members and vice versa.
type SecretaryAssignment struct {
	ID              uint   `gorm:"primaryKey"`
	SecretaryUserID string `gorm:"not null;uniqueIndex:uidx_secretary_board_member"`
	BoardMemberID   string `gorm:"not null;uniqueIndex:uidx_secretary_board_member"`
	CreatedAt       time.Time
}
