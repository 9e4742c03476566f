package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is the authoritative record of a signed-in principal. The cookie
// the browser holds only references a session by ID; everything a handler
// needs to authorize a request lives here and is passed explicitly into
// service calls.
//
// BoardMemberID is set only for board-member sessions. AssignedBoardMemberIDs
// is set only for secretary sessions and is resolved once at login.
type Session struct {
	ID                     string `gorm:"primaryKey"`
	UserID                 string `gorm:"index;not null"`
	Email                  string `gorm:"not null"`
	FullName               string `gorm:"not null"`
	Role                   string `gorm:"not null"`
	BoardMemberID          string
	AssignedBoardMemberIDs []string  `gorm:"serializer:json"`
	LoggedInAt             time.Time `gorm:"not null"`
}

func (session *Session) BeforeCreate(*gorm.DB) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	return nil
}

// IsAssignedTo reports whether a secretary session covers the board member.
func (session Session) IsAssignedTo(boardMemberID string) bool {
	for _, assigned := range session.AssignedBoardMemberIDs {
		if assigned == boardMemberID {
			return true
		}
	}
	return false
}
