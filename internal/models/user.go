package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSysadmin    = "sysadmin"
	RoleBoardMember = "board_member"
	RoleSecretary   = "secretary"
)

// User is an account that can sign in: the system administrator, a board
// member, or a member of the secretarial staff. Accounts are deactivated
// rather than deleted.
type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FullName     string `gorm:"not null"`
	Role         string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (user *User) BeforeCreate(*gorm.DB) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return nil
}

// KnownRole reports whether role is one of the three provisioned roles.
func KnownRole(role string) bool {
	switch role {
	case RoleSysadmin, RoleBoardMember, RoleSecretary:
		return true
	}
	return false
}
