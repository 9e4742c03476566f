package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FAStatusOngoing    = "Ongoing"
	FAStatusSuccessful = "Successful"
	FAStatusDenied     = "Denied"
)

// KnownFAStatus reports whether status is a valid financial-assistance status.
func KnownFAStatus(status string) bool {
	switch status {
	case FAStatusOngoing, FAStatusSuccessful, FAStatusDenied:
		return true
	}
	return false
}

// Beneficiary is a constituent who requested assistance.
type Beneficiary struct {
	ID        string `gorm:"primaryKey"`
	FullName  string `gorm:"not null"`
	Address   string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (beneficiary *Beneficiary) BeforeCreate(*gorm.DB) error {
	if beneficiary.ID == "" {
		beneficiary.ID = uuid.NewString()
	}
	return nil
}

// FACaseType categorizes financial-assistance requests (medical, burial, ...).
type FACaseType struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	IsBuiltin bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (caseType *FACaseType) BeforeCreate(*gorm.DB) error {
	if caseType.ID == "" {
		caseType.ID = uuid.NewString()
	}
	return nil
}

// PACategory categorizes personal-assistance requests (referrals, documents, ...).
type PACategory struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	IsBuiltin bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (category *PACategory) BeforeCreate(*gorm.DB) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	return nil
}

// FARecord is a financial-assistance request scoped to a board member.
// Amounts hit the board member's monthly budget ledger once the request is
// marked Successful.
type FARecord struct {
	ID            string          `gorm:"primaryKey"`
	BoardMemberID string          `gorm:"index;not null"`
	BeneficiaryID string          `gorm:"index;not null"`
	CaseTypeID    string          `gorm:"not null"`
	CreatedBy     string          `gorm:"not null"`
	Status        string          `gorm:"not null;default:Ongoing"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Details       string
	IsArchived    bool `gorm:"not null;default:false"`
	IsDeleted     bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (record *FARecord) BeforeCreate(*gorm.DB) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return nil
}

// PARecord is a personal-assistance request scoped to a board member. It
// carries no amount and never touches the budget ledger.
type PARecord struct {
	ID            string `gorm:"primaryKey"`
	BoardMemberID string `gorm:"index;not null"`
	BeneficiaryID string `gorm:"index;not null"`
	CategoryID    string `gorm:"not null"`
	CreatedBy     string `gorm:"not null"`
	Details       string
	IsArchived    bool `gorm:"not null;default:false"`
	IsDeleted     bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (record *PARecord) BeforeCreate(*gorm.DB) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return nil
}
