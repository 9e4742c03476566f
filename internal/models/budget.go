package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/omspdev/omsp/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FrequencyNormal  = "normal"
	FrequencyMonitor = "monitor"
	FrequencyHigh    = "high"
)

// MonthlyBudgetLog is the per-board-member ledger row for one year-month.
// RemainingAmount is always recomputed as allocated minus used; it may go
// negative, overdraft is surfaced to the UI rather than blocked.
type MonthlyBudgetLog struct {
	ID              string          `gorm:"primaryKey"`
	BoardMemberID   string          `gorm:"not null;uniqueIndex:uidx_board_member_month"`
	Month           types.Month     `gorm:"not null;uniqueIndex:uidx_board_member_month"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	UsedAmount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (budgetLog *MonthlyBudgetLog) BeforeCreate(*gorm.DB) error {
	if budgetLog.ID == "" {
		budgetLog.ID = uuid.NewString()
	}
	return nil
}

// MonthlyFrequency is the per-beneficiary request counter for one month,
// classified into an advisory level. It flags unusually frequent requesters;
// it never blocks anything.
type MonthlyFrequency struct {
	ID            string      `gorm:"primaryKey"`
	BeneficiaryID string      `gorm:"not null;uniqueIndex:uidx_beneficiary_month"`
	Month         types.Month `gorm:"not null;uniqueIndex:uidx_beneficiary_month"`
	RequestCount  int         `gorm:"not null;default:0"`
	Level         string      `gorm:"not null;default:normal"`
	UpdatedAt     time.Time
}

func (frequency *MonthlyFrequency) BeforeCreate(*gorm.DB) error {
	if frequency.ID == "" {
		frequency.ID = uuid.NewString()
	}
	return nil
}
