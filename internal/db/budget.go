package db

import (
	"errors"

	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetLogRepository persists the per-board-member monthly ledger rows.
type BudgetLogRepository struct {
	database *gorm.DB
}

func NewBudgetLogRepository(database *gorm.DB) *BudgetLogRepository {
	return &BudgetLogRepository{database: database}
}

func (repository *BudgetLogRepository) FindByBoardMemberAndMonth(boardMemberID string, month types.Month) (models.MonthlyBudgetLog, bool, error) {
	var budgetLog models.MonthlyBudgetLog
	err := repository.database.
		First(&budgetLog, "board_member_id = ? AND month = ?", boardMemberID, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MonthlyBudgetLog{}, false, nil
	}
	if err != nil {
		return models.MonthlyBudgetLog{}, false, err
	}
	return budgetLog, true, nil
}

func (repository *BudgetLogRepository) Create(budgetLog *models.MonthlyBudgetLog) error {
	return repository.database.Create(budgetLog).Error
}

// Mutate runs the ledger's read-modify-write inside one sqlite transaction:
// find or create the row for seed's board member and month, apply mutate,
// save. Concurrent callers serialize on sqlite's single writer, so a delta
// can fail with a busy error but never silently overwrite another.
func (repository *BudgetLogRepository) Mutate(seed models.MonthlyBudgetLog, mutate func(*models.MonthlyBudgetLog)) (models.MonthlyBudgetLog, error) {
	var row models.MonthlyBudgetLog
	err := repository.database.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&row, "board_member_id = ? AND month = ?", seed.BoardMemberID, seed.Month).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = seed
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		mutate(&row)
		return tx.Save(&row).Error
	})
	if err != nil {
		return models.MonthlyBudgetLog{}, err
	}
	return row, nil
}

func (repository *BudgetLogRepository) ListByBoardMember(boardMemberID string) ([]models.MonthlyBudgetLog, error) {
	rows := make([]models.MonthlyBudgetLog, 0)
	err := repository.database.
		Where("board_member_id = ?", boardMemberID).
		Order("month DESC").
		Find(&rows).Error
	return rows, err
}

// MonthlyFrequencyRepository persists the per-beneficiary monthly counters.
type MonthlyFrequencyRepository struct {
	database *gorm.DB
}

func NewMonthlyFrequencyRepository(database *gorm.DB) *MonthlyFrequencyRepository {
	return &MonthlyFrequencyRepository{database: database}
}

// Upsert writes the rollup, replacing the counter and level when a row for
// the beneficiary and month already exists.
func (repository *MonthlyFrequencyRepository) Upsert(frequency *models.MonthlyFrequency) error {
	return repository.database.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "beneficiary_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"request_count", "level", "updated_at"}),
		}).
		Create(frequency).Error
}

func (repository *MonthlyFrequencyRepository) FindByBeneficiaryAndMonth(beneficiaryID string, month types.Month) (models.MonthlyFrequency, bool, error) {
	var frequency models.MonthlyFrequency
	err := repository.database.
		First(&frequency, "beneficiary_id = ? AND month = ?", beneficiaryID, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MonthlyFrequency{}, false, nil
	}
	if err != nil {
		return models.MonthlyFrequency{}, false, err
	}
	return frequency, true, nil
}

func (repository *MonthlyFrequencyRepository) ListByMonth(month types.Month) ([]models.MonthlyFrequency, error) {
	rows := make([]models.MonthlyFrequency, 0)
	err := repository.database.
		Where("month = ?", month).
		Order("request_count DESC").
		Find(&rows).Error
	return rows, err
}
