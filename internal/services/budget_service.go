package services

import (
	"errors"
	"fmt"

	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/types"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

type BudgetLogRepository interface {
	FindByBoardMemberAndMonth(boardMemberID string, month types.Month) (models.MonthlyBudgetLog, bool, error)
	Create(budgetLog *models.MonthlyBudgetLog) error
	// Mutate loads the row matching seed's board member and month, creating
	// it from seed when absent, applies mutate and saves the result. The
	// whole read-modify-write runs as one atomic unit so concurrent
	// disbursements cannot lose an update.
	Mutate(seed models.MonthlyBudgetLog, mutate func(*models.MonthlyBudgetLog)) (models.MonthlyBudgetLog, error)
	ListByBoardMember(boardMemberID string) ([]models.MonthlyBudgetLog, error)
}

// BudgetService maintains the per-board-member monthly ledger. Rows are
// created lazily with the default allocation on first touch and mutated on
// every successful disbursement or amount correction.
type BudgetService struct {
	budgetLogs        BudgetLogRepository
	defaultAllocation decimal.Decimal
}

func NewBudgetService(budgetLogs BudgetLogRepository, defaultAllocation decimal.Decimal) *BudgetService {
	return &BudgetService{budgetLogs: budgetLogs, defaultAllocation: defaultAllocation}
}

// GetOrCreate returns the ledger row for the board member and month,
// creating it with the default allocation when it does not exist yet. An
// existing row is never overwritten.
func (service *BudgetService) GetOrCreate(boardMemberID string, month types.Month) (models.MonthlyBudgetLog, error) {
	budgetLog, found, err := service.budgetLogs.FindByBoardMemberAndMonth(boardMemberID, month)
	if err != nil {
		return models.MonthlyBudgetLog{}, fmt.Errorf("load budget log: %w", err)
	}
	if found {
		return budgetLog, nil
	}

	budgetLog = models.MonthlyBudgetLog{
		BoardMemberID:   boardMemberID,
		Month:           month,
		AllocatedAmount: service.defaultAllocation,
		UsedAmount:      decimal.Zero,
		RemainingAmount: service.defaultAllocation,
	}
	if err := service.budgetLogs.Create(&budgetLog); err != nil {
		return models.MonthlyBudgetLog{}, fmt.Errorf("create budget log: %w", err)
	}
	return budgetLog, nil
}

// RecordDisbursement adds amount to the month's used total. Overdraft is
// permitted: remaining may go negative and is surfaced as a warning, never
// rejected.
func (service *BudgetService) RecordDisbursement(boardMemberID string, amount decimal.Decimal, month types.Month) (models.MonthlyBudgetLog, error) {
	if amount.IsNegative() {
		return models.MonthlyBudgetLog{}, ErrInvalidAmount
	}
	return service.apply(boardMemberID, month, amount)
}

// Reconcile adjusts the ledger after a disbursed amount is corrected, e.g.
// when a successful FA record's amount is edited or the record is reversed.
func (service *BudgetService) Reconcile(boardMemberID string, previousAmount decimal.Decimal, newAmount decimal.Decimal, month types.Month) (models.MonthlyBudgetLog, error) {
	if newAmount.IsNegative() {
		return models.MonthlyBudgetLog{}, ErrInvalidAmount
	}
	return service.apply(boardMemberID, month, newAmount.Sub(previousAmount))
}

func (service *BudgetService) apply(boardMemberID string, month types.Month, delta decimal.Decimal) (models.MonthlyBudgetLog, error) {
	seed := models.MonthlyBudgetLog{
		BoardMemberID:   boardMemberID,
		Month:           month,
		AllocatedAmount: service.defaultAllocation,
		UsedAmount:      decimal.Zero,
		RemainingAmount: service.defaultAllocation,
	}
	budgetLog, err := service.budgetLogs.Mutate(seed, func(row *models.MonthlyBudgetLog) {
		row.UsedAmount = row.UsedAmount.Add(delta)
		row.RemainingAmount = row.AllocatedAmount.Sub(row.UsedAmount)
	})
	if err != nil {
		return models.MonthlyBudgetLog{}, fmt.Errorf("apply budget delta: %w", err)
	}
	return budgetLog, nil
}

// Ledger returns every ledger row for a board member, for the budget view.
func (service *BudgetService) Ledger(boardMemberID string) ([]models.MonthlyBudgetLog, error) {
	return service.budgetLogs.ListByBoardMember(boardMemberID)
}
