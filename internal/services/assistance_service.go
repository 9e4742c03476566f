package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrUnknownStatus = errors.New("unknown status")

type FARecordRepository interface {
	Create(record *models.FARecord) error
	Save(record *models.FARecord) error
	FindByID(recordID string) (models.FARecord, error)
	ListAll() ([]models.FARecord, error)
	ListByBoardMemberIDs(boardMemberIDs []string) ([]models.FARecord, error)
}

type PARecordRepository interface {
	Create(record *models.PARecord) error
	Save(record *models.PARecord) error
	FindByID(recordID string) (models.PARecord, error)
	ListAll() ([]models.PARecord, error)
	ListByBoardMemberIDs(boardMemberIDs []string) ([]models.PARecord, error)
}

type BeneficiaryRepository interface {
	FindByID(beneficiaryID string) (models.Beneficiary, error)
	Create(beneficiary *models.Beneficiary) error
	ListAll() ([]models.Beneficiary, error)
}

type CatalogRepository interface {
	FACaseTypeExists(caseTypeID string) (bool, error)
	PACategoryExists(categoryID string) (bool, error)
}

type FAInput struct {
	BoardMemberID string
	BeneficiaryID string
	CaseTypeID    string
	Amount        decimal.Decimal
	Details       string
}

type PAInput struct {
	BoardMemberID string
	BeneficiaryID string
	CategoryID    string
	Details       string
}

// AssistanceService is the write path for FA and PA records. Every mutation
// is gated by the permission matrix and the target member's read-only
// state, reconciles the budget ledger where amounts are involved, refreshes
// the beneficiary's frequency rollup and leaves an audit entry.
type AssistanceService struct {
	faRecords     FARecordRepository
	paRecords     PARecordRepository
	boardMembers  BoardMemberRepository
	beneficiaries BeneficiaryRepository
	catalog       CatalogRepository
	budget        *BudgetService
	frequency     *FrequencyService
	activity      *ActivityService
	thresholds    TermThresholds
}

func NewAssistanceService(
	faRecords FARecordRepository,
	paRecords PARecordRepository,
	boardMembers BoardMemberRepository,
	beneficiaries BeneficiaryRepository,
	catalog CatalogRepository,
	budget *BudgetService,
	frequency *FrequencyService,
	activity *ActivityService,
	thresholds TermThresholds,
) *AssistanceService {
	return &AssistanceService{
		faRecords:     faRecords,
		paRecords:     paRecords,
		boardMembers:  boardMembers,
		beneficiaries: beneficiaries,
		catalog:       catalog,
		budget:        budget,
		frequency:     frequency,
		activity:      activity,
		thresholds:    thresholds,
	}
}

// CreateFA opens a financial-assistance request in Ongoing state. The
// month's budget ledger row is created lazily here; nothing is disbursed
// until the request is marked Successful.
func (service *AssistanceService) CreateFA(session models.Session, input FAInput, now time.Time) (models.FARecord, error) {
	member, err := service.authorizeTarget(session, input.BoardMemberID, ActionCreateAssistance, now)
	if err != nil {
		return models.FARecord{}, err
	}
	if input.Amount.IsNegative() {
		return models.FARecord{}, ErrInvalidAmount
	}
	if err := service.requireBeneficiary(input.BeneficiaryID); err != nil {
		return models.FARecord{}, err
	}
	if err := service.requireCaseType(input.CaseTypeID); err != nil {
		return models.FARecord{}, err
	}

	record := models.FARecord{
		BoardMemberID: member.ID,
		BeneficiaryID: input.BeneficiaryID,
		CaseTypeID:    input.CaseTypeID,
		CreatedBy:     session.UserID,
		Status:        models.FAStatusOngoing,
		Amount:        input.Amount,
		Details:       input.Details,
		CreatedAt:     now,
	}
	if err := service.faRecords.Create(&record); err != nil {
		return models.FARecord{}, fmt.Errorf("create FA record: %w", err)
	}

	month := types.MonthOf(now)
	if _, err := service.budget.GetOrCreate(member.ID, month); err != nil {
		return models.FARecord{}, err
	}
	if _, err := service.frequency.Refresh(input.BeneficiaryID, month, now); err != nil {
		return models.FARecord{}, err
	}
	if _, err := service.activity.Append(session, now, "Created financial assistance request", models.ActionTypeCreate, models.RecordTypeFARecord, record.ID, input.Details); err != nil {
		return models.FARecord{}, err
	}
	return record, nil
}

// UpdateFA edits a request's amount, case type and details. When the record
// is already Successful an amount change reconciles the owning ledger row.
func (service *AssistanceService) UpdateFA(session models.Session, recordID string, input FAInput, now time.Time) (models.FARecord, error) {
	record, err := service.loadFA(recordID)
	if err != nil {
		return models.FARecord{}, err
	}
	if _, err := service.authorizeTarget(session, record.BoardMemberID, ActionEditAssistance, now); err != nil {
		return models.FARecord{}, err
	}
	if input.Amount.IsNegative() {
		return models.FARecord{}, ErrInvalidAmount
	}
	if input.CaseTypeID != "" && input.CaseTypeID != record.CaseTypeID {
		if err := service.requireCaseType(input.CaseTypeID); err != nil {
			return models.FARecord{}, err
		}
		record.CaseTypeID = input.CaseTypeID
	}

	previousAmount := record.Amount
	record.Amount = input.Amount
	record.Details = input.Details
	if err := service.faRecords.Save(&record); err != nil {
		return models.FARecord{}, fmt.Errorf("save FA record: %w", err)
	}

	if record.Status == models.FAStatusSuccessful && !previousAmount.Equal(record.Amount) {
		if _, err := service.budget.Reconcile(record.BoardMemberID, previousAmount, record.Amount, types.MonthOf(record.CreatedAt)); err != nil {
			return models.FARecord{}, err
		}
	}

	if _, err := service.activity.Append(session, now, "Updated financial assistance request", models.ActionTypeUpdate, models.RecordTypeFARecord, record.ID, ""); err != nil {
		return models.FARecord{}, err
	}
	return record, nil
}

// SetFAStatus moves a request between Ongoing, Successful and Denied.
// Entering Successful disburses the amount against the record's month;
// leaving Successful reverses it.
func (service *AssistanceService) SetFAStatus(session models.Session, recordID string, status string, now time.Time) (models.FARecord, error) {
	if !models.KnownFAStatus(status) {
		return models.FARecord{}, ErrUnknownStatus
	}

	record, err := service.loadFA(recordID)
	if err != nil {
		return models.FARecord{}, err
	}
	if _, err := service.authorizeTarget(session, record.BoardMemberID, ActionSetFAStatus, now); err != nil {
		return models.FARecord{}, err
	}
	if record.Status == status {
		return record, nil
	}

	previousStatus := record.Status
	record.Status = status
	if err := service.faRecords.Save(&record); err != nil {
		return models.FARecord{}, fmt.Errorf("save FA record: %w", err)
	}

	month := types.MonthOf(record.CreatedAt)
	var budgetErr error
	switch {
	case status == models.FAStatusSuccessful:
		_, budgetErr = service.budget.RecordDisbursement(record.BoardMemberID, record.Amount, month)
	case previousStatus == models.FAStatusSuccessful:
		_, budgetErr = service.budget.Reconcile(record.BoardMemberID, record.Amount, decimal.Zero, month)
	}
	if budgetErr != nil {
		// The ledger write failed, so the status flip must not stand.
		record.Status = previousStatus
		if revertErr := service.faRecords.Save(&record); revertErr != nil {
			return models.FARecord{}, errors.Join(budgetErr, fmt.Errorf("revert FA status: %w", revertErr))
		}
		return models.FARecord{}, budgetErr
	}

	detail := fmt.Sprintf("%s -> %s", previousStatus, status)
	if _, err := service.activity.Append(session, now, "Changed financial assistance status", models.ActionTypeStatusChange, models.RecordTypeFARecord, record.ID, detail); err != nil {
		return models.FARecord{}, err
	}
	return record, nil
}

// DeleteFA soft-deletes a request. A successful disbursement is reversed so
// the ledger no longer counts it.
func (service *AssistanceService) DeleteFA(session models.Session, recordID string, now time.Time) error {
	record, err := service.loadFA(recordID)
	if err != nil {
		return err
	}
	if _, err := service.authorizeTarget(session, record.BoardMemberID, ActionEditAssistance, now); err != nil {
		return err
	}

	record.IsDeleted = true
	if err := service.faRecords.Save(&record); err != nil {
		return fmt.Errorf("save FA record: %w", err)
	}

	if record.Status == models.FAStatusSuccessful {
		if _, err := service.budget.Reconcile(record.BoardMemberID, record.Amount, decimal.Zero, types.MonthOf(record.CreatedAt)); err != nil {
			return err
		}
	}

	month := types.MonthOf(record.CreatedAt)
	if _, err := service.frequency.Refresh(record.BeneficiaryID, month, now); err != nil {
		return err
	}
	_, err = service.activity.Append(session, now, "Deleted financial assistance request", models.ActionTypeDelete, models.RecordTypeFARecord, record.ID, "")
	return err
}

// ListFA returns the records the session may see: everything for the
// administrator, assigned members for secretaries, own records for board
// members. A secretary with no assignments sees an empty list.
func (service *AssistanceService) ListFA(session models.Session) ([]models.FARecord, error) {
	scope, all := listScope(session)
	if all {
		return service.faRecords.ListAll()
	}
	if len(scope) == 0 {
		return []models.FARecord{}, nil
	}
	return service.faRecords.ListByBoardMemberIDs(scope)
}

// GetFA loads one record, enforcing view scope.
func (service *AssistanceService) GetFA(session models.Session, recordID string, now time.Time) (models.FARecord, error) {
	record, err := service.loadFA(recordID)
	if err != nil {
		return models.FARecord{}, err
	}
	if _, err := service.authorizeTarget(session, record.BoardMemberID, ActionViewAssistance, now); err != nil {
		return models.FARecord{}, err
	}
	return record, nil
}

// CreatePA opens a personal-assistance request. No amount, no ledger; the
// beneficiary's frequency rollup still counts it.
func (service *AssistanceService) CreatePA(session models.Session, input PAInput, now time.Time) (models.PARecord, error) {
	member, err := service.authorizeTarget(session, input.BoardMemberID, ActionCreateAssistance, now)
	if err != nil {
		return models.PARecord{}, err
	}
	if err := service.requireBeneficiary(input.BeneficiaryID); err != nil {
		return models.PARecord{}, err
	}
	if err := service.requirePACategory(input.CategoryID); err != nil {
		return models.PARecord{}, err
	}

	record := models.PARecord{
		BoardMemberID: member.ID,
		BeneficiaryID: input.BeneficiaryID,
		CategoryID:    input.CategoryID,
		CreatedBy:     session.UserID,
		Details:       input.Details,
		CreatedAt:     now,
	}
	if err := service.paRecords.Create(&record); err != nil {
		return models.PARecord{}, fmt.Errorf("create PA record: %w", err)
	}

	if _, err := service.frequency.Refresh(input.BeneficiaryID, types.MonthOf(now), now); err != nil {
		return models.PARecord{}, err
	}
	if _, err := service.activity.Append(session, now, "Created personal assistance request", models.ActionTypeCreate, models.RecordTypePARecord, record.ID, input.Details); err != nil {
		return models.PARecord{}, err
	}
	return record, nil
}

// UpdatePA edits a personal-assistance request.
func (service *AssistanceService) UpdatePA(session models.Session, recordID string, input PAInput, now time.Time) (models.PARecord, error) {
	record, err := service.loadPA(recordID)
	if err != nil {
		return models.PARecord{}, err
	}
	if _, err := service.authorizeTarget(session, record.BoardMemberID, ActionEditAssistance, now); err != nil {
		return models.PARecord{}, err
	}
	if input.CategoryID != "" && input.CategoryID != record.CategoryID {
		if err := service.requirePACategory(input.CategoryID); err != nil {
			return models.PARecord{}, err
		}
		record.CategoryID = input.CategoryID
	}

	record.Details = input.Details
	if err := service.paRecords.Save(&record); err != nil {
		return models.PARecord{}, fmt.Errorf("save PA record: %w", err)
	}

	if _, err := service.activity.Append(session, now, "Updated personal assistance request", models.ActionTypeUpdate, models.RecordTypePARecord, record.ID, ""); err != nil {
		return models.PARecord{}, err
	}
	return record, nil
}

// DeletePA soft-deletes a personal-assistance request.
func (service *AssistanceService) DeletePA(session models.Session, recordID string, now time.Time) error {
	record, err := service.loadPA(recordID)
	if err != nil {
		return err
	}
	if _, err := service.authorizeTarget(session, record.BoardMemberID, ActionEditAssistance, now); err != nil {
		return err
	}

	record.IsDeleted = true
	if err := service.paRecords.Save(&record); err != nil {
		return fmt.Errorf("save PA record: %w", err)
	}
	if _, err := service.frequency.Refresh(record.BeneficiaryID, types.MonthOf(record.CreatedAt), now); err != nil {
		return err
	}
	_, err = service.activity.Append(session, now, "Deleted personal assistance request", models.ActionTypeDelete, models.RecordTypePARecord, record.ID, "")
	return err
}

// ListPA mirrors ListFA's scoping for personal-assistance records.
func (service *AssistanceService) ListPA(session models.Session) ([]models.PARecord, error) {
	scope, all := listScope(session)
	if all {
		return service.paRecords.ListAll()
	}
	if len(scope) == 0 {
		return []models.PARecord{}, nil
	}
	return service.paRecords.ListByBoardMemberIDs(scope)
}

func listScope(session models.Session) (boardMemberIDs []string, all bool) {
	switch session.Role {
	case models.RoleSysadmin:
		return nil, true
	case models.RoleSecretary:
		return session.AssignedBoardMemberIDs, false
	case models.RoleBoardMember:
		if session.BoardMemberID == "" {
			return nil, false
		}
		return []string{session.BoardMemberID}, false
	}
	return nil, false
}

func (service *AssistanceService) authorizeTarget(session models.Session, boardMemberID string, action Action, now time.Time) (models.BoardMember, error) {
	member, err := service.boardMembers.FindByID(boardMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BoardMember{}, ErrNotFound
		}
		return models.BoardMember{}, fmt.Errorf("load board member: %w", err)
	}

	input := PermissionInput{Session: session, Target: &member, Now: now, Thresholds: service.thresholds}
	if err := Authorize(input, action); err != nil {
		return models.BoardMember{}, err
	}
	return member, nil
}

func (service *AssistanceService) loadFA(recordID string) (models.FARecord, error) {
	record, err := service.faRecords.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FARecord{}, ErrNotFound
		}
		return models.FARecord{}, fmt.Errorf("load FA record: %w", err)
	}
	if record.IsDeleted {
		return models.FARecord{}, ErrNotFound
	}
	return record, nil
}

func (service *AssistanceService) loadPA(recordID string) (models.PARecord, error) {
	record, err := service.paRecords.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PARecord{}, ErrNotFound
		}
		return models.PARecord{}, fmt.Errorf("load PA record: %w", err)
	}
	if record.IsDeleted {
		return models.PARecord{}, ErrNotFound
	}
	return record, nil
}

func (service *AssistanceService) requireBeneficiary(beneficiaryID string) error {
	if _, err := service.beneficiaries.FindByID(beneficiaryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load beneficiary: %w", err)
	}
	return nil
}

func (service *AssistanceService) requireCaseType(caseTypeID string) error {
	exists, err := service.catalog.FACaseTypeExists(caseTypeID)
	if err != nil {
		return fmt.Errorf("check case type: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func (service *AssistanceService) requirePACategory(categoryID string) error {
	exists, err := service.catalog.PACategoryExists(categoryID)
	if err != nil {
		return fmt.Errorf("check PA category: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
