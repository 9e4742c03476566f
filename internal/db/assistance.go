package db

import (
	"time"

	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/types"
	"gorm.io/gorm"
)

// FARecordRepository persists financial-assistance requests. Soft-deleted
// rows never leave this layer.
type FARecordRepository struct {
	database *gorm.DB
}

func NewFARecordRepository(database *gorm.DB) *FARecordRepository {
	return &FARecordRepository{database: database}
}

func (repository *FARecordRepository) Create(record *models.FARecord) error {
	return repository.database.Create(record).Error
}

func (repository *FARecordRepository) Save(record *models.FARecord) error {
	return repository.database.Save(record).Error
}

func (repository *FARecordRepository) FindByID(recordID string) (models.FARecord, error) {
	var record models.FARecord
	err := repository.database.First(&record, "id = ?", recordID).Error
	return record, err
}

func (repository *FARecordRepository) ListAll() ([]models.FARecord, error) {
	records := make([]models.FARecord, 0)
	err := repository.database.
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (repository *FARecordRepository) ListByBoardMemberIDs(boardMemberIDs []string) ([]models.FARecord, error) {
	records := make([]models.FARecord, 0)
	err := repository.database.
		Where("board_member_id IN ? AND is_deleted = ?", boardMemberIDs, false).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// PARecordRepository persists personal-assistance requests.
type PARecordRepository struct {
	database *gorm.DB
}

func NewPARecordRepository(database *gorm.DB) *PARecordRepository {
	return &PARecordRepository{database: database}
}

func (repository *PARecordRepository) Create(record *models.PARecord) error {
	return repository.database.Create(record).Error
}

func (repository *PARecordRepository) Save(record *models.PARecord) error {
	return repository.database.Save(record).Error
}

func (repository *PARecordRepository) FindByID(recordID string) (models.PARecord, error) {
	var record models.PARecord
	err := repository.database.First(&record, "id = ?", recordID).Error
	return record, err
}

func (repository *PARecordRepository) ListAll() ([]models.PARecord, error) {
	records := make([]models.PARecord, 0)
	err := repository.database.
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (repository *PARecordRepository) ListByBoardMemberIDs(boardMemberIDs []string) ([]models.PARecord, error) {
	records := make([]models.PARecord, 0)
	err := repository.database.
		Where("board_member_id IN ? AND is_deleted = ?", boardMemberIDs, false).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// BeneficiaryRepository persists constituents.
type BeneficiaryRepository struct {
	database *gorm.DB
}

func NewBeneficiaryRepository(database *gorm.DB) *BeneficiaryRepository {
	return &BeneficiaryRepository{database: database}
}

func (repository *BeneficiaryRepository) Create(beneficiary *models.Beneficiary) error {
	return repository.database.Create(beneficiary).Error
}

func (repository *BeneficiaryRepository) FindByID(beneficiaryID string) (models.Beneficiary, error) {
	var beneficiary models.Beneficiary
	err := repository.database.First(&beneficiary, "id = ?", beneficiaryID).Error
	return beneficiary, err
}

func (repository *BeneficiaryRepository) ListAll() ([]models.Beneficiary, error) {
	beneficiaries := make([]models.Beneficiary, 0)
	err := repository.database.Order("full_name").Find(&beneficiaries).Error
	return beneficiaries, err
}

// RequestCountRepository counts live FA and PA records per beneficiary per
// month; it feeds the frequency rollups.
type RequestCountRepository struct {
	database *gorm.DB
}

func NewRequestCountRepository(database *gorm.DB) *RequestCountRepository {
	return &RequestCountRepository{database: database}
}

func (repository *RequestCountRepository) CountByBeneficiaryAndMonth(beneficiaryID string, month types.Month) (int, error) {
	start, end := monthBounds(month)

	var faCount int64
	if err := repository.database.Model(&models.FARecord{}).
		Where("beneficiary_id = ? AND is_deleted = ? AND created_at >= ? AND created_at < ?",
			beneficiaryID, false, start, end).
		Count(&faCount).Error; err != nil {
		return 0, err
	}

	var paCount int64
	if err := repository.database.Model(&models.PARecord{}).
		Where("beneficiary_id = ? AND is_deleted = ? AND created_at >= ? AND created_at < ?",
			beneficiaryID, false, start, end).
		Count(&paCount).Error; err != nil {
		return 0, err
	}

	return int(faCount + paCount), nil
}

func (repository *RequestCountRepository) BeneficiaryIDsWithRequests(month types.Month) ([]string, error) {
	start, end := monthBounds(month)
	ids := make([]string, 0)
	err := repository.database.Raw(`
SELECT beneficiary_id FROM fa_records WHERE is_deleted = 0 AND created_at >= ? AND created_at < ?
UNION
SELECT beneficiary_id FROM pa_records WHERE is_deleted = 0 AND created_at >= ? AND created_at < ?`,
		start, end, start, end).Scan(&ids).Error
	return ids, err
}

func monthBounds(month types.Month) (time.Time, time.Time) {
	return time.Time(month), time.Time(month.AddMonths(1))
}
