package services

import (
	"fmt"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/types"
)

type AssistanceCountRepository interface {
	// CountByBeneficiaryAndMonth counts live FA plus PA records created for
	// the beneficiary within the month.
	CountByBeneficiaryAndMonth(beneficiaryID string, month types.Month) (int, error)
	// BeneficiaryIDsWithRequests lists beneficiaries that have at least one
	// record in the month.
	BeneficiaryIDsWithRequests(month types.Month) ([]string, error)
}

type MonthlyFrequencyRepository interface {
	Upsert(frequency *models.MonthlyFrequency) error
	FindByBeneficiaryAndMonth(beneficiaryID string, month types.Month) (models.MonthlyFrequency, bool, error)
	ListByMonth(month types.Month) ([]models.MonthlyFrequency, error)
}

// FrequencyService keeps the per-beneficiary monthly request counters that
// back the frequency flag. Counters are recomputed from the records rather
// than incremented, so a refresh is always idempotent.
type FrequencyService struct {
	counts     AssistanceCountRepository
	rollups    MonthlyFrequencyRepository
	thresholds FrequencyThresholds
}

func NewFrequencyService(counts AssistanceCountRepository, rollups MonthlyFrequencyRepository, thresholds FrequencyThresholds) *FrequencyService {
	return &FrequencyService{counts: counts, rollups: rollups, thresholds: thresholds}
}

// Refresh recounts one beneficiary's requests for the month and stores the
// classified rollup.
func (service *FrequencyService) Refresh(beneficiaryID string, month types.Month, now time.Time) (models.MonthlyFrequency, error) {
	count, err := service.counts.CountByBeneficiaryAndMonth(beneficiaryID, month)
	if err != nil {
		return models.MonthlyFrequency{}, fmt.Errorf("count requests: %w", err)
	}

	frequency := models.MonthlyFrequency{
		BeneficiaryID: beneficiaryID,
		Month:         month,
		RequestCount:  count,
		Level:         ClassifyFrequency(count, service.thresholds),
		UpdatedAt:     now,
	}
	if err := service.rollups.Upsert(&frequency); err != nil {
		return models.MonthlyFrequency{}, fmt.Errorf("store frequency rollup: %w", err)
	}
	return frequency, nil
}

// RefreshMonth recomputes rollups for every beneficiary active in the month.
func (service *FrequencyService) RefreshMonth(month types.Month, now time.Time) error {
	beneficiaryIDs, err := service.counts.BeneficiaryIDsWithRequests(month)
	if err != nil {
		return fmt.Errorf("list active beneficiaries: %w", err)
	}
	for _, beneficiaryID := range beneficiaryIDs {
		if _, err := service.Refresh(beneficiaryID, month, now); err != nil {
			return err
		}
	}
	return nil
}

// ListMonth returns every stored rollup for the month, busiest first.
func (service *FrequencyService) ListMonth(month types.Month) ([]models.MonthlyFrequency, error) {
	return service.rollups.ListByMonth(month)
}

// Flag returns the stored rollup for a beneficiary, defaulting to normal
// when no requests were recorded in the month.
func (service *FrequencyService) Flag(beneficiaryID string, month types.Month) (models.MonthlyFrequency, error) {
	frequency, found, err := service.rollups.FindByBeneficiaryAndMonth(beneficiaryID, month)
	if err != nil {
		return models.MonthlyFrequency{}, fmt.Errorf("load frequency rollup: %w", err)
	}
	if !found {
		return models.MonthlyFrequency{
			BeneficiaryID: beneficiaryID,
			Month:         month,
			Level:         models.FrequencyNormal,
		}, nil
	}
	return frequency, nil
}
