package services

import (
	"github.com/omspdev/omsp/internal/models"
	"github.com/shopspring/decimal"
)

// FrequencyThresholds holds the monthly request counts at which a
// beneficiary is flagged. The levels are advisory abuse signals; nothing is
// ever blocked because of them.
type FrequencyThresholds struct {
	MonitorCount int
	HighCount    int
}

func DefaultFrequencyThresholds() FrequencyThresholds {
	return FrequencyThresholds{MonitorCount: 3, HighCount: 5}
}

// ClassifyFrequency maps a monthly request count to a flag level.
func ClassifyFrequency(count int, thresholds FrequencyThresholds) string {
	switch {
	case count >= thresholds.HighCount:
		return models.FrequencyHigh
	case count >= thresholds.MonitorCount:
		return models.FrequencyMonitor
	}
	return models.FrequencyNormal
}

var oneHundred = decimal.NewFromInt(100)

// BudgetPercentage returns used/total as a rounded whole percentage. Values
// above 100 are possible when the ledger is overdrawn. A zero total yields 0
// rather than an error so an unallocated month renders as untouched.
func BudgetPercentage(used decimal.Decimal, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return int(used.Div(total).Mul(oneHundred).Round(0).IntPart())
}
