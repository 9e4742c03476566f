package services

import (
	"testing"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/types"
	"github.com/rs/zerolog"
)

func TestSweepRefreshesCurrentMonthRollups(t *testing.T) {
	faRecords := &stubFARecords{}
	paRecords := &stubPARecords{}
	rollups := &stubRollups{}
	frequency := NewFrequencyService(&stubAssistanceCounts{faRecords: faRecords, paRecords: paRecords}, rollups, DefaultFrequencyThresholds())
	members := &stubBoardMembers{members: map[string]models.BoardMember{
		"bm-1": {ID: "bm-1", DistrictName: "District I", TermEnd: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)},
	}}
	sweep := NewSweepService(members, frequency, DefaultTermThresholds(), time.UTC, zerolog.Nop())

	now := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_ = faRecords.Create(&models.FARecord{BeneficiaryID: "ben-1", BoardMemberID: "bm-1", CreatedAt: now})
	}

	if err := sweep.RunOnce(now); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	rollup, found, err := rollups.FindByBeneficiaryAndMonth("ben-1", types.MonthOf(now))
	if err != nil || !found {
		t.Fatalf("rollup missing after sweep (found=%v, err=%v)", found, err)
	}
	if rollup.RequestCount != 5 || rollup.Level != models.FrequencyHigh {
		t.Fatalf("rollup = %+v, want count 5 at high", rollup)
	}
}

func TestSweepHandlesQuietMonth(t *testing.T) {
	faRecords := &stubFARecords{}
	paRecords := &stubPARecords{}
	rollups := &stubRollups{}
	frequency := NewFrequencyService(&stubAssistanceCounts{faRecords: faRecords, paRecords: paRecords}, rollups, DefaultFrequencyThresholds())
	sweep := NewSweepService(&stubBoardMembers{}, frequency, DefaultTermThresholds(), time.UTC, zerolog.Nop())

	if err := sweep.RunOnce(time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("sweep over empty data failed: %v", err)
	}
	if len(rollups.rows) != 0 {
		t.Fatalf("expected no rollups, got %d", len(rollups.rows))
	}
}
