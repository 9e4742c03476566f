package services

import (
	"time"

	"github.com/omspdev/omsp/internal/types"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SweepService runs the daily housekeeping pass: it surfaces term-expiry
// warnings in the application log and recomputes the current month's
// frequency rollups. Term state itself is always derived on read, so the
// sweep never writes board-member rows.
type SweepService struct {
	boardMembers BoardMemberRepository
	frequency    *FrequencyService
	thresholds   TermThresholds
	location     *time.Location
	logger       zerolog.Logger
	scheduler    *cron.Cron
}

func NewSweepService(boardMembers BoardMemberRepository, frequency *FrequencyService, thresholds TermThresholds, location *time.Location, logger zerolog.Logger) *SweepService {
	if location == nil {
		location = time.UTC
	}
	return &SweepService{
		boardMembers: boardMembers,
		frequency:    frequency,
		thresholds:   thresholds,
		location:     location,
		logger:       logger,
	}
}

// Start schedules the sweep with a cron expression and runs one pass
// immediately so a freshly started instance is not a day behind.
func (service *SweepService) Start(schedule string) error {
	service.scheduler = cron.New()
	_, err := service.scheduler.AddFunc(schedule, func() {
		if err := service.RunOnce(time.Now().In(service.location)); err != nil {
			service.logger.Error().Err(err).Msg("daily sweep failed")
		}
	})
	if err != nil {
		return err
	}
	service.scheduler.Start()

	go func() {
		if err := service.RunOnce(time.Now().In(service.location)); err != nil {
			service.logger.Error().Err(err).Msg("startup sweep failed")
		}
	}()
	return nil
}

// Stop halts the scheduler. Safe to call when Start never ran.
func (service *SweepService) Stop() {
	if service.scheduler != nil {
		service.scheduler.Stop()
	}
}

// RunOnce executes one sweep pass for the given instant.
func (service *SweepService) RunOnce(now time.Time) error {
	members, err := service.boardMembers.ListCurrent()
	if err != nil {
		return err
	}

	for _, member := range members {
		state := BoardMemberTermState(now, member, service.thresholds)
		daysLeft := DaysUntil(now, member.TermEnd)

		switch state {
		case TermGentleWarning, TermWarning, TermCritical:
			service.logger.Warn().
				Str("board_member_id", member.ID).
				Str("district", member.DistrictName).
				Str("term_state", state.String()).
				Int("days_left", daysLeft).
				Msg("term approaching its end")
		case TermEnded:
			service.logger.Info().
				Str("board_member_id", member.ID).
				Str("district", member.DistrictName).
				Msg("term ended, records are read-only until archived")
		}
	}

	return service.frequency.RefreshMonth(types.MonthOf(now), now)
}
