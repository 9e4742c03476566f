package services

import (
	"math"
	"time"

	"github.com/omspdev/omsp/internal/models"
)

// TermState is the lifecycle position of a board member's term. It is never
// stored: every read derives it from the wall clock and the two archive
// flags, so a state can never be skipped or go stale.
type TermState int

const (
	TermActive TermState = iota
	TermGentleWarning
	TermWarning
	TermCritical
	TermEnded
	TermArchiveRequested
	TermArchived
)

func (state TermState) String() string {
	switch state {
	case TermActive:
		return "active"
	case TermGentleWarning:
		return "gentle_warning"
	case TermWarning:
		return "warning"
	case TermCritical:
		return "critical"
	case TermEnded:
		return "ended"
	case TermArchiveRequested:
		return "archive_requested"
	case TermArchived:
		return "archived"
	}
	return "unknown"
}

// TermThresholds holds the day counts at which a term's banner escalates.
type TermThresholds struct {
	GentleDays   int
	WarningDays  int
	CriticalDays int
}

func DefaultTermThresholds() TermThresholds {
	return TermThresholds{GentleDays: 90, WarningDays: 30, CriticalDays: 7}
}

// DateOnly truncates a time to midnight of its calendar day in location.
func DateOnly(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DaysUntil returns the number of whole calendar days from now until the
// deadline. Zero means the deadline is today; negative means it has passed.
func DaysUntil(now time.Time, deadline time.Time) int {
	start := DateOnly(now, now.Location())
	end := DateOnly(deadline, now.Location())
	// Both ends are midnight, but a DST transition between them makes the
	// span an hour short or long of a whole day. Rounding recovers the
	// calendar-day count.
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// TermStateAt computes the lifecycle state from the clock and the archive
// flags. Archived is terminal and wins over everything else.
func TermStateAt(now time.Time, termEnd time.Time, isArchived bool, archiveRequested bool, thresholds TermThresholds) TermState {
	if isArchived {
		return TermArchived
	}

	remaining := DaysUntil(now, termEnd)
	if remaining <= 0 {
		if archiveRequested {
			return TermArchiveRequested
		}
		return TermEnded
	}

	switch {
	case remaining <= thresholds.CriticalDays:
		return TermCritical
	case remaining <= thresholds.WarningDays:
		return TermWarning
	case remaining <= thresholds.GentleDays:
		return TermGentleWarning
	}
	return TermActive
}

// BoardMemberTermState derives the state for a board member row.
func BoardMemberTermState(now time.Time, member models.BoardMember, thresholds TermThresholds) TermState {
	return TermStateAt(now, member.TermEnd, member.IsArchived, member.ArchiveRequested, thresholds)
}

// IsReadOnly reports whether records scoped to the board member may no
// longer be created or edited: the member is archived or the term has ended.
func IsReadOnly(now time.Time, member models.BoardMember) bool {
	return member.IsArchived || DaysUntil(now, member.TermEnd) <= 0
}
