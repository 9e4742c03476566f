package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyRequested    = errors.New("archive already requested")
	ErrArchiveNotRequested = errors.New("no pending archive request")
)

type BoardMemberRepository interface {
	FindByID(boardMemberID string) (models.BoardMember, error)
	Save(member *models.BoardMember) error
	ListCurrent() ([]models.BoardMember, error)
	ListAll() ([]models.BoardMember, error)
}

// ArchiveService implements the two-step term archival flow: the board
// member requests it once their term has ended, the administrator approves
// it. Approval is the only path that clears the request flag.
type ArchiveService struct {
	boardMembers BoardMemberRepository
	activity     *ActivityService
	thresholds   TermThresholds
}

func NewArchiveService(boardMembers BoardMemberRepository, activity *ActivityService, thresholds TermThresholds) *ArchiveService {
	return &ArchiveService{boardMembers: boardMembers, activity: activity, thresholds: thresholds}
}

// RequestArchive sets the one-way request flag on the caller's own ended
// term. Repeat calls fail with ErrAlreadyRequested.
func (service *ArchiveService) RequestArchive(session models.Session, boardMemberID string, now time.Time) (models.BoardMember, error) {
	member, err := service.loadMember(boardMemberID)
	if err != nil {
		return models.BoardMember{}, err
	}

	input := PermissionInput{Session: session, Target: &member, Now: now, Thresholds: service.thresholds}
	if err := Authorize(input, ActionRequestArchive); err != nil {
		return models.BoardMember{}, err
	}
	if member.ArchiveRequested {
		return models.BoardMember{}, ErrAlreadyRequested
	}

	requestedAt := now
	member.ArchiveRequested = true
	member.ArchiveRequestedAt = &requestedAt
	if err := service.boardMembers.Save(&member); err != nil {
		return models.BoardMember{}, fmt.Errorf("save archive request: %w", err)
	}

	if _, err := service.activity.Append(session, now, "Requested term archive", models.ActionTypeArchiveRequest, models.RecordTypeBoardMember, member.ID, member.DistrictName); err != nil {
		return models.BoardMember{}, err
	}
	return member, nil
}

// ApproveArchive completes a pending request: the member becomes archived,
// permanently read-only, and drops out of all active-term views.
func (service *ArchiveService) ApproveArchive(session models.Session, boardMemberID string, now time.Time) (models.BoardMember, error) {
	member, err := service.loadMember(boardMemberID)
	if err != nil {
		return models.BoardMember{}, err
	}

	input := PermissionInput{Session: session, Target: &member, Now: now, Thresholds: service.thresholds}
	if err := Authorize(input, ActionApproveArchive); err != nil {
		return models.BoardMember{}, err
	}
	if !member.ArchiveRequested {
		return models.BoardMember{}, ErrArchiveNotRequested
	}

	member.IsArchived = true
	member.ArchiveRequested = false
	if err := service.boardMembers.Save(&member); err != nil {
		return models.BoardMember{}, fmt.Errorf("save archive approval: %w", err)
	}

	if _, err := service.activity.Append(session, now, "Approved term archive", models.ActionTypeArchiveApprove, models.RecordTypeBoardMember, member.ID, member.DistrictName); err != nil {
		return models.BoardMember{}, err
	}
	return member, nil
}

func (service *ArchiveService) loadMember(boardMemberID string) (models.BoardMember, error) {
	member, err := service.boardMembers.FindByID(boardMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BoardMember{}, ErrNotFound
		}
		return models.BoardMember{}, fmt.Errorf("load board member: %w", err)
	}
	return member, nil
}
