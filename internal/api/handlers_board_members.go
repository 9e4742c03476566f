package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/services"
)

type boardMemberView struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	DistrictName       string     `json:"district_name"`
	TermStart          time.Time  `json:"term_start"`
	TermEnd            time.Time  `json:"term_end"`
	TermState          string     `json:"term_state"`
	DaysRemaining      int        `json:"days_remaining"`
	ReadOnly           bool       `json:"read_only"`
	IsArchived         bool       `json:"is_archived"`
	ArchiveRequested   bool       `json:"archive_requested"`
	ArchiveRequestedAt *time.Time `json:"archive_requested_at,omitempty"`
}

func (handler *Handler) buildBoardMemberView(member models.BoardMember, now time.Time) boardMemberView {
	return boardMemberView{
		ID:                 member.ID,
		UserID:             member.UserID,
		DistrictName:       member.DistrictName,
		TermStart:          member.TermStart,
		TermEnd:            member.TermEnd,
		TermState:          services.BoardMemberTermState(now, member, handler.thresholds).String(),
		DaysRemaining:      services.DaysUntil(now, member.TermEnd),
		ReadOnly:           services.IsReadOnly(now, member),
		IsArchived:         member.IsArchived,
		ArchiveRequested:   member.ArchiveRequested,
		ArchiveRequestedAt: member.ArchiveRequestedAt,
	}
}

// ListBoardMembers returns the members the session may see with the derived
// term state: all of them for the administrator, the own row for a board
// member, assigned rows for a secretary. Pass ?all=true to include archived
// ones.
func (handler *Handler) ListBoardMembers(c *fiber.Ctx) error {
	var (
		members []models.BoardMember
		err     error
	)
	if c.Query("all") == "true" {
		members, err = handler.boardMembers.ListAll()
	} else {
		members, err = handler.boardMembers.ListCurrent()
	}
	if err != nil {
		return respondServiceError(c, err)
	}

	session := currentSession(c)
	if session.Role != models.RoleSysadmin {
		visible := make([]models.BoardMember, 0, len(members))
		for _, member := range members {
			if member.ID == session.BoardMemberID || session.IsAssignedTo(member.ID) {
				visible = append(visible, member)
			}
		}
		members = visible
	}

	now := handler.now()
	views := make([]boardMemberView, 0, len(members))
	for _, member := range members {
		views = append(views, handler.buildBoardMemberView(member, now))
	}
	return c.JSON(views)
}

func (handler *Handler) GetBoardMember(c *fiber.Ctx) error {
	member, err := handler.viewableBoardMember(c, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(handler.buildBoardMemberView(member, handler.now()))
}

func (handler *Handler) RequestArchive(c *fiber.Ctx) error {
	member, err := handler.archive.RequestArchive(currentSession(c), c.Params("id"), handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(handler.buildBoardMemberView(member, handler.now()))
}

func (handler *Handler) ApproveArchive(c *fiber.Ctx) error {
	member, err := handler.archive.ApproveArchive(currentSession(c), c.Params("id"), handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(handler.buildBoardMemberView(member, handler.now()))
}
