package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/services"
	"github.com/omspdev/omsp/internal/types"
)

type budgetSummaryView struct {
	BoardMember boardMemberView           `json:"board_member"`
	Month       string                    `json:"month"`
	Allocated   string                    `json:"allocated"`
	Used        string                    `json:"used"`
	Remaining   string                    `json:"remaining"`
	PercentUsed int                       `json:"percent_used"`
	Flagged     []models.MonthlyFrequency `json:"flagged_beneficiaries"`
}

func (handler *Handler) viewableBoardMember(c *fiber.Ctx, boardMemberID string) (models.BoardMember, error) {
	member, err := handler.boardMembers.FindByID(boardMemberID)
	if err != nil {
		return models.BoardMember{}, services.ErrNotFound
	}
	input := services.PermissionInput{
		Session:    currentSession(c),
		Target:     &member,
		Now:        handler.now(),
		Thresholds: handler.thresholds,
	}
	if err := services.Authorize(input, services.ActionViewAssistance); err != nil {
		return models.BoardMember{}, err
	}
	return member, nil
}

// BudgetLedger lists every ledger month for a board member, newest first.
func (handler *Handler) BudgetLedger(c *fiber.Ctx) error {
	member, err := handler.viewableBoardMember(c, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	rows, err := handler.budget.Ledger(member.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rows)
}

// DashboardSummary is the read model behind a board member's landing page:
// term state, the current month's budget position and the month's flagged
// beneficiaries. ?month=YYYY-MM selects another month.
func (handler *Handler) DashboardSummary(c *fiber.Ctx) error {
	member, err := handler.viewableBoardMember(c, c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	now := handler.now()
	month := types.MonthOf(now)
	if raw := c.Query("month"); raw != "" {
		parsed, err := types.ParseMonth(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		month = parsed
	}

	ledger, err := handler.budget.GetOrCreate(member.ID, month)
	if err != nil {
		return respondServiceError(c, err)
	}
	flagged, err := handler.frequency.ListMonth(month)
	if err != nil {
		return respondServiceError(c, err)
	}
	watched := make([]models.MonthlyFrequency, 0, len(flagged))
	for _, rollup := range flagged {
		if rollup.Level != models.FrequencyNormal {
			watched = append(watched, rollup)
		}
	}

	return c.JSON(budgetSummaryView{
		BoardMember: handler.buildBoardMemberView(member, now),
		Month:       month.String(),
		Allocated:   ledger.AllocatedAmount.StringFixed(2),
		Used:        ledger.UsedAmount.StringFixed(2),
		Remaining:   ledger.RemainingAmount.StringFixed(2),
		PercentUsed: services.BudgetPercentage(ledger.UsedAmount, ledger.AllocatedAmount),
		Flagged:     watched,
	})
}
