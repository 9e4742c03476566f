package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/services"
	"github.com/shopspring/decimal"
)

type faRecordInput struct {
	BoardMemberID string          `json:"board_member_id"`
	BeneficiaryID string          `json:"beneficiary_id"`
	CaseTypeID    string          `json:"case_type_id"`
	Amount        decimal.Decimal `json:"amount"`
	Details       string          `json:"details"`
}

type paRecordInput struct {
	BoardMemberID string `json:"board_member_id"`
	BeneficiaryID string `json:"beneficiary_id"`
	CategoryID    string `json:"category_id"`
	Details       string `json:"details"`
}

type statusInput struct {
	Status string `json:"status"`
}

func (handler *Handler) CreateFARecord(c *fiber.Ctx) error {
	input := faRecordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.assistance.CreateFA(currentSession(c), services.FAInput{
		BoardMemberID: input.BoardMemberID,
		BeneficiaryID: input.BeneficiaryID,
		CaseTypeID:    input.CaseTypeID,
		Amount:        input.Amount,
		Details:       input.Details,
	}, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListFARecords(c *fiber.Ctx) error {
	records, err := handler.assistance.ListFA(currentSession(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) GetFARecord(c *fiber.Ctx) error {
	record, err := handler.assistance.GetFA(currentSession(c), c.Params("id"), handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) UpdateFARecord(c *fiber.Ctx) error {
	input := faRecordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.assistance.UpdateFA(currentSession(c), c.Params("id"), services.FAInput{
		BoardMemberID: input.BoardMemberID,
		BeneficiaryID: input.BeneficiaryID,
		CaseTypeID:    input.CaseTypeID,
		Amount:        input.Amount,
		Details:       input.Details,
	}, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) SetFARecordStatus(c *fiber.Ctx) error {
	input := statusInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.assistance.SetFAStatus(currentSession(c), c.Params("id"), input.Status, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteFARecord(c *fiber.Ctx) error {
	if err := handler.assistance.DeleteFA(currentSession(c), c.Params("id"), handler.now()); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CreatePARecord(c *fiber.Ctx) error {
	input := paRecordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.assistance.CreatePA(currentSession(c), services.PAInput{
		BoardMemberID: input.BoardMemberID,
		BeneficiaryID: input.BeneficiaryID,
		CategoryID:    input.CategoryID,
		Details:       input.Details,
	}, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListPARecords(c *fiber.Ctx) error {
	records, err := handler.assistance.ListPA(currentSession(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(records)
}

func (handler *Handler) UpdatePARecord(c *fiber.Ctx) error {
	input := paRecordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.assistance.UpdatePA(currentSession(c), c.Params("id"), services.PAInput{
		BoardMemberID: input.BoardMemberID,
		BeneficiaryID: input.BeneficiaryID,
		CategoryID:    input.CategoryID,
		Details:       input.Details,
	}, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(record)
}

func (handler *Handler) DeletePARecord(c *fiber.Ctx) error {
	if err := handler.assistance.DeletePA(currentSession(c), c.Params("id"), handler.now()); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
