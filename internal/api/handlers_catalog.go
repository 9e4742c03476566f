package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
)

type nameInput struct {
	Name string `json:"name"`
}

func (handler *Handler) ListFACaseTypes(c *fiber.Ctx) error {
	caseTypes, err := handler.catalog.ListFACaseTypes()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(caseTypes)
}

func (handler *Handler) CreateFACaseType(c *fiber.Ctx) error {
	input := nameInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	caseType, err := handler.catalog.CreateFACaseType(currentSession(c), input.Name, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(caseType)
}

func (handler *Handler) ListPACategories(c *fiber.Ctx) error {
	categories, err := handler.catalog.ListPACategories()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(categories)
}

func (handler *Handler) CreatePACategory(c *fiber.Ctx) error {
	input := nameInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	category, err := handler.catalog.CreatePACategory(currentSession(c), input.Name, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

type beneficiaryInput struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
}

func (handler *Handler) ListBeneficiaries(c *fiber.Ctx) error {
	beneficiaries, err := handler.beneficiaries.ListAll()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(beneficiaries)
}

// CreateBeneficiary registers a constituent. Any signed-in user may do this;
// a beneficiary row on its own grants nothing.
func (handler *Handler) CreateBeneficiary(c *fiber.Ctx) error {
	input := beneficiaryInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	input.FullName = strings.TrimSpace(input.FullName)
	if input.FullName == "" {
		return apiError(c, fiber.StatusBadRequest, "full name is required")
	}

	beneficiary := models.Beneficiary{
		FullName:  input.FullName,
		Address:   strings.TrimSpace(input.Address),
		Contact:   strings.TrimSpace(input.Contact),
		CreatedAt: handler.now(),
	}
	if err := handler.beneficiaries.Create(&beneficiary); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(beneficiary)
}
