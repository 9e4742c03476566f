package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/services"
)

type newUserInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	DistrictName string `json:"district_name"`
	TermStart    string `json:"term_start"`
	TermEnd      string `json:"term_end"`
}

type userView struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func buildUserView(user models.User) userView {
	return userView{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	input := newUserInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	serviceInput := services.NewUserInput{
		Email:        input.Email,
		Password:     input.Password,
		FullName:     input.FullName,
		Role:         input.Role,
		DistrictName: input.DistrictName,
	}
	if input.Role == models.RoleBoardMember {
		termStart, err := time.ParseInLocation("2006-01-02", input.TermStart, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid term start")
		}
		termEnd, err := time.ParseInLocation("2006-01-02", input.TermEnd, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid term end")
		}
		serviceInput.TermStart = termStart
		serviceInput.TermEnd = termEnd
	}

	user, err := handler.users.CreateUser(currentSession(c), serviceInput, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildUserView(user))
}

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.users.ListUsers(currentSession(c), handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, buildUserView(user))
	}
	return c.JSON(views)
}

type activeInput struct {
	Active bool `json:"active"`
}

func (handler *Handler) SetUserActive(c *fiber.Ctx) error {
	input := activeInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.users.SetUserActive(currentSession(c), c.Params("id"), input.Active, handler.now()); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

type assignmentInput struct {
	SecretaryUserID string `json:"secretary_user_id"`
	BoardMemberID   string `json:"board_member_id"`
}

func (handler *Handler) AssignSecretary(c *fiber.Ctx) error {
	input := assignmentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.users.AssignSecretary(currentSession(c), input.SecretaryUserID, input.BoardMemberID, handler.now()); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (handler *Handler) UnassignSecretary(c *fiber.Ctx) error {
	input := assignmentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.users.UnassignSecretary(currentSession(c), input.SecretaryUserID, input.BoardMemberID, handler.now()); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
