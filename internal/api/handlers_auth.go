package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
	"github.com/omspdev/omsp/internal/services"
)

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type sessionView struct {
	UserID                 string   `json:"user_id"`
	Email                  string   `json:"email"`
	FullName               string   `json:"full_name"`
	Role                   string   `json:"role"`
	BoardMemberID          string   `json:"board_member_id,omitempty"`
	AssignedBoardMemberIDs []string `json:"assigned_board_member_ids,omitempty"`
}

func buildSessionView(session models.Session) sessionView {
	return sessionView{
		UserID:                 session.UserID,
		Email:                  session.Email,
		FullName:               session.FullName,
		Role:                   session.Role,
		BoardMemberID:          session.BoardMemberID,
		AssignedBoardMemberIDs: session.AssignedBoardMemberIDs,
	}
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	key := clientKey(c)
	if handler.loginLimiter.blocked(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}

	session, err := handler.auth.Login(input.Email, input.Password, now)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.recordFailure(key, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return respondServiceError(c, err)
	}
	handler.loginLimiter.clear(key)

	if err := handler.setSessionCookie(c, session.ID, now); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(buildSessionView(session))
}

// Logout is deliberately forgiving: a dead or missing cookie still clears
// client state and returns ok.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if sessionID, err := handler.sessionIDFromRequest(c); err == nil {
		if err := handler.auth.Logout(sessionID, handler.now()); err != nil {
			return respondServiceError(c, err)
		}
	}
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Me returns the signed-in principal, as the session table knows it.
func (handler *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(buildSessionView(currentSession(c)))
}
