package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
)

const contextSessionKey = "omsp_current_session"

// AuthRequired resolves the cookie to a live session row and stashes it in
// the request locals. A dead cookie or deleted session yields 401.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	sessionID, err := handler.sessionIDFromRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	session, err := handler.auth.CurrentSession(sessionID)
	if err != nil {
		handler.clearSessionCookie(c)
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextSessionKey, session)
	return c.Next()
}

func currentSession(c *fiber.Ctx) models.Session {
	session, _ := c.Locals(contextSessionKey).(models.Session)
	return session
}
