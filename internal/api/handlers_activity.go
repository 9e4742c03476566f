package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
)

// ListActivity returns the audit trail. The administrator sees everything;
// everyone else sees their own entries only.
func (handler *Handler) ListActivity(c *fiber.Ctx) error {
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	session := currentSession(c)
	if session.Role == models.RoleSysadmin {
		entries, err := handler.activity.ListRecent(limit, offset)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(entries)
	}

	entries, err := handler.activity.ListForUser(session.UserID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entries)
}

func queryInt(c *fiber.Ctx, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}
