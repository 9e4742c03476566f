package api

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardMemberDirectoryIsScoped(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, testAdminEmail, testAdminPassword)

	firstID := provisionBoardMember(t, app, adminCookie, "maria@omsp.gov.ph", "District I", "2022-07-01", "2025-12-31")
	secondID := provisionBoardMember(t, app, adminCookie, "pedro@omsp.gov.ph", "District II", "2022-07-01", "2025-12-31")

	// The administrator sees the whole roster.
	response := doJSON(t, app, fiber.MethodGet, "/api/board-members", nil, adminCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var roster []boardMemberView
	decodeBody(t, response, &roster)
	assert.Len(t, roster, 2)

	// A board member sees only their own row and profile.
	boardCookie := login(t, app, "maria@omsp.gov.ph", "board-password")
	response = doJSON(t, app, fiber.MethodGet, "/api/board-members", nil, boardCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var own []boardMemberView
	decodeBody(t, response, &own)
	require.Len(t, own, 1)
	assert.Equal(t, firstID, own[0].ID)

	response = doJSON(t, app, fiber.MethodGet, "/api/board-members/"+firstID, nil, boardCookie)
	assert.Equal(t, fiber.StatusOK, response.StatusCode)
	response = doJSON(t, app, fiber.MethodGet, "/api/board-members/"+secondID, nil, boardCookie)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode,
		"another member's term data is off limits")

	// A secretary's view follows their assignments.
	provisionSecretary(t, app, adminCookie, "ana@omsp.gov.ph", secondID)
	secretaryCookie := login(t, app, "ana@omsp.gov.ph", "secretary-password")
	response = doJSON(t, app, fiber.MethodGet, "/api/board-members", nil, secretaryCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var assigned []boardMemberView
	decodeBody(t, response, &assigned)
	require.Len(t, assigned, 1)
	assert.Equal(t, secondID, assigned[0].ID)

	response = doJSON(t, app, fiber.MethodGet, "/api/board-members/"+firstID, nil, secretaryCookie)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode)
}
