package api

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provisionBoardMember(t *testing.T, app *fiber.App, adminCookie string, email string, district string, termStart string, termEnd string) string {
	t.Helper()

	response := doJSON(t, app, fiber.MethodPost, "/api/users", fiber.Map{
		"email":         email,
		"password":      "board-password",
		"full_name":     "Board Member " + district,
		"role":          models.RoleBoardMember,
		"district_name": district,
		"term_start":    termStart,
		"term_end":      termEnd,
	}, adminCookie)
	require.Equal(t, fiber.StatusCreated, response.StatusCode)

	listResponse := doJSON(t, app, fiber.MethodGet, "/api/board-members?all=true", nil, adminCookie)
	require.Equal(t, fiber.StatusOK, listResponse.StatusCode)
	var members []boardMemberView
	decodeBody(t, listResponse, &members)
	for _, member := range members {
		if member.DistrictName == district {
			return member.ID
		}
	}
	t.Fatalf("no board member found for district %s", district)
	return ""
}

func provisionSecretary(t *testing.T, app *fiber.App, adminCookie string, email string, boardMemberIDs ...string) string {
	t.Helper()

	response := doJSON(t, app, fiber.MethodPost, "/api/users", fiber.Map{
		"email":     email,
		"password":  "secretary-password",
		"full_name": "Secretary " + email,
		"role":      models.RoleSecretary,
	}, adminCookie)
	require.Equal(t, fiber.StatusCreated, response.StatusCode)
	var secretary userView
	decodeBody(t, response, &secretary)

	for _, boardMemberID := range boardMemberIDs {
		assignResponse := doJSON(t, app, fiber.MethodPost, "/api/assignments", fiber.Map{
			"secretary_user_id": secretary.ID,
			"board_member_id":   boardMemberID,
		}, adminCookie)
		require.Equal(t, fiber.StatusCreated, assignResponse.StatusCode)
	}
	return secretary.ID
}

func createBeneficiary(t *testing.T, app *fiber.App, cookie string, fullName string) string {
	t.Helper()

	response := doJSON(t, app, fiber.MethodPost, "/api/beneficiaries", fiber.Map{"full_name": fullName}, cookie)
	require.Equal(t, fiber.StatusCreated, response.StatusCode)
	var beneficiary models.Beneficiary
	decodeBody(t, response, &beneficiary)
	return beneficiary.ID
}

func firstCaseTypeID(t *testing.T, app *fiber.App, cookie string) string {
	t.Helper()

	response := doJSON(t, app, fiber.MethodGet, "/api/fa-case-types", nil, cookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var caseTypes []models.FACaseType
	decodeBody(t, response, &caseTypes)
	require.NotEmpty(t, caseTypes, "seed must install builtin case types")
	return caseTypes[0].ID
}

func TestFinancialAssistanceWorkflow(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, testAdminEmail, testAdminPassword)

	boardMemberID := provisionBoardMember(t, app, adminCookie, "maria@omsp.gov.ph", "District I", "2022-07-01", "2025-12-31")
	provisionSecretary(t, app, adminCookie, "ana@omsp.gov.ph", boardMemberID)
	beneficiaryID := createBeneficiary(t, app, adminCookie, "Jose Cruz")
	caseTypeID := firstCaseTypeID(t, app, adminCookie)

	// The administrator manages accounts, not casework.
	response := doJSON(t, app, fiber.MethodPost, "/api/fa-records", fiber.Map{
		"board_member_id": boardMemberID,
		"beneficiary_id":  beneficiaryID,
		"case_type_id":    caseTypeID,
		"amount":          "5000",
	}, adminCookie)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode)

	secretaryCookie := login(t, app, "ana@omsp.gov.ph", "secretary-password")
	response = doJSON(t, app, fiber.MethodPost, "/api/fa-records", fiber.Map{
		"board_member_id": boardMemberID,
		"beneficiary_id":  beneficiaryID,
		"case_type_id":    caseTypeID,
		"amount":          "5000",
		"details":         "hospital bill",
	}, secretaryCookie)
	require.Equal(t, fiber.StatusCreated, response.StatusCode)
	var record models.FARecord
	decodeBody(t, response, &record)
	assert.Equal(t, models.FAStatusOngoing, record.Status)

	response = doJSON(t, app, fiber.MethodPost, "/api/fa-records/"+record.ID+"/status", fiber.Map{
		"status": models.FAStatusSuccessful,
	}, secretaryCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)

	response = doJSON(t, app, fiber.MethodGet, "/api/board-members/"+boardMemberID+"/summary", nil, secretaryCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var summary budgetSummaryView
	decodeBody(t, response, &summary)
	assert.Equal(t, "2025-06", summary.Month)
	assert.Equal(t, "5000.00", summary.Used)
	assert.Equal(t, "65000.00", summary.Remaining)
	assert.Equal(t, 7, summary.PercentUsed)

	// The board member sees their own records; the secretary's scope covers
	// the same member, so both lists hold the record.
	boardCookie := login(t, app, "maria@omsp.gov.ph", "board-password")
	response = doJSON(t, app, fiber.MethodGet, "/api/fa-records", nil, boardCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var records []models.FARecord
	decodeBody(t, response, &records)
	require.Len(t, records, 1)
	assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(5000)))

	// Board members never flip FA status.
	response = doJSON(t, app, fiber.MethodPost, "/api/fa-records/"+record.ID+"/status", fiber.Map{
		"status": models.FAStatusDenied,
	}, boardCookie)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode)
}

func TestUnassignedSecretarySeesNothing(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, testAdminEmail, testAdminPassword)

	boardMemberID := provisionBoardMember(t, app, adminCookie, "maria@omsp.gov.ph", "District I", "2022-07-01", "2025-12-31")
	provisionSecretary(t, app, adminCookie, "idle@omsp.gov.ph")
	beneficiaryID := createBeneficiary(t, app, adminCookie, "Jose Cruz")
	caseTypeID := firstCaseTypeID(t, app, adminCookie)

	idleCookie := login(t, app, "idle@omsp.gov.ph", "secretary-password")

	response := doJSON(t, app, fiber.MethodGet, "/api/fa-records", nil, idleCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var records []models.FARecord
	decodeBody(t, response, &records)
	assert.Empty(t, records)

	response = doJSON(t, app, fiber.MethodPost, "/api/fa-records", fiber.Map{
		"board_member_id": boardMemberID,
		"beneficiary_id":  beneficiaryID,
		"case_type_id":    caseTypeID,
		"amount":          "1000",
	}, idleCookie)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode)
}

func TestEndedTermIsReadOnlyOverHTTP(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, testAdminEmail, testAdminPassword)

	boardMemberID := provisionBoardMember(t, app, adminCookie, "retired@omsp.gov.ph", "District IX", "2019-07-01", "2022-06-30")
	beneficiaryID := createBeneficiary(t, app, adminCookie, "Jose Cruz")
	caseTypeID := firstCaseTypeID(t, app, adminCookie)

	boardCookie := login(t, app, "retired@omsp.gov.ph", "board-password")
	response := doJSON(t, app, fiber.MethodPost, "/api/fa-records", fiber.Map{
		"board_member_id": boardMemberID,
		"beneficiary_id":  beneficiaryID,
		"case_type_id":    caseTypeID,
		"amount":          "1000",
	}, boardCookie)
	assert.Equal(t, fiber.StatusForbidden, response.StatusCode)

	// The ended term unlocks the archive request instead.
	response = doJSON(t, app, fiber.MethodPost, "/api/board-members/"+boardMemberID+"/request-archive", nil, boardCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	var view boardMemberView
	decodeBody(t, response, &view)
	assert.True(t, view.ArchiveRequested)
	assert.Equal(t, "archive_requested", view.TermState)

	// Repeat requests conflict; admin approval completes the flow.
	response = doJSON(t, app, fiber.MethodPost, "/api/board-members/"+boardMemberID+"/request-archive", nil, boardCookie)
	assert.Equal(t, fiber.StatusConflict, response.StatusCode)

	response = doJSON(t, app, fiber.MethodPost, "/api/board-members/"+boardMemberID+"/approve-archive", nil, adminCookie)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
	decodeBody(t, response, &view)
	assert.True(t, view.IsArchived)
	assert.Equal(t, "archived", view.TermState)
}

func TestPersonalAssistanceCarriesNoBudget(t *testing.T) {
	app := newTestApp(t)
	adminCookie := login(t, app, testAdminEmail, testAdminPassword)

	boardMemberID := provisionBoardMember(t, app, adminCookie, "maria@omsp.gov.ph", "District I", "2022-07-01", "2025-12-31")
	beneficiaryID := createBeneficiary(t, app, adminCookie, "Jose Cruz")

	categoriesResponse := doJSON(t, app, fiber.MethodGet, "/api/pa-categories", nil, adminCookie)
	require.Equal(t, fiber.StatusOK, categoriesResponse.StatusCode)
	var categories []models.PACategory
	decodeBody(t, categoriesResponse, &categories)
	require.NotEmpty(t, categories)

	boardCookie := login(t, app, "maria@omsp.gov.ph", "board-password")
	response := doJSON(t, app, fiber.MethodPost, "/api/pa-records", fiber.Map{
		"board_member_id": boardMemberID,
		"beneficiary_id":  beneficiaryID,
		"category_id":     categories[0].ID,
		"details":         "job referral",
	}, boardCookie)
	require.Equal(t, fiber.StatusCreated, response.StatusCode)

	summaryResponse := doJSON(t, app, fiber.MethodGet, "/api/board-members/"+boardMemberID+"/summary", nil, boardCookie)
	require.Equal(t, fiber.StatusOK, summaryResponse.StatusCode)
	var summary budgetSummaryView
	decodeBody(t, summaryResponse, &summary)
	assert.Equal(t, "0.00", summary.Used, "PA records never touch the ledger")
}
