package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	boardMembers := api.Group("/board-members", handler.AuthRequired)
	boardMembers.Get("", handler.ListBoardMembers)
	boardMembers.Get("/:id", handler.GetBoardMember)
	boardMembers.Get("/:id/budget", handler.BudgetLedger)
	boardMembers.Get("/:id/summary", handler.DashboardSummary)
	boardMembers.Post("/:id/request-archive", handler.RequestArchive)
	boardMembers.Post("/:id/approve-archive", handler.ApproveArchive)

	fa := api.Group("/fa-records", handler.AuthRequired)
	fa.Get("", handler.ListFARecords)
	fa.Post("", handler.CreateFARecord)
	fa.Get("/:id", handler.GetFARecord)
	fa.Put("/:id", handler.UpdateFARecord)
	fa.Post("/:id/status", handler.SetFARecordStatus)
	fa.Delete("/:id", handler.DeleteFARecord)

	pa := api.Group("/pa-records", handler.AuthRequired)
	pa.Get("", handler.ListPARecords)
	pa.Post("", handler.CreatePARecord)
	pa.Put("/:id", handler.UpdatePARecord)
	pa.Delete("/:id", handler.DeletePARecord)

	beneficiaries := api.Group("/beneficiaries", handler.AuthRequired)
	beneficiaries.Get("", handler.ListBeneficiaries)
	beneficiaries.Post("", handler.CreateBeneficiary)

	caseTypes := api.Group("/fa-case-types", handler.AuthRequired)
	caseTypes.Get("", handler.ListFACaseTypes)
	caseTypes.Post("", handler.CreateFACaseType)

	paCategories := api.Group("/pa-categories", handler.AuthRequired)
	paCategories.Get("", handler.ListPACategories)
	paCategories.Post("", handler.CreatePACategory)

	users := api.Group("/users", handler.AuthRequired)
	users.Get("", handler.ListUsers)
	users.Post("", handler.CreateUser)
	users.Post("/:id/active", handler.SetUserActive)

	assignments := api.Group("/assignments", handler.AuthRequired)
	assignments.Post("", handler.AssignSecretary)
	assignments.Delete("", handler.UnassignSecretary)

	activity := api.Group("/activity", handler.AuthRequired)
	activity.Get("", handler.ListActivity)
}
