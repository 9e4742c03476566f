package api

import (
	"time"

	"github.com/omspdev/omsp/internal/services"
)

// Handler carries the service layer plus the request-scoped concerns every
// endpoint shares: cookie signing, the office timezone and the login
// attempt limiter.
type Handler struct {
	auth          *services.AuthService
	users         *services.UserService
	assistance    *services.AssistanceService
	budget        *services.BudgetService
	frequency     *services.FrequencyService
	archive       *services.ArchiveService
	catalog       *services.CatalogService
	activity      *services.ActivityService
	boardMembers  services.BoardMemberRepository
	beneficiaries services.BeneficiaryRepository

	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	thresholds   services.TermThresholds
	loginLimiter *attemptLimiter

	// clock is swapped in tests.
	clock func() time.Time
}

type HandlerDeps struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Assistance    *services.AssistanceService
	Budget        *services.BudgetService
	Frequency     *services.FrequencyService
	Archive       *services.ArchiveService
	Catalog       *services.CatalogService
	Activity      *services.ActivityService
	BoardMembers  services.BoardMemberRepository
	Beneficiaries services.BeneficiaryRepository

	SecretKey    []byte
	Location     *time.Location
	CookieSecure bool
	Thresholds   services.TermThresholds
}

func NewHandler(deps HandlerDeps) *Handler {
	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		auth:          deps.Auth,
		users:         deps.Users,
		assistance:    deps.Assistance,
		budget:        deps.Budget,
		frequency:     deps.Frequency,
		archive:       deps.Archive,
		catalog:       deps.Catalog,
		activity:      deps.Activity,
		boardMembers:  deps.BoardMembers,
		beneficiaries: deps.Beneficiaries,
		secretKey:     deps.SecretKey,
		location:      location,
		cookieSecure:  deps.CookieSecure,
		thresholds:    deps.Thresholds,
		loginLimiter:  newAttemptLimiter(),
		clock:         time.Now,
	}
}

func (handler *Handler) now() time.Time {
	return handler.clock().In(handler.location)
}
