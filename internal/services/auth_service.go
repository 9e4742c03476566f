package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and a
	// deactivated account alike, so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
)

type AuthUserRepository interface {
	// FindByEmail matches the stored email exactly, case included.
	FindByEmail(email string) (models.User, error)
	FindByID(userID string) (models.User, error)
	StampLastLogin(userID string, at time.Time) error
}

type AuthBoardMemberRepository interface {
	FindByUserID(userID string) (models.BoardMember, error)
	AssignedBoardMemberIDs(secretaryUserID string) ([]string, error)
}

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(sessionID string) (models.Session, error)
	DeleteByID(sessionID string) error
	DeleteByUserID(userID string) error
}

// AuthService owns the session lifecycle: credential checks, session
// construction with role-specific scope fields, and the login/logout audit
// entries.
type AuthService struct {
	users        AuthUserRepository
	boardMembers AuthBoardMemberRepository
	sessions     SessionRepository
	activity     *ActivityService
}

func NewAuthService(users AuthUserRepository, boardMembers AuthBoardMemberRepository, sessions SessionRepository, activity *ActivityService) *AuthService {
	return &AuthService{
		users:        users,
		boardMembers: boardMembers,
		sessions:     sessions,
		activity:     activity,
	}
}

// Login validates credentials and opens the sole active session for the
// user. On success it stamps last_login and appends one login audit entry.
func (service *AuthService) Login(email string, password string, now time.Time) (models.Session, error) {
	user, err := service.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, ErrInvalidCredentials
		}
		return models.Session{}, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.Session{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.Session{}, ErrInvalidCredentials
	}

	session := models.Session{
		UserID:     user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
		LoggedInAt: now,
	}

	switch user.Role {
	case models.RoleBoardMember:
		member, err := service.boardMembers.FindByUserID(user.ID)
		if err != nil {
			return models.Session{}, fmt.Errorf("resolve board member for user %s: %w", user.ID, err)
		}
		session.BoardMemberID = member.ID
	case models.RoleSecretary:
		assigned, err := service.boardMembers.AssignedBoardMemberIDs(user.ID)
		if err != nil {
			return models.Session{}, fmt.Errorf("resolve assignments for user %s: %w", user.ID, err)
		}
		session.AssignedBoardMemberIDs = assigned
	}

	// A new login replaces any previous session for the same user.
	if err := service.sessions.DeleteByUserID(user.ID); err != nil {
		return models.Session{}, fmt.Errorf("clear previous sessions: %w", err)
	}
	if err := service.sessions.Create(&session); err != nil {
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}

	if err := service.users.StampLastLogin(user.ID, now); err != nil {
		return models.Session{}, fmt.Errorf("stamp last login: %w", err)
	}

	if _, err := service.activity.Append(session, now, "Signed in", models.ActionTypeLogin, models.RecordTypeSession, session.ID, ""); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// Logout closes the session and writes the logout audit entry. It is a
// no-op when the session no longer exists.
func (service *AuthService) Logout(sessionID string, now time.Time) error {
	session, err := service.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}

	if _, err := service.activity.Append(session, now, "Signed out", models.ActionTypeLogout, models.RecordTypeSession, session.ID, ""); err != nil {
		return err
	}
	if err := service.sessions.DeleteByID(session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CurrentSession resolves a session ID from a request cookie back to the
// authoritative session record.
func (service *AuthService) CurrentSession(sessionID string) (models.Session, error) {
	if sessionID == "" {
		return models.Session{}, ErrUnauthenticated
	}
	session, err := service.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, ErrUnauthenticated
		}
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

// HasRole is a pure projection used by handlers for rendering decisions.
func HasRole(session models.Session, role string) bool {
	return session.Role == role
}
