package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omspdev/omsp/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken   = errors.New("email already exists")
	ErrInvalidRole  = errors.New("invalid role")
	ErrMissingTerm  = errors.New("board member requires term dates")
	ErrInvalidTerm  = errors.New("term end must be after term start")
	ErrInvalidInput = errors.New("invalid input")
)

type UserAdminRepository interface {
	Create(user *models.User) error
	ExistsByEmail(email string) (bool, error)
	FindByID(userID string) (models.User, error)
	SetActive(userID string, active bool) error
	ListAll() ([]models.User, error)
}

type BoardMemberAdminRepository interface {
	CreateBoardMember(member *models.BoardMember) error
	CreateAssignment(secretaryUserID string, boardMemberID string) error
	RemoveAssignment(secretaryUserID string, boardMemberID string) error
}

type NewUserInput struct {
	Email        string
	Password     string
	FullName     string
	Role         string
	DistrictName string
	TermStart    time.Time
	TermEnd      time.Time
}

// UserService is the administrator's provisioning surface: accounts, board
// member terms, secretary assignments, deactivation. Role is fixed at
// creation and never changed afterwards.
type UserService struct {
	users        UserAdminRepository
	boardMembers BoardMemberAdminRepository
	activity     *ActivityService
	thresholds   TermThresholds
}

func NewUserService(users UserAdminRepository, boardMembers BoardMemberAdminRepository, activity *ActivityService, thresholds TermThresholds) *UserService {
	return &UserService{users: users, boardMembers: boardMembers, activity: activity, thresholds: thresholds}
}

// CreateUser provisions an account, plus the board-member row when the role
// calls for one.
func (service *UserService) CreateUser(session models.Session, input NewUserInput, now time.Time) (models.User, error) {
	if err := Authorize(PermissionInput{Session: session, Now: now, Thresholds: service.thresholds}, ActionManageUsers); err != nil {
		return models.User{}, err
	}
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.FullName) == "" || input.Password == "" {
		return models.User{}, ErrInvalidInput
	}
	if !models.KnownRole(input.Role) {
		return models.User{}, ErrInvalidRole
	}
	if input.Role == models.RoleBoardMember {
		if input.TermStart.IsZero() || input.TermEnd.IsZero() {
			return models.User{}, ErrMissingTerm
		}
		if !input.TermEnd.After(input.TermStart) {
			return models.User{}, ErrInvalidTerm
		}
	}

	taken, err := service.users.ExistsByEmail(input.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(passwordHash),
		FullName:     input.FullName,
		Role:         input.Role,
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	if input.Role == models.RoleBoardMember {
		member := models.BoardMember{
			UserID:       user.ID,
			DistrictName: input.DistrictName,
			TermStart:    input.TermStart,
			TermEnd:      input.TermEnd,
			CreatedAt:    now,
		}
		if err := service.boardMembers.CreateBoardMember(&member); err != nil {
			return models.User{}, fmt.Errorf("create board member: %w", err)
		}
	}

	if _, err := service.activity.Append(session, now, "Provisioned account", models.ActionTypeCreate, models.RecordTypeUser, user.ID, user.Role); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// AssignSecretary links a secretary account to a board member. Sessions
// opened before the change keep their old assignment list until re-login.
func (service *UserService) AssignSecretary(session models.Session, secretaryUserID string, boardMemberID string, now time.Time) error {
	if err := Authorize(PermissionInput{Session: session, Now: now, Thresholds: service.thresholds}, ActionManageUsers); err != nil {
		return err
	}

	secretary, err := service.users.FindByID(secretaryUserID)
	if err != nil {
		return ErrNotFound
	}
	if secretary.Role != models.RoleSecretary {
		return ErrInvalidRole
	}

	if err := service.boardMembers.CreateAssignment(secretaryUserID, boardMemberID); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	_, err = service.activity.Append(session, now, "Assigned secretary to board member", models.ActionTypeUpdate, models.RecordTypeUser, secretaryUserID, boardMemberID)
	return err
}

// UnassignSecretary removes a secretary/board-member link.
func (service *UserService) UnassignSecretary(session models.Session, secretaryUserID string, boardMemberID string, now time.Time) error {
	if err := Authorize(PermissionInput{Session: session, Now: now, Thresholds: service.thresholds}, ActionManageUsers); err != nil {
		return err
	}
	if err := service.boardMembers.RemoveAssignment(secretaryUserID, boardMemberID); err != nil {
		return fmt.Errorf("remove assignment: %w", err)
	}
	_, err := service.activity.Append(session, now, "Unassigned secretary from board member", models.ActionTypeUpdate, models.RecordTypeUser, secretaryUserID, boardMemberID)
	return err
}

// SetUserActive toggles whether an account can sign in. Inactive accounts
// fail login exactly like wrong credentials.
func (service *UserService) SetUserActive(session models.Session, userID string, active bool, now time.Time) error {
	if err := Authorize(PermissionInput{Session: session, Now: now, Thresholds: service.thresholds}, ActionManageUsers); err != nil {
		return err
	}
	if err := service.users.SetActive(userID, active); err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	action := "Deactivated account"
	if active {
		action = "Reactivated account"
	}
	_, err := service.activity.Append(session, now, action, models.ActionTypeUpdate, models.RecordTypeUser, userID, "")
	return err
}

// ListUsers returns every account, administrator only.
func (service *UserService) ListUsers(session models.Session, now time.Time) ([]models.User, error) {
	if err := Authorize(PermissionInput{Session: session, Now: now, Thresholds: service.thresholds}, ActionManageUsers); err != nil {
		return nil, err
	}
	return service.users.ListAll()
}
