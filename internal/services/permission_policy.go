package services

import (
	"errors"
	"time"

	"github.com/omspdev/omsp/internal/models"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrTermReadOnly     = errors.New("term is read-only")
)

// Action enumerates every gated operation. The permission matrix below is
// keyed by action and role; handlers and services consult it through
// Authorize and never hard-code role checks.
type Action int

const (
	ActionCreateAssistance Action = iota
	ActionEditAssistance
	ActionViewAssistance
	ActionSetFAStatus
	ActionManageCategories
	ActionManageUsers
	ActionRequestArchive
	ActionApproveArchive
)

func (action Action) String() string {
	switch action {
	case ActionCreateAssistance:
		return "create_assistance"
	case ActionEditAssistance:
		return "edit_assistance"
	case ActionViewAssistance:
		return "view_assistance"
	case ActionSetFAStatus:
		return "set_fa_status"
	case ActionManageCategories:
		return "manage_categories"
	case ActionManageUsers:
		return "manage_users"
	case ActionRequestArchive:
		return "request_archive"
	case ActionApproveArchive:
		return "approve_archive"
	}
	return "unknown"
}

// PermissionInput carries everything a permission decision needs. Target is
// the board member the action operates on; it is nil for actions without a
// board-member scope (user and category management).
type PermissionInput struct {
	Session    models.Session
	Target     *models.BoardMember
	Now        time.Time
	Thresholds TermThresholds
}

type permissionRule func(PermissionInput) error

// permissionMatrix mirrors the role table from the office's procedures:
// rows are actions, columns are roles. A missing role entry means denied.
var permissionMatrix = map[Action]map[string]permissionRule{
	ActionCreateAssistance: {
		models.RoleSecretary:   chain(requireAssignedTarget, requireWritableTarget),
		models.RoleBoardMember: chain(requireOwnTarget, requireWritableTarget),
	},
	ActionEditAssistance: {
		models.RoleSecretary:   chain(requireAssignedTarget, requireWritableTarget),
		models.RoleBoardMember: chain(requireOwnTarget, requireWritableTarget),
	},
	ActionViewAssistance: {
		models.RoleSysadmin:    allow,
		models.RoleSecretary:   requireAssignedTarget,
		models.RoleBoardMember: requireOwnTarget,
	},
	ActionSetFAStatus: {
		models.RoleSysadmin:  requireWritableTarget,
		models.RoleSecretary: chain(requireAssignedTarget, requireWritableTarget),
	},
	ActionManageCategories: {
		models.RoleSysadmin:  allow,
		models.RoleSecretary: allow,
	},
	ActionManageUsers: {
		models.RoleSysadmin: allow,
	},
	ActionRequestArchive: {
		models.RoleBoardMember: chain(requireOwnTarget, requireEndedTarget),
	},
	ActionApproveArchive: {
		models.RoleSysadmin: allow,
	},
}

// Authorize checks the action against the permission matrix. It returns
// ErrPermissionDenied when the role or scope does not allow the action and
// ErrTermReadOnly when the only obstacle is the target's read-only state.
func Authorize(input PermissionInput, action Action) error {
	roleRules, known := permissionMatrix[action]
	if !known {
		return ErrPermissionDenied
	}
	rule, allowed := roleRules[input.Session.Role]
	if !allowed {
		return ErrPermissionDenied
	}
	return rule(input)
}

// Allowed is the boolean projection of Authorize, for rendering decisions.
func Allowed(input PermissionInput, action Action) bool {
	return Authorize(input, action) == nil
}

func allow(PermissionInput) error {
	return nil
}

func chain(rules ...permissionRule) permissionRule {
	return func(input PermissionInput) error {
		for _, rule := range rules {
			if err := rule(input); err != nil {
				return err
			}
		}
		return nil
	}
}

func requireOwnTarget(input PermissionInput) error {
	if input.Target == nil || input.Session.BoardMemberID == "" {
		return ErrPermissionDenied
	}
	if input.Session.BoardMemberID != input.Target.ID {
		return ErrPermissionDenied
	}
	return nil
}

func requireAssignedTarget(input PermissionInput) error {
	if input.Target == nil || !input.Session.IsAssignedTo(input.Target.ID) {
		return ErrPermissionDenied
	}
	return nil
}

// requireWritableTarget refuses mutations once the target board member is
// read-only. This applies to every role acting on records scoped to that
// member; only archive approval bypasses it.
func requireWritableTarget(input PermissionInput) error {
	if input.Target == nil {
		return ErrPermissionDenied
	}
	if IsReadOnly(input.Now, *input.Target) {
		return ErrTermReadOnly
	}
	return nil
}

func requireEndedTarget(input PermissionInput) error {
	if input.Target == nil {
		return ErrPermissionDenied
	}
	state := BoardMemberTermState(input.Now, *input.Target, input.Thresholds)
	if state != TermEnded && state != TermArchiveRequested {
		return ErrPermissionDenied
	}
	return nil
}
