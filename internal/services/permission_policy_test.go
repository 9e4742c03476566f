package services

import (
	"errors"
	"testing"
	"time"

	"github.com/omspdev/omsp/internal/models"
)

func activeMember(id string) *models.BoardMember {
	return &models.BoardMember{
		ID:      id,
		TermEnd: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func endedMember(id string) *models.BoardMember {
	return &models.BoardMember{
		ID:      id,
		TermEnd: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func permInput(session models.Session, target *models.BoardMember) PermissionInput {
	return PermissionInput{
		Session:    session,
		Target:     target,
		Now:        time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
		Thresholds: DefaultTermThresholds(),
	}
}

func TestAuthorizeCreateAssistance(t *testing.T) {
	tests := []struct {
		name    string
		session models.Session
		target  *models.BoardMember
		wantErr error
	}{
		{
			name:    "sysadmin cannot create records",
			session: models.Session{Role: models.RoleSysadmin},
			target:  activeMember("bm-1"),
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "assigned secretary allowed",
			session: models.Session{Role: models.RoleSecretary, AssignedBoardMemberIDs: []string{"bm-1"}},
			target:  activeMember("bm-1"),
		},
		{
			name:    "unassigned secretary denied",
			session: models.Session{Role: models.RoleSecretary, AssignedBoardMemberIDs: []string{"bm-2"}},
			target:  activeMember("bm-1"),
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "secretary with no assignments denied",
			session: models.Session{Role: models.RoleSecretary},
			target:  activeMember("bm-1"),
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "assigned secretary blocked by ended term",
			session: models.Session{Role: models.RoleSecretary, AssignedBoardMemberIDs: []string{"bm-1"}},
			target:  endedMember("bm-1"),
			wantErr: ErrTermReadOnly,
		},
		{
			name:    "board member on own active term",
			session: models.Session{Role: models.RoleBoardMember, BoardMemberID: "bm-1"},
			target:  activeMember("bm-1"),
		},
		{
			name:    "board member on someone else's term",
			session: models.Session{Role: models.RoleBoardMember, BoardMemberID: "bm-2"},
			target:  activeMember("bm-1"),
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "board member after own term ended",
			session: models.Session{Role: models.RoleBoardMember, BoardMemberID: "bm-1"},
			target:  endedMember("bm-1"),
			wantErr: ErrTermReadOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(permInput(tt.session, tt.target), ActionCreateAssistance)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authorize() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeViewAssistance(t *testing.T) {
	target := activeMember("bm-1")

	if err := Authorize(permInput(models.Session{Role: models.RoleSysadmin}, target), ActionViewAssistance); err != nil {
		t.Fatalf("sysadmin view should be allowed, got %v", err)
	}

	secretary := models.Session{Role: models.RoleSecretary, AssignedBoardMemberIDs: []string{"bm-9"}}
	if err := Authorize(permInput(secretary, target), ActionViewAssistance); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("unassigned secretary view = %v, want denied", err)
	}

	// Viewing stays allowed after the term ends; only writes are blocked.
	owner := models.Session{Role: models.RoleBoardMember, BoardMemberID: "bm-1"}
	if err := Authorize(permInput(owner, endedMember("bm-1")), ActionViewAssistance); err != nil {
		t.Fatalf("owner view of ended term should be allowed, got %v", err)
	}
}

func TestAuthorizeSetFAStatus(t *testing.T) {
	if err := Authorize(permInput(models.Session{Role: models.RoleSysadmin}, activeMember("bm-1")), ActionSetFAStatus); err != nil {
		t.Fatalf("sysadmin status change should be allowed, got %v", err)
	}

	owner := models.Session{Role: models.RoleBoardMember, BoardMemberID: "bm-1"}
	if err := Authorize(permInput(owner, activeMember("bm-1")), ActionSetFAStatus); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("board member status change = %v, want denied", err)
	}

	if err := Authorize(permInput(models.Session{Role: models.RoleSysadmin}, endedMember("bm-1")), ActionSetFAStatus); !errors.Is(err, ErrTermReadOnly) {
		t.Fatalf("status change on ended term = %v, want read-only", err)
	}
}

func TestAuthorizeManagementActions(t *testing.T) {
	sysadmin := models.Session{Role: models.RoleSysadmin}
	secretary := models.Session{Role: models.RoleSecretary}
	boardMember := models.Session{Role: models.RoleBoardMember, BoardMemberID: "bm-1"}

	if err := Authorize(permInput(secretary, nil), ActionManageCategories); err != nil {
		t.Fatalf("secretary category management should be allowed, got %v", err)
	}
	if err := Authorize(permInput(boardMember, nil), ActionManageCategories); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("board member category management = %v, want denied", err)
	}
	if err := Authorize(permInput(secretary, nil), ActionManageUsers); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("secretary user management = %v, want denied", err)
	}
	if err := Authorize(permInput(sysadmin, nil), ActionManageUsers); err != nil {
		t.Fatalf("sysadmin user management should be allowed, got %v", err)
	}
}

func TestAuthorizeArchiveActions(t *testing.T) {
	owner := models.Session{Role: models.RoleBoardMember, BoardMemberID: "bm-1"}

	if err := Authorize(permInput(owner, activeMember("bm-1")), ActionRequestArchive); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("archive request before term end = %v, want denied", err)
	}
	if err := Authorize(permInput(owner, endedMember("bm-1")), ActionRequestArchive); err != nil {
		t.Fatalf("archive request after term end should be allowed, got %v", err)
	}

	if err := Authorize(permInput(models.Session{Role: models.RoleSysadmin}, endedMember("bm-1")), ActionApproveArchive); err != nil {
		t.Fatalf("sysadmin archive approval should be allowed, got %v", err)
	}
	if err := Authorize(permInput(owner, endedMember("bm-1")), ActionApproveArchive); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("board member archive approval = %v, want denied", err)
	}
}
