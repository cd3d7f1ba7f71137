package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewBoard(t *testing.T) {
	ownerID := uuid.New()
	desc := "sprint planning"

	board, err := NewBoard(ownerID, "Sprint", &desc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if board.ID == uuid.Nil {
		t.Error("Expected non-nil board ID")
	}

	if board.OwnerID != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID, board.OwnerID)
	}

	if board.Title != "Sprint" {
		t.Errorf("Expected title Sprint, got %s", board.Title)
	}

	if board.Description == nil || *board.Description != desc {
		t.Errorf("Expected description %q, got %v", desc, board.Description)
	}

	if board.CreatedAt.IsZero() || board.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Description is optional
	board, err = NewBoard(ownerID, "Backlog", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if board.Description != nil {
		t.Errorf("Expected nil description, got %v", board.Description)
	}

	// Empty title is rejected
	if _, err = NewBoard(ownerID, "   ", nil); err != ErrBoardTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrBoardTitleEmpty, err)
	}

	// Nil owner is rejected
	if _, err = NewBoard(uuid.Nil, "Sprint", nil); err != ErrBoardOwnerEmpty {
		t.Errorf("Expected error %v, got %v", ErrBoardOwnerEmpty, err)
	}
}

func TestNewBoardMember(t *testing.T) {
	boardID := uuid.New()
	userID := uuid.New()

	member, err := NewBoardMember(boardID, userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if member.BoardID != boardID || member.UserID != userID {
		t.Errorf("Unexpected member pair: %s/%s", member.BoardID, member.UserID)
	}

	if _, err = NewBoardMember(uuid.Nil, userID); err != ErrBoardIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrBoardIDEmpty, err)
	}

	if _, err = NewBoardMember(boardID, uuid.Nil); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}
}

func TestBoardRoleString(t *testing.T) {
	cases := map[BoardRole]string{
		RoleOwner:  "owner",
		RoleMember: "member",
		RoleNone:   "none",
	}
	for role, want := range cases {
		if got := role.String(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}
