package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Board-specific validation errors. All wrap ErrValidation.
var (
	// ErrBoardIDEmpty is returned when a board ID is empty or nil.
	ErrBoardIDEmpty = fmt.Errorf("%w: board ID cannot be empty", ErrValidation)

	// ErrBoardOwnerEmpty is returned when a board's owner ID is empty or nil.
	ErrBoardOwnerEmpty = fmt.Errorf("%w: board owner ID cannot be empty", ErrValidation)

	// ErrBoardTitleEmpty is returned when a board's title is empty.
	ErrBoardTitleEmpty = fmt.Errorf("%w: board title cannot be empty", ErrValidation)
)

// Board is the top-level collaborative workspace. It is exclusively owned by
// one user; other users participate through BoardMember grants.
type Board struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBoard creates a new Board owned by ownerID. A nil description means the
// board has no description. Returns an error if validation fails.
func NewBoard(ownerID uuid.UUID, title string, description *string) (*Board, error) {
	now := time.Now().UTC()
	board := &Board{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Validate checks if the Board has valid data.
func (b *Board) Validate() error {
	if b.ID == uuid.Nil {
		return ErrBoardIDEmpty
	}

	if b.OwnerID == uuid.Nil {
		return ErrBoardOwnerEmpty
	}

	if b.Title == "" {
		return ErrBoardTitleEmpty
	}

	return nil
}

// BoardMember grants a non-owner user access to a board. The pair
// (BoardID, UserID) is unique and the grant lives only as long as the board.
type BoardMember struct {
	BoardID   uuid.UUID `json:"board_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBoardMember creates a membership grant for userID on boardID.
func NewBoardMember(boardID, userID uuid.UUID) (*BoardMember, error) {
	if boardID == uuid.Nil {
		return nil, ErrBoardIDEmpty
	}
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	return &BoardMember{
		BoardID:   boardID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// BoardRole is the resolved role of an actor on a board.
type BoardRole int

const (
	// RoleNone means the actor is neither the owner nor a member. Operations
	// fail closed: a RoleNone actor cannot learn that the board exists.
	RoleNone BoardRole = iota

	// RoleMember is a non-owner collaborator invited to the board.
	RoleMember

	// RoleOwner is the board's single owning user.
	RoleOwner
)

// String returns the role name for logging.
func (r BoardRole) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleMember:
		return "member"
	default:
		return "none"
	}
}
