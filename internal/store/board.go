package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
)

// BoardAccess is the resolved relationship between an actor and a board,
// loaded in a single query path so authorization never needs a second trip.
type BoardAccess struct {
	Board *domain.Board
	Role  domain.BoardRole
}

// BoardStore defines the interface for board and membership persistence.
type BoardStore interface {
	// Create saves a new board to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, board *domain.Board) error

	// GetAccess loads the board together with the actor's resolved role.
	// Returns ErrBoardNotFound if the board row itself is absent; an existing
	// board with no relationship yields Role == domain.RoleNone, and the
	// caller decides whether that is surfaced as not-found.
	GetAccess(ctx context.Context, boardID, actorID uuid.UUID) (*BoardAccess, error)

	// ListForUser returns every board the user owns or is a member of,
	// most recently updated first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Board, error)

	// Delete removes a board. Columns, tasks and memberships are removed by
	// the store's referential-integrity cascade, atomically from the
	// reader's point of view.
	// Returns ErrBoardNotFound if the board does not exist.
	Delete(ctx context.Context, boardID uuid.UUID) error

	// AddMember records a membership grant.
	// Returns ErrMemberExists if the pair already exists and ErrInvalidEntity
	// if the board or user is gone.
	AddMember(ctx context.Context, member *domain.BoardMember) error

	// ListMembers returns the user IDs of all non-owner members of a board.
	ListMembers(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
}
