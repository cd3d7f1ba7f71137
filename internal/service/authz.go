package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/platform/logger"
	"github.com/plankhq/plank-api/internal/store"
)

// RequiredRole is the minimum relationship an actor must have with a board
// for an operation to proceed.
type RequiredRole int

const (
	// MemberOrOwner admits the board owner and any invited member. This is
	// the requirement for board reads and all column/task mutations.
	MemberOrOwner RequiredRole = iota

	// OwnerOnly admits the board owner alone: board deletion and invites.
	OwnerOnly
)

// AccessResolver is the authorization resolver: it maps (actor, board) to a
// role and enforces the operation's required role. It is a pure read with no
// side effects.
type AccessResolver struct {
	boards store.BoardStore
	logger *slog.Logger
}

// NewAccessResolver creates an AccessResolver backed by the given board store.
func NewAccessResolver(boards store.BoardStore, log *slog.Logger) *AccessResolver {
	if boards == nil {
		panic("boards store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &AccessResolver{
		boards: boards,
		logger: log.With(slog.String("component", "access_resolver")),
	}
}

// Resolve loads the board and the actor's role and checks it against the
// required role. Fail-closed policy: an existing board on which the actor has
// no role is surfaced as ErrBoardNotFound, identically to an absent board, so
// existence is never disclosed to non-participants. A member attempting an
// OwnerOnly operation gets ErrNotBoardOwner, since a member already knows the
// board exists.
func (r *AccessResolver) Resolve(
	ctx context.Context,
	actorID, boardID uuid.UUID,
	required RequiredRole,
) (*store.BoardAccess, error) {
	access, err := r.boards.GetAccess(ctx, boardID, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, mapStoreError(err, "resolve board access", ErrBoardNotFound)
	}

	log := logger.FromContextOrDefault(ctx, r.logger)

	switch access.Role {
	case domain.RoleNone:
		log.Info("access denied, surfacing as not found",
			slog.String("board_id", boardID.String()),
			slog.String("actor_id", actorID.String()))
		return nil, ErrBoardNotFound

	case domain.RoleMember:
		if required == OwnerOnly {
			log.Info("owner-only operation attempted by member",
				slog.String("board_id", boardID.String()),
				slog.String("actor_id", actorID.String()))
			return nil, ErrNotBoardOwner
		}
	}

	return access, nil
}
