package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/platform/logger"
	"github.com/plankhq/plank-api/internal/store"
)

// BoardStore implements the store.BoardStore interface using a PostgreSQL
// database as the storage backend. Board deletion relies on ON DELETE CASCADE
// to remove columns, tasks and memberships in the same statement.
type BoardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewBoardStore creates a new PostgreSQL implementation of store.BoardStore.
// If log is nil, the default logger is used.
func NewBoardStore(db store.DBTX, log *slog.Logger) *BoardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &BoardStore{
		db:     db,
		logger: log.With(slog.String("component", "board_store")),
	}
}

// Ensure BoardStore implements store.BoardStore
var _ store.BoardStore = (*BoardStore)(nil)

// Create implements store.BoardStore.Create.
func (s *BoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during create",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	query := `
		INSERT INTO boards (id, title, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		board.ID,
		board.Title,
		board.Description,
		board.OwnerID,
		board.CreatedAt,
		board.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()),
			slog.String("owner_id", board.OwnerID.String()))
		return MapError(err)
	}

	log.Info("board created",
		slog.String("board_id", board.ID.String()),
		slog.String("owner_id", board.OwnerID.String()))
	return nil
}

// GetAccess implements store.BoardStore.GetAccess.
// The board row and the actor's membership are loaded in one query so the
// authorization resolver never needs a second round trip.
func (s *BoardStore) GetAccess(
	ctx context.Context,
	boardID, actorID uuid.UUID,
) (*store.BoardAccess, error) {
	query := `
		SELECT b.id, b.title, b.description, b.owner_id, b.created_at, b.updated_at,
		       EXISTS (
		           SELECT 1 FROM board_members m
		           WHERE m.board_id = b.id AND m.user_id = $2
		       )
		FROM boards b
		WHERE b.id = $1
	`

	var board domain.Board
	var isMember bool
	err := s.db.QueryRowContext(ctx, query, boardID, actorID).Scan(
		&board.ID,
		&board.Title,
		&board.Description,
		&board.OwnerID,
		&board.CreatedAt,
		&board.UpdatedAt,
		&isMember,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBoardNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load board access",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, MapError(err)
	}

	role := domain.RoleNone
	switch {
	case board.OwnerID == actorID:
		role = domain.RoleOwner
	case isMember:
		role = domain.RoleMember
	}

	return &store.BoardAccess{Board: &board, Role: role}, nil
}

// ListForUser implements store.BoardStore.ListForUser.
func (s *BoardStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Board, error) {
	query := `
		SELECT b.id, b.title, b.description, b.owner_id, b.created_at, b.updated_at
		FROM boards b
		WHERE b.owner_id = $1
		   OR EXISTS (
		       SELECT 1 FROM board_members m
		       WHERE m.board_id = b.id AND m.user_id = $1
		   )
		ORDER BY b.updated_at DESC, b.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list boards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	boards := make([]domain.Board, 0)
	for rows.Next() {
		var board domain.Board
		if err := rows.Scan(
			&board.ID,
			&board.Title,
			&board.Description,
			&board.OwnerID,
			&board.CreatedAt,
			&board.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		boards = append(boards, board)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return boards, nil
}

// Delete implements store.BoardStore.Delete.
func (s *BoardStore) Delete(ctx context.Context, boardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		log.Error("failed to delete board",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBoardNotFound); err != nil {
		return err
	}

	log.Info("board deleted",
		slog.String("board_id", boardID.String()))
	return nil
}

// AddMember implements store.BoardStore.AddMember.
// Returns store.ErrMemberExists if the (board, user) pair already exists.
func (s *BoardStore) AddMember(ctx context.Context, member *domain.BoardMember) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO board_members (board_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, member.BoardID, member.UserID, member.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrMemberExists)
		}
		log.Error("failed to add board member",
			slog.String("error", err.Error()),
			slog.String("board_id", member.BoardID.String()),
			slog.String("user_id", member.UserID.String()))
		return MapError(err)
	}

	log.Info("board member added",
		slog.String("board_id", member.BoardID.String()),
		slog.String("user_id", member.UserID.String()))
	return nil
}

// ListMembers implements store.BoardStore.ListMembers.
func (s *BoardStore) ListMembers(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id FROM board_members
		WHERE board_id = $1
		ORDER BY created_at, user_id
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	members := make([]uuid.UUID, 0)
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, MapError(err)
		}
		members = append(members, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return members, nil
}
