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

// ColumnStore implements the store.ColumnStore interface using a PostgreSQL
// database as the storage backend.
type ColumnStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewColumnStore creates a new PostgreSQL implementation of store.ColumnStore.
// If log is nil, the default logger is used.
func NewColumnStore(db *sql.DB, log *slog.Logger) *ColumnStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ColumnStore{
		db:     db,
		logger: log.With(slog.String("component", "column_store")),
	}
}

// Ensure ColumnStore implements store.ColumnStore
var _ store.ColumnStore = (*ColumnStore)(nil)

// Create implements store.ColumnStore.Create.
// Appends to the same board are serialized by a row lock on the parent, so
// each concurrent create computes MAX against the previous committed append
// and gets a distinct rank.
func (s *ColumnStore) Create(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		log.Warn("column validation failed during create",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// The MAX subquery below sees rows committed by whoever held this
		// lock before us, because the INSERT takes its snapshot after the
		// lock is acquired.
		var boardID uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM boards WHERE id = $1 FOR UPDATE`,
			column.BoardID,
		).Scan(&boardID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrBoardNotFound
			}
			return err
		}

		query := `
			INSERT INTO columns (id, board_id, title, position, created_at)
			SELECT $1, $2, $3, COALESCE(MAX(position) + 1, 0), $4
			FROM columns
			WHERE board_id = $2
			RETURNING position
		`
		return tx.QueryRowContext(
			ctx,
			query,
			column.ID,
			column.BoardID,
			column.Title,
			column.CreatedAt,
		).Scan(&column.Position)
	})

	if err != nil {
		log.Error("failed to create column",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()),
			slog.String("board_id", column.BoardID.String()))
		return MapError(err)
	}

	log.Info("column created",
		slog.String("column_id", column.ID.String()),
		slog.String("board_id", column.BoardID.String()),
		slog.Int("position", column.Position))
	return nil
}

const columnColumns = `id, board_id, title, position, created_at`

// GetByID implements store.ColumnStore.GetByID.
func (s *ColumnStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE id = $1`

	var column domain.Column
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&column.ID,
		&column.BoardID,
		&column.Title,
		&column.Position,
		&column.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrColumnNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get column",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return nil, MapError(err)
	}

	return &column, nil
}

// ListByBoard implements store.ColumnStore.ListByBoard.
// Creation time and ID break ties between equal positions so the rendered
// order stays stable.
func (s *ColumnStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error) {
	query := `
		SELECT ` + columnColumns + `
		FROM columns
		WHERE board_id = $1
		ORDER BY position, created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list columns",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	columns := make([]domain.Column, 0)
	for rows.Next() {
		var column domain.Column
		if err := rows.Scan(
			&column.ID,
			&column.BoardID,
			&column.Title,
			&column.Position,
			&column.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		columns = append(columns, column)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return columns, nil
}

// Delete implements store.ColumnStore.Delete.
func (s *ColumnStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM columns WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete column",
			slog.String("error", err.Error()),
			slog.String("column_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrColumnNotFound); err != nil {
		return err
	}

	log.Info("column deleted",
		slog.String("column_id", id.String()))
	return nil
}
