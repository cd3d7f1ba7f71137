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

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of store.TaskStore.
// If log is nil, the default logger is used.
func NewTaskStore(db *sql.DB, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
// Appends to the same column are serialized by a row lock on the parent, so
// each concurrent create computes MAX against the previous committed append
// and gets a distinct rank.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// The MAX subquery below sees rows committed by whoever held this
		// lock before us, because the INSERT takes its snapshot after the
		// lock is acquired.
		var columnID uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM columns WHERE id = $1 FOR UPDATE`,
			task.ColumnID,
		).Scan(&columnID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrColumnNotFound
			}
			return err
		}

		query := `
			INSERT INTO tasks (id, column_id, title, content, priority, position, created_at, updated_at)
			SELECT $1, $2, $3, $4, $5, COALESCE(MAX(position) + 1, 0), $6, $7
			FROM tasks
			WHERE column_id = $2
			RETURNING position
		`
		return tx.QueryRowContext(
			ctx,
			query,
			task.ID,
			task.ColumnID,
			task.Title,
			task.Content,
			string(task.Priority),
			task.CreatedAt,
			task.UpdatedAt,
		).Scan(&task.Position)
	})

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("column_id", task.ColumnID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("column_id", task.ColumnID.String()),
		slog.Int("position", task.Position))
	return nil
}

const taskColumns = `id, column_id, title, content, priority, position, created_at, updated_at`

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// ListByBoard implements store.TaskStore.ListByBoard.
func (s *TaskStore) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error) {
	query := `
		SELECT t.id, t.column_id, t.title, t.content, t.priority, t.position, t.created_at, t.updated_at
		FROM tasks t
		JOIN columns c ON c.id = t.column_id
		WHERE c.board_id = $1
		ORDER BY t.column_id, t.position, t.created_at, t.id
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		var priority string
		if err := rows.Scan(
			&task.ID,
			&task.ColumnID,
			&task.Title,
			&task.Content,
			&priority,
			&task.Position,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		task.Priority = domain.TaskPriority(priority)
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update.
// Re-parenting and repositioning happen in the same statement; siblings keep
// their ranks.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET column_id = $2, title = $3, content = $4, priority = $5, position = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.ColumnID,
		task.Title,
		task.Content,
		string(task.Priority),
		task.Position,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("column_id", task.ColumnID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()))
	return nil
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	var priority string
	err := row.Scan(
		&task.ID,
		&task.ColumnID,
		&task.Title,
		&task.Content,
		&priority,
		&task.Position,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Priority = domain.TaskPriority(priority)
	return &task, nil
}
