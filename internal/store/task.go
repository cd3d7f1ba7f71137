package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create saves a new task. The store assigns the task's position
	// atomically: max sibling position plus one, or zero for an empty column.
	// The assigned position is written back to task.Position.
	// Returns ErrInvalidEntity if the column does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByBoard returns all tasks on a board, grouped by column and ordered
	// by position ascending with creation time then ID as stable tiebreaks.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Task, error)

	// Update persists the task's mutable fields (title, content, priority,
	// column, position, updated_at) in a single statement. Reassigning the
	// column and the position together is one atomic write; siblings are
	// never renumbered.
	// Returns ErrTaskNotFound if the task does not exist and ErrInvalidEntity
	// if the target column is gone.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
