package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
)

// ColumnStore defines the interface for column persistence.
type ColumnStore interface {
	// Create saves a new column. The store assigns the column's position
	// atomically: max sibling position plus one, or zero for an empty board.
	// The assigned position is written back to column.Position.
	// Returns ErrInvalidEntity if the board does not exist.
	Create(ctx context.Context, column *domain.Column) error

	// GetByID retrieves a column by its unique ID.
	// Returns ErrColumnNotFound if the column does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)

	// ListByBoard returns the board's columns ordered by position ascending,
	// with creation time then ID as stable tiebreaks.
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error)

	// Delete removes a column; its tasks are removed by cascade.
	// Returns ErrColumnNotFound if the column does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
