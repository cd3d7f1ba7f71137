package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Column-specific validation errors. All wrap ErrValidation.
var (
	// ErrColumnIDEmpty is returned when a column ID is empty or nil.
	ErrColumnIDEmpty = fmt.Errorf("%w: column ID cannot be empty", ErrValidation)

	// ErrColumnBoardIDEmpty is returned when a column's board ID is empty or nil.
	ErrColumnBoardIDEmpty = fmt.Errorf("%w: column board ID cannot be empty", ErrValidation)

	// ErrColumnTitleEmpty is returned when a column's title is empty.
	ErrColumnTitleEmpty = fmt.Errorf("%w: column title cannot be empty", ErrValidation)
)

// Column is an ordered sublist within a board. Position is a sparse integer
// rank: strictly increasing on append, gaps permitted, never renumbered when
// siblings move or disappear.
type Column struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// NewColumn creates a new Column on boardID. The position is assigned by the
// store at insert time, so it is left at its zero value here.
func NewColumn(boardID uuid.UUID, title string) (*Column, error) {
	column := &Column{
		ID:        uuid.New(),
		BoardID:   boardID,
		Title:     strings.TrimSpace(title),
		CreatedAt: time.Now().UTC(),
	}

	if err := column.Validate(); err != nil {
		return nil, err
	}

	return column, nil
}

// Validate checks if the Column has valid data.
func (c *Column) Validate() error {
	if c.ID == uuid.Nil {
		return ErrColumnIDEmpty
	}

	if c.BoardID == uuid.Nil {
		return ErrColumnBoardIDEmpty
	}

	if c.Title == "" {
		return ErrColumnTitleEmpty
	}

	return nil
}
