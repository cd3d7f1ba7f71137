package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors. All wrap ErrValidation.
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)

	// ErrTaskColumnIDEmpty is returned when a task's column ID is empty or nil.
	ErrTaskColumnIDEmpty = fmt.Errorf("%w: task column ID cannot be empty", ErrValidation)

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
)

// TaskPriority is the urgency classification of a task.
type TaskPriority string

// Valid task priorities. New tasks default to PriorityLow.
const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether p is one of the defined priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the leaf work item of a board. Position is a sparse integer rank
// unique-on-append within its column, with creation time as the stable
// secondary sort when ranks collide after moves.
type Task struct {
	ID        uuid.UUID    `json:"id"`
	ColumnID  uuid.UUID    `json:"column_id"`
	Title     string       `json:"title"`
	Content   *string      `json:"content,omitempty"`
	Priority  TaskPriority `json:"priority"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewTask creates a new Task in columnID. An empty priority defaults to
// PriorityLow. The position is assigned by the store at insert time.
func NewTask(columnID uuid.UUID, title string, priority TaskPriority) (*Task, error) {
	if priority == "" {
		priority = PriorityLow
	}

	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		ColumnID:  columnID,
		Title:     strings.TrimSpace(title),
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.ColumnID == uuid.Nil {
		return ErrTaskColumnIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}

	return nil
}
