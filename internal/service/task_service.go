package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/realtime"
	"github.com/plankhq/plank-api/internal/store"
)

// TaskPatch is the presence-tracked partial field set accepted by UpdateTask.
// A nil pointer means "leave the field untouched"; a non-nil pointer applies
// the value, so clearing content means supplying an empty string. ColumnID
// and Position may be combined to move and reposition in one call.
type TaskPatch struct {
	Title    *string
	Content  *string
	Priority *domain.TaskPriority
	ColumnID *uuid.UUID
	Position *int
}

// TaskService orchestrates task mutations and publishes task events to the
// owning board's channel.
type TaskService struct {
	tasks   store.TaskStore
	columns store.ColumnStore
	authz   *AccessResolver
	hub     EventPublisher
	logger  *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	columns store.ColumnStore,
	authz *AccessResolver,
	hub EventPublisher,
	log *slog.Logger,
) *TaskService {
	if tasks == nil || columns == nil || authz == nil || hub == nil {
		panic("dependencies cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskService{
		tasks:   tasks,
		columns: columns,
		authz:   authz,
		hub:     hub,
		logger:  log.With(slog.String("component", "task_service")),
	}
}

// resolveColumn loads the column and checks the actor's access to its board.
// Any failure surfaces as notFound so inaccessible columns look absent.
func (s *TaskService) resolveColumn(
	ctx context.Context,
	actorID, columnID uuid.UUID,
	notFound error,
) (*domain.Column, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, mapStoreError(err, "load column", notFound)
	}

	if _, err := s.authz.Resolve(ctx, actorID, column.BoardID, MemberOrOwner); err != nil {
		if errors.Is(err, ErrBoardNotFound) {
			return nil, notFound
		}
		return nil, err
	}

	return column, nil
}

// CreateTask appends a task to the column with the given title and priority
// (LOW when empty). Requires MemberOrOwner on the column's board. Publishes
// task:created to the board channel.
func (s *TaskService) CreateTask(
	ctx context.Context,
	actorID, columnID uuid.UUID,
	title string,
	priority domain.TaskPriority,
) (*domain.Task, error) {
	column, err := s.resolveColumn(ctx, actorID, columnID, ErrColumnNotFound)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(columnID, title, priority)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, mapStoreError(err, "create task", ErrColumnNotFound)
	}

	s.hub.Publish(ctx, realtime.TaskCreated(column.BoardID, task))

	return task, nil
}

// UpdateTask applies a partial patch to the task: title, content, priority,
// column and position, in any combination. Re-parenting via ColumnID is
// restricted to columns of the same board and persists together with the
// position in one atomic write. Publishes task:updated to the board channel.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	actorID, taskID uuid.UUID,
	patch TaskPatch,
) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, mapStoreError(err, "load task", ErrTaskNotFound)
	}

	column, err := s.resolveColumn(ctx, actorID, task.ColumnID, ErrTaskNotFound)
	if err != nil {
		return nil, err
	}
	boardID := column.BoardID

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		task.Content = patch.Content
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.ColumnID != nil && *patch.ColumnID != task.ColumnID {
		target, err := s.columns.GetByID(ctx, *patch.ColumnID)
		if err != nil {
			return nil, mapStoreError(err, "load target column", ErrColumnNotFound)
		}
		// Tasks move between columns of one board, never across boards.
		if target.BoardID != boardID {
			return nil, ErrColumnNotFound
		}
		task.ColumnID = target.ID
	}
	if patch.Position != nil {
		task.Position = *patch.Position
	}

	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, mapStoreError(err, "update task", ErrTaskNotFound)
	}

	s.hub.Publish(ctx, realtime.TaskUpdated(boardID, task))

	return task, nil
}

// DeleteTask removes a task. Requires MemberOrOwner on the owning board.
// Publishes task:deleted carrying the task id to the board channel.
func (s *TaskService) DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return mapStoreError(err, "load task", ErrTaskNotFound)
	}

	column, err := s.resolveColumn(ctx, actorID, task.ColumnID, ErrTaskNotFound)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return mapStoreError(err, "delete task", ErrTaskNotFound)
	}

	s.hub.Publish(ctx, realtime.TaskDeleted(column.BoardID, taskID))

	return nil
}
