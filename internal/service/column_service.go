package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/realtime"
	"github.com/plankhq/plank-api/internal/store"
)

// ColumnService orchestrates column mutations. Columns have no events of
// their own; structural changes are announced to the board channel as
// board-updated.
type ColumnService struct {
	columns store.ColumnStore
	authz   *AccessResolver
	hub     EventPublisher
	logger  *slog.Logger
}

// NewColumnService creates a ColumnService.
func NewColumnService(
	columns store.ColumnStore,
	authz *AccessResolver,
	hub EventPublisher,
	log *slog.Logger,
) *ColumnService {
	if columns == nil || authz == nil || hub == nil {
		panic("dependencies cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ColumnService{
		columns: columns,
		authz:   authz,
		hub:     hub,
		logger:  log.With(slog.String("component", "column_service")),
	}
}

// CreateColumn appends a column to the board. Requires MemberOrOwner. The
// store assigns the rank atomically: max sibling rank plus one, or zero on an
// empty board.
func (s *ColumnService) CreateColumn(
	ctx context.Context,
	actorID, boardID uuid.UUID,
	title string,
) (*domain.Column, error) {
	if _, err := s.authz.Resolve(ctx, actorID, boardID, MemberOrOwner); err != nil {
		return nil, err
	}

	column, err := domain.NewColumn(boardID, title)
	if err != nil {
		return nil, err
	}

	if err := s.columns.Create(ctx, column); err != nil {
		return nil, mapStoreError(err, "create column", ErrBoardNotFound)
	}

	s.hub.Publish(ctx, realtime.BoardUpdated(boardID))

	return column, nil
}

// DeleteColumn removes a column and, by cascade, its tasks. Requires
// MemberOrOwner on the column's board. A column on a board the actor cannot
// see surfaces as ErrColumnNotFound, never disclosing its existence.
func (s *ColumnService) DeleteColumn(ctx context.Context, actorID, columnID uuid.UUID) error {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return mapStoreError(err, "load column", ErrColumnNotFound)
	}

	if _, err := s.authz.Resolve(ctx, actorID, column.BoardID, MemberOrOwner); err != nil {
		if errors.Is(err, ErrBoardNotFound) {
			return ErrColumnNotFound
		}
		return err
	}

	if err := s.columns.Delete(ctx, columnID); err != nil {
		return mapStoreError(err, "delete column", ErrColumnNotFound)
	}

	s.hub.Publish(ctx, realtime.BoardUpdated(column.BoardID))

	return nil
}
