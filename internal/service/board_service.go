package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/platform/logger"
	"github.com/plankhq/plank-api/internal/realtime"
	"github.com/plankhq/plank-api/internal/store"
)

// BoardListCache is the read-through cache for the per-user board listing.
// Implementations must be best-effort: failures degrade to misses or skipped
// writes and never propagate.
type BoardListCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]domain.Board, bool)
	Set(ctx context.Context, userID uuid.UUID, boards []domain.Board)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// EventPublisher delivers mutation events to sessions joined to a board
// channel. Delivery is best-effort and publishing never fails the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event realtime.Event)
}

// BoardDetail is a board with its columns and their tasks nested in rank
// order, plus the ids of its non-owner members.
type BoardDetail struct {
	domain.Board
	Columns []ColumnDetail `json:"columns"`
	Members []uuid.UUID    `json:"members"`
}

// ColumnDetail is a column with its tasks nested in rank order.
type ColumnDetail struct {
	domain.Column
	Tasks []domain.Task `json:"tasks"`
}

// BoardService orchestrates board-level operations: create, list, read,
// delete, invite. Every write runs authorize, persist, invalidate, publish.
type BoardService struct {
	boards  store.BoardStore
	columns store.ColumnStore
	tasks   store.TaskStore
	users   store.UserStore
	authz   *AccessResolver
	cache   BoardListCache
	hub     EventPublisher
	logger  *slog.Logger
}

// NewBoardService creates a BoardService. All dependencies are required
// except log, which defaults to the process logger.
func NewBoardService(
	boards store.BoardStore,
	columns store.ColumnStore,
	tasks store.TaskStore,
	users store.UserStore,
	authz *AccessResolver,
	cache BoardListCache,
	hub EventPublisher,
	log *slog.Logger,
) *BoardService {
	if boards == nil || columns == nil || tasks == nil || users == nil {
		panic("stores cannot be nil")
	}
	if authz == nil {
		panic("access resolver cannot be nil")
	}
	if cache == nil || hub == nil {
		panic("cache and hub cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &BoardService{
		boards:  boards,
		columns: columns,
		tasks:   tasks,
		users:   users,
		authz:   authz,
		cache:   cache,
		hub:     hub,
		logger:  log.With(slog.String("component", "board_service")),
	}
}

// CreateBoard creates a board owned by the actor and invalidates the actor's
// cached listing so the next read reflects it.
func (s *BoardService) CreateBoard(
	ctx context.Context,
	actorID uuid.UUID,
	title string,
	description *string,
) (*domain.Board, error) {
	board, err := domain.NewBoard(actorID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.boards.Create(ctx, board); err != nil {
		return nil, mapStoreError(err, "create board", ErrUserNotFound)
	}

	// Invalidation is best-effort; the durable write already succeeded.
	s.cache.Invalidate(ctx, actorID)

	return board, nil
}

// ListBoards returns every board the actor owns or is a member of, most
// recently updated first. The listing is served read-through: cache hit wins,
// a miss recomputes from the store and repopulates the actor's key.
func (s *BoardService) ListBoards(ctx context.Context, actorID uuid.UUID) ([]domain.Board, error) {
	if boards, ok := s.cache.Get(ctx, actorID); ok {
		return boards, nil
	}

	boards, err := s.boards.ListForUser(ctx, actorID)
	if err != nil {
		return nil, mapStoreError(err, "list boards", ErrUserNotFound)
	}

	s.cache.Set(ctx, actorID, boards)

	return boards, nil
}

// GetBoard returns the board with columns and tasks nested in rank order.
// Requires MemberOrOwner; non-participants get ErrBoardNotFound even when the
// board exists.
func (s *BoardService) GetBoard(ctx context.Context, actorID, boardID uuid.UUID) (*BoardDetail, error) {
	access, err := s.authz.Resolve(ctx, actorID, boardID, MemberOrOwner)
	if err != nil {
		return nil, err
	}

	columns, err := s.columns.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, mapStoreError(err, "list board columns", ErrBoardNotFound)
	}

	tasks, err := s.tasks.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, mapStoreError(err, "list board tasks", ErrBoardNotFound)
	}

	members, err := s.boards.ListMembers(ctx, boardID)
	if err != nil {
		return nil, mapStoreError(err, "list board members", ErrBoardNotFound)
	}

	tasksByColumn := make(map[uuid.UUID][]domain.Task, len(columns))
	for _, task := range tasks {
		tasksByColumn[task.ColumnID] = append(tasksByColumn[task.ColumnID], task)
	}

	detail := &BoardDetail{
		Board:   *access.Board,
		Columns: make([]ColumnDetail, 0, len(columns)),
		Members: members,
	}
	for _, column := range columns {
		columnTasks := tasksByColumn[column.ID]
		if columnTasks == nil {
			columnTasks = make([]domain.Task, 0)
		}
		detail.Columns = append(detail.Columns, ColumnDetail{
			Column: column,
			Tasks:  columnTasks,
		})
	}

	return detail, nil
}

// DeleteBoard removes the board and, by cascade at the store, its columns,
// tasks and memberships. OwnerOnly. The owner's cached listing is
// invalidated and board-updated is published to the board's channel.
func (s *BoardService) DeleteBoard(ctx context.Context, actorID, boardID uuid.UUID) error {
	if _, err := s.authz.Resolve(ctx, actorID, boardID, OwnerOnly); err != nil {
		return err
	}

	if err := s.boards.Delete(ctx, boardID); err != nil {
		return mapStoreError(err, "delete board", ErrBoardNotFound)
	}

	s.cache.Invalidate(ctx, actorID)
	s.hub.Publish(ctx, realtime.BoardUpdated(boardID))

	return nil
}

// InviteMember grants membership to the user registered under inviteeEmail.
// OwnerOnly. Fails with ErrUserNotFound for unknown emails, ErrAlreadyOwner
// when the owner invites themselves and ErrAlreadyMember for repeats.
// Returns the invited user.
func (s *BoardService) InviteMember(
	ctx context.Context,
	actorID, boardID uuid.UUID,
	inviteeEmail string,
) (*domain.User, error) {
	if _, err := s.authz.Resolve(ctx, actorID, boardID, OwnerOnly); err != nil {
		return nil, err
	}

	invitee, err := s.users.GetByEmail(ctx, inviteeEmail)
	if err != nil {
		return nil, mapStoreError(err, "look up invitee", ErrUserNotFound)
	}

	if invitee.ID == actorID {
		return nil, ErrAlreadyOwner
	}

	member, err := domain.NewBoardMember(boardID, invitee.ID)
	if err != nil {
		return nil, err
	}

	if err := s.boards.AddMember(ctx, member); err != nil {
		if errors.Is(err, store.ErrMemberExists) {
			return nil, ErrAlreadyMember
		}
		return nil, mapStoreError(err, "add board member", ErrBoardNotFound)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("member invited",
		slog.String("board_id", boardID.String()),
		slog.String("invitee_id", invitee.ID.String()))

	return invitee, nil
}
