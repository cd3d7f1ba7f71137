package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plankhq/plank-api/internal/realtime"
)

func TestBoardService_CreateBoard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	owner := f.addUser("owner@example.com", "Owner")

	// Warm the cache so creation has something to invalidate.
	_, err := f.boardSvc.ListBoards(ctx, owner.ID)
	require.NoError(t, err)

	desc := "Q3 planning"
	board, err := f.boardSvc.CreateBoard(ctx, owner.ID, "Roadmap", &desc)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", board.Title)
	assert.Equal(t, owner.ID, board.OwnerID)
	require.NotNil(t, board.Description)
	assert.Equal(t, desc, *board.Description)

	assert.Contains(t, f.cache.invalidated, owner.ID,
		"creation must invalidate the creator's cached listing")

	boards, err := f.boardSvc.ListBoards(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, board.ID, boards[0].ID)
}

func TestBoardService_ListBoards_ReadThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	owner := f.addUser("owner@example.com", "Owner")

	board, err := f.boardSvc.CreateBoard(ctx, owner.ID, "Roadmap", nil)
	require.NoError(t, err)

	// First read misses and populates the cache.
	boards, err := f.boardSvc.ListBoards(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, boards, 1)

	// Mutate the store behind the cache's back. A stale reply proves the
	// second read was served from the cache, not recomputed.
	f.db.mu.Lock()
	delete(f.db.boards, board.ID)
	f.db.mu.Unlock()

	boards, err = f.boardSvc.ListBoards(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, boards, 1, "second read should hit the cache")

	f.cache.Invalidate(ctx, owner.ID)

	boards, err = f.boardSvc.ListBoards(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, boards, "after invalidation the read recomputes from the store")
}

func TestBoardService_GetBoard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	owner := f.addUser("owner@example.com", "Owner")
	member := f.addUser("member@example.com", "Member")
	stranger := f.addUser("stranger@example.com", "Stranger")

	board, err := f.boardSvc.CreateBoard(ctx, owner.ID, "Roadmap", nil)
	require.NoError(t, err)
	_, err = f.boardSvc.InviteMember(ctx, owner.ID, board.ID, member.Email)
	require.NoError(t, err)

	todo, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, "To Do")
	require.NoError(t, err)
	done, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, "Done")
	require.NoError(t, err)

	first, err := f.taskSvc.CreateTask(ctx, owner.ID, todo.ID, "Write docs", "")
	require.NoError(t, err)
	second, err := f.taskSvc.CreateTask(ctx, owner.ID, todo.ID, "Review docs", "")
	require.NoError(t, err)

	t.Run("nests columns and tasks in rank order", func(t *testing.T) {
		detail, err := f.boardSvc.GetBoard(ctx, member.ID, board.ID)
		require.NoError(t, err)

		assert.Equal(t, board.ID, detail.Board.ID)
		assert.Equal(t, []uuid.UUID{member.ID}, detail.Members)

		require.Len(t, detail.Columns, 2)
		assert.Equal(t, todo.ID, detail.Columns[0].Column.ID)
		assert.Equal(t, done.ID, detail.Columns[1].Column.ID)

		require.Len(t, detail.Columns[0].Tasks, 2)
		assert.Equal(t, first.ID, detail.Columns[0].Tasks[0].ID)
		assert.Equal(t, second.ID, detail.Columns[0].Tasks[1].ID)
		assert.Empty(t, detail.Columns[1].Tasks)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := f.boardSvc.GetBoard(ctx, stranger.ID, board.ID)
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})
}

func TestBoardService_DeleteBoard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	owner := f.addUser("owner@example.com", "Owner")
	member := f.addUser("member@example.com", "Member")
	stranger := f.addUser("stranger@example.com", "Stranger")

	board, err := f.boardSvc.CreateBoard(ctx, owner.ID, "Roadmap", nil)
	require.NoError(t, err)
	_, err = f.boardSvc.InviteMember(ctx, owner.ID, board.ID, member.Email)
	require.NoError(t, err)
	column, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, "To Do")
	require.NoError(t, err)
	task, err := f.taskSvc.CreateTask(ctx, owner.ID, column.ID, "Write docs", "")
	require.NoError(t, err)

	err = f.boardSvc.DeleteBoard(ctx, member.ID, board.ID)
	assert.ErrorIs(t, err, ErrNotBoardOwner)

	err = f.boardSvc.DeleteBoard(ctx, stranger.ID, board.ID)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	err = f.boardSvc.DeleteBoard(ctx, owner.ID, board.ID)
	require.NoError(t, err)

	_, err = f.boardSvc.GetBoard(ctx, owner.ID, board.ID)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	// Cascade removed nested entities and memberships.
	f.db.mu.Lock()
	_, columnLives := f.db.columns[column.ID]
	_, taskLives := f.db.tasks[task.ID]
	_, membershipLives := f.db.members[board.ID]
	f.db.mu.Unlock()
	assert.False(t, columnLives)
	assert.False(t, taskLives)
	assert.False(t, membershipLives)

	events := f.pub.recorded()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, realtime.EventBoardUpdated, last.Name)
	assert.Equal(t, board.ID, last.BoardID)
}

func TestBoardService_InviteMember(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	owner := f.addUser("owner@example.com", "Owner")
	member := f.addUser("member@example.com", "Member")

	board, err := f.boardSvc.CreateBoard(ctx, owner.ID, "Roadmap", nil)
	require.NoError(t, err)

	t.Run("grants membership by email", func(t *testing.T) {
		invitee, err := f.boardSvc.InviteMember(ctx, owner.ID, board.ID, member.Email)
		require.NoError(t, err)
		assert.Equal(t, member.ID, invitee.ID)

		boards, err := f.boardSvc.ListBoards(ctx, member.ID)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, board.ID, boards[0].ID)
	})

	t.Run("repeat invite conflicts", func(t *testing.T) {
		_, err := f.boardSvc.InviteMember(ctx, owner.ID, board.ID, member.Email)
		assert.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("owner inviting themselves conflicts", func(t *testing.T) {
		_, err := f.boardSvc.InviteMember(ctx, owner.ID, board.ID, owner.Email)
		assert.ErrorIs(t, err, ErrAlreadyOwner)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.boardSvc.InviteMember(ctx, owner.ID, board.ID, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("member cannot invite", func(t *testing.T) {
		other := f.addUser("other@example.com", "Other")
		_, err := f.boardSvc.InviteMember(ctx, member.ID, board.ID, other.Email)
		assert.ErrorIs(t, err, ErrNotBoardOwner)
	})
}
