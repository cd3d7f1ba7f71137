package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plankhq/plank-api/internal/realtime"
)

func TestColumnService_CreateColumn(t *testing.T) {
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

	t.Run("ranks accumulate from zero", func(t *testing.T) {
		for i, title := range []string{"To Do", "Doing", "Done"} {
			column, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, title)
			require.NoError(t, err)
			assert.Equal(t, i, column.Position)
			assert.Equal(t, board.ID, column.BoardID)
		}
	})

	t.Run("member may create", func(t *testing.T) {
		column, err := f.columnSvc.CreateColumn(ctx, member.ID, board.ID, "Blocked")
		require.NoError(t, err)
		assert.Equal(t, 3, column.Position)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := f.columnSvc.CreateColumn(ctx, stranger.ID, board.ID, "Nope")
		assert.ErrorIs(t, err, ErrBoardNotFound)
	})

	t.Run("publishes board-updated", func(t *testing.T) {
		events := f.pub.recorded()
		require.NotEmpty(t, events)
		last := events[len(events)-1]
		assert.Equal(t, realtime.EventBoardUpdated, last.Name)
		assert.Equal(t, board.ID, last.BoardID)
	})
}

func TestColumnService_DeleteColumn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture()
	owner := f.addUser("owner@example.com", "Owner")
	stranger := f.addUser("stranger@example.com", "Stranger")

	board, err := f.boardSvc.CreateBoard(ctx, owner.ID, "Roadmap", nil)
	require.NoError(t, err)
	column, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, "To Do")
	require.NoError(t, err)
	task, err := f.taskSvc.CreateTask(ctx, owner.ID, column.ID, "Write docs", "")
	require.NoError(t, err)

	t.Run("stranger sees the column as absent", func(t *testing.T) {
		err := f.columnSvc.DeleteColumn(ctx, stranger.ID, column.ID)
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("delete cascades to tasks", func(t *testing.T) {
		err := f.columnSvc.DeleteColumn(ctx, owner.ID, column.ID)
		require.NoError(t, err)

		f.db.mu.Lock()
		_, taskLives := f.db.tasks[task.ID]
		f.db.mu.Unlock()
		assert.False(t, taskLives)

		err = f.columnSvc.DeleteColumn(ctx, owner.ID, column.ID)
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("rank continues past deleted siblings", func(t *testing.T) {
		a, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, "A")
		require.NoError(t, err)
		b, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, "B")
		require.NoError(t, err)
		require.NoError(t, f.columnSvc.DeleteColumn(ctx, owner.ID, a.ID))

		c, err := f.columnSvc.CreateColumn(ctx, owner.ID, board.ID, "C")
		require.NoError(t, err)
		assert.Equal(t, b.Position+1, c.Position,
			"rank follows the surviving maximum, not the gap")
	})

	t.Run("absent column", func(t *testing.T) {
		err := f.columnSvc.DeleteColumn(ctx, owner.ID, uuid.New())
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})
}
