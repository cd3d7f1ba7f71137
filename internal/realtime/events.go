// Package realtime implements board-scoped publish/subscribe fan-out of
// mutation events to live sessions. Delivery is at-most-once and best-effort:
// no retries, no queuing for disconnected sessions.
package realtime

import (
	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/domain"
)

// Event names emitted over board channels.
const (
	EventTaskCreated  = "task:created"
	EventTaskUpdated  = "task:updated"
	EventTaskDeleted  = "task:deleted"
	EventBoardUpdated = "board-updated"
)

// Event is a single mutation notification scoped to one board channel.
type Event struct {
	// Name is one of the Event* constants.
	Name string `json:"event"`

	// BoardID identifies the channel the event was published to.
	BoardID uuid.UUID `json:"board_id"`

	// Payload is the event body: the affected task for task:created and
	// task:updated, a TaskRef for task:deleted, nil for board-updated.
	Payload any `json:"payload,omitempty"`
}

// TaskRef carries just the id of a deleted task.
type TaskRef struct {
	ID uuid.UUID `json:"id"`
}

// TaskCreated builds the event announcing a new task on the board.
func TaskCreated(boardID uuid.UUID, task *domain.Task) Event {
	return Event{Name: EventTaskCreated, BoardID: boardID, Payload: task}
}

// TaskUpdated builds the event announcing a changed (possibly re-parented) task.
func TaskUpdated(boardID uuid.UUID, task *domain.Task) Event {
	return Event{Name: EventTaskUpdated, BoardID: boardID, Payload: task}
}

// TaskDeleted builds the event announcing a removed task.
func TaskDeleted(boardID, taskID uuid.UUID) Event {
	return Event{Name: EventTaskDeleted, BoardID: boardID, Payload: TaskRef{ID: taskID}}
}

// BoardUpdated builds the event signalling a board-level change such as
// deletion. The board id is the only information carried.
func BoardUpdated(boardID uuid.UUID) Event {
	return Event{Name: EventBoardUpdated, BoardID: boardID}
}
