package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/plankhq/plank-api/internal/platform/logger"
)

// sessionBuffer is the per-session event backlog. A session that falls this
// far behind starts losing events, which best-effort delivery permits.
const sessionBuffer = 16

// Session is one live subscriber. Events arrive on C; a session joined to
// several boards receives each board's events interleaved on the same channel.
type Session struct {
	UserID uuid.UUID

	ch   chan Event
	once sync.Once
}

// NewSession creates a session owned by userID.
func NewSession(userID uuid.UUID) *Session {
	return &Session{
		UserID: userID,
		ch:     make(chan Event, sessionBuffer),
	}
}

// C returns the channel events are delivered on. It is closed when the
// session is closed.
func (s *Session) C() <-chan Event {
	return s.ch
}

// close releases the delivery channel. Called by the hub once the session has
// left every board, so no publisher can be mid-send.
func (s *Session) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub is the process-wide registry of board channels. It is constructed once
// at startup and passed by reference to every component that publishes or
// subscribes; nothing reaches it through a global.
type Hub struct {
	mu     sync.RWMutex
	boards map[uuid.UUID]map[*Session]struct{}
	logger *slog.Logger
}

// NewHub creates an empty hub. If log is nil, the default logger is used.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}

	return &Hub{
		boards: make(map[uuid.UUID]map[*Session]struct{}),
		logger: log.With(slog.String("component", "realtime_hub")),
	}
}

// Join subscribes the session to the board's channel. Joining twice is a
// no-op. Authorization happens at the transport edge before Join is called.
func (h *Hub) Join(boardID uuid.UUID, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.boards[boardID]
	if !ok {
		sessions = make(map[*Session]struct{})
		h.boards[boardID] = sessions
	}
	sessions[s] = struct{}{}

	h.logger.Debug("session joined board channel",
		slog.String("board_id", boardID.String()),
		slog.String("user_id", s.UserID.String()),
		slog.Int("session_count", len(sessions)))
}

// Leave unsubscribes the session from the board's channel and closes the
// session once it no longer belongs to any board.
func (h *Hub) Leave(boardID uuid.UUID, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessions, ok := h.boards[boardID]; ok {
		delete(sessions, s)
		if len(sessions) == 0 {
			delete(h.boards, boardID)
		}
	}

	for _, sessions := range h.boards {
		if _, ok := sessions[s]; ok {
			return
		}
	}
	s.close()
}

// Publish delivers the event to every session currently joined to its board
// channel. Sends never block: a session with a full buffer loses the event,
// which is logged and otherwise ignored.
//
// The sends happen under the read lock. Leave closes session channels under
// the write lock, so a channel can never be closed while a publisher still
// holds it. The sends are non-blocking, so the lock is held only briefly.
func (h *Hub) Publish(ctx context.Context, event Event) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	h.mu.RLock()
	subscribed := len(h.boards[event.BoardID])
	delivered := 0
	for s := range h.boards[event.BoardID] {
		select {
		case s.ch <- event:
			delivered++
		default:
			log.Warn("dropping event for slow session",
				slog.String("event", event.Name),
				slog.String("board_id", event.BoardID.String()),
				slog.String("user_id", s.UserID.String()))
		}
	}
	h.mu.RUnlock()

	if subscribed == 0 {
		return
	}

	log.Debug("event published",
		slog.String("event", event.Name),
		slog.String("board_id", event.BoardID.String()),
		slog.Int("delivered", delivered),
		slog.Int("subscribed", subscribed))
}

// SessionCount reports how many sessions are joined to the board's channel.
func (h *Hub) SessionCount(boardID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[boardID])
}
