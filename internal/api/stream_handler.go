package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/plankhq/plank-api/internal/api/shared"
	"github.com/plankhq/plank-api/internal/platform/logger"
	"github.com/plankhq/plank-api/internal/realtime"
	"github.com/plankhq/plank-api/internal/service"
	"github.com/plankhq/plank-api/internal/store"
)

// heartbeatInterval is how often an SSE comment is written to keep
// intermediaries from closing an idle stream.
const heartbeatInterval = 30 * time.Second

// BoardAuthorizer checks the actor's access to a board before a stream
// subscription is accepted.
type BoardAuthorizer interface {
	Resolve(ctx context.Context, actorID, boardID uuid.UUID, required service.RequiredRole) (*store.BoardAccess, error)
}

// StreamHandler serves GET /api/boards/{boardID}/stream: a Server-Sent
// Events stream of the board's mutation events. Access is re-checked at
// subscribe time, so a token alone is not enough to listen to a board the
// user does not participate in.
type StreamHandler struct {
	authz BoardAuthorizer
	hub   *realtime.Hub
}

// NewStreamHandler creates a StreamHandler fanning out from hub.
func NewStreamHandler(authz BoardAuthorizer, hub *realtime.Hub) *StreamHandler {
	return &StreamHandler{authz: authz, hub: hub}
}

// Stream subscribes the caller to the board's event channel and writes each
// event as an SSE message until the client disconnects.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, boardID, ok := requireUserAndPathID(w, r, "boardID")
	if !ok {
		return
	}

	if _, err := h.authz.Resolve(r.Context(), userID, boardID, service.MemberOrOwner); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	session := realtime.NewSession(userID)
	h.hub.Join(boardID, session)
	defer h.hub.Leave(boardID, session)

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.Debug("stream opened",
		slog.String("board_id", boardID.String()),
		slog.String("user_id", userID.String()))

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug("stream closed by client",
				slog.String("board_id", boardID.String()),
				slog.String("user_id", userID.String()))
			return

		case <-heartbeat.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case event, open := <-session.C():
			if !open {
				return
			}
			if err := writeSSE(w, event); err != nil {
				log.Debug("stream write failed",
					slog.String("board_id", boardID.String()),
					slog.String("error", err.Error()))
				return
			}
			flusher.Flush()
		}
	}
}

// writeSSE writes one event in SSE framing: the event name line, then the
// JSON body on a data line.
func writeSSE(w http.ResponseWriter, event realtime.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte("event: " + event.Name + "\n")); err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}
