package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/plankhq/plank-api/internal/api/shared"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/service"
)

// BoardOperations is the slice of the board service the board endpoints use.
type BoardOperations interface {
	CreateBoard(ctx context.Context, actorID uuid.UUID, title string, description *string) (*domain.Board, error)
	ListBoards(ctx context.Context, actorID uuid.UUID) ([]domain.Board, error)
	GetBoard(ctx context.Context, actorID, boardID uuid.UUID) (*service.BoardDetail, error)
	DeleteBoard(ctx context.Context, actorID, boardID uuid.UUID) error
	InviteMember(ctx context.Context, actorID, boardID uuid.UUID, inviteeEmail string) (*domain.User, error)
}

// BoardHandler handles board-level HTTP requests.
type BoardHandler struct {
	boards    BoardOperations
	validator *validator.Validate
}

// NewBoardHandler creates a BoardHandler backed by the given board service.
func NewBoardHandler(boards BoardOperations) *BoardHandler {
	return &BoardHandler{
		boards:    boards,
		validator: validator.New(),
	}
}

// ListBoards handles GET /api/boards.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	boards, err := h.boards.ListBoards(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, boards)
}

// CreateBoard handles POST /api/boards.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateBoardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	board, err := h.boards.CreateBoard(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, board)
}

// GetBoard handles GET /api/boards/{boardID}: the board with columns and
// tasks nested in rank order.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	userID, boardID, ok := requireUserAndPathID(w, r, "boardID")
	if !ok {
		return
	}

	detail, err := h.boards.GetBoard(r.Context(), userID, boardID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

// DeleteBoard handles DELETE /api/boards/{boardID}. Owner only.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	userID, boardID, ok := requireUserAndPathID(w, r, "boardID")
	if !ok {
		return
	}

	if err := h.boards.DeleteBoard(r.Context(), userID, boardID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// InviteMember handles POST /api/boards/{boardID}/members. Owner only.
func (h *BoardHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	userID, boardID, ok := requireUserAndPathID(w, r, "boardID")
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	invitee, err := h.boards.InviteMember(r.Context(), userID, boardID, req.Email)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, InviteMemberResponse{
		BoardID: boardID,
		UserID:  invitee.ID,
		Email:   invitee.Email,
		Name:    invitee.Name,
	})
}
