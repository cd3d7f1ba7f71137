package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/plankhq/plank-api/internal/api/shared"
	"github.com/plankhq/plank-api/internal/domain"
)

// ColumnOperations is the slice of the column service the column endpoints use.
type ColumnOperations interface {
	CreateColumn(ctx context.Context, actorID, boardID uuid.UUID, title string) (*domain.Column, error)
	DeleteColumn(ctx context.Context, actorID, columnID uuid.UUID) error
}

// ColumnHandler handles column-level HTTP requests.
type ColumnHandler struct {
	columns   ColumnOperations
	validator *validator.Validate
}

// NewColumnHandler creates a ColumnHandler backed by the given column service.
func NewColumnHandler(columns ColumnOperations) *ColumnHandler {
	return &ColumnHandler{
		columns:   columns,
		validator: validator.New(),
	}
}

// CreateColumn handles POST /api/boards/{boardID}/columns.
func (h *ColumnHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	userID, boardID, ok := requireUserAndPathID(w, r, "boardID")
	if !ok {
		return
	}

	var req CreateColumnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	column, err := h.columns.CreateColumn(r.Context(), userID, boardID, req.Title)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, column)
}

// DeleteColumn handles DELETE /api/columns/{columnID}.
func (h *ColumnHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	userID, columnID, ok := requireUserAndPathID(w, r, "columnID")
	if !ok {
		return
	}

	if err := h.columns.DeleteColumn(r.Context(), userID, columnID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
