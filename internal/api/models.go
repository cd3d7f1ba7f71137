package api

import (
	"github.com/google/uuid"

	"github.com/plankhq/plank-api/internal/domain"
)

// Request and response bodies of the REST surface.

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is the successful response of both auth endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Token  string    `json:"token"`
}

// CreateBoardRequest is the payload for POST /api/boards.
type CreateBoardRequest struct {
	Title       string  `json:"title"       validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// InviteMemberRequest is the payload for POST /api/boards/{boardID}/members.
type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// InviteMemberResponse confirms an invite, identifying the new member.
type InviteMemberResponse struct {
	BoardID uuid.UUID `json:"board_id"`
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
}

// CreateColumnRequest is the payload for POST /api/boards/{boardID}/columns.
type CreateColumnRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// CreateTaskRequest is the payload for POST /api/columns/{columnID}/tasks.
type CreateTaskRequest struct {
	Title    string              `json:"title"    validate:"required,min=1,max=500"`
	Priority domain.TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// UpdateTaskRequest is the payload for PATCH /api/tasks/{taskID}. Every field
// is optional; a field absent from the body leaves the corresponding task
// field untouched. JSON null is indistinguishable from absence here and is
// treated as "leave untouched", so clearing content takes an explicit "".
type UpdateTaskRequest struct {
	Title    *string              `json:"title"     validate:"omitempty,min=1,max=500"`
	Content  *string              `json:"content"   validate:"omitempty,max=10000"`
	Priority *domain.TaskPriority `json:"priority"  validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	ColumnID *uuid.UUID           `json:"column_id"`
	Position *int                 `json:"position"  validate:"omitempty,gte=0"`
}
