package service

import (
	"errors"
	"fmt"

	"github.com/plankhq/plank-api/internal/store"
)

// Service-level sentinel errors. The transport layer maps these to HTTP
// status codes in one place.
var (
	// ErrBoardNotFound covers both "board absent" and "actor has no access":
	// the two are intentionally indistinguishable so that non-participants
	// cannot learn whether a board exists.
	ErrBoardNotFound = errors.New("board not found")

	// ErrColumnNotFound covers an absent column and a column on a board the
	// actor cannot see.
	ErrColumnNotFound = errors.New("column not found")

	// ErrTaskNotFound covers an absent task and a task on a board the actor
	// cannot see.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates the referenced user does not exist
	// (e.g., inviting an unknown email).
	ErrUserNotFound = errors.New("user not found")

	// ErrNotBoardOwner is returned when a known participant attempts an
	// owner-only operation. Unlike the not-found errors this discloses that
	// the board exists, which a member already knows.
	ErrNotBoardOwner = errors.New("only the board owner may perform this operation")

	// ErrAlreadyMember indicates the invitee already holds a membership.
	ErrAlreadyMember = errors.New("user is already a member of this board")

	// ErrAlreadyOwner indicates the invitee is the board's owner.
	ErrAlreadyOwner = errors.New("user is already the board owner")

	// ErrEmailTaken indicates a registration attempt with a known email.
	ErrEmailTaken = errors.New("email is already registered")
)

// mapStoreError translates a store sentinel into the service sentinel for the
// entity being operated on, wrapping everything else with operation context.
func mapStoreError(err error, operation string, notFound error) error {
	if err == nil {
		return nil
	}
	if store.IsNotFoundError(err) {
		return notFound
	}
	return fmt.Errorf("%s: %w", operation, err)
}
