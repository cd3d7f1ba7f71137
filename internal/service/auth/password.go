package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds. The upper bound is bcrypt's 72-byte input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Password validation errors.
var (
	// ErrPasswordTooShort is returned when a password is below the minimum length.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's limit.
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
)

// PasswordHasher hashes and verifies passwords. The core stores only the
// resulting opaque hash.
type PasswordHasher interface {
	// Hash derives a storage-safe hash from a plaintext password.
	Hash(password string) (string, error)

	// Compare checks a plaintext password against a stored hash.
	// Returns ErrInvalidCredentials on mismatch.
	Compare(hashedPassword, password string) error
}

// bcryptHasher implements PasswordHasher using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a PasswordHasher with the given bcrypt cost.
// A cost outside bcrypt's supported range falls back to the library default.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.Hash.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Compare implements PasswordHasher.Compare.
func (h *bcryptHasher) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}
