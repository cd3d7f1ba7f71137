// Package auth implements the credential service: JWT issuance/verification
// and password hashing. The rest of the core treats credentials as opaque and
// only ever sees the user identity they resolve to.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or carries unexpected claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidCredentials is returned when an email/password pair does not
	// match a known user. The same error covers unknown email and wrong
	// password so login cannot be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
