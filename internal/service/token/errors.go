package token

import "errors"

// Revocation and validation failures are kept distinct so handlers can tell
// the client exactly what was wrong with a refresh token instead of folding
// everything into one generic error.
var (
	ErrTokenMalformed = errors.New("refresh token malformed")
	ErrTokenNotFound  = errors.New("refresh token not found")
	ErrTokenRevoked   = errors.New("refresh token already revoked")
	ErrTokenExpired   = errors.New("refresh token expired")
)
