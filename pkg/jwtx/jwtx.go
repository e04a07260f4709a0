// Package jwtx signs and verifies the JWT access tokens issued at login.
// Tokens are HS256 over a single process-wide secret; validity is entirely
// determined by the signature and the embedded expiry.
package jwtx

import "errors"

var (
	ErrMissingSecret = errors.New("jwtx: signing secret not configured")
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrInvalidSig    = errors.New("jwtx: invalid signature")
	ErrExpired       = errors.New("jwtx: token expired")
	ErrNotYetValid   = errors.New("jwtx: token not yet valid")
)

// Signer is our interface for anything that can sign access tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a token string and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}
