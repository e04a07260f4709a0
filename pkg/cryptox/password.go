// Package cryptox wraps the password hashing primitives used by the auth
// service. Hashes are bcrypt in its standard encoded form, so work factor
// and salt travel with the hash and can be tuned without a migration.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for new hashes. Cost 10 is the interactive
// login baseline; existing hashes keep whatever cost they were created with.
const BcryptCost = 10

// maxPasswordBytes is bcrypt's input limit. Anything longer is silently
// truncated by the algorithm, so we reject it instead.
const maxPasswordBytes = 72

var (
	// ErrInvalidInput reports an empty or oversized plaintext.
	ErrInvalidInput = errors.New("cryptox: invalid password input")

	// ErrCorruptHash reports a stored hash that bcrypt cannot parse.
	ErrCorruptHash = errors.New("cryptox: malformed password hash")

	errMismatch = errors.New("cryptox: password does not match")
)

// HashPassword derives a salted bcrypt hash from the plaintext. The salt is
// generated internally, so two hashes of the same password never match.
func HashPassword(password string) (string, error) {
	if password == "" || len(password) > maxPasswordBytes {
		return "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch returns a non-nil error; only a hash bcrypt cannot parse is
// reported as ErrCorruptHash.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return errMismatch
	default:
		// Anything else means the stored hash itself is unusable.
		return errors.Join(ErrCorruptHash, err)
	}
}
