package store

import (
	"context"
	"errors"

	"github.com/hexfray/authd/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories are exposed as methods to
// keep concerns tidy and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and the registration pre-check.
	// Email matching is exact; no case folding happens at this layer.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// The users.email UNIQUE constraint is the authoritative guard against
	// concurrent duplicate registrations; violations surface as
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}
