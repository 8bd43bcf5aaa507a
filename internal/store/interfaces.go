package store

import (
	"context"
	"time"

	"github.com/mkarev/go-user-service/models"
)

// UserRepository is the persistence contract for account records — the
// account directory consumed by the service layer.
//
// Implementations must enforce email uniqueness on creation and update,
// signalling violations with [ErrEmailAlreadyExists], and must report
// lookup misses with [ErrNoUserWasFound].
type UserRepository interface {
	// CreateUser persists a new account and returns it with
	// server-assigned fields populated (ID, CreatedAt).
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves the account whose email matches exactly
	// (case-sensitive as stored).
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves the account with the given id.
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// UpdateUser applies a partial update and returns the updated account.
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (models.User, error)

	// UpdateLastLogin records the timestamp of a successful authentication.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error

	// ListUsers returns a page of accounts ordered by id.
	ListUsers(ctx context.Context, limit, offset uint64) ([]models.User, error)

	// CountUsers returns the total number of accounts.
	CountUsers(ctx context.Context) (int64, error)
}
