package service

import (
	"context"

	"github.com/mkarev/go-user-service/models"
)

// AuthService covers the authentication and access-control core: account
// registration, credential verification, token issuance, per-request
// identity resolution, and the admin privilege gate.
type AuthService interface {
	// RegisterUser creates a new account from the registration payload.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies the supplied credentials and issues a signed token.
	Login(ctx context.Context, req models.LoginRequest) (models.Token, error)

	// Authenticate resolves a raw bearer token into a verified, active
	// account record.
	Authenticate(ctx context.Context, rawToken string) (models.User, error)

	// RequireAdmin checks the admin flag of an already-resolved account.
	RequireAdmin(ctx context.Context, actor models.User) error
}

// UserService covers profile lookup and account administration on top of
// identities resolved by [AuthService].
type UserService interface {
	// GetUserByID retrieves a single account on behalf of actor.
	GetUserByID(ctx context.Context, actor models.User, id int64) (models.User, error)

	// ListUsers returns one page of accounts plus pagination metadata.
	ListUsers(ctx context.Context, page, limit int64) ([]models.User, models.Pagination, error)

	// UpdateUser applies a partial update to an account on behalf of actor.
	UpdateUser(ctx context.Context, actor models.User, id int64, patch models.UserUpdateRequest) (models.User, error)
}
