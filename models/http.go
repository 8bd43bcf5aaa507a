package models

import "time"

// RegisterRequest is the JSON payload accepted by the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginRequest is the JSON payload accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest is the JSON payload accepted by the account update
// endpoint. All fields are optional; only non-nil fields are applied.
type UserUpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Admin    *bool   `json:"admin,omitempty"`
	Password *string `json:"password,omitempty"`
}

// TokenResponse is the JSON body returned after a successful login.
// TokenType is always "bearer".
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse is the uniform JSON error envelope.
// Every failed request carries the same shape so that callers cannot
// distinguish failure causes beyond the documented message and status code.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse is the public projection of a [User] returned by the API.
// It never contains credential material.
type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Active    bool       `json:"active"`
	Admin     bool       `json:"admin"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewUserResponse builds a [UserResponse] from a persisted [User].
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Active:    u.Active,
		Admin:     u.Admin,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// Pagination describes the position of a page inside a listed collection.
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int64 `json:"total_pages"`
	CurrentPage int64 `json:"current_page"`
	Limit       int64 `json:"limit"`
}

// UserListResponse is the JSON body returned by the account listing endpoint.
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}
