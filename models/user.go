package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the account.
	// Assigned by the database on creation and immutable afterwards.
	ID int64 `json:"id"`

	// Email is the unique account identifier used during authentication.
	// Stored case-sensitively; uniqueness is enforced by the database.
	Email string `json:"email"`

	// FullName is the display name of the account holder.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"full_name"`

	// PasswordHash stores the bcrypt hash of the account password.
	// This value MUST be a salted one-way hash, never plaintext.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Active reports whether the account may authenticate.
	// Inactive accounts are rejected during login and during bearer-token
	// resolution.
	Active bool `json:"active"`

	// Admin grants access to privileged operations when true.
	// There are no role hierarchies beyond this single flag.
	Admin bool `json:"admin"`

	// LastLogin is the timestamp of the most recent successful
	// authentication. Nil until the account logs in for the first time.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
