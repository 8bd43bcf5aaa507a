package store

import (
	sq "github.com/Masterminds/squirrel"
)

// userColumns is the canonical column list scanned into [models.User].
const userColumns = "id, email, full_name, password_hash, active, admin, last_login, created_at"

const (
	createUser = `INSERT INTO users (email, full_name, password_hash, active, admin)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	updateLastLogin = `UPDATE users
    SET last_login = $2
    WHERE id = $1;`

	countUsers = `SELECT COUNT(*) FROM users;`
)

// psql builds parameterised queries with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// UserUpdate describes a partial account update. Nil fields are left
// unchanged; PasswordHash must already be a bcrypt credential, never
// plaintext.
type UserUpdate struct {
	Email        *string
	FullName     *string
	Active       *bool
	Admin        *bool
	PasswordHash *string
}

// buildUpdateUserQuery dynamically builds the UPDATE statement for a partial
// account update, returning the affected row via a RETURNING clause.
//
// Returns [ErrNoFieldsToUpdate] when update carries no changes.
func buildUpdateUserQuery(userID int64, update UserUpdate) (string, []any, error) {
	builder := psql.Update("users")

	changed := false
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
		changed = true
	}
	if update.FullName != nil {
		builder = builder.Set("full_name", *update.FullName)
		changed = true
	}
	if update.Active != nil {
		builder = builder.Set("active", *update.Active)
		changed = true
	}
	if update.Admin != nil {
		builder = builder.Set("admin", *update.Admin)
		changed = true
	}
	if update.PasswordHash != nil {
		builder = builder.Set("password_hash", *update.PasswordHash)
		changed = true
	}

	if !changed {
		return "", nil, ErrNoFieldsToUpdate
	}

	return builder.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
}

// buildListUsersQuery builds the paginated listing query ordered by account id.
func buildListUsersQuery(limit, offset uint64) (string, []any, error) {
	return psql.
		Select(userColumns).
		From("users").
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		ToSql()
}
