package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/gradetracker/backend/core/user"
)

const userColumns = "id, username, password, preferences, created_at, updated_at, last_login"

type userRow struct {
	ID          int              `db:"id"`
	Username    string           `db:"username"`
	Password    []byte           `db:"password"`
	Preferences user.Preferences `db:"preferences"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
	LastLogin   null.Time        `db:"last_login"`
}

func (row userRow) toUser() user.User {
	return user.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.Password,
		Preferences:  row.Preferences,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
		LastLogin:    row.LastLogin.Time.UTC(),
	}
}

func nullTime(t time.Time) null.Time {
	return null.NewTime(t, !t.IsZero())
}

func passwordHash(hash []byte) null.String {
	return null.NewString(string(hash), hash != nil)
}

type userRepository struct {
	db sqlx.ExtContext
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

// NewUserRepository works on a *sqlx.DB as well as on a *sqlx.Tx.
func NewUserRepository(db sqlx.ExtContext) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username string, excludedIDs ...int) error {
	var count int
	q := "SELECT COUNT(*) FROM users WHERE username = $1 AND NOT (id = ANY($2))"
	if err := sqlx.GetContext(ctx, repo.db, &count, q, username, int64s(excludedIDs)); err != nil {
		return errors.Wrap(err, "counting users")
	}
	if count > 0 {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := "INSERT INTO users (username, password, preferences, created_at, updated_at, last_login) " +
		"VALUES ($1, $2, $3, $4, $5, $6) RETURNING " + userColumns

	var row userRow
	err := sqlx.GetContext(ctx, repo.db, &row, q,
		usr.Username, passwordHash(usr.PasswordHash), usr.Preferences, usr.CreatedAt, usr.UpdatedAt, nullTime(usr.LastLogin))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE "
	var arg interface{}
	switch {
	case filter.ID != 0:
		q += "id = $1"
		arg = filter.ID
	case filter.Username != "":
		q += "username = $1"
		arg = filter.Username
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := sqlx.GetContext(ctx, repo.db, &row, q, arg); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := "UPDATE users SET username = $2, password = COALESCE($3, password), preferences = $4, " +
		"updated_at = $5, last_login = $6 WHERE id = $1 RETURNING " + userColumns

	var row userRow
	err := sqlx.GetContext(ctx, repo.db, &row, q,
		usr.ID, usr.Username, passwordHash(usr.PasswordHash), usr.Preferences, usr.UpdatedAt, nullTime(usr.LastLogin))
	if err != nil {
		switch {
		case err == sql.ErrNoRows:
			return user.User{}, user.ErrNotFound
		case isUniqueViolation(err):
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return row.toUser(), nil
}

// DeleteUser relies on the grades.user_id ON DELETE CASCADE constraint.
func (repo *userRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}
