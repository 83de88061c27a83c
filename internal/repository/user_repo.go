package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"secure_notes/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID. A taken username yields ErrDuplicate.
func (r *UserSQLite) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash, formatTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by exact username. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
