package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"secure_notes/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ SessionRepo = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`
	selectSessionSQL = `SELECT id, user_id, created_at, expires_at, logged_out_at FROM sessions WHERE id = ?`

	// Only the first logout stamps the row; later calls are no-ops.
	logoutSessionSQL = `UPDATE sessions SET logged_out_at = ? WHERE id = ? AND logged_out_at IS NULL`

	deleteStaleSessionsSQL = `DELETE FROM sessions WHERE expires_at < ? OR (logged_out_at IS NOT NULL AND logged_out_at < ?)`
)

// Create stores a freshly minted session.
func (r *SessionSQLite) Create(ctx context.Context, s models.Session) error {
	_, err := r.db.ExecContext(ctx, insertSessionSQL,
		s.ID,
		s.UserID,
		formatTime(s.CreatedAt),
		formatTime(s.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("insert session for user %d: %w", s.UserID, err)
	}
	return nil
}

// Get loads a session by id. Returns ErrNotFound for unknown ids.
func (r *SessionSQLite) Get(ctx context.Context, id string) (models.Session, error) {
	var (
		s         models.Session
		loggedOut sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, selectSessionSQL, id).
		Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &loggedOut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, fmt.Errorf("select session: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	if loggedOut.Valid {
		t := loggedOut.Time.UTC()
		s.LoggedOutAt = &t
	}
	return s, nil
}

// MarkLoggedOut moves the session to the terminal LoggedOut state.
// Reports whether this call performed the transition.
func (r *SessionSQLite) MarkLoggedOut(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, logoutSessionSQL, formatTime(at), id)
	if err != nil {
		return false, fmt.Errorf("logout session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("logout session rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteStale purges sessions that expired, or were logged out, before the given time.
func (r *SessionSQLite) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	ts := formatTime(before)
	res, err := r.db.ExecContext(ctx, deleteStaleSessionsSQL, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions rows affected: %w", err)
	}
	return n, nil
}
