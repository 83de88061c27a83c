package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"secure_notes/internal/models"
)

type NoteSQLite struct {
	db *sql.DB
}

func NewNoteSQLite(db *sql.DB) *NoteSQLite {
	return &NoteSQLite{db: db}
}

var _ NoteRepo = (*NoteSQLite)(nil)

// Every statement below that touches a single note filters on owner_id as well as id,
// so a foreign note is indistinguishable from a missing one.
const (
	insertNoteSQL = `INSERT INTO notes (owner_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	selectOwnedNoteSQL = `
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM notes WHERE id = ? AND owner_id = ?
	`
	updateOwnedNoteSQL = `UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ? AND owner_id = ?`
	deleteOwnedNoteSQL = `DELETE FROM notes WHERE id = ? AND owner_id = ?`

	selectNotesByOwnerSQL = `
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM notes WHERE owner_id = ? ORDER BY created_at ASC, id ASC
	`
)

// Create inserts a note and returns its assigned id.
func (r *NoteSQLite) Create(ctx context.Context, n models.Note) (int, error) {
	res, err := r.db.ExecContext(ctx, insertNoteSQL,
		n.OwnerID,
		n.Title,
		n.Content,
		formatTime(n.CreatedAt),
		formatTime(n.UpdatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert note for owner %d: %w", n.OwnerID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for note: %w", err)
	}
	return int(id), nil
}

// GetOwned returns the note only if ownerID owns it, ErrNotFound otherwise.
func (r *NoteSQLite) GetOwned(ctx context.Context, ownerID, id int) (models.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, selectOwnedNoteSQL, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, fmt.Errorf("select note %d: %w", id, err)
	}
	return n, nil
}

// UpdateOwned rewrites title and content. ErrNotFound when nothing matched.
func (r *NoteSQLite) UpdateOwned(ctx context.Context, ownerID, id int, title, content string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateOwnedNoteSQL, title, content, formatTime(at), id, ownerID)
	if err != nil {
		return fmt.Errorf("update note %d: %w", id, err)
	}
	return expectOneRow(res, "update note")
}

// DeleteOwned permanently removes the note. ErrNotFound when nothing matched.
func (r *NoteSQLite) DeleteOwned(ctx context.Context, ownerID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteOwnedNoteSQL, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return expectOneRow(res, "delete note")
}

// ListByOwner returns the owner's notes in creation order.
func (r *NoteSQLite) ListByOwner(ctx context.Context, ownerID int) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectNotesByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Note, 0, 16)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanNote(row interface{ Scan(dest ...any) error }) (models.Note, error) {
	var n models.Note
	if err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return models.Note{}, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n, nil
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
