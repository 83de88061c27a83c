package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"secure_notes/internal/models"
)

// Repository-level errors. Services translate them into domain errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type Users interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	MarkLoggedOut(ctx context.Context, id string, at time.Time) (bool, error)
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

type NoteRepo interface {
	Create(ctx context.Context, n models.Note) (int, error)
	GetOwned(ctx context.Context, ownerID, id int) (models.Note, error)
	UpdateOwned(ctx context.Context, ownerID, id int, title, content string, at time.Time) error
	DeleteOwned(ctx context.Context, ownerID, id int) error
	ListByOwner(ctx context.Context, ownerID int) ([]models.Note, error)
}

type ActivityRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Users    Users
	Sessions SessionRepo
	Notes    NoteRepo
	Activity ActivityRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Sessions: NewSessionSQLite(db),
		Notes:    NewNoteSQLite(db),
		Activity: NewActivitySQLite(db),
	}
}

// timeLayout is fixed width so that lexical order of stored values is chronological.
const timeLayout = "2006-01-02 15:04:05.000000"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
