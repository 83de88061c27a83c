package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"secure_notes/internal/models"
	"secure_notes/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

var noteColumns = []string{"id", "owner_id", "title", "content", "created_at", "updated_at"}

func newNoteRepo(t *testing.T) (*repository.NoteSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = db.Close()
	})
	return repository.NewNoteSQLite(db), mock
}

func TestNoteSQLite_Create(t *testing.T) {
	repo, mock := newNoteRepo(t)
	now := time.Date(2025, 2, 3, 4, 5, 6, 700000000, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes")).
		WithArgs(9, "Shopping", "", "2025-02-03 04:05:06.700000", "2025-02-03 04:05:06.700000").
		WillReturnResult(sqlmock.NewResult(17, 1))

	id, err := repo.Create(context.Background(), models.Note{
		OwnerID:   9,
		Title:     "Shopping",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 17 {
		t.Fatalf("id: got %d, want 17", id)
	}
}

func TestNoteSQLite_GetOwned_FiltersByOwner(t *testing.T) {
	repo, mock := newNoteRepo(t)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE id = ? AND owner_id = ?")).
		WithArgs(4, 1).
		WillReturnRows(sqlmock.NewRows(noteColumns).AddRow(4, 1, "t", "c", ts, ts))

	n, err := repo.GetOwned(context.Background(), 1, 4)
	if err != nil {
		t.Fatalf("GetOwned: %v", err)
	}
	if n.ID != 4 || n.OwnerID != 1 || n.Title != "t" || n.Content != "c" {
		t.Fatalf("unexpected note: %+v", n)
	}
}

func TestNoteSQLite_GetOwned_NoRowsIsNotFound(t *testing.T) {
	repo, mock := newNoteRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE id = ? AND owner_id = ?")).
		WithArgs(4, 2).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOwned(context.Background(), 2, 4)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNoteSQLite_UpdateOwned(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
		wantAny  bool
	}{
		{name: "updated", affected: 1},
		{name: "not owned or missing", affected: 0, wantErr: repository.ErrNotFound},
		{name: "db error", execErr: errors.New("locked"), wantAny: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newNoteRepo(t)
			exp := mock.ExpectExec(regexp.QuoteMeta("UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ? AND owner_id = ?")).
				WithArgs("new", "body", sqlmock.AnyArg(), 8, 3)
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tc.affected))
			}

			err := repo.UpdateOwned(context.Background(), 3, 8, "new", "body", time.Now())
			switch {
			case tc.wantAny:
				if err == nil {
					t.Fatalf("expected error")
				}
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestNoteSQLite_DeleteOwned(t *testing.T) {
	repo, mock := newNoteRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = ? AND owner_id = ?")).
		WithArgs(8, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = ? AND owner_id = ?")).
		WithArgs(8, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteOwned(context.Background(), 3, 8); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := repo.DeleteOwned(context.Background(), 3, 8); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestNoteSQLite_ListByOwner(t *testing.T) {
	repo, mock := newNoteRepo(t)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE owner_id = ? ORDER BY created_at ASC, id ASC")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(noteColumns).
			AddRow(1, 2, "a", "", ts, ts).
			AddRow(3, 2, "b", "x", ts, ts))

	got, err := repo.ListByOwner(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected notes: %+v", got)
	}
}

func TestNoteSQLite_ListByOwner_EmptyIsNotNil(t *testing.T) {
	repo, mock := newNoteRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE owner_id = ?")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(noteColumns))

	got, err := repo.ListByOwner(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestNoteSQLite_ListByOwner_ScanError(t *testing.T) {
	repo, mock := newNoteRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes WHERE owner_id = ?")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(noteColumns).AddRow(1, 2, "a", "", 123, nil))

	if _, err := repo.ListByOwner(context.Background(), 2); err == nil {
		t.Fatalf("expected scan error, got nil")
	}
}
