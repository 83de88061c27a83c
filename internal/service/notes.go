package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"secure_notes/internal/logger"
	"secure_notes/internal/models"
	"secure_notes/internal/repository"
)

const noteLockStripes = 64

// noteLocks serializes read-modify-write sequences on the same note id.
type noteLocks [noteLockStripes]sync.Mutex

func (l *noteLocks) lock(noteID int) func() {
	m := &l[uint(noteID)%noteLockStripes]
	m.Lock()
	return m.Unlock
}

// NoteService is the ownership-scoped note store.
type NoteService struct {
	notes    repository.NoteRepo
	activity repository.ActivityRepo
	locks    noteLocks
	now      func() time.Time
	log      *logger.Logger
}

func NewNoteService(notes repository.NoteRepo, activity repository.ActivityRepo, now func() time.Time, log *logger.Logger) *NoteService {
	if now == nil {
		now = time.Now
	}
	return &NoteService{notes: notes, activity: activity, now: now, log: log}
}

// Create stores a new note owned by userID.
func (s *NoteService) Create(ctx context.Context, userID int, title, content string) (models.Note, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return models.Note{}, err
	}

	// stored timestamps keep microseconds
	now := s.now().UTC().Truncate(time.Microsecond)
	n := models.Note{
		OwnerID:   userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.notes.Create(ctx, n)
	if err != nil {
		return models.Note{}, err
	}
	n.ID = id

	s.record(ctx, userID, models.EventNoteCreated, "Note created", n)
	return n, nil
}

// Get returns the note if userID owns it. Missing and foreign notes both yield ErrNotFound.
func (s *NoteService) Get(ctx context.Context, userID, noteID int) (models.Note, error) {
	n, err := s.notes.GetOwned(ctx, userID, noteID)
	if err != nil {
		return models.Note{}, mapNoteErr(err)
	}
	return n, nil
}

// Update replaces title and content of an owned note and returns the stored result.
func (s *NoteService) Update(ctx context.Context, userID, noteID int, title, content string) (models.Note, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return models.Note{}, err
	}

	unlock := s.locks.lock(noteID)
	defer unlock()

	if err := s.notes.UpdateOwned(ctx, userID, noteID, title, content, s.now().UTC()); err != nil {
		return models.Note{}, mapNoteErr(err)
	}
	n, err := s.notes.GetOwned(ctx, userID, noteID)
	if err != nil {
		return models.Note{}, mapNoteErr(err)
	}

	s.record(ctx, userID, models.EventNoteUpdated, "Note updated", n)
	return n, nil
}

// Delete permanently removes an owned note.
func (s *NoteService) Delete(ctx context.Context, userID, noteID int) error {
	unlock := s.locks.lock(noteID)
	defer unlock()

	if err := s.notes.DeleteOwned(ctx, userID, noteID); err != nil {
		return mapNoteErr(err)
	}
	s.record(ctx, userID, models.EventNoteDeleted, "Note deleted", models.Note{ID: noteID})
	return nil
}

// ListByOwner returns every note of userID in creation order.
func (s *NoteService) ListByOwner(ctx context.Context, userID int) ([]models.Note, error) {
	return s.notes.ListByOwner(ctx, userID)
}

func (s *NoteService) record(ctx context.Context, userID int, typ, desc string, n models.Note) {
	meta := map[string]any{"note_id": n.ID}
	if n.Title != "" {
		meta["title"] = n.Title
	}
	recordActivity(ctx, s.activity, s.log, models.ActivityEvent{
		UserID:      userID,
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title", ErrMissingField)
	}
	return title, nil
}

func mapNoteErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
