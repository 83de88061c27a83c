package service

import (
	"context"
	"strings"

	"secure_notes/internal/models"
	"secure_notes/internal/repository"
)

// SearchService finds notes within a single owner's collection.
type SearchService struct {
	notes repository.NoteRepo
}

func NewSearchService(notes repository.NoteRepo) *SearchService {
	return &SearchService{notes: notes}
}

// Search returns the owner's notes whose title or content contains query,
// ignoring case. A blank query matches nothing. Results keep list order.
func (s *SearchService) Search(ctx context.Context, userID int, query string) ([]models.Note, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []models.Note{}, nil
	}

	notes, err := s.notes.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if matchesNote(n, needle) {
			out = append(out, n)
		}
	}
	return out, nil
}

// matchesNote expects needle already lower-cased.
func matchesNote(n models.Note, needle string) bool {
	return strings.Contains(strings.ToLower(n.Title), needle) ||
		strings.Contains(strings.ToLower(n.Content), needle)
}
