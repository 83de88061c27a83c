package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type csrfEntry struct {
	userID    int
	expiresAt time.Time
}

// CSRFService hands out single-use form tokens bound to a user.
type CSRFService struct {
	mu     sync.Mutex
	tokens map[string]csrfEntry
	ttl    time.Duration
	now    func() time.Time
}

func NewCSRFService(ttl time.Duration, now func() time.Time) *CSRFService {
	if now == nil {
		now = time.Now
	}
	return &CSRFService{tokens: make(map[string]csrfEntry), ttl: ttl, now: now}
}

// IssueCSRF returns a fresh token for userID and drops expired ones.
func (s *CSRFService) IssueCSRF(userID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for tok, e := range s.tokens {
		if !now.Before(e.expiresAt) {
			delete(s.tokens, tok)
		}
	}

	tok := uuid.NewString()
	s.tokens[tok] = csrfEntry{userID: userID, expiresAt: now.Add(s.ttl)}
	return tok
}

// ConsumeCSRF validates and burns token. A token is accepted at most once.
func (s *CSRFService) ConsumeCSRF(userID int, token string) error {
	if token == "" {
		return ErrInvalidCSRF
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if !ok || e.userID != userID {
		return ErrInvalidCSRF
	}
	delete(s.tokens, token)
	if !s.now().Before(e.expiresAt) {
		return ErrInvalidCSRF
	}
	return nil
}
