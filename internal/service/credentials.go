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

// CredentialService owns the username -> password verifier mapping.
type CredentialService struct {
	users    repository.Users
	activity repository.ActivityRepo
	hasher   PasswordHasher
	now      func() time.Time
	log      *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentialService(users repository.Users, activity repository.ActivityRepo, hasher PasswordHasher, log *logger.Logger) *CredentialService {
	return &CredentialService{users: users, activity: activity, hasher: hasher, now: time.Now, log: log}
}

// Register stores a new user. Usernames are matched exactly (case-sensitive).
func (s *CredentialService) Register(ctx context.Context, username, password string) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, fmt.Errorf("%w: username", ErrMissingField)
	}
	// passwords are opaque: only the empty string is missing
	if password == "" {
		return 0, fmt.Errorf("%w: password", ErrMissingField)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}

	recordActivity(ctx, s.activity, s.log, models.ActivityEvent{
		UserID:      id,
		OccurredAt:  s.now().UTC(),
		Type:        models.EventRegister,
		Description: "Account registered",
	})
	return id, nil
}

// Verify checks a credential pair. Unknown user and wrong password fail identically.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (int, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if u == nil {
		// burn a comparison so unknown usernames cost the same as wrong passwords
		s.hasher.Matches(s.dummy(), password)
		return 0, ErrInvalidCredentials
	}
	if !s.hasher.Matches(u.PasswordHash, password) {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}

func (s *CredentialService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyHash
}
