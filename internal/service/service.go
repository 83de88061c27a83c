package service

import (
	"context"
	"time"

	"secure_notes/internal/logger"
	"secure_notes/internal/models"
	"secure_notes/internal/repository"
)

// Credentials registers users and verifies credential pairs.
type Credentials interface {
	Register(ctx context.Context, username, password string) (int, error)
	Verify(ctx context.Context, username, password string) (int, error)
}

// Sessions issues and checks session tokens.
type Sessions interface {
	Login(ctx context.Context, username, password string) (Token, error)
	Authenticate(ctx context.Context, token string) (int, error)
	Guard(ctx context.Context, token string, fn func(userID int) error) error
	Logout(ctx context.Context, token string) error
}

// Notes is the owner-scoped note store.
type Notes interface {
	Create(ctx context.Context, userID int, title, content string) (models.Note, error)
	Get(ctx context.Context, userID, noteID int) (models.Note, error)
	Update(ctx context.Context, userID, noteID int, title, content string) (models.Note, error)
	Delete(ctx context.Context, userID, noteID int) error
	ListByOwner(ctx context.Context, userID int) ([]models.Note, error)
}

// Searcher runs substring queries over one owner's notes.
type Searcher interface {
	Search(ctx context.Context, userID int, query string) ([]models.Note, error)
}

// Activity exposes a user's own audit trail.
type Activity interface {
	History(ctx context.Context, userID int, f ActivityFilter) ([]models.ActivityEvent, error)
}

// CSRF issues single-use tokens for cookie-authenticated writes.
type CSRF interface {
	IssueCSRF(userID int) string
	ConsumeCSRF(userID int, token string) error
}

// Sweeper runs the background session purge.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Credentials
	Sessions
	Notes
	Searcher
	Activity
	CSRF
	Sweeper
}

// Options tunes the services built by NewService.
type Options struct {
	SigningKey []byte
	SessionTTL time.Duration
	CSRFTTL    time.Duration
	Hasher     PasswordHasher
	Now        func() time.Time
}

const (
	defaultSessionTTL = time.Hour
	defaultCSRFTTL    = time.Hour
)

func (o Options) withDefaults() Options {
	if o.SessionTTL <= 0 {
		o.SessionTTL = defaultSessionTTL
	}
	if o.CSRFTTL <= 0 {
		o.CSRFTTL = defaultCSRFTTL
	}
	if o.Hasher == nil {
		o.Hasher = NewBcryptHasher(0)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	opts = opts.withDefaults()
	credentials := NewCredentialService(repos.Users, repos.Activity, opts.Hasher, log)
	credentials.now = opts.Now
	return &Service{
		Credentials: credentials,
		Sessions:    NewSessionService(credentials, repos.Sessions, repos.Activity, opts.SigningKey, opts.SessionTTL, opts.Now, log),
		Notes:       NewNoteService(repos.Notes, repos.Activity, opts.Now, log),
		Searcher:    NewSearchService(repos.Notes),
		Activity:    NewActivityService(repos.Activity),
		CSRF:        NewCSRFService(opts.CSRFTTL, opts.Now),
		Sweeper:     NewSweeperService(repos.Sessions, opts.SessionTTL, opts.Now, log),
	}
}
