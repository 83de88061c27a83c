package service

import (
	"sync"
	"testing"
	"time"

	"secure_notes/internal/repository"
	"secure_notes/internal/repository/db"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSigningKey = []byte("test-signing-key")

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newSQLiteService builds the full service graph over a fresh in-memory database.
func newSQLiteService(t testing.TB, clock *fakeClock) (*Service, *repository.Repository) {
	t.Helper()

	conn, err := db.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repos := repository.NewRepository(conn)
	opts := Options{
		SigningKey: testSigningKey,
		SessionTTL: time.Hour,
		Hasher:     NewBcryptHasher(bcrypt.MinCost),
	}
	if clock != nil {
		opts.Now = clock.Now
	}
	return NewService(repos, opts, nil), repos
}
