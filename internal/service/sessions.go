package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"secure_notes/internal/logger"
	"secure_notes/internal/models"
	"secure_notes/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token is what a successful login hands back to the caller.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claims defines JWT claims. RegisteredClaims.ID carries the session id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// SessionService mints, validates and revokes sessions.
//
// Tokens are HS256 JWTs whose "jti" names a row in the session store: the signature
// makes them unguessable, the row makes them revocable. Guard runs an operation under
// the read side of that session's lock while Logout takes the write side, so a logout
// never lands between the authentication check and the guarded operation. Sessions
// never wait on each other.
type SessionService struct {
	locks sessionLocks

	credentials Credentials
	sessions    repository.SessionRepo
	activity    repository.ActivityRepo

	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
	log        *logger.Logger
}

func NewSessionService(
	credentials Credentials,
	sessions repository.SessionRepo,
	activity repository.ActivityRepo,
	signingKey []byte,
	ttl time.Duration,
	now func() time.Time,
	log *logger.Logger,
) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		locks:       sessionLocks{m: make(map[string]*sessionLock)},
		credentials: credentials,
		sessions:    sessions,
		activity:    activity,
		signingKey:  signingKey,
		ttl:         ttl,
		now:         now,
		log:         log,
	}
}

// Login verifies credentials and opens a new session. Concurrent sessions per user are allowed.
func (s *SessionService) Login(ctx context.Context, username, password string) (Token, error) {
	userID, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return Token{}, err
	}

	now := s.now().UTC()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return Token{}, err
	}

	signed, err := s.issueToken(sess)
	if err != nil {
		return Token{}, err
	}

	s.record(ctx, models.ActivityEvent{
		UserID:      userID,
		OccurredAt:  now,
		Type:        models.EventLogin,
		Description: "Signed in",
	})

	return Token{Value: signed, ExpiresAt: sess.ExpiresAt}, nil
}

// Authenticate resolves a token to its user id or fails with ErrUnauthenticated.
func (s *SessionService) Authenticate(ctx context.Context, token string) (int, error) {
	return s.guarded(ctx, token, nil)
}

// Guard authenticates token and runs fn with the user id while the session cannot be revoked.
// fn must not call back into Logout or Guard for the same token.
func (s *SessionService) Guard(ctx context.Context, token string, fn func(userID int) error) error {
	_, err := s.guarded(ctx, token, fn)
	return err
}

func (s *SessionService) guarded(ctx context.Context, token string, fn func(userID int) error) (int, error) {
	claims, err := s.parseToken(token)
	if err != nil || claims.ID == "" {
		return 0, ErrUnauthenticated
	}

	l := s.locks.acquire(claims.ID)
	defer s.locks.release(claims.ID, l)
	l.RLock()
	defer l.RUnlock()

	userID, err := s.authenticate(ctx, claims)
	if err != nil {
		return 0, err
	}
	if fn == nil {
		return userID, nil
	}
	return userID, fn(userID)
}

// Logout ends the session behind token. Unknown, expired, repeated or malformed tokens are not errors.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	// Expired tokens are still revoked, so skip time-based claim checks here.
	claims, err := s.parseToken(token, jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return nil
	}

	l := s.locks.acquire(claims.ID)
	defer s.locks.release(claims.ID, l)
	l.Lock()
	defer l.Unlock()

	now := s.now().UTC()
	changed, err := s.sessions.MarkLoggedOut(ctx, claims.ID, now)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	s.record(ctx, models.ActivityEvent{
		UserID:      claims.UserID,
		OccurredAt:  now,
		Type:        models.EventLogout,
		Description: "Signed out",
	})
	return nil
}

func (s *SessionService) authenticate(ctx context.Context, claims *Claims) (int, error) {
	sess, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUnauthenticated
		}
		return 0, err
	}
	if sess.UserID != claims.UserID || sess.State(s.now()) != models.SessionActive {
		return 0, ErrUnauthenticated
	}
	return sess.UserID, nil
}

// helper: issue a signed JWT for a session
func (s *SessionService) issueToken(sess models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   strconv.Itoa(sess.UserID),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		},
		UserID: sess.UserID,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// helper: parse and verify a JWT, returning its claims
func (s *SessionService) parseToken(accessToken string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts, jwt.WithTimeFunc(s.now))
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *SessionService) record(ctx context.Context, e models.ActivityEvent) {
	recordActivity(ctx, s.activity, s.log, e)
}

// sessionLock is one session's guard, shared by everyone currently holding that token.
type sessionLock struct {
	sync.RWMutex
	refs int
}

// sessionLocks hands out a lock per session id and forgets it once nobody holds it.
type sessionLocks struct {
	mu sync.Mutex
	m  map[string]*sessionLock
}

func (l *sessionLocks) acquire(id string) *sessionLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	sl, ok := l.m[id]
	if !ok {
		sl = &sessionLock{}
		l.m[id] = sl
	}
	sl.refs++
	return sl
}

func (l *sessionLocks) release(id string, sl *sessionLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sl.refs--
	if sl.refs == 0 {
		delete(l.m, id)
	}
}
