package handlers

import (
	"context"
	"net/http"
	"sync"

	"secure_notes/internal/models"
	"secure_notes/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockCredentials struct {
	registerID  int
	registerErr error

	registerCalls      int
	lastRegisterUser   string
	lastRegisterPasswd string
}

func (m *mockCredentials) Register(ctx context.Context, username, password string) (int, error) {
	m.registerCalls++
	m.lastRegisterUser = username
	m.lastRegisterPasswd = password
	return m.registerID, m.registerErr
}
func (m *mockCredentials) Verify(ctx context.Context, username, password string) (int, error) {
	return m.registerID, m.registerErr
}

// mockSessions is shared with websocket goroutines, hence the mutex.
type mockSessions struct {
	mu sync.Mutex

	loginToken service.Token
	loginErr   error
	authID     int
	authErr    error
	logoutErr  error

	lastAuthToken   string
	lastLogoutToken string
	logoutCalls     int
	guardCalls      int
}

func (m *mockSessions) Login(ctx context.Context, username, password string) (service.Token, error) {
	return m.loginToken, m.loginErr
}
func (m *mockSessions) Authenticate(ctx context.Context, token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastAuthToken = token
	return m.authID, m.authErr
}
func (m *mockSessions) Guard(ctx context.Context, token string, fn func(userID int) error) error {
	m.mu.Lock()
	m.guardCalls++
	m.mu.Unlock()
	uid, err := m.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	return fn(uid)
}
func (m *mockSessions) Logout(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutCalls++
	m.lastLogoutToken = token
	return m.logoutErr
}

// revoke makes every later Authenticate fail.
func (m *mockSessions) revoke() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authErr = service.ErrUnauthenticated
}

type mockNotes struct {
	note    models.Note
	notes   []models.Note
	err     error
	listErr error

	lastUser    int
	lastID      int
	lastTitle   string
	lastContent string
	deleteCalls int
}

func (m *mockNotes) Create(ctx context.Context, userID int, title, content string) (models.Note, error) {
	m.lastUser, m.lastTitle, m.lastContent = userID, title, content
	return m.note, m.err
}
func (m *mockNotes) Get(ctx context.Context, userID, noteID int) (models.Note, error) {
	m.lastUser, m.lastID = userID, noteID
	return m.note, m.err
}
func (m *mockNotes) Update(ctx context.Context, userID, noteID int, title, content string) (models.Note, error) {
	m.lastUser, m.lastID, m.lastTitle, m.lastContent = userID, noteID, title, content
	return m.note, m.err
}
func (m *mockNotes) Delete(ctx context.Context, userID, noteID int) error {
	m.lastUser, m.lastID = userID, noteID
	m.deleteCalls++
	return m.err
}
func (m *mockNotes) ListByOwner(ctx context.Context, userID int) ([]models.Note, error) {
	return m.notes, m.listErr
}

type mockSearcher struct {
	resp      []models.Note
	err       error
	lastUser  int
	lastQuery string
}

func (m *mockSearcher) Search(ctx context.Context, userID int, query string) ([]models.Note, error) {
	m.lastUser, m.lastQuery = userID, query
	return m.resp, m.err
}

type mockActivity struct {
	resp       []models.ActivityEvent
	err        error
	lastUser   int
	lastFilter service.ActivityFilter
}

func (m *mockActivity) History(ctx context.Context, userID int, f service.ActivityFilter) ([]models.ActivityEvent, error) {
	m.lastUser = userID
	m.lastFilter = f
	return m.resp, m.err
}

type mockCSRF struct {
	token      string
	consumeErr error
	consumed   []string
}

func (m *mockCSRF) IssueCSRF(userID int) string { return m.token }
func (m *mockCSRF) ConsumeCSRF(userID int, token string) error {
	m.consumed = append(m.consumed, token)
	return m.consumeErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
