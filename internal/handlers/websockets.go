package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"secure_notes/internal/models"
	"secure_notes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Browsers attach the session cookie to cross-origin upgrades, so only same-origin
// (or non-browser, Origin-less) clients are accepted.
var upgrader = websocket.Upgrader{}

// wsToken accepts ?token= as well, since browsers cannot set headers on an upgrade request.
func wsToken(c *gin.Context) (string, error) {
	if q := c.Query("token"); q != "" {
		return q, nil
	}
	token, _, err := sessionToken(c)
	return token, err
}

// @Summary      Live notes feed
// @Description  WebSocket stream of the caller's notes. Re-authenticates on every tick and closes once the session ends.
// @Tags         notes
// @Param        token        query  string  false  "Session token (alternative to header or cookie)"
// @Param        interval     query  string  false  "Push interval, e.g. 2s (max 10s)"
// @Param        interval_ms  query  int     false  "Push interval in ms (max 10000)"
// @Router       /api/v1/notes/ws [get]
func (h *Handler) notesFeed(c *gin.Context) {
	token, err := wsToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	// Refuse the upgrade outright for dead sessions.
	uid, err := h.services.Authenticate(c.Request.Context(), token)
	if err != nil {
		h.abortWithServiceError(c, err, "ws_auth_failed")
		return
	}

	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if !h.pushNotes(c, conn, uid, token) {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if !h.pushNotes(c, conn, uid, token) {
				return
			}
		}
	}
}

// pushNotes loads the notes under the session guard and writes them outside it, so a slow
// client never holds up a logout. Returns false when the connection should close.
func (h *Handler) pushNotes(c *gin.Context, conn *websocket.Conn, uid int, token string) bool {
	var notes []models.Note
	err := h.services.Guard(c.Request.Context(), token, func(userID int) error {
		if userID != uid {
			return service.ErrUnauthenticated
		}
		var err error
		notes, err = h.services.ListByOwner(c.Request.Context(), userID)
		return err
	})

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			_ = conn.WriteJSON(wsEnvelope{Type: "session_ended", Error: err.Error()})
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session ended"),
				time.Now().Add(writeWait))
			return false
		}
		if h.log != nil {
			h.log.Errorw("ws_list_notes_failed", "err", err, "user_id", uid)
		}
		_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: "failed to load notes"})
		return false
	}

	if err := conn.WriteJSON(wsEnvelope{Type: "notes", Data: notes}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "err", err)
		}
		return false
	}
	return true
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
