package handlers

import (
	"errors"
	"net/http"
	"strings"

	"secure_notes/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie  = "session"
	csrfHeader     = "X-CSRF-Token"
	ctxUserID      = "userId"
	ctxTokenSource = "tokenSource"

	sourceHeader = "header"
	sourceCookie = "cookie"
)

// sessionToken extracts the session token: the Authorization header wins over the cookie.
// An Authorization header that is present but malformed is reported, not skipped.
func sessionToken(c *gin.Context) (token, source string, err error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", "", errors.New("invalid Authorization header format")
		}
		return strings.TrimSpace(parts[1]), sourceHeader, nil
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie, sourceCookie, nil
	}
	return "", "", errors.New("missing session token")
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// sessionMiddleware runs the rest of the chain inside the session guard, so a concurrent
// logout cannot revoke the session halfway through a request.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, source, err := sessionToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	err = h.services.Guard(c.Request.Context(), token, func(userID int) error {
		if source == sourceCookie && !isSafeMethod(c.Request.Method) {
			if err := h.services.ConsumeCSRF(userID, c.GetHeader(csrfHeader)); err != nil {
				return err
			}
		}
		// store in Gin context
		c.Set(ctxUserID, userID)
		c.Set(ctxTokenSource, source)
		c.Next()
		return nil
	})
	if err != nil {
		h.abortWithServiceError(c, err, "session_guard_failed")
	}
}

// currentUser returns the id stored by sessionMiddleware.
func currentUser(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// statusFor maps domain errors onto HTTP status codes and client-facing messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooLong),
		errors.Is(err, service.ErrInvalidTimeRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusConflict, service.ErrDuplicateUsername.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, service.ErrUnauthenticated.Error()
	case errors.Is(err, service.ErrInvalidCSRF):
		return http.StatusForbidden, service.ErrInvalidCSRF.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, service.ErrNotFound.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// abortWithServiceError writes the mapped error. Only unexpected failures are logged as errors.
func (h *Handler) abortWithServiceError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code, msg := statusFor(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if code == http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
