package handlers

import (
	"net/http"
	"time"

	"secure_notes/internal/service"

	"github.com/gin-gonic/gin"
)

// Presence is checked by the credential service, so whitespace-only values get the same error as absent ones.
type signUpRequest struct {
	Username        string `json:"username" example:"alice"`
	Password        string `json:"password" example:"correct horse"`
	ConfirmPassword string `json:"confirm_password,omitempty" example:"correct horse"`
}

type signInRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"correct horse"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return false
	}
	return true
}

// @Summary      Register
// @Description  confirm_password is optional; when present it must equal password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Credentials"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		h.abortWithServiceError(c, service.ErrPasswordMismatch, "auth_sign_up_failed", "username", input.Username)
		return
	}

	id, err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.abortWithServiceError(c, err, "auth_sign_up_failed", "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Sign in
// @Description  Returns a session token and sets it as an HttpOnly cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  service.Token
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.abortWithServiceError(c, err, "auth_sign_in_failed", "username", input.Username)
		return
	}

	maxAge := int(time.Until(token.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token.Value, maxAge, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, token)
}

// @Summary      Sign out
// @Description  Ends the session behind the bearer token or cookie. Always succeeds for unknown or expired tokens.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	if token, _, err := sessionToken(c); err == nil {
		if err := h.services.Logout(c.Request.Context(), token); err != nil {
			h.abortWithServiceError(c, err, "auth_logout_failed")
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}
