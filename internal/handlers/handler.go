package handlers

import (
	"net/http"

	_ "secure_notes/docs"
	"secure_notes/internal/logger"
	"secure_notes/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services     *service.Service
	log          *logger.Logger
	secureCookie bool
}

// Option customizes a Handler.
type Option func(*Handler)

// WithSecureCookie marks the session cookie Secure (HTTPS only).
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) { h.secureCookie = secure }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// The feed authenticates on every tick instead of holding the guard for the whole connection.
	router.GET("/api/v1/notes/ws", h.notesFeed)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		// Not behind the guard: logout takes the exclusive side of the session lock.
		auth.POST("/logout", h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		h.registerNoteRoutes(api)
		h.registerActivityRoutes(api)
		api.GET("/csrf", h.issueCSRF)
	}
}

func (h *Handler) registerNoteRoutes(api *gin.RouterGroup) {
	notes := api.Group("/notes")
	{
		notes.GET("", h.listNotes)
		notes.POST("", h.createNote)
		notes.GET("/search", h.searchNotes)
		notes.GET("/:id", h.getNote)
		notes.PUT("/:id", h.updateNote)
		notes.DELETE("/:id", h.deleteNote)
	}
}

func (h *Handler) registerActivityRoutes(api *gin.RouterGroup) {
	activity := api.Group("/activity")
	{
		activity.GET("", h.getActivity)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
