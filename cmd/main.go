package main

import (
	"context"
	"crypto/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secure_notes/internal/config"
	"secure_notes/internal/handlers"
	"secure_notes/internal/logger"
	"secure_notes/internal/repository"
	"secure_notes/internal/repository/db"
	"secure_notes/internal/server"
	"secure_notes/internal/service"
)

// @title                       Secure Notes API
// @version                     1.0
// @description                 Multi-user notes with session authentication and owner-scoped access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	// a failed load leaves Log.Level empty, which means info
	log := logger.Get(cfg.Log.Level)
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		SigningKey: signingKey(cfg, log),
		SessionTTL: cfg.Auth.SessionTTL,
		CSRFTTL:    cfg.Auth.CSRFTTL,
		Hasher:     service.NewBcryptHasher(cfg.Auth.BcryptCost),
	}, log)
	apiHandler := handlers.NewHandler(services, log, handlers.WithSecureCookie(cfg.Auth.CookieSecure))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Sweeper.Run(ctx, cfg.Auth.SweepInterval)

	// start HTTP server
	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("server_started", "port", cfg.Port, "db", cfg.DB.Path)

	// graceful shutdown
	waitForShutdown(cancel, srv, cfg.Server.ShutdownTimeout, log)
}

// signingKey returns the configured key or a random per-process one.
func signingKey(cfg config.Config, log *logger.Logger) []byte {
	if cfg.Auth.SigningKey != "" {
		return []byte(cfg.Auth.SigningKey)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalw("failed to generate signing key", "err", err)
	}
	log.Warnw("auth.signing_key not set; using a random key, sessions will not survive a restart")
	return key
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
