package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms-portal/internal/auth"
	"lms-portal/internal/cache"
	"lms-portal/internal/catalog"
	"lms-portal/internal/config"
	"lms-portal/internal/database"
	"lms-portal/internal/logger"
	"lms-portal/internal/routes"
	"lms-portal/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if cfg.UsesDevSecret() {
		log.Warn().Msg("SECRET_KEY is not set, using the insecure development secret")
	}
	gin.SetMode(gin.ReleaseMode)

	// Init database
	db, err := database.Open(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}

	// Courses are loaded once; restart to pick up changes
	courses, err := catalog.Load(cfg.CoursesDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("course catalog could not be loaded")
	}

	// Setup the routes (public and protected routes)
	ginRoutes, err := routes.SetupRoutes(routes.Options{
		Catalog: courses,
		Users:   store.NewUserStore(db),
		Sessions: auth.NewSessionManager(auth.SessionOptions{
			Secret: cfg.SecretKey,
			TTL:    cfg.SessionTTL,
			Secure: cfg.CookieSecure,
		}),
		Identities:         cache.NewIdentityCache(cfg.IdentityCacheTTL),
		RegistrationOpen:   cfg.RegistrationOpen,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           ginRoutes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Int("courses", courses.Len()).
			Bool("registration_open", cfg.RegistrationOpen).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
