package main

import (
	"context"
	"coursehub/internal/config"
	"coursehub/internal/db"
	"coursehub/internal/http/router"
	"coursehub/internal/jobs"
	"coursehub/internal/log"
	"coursehub/internal/models"
	"coursehub/internal/security"
	"coursehub/internal/store"
	"coursehub/internal/store/memory"
	"coursehub/internal/view"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "config/app.yaml", "path to the YAML configuration file")
	flag.Parse()

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.Environment)
	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx := context.Background()

	deps := router.Deps{Log: logger}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		deps.Users = memory.New[models.User]()
		deps.Courses = memory.New[models.Course]()
	default:
		database, err := db.Init(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer database.Close()

		deps.Users = database.Users()
		deps.Courses = database.Courses()
		deps.DB = database
	}

	if !cfg.Storage.NoSeed {
		if err := store.Seed(ctx, deps.Users, models.SeedUsers()...); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := store.Seed(ctx, deps.Courses, models.SeedCourses()...); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
	}

	var rdb *redis.Client
	if cfg.Session.Store == config.SessionRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	}

	sessions, err := security.NewSessionStore(cfg.Session, rdb)
	if err != nil {
		return err
	}

	deps.Sessions = sessions
	deps.Auth, err = security.NewAuthenticator(cfg.Accounts, deps.Users)
	if err != nil {
		return err
	}
	deps.View, err = view.New()
	if err != nil {
		return err
	}

	scheduler := jobs.NewScheduler(sessions.Dir(), time.Duration(cfg.Session.MaxAge)*time.Second, logger)
	if err := scheduler.Start(cfg.Session.CleanupSchedule); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router.Setup(deps),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("storage", cfg.Storage.Driver).
			Str("sessions", cfg.Session.Store).
			Msg("http server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("http server shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info().Msg("http server stopped")
	return nil
}
