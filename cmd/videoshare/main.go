package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/videoshare/videoshare/internal/catalog"
	"github.com/videoshare/videoshare/internal/config"
	"github.com/videoshare/videoshare/internal/database"
	"github.com/videoshare/videoshare/internal/metrics"
	"github.com/videoshare/videoshare/internal/mockdata"
	"github.com/videoshare/videoshare/internal/notify"
	"github.com/videoshare/videoshare/internal/ratelimit"
	"github.com/videoshare/videoshare/internal/server"
	"github.com/videoshare/videoshare/internal/session"
	"github.com/videoshare/videoshare/internal/storage"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})))

	if err := run(cfg); err != nil {
		slog.Error("videoshare stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slot, pinger, closeSlot, err := openSlot(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSlot()
	slog.Info("slot backend ready", "backend", cfg.SlotBackend)

	seed, err := loadSeed(ctx, cfg, slot)
	if err != nil {
		return err
	}
	slog.Info("catalog loaded", "videos", len(seed.Videos), "users", len(seed.Users))

	m := metrics.New()
	videos := catalog.New(catalog.Config{
		Seed:     seed,
		Recorder: notify.NewMultiRecorder(m, notify.LogRecorder{}),
	})
	sessions := session.New(session.Config{
		Directory: seed,
		Slot:      slot,
		Latency:   cfg.LoginLatency,
	})
	if err := sessions.Restore(ctx); err != nil {
		slog.Warn("could not restore session", "error", err)
	} else if user, ok := sessions.Current(); ok {
		slog.Info("session restored", "user_id", user.ID)
	}

	var webFS fs.FS
	if cfg.WebDir != "" {
		webFS = os.DirFS(cfg.WebDir)
		slog.Info("serving frontend", "dir", cfg.WebDir)
	} else {
		slog.Info("WEB_DIR not set, SPA serving disabled")
	}

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())
	defer backgroundCancel()
	limiter := ratelimit.NewLimiter(0.5, 5)
	go limiter.Run(backgroundCtx)

	srv := server.New(server.Config{
		Catalog:        videos,
		Sessions:       sessions,
		Metrics:        m,
		Pinger:         pinger,
		WebFS:          webFS,
		BaseURL:        cfg.BaseURL,
		MediaOrigins:   cfg.MediaOrigins,
		SessionLimiter: limiter,
		EnableDocs:     cfg.EnableDocs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("videoshare listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-shutdownCh:
	}
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("shutdown complete")
	return nil
}

// openSlot builds the configured slot backend. The returned pinger is nil
// for backends without a remote dependency.
func openSlot(ctx context.Context, cfg config.Config) (storage.Slot, server.Pinger, func(), error) {
	noop := func() {}

	switch cfg.SlotBackend {
	case config.SlotMemory:
		return storage.NewMemory(), nil, noop, nil

	case config.SlotFile:
		slot, err := storage.NewFile(cfg.SlotDir)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("open file slot: %w", err)
		}
		return slot, nil, noop, nil

	case config.SlotPostgres:
		db, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("database connection failed: %w", err)
		}
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, nil, noop, fmt.Errorf("database migration failed: %w", err)
		}
		slog.Info("database migrations applied")
		return storage.NewPostgres(db.Pool), db, db.Close, nil

	case config.SlotS3:
		slot, err := storage.NewS3(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			Prefix:    cfg.S3Prefix,
		})
		if err != nil {
			return nil, nil, noop, fmt.Errorf("storage initialization failed: %w", err)
		}
		if err := slot.EnsureBucket(ctx); err != nil {
			return nil, nil, noop, fmt.Errorf("storage bucket check failed: %w", err)
		}
		return slot, nil, noop, nil

	case config.SlotRedis:
		slot, err := storage.NewRedis(storage.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, noop, fmt.Errorf("redis initialization failed: %w", err)
		}
		closeRedis := func() {
			if err := slot.Close(); err != nil {
				slog.Warn("redis close failed", "error", err)
			}
		}
		return slot, slot, closeRedis, nil
	}
	return nil, nil, noop, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
}

// loadSeed picks the catalog source: an object in the slot backend, a JSON
// file, or the embedded dataset.
func loadSeed(ctx context.Context, cfg config.Config, slot storage.Slot) (mockdata.Catalog, error) {
	switch {
	case cfg.CatalogObject != "":
		data, err := slot.Load(ctx, cfg.CatalogObject)
		if err != nil {
			return mockdata.Catalog{}, fmt.Errorf("load catalog object %q: %w", cfg.CatalogObject, err)
		}
		return mockdata.Parse(data)
	case cfg.CatalogPath != "":
		data, err := os.ReadFile(cfg.CatalogPath)
		if err != nil {
			return mockdata.Catalog{}, fmt.Errorf("read catalog file: %w", err)
		}
		return mockdata.Parse(data)
	}
	return mockdata.Default(), nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
