package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrathamBhavsar2112/LogoPulse/internal/upstream"
	"github.com/PrathamBhavsar2112/LogoPulse/internal/upstream/repo"
	repomem "github.com/PrathamBhavsar2112/LogoPulse/internal/upstream/repo/memory"
	repopg "github.com/PrathamBhavsar2112/LogoPulse/internal/upstream/repo/postgres"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage"
	fsstorage "github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage/fs"
	memorystorage "github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage/memory"
	s3storage "github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/storage/s3"
)

type Config struct {
	Port              string `env:"PORT" env-default:"4000"`
	StorageBackend    string `env:"STORAGE_BACKEND" env-default:"memory"`
	FSBaseDir         string `env:"FS_BASE_DIR" env-default:"./data/uploads"`
	DatabaseURL       string `env:"DATABASE_URL"`
	DetectionDelaySec int    `env:"DETECTION_DELAY_SECONDS" env-default:"12"`

	S3 S3Config
}

type S3Config struct {
	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	Bucket          string `env:"S3_BUCKET_NAME"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"S3_ENDPOINT"`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
}

func buildBlobStore(config Config) (storage.BlobStore, error) {
	switch config.StorageBackend {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: config.FSBaseDir})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          config.S3.Region,
			Bucket:          config.S3.Bucket,
			AccessKeyID:     config.S3.AccessKeyID,
			SecretAccessKey: config.S3.SecretAccessKey,
			Endpoint:        config.S3.Endpoint,
			UsePathStyle:    config.S3.UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", config.StorageBackend)
	}
}

func buildHistoryRepo(ctx context.Context, config Config) (repo.Repository, error) {
	if config.DatabaseURL == "" {
		return repomem.New(), nil
	}

	pool, err := pgxpool.New(ctx, config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := repopg.NewWithPool(pool)
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func main() {
	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	blobs, err := buildBlobStore(config)
	if err != nil {
		slog.Error("Failed to initialize storage", "err", err)
		os.Exit(1)
	}

	history, err := buildHistoryRepo(ctx, config)
	if err != nil {
		slog.Error("Failed to initialize history repository", "err", err)
		os.Exit(1)
	}

	svc := upstream.NewService(blobs, history,
		upstream.WithDetectionDelay(time.Duration(config.DetectionDelaySec)*time.Second))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Mount("/", upstream.NewHandler(svc).Routes())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Upstream emulator starting",
			"port", config.Port,
			"storage", config.StorageBackend,
			"detectionDelay", config.DetectionDelaySec)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down upstream emulator")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "err", err)
		os.Exit(1)
	}
}
