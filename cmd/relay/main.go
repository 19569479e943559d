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

	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/relay"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse/urlstrategy"
)

type Config struct {
	Port            string `env:"PORT" env-default:"3000"`
	UpstreamBaseURL string `env:"API_GATEWAY_URL" env-default:"http://localhost:4000"`
	UpstreamTimeout int    `env:"UPSTREAM_TIMEOUT_SECONDS" env-default:"30"`
	MaxUploadMB     int64  `env:"MAX_UPLOAD_MB" env-default:"10"`
	S3Bucket        string `env:"S3_BUCKET_NAME" env-default:"logopulse-dev"`
	S3Domain        string `env:"S3_DOMAIN" env-default:"s3.amazonaws.com"`
	CDNBaseURL      string `env:"CDN_BASE_URL"`
}

// displayURLStrategy picks CDN when configured, otherwise the
// bucket-hosted S3 URL.
func (c Config) displayURLStrategy() urlstrategy.DisplayURLStrategy {
	if c.CDNBaseURL != "" {
		return urlstrategy.NewCDNStrategy(c.CDNBaseURL)
	}
	return &urlstrategy.S3Strategy{Bucket: c.S3Bucket, Domain: c.S3Domain}
}

func main() {
	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	handler, err := relay.NewHandler(relay.Config{
		UpstreamBaseURL: config.UpstreamBaseURL,
		UpstreamTimeout: time.Duration(config.UpstreamTimeout) * time.Second,
		MaxUploadBytes:  config.MaxUploadMB << 20,
	}, config.displayURLStrategy())
	if err != nil {
		slog.Error("Failed to build relay", "err", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Mount("/", handler.Routes())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Relay starting", "port", config.Port, "upstream", config.UpstreamBaseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down relay")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "err", err)
		os.Exit(1)
	}
}
