package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/config"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/handler"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/ai"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/feedback"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Init("info", "console")
		log.Fatal("failed to load configuration", err)
	}

	log.Init(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	if envErr != nil {
		log.Warnf("failed to load .env file: %v; continuing with system environment variables only", envErr)
	}

	aiService, err := ai.NewService(ctx, cfg.AI, nil)
	if err != nil {
		log.Fatal("failed to initialize chat service", err)
	}
	if cfg.AI.Enabled() {
		log.Infof("chat provider %s ready", cfg.AI.Provider)
	} else {
		log.Warnf("chat provider %s has no credentials; /api/chat will answer with a configuration error", cfg.AI.Provider)
	}

	if cfg.Feedback.WebhookURL == "" {
		log.Warnf("FEEDBACK_WEBHOOK_URL not set; /api/feedback will answer with a configuration error")
	}
	feedbackService := feedback.NewService(cfg.Feedback.WebhookURL)

	router := handler.NewRouter(aiService, feedbackService, cfg.Server.AllowedOrigins)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Infof("calmcounsel backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatal("server error", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
