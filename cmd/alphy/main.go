package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nanohit/alphy-llm/internal/bot"
	"github.com/nanohit/alphy-llm/internal/config"
	"github.com/nanohit/alphy-llm/internal/perplexity"
	"github.com/nanohit/alphy-llm/internal/session"
	"github.com/nanohit/alphy-llm/internal/telegram"
	"github.com/nanohit/alphy-llm/internal/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker := usage.NewTracker()
	ai := perplexity.New(cfg.PerplexityAPIKey, tracker)
	tg := telegram.NewClient(cfg.TelegramBotToken)
	sessions := session.NewManager()
	handler := bot.New(tg, ai, sessions, tracker)

	// Periodic cleanup of stale per-chat state to prevent memory leaks
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			sessions.Cleanup(1 * time.Hour)
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.WebhookURL != "" {
		r.Post("/telegram/webhook", telegram.NewWebhookHandler(cfg.WebhookSecret, handler).ServeHTTP)
		if err := tg.SetWebhook(ctx, cfg.WebhookURL, cfg.WebhookSecret); err != nil {
			log.Fatalf("webhook: %v", err)
		}
		log.Printf("alphy: webhook mode, updates arrive at %s", cfg.WebhookURL)
	} else {
		// A leftover webhook registration blocks getUpdates.
		if err := tg.DeleteWebhook(ctx); err != nil {
			log.Printf("alphy: delete webhook: %v", err)
		}
		poller := telegram.NewPoller(tg, handler)
		go func() {
			if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
				log.Fatalf("poller: %v", err)
			}
		}()
		log.Printf("alphy: polling mode")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("alphy: listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("alphy: shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("alphy: stopped")
}
