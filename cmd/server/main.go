package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyzbk/insta-carousel-v2/internal/api"
	"github.com/nyzbk/insta-carousel-v2/internal/config"
	"github.com/nyzbk/insta-carousel-v2/internal/export"
	"github.com/nyzbk/insta-carousel-v2/internal/generator"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/render"
	"github.com/nyzbk/insta-carousel-v2/internal/session"
	"github.com/nyzbk/insta-carousel-v2/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		boot, _ := logger.New("dev")
		boot.Fatal("failed to load config", "error", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	geminiClient, err := generator.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		log.Fatal("failed to create Gemini client", "error", err)
	}
	defer geminiClient.Close()

	renderer, err := render.New(cfg.RenderScale, log)
	if err != nil {
		log.Fatal("failed to create renderer", "error", err)
	}

	store := session.NewStore(session.Deps{
		Generator: geminiClient,
		Exporter:  export.New(renderer, log),
		Sender:    telegram.NewClient(cfg.TelegramAPIBase, cfg.TelegramTimeout, log),
		Log:       log,
	}, cfg.SessionTTL)

	router := api.NewRouter(api.NewHandler(store, renderer, log), log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("carousel service starting",
			"port", cfg.Port,
			"model", cfg.GeminiModel,
			"render_scale", cfg.RenderScale,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
