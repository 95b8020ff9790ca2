package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pantrychef/internal/auth"
	"pantrychef/internal/cache"
	"pantrychef/internal/common"
	"pantrychef/internal/export"
	"pantrychef/internal/llm"
	"pantrychef/internal/llm/openai"
	"pantrychef/internal/ocr"
	"pantrychef/internal/receipt"
	"pantrychef/internal/recipe"
	"pantrychef/internal/repository"
	"pantrychef/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCtx, cancel := context.WithTimeout(ctx, cfg.Database.DialTimeout)
	db, err := repository.Connect(dbCtx, cfg.Database.DSN,
		cfg.Database.MaxConns, cfg.Database.MaxConns/4,
		cfg.Database.MaxConnLifetime, logger)
	cancel()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("db close error", "error", err)
		}
	}()

	users := repository.NewUserRepository(db)
	inventory := repository.NewInventoryRepository(db)
	ratings := repository.NewRatingRepository(db)
	chats := repository.NewChatRepository(db)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(users, issuer, logger)

	openaiClient := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		VisionModel: cfg.LLM.VisionModel,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	backend := buildExtractBackend(cfg, openaiClient, logger)
	pipe := receipt.NewPipeline(backend, cfg.LLM.Timeout, logger)

	var respCache *cache.Cache
	if cfg.Cache.Enabled {
		respCache = cache.New(cfg.Cache.Addr, cfg.Cache.TTL, logger)
	} else {
		respCache = cache.New("", 0, logger)
	}
	defer func() {
		if err := respCache.Close(); err != nil {
			logger.Warn("cache close error", "error", err)
		}
	}()

	recipes := recipe.NewService(inventory, users, ratings, chats, openaiClient, respCache, logger)
	exports := export.NewService(inventory, logger)

	srv := server.New(cfg, authSvc, issuer, pipe, recipes, exports, users, inventory, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("pantrychef listening", "addr", cfg.Server.Addr, "extract_backend", cfg.Extract.Backend)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func buildExtractBackend(cfg *common.Config, gen llm.Generator, logger *slog.Logger) receipt.Backend {
	if cfg.Extract.Backend == "ocr" {
		rec := ocr.NewRecognizer(ocr.Config{
			Tesseract:     cfg.Extract.Tesseract,
			TesseractLang: cfg.Extract.TesseractLang,
			HeicConverter: cfg.Extract.HeicConverter,
		}, logger)
		return receipt.NewOCRBackend(rec, logger)
	}
	return receipt.NewVisionBackend(gen, logger)
}
