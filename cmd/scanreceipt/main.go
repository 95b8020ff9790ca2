package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pantrychef/internal/common"
	"pantrychef/internal/llm/openai"
	"pantrychef/internal/ocr"
	"pantrychef/internal/receipt"
)

// scanreceipt extracts grocery items from a receipt image and prints them
// as JSON. Useful for trying backends without running the server.
func main() {
	_ = godotenv.Load()

	var (
		backend = flag.String("backend", "vision", `extraction backend: "vision" or "ocr"`)
		timeout = flag.Duration("timeout", 45*time.Second, "extraction timeout")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <receipt-image>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	var b receipt.Backend
	switch *backend {
	case "ocr":
		rec := ocr.NewRecognizer(ocr.Config{
			Tesseract:     cfg.Extract.Tesseract,
			TesseractLang: cfg.Extract.TesseractLang,
			HeicConverter: cfg.Extract.HeicConverter,
		}, logger)
		b = receipt.NewOCRBackend(rec, logger)
	case "vision":
		if cfg.LLM.APIKey == "" {
			logger.Error("OPENAI_API_KEY is required for the vision backend")
			os.Exit(1)
		}
		client := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			VisionModel: cfg.LLM.VisionModel,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		b = receipt.NewVisionBackend(client, logger)
	default:
		logger.Error("unknown backend", "backend", *backend)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Extract directly rather than through the pipeline: the pipeline
	// deletes its input, which would eat the user's file.
	items, err := b.Extract(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
