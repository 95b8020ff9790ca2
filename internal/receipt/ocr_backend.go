package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pantrychef/constants"
	"pantrychef/internal/ocr"
)

// OCRBackend extracts items by running local OCR over the receipt image and
// parsing the text line by line. Works offline; noisier than the vision path.
type OCRBackend struct {
	rec *ocr.Recognizer
	log *slog.Logger
}

func NewOCRBackend(rec *ocr.Recognizer, logger *slog.Logger) *OCRBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRBackend{rec: rec, log: logger}
}

func (b *OCRBackend) Name() string { return "ocr" }

func (b *OCRBackend) Extract(ctx context.Context, imagePath string) ([]Item, error) {
	start := time.Now()

	res, err := b.rec.Recognize(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	b.log.Info("receipt.ocr.text",
		"path", imagePath,
		"text_len", len(res.Text),
		"confidence", res.Confidence,
		"warnings", len(res.Warnings),
	)

	var items []Item
	for _, line := range strings.Split(res.Text, "\n") {
		item, ok := ExtractItem(line)
		if !ok {
			continue
		}
		// Uncategorized lines are usually OCR garbage, not groceries.
		if item.Category == constants.Other {
			b.log.Debug("receipt.ocr.line_skipped", "reason", "no category", "line", line)
			continue
		}
		items = append(items, item)
	}

	b.log.Info("receipt.ocr.ok",
		"items", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}
