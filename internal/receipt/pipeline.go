package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pantrychef/internal/common"
)

// Backend is one strategy for turning a receipt image into items.
type Backend interface {
	Name() string
	Extract(ctx context.Context, imagePath string) ([]Item, error)
}

// Pipeline runs a backend over an uploaded receipt and owns the uploaded
// file's lifetime: the file is removed when processing finishes, success
// or not.
type Pipeline struct {
	backend Backend
	timeout time.Duration
	log     *slog.Logger
}

func NewPipeline(backend Backend, timeout time.Duration, logger *slog.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{backend: backend, timeout: timeout, log: logger}
}

// Process extracts items from the receipt image at path. The file at path is
// always deleted afterwards, even on error.
func (p *Pipeline) Process(ctx context.Context, path string) ([]Item, error) {
	start := time.Now()
	p.log.Info("receipt.process.start", "path", path, "backend", p.backend.Name())

	defer func() {
		if err := os.Remove(path); err != nil {
			p.log.Warn("receipt.process.cleanup_failed", "path", path, "error", err)
		} else {
			p.log.Info("receipt.process.cleaned_up", "path", path)
		}
	}()

	if _, err := os.Stat(path); err != nil {
		p.log.Error("receipt.process.file_missing", "path", path, "error", err)
		return nil, fmt.Errorf("%w: file not found: %s", common.ErrInvalidInput, path)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	items, err := p.backend.Extract(ctx, path)
	if err != nil {
		p.log.Error("receipt.process.failed",
			"path", path,
			"backend", p.backend.Name(),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	p.log.Info("receipt.process.ok",
		"path", path,
		"backend", p.backend.Name(),
		"items", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}
