package receipt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pantrychef/constants"
	"pantrychef/internal/common"
	"pantrychef/internal/llm"
)

const visionPrompt = `Please analyze this receipt and extract all grocery items. For each item, provide: name, quantity, unit, and price. Format the response as a JSON array with these fields. Example: [{"name": "Milk", "quantity": 1, "unit": "gallon", "price": 3.99}]. Return ONLY the JSON array, no other text or formatting.`

// VisionBackend extracts items by sending the receipt image to a vision model.
type VisionBackend struct {
	gen llm.Generator
	log *slog.Logger
}

func NewVisionBackend(gen llm.Generator, logger *slog.Logger) *VisionBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisionBackend{gen: gen, log: logger}
}

func (b *VisionBackend) Name() string { return "vision" }

func (b *VisionBackend) Extract(ctx context.Context, imagePath string) ([]Item, error) {
	start := time.Now()

	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	b.log.Info("receipt.vision.encoded", "path", imagePath, "base64_len", len(dataURL))

	content, err := b.gen.Generate(ctx, llm.ChatRequest{
		User:         visionPrompt,
		ImageDataURL: dataURL,
		MaxTokens:    1000,
	})
	if err != nil {
		return nil, err
	}

	cleaned := llm.StripCodeFences(content)
	b.log.Info("receipt.vision.response", "content_len", len(cleaned))

	if err := llm.ValidateJSONAgainstSchema(llm.BuildReceiptItemsJSONSchema(), []byte(cleaned)); err != nil {
		b.log.Error("receipt.vision.schema_validation_failed", "error", err, "content", cleaned)
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	var rawItems []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &rawItems); err != nil {
		b.log.Error("receipt.vision.parse_failed", "error", err, "content", cleaned)
		return nil, fmt.Errorf("%w: parse items: %v", common.ErrMalformedResponse, err)
	}

	items := make([]Item, 0, len(rawItems))
	for _, ri := range rawItems {
		name, _ := ri["name"].(string)
		name = titleCase(CleanItemName(name))
		if name == "" {
			b.log.Warn("receipt.vision.item_skipped", "reason", "empty name", "item", ri)
			continue
		}
		unitText, _ := ri["unit"].(string)
		item := Item{
			Name:     name,
			Quantity: CleanQuantity(ri["quantity"]),
			Unit:     constants.IdentifyUnit(unitText),
			Price:    CleanPrice(ri["price"]),
			Category: constants.IdentifyCategory(name),
		}
		items = append(items, item)
	}

	b.log.Info("receipt.vision.ok",
		"items", len(items),
		"skipped", len(rawItems)-len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}
