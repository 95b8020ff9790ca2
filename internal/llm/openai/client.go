package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantrychef/internal/common"
	"pantrychef/internal/llm"
)

// Generate implements llm.Generator over chat/completions. When the request
// carries an image data URL the user message becomes a multi-part content
// array so the same call path serves text and vision prompts.
func (c *Client) Generate(ctx context.Context, req llm.ChatRequest) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	model := req.Model
	if model == "" {
		if req.ImageDataURL != "" {
			model = c.cfg.VisionModel
		} else {
			model = c.cfg.Model
		}
	}
	temp := req.Temperature
	if temp == 0 {
		temp = c.cfg.Temperature
	}

	c.log.Info("llm.generate.start",
		"req_id", rid,
		"model", model,
		"temp", temp,
		"prompt_len", len(req.User),
		"has_image", req.ImageDataURL != "",
	)

	messages := make([]map[string]any, 0, 2)
	if req.System != "" {
		messages = append(messages, map[string]any{"role": "system", "content": req.System})
	}
	if req.ImageDataURL != "" {
		messages = append(messages, map[string]any{
			"role": "user",
			"content": []map[string]any{
				{"type": "text", "text": req.User},
				{"type": "image_url", "image_url": map[string]any{"url": req.ImageDataURL}},
			},
		})
	} else {
		messages = append(messages, map[string]any{"role": "user", "content": req.User})
	}

	body := map[string]any{
		"model":       model,
		"temperature": temp,
		"messages":    messages,
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, httpErr := c.post(ctx, endpoint, body)
	if httpErr != nil {
		c.log.Error("llm.generate.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: %v", common.ErrModelCall, httpErr)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.generate.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: decode response: %v", common.ErrModelCall, err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.generate.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: no choices in response", common.ErrModelCall)
	}
	content := strings.TrimSpace(cc.Choices[0].Message.Content)

	c.log.Info("llm.generate.ok",
		"req_id", rid,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, err := llm.SendJSON(ctx, c.h, url, body, headers, c.log)
	if err != nil {
		if status > 0 {
			return nil, fmt.Errorf("openai status %d: %s", status, raw)
		}
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	return raw, nil
}
