package llm

import "context"

// ChatRequest is one chat-completion call. When ImageDataURL is set the
// user message carries the image alongside the text (vision call).
type ChatRequest struct {
	Model        string // empty -> client default
	System       string
	User         string
	ImageDataURL string
	Temperature  float32
	MaxTokens    int
}

// Generator is the interface the pipelines depend on: prompt in, raw
// free-text model output out.
type Generator interface {
	Generate(ctx context.Context, req ChatRequest) (string, error)
}
