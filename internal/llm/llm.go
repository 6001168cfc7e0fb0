// Package llm provides a minimal text-completion client for local or hosted
// OpenAI-compatible chat endpoints. One request, one response: no streaming,
// no retries.
package llm

import (
	"context"
	"time"
)

// Client issues a single text-completion call.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest carries one prompt and its sampling parameters.
// A zero Temperature means "use the configured default".
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Options configures the HTTP client.
type Options struct {
	Provider    string
	Model       string
	BaseURL     string // e.g. http://localhost:11434/v1
	APIKey      string // empty for local ollama
	Timeout     time.Duration
	Temperature float64 // default sampling temperature
}
