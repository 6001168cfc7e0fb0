package internal

import (
	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/websearch"
)

// Option is a functional option for configuring the application.
type Option func(*App)

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithLLMClient overrides the LLM client. Used in tests.
func WithLLMClient(client llm.Client) Option {
	return func(a *App) {
		a.llmClient = client
	}
}

// WithSearcher overrides the web searcher. Used in tests.
func WithSearcher(s websearch.Searcher) Option {
	return func(a *App) {
		a.searcher = s
	}
}
