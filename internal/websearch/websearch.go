// Package websearch provides the web search providers the research agent
// draws sources from.
package websearch

import (
	"context"
	"log/slog"
	"time"
)

// Result is one search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher returns up to count results for a query.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

// Options configures the search provider.
type Options struct {
	Provider string
	APIKey   string
	Timeout  time.Duration
}

// New selects a searcher for the given options. Missing credentials select
// the stub so research runs always have at least a placeholder source.
func New(opts Options, logger *slog.Logger) Searcher {
	if opts.APIKey == "" {
		logger.Warn("no search API key configured, using placeholder results",
			slog.String("provider", opts.Provider))
		return Stub{}
	}
	return NewBrave(opts, logger)
}
