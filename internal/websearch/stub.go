package websearch

import (
	"context"
	"fmt"
	"net/url"
)

// Stub is the no-credentials fallback: it returns a single placeholder
// result per query so synthesis downstream always has at least one source.
type Stub struct{}

// Search returns one placeholder result.
func (Stub) Search(_ context.Context, query string, _ int) ([]Result, error) {
	return []Result{{
		Title:   fmt.Sprintf("Placeholder result for %q", query),
		URL:     "https://example.com/search?q=" + url.QueryEscape(query),
		Snippet: "Web search is not configured. Set BRAVE_API_KEY to fetch real sources.",
	}}, nil
}
