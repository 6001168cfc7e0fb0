package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave implements Searcher against the Brave web search API.
// https://api.search.brave.com/app/documentation/web-search
type Brave struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewBrave creates a Brave searcher.
func NewBrave(opts Options, logger *slog.Logger) *Brave {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Brave{
		apiKey:   opts.APIKey,
		endpoint: braveEndpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Search queries Brave and returns up to count results.
func (b *Brave) Search(ctx context.Context, query string, count int) ([]Result, error) {
	u := fmt.Sprintf("%s?q=%s&count=%d", b.endpoint, url.QueryEscape(query), count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("websearch: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("websearch: brave returned %d: %s", resp.StatusCode, string(body))
	}

	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("websearch: decode response: %w", err)
	}

	var out []Result
	for i, r := range raw.Web.Results {
		if i >= count {
			break
		}
		out = append(out, Result{Title: r.Title, URL: r.URL, Snippet: r.Snippet})
	}
	b.logger.Debug("search finished", slog.String("query", query), slog.Int("results", len(out)))
	return out, nil
}
