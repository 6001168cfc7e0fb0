// Package testutil provides shared test helpers: temp vaults and scripted
// fakes for the LLM client and web searcher.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/websearch"
)

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) *storage.FS {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeLLM replays scripted replies in order; the last reply repeats once the
// script runs out. Set Err to fail every call, or ReplyFunc to take over.
type FakeLLM struct {
	Replies   []string
	Err       error
	ReplyFunc func(req llm.CompletionRequest) (string, error)

	Requests []llm.CompletionRequest
	calls    int
}

// Complete records the request and returns the next scripted reply.
func (f *FakeLLM) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.Requests = append(f.Requests, req)
	if f.ReplyFunc != nil {
		return f.ReplyFunc(req)
	}
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Replies) == 0 {
		return "", nil
	}
	i := f.calls
	if i >= len(f.Replies) {
		i = len(f.Replies) - 1
	}
	f.calls++
	return f.Replies[i], nil
}

// FakeSearcher serves canned results per query.
type FakeSearcher struct {
	Results map[string][]websearch.Result
	Err     error

	Queries []string
}

// Search records the query and returns its canned results, truncated to count.
func (f *FakeSearcher) Search(_ context.Context, query string, count int) ([]websearch.Result, error) {
	f.Queries = append(f.Queries, query)
	if f.Err != nil {
		return nil, f.Err
	}
	results := f.Results[query]
	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}
