package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestComplete(t *testing.T) {
	var gotPath string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"reference"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewChatClient(Options{Provider: "ollama", Model: "llama3.1:8b", BaseURL: srv.URL, Temperature: 0.7}, discard())
	got, err := c.Complete(context.Background(), CompletionRequest{Prompt: "classify this", Temperature: 0.1})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "reference" {
		t.Errorf("reply = %q", got)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.Temperature != 0.1 {
		t.Errorf("temperature = %v, want request override", gotBody.Temperature)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
}

func TestComplete_SystemMessageAndDefaultTemp(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewChatClient(Options{Model: "m", BaseURL: srv.URL, Temperature: 0.7}, discard())
	_, err := c.Complete(context.Background(), CompletionRequest{System: "be terse", Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
	if gotBody.Temperature != 0.7 {
		t.Errorf("temperature = %v, want configured default", gotBody.Temperature)
	}
}

func TestComplete_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewChatClient(Options{Provider: "ollama", Model: "m", BaseURL: srv.URL}, discard())
	_, err := c.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewChatClient(Options{Provider: "ollama", Model: "m", BaseURL: srv.URL}, discard())
	if _, err := c.Complete(context.Background(), CompletionRequest{Prompt: "hi"}); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestComplete_AuthHeaderOnlyWithKey(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewChatClient(Options{Model: "m", BaseURL: srv.URL}, discard())
	_, _ = c.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if auth != "" {
		t.Errorf("no key configured but Authorization = %q", auth)
	}

	c = NewChatClient(Options{Model: "m", BaseURL: srv.URL, APIKey: "sk-x"}, discard())
	_, _ = c.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	if auth != "Bearer sk-x" {
		t.Errorf("Authorization = %q", auth)
	}
}
