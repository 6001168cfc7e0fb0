// Package internal provides the application wiring for the wunjo agents.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/wunjo/internal/capture"
	"github.com/starford/wunjo/internal/content"
	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/mcpserver"
	"github.com/starford/wunjo/internal/research"
	"github.com/starford/wunjo/internal/review"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/tracker"
	"github.com/starford/wunjo/internal/websearch"
)

// App holds the wired-up agents and their shared dependencies.
type App struct {
	config    *Config
	logger    *slog.Logger
	store     storage.Provider
	editor    *tracker.Editor
	llmClient llm.Client
	searcher  websearch.Searcher

	Processor *capture.Processor
	Research  *research.Agent
	Writer    *content.Writer
	Review    *review.Generator
}

// NewApp builds the application from the given options.
func NewApp(opts ...Option) (*App, error) {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	app.logger = logger

	logger.Debug("Configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.Model),
		slog.Bool("search_enabled", cfg.Search.SearchEnabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure vault directory exists.
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	app.store = store
	app.editor = tracker.NewEditor(store, logger)

	if app.llmClient == nil {
		app.llmClient = llm.NewChatClient(llm.Options{
			Provider:    cfg.LLM.Provider,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			APIKey:      cfg.LLM.APIKey,
			Timeout:     cfg.LLM.Timeout,
			Temperature: cfg.LLM.Temperature,
		}, logger)
	}

	if app.searcher == nil {
		apiKey := cfg.Search.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("BRAVE_API_KEY")
		}
		app.searcher = websearch.New(websearch.Options{
			Provider: cfg.Search.Provider,
			APIKey:   apiKey,
			Timeout:  cfg.Search.Timeout,
		}, logger)
	}

	app.Processor = capture.NewProcessor(store, app.editor, app.llmClient, logger)
	app.Research = research.NewAgent(app.llmClient, app.searcher, app.editor, logger)
	app.Writer = content.NewWriter(app.llmClient, store, app.editor, logger)
	app.Review = review.NewGenerator(store, app.llmClient, app.editor, logger)

	return app, nil
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// RunWatch runs the capture processor in watch mode until interrupted.
func (a *App) RunWatch(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	watchCtx, cancel := context.WithCancel(gCtx)

	g.Go(func() error {
		defer cancel()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}
		return nil
	})

	g.Go(func() error {
		return a.Processor.Watch(watchCtx, a.config.Vault.Path, capture.DefaultDebounce)
	})

	return g.Wait()
}

// RunMCP serves the MCP tools over stdio until the client disconnects.
func (a *App) RunMCP() error {
	srv := mcpserver.New(a.store, a.Processor)
	a.logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
