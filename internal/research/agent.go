// Package research expands a topic into search queries, gathers web sources,
// and saves an LLM-synthesized, cited report into the research tracker.
package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/tracker"
	"github.com/starford/wunjo/internal/websearch"
)

// Depth controls how wide a research run goes.
type Depth string

const (
	DepthQuick    Depth = "quick"
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// Depth policy: queries generated and total sources kept.
var (
	depthQueries = map[Depth]int{DepthQuick: 1, DepthStandard: 3, DepthDeep: 5}
	depthSources = map[Depth]int{DepthQuick: 2, DepthStandard: 5, DepthDeep: 10}
)

// Valid reports whether d is a known depth.
func (d Depth) Valid() bool {
	_, ok := depthQueries[d]
	return ok
}

// Source is one deduplicated search hit, tagged with the query that found it.
type Source struct {
	websearch.Result
	Query string
}

// Report is the outcome of one research run.
type Report struct {
	Topic     string
	Depth     Depth
	Queries   []string
	Sources   []Source
	Synthesis string
	Date      time.Time
}

// Agent runs topic research end to end.
type Agent struct {
	llm    llm.Client
	search websearch.Searcher
	editor *tracker.Editor
	logger *slog.Logger

	// Now is the clock used for report dates. Tests override it.
	Now func() time.Time
}

// NewAgent creates a research agent.
func NewAgent(client llm.Client, search websearch.Searcher, editor *tracker.Editor, logger *slog.Logger) *Agent {
	return &Agent{
		llm:    client,
		search: search,
		editor: editor,
		logger: logger,
		Now:    time.Now,
	}
}

// Run researches a topic at the given depth and saves the report into the
// research tracker. Extra is optional free-text context for the prompts.
// LLM failures abort the run; per-query search failures only drop that
// query's sources.
func (a *Agent) Run(ctx context.Context, topic string, depth Depth, extra string) (*Report, error) {
	if !depth.Valid() {
		return nil, fmt.Errorf("research: unknown depth %q", depth)
	}

	queries, err := a.generateQueries(ctx, topic, depthQueries[depth], extra)
	if err != nil {
		return nil, err
	}
	a.logger.Info("queries generated", slog.String("topic", topic), slog.Int("count", len(queries)))

	sources := a.fetchSources(ctx, queries, depthSources[depth])
	a.logger.Info("sources collected", slog.Int("count", len(sources)))

	synthesis, err := a.synthesize(ctx, topic, sources, extra)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Topic:     topic,
		Depth:     depth,
		Queries:   queries,
		Sources:   sources,
		Synthesis: synthesis,
		Date:      a.Now(),
	}
	if err := a.editor.PrependAfterDivider(tracker.Research, formatReport(report)); err != nil {
		return nil, fmt.Errorf("research: save report: %w", err)
	}
	return report, nil
}

const queriesPrompt = `Generate %d diverse web search queries for researching this topic.

Topic: %s
%s
Cover different angles: definitions, comparisons, recent developments,
practical usage. Reply with one query per line, no numbering, no bullets.`

// generateQueries asks the LLM for count queries, guarantees the literal
// topic is among them, and truncates to count.
func (a *Agent) generateQueries(ctx context.Context, topic string, count int, extra string) ([]string, error) {
	ctxBlock := ""
	if extra != "" {
		ctxBlock = "Context: " + extra + "\n"
	}
	reply, err := a.llm.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(queriesPrompt, count, topic, ctxBlock),
	})
	if err != nil {
		return nil, fmt.Errorf("research: generate queries: %w", err)
	}

	var queries []string
	hasTopic := false
	for _, line := range strings.Split(reply, "\n") {
		q := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• "))
		if q == "" {
			continue
		}
		if q == topic {
			hasTopic = true
		}
		queries = append(queries, q)
	}
	if !hasTopic {
		queries = append([]string{topic}, queries...)
	}
	if len(queries) > count {
		queries = queries[:count]
	}
	return queries, nil
}

// fetchSources flattens per-query results in query order, deduplicating by
// URL (first occurrence wins) and stopping at the depth's source cap.
func (a *Agent) fetchSources(ctx context.Context, queries []string, limit int) []Source {
	seen := make(map[string]struct{})
	var sources []Source
	for _, q := range queries {
		if len(sources) >= limit {
			break
		}
		results, err := a.search.Search(ctx, q, limit)
		if err != nil {
			a.logger.Warn("search failed, skipping query",
				slog.String("query", q), slog.String("error", err.Error()))
			continue
		}
		for _, r := range results {
			if len(sources) >= limit {
				break
			}
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			sources = append(sources, Source{Result: r, Query: q})
		}
	}
	return sources
}

const synthesisPrompt = `You are writing a research synthesis on: %s
%s
Sources:
%s
Write a concise synthesis of these sources: key facts, points of agreement,
and open questions. Cite sources inline by their bracketed numbers, e.g. [1]
or [2][3]. Do not invent sources.`

// synthesize builds one prompt embedding every source numbered [1]..[n] and
// returns the model's reply verbatim.
func (a *Agent) synthesize(ctx context.Context, topic string, sources []Source, extra string) (string, error) {
	ctxBlock := ""
	if extra != "" {
		ctxBlock = "Context: " + extra + "\n"
	}
	var sb strings.Builder
	for i, s := range sources {
		fmt.Fprintf(&sb, "[%d] %s\n    %s\n    %s\n", i+1, s.Title, s.URL, s.Snippet)
	}
	reply, err := a.llm.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(synthesisPrompt, topic, ctxBlock, sb.String()),
	})
	if err != nil {
		return "", fmt.Errorf("research: synthesize: %w", err)
	}
	return reply, nil
}

// formatReport renders the report block saved under the topic heading.
func formatReport(r *Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", r.Topic)
	fmt.Fprintf(&sb, "*Researched: %s | Depth: %s | Sources: %d*\n\n",
		r.Date.Format("2006-01-02"), r.Depth, len(r.Sources))
	sb.WriteString(strings.TrimSpace(r.Synthesis))
	sb.WriteString("\n\n### Sources\n\n")
	for i, s := range r.Sources {
		fmt.Fprintf(&sb, "%d. [%s](%s) — %s\n", i+1, s.Title, s.URL, s.Snippet)
	}
	return sb.String()
}
