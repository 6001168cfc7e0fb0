// Package capture appends quick notes to the inbox checklist and processes
// pending items: each one is classified by the LLM and copied to its
// category's tracker, then checked off in the inbox.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/markdown"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/tracker"
)

// classifyTemperature keeps category replies near-deterministic.
const classifyTemperature = 0.1

const classifyPrompt = `Classify this captured note into exactly one category.

Note: %q

Categories:
- task: a single actionable to-do
- project: a multi-step effort worth tracking
- research: something to look up or investigate
- content: an idea for something to write or publish
- client: anything about a client or customer
- reference: information to keep for later
- idea: a loose idea that fits nowhere else

Reply with only the category name in lowercase, nothing else.`

// ItemResult records the outcome for one inbox item.
type ItemResult struct {
	Item     markdown.ChecklistItem
	Category Category
	Routed   bool // a line was written to the category's tracker
	Err      error
}

// Report summarizes one processing run.
type Report struct {
	Processed int // items handled without error
	Results   []ItemResult
}

// Processor owns the capture inbox.
type Processor struct {
	store  storage.Provider
	editor *tracker.Editor
	llm    llm.Client
	logger *slog.Logger

	// Now is the clock used for dated routing lines. Tests override it.
	Now func() time.Time
}

// NewProcessor creates an inbox processor.
func NewProcessor(store storage.Provider, editor *tracker.Editor, client llm.Client, logger *slog.Logger) *Processor {
	return &Processor{
		store:  store,
		editor: editor,
		llm:    client,
		logger: logger,
		Now:    time.Now,
	}
}

// Capture appends one unchecked checklist line to the inbox.
func (p *Processor) Capture(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("capture: text is empty")
	}
	return p.editor.Insert(tracker.Inbox, tracker.AnchorInbox, "- [ ] "+text)
}

// pendingItems re-reads the inbox and returns its unchecked lines. An
// unreadable inbox means zero pending items, not an error.
func (p *Processor) pendingItems() []markdown.ChecklistItem {
	data, err := p.store.Read(tracker.Inbox.Path)
	if err != nil {
		p.logger.Debug("inbox unreadable, nothing pending", slog.String("error", err.Error()))
		return nil
	}
	return markdown.Parse(data).UncheckedItems()
}

// Process classifies every pending inbox item and routes it to its
// category's tracker. Item failures are recorded per item and never abort
// the batch. Successfully routed non-task items are checked off in the
// inbox afterwards; task items stay unchecked in place.
func (p *Processor) Process(ctx context.Context) (*Report, error) {
	items := p.pendingItems()
	report := &Report{}

	for _, item := range items {
		res := ItemResult{Item: item}

		cat, err := p.categorize(ctx, item.Text)
		if err != nil {
			res.Err = err
			p.logger.Warn("classification failed",
				slog.String("item", item.Text), slog.String("error", err.Error()))
			report.Results = append(report.Results, res)
			continue
		}
		res.Category = cat

		if cat != CategoryTask {
			if err := p.route(item.Text, cat); err != nil {
				res.Err = err
				p.logger.Warn("routing failed",
					slog.String("item", item.Text), slog.String("error", err.Error()))
				report.Results = append(report.Results, res)
				continue
			}
			res.Routed = true
		}

		report.Processed++
		report.Results = append(report.Results, res)
	}

	if err := p.markProcessed(report.Results); err != nil {
		p.logger.Warn("marking processed items failed", slog.String("error", err.Error()))
	}
	return report, nil
}

// categorize asks the LLM for a label and validates it against the closed
// category set.
func (p *Processor) categorize(ctx context.Context, text string) (Category, error) {
	reply, err := p.llm.Complete(ctx, llm.CompletionRequest{
		Prompt:      fmt.Sprintf(classifyPrompt, text),
		Temperature: classifyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("categorize: %w", err)
	}
	cat, matched := ParseCategory(reply)
	if !matched {
		p.logger.Debug("unrecognized category reply, defaulting",
			slog.String("reply", reply), slog.String("default", string(cat)))
	}
	return cat, nil
}

// route copies one item to its category's destination section.
func (p *Processor) route(text string, cat Category) error {
	r, ok := routes[cat]
	if !ok {
		return fmt.Errorf("route: no destination for category %q", cat)
	}
	date := p.Now().Format("2006-01-02")
	return p.editor.Insert(r.tracker, r.anchor, r.format(text, date))
}

// markProcessed re-reads the inbox and flips successfully routed lines from
// `- [ ]` to `- [x]` by their captured line index. Assumes no interleaved
// external edit between scan and mark.
func (p *Processor) markProcessed(results []ItemResult) error {
	var toMark []ItemResult
	for _, r := range results {
		if r.Routed && r.Err == nil {
			toMark = append(toMark, r)
		}
	}
	if len(toMark) == 0 {
		return nil
	}

	data, err := p.store.Read(tracker.Inbox.Path)
	if err != nil {
		return err
	}
	doc := markdown.Parse(data)
	for _, r := range toMark {
		if !doc.CheckItem(r.Item.Line) {
			p.logger.Warn("inbox line moved, not marked",
				slog.Int("line", r.Item.Line), slog.String("item", r.Item.Text))
		}
	}
	return p.store.Write(tracker.Inbox.Path, doc.Bytes())
}
