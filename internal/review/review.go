// Package review scans the tracker files for activity counts, asks the LLM
// for an executive summary, and prepends the rendered review into the
// newest-first archive.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/markdown"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/tracker"
)

// listLimit caps how many items each review list shows.
const listLimit = 5

var (
	onTrackRe    = regexp.MustCompile(`🟢`)
	atRiskRe     = regexp.MustCompile(`🟡`)
	blockedRe    = regexp.MustCompile(`🔴`)
	clientLineRe = regexp.MustCompile(`^- \d{4}-\d{2}-\d{2}:`)
)

// Data holds the gathered metrics. All counts are cumulative totals over the
// current file contents, not week-scoped deltas.
type Data struct {
	ProjectsOnTrack int
	ProjectsAtRisk  int
	ProjectsBlocked int

	CapturesDone int
	CapturesOpen int
	OpenTasks    []string

	ResearchTopics []string
	ContentDrafts  []string

	ClientEntries int
}

// Generator produces weekly reviews.
type Generator struct {
	store  storage.Provider
	llm    llm.Client
	editor *tracker.Editor
	logger *slog.Logger

	// Now is the clock used for the week label. Tests override it.
	Now func() time.Time
}

// NewGenerator creates a weekly review generator.
func NewGenerator(store storage.Provider, client llm.Client, editor *tracker.Editor, logger *slog.Logger) *Generator {
	return &Generator{
		store:  store,
		llm:    client,
		editor: editor,
		logger: logger,
		Now:    time.Now,
	}
}

// WeekStart returns the most recent Monday 00:00 in now's location.
// Monday itself counts as its own week start. Used only as a label.
func WeekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	day := now.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// Generate gathers metrics, asks the LLM for a summary, and prepends the
// rendered review into the archive. The rendered review is returned.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	data := g.gatherData()

	summary, err := g.generateSummary(ctx, data)
	if err != nil {
		return "", err
	}

	rendered := formatReview(WeekStart(g.Now()), data, summary)
	if err := g.editor.PrependAfterDivider(tracker.Review, rendered); err != nil {
		return "", fmt.Errorf("review: save: %w", err)
	}
	return rendered, nil
}

// gatherData scans the four tracker files independently. A file that cannot
// be read leaves its metrics at zero; partial data is never fatal.
func (g *Generator) gatherData() *Data {
	data := &Data{}

	if doc := g.load(tracker.Projects); doc != nil {
		data.ProjectsOnTrack = doc.CountPattern(onTrackRe)
		data.ProjectsAtRisk = doc.CountPattern(atRiskRe)
		data.ProjectsBlocked = doc.CountPattern(blockedRe)
	}

	if doc := g.load(tracker.Inbox); doc != nil {
		data.CapturesDone = doc.CountPrefix("- [x] ")
		data.CapturesOpen = doc.CountPrefix("- [ ] ")
		for _, item := range doc.UncheckedItems() {
			data.OpenTasks = append(data.OpenTasks, item.Text)
		}
	}

	if doc := g.load(tracker.Research); doc != nil {
		for _, title := range doc.SectionTitles("## ") {
			if title == "To Research" {
				continue
			}
			data.ResearchTopics = append(data.ResearchTopics, title)
		}
	}

	if doc := g.load(tracker.Content); doc != nil {
		data.ContentDrafts = doc.SectionTitles("### ")
	}

	if doc := g.load(tracker.Clients); doc != nil {
		data.ClientEntries = doc.CountPattern(clientLineRe)
	}

	return data
}

func (g *Generator) load(t tracker.Tracker) *markdown.Document {
	data, err := g.store.Read(t.Path)
	if err != nil {
		g.logger.Debug("tracker unreadable, metric stays zero",
			slog.String("path", t.Path), slog.String("error", err.Error()))
		return nil
	}
	return markdown.Parse(data)
}

const summaryPrompt = `Write a weekly review summary from these productivity totals.

Projects: %d on track, %d at risk, %d blocked
Captures: %d processed, %d still open
Research topics on file: %d (%s)
Content drafts on file: %d (%s)
Client log entries: %d

Open tasks:
%s
Write 2-3 sentences summarizing the state of the system, then 2-3 bullet
points starting with "- " naming what to focus on next week. Plain text only.`

// generateSummary formats the gathered counts into one prompt and returns
// the model's reply verbatim.
func (g *Generator) generateSummary(ctx context.Context, data *Data) (string, error) {
	reply, err := g.llm.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(summaryPrompt,
			data.ProjectsOnTrack, data.ProjectsAtRisk, data.ProjectsBlocked,
			data.CapturesDone, data.CapturesOpen,
			len(data.ResearchTopics), strings.Join(truncate(data.ResearchTopics), "; "),
			len(data.ContentDrafts), strings.Join(truncate(data.ContentDrafts), "; "),
			data.ClientEntries,
			bulleted(truncate(data.OpenTasks))),
	})
	if err != nil {
		return "", fmt.Errorf("review: summary: %w", err)
	}
	return reply, nil
}

// formatReview renders the fixed review template.
func formatReview(weekStart time.Time, data *Data, summary string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Week of %s\n\n", weekStart.Format("2006-01-02"))
	sb.WriteString(strings.TrimSpace(summary))
	sb.WriteString("\n\n### Totals to date\n\n")
	sb.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Projects on track | %d |\n", data.ProjectsOnTrack)
	fmt.Fprintf(&sb, "| Projects at risk | %d |\n", data.ProjectsAtRisk)
	fmt.Fprintf(&sb, "| Projects blocked | %d |\n", data.ProjectsBlocked)
	fmt.Fprintf(&sb, "| Captures processed | %d |\n", data.CapturesDone)
	fmt.Fprintf(&sb, "| Captures open | %d |\n", data.CapturesOpen)
	fmt.Fprintf(&sb, "| Research topics | %d |\n", len(data.ResearchTopics))
	fmt.Fprintf(&sb, "| Content drafts | %d |\n", len(data.ContentDrafts))
	fmt.Fprintf(&sb, "| Client entries | %d |\n", data.ClientEntries)

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n### %s\n\n%s\n", title, bulleted(truncate(items)))
	}
	writeList("Open tasks", data.OpenTasks)
	writeList("Research topics", data.ResearchTopics)
	writeList("Content drafts", data.ContentDrafts)

	return sb.String()
}

func truncate(items []string) []string {
	if len(items) > listLimit {
		return items[:listLimit]
	}
	return items
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return "- none"
	}
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- " + item)
	}
	return sb.String()
}
