package capture

import (
	"fmt"
	"strings"

	"github.com/starford/wunjo/internal/tracker"
)

// Category is one of the seven fixed classification labels.
type Category string

const (
	CategoryTask      Category = "task"
	CategoryProject   Category = "project"
	CategoryResearch  Category = "research"
	CategoryContent   Category = "content"
	CategoryClient    Category = "client"
	CategoryReference Category = "reference"
	CategoryIdea      Category = "idea"
)

// Categories returns the closed label set in prompt order.
func Categories() []Category {
	return []Category{
		CategoryTask, CategoryProject, CategoryResearch, CategoryContent,
		CategoryClient, CategoryReference, CategoryIdea,
	}
}

// ParseCategory validates a free-text classifier reply against the label
// set. The reply is trimmed, lower-cased, and stripped of quoting before the
// membership check. Unrecognized replies map to CategoryReference; the
// second return reports whether the reply matched.
func ParseCategory(reply string) (Category, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(reply))
	cleaned = strings.Trim(cleaned, "\"'`.,!:")
	for _, c := range Categories() {
		if cleaned == string(c) {
			return c, true
		}
	}
	return CategoryReference, false
}

// route is the destination a non-task category is copied to.
type route struct {
	tracker tracker.Tracker
	anchor  string
	format  func(text, date string) string
}

// Task items are kept in place in the inbox checklist and have no route.
var routes = map[Category]route{
	CategoryProject: {
		tracker: tracker.Projects,
		anchor:  tracker.AnchorProjectIdeas,
		format:  func(text, _ string) string { return "- [ ] " + text },
	},
	CategoryResearch: {
		tracker: tracker.Research,
		anchor:  tracker.AnchorToResearch,
		format:  func(text, _ string) string { return "- " + text },
	},
	CategoryContent: {
		tracker: tracker.Content,
		anchor:  tracker.AnchorContentIdeas,
		format:  func(text, _ string) string { return "- " + text },
	},
	CategoryClient: {
		tracker: tracker.Clients,
		anchor:  tracker.AnchorClientNotes,
		format:  func(text, date string) string { return fmt.Sprintf("- %s: %s", date, text) },
	},
	CategoryIdea: {
		tracker: tracker.Inbox,
		anchor:  tracker.AnchorIdeas,
		format:  func(text, _ string) string { return "- 💡 " + text },
	},
	CategoryReference: {
		tracker: tracker.Inbox,
		anchor:  tracker.AnchorReference,
		format:  func(text, _ string) string { return "- " + text },
	},
}
