// Package tracker defines the fixed markdown file surface the agents write
// to, and the section editor that splices fragments into those files.
package tracker

import "fmt"

// Anchor strings the editor matches verbatim. They are a contract between
// the agents and the tracker templates: renaming a heading in a file sends
// that agent's inserts to a freshly appended section instead.
const (
	AnchorInbox        = "## Inbox"
	AnchorIdeas        = "## Ideas"
	AnchorReference    = "## Reference"
	AnchorProjectIdeas = "## Project Ideas"
	AnchorClientNotes  = "## Client Notes"
	AnchorToResearch   = "## To Research"
	AnchorContentIdeas = "## Content Ideas"
	AnchorDrafts       = "## Drafts"
)

// Tracker identifies one markdown file in the vault.
type Tracker struct {
	Name    string   // short name used by the CLI and MCP tools
	Path    string   // file path relative to the vault root
	Title   string   // H1 used when the file is created on first write
	Divided bool     // boilerplate carries a leading --- divider
	Anchors []string // sections seeded into the boilerplate
}

// The fixed file surface.
var (
	Inbox = Tracker{
		Name: "inbox", Path: "inbox.md", Title: "Inbox",
		Anchors: []string{AnchorInbox, AnchorIdeas, AnchorReference},
	}
	Projects = Tracker{
		Name: "projects", Path: "projects.md", Title: "Projects",
		Anchors: []string{AnchorProjectIdeas},
	}
	Clients = Tracker{
		Name: "clients", Path: "clients.md", Title: "Clients",
		Anchors: []string{AnchorClientNotes},
	}
	Research = Tracker{
		Name: "research", Path: "research.md", Title: "Research Notes",
		Divided: true,
		Anchors: []string{AnchorToResearch},
	}
	Content = Tracker{
		Name: "content", Path: "content.md", Title: "Content Drafts",
		Anchors: []string{AnchorDrafts, AnchorContentIdeas},
	}
	Review = Tracker{
		Name: "review", Path: "review.md", Title: "Weekly Reviews",
		Divided: true,
	}
)

// All returns every tracker in the vault.
func All() []Tracker {
	return []Tracker{Inbox, Projects, Clients, Research, Content, Review}
}

// ByName resolves a tracker by its short name.
func ByName(name string) (Tracker, bool) {
	for _, t := range All() {
		if t.Name == name {
			return t, true
		}
	}
	return Tracker{}, false
}

// Boilerplate renders the minimal document written when the tracker file is
// missing: an H1, an optional divider, and the tracker's seed sections.
func (t Tracker) Boilerplate() string {
	out := fmt.Sprintf("# %s\n", t.Title)
	if t.Divided {
		out += "\n---\n"
	}
	for _, a := range t.Anchors {
		out += "\n" + a + "\n"
	}
	return out
}
