package markdown

import (
	"regexp"
	"strings"
)

var uncheckedRe = regexp.MustCompile(`^- \[ \] (.+)$`)

// ChecklistItem is an unchecked checklist line captured with its position.
type ChecklistItem struct {
	Line int    // zero-based line index, valid until the document is edited
	Text string // item text without the checkbox marker
}

// UncheckedItems returns every `- [ ]` line in document order.
func (d *Document) UncheckedItems() []ChecklistItem {
	var out []ChecklistItem
	for i, line := range d.lines {
		if m := uncheckedRe.FindStringSubmatch(line); m != nil {
			out = append(out, ChecklistItem{Line: i, Text: m[1]})
		}
	}
	return out
}

// CheckItem flips the unchecked checklist line at the given index to checked.
// Returns false when the line no longer holds an unchecked item.
func (d *Document) CheckItem(line int) bool {
	if line < 0 || line >= len(d.lines) {
		return false
	}
	if !uncheckedRe.MatchString(d.lines[line]) {
		return false
	}
	d.lines[line] = strings.Replace(d.lines[line], "- [ ]", "- [x]", 1)
	return true
}
