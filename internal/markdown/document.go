// Package markdown provides line-level operations on tracker documents:
// anchor-relative inserts, divider prepends, checklist scans, and the
// pattern counts the weekly review is built from.
package markdown

import (
	"regexp"
	"strings"
)

// Document is a markdown file held as an ordered list of lines.
// Parse and Bytes round-trip any input unchanged.
type Document struct {
	lines []string
}

// Parse splits raw bytes into a Document.
func Parse(data []byte) *Document {
	return &Document{lines: strings.Split(string(data), "\n")}
}

// Bytes serializes the document back to raw bytes.
func (d *Document) Bytes() []byte {
	return []byte(strings.Join(d.lines, "\n"))
}

func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Lines returns a copy of the document's lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// InsertAfter inserts fragment at the start of the line following the first
// line containing anchor. It returns false when the anchor is absent, leaving
// the document unchanged. Repeated inserts grow downward from the anchor,
// most recent first.
func (d *Document) InsertAfter(anchor, fragment string) bool {
	for i, line := range d.lines {
		if strings.Contains(line, anchor) {
			d.insertLines(i+1, fragmentLines(fragment))
			return true
		}
	}
	return false
}

// AppendSection appends a freshly labeled section at end of file:
// a blank line, the heading, a blank line, then the fragment.
func (d *Document) AppendSection(heading, fragment string) {
	for len(d.lines) > 0 && d.lines[len(d.lines)-1] == "" {
		d.lines = d.lines[:len(d.lines)-1]
	}
	d.lines = append(d.lines, "", heading, "")
	d.lines = append(d.lines, fragmentLines(fragment)...)
	d.lines = append(d.lines, "")
}

// Append adds fragment at end of file, separated by a blank line.
func (d *Document) Append(fragment string) {
	for len(d.lines) > 0 && d.lines[len(d.lines)-1] == "" {
		d.lines = d.lines[:len(d.lines)-1]
	}
	if len(d.lines) > 0 {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, fragmentLines(fragment)...)
	d.lines = append(d.lines, "")
}

// PrependAfterDivider inserts fragment immediately after the first `---`
// divider line, preserving everything below it. Returns false when the
// document has no divider.
func (d *Document) PrependAfterDivider(fragment string) bool {
	for i, line := range d.lines {
		if strings.TrimSpace(line) == "---" {
			d.insertLines(i+1, append([]string{""}, fragmentLines(fragment)...))
			return true
		}
	}
	return false
}

func (d *Document) insertLines(at int, ins []string) {
	if at > len(d.lines) {
		at = len(d.lines)
	}
	rest := make([]string, len(d.lines[at:]))
	copy(rest, d.lines[at:])
	d.lines = append(d.lines[:at], append(ins, rest...)...)
}

// fragmentLines splits a fragment into lines, dropping a single trailing
// newline so callers can pass fragments with or without one.
func fragmentLines(fragment string) []string {
	return strings.Split(strings.TrimRight(fragment, "\n"), "\n")
}

// CountPrefix returns how many lines start with prefix.
func (d *Document) CountPrefix(prefix string) int {
	n := 0
	for _, line := range d.lines {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

// CountPattern returns the total number of pattern matches across all lines.
func (d *Document) CountPattern(re *regexp.Regexp) int {
	n := 0
	for _, line := range d.lines {
		n += len(re.FindAllString(line, -1))
	}
	return n
}

// SectionTitles returns the trimmed remainder of every line starting with
// prefix, in document order.
func (d *Document) SectionTitles(prefix string) []string {
	var out []string
	for _, line := range d.lines {
		if strings.HasPrefix(line, prefix) {
			out = append(out, strings.TrimSpace(strings.TrimPrefix(line, prefix)))
		}
	}
	return out
}

// Section is a heading-delimited slice of a document.
type Section struct {
	Title string
	Body  string // full section text including the heading line
}

// Sections splits the document on lines starting with prefix. Content before
// the first heading is not returned.
func (d *Document) Sections(prefix string) []Section {
	var out []Section
	start := -1
	title := ""
	flush := func(end int) {
		if start >= 0 {
			out = append(out, Section{
				Title: title,
				Body:  strings.Join(d.lines[start:end], "\n"),
			})
		}
	}
	for i, line := range d.lines {
		if strings.HasPrefix(line, prefix) {
			flush(i)
			start = i
			title = strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	flush(len(d.lines))
	return out
}
