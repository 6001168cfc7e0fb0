package tracker

import (
	"errors"
	"log/slog"
	"os"

	"github.com/starford/wunjo/internal/markdown"
	"github.com/starford/wunjo/internal/storage"
)

// Editor splices text fragments into tracker files at named anchors.
// Mutations are whole-file read-modify-write; the last writer wins.
type Editor struct {
	store  storage.Provider
	logger *slog.Logger
}

// NewEditor creates an editor over the given vault storage.
func NewEditor(store storage.Provider, logger *slog.Logger) *Editor {
	return &Editor{store: store, logger: logger}
}

// Load reads a tracker into a Document, synthesizing the boilerplate when
// the file does not exist yet.
func (e *Editor) Load(t Tracker) (*markdown.Document, error) {
	data, err := e.store.Read(t.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.logger.Debug("tracker missing, using boilerplate", slog.String("path", t.Path))
			return markdown.Parse([]byte(t.Boilerplate())), nil
		}
		return nil, err
	}
	return markdown.Parse(data), nil
}

// Save writes a document back to the tracker file.
func (e *Editor) Save(t Tracker, doc *markdown.Document) error {
	return e.store.Write(t.Path, doc.Bytes())
}

// Insert places fragment immediately after anchor in the tracker file,
// appending a freshly labeled section when the anchor is absent. The file is
// created with boilerplate on first write.
func (e *Editor) Insert(t Tracker, anchor, fragment string) error {
	doc, err := e.Load(t)
	if err != nil {
		return err
	}
	if !doc.InsertAfter(anchor, fragment) {
		e.logger.Warn("anchor not found, appending new section",
			slog.String("path", t.Path), slog.String("anchor", anchor))
		doc.AppendSection(anchor, fragment)
	}
	return e.Save(t, doc)
}

// PrependAfterDivider places fragment right after the tracker's first `---`
// divider so the file reads newest-first, appending at end of file when no
// divider exists.
func (e *Editor) PrependAfterDivider(t Tracker, fragment string) error {
	doc, err := e.Load(t)
	if err != nil {
		return err
	}
	if !doc.PrependAfterDivider(fragment) {
		e.logger.Warn("divider not found, appending at end", slog.String("path", t.Path))
		doc.Append(fragment)
	}
	return e.Save(t, doc)
}
