package tracker

import (
	"strings"
	"testing"

	"github.com/starford/wunjo/internal/testutil"
)

func TestInsert_ExistingAnchor(t *testing.T) {
	store := testutil.TestVault(t)
	_ = store.Write(Inbox.Path, []byte("# Inbox\n\n## Inbox\n- [ ] old\n"))
	e := NewEditor(store, testutil.Logger())

	if err := e.Insert(Inbox, AnchorInbox, "- [ ] new"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	data, _ := store.Read(Inbox.Path)
	want := "# Inbox\n\n## Inbox\n- [ ] new\n- [ ] old\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestInsert_CreatesFileWithBoilerplate(t *testing.T) {
	store := testutil.TestVault(t)
	e := NewEditor(store, testutil.Logger())

	if err := e.Insert(Clients, AnchorClientNotes, "- 2026-08-29: call Acme"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	data, err := store.Read(Clients.Path)
	if err != nil {
		t.Fatalf("file should exist after first insert: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "# Clients\n") {
		t.Errorf("missing boilerplate header:\n%s", s)
	}
	if !strings.Contains(s, AnchorClientNotes+"\n- 2026-08-29: call Acme") {
		t.Errorf("fragment not under anchor:\n%s", s)
	}
}

func TestInsert_MissingAnchorAppendsSection(t *testing.T) {
	store := testutil.TestVault(t)
	_ = store.Write(Projects.Path, []byte("# Projects\n\n## Renamed Heading\n"))
	e := NewEditor(store, testutil.Logger())

	if err := e.Insert(Projects, AnchorProjectIdeas, "- [ ] idea"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	data, _ := store.Read(Projects.Path)
	s := string(data)
	if !strings.Contains(s, "\n"+AnchorProjectIdeas+"\n\n- [ ] idea\n") {
		t.Errorf("expected appended fallback section:\n%s", s)
	}
}

func TestInsert_AppendedAnchorIsFoundNextTime(t *testing.T) {
	store := testutil.TestVault(t)
	_ = store.Write(Projects.Path, []byte(""))
	e := NewEditor(store, testutil.Logger())

	_ = e.Insert(Projects, "## Gone", "one")
	_ = e.Insert(Projects, "## Gone", "two")
	data, _ := store.Read(Projects.Path)
	s := string(data)
	// Second insert finds the section appended by the first.
	if strings.Count(s, "## Gone") != 1 {
		t.Errorf("second insert should reuse the appended section:\n%s", s)
	}
	if strings.Index(s, "two") > strings.Index(s, "one") {
		t.Errorf("later insert should land first:\n%s", s)
	}
}

func TestPrependAfterDivider(t *testing.T) {
	store := testutil.TestVault(t)
	_ = store.Write(Review.Path, []byte("# Weekly Reviews\n\n---\n\n## Week of 2026-08-17\n"))
	e := NewEditor(store, testutil.Logger())

	if err := e.PrependAfterDivider(Review, "## Week of 2026-08-24\nnew entry"); err != nil {
		t.Fatalf("PrependAfterDivider: %v", err)
	}
	data, _ := store.Read(Review.Path)
	s := string(data)
	if strings.Index(s, "2026-08-24") > strings.Index(s, "2026-08-17") {
		t.Errorf("newest entry should be on top:\n%s", s)
	}
	if !strings.Contains(s, "## Week of 2026-08-17") {
		t.Errorf("prior entries must be preserved:\n%s", s)
	}
}

func TestPrependAfterDivider_NoDividerAppends(t *testing.T) {
	store := testutil.TestVault(t)
	_ = store.Write(Research.Path, []byte("# Research Notes\n"))
	e := NewEditor(store, testutil.Logger())

	if err := e.PrependAfterDivider(Research, "## Topic\nbody"); err != nil {
		t.Fatalf("PrependAfterDivider: %v", err)
	}
	data, _ := store.Read(Research.Path)
	if !strings.Contains(string(data), "## Topic\nbody") {
		t.Errorf("fragment should be appended:\n%s", data)
	}
}

func TestBoilerplate(t *testing.T) {
	b := Research.Boilerplate()
	if !strings.HasPrefix(b, "# Research Notes\n") {
		t.Errorf("boilerplate = %q", b)
	}
	if !strings.Contains(b, "\n---\n") {
		t.Error("research boilerplate should carry a divider")
	}
	if !strings.Contains(b, AnchorToResearch) {
		t.Error("research boilerplate should seed the To Research section")
	}
	if strings.Contains(Projects.Boilerplate(), "---") {
		t.Error("projects boilerplate should not carry a divider")
	}
}

func TestByName(t *testing.T) {
	tr, ok := ByName("inbox")
	if !ok || tr.Path != "inbox.md" {
		t.Errorf("ByName(inbox) = %+v, %v", tr, ok)
	}
	if _, ok := ByName("nope"); ok {
		t.Error("unknown name should miss")
	}
}
