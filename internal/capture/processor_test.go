package capture

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/testutil"
	"github.com/starford/wunjo/internal/tracker"
)

func newProcessor(t *testing.T, fake *testutil.FakeLLM) (*Processor, *storage.FS) {
	t.Helper()
	store := testutil.TestVault(t)
	editor := tracker.NewEditor(store, testutil.Logger())
	p := NewProcessor(store, editor, fake, testutil.Logger())
	p.Now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	}
	return p, store
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		reply   string
		want    Category
		matched bool
	}{
		{"task", CategoryTask, true},
		{"  Client \n", CategoryClient, true},
		{`"idea"`, CategoryIdea, true},
		{"RESEARCH.", CategoryResearch, true},
		{"", CategoryReference, false},
		{"i cannot classify this", CategoryReference, false},
		{"tasks", CategoryReference, false},
	}
	for _, c := range cases {
		got, matched := ParseCategory(c.reply)
		if got != c.want || matched != c.matched {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v, %v", c.reply, got, matched, c.want, c.matched)
		}
	}
}

func TestCapture(t *testing.T) {
	p, store := newProcessor(t, &testutil.FakeLLM{})
	if err := p.Capture("buy stamps"); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	data, _ := store.Read(tracker.Inbox.Path)
	if !strings.Contains(string(data), "## Inbox\n- [ ] buy stamps") {
		t.Errorf("inbox = %q", data)
	}
}

func TestCapture_EmptyText(t *testing.T) {
	p, _ := newProcessor(t, &testutil.FakeLLM{})
	if err := p.Capture("   "); err == nil {
		t.Fatal("empty capture should fail")
	}
}

func TestProcess_ClientItem(t *testing.T) {
	fake := &testutil.FakeLLM{Replies: []string{"client"}}
	p, store := newProcessor(t, fake)
	_ = store.Write(tracker.Inbox.Path, []byte("# Inbox\n\n## Inbox\n- [ ] Follow up with Acme Corp\n"))

	report, err := p.Process(context.Background())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if report.Processed != 1 {
		t.Errorf("Processed = %d, want 1", report.Processed)
	}

	clients, _ := store.Read(tracker.Clients.Path)
	if !strings.Contains(string(clients), "- 2026-08-29: Follow up with Acme Corp") {
		t.Errorf("clients = %q", clients)
	}

	inbox, _ := store.Read(tracker.Inbox.Path)
	if !strings.Contains(string(inbox), "- [x] Follow up with Acme Corp") {
		t.Errorf("source line should be checked: %q", inbox)
	}
}

func TestProcess_TaskStaysUnchecked(t *testing.T) {
	fake := &testutil.FakeLLM{Replies: []string{"task"}}
	p, store := newProcessor(t, fake)
	_ = store.Write(tracker.Inbox.Path, []byte("## Inbox\n- [ ] ship the report\n"))

	report, err := p.Process(context.Background())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if report.Processed != 1 {
		t.Errorf("Processed = %d, want 1", report.Processed)
	}
	if report.Results[0].Routed {
		t.Error("task items must not be routed")
	}
	inbox, _ := store.Read(tracker.Inbox.Path)
	if !strings.Contains(string(inbox), "- [ ] ship the report") {
		t.Errorf("task line must stay unchecked: %q", inbox)
	}
}

func TestProcess_IdeaRouting(t *testing.T) {
	fake := &testutil.FakeLLM{Replies: []string{"idea"}}
	p, store := newProcessor(t, fake)
	_ = store.Write(tracker.Inbox.Path, []byte("# Inbox\n\n## Inbox\n- [ ] app that waters plants\n\n## Ideas\n\n## Reference\n"))

	if _, err := p.Process(context.Background()); err != nil {
		t.Fatalf("Process: %v", err)
	}
	inbox, _ := store.Read(tracker.Inbox.Path)
	s := string(inbox)
	if !strings.Contains(s, "## Ideas\n- 💡 app that waters plants") {
		t.Errorf("idea line missing: %q", s)
	}
	if !strings.Contains(s, "- [x] app that waters plants") {
		t.Errorf("source line should be checked: %q", s)
	}
}

func TestProcess_UnrecognizedReplyDefaultsToReference(t *testing.T) {
	fake := &testutil.FakeLLM{Replies: []string{"hmm, probably a task?"}}
	p, store := newProcessor(t, fake)
	_ = store.Write(tracker.Inbox.Path, []byte("## Inbox\n- [ ] some scrap\n"))

	report, err := p.Process(context.Background())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if report.Results[0].Category != CategoryReference {
		t.Errorf("category = %v, want reference", report.Results[0].Category)
	}
	inbox, _ := store.Read(tracker.Inbox.Path)
	if !strings.Contains(string(inbox), "- some scrap") {
		t.Errorf("reference line missing: %q", inbox)
	}
}

func TestProcess_PerItemFailureIsolation(t *testing.T) {
	calls := 0
	fake := &testutil.FakeLLM{ReplyFunc: func(llm.CompletionRequest) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection refused")
		}
		return "research", nil
	}}
	p, store := newProcessor(t, fake)
	_ = store.Write(tracker.Inbox.Path, []byte("## Inbox\n- [ ] first fails\n- [ ] second works\n"))

	report, err := p.Process(context.Background())
	if err != nil {
		t.Fatalf("Process must not fail on item errors: %v", err)
	}
	if report.Processed != 1 {
		t.Errorf("Processed = %d, want 1", report.Processed)
	}
	if report.Results[0].Err == nil {
		t.Error("first item should record its error")
	}
	if report.Results[1].Err != nil || !report.Results[1].Routed {
		t.Errorf("second item should succeed: %+v", report.Results[1])
	}

	inbox, _ := store.Read(tracker.Inbox.Path)
	s := string(inbox)
	if !strings.Contains(s, "- [ ] first fails") {
		t.Errorf("failed item must stay unchecked: %q", s)
	}
	if !strings.Contains(s, "- [x] second works") {
		t.Errorf("routed item must be checked: %q", s)
	}
}

func TestProcess_MissingInboxIsEmptyRun(t *testing.T) {
	p, _ := newProcessor(t, &testutil.FakeLLM{})
	report, err := p.Process(context.Background())
	if err != nil {
		t.Fatalf("missing inbox must not be an error: %v", err)
	}
	if report.Processed != 0 || len(report.Results) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestProcess_ClassifierTemperature(t *testing.T) {
	fake := &testutil.FakeLLM{Replies: []string{"task"}}
	p, store := newProcessor(t, fake)
	_ = store.Write(tracker.Inbox.Path, []byte("## Inbox\n- [ ] x\n"))

	if _, err := p.Process(context.Background()); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(fake.Requests) != 1 {
		t.Fatalf("requests = %d", len(fake.Requests))
	}
	if fake.Requests[0].Temperature != classifyTemperature {
		t.Errorf("temperature = %v, want %v", fake.Requests[0].Temperature, classifyTemperature)
	}
	if !strings.Contains(fake.Requests[0].Prompt, `"x"`) {
		t.Errorf("prompt should embed the item text: %q", fake.Requests[0].Prompt)
	}
}
