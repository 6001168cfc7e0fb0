package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/wunjo/internal/capture"
	"github.com/starford/wunjo/internal/markdown"
)

func TestFormatProcessReport(t *testing.T) {
	report := &capture.Report{
		Processed: 2,
		Results: []capture.ItemResult{
			{Item: markdown.ChecklistItem{Line: 3, Text: "Follow up with Acme Corp"}, Category: capture.CategoryClient, Routed: true},
			{Item: markdown.ChecklistItem{Line: 4, Text: "buy milk"}, Category: capture.CategoryTask},
			{Item: markdown.ChecklistItem{Line: 5, Text: "flaky note"}, Err: errors.New("llm timeout")},
		},
	}

	out := formatProcessReport(report)

	if !strings.Contains(out, "Processed 2 of 3 pending items") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "  Follow up with Acme Corp -> client") {
		t.Errorf("routed item should print its text and category:\n%s", out)
	}
	if !strings.Contains(out, "  buy milk -> task") {
		t.Errorf("task item should print its text:\n%s", out)
	}
	if !strings.Contains(out, `  skipped "flaky note": llm timeout`) {
		t.Errorf("failed item should print its text and error:\n%s", out)
	}
	// Item lines must render the text, never the struct's fields.
	if strings.Contains(out, "{") || strings.Contains(out, "%!") {
		t.Errorf("output leaks struct formatting:\n%s", out)
	}
}

func TestFormatProcessReport_Empty(t *testing.T) {
	out := formatProcessReport(&capture.Report{})
	if out != "Processed 0 of 0 pending items\n" {
		t.Errorf("empty report = %q", out)
	}
}
