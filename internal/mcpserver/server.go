// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the tracker vault to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/wunjo/internal/capture"
	"github.com/starford/wunjo/internal/markdown"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/tracker"
)

// Server wraps the MCP server with the vault tools.
type Server struct {
	mcp       *server.MCPServer
	store     storage.Provider
	processor *capture.Processor
}

// New creates a new MCP server with all vault tools registered.
func New(store storage.Provider, processor *capture.Processor) *Server {
	s := &Server{store: store, processor: processor}

	s.mcp = server.NewMCPServer(
		"Wunjo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("capture_item",
		mcp.WithDescription("Append a thought to the capture inbox as an unchecked checklist item. "+
			"It will be classified and routed on the next processing run."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to capture")),
	), s.captureItem)

	s.mcp.AddTool(mcp.NewTool("read_tracker",
		mcp.WithDescription("Read the full markdown content of one tracker file. "+
			"See the wunjo://tracker-format resource for the file surface and its anchors."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Tracker name: inbox, projects, clients, research, content, or review")),
	), s.readTracker)

	s.mcp.AddTool(mcp.NewTool("list_trackers",
		mcp.WithDescription("List the tracker files in the vault and whether each exists yet."),
	), s.listTrackers)

	s.mcp.AddTool(mcp.NewTool("inbox_status",
		mcp.WithDescription("Report how many capture items are pending and how many are processed."),
	), s.inboxStatus)

	// Resource: tracker format contract.
	s.mcp.AddResource(
		mcp.NewResource("wunjo://tracker-format", "Tracker Format Contract",
			mcp.WithResourceDescription("The tracker files, their sections, and the anchor strings agents insert at."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTrackerFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) captureItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.processor.Capture(text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("captured: %s", text)), nil
}

func (s *Server) readTracker(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tr, ok := tracker.ByName(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown tracker: %s", name)), nil
	}
	data, err := s.store.Read(tr.Path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not created yet: %s", tr.Path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listTrackers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	existing, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	onDisk := make(map[string]bool, len(existing))
	for _, p := range existing {
		onDisk[p] = true
	}

	var lines []string
	for _, tr := range tracker.All() {
		state := "missing"
		if onDisk[tr.Path] {
			state = "exists"
		}
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", tr.Name, tr.Path, state))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) inboxStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := s.store.Read(tracker.Inbox.Path)
	if err != nil {
		return mcp.NewToolResultText("inbox not created yet: 0 pending, 0 processed"), nil
	}
	doc := markdown.Parse(data)
	pending := len(doc.UncheckedItems())
	processed := doc.CountPrefix("- [x] ")
	return mcp.NewToolResultText(fmt.Sprintf("%d pending, %d processed", pending, processed)), nil
}

func (s *Server) readTrackerFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "wunjo://tracker-format",
			MIMEType: "text/markdown",
			Text:     TrackerFormatContract,
		},
	}, nil
}
