package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/wunjo/internal"
	"github.com/starford/wunjo/internal/capture"
	"github.com/starford/wunjo/internal/content"
	"github.com/starford/wunjo/internal/research"
	pkgconfig "github.com/starford/wunjo/pkg/config"
)

func loadApp(cmd *cli.Command) (*internal.App, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	loaded, err := pkgconfig.LoadIfExists(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app, err := internal.NewApp(internal.WithConfig(cfg))
	if err != nil {
		return nil, err
	}
	if !loaded {
		app.Logger().Debug("no config file found, using defaults")
	}
	return app, nil
}

func captureAction(ctx context.Context, cmd *cli.Command) error {
	text := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("usage: wunjo capture <text>")
	}
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if err := app.Processor.Capture(text); err != nil {
		return err
	}
	fmt.Printf("Captured: %s\n", text)
	return nil
}

func processAction(ctx context.Context, cmd *cli.Command) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("watch") {
		return app.RunWatch(ctx)
	}
	report, err := app.Processor.Process(ctx)
	if err != nil {
		return err
	}
	fmt.Print(formatProcessReport(report))
	return nil
}

func formatProcessReport(report *capture.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Processed %d of %d pending items\n", report.Processed, len(report.Results))
	for _, r := range report.Results {
		if r.Err != nil {
			fmt.Fprintf(&sb, "  skipped %q: %v\n", r.Item.Text, r.Err)
			continue
		}
		fmt.Fprintf(&sb, "  %s -> %s\n", r.Item.Text, r.Category)
	}
	return sb.String()
}

func researchAction(ctx context.Context, cmd *cli.Command) error {
	topic := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if topic == "" {
		return fmt.Errorf("usage: wunjo research [--quick|--deep] <topic>")
	}
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	depth := research.DepthStandard
	if cmd.Bool("quick") {
		depth = research.DepthQuick
	}
	if cmd.Bool("deep") {
		depth = research.DepthDeep
	}

	report, err := app.Research.Run(ctx, topic, depth, cmd.String("context"))
	if err != nil {
		return err
	}
	fmt.Printf("Researched %q at %s depth: %d queries, %d sources. Saved to research.md.\n",
		report.Topic, report.Depth, len(report.Queries), len(report.Sources))
	return nil
}

func writeAction(ctx context.Context, cmd *cli.Command) error {
	topic := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if topic == "" {
		return fmt.Errorf("usage: wunjo write [--type t] [--tone t] <topic>")
	}
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	text, err := app.Writer.Write(ctx, topic, content.Options{
		Type:     content.Type(cmd.String("type")),
		Tone:     content.Tone(cmd.String("tone")),
		Audience: cmd.String("audience"),
		Context:  cmd.String("context"),
	})
	if err != nil {
		return err
	}
	fmt.Println(text)
	fmt.Fprintln(os.Stderr, "Saved draft to content.md.")
	return nil
}

func reviewAction(ctx context.Context, cmd *cli.Command) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	rendered, err := app.Review.Generate(ctx)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	fmt.Fprintln(os.Stderr, "Saved review to review.md.")
	return nil
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	return app.RunMCP()
}

func main() {
	cmd := &cli.Command{
		Name:  "wunjo",
		Usage: "Personal productivity agents over a plain-markdown tracker vault",
		// Bare or unrecognized invocations print usage and exit clean.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("WUNJO_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "capture",
				Usage:     "Add a thought to the inbox for later processing",
				ArgsUsage: "<text>",
				Action:    captureAction,
			},
			{
				Name:   "process",
				Usage:  "Classify pending inbox items and route them to their trackers",
				Action: processAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Keep running and process whenever the inbox file changes",
					},
				},
			},
			{
				Name:      "research",
				Usage:     "Research a topic on the web and file a cited report",
				ArgsUsage: "<topic>",
				Action:    researchAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "quick",
						Usage: "Quick pass: 1 query, 2 sources",
					},
					&cli.BoolFlag{
						Name:  "deep",
						Usage: "Deep pass: 5 queries, 10 sources (wins over --quick)",
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Extra context to steer the research",
					},
				},
			},
			{
				Name:      "write",
				Usage:     "Draft content on a topic, grounded in prior research",
				ArgsUsage: "<topic>",
				Action:    writeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Content type: blog, social, email, script, outline, thread",
						Value: string(content.TypeBlog),
					},
					&cli.StringFlag{
						Name:  "tone",
						Usage: "Tone: professional, casual, friendly, authoritative, witty",
						Value: string(content.ToneProfessional),
					},
					&cli.StringFlag{
						Name:  "audience",
						Usage: "Intended audience",
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Extra context for the draft",
					},
				},
			},
			{
				Name:   "review",
				Usage:  "Generate the weekly review from the tracker files",
				Action: reviewAction,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the trackers as MCP tools over stdio",
				Action: mcpAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
