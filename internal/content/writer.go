// Package content generates typed, toned drafts from a topic, optionally
// grounded in prior research notes, and saves them to the drafts tracker.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/wunjo/internal/llm"
	"github.com/starford/wunjo/internal/markdown"
	"github.com/starford/wunjo/internal/storage"
	"github.com/starford/wunjo/internal/tracker"
)

// Type selects the shape of the generated draft.
type Type string

const (
	TypeBlog    Type = "blog"
	TypeSocial  Type = "social"
	TypeEmail   Type = "email"
	TypeScript  Type = "script"
	TypeOutline Type = "outline"
	TypeThread  Type = "thread"
)

// Tone selects the voice of the generated draft.
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneFriendly      Tone = "friendly"
	ToneAuthoritative Tone = "authoritative"
	ToneWitty         Tone = "witty"
)

var typeInstructions = map[Type]string{
	TypeBlog: "Write a complete blog post: a hook opening, descriptive " +
		"subheadings, short paragraphs, and a closing takeaway. 600-900 words.",
	TypeSocial: "Write a single social media post under 280 characters. " +
		"One sharp idea, no hashtag spam (2 at most).",
	TypeEmail: "Write an email: subject line on the first line, then a " +
		"greeting, 2-3 short paragraphs, and a clear call to action.",
	TypeScript: "Write a video script with [SCENE] markers, spoken lines, " +
		"and delivery notes in parentheses. Aim for 2-3 minutes of speech.",
	TypeOutline: "Write a detailed outline: numbered top-level points with " +
		"nested sub-points, no prose paragraphs.",
	TypeThread: "Write a numbered thread of 5-8 posts. Post 1 hooks, each " +
		"post stands alone, the last one summarizes and invites replies.",
}

var toneGuidance = map[Tone]string{
	ToneProfessional:  "Polished and precise. No slang, no exclamation marks.",
	ToneCasual:        "Relaxed and conversational, like explaining to a colleague over coffee.",
	ToneFriendly:      "Warm and encouraging. Address the reader directly.",
	ToneAuthoritative: "Confident and direct. State positions plainly, back them with specifics.",
	ToneWitty:         "Light and clever. Dry humor is fine; never at the reader's expense.",
}

// Options configures one draft.
type Options struct {
	Type     Type
	Tone     Tone
	Audience string // optional
	Context  string // optional free-text context
}

// Writer generates and files content drafts.
type Writer struct {
	llm    llm.Client
	store  storage.Provider
	editor *tracker.Editor
	logger *slog.Logger

	// Now is the clock used for draft metadata. Tests override it.
	Now func() time.Time
}

// NewWriter creates a content writer.
func NewWriter(client llm.Client, store storage.Provider, editor *tracker.Editor, logger *slog.Logger) *Writer {
	return &Writer{
		llm:    client,
		store:  store,
		editor: editor,
		logger: logger,
		Now:    time.Now,
	}
}

// Write generates a draft for topic and saves it under the drafts section.
// The generated text is returned verbatim. An LLM failure aborts the call.
func (w *Writer) Write(ctx context.Context, topic string, opts Options) (string, error) {
	instructions, ok := typeInstructions[opts.Type]
	if !ok {
		return "", fmt.Errorf("content: unknown type %q", opts.Type)
	}
	guidance, ok := toneGuidance[opts.Tone]
	if !ok {
		return "", fmt.Errorf("content: unknown tone %q", opts.Tone)
	}

	research := w.relevantResearch(topic)
	if research != "" {
		w.logger.Debug("research excerpt attached", slog.String("topic", topic))
	}

	text, err := w.llm.Complete(ctx, llm.CompletionRequest{
		Prompt: buildPrompt(topic, instructions, guidance, opts, research),
	})
	if err != nil {
		return "", fmt.Errorf("content: generate: %w", err)
	}

	if err := w.save(topic, opts, text); err != nil {
		return "", err
	}
	return text, nil
}

// Convenience wrappers fixing the draft type.

func (w *Writer) Blog(ctx context.Context, topic string, opts Options) (string, error) {
	opts.Type = TypeBlog
	return w.Write(ctx, topic, opts)
}

func (w *Writer) Social(ctx context.Context, topic string, opts Options) (string, error) {
	opts.Type = TypeSocial
	return w.Write(ctx, topic, opts)
}

func (w *Writer) Email(ctx context.Context, topic string, opts Options) (string, error) {
	opts.Type = TypeEmail
	return w.Write(ctx, topic, opts)
}

func (w *Writer) Script(ctx context.Context, topic string, opts Options) (string, error) {
	opts.Type = TypeScript
	return w.Write(ctx, topic, opts)
}

func (w *Writer) Outline(ctx context.Context, topic string, opts Options) (string, error) {
	opts.Type = TypeOutline
	return w.Write(ctx, topic, opts)
}

func (w *Writer) Thread(ctx context.Context, topic string, opts Options) (string, error) {
	opts.Type = TypeThread
	return w.Write(ctx, topic, opts)
}

// relevantResearch returns up to two sections of the research tracker whose
// text mentions any topic keyword (words longer than 3 characters). A
// missing or unreadable research file contributes nothing.
func (w *Writer) relevantResearch(topic string) string {
	data, err := w.store.Read(tracker.Research.Path)
	if err != nil {
		return ""
	}

	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(topic)) {
		if len(word) > 3 {
			keywords = append(keywords, word)
		}
	}
	if len(keywords) == 0 {
		return ""
	}

	var picked []string
	for _, sec := range markdown.Parse(data).Sections("## ") {
		if len(picked) == 2 {
			break
		}
		body := strings.ToLower(sec.Body)
		for _, kw := range keywords {
			if strings.Contains(body, kw) {
				picked = append(picked, sec.Body)
				break
			}
		}
	}
	return strings.Join(picked, "\n\n")
}

func buildPrompt(topic, instructions, guidance string, opts Options, research string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create content about: %s\n\n", topic)
	if opts.Audience != "" {
		fmt.Fprintf(&sb, "Audience: %s\n", opts.Audience)
	}
	fmt.Fprintf(&sb, "Tone: %s\n\n", guidance)
	if opts.Context != "" {
		fmt.Fprintf(&sb, "Additional context:\n%s\n\n", opts.Context)
	}
	if research != "" {
		fmt.Fprintf(&sb, "Relevant research notes:\n%s\n\n", research)
	}
	sb.WriteString(instructions)
	return sb.String()
}

// save files the draft under the drafts section with its metadata line.
func (w *Writer) save(topic string, opts Options, text string) error {
	fragment := fmt.Sprintf("### %s\n\n*Type: %s | Tone: %s | Created: %s*\n\n%s\n",
		topic, opts.Type, opts.Tone, w.Now().Format("2006-01-02"), strings.TrimSpace(text))
	if err := w.editor.Insert(tracker.Content, tracker.AnchorDrafts, fragment); err != nil {
		return fmt.Errorf("content: save draft: %w", err)
	}
	return nil
}
