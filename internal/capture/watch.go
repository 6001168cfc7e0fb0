package capture

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/wunjo/internal/tracker"
)

// DefaultDebounce is how long the watcher waits for inbox writes to settle
// before running a processing pass.
const DefaultDebounce = 2 * time.Second

// Watch runs Process every time the inbox file changes, until ctx is
// cancelled. Bursts of writes are debounced into one pass. Processing
// rewrites the inbox, which re-fires the watcher; the follow-up pass sees
// only checked lines and is a no-op.
func (p *Processor) Watch(ctx context.Context, vaultRoot string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(vaultRoot); err != nil {
		return err
	}
	inboxAbs, err := filepath.Abs(filepath.Join(vaultRoot, tracker.Inbox.Path))
	if err != nil {
		return err
	}

	p.logger.Info("watching inbox", slog.String("path", inboxAbs))

	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	schedule := func() {
		if settleTimer == nil {
			settleTimer = time.NewTimer(debounce)
			settleCh = settleTimer.C
		} else {
			settleTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			p.logger.Info("watcher stopped")
			return nil

		case <-settleCh:
			report, err := p.Process(ctx)
			if err != nil {
				p.logger.Warn("processing pass failed", slog.String("error", err.Error()))
				continue
			}
			if len(report.Results) > 0 {
				p.logger.Info("processing pass finished",
					slog.Int("processed", report.Processed),
					slog.Int("items", len(report.Results)))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Atomic writes land as create+rename on the inbox path.
			abs, err := filepath.Abs(ev.Name)
			if err != nil || abs != inboxAbs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			schedule()

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("watcher error", slog.String("error", werr.Error()))
		}
	}
}
