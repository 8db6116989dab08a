package grammar

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/aocp/parser"
)

// pollInterval is how often Watch checks the file when fsnotify is
// unavailable.
const pollInterval = 200 * time.Millisecond

// Update is the result of (re)compiling a watched grammar.
type Update struct {
	Parser parser.Parser
	Err    error
}

// Watch compiles the grammar at path and recompiles it whenever the file is
// written or replaced. The first Update is sent immediately. The channel is
// closed when the context is cancelled.
// Uses fsnotify for efficient file watching with polling fallback.
func Watch(ctx context.Context, path string) <-chan Update {
	ch := make(chan Update, 1)

	go func() {
		defer close(ch)

		// Subscribe before the first compile so no write is missed.
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			slog.Debug("fsnotify unavailable, polling grammar", slog.Any("error", err))
			watchPolling(ctx, ch, path)
			return
		}
		defer watcher.Close()

		// Watch the directory: editors often replace the file on save.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			slog.Debug("cannot watch grammar directory, polling", slog.Any("error", err))
			watchPolling(ctx, ch, path)
			return
		}

		if !send(ctx, ch, compileUpdate(path)) {
			return
		}
		watchEvents(ctx, ch, watcher, path)
	}()

	return ch
}

// watchEvents recompiles on fsnotify write and create events for path.
func watchEvents(ctx context.Context, ch chan<- Update, watcher *fsnotify.Watcher, path string) {
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !send(ctx, ch, compileUpdate(path)) {
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("grammar watcher error", slog.String("path", path), slog.Any("error", err))
		}
	}
}

// watchPolling sends the initial compile, then recompiles whenever the
// file's modification time changes.
func watchPolling(ctx context.Context, ch chan<- Update, path string) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	last := modTime(path)
	if !send(ctx, ch, compileUpdate(path)) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			mt := modTime(path)
			if mt.Equal(last) {
				continue
			}
			last = mt
			if !send(ctx, ch, compileUpdate(path)) {
				return
			}
		}
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func compileUpdate(path string) Update {
	p, err := Compile(path)
	if err != nil {
		slog.Warn("grammar reload failed", slog.String("path", path), slog.Any("error", err))
		return Update{Err: err}
	}
	slog.Debug("grammar reloaded", slog.String("path", path))
	return Update{Parser: p}
}

// send delivers u unless ctx is cancelled first.
func send(ctx context.Context, ch chan<- Update, u Update) bool {
	select {
	case ch <- u:
		return true
	case <-ctx.Done():
		return false
	}
}
