package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/config"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/types"
	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/watcher"
)

// runWatch repeats the search each time the file settles after a change.
// It returns nil when ctx is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	w, err := watcher.NewWatcher(cfg.Path, cfg.Watcher.DebounceMs)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil {
		return err
	}
	slog.Info("Watching for changes", "path", cfg.Path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.Events():
			slog.Info("File changed", "path", event.Path, "operation", event.Operation.String())
			if event.Operation == watcher.OpDelete {
				slog.Warn("File removed, waiting for it to reappear", "path", event.Path)
				continue
			}

			if err := runSearch(cfg, stdout); err != nil {
				var ioErr *types.IoError
				if !errors.As(err, &ioErr) {
					return err
				}
				slog.Error("Search failed", "error", err)
			}
		}
	}
}
