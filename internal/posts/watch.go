package posts

import (
	"context"
	"fmt"
	"log/slog"

	"alplotlib/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is anything holding state derived from the posts directory.
type Invalidator interface {
	Invalidate()
}

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch invalidates target whenever a file in dir is created, written,
// removed or renamed. It returns once the watch is established; watching
// stops when ctx is cancelled.
func Watch(ctx context.Context, dir string, target Invalidator, log *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&watchedOps == 0 {
					continue
				}
				log.Debug("posts changed", logger.File(ev.Name), logger.Op(ev.Op.String()))
				target.Invalidate()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error("posts watcher error", logger.Error(err))
			}
		}
	}()
	return nil
}
