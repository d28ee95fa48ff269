// Package watch triggers a fresh decode whenever a save state file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// HandlerFunc is called with the path of the changed file.
type HandlerFunc func(ctx context.Context, path string) error

// Watcher polls the size and modification time of a file.
type Watcher struct {
	logger   *log.Logger
	path     string
	interval time.Duration
	handler  HandlerFunc
}

type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

// New creates a new watcher for the file at path.
func New(logger *log.Logger, path string, interval time.Duration, handler HandlerFunc) *Watcher {
	return &Watcher{
		logger:   logger,
		path:     path,
		interval: interval,
		handler:  handler,
	}
}

func (s fileState) equal(other fileState) bool {
	return s.exists == other.exists && s.size == other.size && s.modTime.Equal(other.modTime)
}

// Run calls the handler for the existing file and then for every change of
// the file until the context is canceled. Handler errors are logged and do
// not stop watching, emulators write save states non atomically so a decode
// can see a partial file.
func (w *Watcher) Run(ctx context.Context) error {
	last, err := w.stat()
	if err != nil {
		return err
	}
	if last.exists {
		w.handle(ctx)
	} else {
		w.logger.Info("Waiting for file to be created", log.String("file", w.path))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("watching %s: %w", w.path, ctx.Err())

		case <-ticker.C:
			current, err := w.stat()
			if err != nil {
				return err
			}
			if current.equal(last) {
				continue
			}
			last = current
			if !current.exists {
				w.logger.Warn("Watched file was removed", log.String("file", w.path))
				continue
			}

			w.logger.Debug("Watched file changed",
				log.String("file", w.path),
				log.Int("size", int(current.size)))
			w.handle(ctx)
		}
	}
}

func (w *Watcher) handle(ctx context.Context) {
	if err := w.handler(ctx, w.path); err != nil {
		w.logger.Error("Processing changed file failed", log.String("file", w.path), log.Err(err))
	}
}

func (w *Watcher) stat() (fileState, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileState{}, nil
		}
		return fileState{}, fmt.Errorf("checking file %s: %w", w.path, err)
	}
	return fileState{
		exists:  true,
		size:    info.Size(),
		modTime: info.ModTime(),
	}, nil
}
