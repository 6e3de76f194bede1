package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/robofi/sdk-go/core/logging"
)

const (
	// WatchDebounce is how long the file must stay quiet before a reload
	WatchDebounce = 250 * time.Millisecond
	watchTick     = 100 * time.Millisecond
)

// Watch reloads src into store whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are picked up too. Bursts of events are batched: the file is reloaded
// once it has been quiet for WatchDebounce. A failed reload is logged and
// the previous snapshot is kept. onReload, if non-nil, is called after every
// successful reload.
func Watch(ctx context.Context, src *FileSource, store *Store, onReload func(*Catalog)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create catalog watcher")
	}
	defer watcher.Close()

	target, err := filepath.Abs(src.Path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(target))
	}

	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()

	// zero when nothing is waiting
	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			lastEvent = time.Now()
		case <-ticker.C:
			if lastEvent.IsZero() || time.Since(lastEvent) < WatchDebounce {
				continue
			}
			lastEvent = time.Time{}

			c, err := reloadFile(ctx, src, store)
			if err != nil {
				logging.Logger.Warn("catalog reload failed", zap.String("path", src.Path), zap.Error(err))
				continue
			}
			logging.Logger.Info("catalog reloaded",
				zap.String("path", src.Path),
				zap.Uint64("revision", c.Revision),
				zap.Int("listings", c.Len()))
			if onReload != nil {
				onReload(c)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

// ErrEmptyReload is returned when a watched file decodes to no listings
// while the store still serves some
var ErrEmptyReload = errors.New("catalog file has no listings")

// reloadFile loads src and installs it unless that would replace a
// non-empty snapshot with an empty one, as seen mid-write after truncation.
func reloadFile(ctx context.Context, src *FileSource, store *Store) (*Catalog, error) {
	c, err := src.Load(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if c.Len() == 0 && store.Current().Len() > 0 {
		return nil, errors.Wrap(ErrEmptyReload, src.Path)
	}
	store.Replace(c)
	return store.Current(), nil
}
