package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Watcher reloads a layout file into a Source whenever it changes on disk.
type Watcher struct {
	fs     afero.Fs
	path   string
	source *Source
	log    zerolog.Logger
	// OnReload, when set, is called after every successful reload.
	OnReload func(*Model)
}

func NewWatcher(fs afero.Fs, path string, source *Source, log zerolog.Logger) *Watcher {
	return &Watcher{fs: fs, path: path, source: source, log: log}
}

// Reload reads the file once and publishes it to the source.
// A broken file keeps the previous layout in place.
func (w *Watcher) Reload() error {
	m, err := Load(w.fs, w.path)
	if err != nil {
		return err
	}
	w.source.Set(m)
	if w.OnReload != nil {
		w.OnReload(m)
	}
	return nil
}

// Run watches the parent directory of the layout file until ctx is done.
// Watching the directory survives editors that replace the file on save.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create layout watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Info().Str("path", w.path).Msg("watching layout file")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("layout watcher error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}

	if err := w.Reload(); err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("layout reload failed, keeping previous layout")
		return
	}
	w.log.Info().Str("path", w.path).Msg("layout reloaded")
}
