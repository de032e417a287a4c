package schemafile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with a freshly loaded File every time the document at path
// is written or replaced. Load failures are passed to fn as well. Watch blocks
// until ctx is done and returns nil in that case.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file are picked up.
func Watch(ctx context.Context, path string, fn func(*File, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("schemafile: watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("schemafile: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("schemafile: watch %s: %w", filepath.Dir(abs), err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			fn(Load(path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("schemafile: watch: %w", err))
		}
	}
}
