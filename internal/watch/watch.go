// Package watch re-renders a plot image whenever its config file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"grapher/internal/config"
	"grapher/pkg/api"
	"grapher/pkg/plot"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Result describes one render pass.
type Result struct {
	Output string
	Trace  *plot.Trace
	Err    error
}

// Watcher renders ConfigPath's expression to an image and repeats that
// after every change to the file.
type Watcher struct {
	ConfigPath string
	// Output overrides the config's output path when set.
	Output   string
	Debounce time.Duration

	// OnRender is called after every render pass, failed or not.
	OnRender func(Result)
}

// New creates a watcher for the config file at path.
func New(path string) *Watcher {
	return &Watcher{ConfigPath: path, Debounce: DefaultDebounce}
}

// Render loads the config and writes the image once.
func (w *Watcher) Render() Result {
	cfg, err := config.Load(w.ConfigPath)
	if err != nil {
		return Result{Err: err}
	}
	out := cfg.Output
	if w.Output != "" {
		out = w.Output
	}
	res := Result{Output: out}

	opts, err := cfg.Options()
	if err != nil {
		res.Err = err
		return res
	}
	p, err := api.New(opts...)
	if err != nil {
		res.Err = err
		return res
	}
	defer p.Close()

	if res.Trace, res.Err = p.Render(cfg.Expression); res.Err != nil {
		return res
	}
	if err := p.Save(out); err != nil {
		res.Err = fmt.Errorf("failed to save %s: %w", out, err)
	}
	return res
}

// Run renders once, then again after each change to the config file,
// until ctx is canceled. The file's directory is watched so that editors
// that replace the file by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(w.ConfigPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	w.emit(w.Render())

	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event, target) {
				continue
			}
			debounce.Reset(delay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			plot.Logger().Warn("watcher error", "err", err)

		case <-debounce.C:
			w.emit(w.Render())
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) emit(res Result) {
	if res.Err != nil {
		plot.Logger().Warn("render failed", "config", w.ConfigPath, "err", res.Err)
	} else {
		plot.Logger().Info("rendered", "config", w.ConfigPath, "output", res.Output, "trace", res.Trace.String())
	}
	if w.OnRender != nil {
		w.OnRender(res)
	}
}
