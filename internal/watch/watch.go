// Package watch reloads a style file whenever it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/NissesSenap/plotstyle/internal/logging"
	"github.com/NissesSenap/plotstyle/internal/style"
)

// ChangeFunc receives the freshly parsed table, or the error that kept the
// file from parsing.
type ChangeFunc func(*style.Table, error)

type Watcher struct {
	path     string
	onChange ChangeFunc
	limiter  *rate.Limiter
	logger   *log.Logger
	opts     []style.ParseOption
	fsw      *fsnotify.Watcher
}

type Option func(*Watcher)

// WithReloadRate limits reloads to perSecond. Events arriving faster are
// coalesced into one reload.
func WithReloadRate(perSecond float64) Option {
	return func(w *Watcher) {
		if perSecond > 0 {
			w.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithParseOptions passes options through to style.ParseFile
func WithParseOptions(opts ...style.ParseOption) Option {
	return func(w *Watcher) {
		w.opts = append(w.opts, opts...)
	}
}

// New starts watching the directory that holds path. The watch is in place
// when New returns; call Run to start delivering changes.
func New(path string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch: onChange must not be nil")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		onChange: onChange,
		limiter:  rate.NewLimiter(rate.Limit(2), 1),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file instead of writing it, so watch the directory
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run loads the file once, then reloads it on every change until ctx is
// cancelled. The underlying watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	w.reload()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("style file changed", "path", w.path, "op", event.Op.String())
			if pending {
				continue
			}
			pending = true
			timer.Reset(w.limiter.Reserve().Delay())

		case <-timer.C:
			pending = false
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	table, err := style.ParseFile(w.path, w.opts...)
	if err != nil {
		w.logger.Error("reload failed", "path", w.path, "err", err)
		w.onChange(nil, err)
		return
	}
	w.logger.Info("style reloaded", "path", w.path, "settings", table.Len())
	w.onChange(table, nil)
}
