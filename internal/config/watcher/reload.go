package watcher

import (
	"fmt"
	"log/slog"

	"github.com/dshills/swipekey/internal/config"
)

// ApplyFunc receives a reloaded configuration. An error rejects it.
type ApplyFunc func(cfg *config.Config) error

// Reloader reloads a settings file on change and hands valid
// configurations to an ApplyFunc.
type Reloader struct {
	path   string
	load   func(path string) (*config.Config, error)
	apply  ApplyFunc
	logger *slog.Logger
}

// NewReloader returns a Reloader for the settings file at path.
func NewReloader(path string, apply ApplyFunc, logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{path: path, load: config.Load, apply: apply, logger: logger}
}

// Attach watches the settings file with w.
func (r *Reloader) Attach(w *Watcher) error {
	if err := w.Watch(r.path); err != nil {
		return fmt.Errorf("watch %s: %w", r.path, err)
	}
	w.OnChange(r.Handle)
	return nil
}

// Handle reloads the settings after event. A removed file keeps the
// current settings. Invalid settings are logged and ignored.
func (r *Reloader) Handle(event Event) {
	if event.Op == OpRemove {
		r.logger.Info("settings file removed, keeping current settings", "path", event.Path)
		return
	}
	if err := r.Reload(); err != nil {
		r.logger.Warn("settings reload rejected", "path", r.path, "err", err)
	}
}

// Reload loads, validates and applies the settings file.
func (r *Reloader) Reload() error {
	cfg, err := r.load(r.path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := r.apply(cfg); err != nil {
		return err
	}
	r.logger.Debug("settings reloaded", "path", r.path)
	return nil
}
