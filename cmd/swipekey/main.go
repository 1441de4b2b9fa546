// Package main is a terminal demo of the swipekey engine: the keyboard is
// drawn at the bottom of the terminal and the mouse acts as a finger.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/swipekey/internal/config"
	"github.com/dshills/swipekey/internal/config/watcher"
	"github.com/dshills/swipekey/internal/input/keyboard"
	"github.com/dshills/swipekey/internal/input/mouse"
	"github.com/dshills/swipekey/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logPath    string
	cellWidth  float64
	cellHeight float64
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings in %s:\n%v\n", opts.configPath, err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg, opts.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	buf := newBuffer(func() { _ = screen.PostEvent(tcell.NewEventInterrupt(nil)) })
	kb, err := keyboard.New(cfg, buf, keyboard.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer kb.Close()

	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)

	if w, err := watchSettings(opts.configPath, kb, logger); err != nil {
		logger.Warn("settings will not be reloaded", "path", opts.configPath, "err", err)
	} else {
		defer w.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	touches := make(chan keyboard.Touch, 64)
	done := make(chan error, 1)
	go func() {
		done <- kb.Run(ctx, touches)
	}()

	u := newUI(screen, kb, buf, mouse.Config{CellWidth: opts.cellWidth, CellHeight: opts.cellHeight})
	u.loop(ctx, touches)

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("keyboard stopped", "err", err)
		return 1
	}
	return 0
}

func newLogger(cfg *config.Config, path string) (*slog.Logger, func(), error) {
	lc := cfg.LoggingConfig()
	if path == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lc.Output = f
	return logging.New(lc), func() { _ = f.Close() }, nil
}

func watchSettings(path string, kb *keyboard.Keyboard, logger *slog.Logger) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	r := watcher.NewReloader(path, kb.Reload, logger)
	if err := r.Attach(w); err != nil {
		_ = w.Stop()
		return nil, err
	}
	w.Start()
	return w, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "swipekey.toml"
	}
	return filepath.Join(dir, "swipekey", "settings.toml")
}

func parseFlags() options {
	opts := options{}
	var showVersion bool
	var showHelp bool

	mc := mouse.DefaultConfig()
	flag.StringVar(&opts.configPath, "config", defaultConfigPath(), "Path to the settings file (.toml or .yaml)")
	flag.StringVar(&opts.configPath, "c", defaultConfigPath(), "Path to the settings file (shorthand)")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file")
	flag.Float64Var(&opts.cellWidth, "cell-width", mc.CellWidth, "Width of a terminal cell in pixels")
	flag.Float64Var(&opts.cellHeight, "cell-height", mc.CellHeight, "Height of a terminal cell in pixels")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "swipekey - swipe keyboard demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: swipekey [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nClick keys to type, drag towards a corner to type the corner\n")
		fmt.Fprintf(os.Stderr, "symbol. Hold the left and right buttons for two fingers.\n")
		fmt.Fprintf(os.Stderr, "Press Esc or Ctrl-C to quit.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("swipekey %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.cellWidth <= 0 || opts.cellHeight <= 0 {
		fmt.Fprintf(os.Stderr, "Error: cell size must be positive\n")
		os.Exit(1)
	}
	return opts
}
