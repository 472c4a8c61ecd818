package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/gg"
	"golang.design/x/mainthread"
	"golang.org/x/term"

	"overlayhijack/internal/config"
	"overlayhijack/internal/hotkey"
	"overlayhijack/internal/notify"
	"overlayhijack/internal/overlay"
	"overlayhijack/internal/tray"
)

const version = "0.3.0"

var errQuit = errors.New("quit requested")

type options struct {
	configPath  string
	font        string
	size        float64
	duration    time.Duration
	durationSet bool
	hotkey      string
	headless    bool
	debug       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "configuration file (default "+config.Path()+")")
	flag.StringVar(&opts.font, "font", "", "font family, overrides the configuration")
	flag.Float64Var(&opts.size, "size", 0, "font size in DIPs, overrides the configuration")
	flag.DurationVar(&opts.duration, "duration", 0, "how long to draw, overrides the configuration (0 runs until quit)")
	flag.StringVar(&opts.hotkey, "hotkey", "", "quit hotkey such as ctrl+alt+q, saved to the configuration")
	flag.BoolVar(&opts.headless, "headless", false, "draw onto an in-memory desktop instead of the real overlay")
	flag.BoolVar(&opts.debug, "debug", false, "debug logging, also written to a log file next to the executable")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("overlayhijack", version)
		return
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "duration" {
			opts.durationSet = true
		}
	})

	// The overlay is driven from the main OS thread; run itself is free to
	// block on the frame loop.
	code := exitOK
	mainthread.Init(func() { code = run(opts) })
	os.Exit(code)
}

// exit codes
const (
	exitOK = iota
	exitSetup
	exitRuntime
)

func run(opts options) int {
	cfg, cfgErr := loadConfig(opts)

	logger, closeLog := newLogger(opts.debug)
	defer closeLog()
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	overlay.SetLogger(logger)

	if cfgErr != nil {
		logger.Warn("configuration not loaded, using defaults", "error", cfgErr)
	}
	logDPIInfo(logger)

	notifier := notify.NewNotifier(logger)
	ovOpts, desk := overlayOptions(cfg, opts.headless, logger)
	ov := overlay.New(overlay.Font{Name: cfg.Font.Name, Size: cfg.Font.Size}, ovOpts...)

	sess := newSession(ov, logger, cfg.Frame.FPS)
	sess.call = mainthread.Call

	logger.Info("starting",
		"version", version, "target", cfg.Target.Title, "font", cfg.Font.Name,
		"size", cfg.Font.Size, "headless", desk != nil)

	if err := sess.start(); err != nil {
		logger.Error("overlay setup failed", "error", err)
		if cfg.Behavior.ShowNotification {
			_ = notifier.Show("Overlay setup failed", setupHint(err))
		}
		sess.close()
		return exitSetup
	}
	defer sess.close()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if d := time.Duration(cfg.Frame.Duration) * time.Second; d > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, d)
		defer cancelTimeout()
	}

	quit := func() { cancel(errQuit) }

	hk := hotkey.NewManager(logger)
	if err := hk.Register(cfg.Hotkey.Modifiers, cfg.Hotkey.Key, quit); err != nil {
		logger.Warn("quit hotkey unavailable", "hotkey", cfg.HotkeyString(), "error", err)
	} else {
		defer hk.Unregister()
		hk.ListenAsync()
	}

	if cfg.Behavior.Tray && desk == nil {
		t := tray.NewTray()
		t.SetHotkeyText(cfg.HotkeyString())
		t.SetStatusText(cfg.Target.Title)
		t.SetOnPause(func(paused bool) { logger.Info("drawing paused", "paused", paused) })
		t.SetOnQuit(quit)
		sess.paused = t.Paused
		go t.Run()
		defer t.Stop()
	}

	if err := sess.run(ctx); err != nil {
		logger.Error("frame loop failed", "frames", sess.frames, "error", err)
		return exitRuntime
	}
	if desk != nil {
		logger.Info("headless run finished", "frames", sess.frames, "live", desk.Live().Total())
	}
	return exitOK
}

// loadConfig reads the configuration and applies flag overrides. The
// returned config is always usable.
func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)

	if opts.hotkey != "" {
		mods, key, herr := hotkey.Parse(opts.hotkey)
		if herr != nil {
			err = errors.Join(err, herr)
		} else {
			cfg.Hotkey = config.Hotkey{Modifiers: mods, Key: key}
			err = errors.Join(err, cfg.SaveTo(path))
		}
	}
	if opts.font != "" {
		cfg.Font.Name = opts.font
	}
	if opts.size > 0 {
		cfg.Font.Size = float32(opts.size)
	}
	if opts.durationSet && opts.duration >= 0 {
		cfg.Frame.Duration = int(opts.duration.Round(time.Second) / time.Second)
	}
	cfg.Validate()
	return cfg, err
}

func newLogger(debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	var w io.Writer = os.Stderr
	closeLog := func() {}

	if debug {
		level = slog.LevelDebug
		if f, err := openDebugLog(); err == nil {
			w = io.MultiWriter(os.Stderr, f)
			closeLog = func() { _ = f.Close() }
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if !debug && !term.IsTerminal(int(os.Stderr.Fd())) {
		// redirected output is read by tools, not people
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), closeLog
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), closeLog
}

// setupHint turns a setup error into a message for the notification.
func setupHint(err error) string {
	switch {
	case errors.Is(err, overlay.WindowNotFound):
		return "The NVIDIA overlay window was not found. Is GeForce Experience running with the in-game overlay enabled?"
	case errors.Is(err, overlay.StyleWriteFailed), errors.Is(err, overlay.ZOrderFailed):
		return "The overlay window could not be modified. Try running with the same privileges as GeForce Experience."
	}
	return err.Error()
}
