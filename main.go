package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/PixPMusic/gopher-surface/internal/app"
	"github.com/PixPMusic/gopher-surface/internal/config"
	"github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/PixPMusic/gopher-surface/internal/osc"
	"github.com/PixPMusic/gopher-surface/internal/profile"
	"github.com/PixPMusic/gopher-surface/internal/tray"
	"github.com/PixPMusic/gopher-surface/internal/window"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var logger = slog.Default()

// initLogger installs a text handler on stderr as the default logger
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}

func main() {
	configPath := flag.String("config", "", "config file (default: user config dir)")
	profilePath := flag.String("profile", "", "surface profile YAML (default: config profile_path, then built-in)")
	debug := flag.Bool("debug", false, "enable debug logging (adds source location)")
	headless := flag.Bool("headless", false, "run without window or tray until interrupted")
	oscHost := flag.String("host", "", "OSC host override")
	oscPort := flag.Int("port", 0, "OSC port override")
	flag.Parse()

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	initLogger(*debug || (err == nil && cfg.Debug))
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	if *oscHost != "" {
		cfg.OSC.Host = *oscHost
	}
	if *oscPort != 0 {
		cfg.OSC.Port = *oscPort
	}
	if *profilePath == "" {
		*profilePath = cfg.ProfilePath
	}

	prof, err := loadProfile(*profilePath)
	if err != nil {
		logger.Error("failed to load profile", "path", *profilePath, "err", err)
		os.Exit(1)
	}

	client, err := osc.Dial(cfg.OSC.Host, cfg.OSC.Port, cfg.OSC.QueueSize)
	if err != nil {
		logger.Error("failed to open OSC connection", "host", cfg.OSC.Host, "port", cfg.OSC.Port, "err", err)
		os.Exit(1)
	}
	defer client.Close()

	// Initialize MIDI manager
	midiManager := midi.NewManager()
	defer midiManager.Close()

	engine, err := app.New(cfg, prof, client, midiManager, logger)
	if err != nil {
		logger.Error("failed to build surface", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go client.Run(ctx)

	logger.Info("gopher-surface starting",
		"osc", cfg.OSC.Host,
		"port", cfg.OSC.Port,
		"profile", *profilePath,
		"controls", len(engine.Host().Controls()),
		"devices", len(cfg.Devices),
		"headless", *headless,
	)

	if *headless {
		engine.InitializeDevices()
		if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("surface stopped", "err", err)
		}
		return
	}

	// Create Fyne app
	fyneApp := fyneapp.NewWithID("com.pixpmusic.gophersurface")

	mainWindow, err := window.NewMainWindow(fyneApp, cfg, midiManager, engine, nil)
	if err != nil {
		logger.Error("failed to create window", "err", err)
		os.Exit(1)
	}

	tray.Setup(fyneApp, cfg, tray.Callbacks{
		OnOpen: func() {
			mainWindow.Show()
		},
		OnQuit: func() {
			fyneApp.Quit()
		},
	})

	// Activate devices, show every face and start listening
	engine.InitializeDevices()
	go engine.Run(ctx)
	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	// Show window if first launch, otherwise run in background
	if !cfg.FirstLaunchCompleted {
		cfg.FirstLaunchCompleted = true
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", "err", err)
		}
		mainWindow.Show()
	}

	// Run the Fyne app (this blocks until app.Quit is called)
	fyneApp.Run()
}
