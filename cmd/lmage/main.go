//go:build !js

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/lmage/glimpse/platform"
	"github.com/oliverbestmann/lmage/internal/config"
	"github.com/oliverbestmann/lmage/orion"
	"github.com/oliverbestmann/lmage/pulse"
	"github.com/pkg/profile"
)

func main() {
	if err := run(); err != nil {
		slog.Error("lmage failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "lmage.yml", "path of the yaml config file")
	width := flag.Uint("width", 0, "initial window width")
	height := flag.Uint("height", 0, "initial window height")
	title := flag.String("title", "", "window title")
	backend := flag.String("backend", "", "gpu backend: primary, vulkan, metal, dx12, gl or gles")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	profileMode := flag.String("profile", "", "write a cpu or mem profile")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	// flags take precedence over file and environment
	if *width != 0 {
		cfg.Window.Width = uint32(*width)
	}

	if *height != 0 {
		cfg.Window.Height = uint32(*height)
	}

	if *title != "" {
		cfg.Window.Title = *title
	}

	if *backend != "" {
		cfg.GPU.Backend = *backend
	}

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if *profileMode != "" {
		cfg.Profile = *profileMode
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: level})
	slog.SetDefault(slog.New(handler))

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	loop, err := platform.NewEventLoop[orion.ContextReady]()
	if err != nil {
		return fmt.Errorf("create event loop: %w", err)
	}

	c := cfg.ClearColor
	content := pulse.NewClearContent(pulse.ColorSRGBA(c[0], c[1], c[2], c[3]))

	gpu := pulse.Options{
		Backend:              cfg.GPU.Backend,
		ForceFallbackAdapter: cfg.GPU.ForceFallbackAdapter,
		LogLevel:             cfg.GPU.LogLevel,
	}

	return orion.Run(loop, orion.RunOptions{
		CreateContext: pulse.Bootstrap(gpu, content),
		WindowWidth:   int(cfg.Window.Width),
		WindowHeight:  int(cfg.Window.Height),
		WindowTitle:   cfg.Window.Title,
	})
}
