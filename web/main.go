//go:build js

package main

import (
	"log/slog"

	"github.com/oliverbestmann/lmage/glimpse/platform"
	"github.com/oliverbestmann/lmage/internal/config"
	"github.com/oliverbestmann/lmage/orion"
	"github.com/oliverbestmann/lmage/pulse"
)

func main() {
	cfg := config.Default()

	level, _ := cfg.SlogLevel()
	slog.SetLogLoggerLevel(level)

	loop, err := platform.NewEventLoop[orion.ContextReady]()
	orion.Handle(err, "create event loop")

	c := cfg.ClearColor
	content := pulse.NewClearContent(pulse.ColorSRGBA(c[0], c[1], c[2], c[3]))

	err = orion.Run(loop, orion.RunOptions{
		CreateContext: pulse.Bootstrap(pulse.Options{Backend: "webgpu"}, content),
		WindowWidth:   int(cfg.Window.Width),
		WindowHeight:  int(cfg.Window.Height),
		WindowTitle:   cfg.Window.Title,
	})

	orion.Handle(err, "run lmage")
}
