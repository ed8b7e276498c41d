package pulse

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/lmage/glimpse"
	"github.com/oliverbestmann/lmage/orion"
)

// NewContent builds the frame content once the surface is configured.
type NewContent func(ctx *Context, surface *Surface) (orion.Renderer, error)

// Bootstrap returns an orion.CreateContext that brings up webgpu for a window,
// configures its surface and builds the content on top of it.
func Bootstrap(opts Options, content NewContent) orion.CreateContext {
	return func(window glimpse.Window, width, height uint32) (*orion.Context, error) {
		setLogLevel(opts.LogLevel)

		ctx, err := New(window, opts)
		if err != nil {
			return nil, fmt.Errorf("initializing wgpu: %w", err)
		}

		surface := NewSurface(ctx)

		caps := surface.Capabilities()
		slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

		config, err := orion.ChooseSurfaceConfiguration(caps, width, height)
		if err != nil {
			ctx.Release()
			return nil, err
		}

		if err := surface.Configure(config); err != nil {
			ctx.Release()
			return nil, fmt.Errorf("configure surface: %w", err)
		}

		renderer, err := content(ctx, surface)
		if err != nil {
			ctx.Release()
			return nil, fmt.Errorf("create content: %w", err)
		}

		release := func() {
			if r, ok := renderer.(Releaser); ok {
				r.Release()
			}

			ctx.Release()
		}

		return &orion.Context{
			Surface:   surface,
			Config:    config,
			Renderer:  renderer,
			OnRelease: release,
		}, nil
	}
}
