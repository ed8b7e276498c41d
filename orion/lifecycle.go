package orion

import (
	"fmt"
	"log/slog"
)

// Surface is the drawable surface of a ready GPU context.
type Surface interface {
	// Configure applies the configuration. The configuration replaces the
	// previous one, the surface itself stays the same.
	Configure(config SurfaceConfiguration) error
}

// SurfaceManager owns the configuration of a drawable surface and the last
// size that was applied successfully. It is not safe for concurrent use, it
// belongs to the event loop thread.
type SurfaceManager struct {
	surface   Surface
	config    SurfaceConfiguration
	lastKnown Size

	// called after a configuration was applied
	onResize func(width, height uint32)
}

// NewSurfaceManager takes over a surface that was already configured
// with the given configuration.
func NewSurfaceManager(surface Surface, config SurfaceConfiguration, onResize func(width, height uint32)) *SurfaceManager {
	return &SurfaceManager{
		surface:   surface,
		config:    config,
		lastKnown: config.Size(),
		onResize:  onResize,
	}
}

// Reconfigure applies the current configuration with a new size. Calls with
// a zero width or height are ignored, platforms report those while a window
// is minimized.
func (m *SurfaceManager) Reconfigure(width, height uint32) error {
	if width == 0 || height == 0 {
		slog.Debug("Ignore zero sized surface",
			slog.Int("width", int(width)),
			slog.Int("height", int(height)),
		)

		return nil
	}

	config := m.config
	config.Width = width
	config.Height = height

	slog.Debug("Configure surface", slog.String("config", config.String()))

	if err := m.surface.Configure(config); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}

	m.config = config

	if m.onResize != nil {
		m.onResize(width, height)
	}

	m.lastKnown = Size{Width: width, Height: height}

	return nil
}

// Recover reapplies the last known size. It does not query the window,
// a resize event that was not yet delivered will be applied on its own.
func (m *SurfaceManager) Recover() error {
	return m.Reconfigure(m.lastKnown.Width, m.lastKnown.Height)
}

func (m *SurfaceManager) Configuration() SurfaceConfiguration {
	return m.config
}

func (m *SurfaceManager) LastKnownSize() Size {
	return m.lastKnown
}
