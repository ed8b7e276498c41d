package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/lmage/orion"
)

// Surface adapts the webgpu surface of a Context to the orion lifecycle.
type Surface struct {
	ctx    *Context
	config orion.SurfaceConfiguration
}

func NewSurface(ctx *Context) *Surface {
	return &Surface{ctx: ctx}
}

func (s *Surface) Capabilities() orion.SurfaceCapabilities {
	return capabilitiesOf(s.ctx.Surface.GetCapabilities(s.ctx.Adapter))
}

func (s *Surface) Configure(config orion.SurfaceConfiguration) error {
	if config.Size().IsZero() {
		return orion.ErrZeroSize
	}

	slog.Debug("Configure surface", slog.String("config", config.String()))

	s.ctx.Surface.Configure(s.ctx.Adapter, s.ctx.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      toTextureFormat(config.Format),
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: toPresentMode(config.PresentMode),
		AlphaMode:   toAlphaMode(config.AlphaMode),
	})

	s.config = config

	return nil
}

// Config returns the configuration last applied to the surface.
func (s *Surface) Config() orion.SurfaceConfiguration {
	return s.config
}

// AcquireTexture returns the texture of the next frame. Failures are
// classified into an orion.SurfaceError.
func (s *Surface) AcquireTexture() (*wgpu.Texture, error) {
	texture, err := s.ctx.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w: %w", orion.SurfaceErrorOf(err), err)
	}

	return texture, nil
}

func (s *Surface) Present() {
	s.ctx.Surface.Present()
}
