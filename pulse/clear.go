package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/lmage/orion"
)

type ClearCommand struct {
	device *wgpu.Device
}

func NewClear(ctx *Context) *ClearCommand {
	return &ClearCommand{device: ctx.Device}
}

func (c *ClearCommand) Clear(target *RenderTarget, color Color) error {
	enc, err := c.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "ClearTexture",
	})

	if err != nil {
		return err
	}

	defer enc.Release()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ClearTexture",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.View,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: color.ToWGPU(target.SRGB),
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	if err := pass.End(); err != nil {
		return err
	}

	passGuard.Release()

	// encode into a command buffer
	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "ClearTexture"})
	if err != nil {
		return err
	}

	defer buf.Release()

	queue := c.device.GetQueue()
	defer queue.Release()

	queue.Submit(buf)

	return nil
}

// ClearContent fills every frame with a single color.
type ClearContent struct {
	surface *Surface
	clear   *ClearCommand
	color   Color
}

func NewClearContent(color Color) NewContent {
	return func(ctx *Context, surface *Surface) (orion.Renderer, error) {
		content := &ClearContent{
			surface: surface,
			clear:   NewClear(ctx),
			color:   color,
		}

		return content, nil
	}
}

func (c *ClearContent) Resize(width, height uint32) {
	slog.Debug("Resize content", slog.Int("width", int(width)), slog.Int("height", int(height)))
}

func (c *ClearContent) RenderOrPresent() error {
	texture, err := c.surface.AcquireTexture()
	if err != nil {
		return err
	}

	textureGuard := NewReleaseGuard(texture)
	defer textureGuard.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}

	defer view.Release()

	target := &RenderTarget{
		View: view,
		SRGB: c.surface.Config().Format.IsSRGB(),
	}

	if err := c.clear.Clear(target, c.color); err != nil {
		return fmt.Errorf("clear frame: %w", err)
	}

	c.surface.Present()

	// the surface owns the texture once presented
	textureGuard.Keep()

	return nil
}

type Releaser interface {
	Release()
}

type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Keep() {
	r.delegate = nil
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}
