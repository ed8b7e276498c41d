package pulse

import "github.com/cogentcore/webgpu/wgpu"

// RenderTarget holds all the information of something that can be rendered to.
// For now this is always the current texture of the surface.
type RenderTarget struct {
	View *wgpu.TextureView

	// true if the GPU encodes srgb when writing to View
	SRGB bool
}
