package orion

import (
	"errors"
	"fmt"
)

//go:generate go tool stringer -type=TextureFormat -trimprefix=TextureFormat
//go:generate go tool stringer -type=PresentMode -trimprefix=PresentMode
//go:generate go tool stringer -type=AlphaMode -trimprefix=AlphaMode

var ErrUnsupportedSurface = errors.New("surface reports no usable format or present mode")
var ErrZeroSize = errors.New("surface size must not be zero")

// TextureFormat is a texture format a drawable surface can be configured with.
// Backends map their native formats onto these, formats without a mapping
// are not offered to the application.
type TextureFormat uint32

const (
	TextureFormatUndefined TextureFormat = iota
	TextureFormatRGBA8Unorm
	TextureFormatRGBA8UnormSrgb
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSrgb
	TextureFormatRGBA16Float
	TextureFormatRGB10A2Unorm
)

// IsSRGB reports whether the GPU applies the srgb transfer function when
// writing to a texture of this format.
func (f TextureFormat) IsSRGB() bool {
	switch f {
	case TextureFormatRGBA8UnormSrgb, TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

type PresentMode uint32

const (
	PresentModeFifo PresentMode = iota
	PresentModeFifoRelaxed
	PresentModeImmediate
	PresentModeMailbox
)

type AlphaMode uint32

const (
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePremultiplied
	AlphaModeUnpremultiplied
	AlphaModeInherit
)

// SurfaceCapabilities lists what a surface supports together with a given
// adapter. The order of every list is the order the platform reported.
type SurfaceCapabilities struct {
	Formats      []TextureFormat
	PresentModes []PresentMode
	AlphaModes   []AlphaMode
}

// SurfaceConfiguration is applied to a drawable surface. A configuration
// with a zero Width or Height must never be applied.
type SurfaceConfiguration struct {
	Width       uint32
	Height      uint32
	Format      TextureFormat
	PresentMode PresentMode
	AlphaMode   AlphaMode
}

func (c SurfaceConfiguration) Size() Size {
	return Size{Width: c.Width, Height: c.Height}
}

func (c SurfaceConfiguration) String() string {
	return fmt.Sprintf("%dx%d %s %s %s", c.Width, c.Height, c.Format, c.PresentMode, c.AlphaMode)
}

type Size struct {
	Width  uint32
	Height uint32
}

func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// ChooseSurfaceConfiguration picks the configuration for a freshly created
// surface. It takes the first srgb format, or the first format if none is srgb,
// the first present mode and the first alpha mode. The same capabilities
// always yield the same configuration.
func ChooseSurfaceConfiguration(caps SurfaceCapabilities, width, height uint32) (SurfaceConfiguration, error) {
	if len(caps.Formats) == 0 || len(caps.PresentModes) == 0 {
		return SurfaceConfiguration{}, ErrUnsupportedSurface
	}

	format := caps.Formats[0]
	for _, candidate := range caps.Formats {
		if candidate.IsSRGB() {
			format = candidate
			break
		}
	}

	alphaMode := AlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alphaMode = caps.AlphaModes[0]
	}

	config := SurfaceConfiguration{
		Width:       width,
		Height:      height,
		Format:      format,
		PresentMode: caps.PresentModes[0],
		AlphaMode:   alphaMode,
	}

	return config, nil
}
