package pulse

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/lmage/orion"
)

var textureFormats = map[wgpu.TextureFormat]orion.TextureFormat{
	wgpu.TextureFormatRGBA8Unorm:     orion.TextureFormatRGBA8Unorm,
	wgpu.TextureFormatRGBA8UnormSrgb: orion.TextureFormatRGBA8UnormSrgb,
	wgpu.TextureFormatBGRA8Unorm:     orion.TextureFormatBGRA8Unorm,
	wgpu.TextureFormatBGRA8UnormSrgb: orion.TextureFormatBGRA8UnormSrgb,
	wgpu.TextureFormatRGBA16Float:    orion.TextureFormatRGBA16Float,
	wgpu.TextureFormatRGB10A2Unorm:   orion.TextureFormatRGB10A2Unorm,
}

var presentModes = map[wgpu.PresentMode]orion.PresentMode{
	wgpu.PresentModeFifo:        orion.PresentModeFifo,
	wgpu.PresentModeFifoRelaxed: orion.PresentModeFifoRelaxed,
	wgpu.PresentModeImmediate:   orion.PresentModeImmediate,
	wgpu.PresentModeMailbox:     orion.PresentModeMailbox,
}

var alphaModes = map[wgpu.CompositeAlphaMode]orion.AlphaMode{
	wgpu.CompositeAlphaModeAuto:            orion.AlphaModeAuto,
	wgpu.CompositeAlphaModeOpaque:          orion.AlphaModeOpaque,
	wgpu.CompositeAlphaModePremultiplied:   orion.AlphaModePremultiplied,
	wgpu.CompositeAlphaModeUnpremultiplied: orion.AlphaModeUnpremultiplied,
	wgpu.CompositeAlphaModeInherit:         orion.AlphaModeInherit,
}

// capabilitiesOf keeps the order reported by the surface. Formats we
// can not express are dropped.
func capabilitiesOf(caps wgpu.SurfaceCapabilities) orion.SurfaceCapabilities {
	var result orion.SurfaceCapabilities

	for _, format := range caps.Formats {
		if converted, ok := textureFormats[format]; ok {
			result.Formats = append(result.Formats, converted)
		} else {
			slog.Debug("Ignore unsupported surface format", slog.Any("format", format))
		}
	}

	for _, mode := range caps.PresentModes {
		if converted, ok := presentModes[mode]; ok {
			result.PresentModes = append(result.PresentModes, converted)
		}
	}

	for _, mode := range caps.AlphaModes {
		if converted, ok := alphaModes[mode]; ok {
			result.AlphaModes = append(result.AlphaModes, converted)
		}
	}

	return result
}

func toTextureFormat(format orion.TextureFormat) wgpu.TextureFormat {
	return reverse(textureFormats, format)
}

func toPresentMode(mode orion.PresentMode) wgpu.PresentMode {
	return reverse(presentModes, mode)
}

func toAlphaMode(mode orion.AlphaMode) wgpu.CompositeAlphaMode {
	return reverse(alphaModes, mode)
}

func reverse[K, V comparable](values map[K]V, value V) K {
	for key, candidate := range values {
		if candidate == value {
			return key
		}
	}

	var zero K
	return zero
}
