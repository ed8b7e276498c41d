//go:build !js

package pulse

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

func adapterOptions(surface *wgpu.Surface, opts Options) (*wgpu.RequestAdapterOptions, error) {
	backend, err := backendType(opts.Backend)
	if err != nil {
		return nil, err
	}

	return &wgpu.RequestAdapterOptions{
		CompatibleSurface:    surface,
		BackendType:          backend,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	}, nil
}

func backendType(name string) (wgpu.BackendType, error) {
	switch strings.ToLower(name) {
	case "", "primary":
		return primaryBackend(), nil
	case "vulkan":
		return wgpu.BackendTypeVulkan, nil
	case "metal":
		return wgpu.BackendTypeMetal, nil
	case "dx12", "d3d12":
		return wgpu.BackendTypeD3D12, nil
	case "gl", "opengl":
		return wgpu.BackendTypeOpenGL, nil
	case "gles", "opengles":
		return wgpu.BackendTypeOpenGLES, nil
	default:
		return 0, fmt.Errorf("unknown backend %q", name)
	}
}

func primaryBackend() wgpu.BackendType {
	switch runtime.GOOS {
	case "darwin", "ios":
		return wgpu.BackendTypeMetal
	case "windows":
		return wgpu.BackendTypeD3D12
	default:
		return wgpu.BackendTypeVulkan
	}
}

func setLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}
