//go:build js

package pulse

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// The browser only offers its own webgpu implementation, the adapter
// it hands out is always compatible with the canvas.
func adapterOptions(_ *wgpu.Surface, opts Options) (*wgpu.RequestAdapterOptions, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "primary", "webgpu":
		return nil, nil
	default:
		return nil, fmt.Errorf("backend %q is not available in the browser", opts.Backend)
	}
}

func setLogLevel(string) {
	// the browser logs to the console itself
}
