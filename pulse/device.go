package pulse

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/lmage/glimpse"
)

var ErrNoSurface = errors.New("window does not provide a drawable surface")

// SurfaceSource is implemented by windows that can host a webgpu surface.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type Options struct {
	// Backend selects the one backend family to use: primary, vulkan, metal,
	// dx12, gl or gles. Primary picks the native api of the platform.
	Backend string

	// ForceFallbackAdapter requests the software adapter. Never done implicitly.
	ForceFallbackAdapter bool

	// LogLevel of the native webgpu implementation, e.g. WARN or TRACE.
	LogLevel string
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter

	// the window the Surface is bound to. It must outlive the Surface,
	// keep it referenced until the context is released.
	Window glimpse.Window
}

// New binds a surface to the window and negotiates an adapter, device and
// queue for it. Every failure is fatal, there is no retry and no silent
// fallback to another backend.
func New(window glimpse.Window, opts Options) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	source, ok := window.(SurfaceSource)
	if !ok {
		return nil, ErrNoSurface
	}

	st = &Context{Window: window}

	// create the webgpu instance
	st.Instance = wgpu.CreateInstance(nil)

	sd := source.SurfaceDescriptor()
	if sd == nil {
		return st, ErrNoSurface
	}

	// create a Surface based on the window
	st.Surface = st.Instance.CreateSurface(sd)
	if st.Surface == nil {
		return st, ErrNoSurface
	}

	adapterOpts, err := adapterOptions(st.Surface, opts)
	if err != nil {
		return st, err
	}

	// create an adapter that can render to the Surface
	st.Adapter, err = st.Instance.RequestAdapter(adapterOpts)
	if err != nil {
		return st, fmt.Errorf("request adapter: %w", err)
	}

	// get a Device with the default features and limits
	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	slog.Info("Acquired gpu device", slog.String("backend", backendName(opts.Backend)))

	return st, nil
}

// Release frees all resources in reverse order of creation. The surface is
// gone before the window reference is dropped.
func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}

	if d.Instance != nil {
		d.Instance.Release()
		d.Instance = nil
	}

	d.Window = nil
}

func backendName(name string) string {
	if name == "" {
		return "primary"
	}

	return name
}
