package orion

import (
	"log/slog"
	"sync"

	"github.com/oliverbestmann/lmage/glimpse"
)

// Context is a ready GPU context: a configured drawable surface and the
// render content built on top of its device and queue. It is created once
// and owned by the App afterwards.
type Context struct {
	Surface Surface

	// Config is the configuration that was applied to Surface during bootstrap.
	Config SurfaceConfiguration

	Renderer Renderer

	// OnRelease frees the GPU resources. The window the surface is bound
	// to must still be alive when it runs.
	OnRelease func()

	releaseOnce sync.Once
}

// Release frees the GPU resources of the context. Calling it more than
// once is fine.
func (c *Context) Release() {
	c.releaseOnce.Do(func() {
		if c.OnRelease != nil {
			c.OnRelease()
		}
	})
}

// CreateContext runs the GPU context bootstrap for a window. It may block
// while the platform negotiates the adapter and device. Any error is fatal.
type CreateContext func(window glimpse.Window, width, height uint32) (*Context, error)

// ContextReady completes a bootstrap. Exactly one of Context and Err is set.
type ContextReady struct {
	Window  glimpse.Window
	Context *Context
	Err     error
}

// Bootstrapper decides how CreateContext is run relative to the event loop
// thread. The result is always reported through complete, the App only ever
// reacts to that completion.
type Bootstrapper interface {
	Bootstrap(window glimpse.Window, width, height uint32, complete func(ContextReady))
}

// BlockingBootstrap runs the bootstrap inline. Use it where the event loop
// thread may block, complete is called before Bootstrap returns.
type BlockingBootstrap struct {
	Create CreateContext
}

func (b BlockingBootstrap) Bootstrap(window glimpse.Window, width, height uint32, complete func(ContextReady)) {
	complete(runCreate(b.Create, window, width, height))
}

// AsyncBootstrap runs the bootstrap on its own goroutine and calls complete
// from there. Use it where the event loop thread must never block. complete
// must hand the result over to the event loop, e.g. through a glimpse.Proxy.
type AsyncBootstrap struct {
	Create CreateContext
}

func (b AsyncBootstrap) Bootstrap(window glimpse.Window, width, height uint32, complete func(ContextReady)) {
	go func() {
		complete(runCreate(b.Create, window, width, height))
	}()
}

func runCreate(create CreateContext, window glimpse.Window, width, height uint32) ContextReady {
	slog.Info("Bootstrap gpu context",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	ctx, err := create(window, width, height)
	if err != nil {
		return ContextReady{Window: window, Err: err}
	}

	return ContextReady{Window: window, Context: ctx}
}
