//go:build !js

package platform

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/lmage/glimpse"
)

func init() {
	// glfw must only be called from the main thread
	runtime.LockOSThread()
}

type glfwWindow struct {
	id     glimpse.WindowID
	win    *glfw.Window
	redraw func(id glimpse.WindowID)
}

func (g *glfwWindow) ID() glimpse.WindowID {
	return g.id
}

func (g *glfwWindow) InnerSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(max(width, 0)), uint32(max(height, 0))
}

func (g *glfwWindow) SetVisible(visible bool) {
	if visible {
		g.win.Show()
	} else {
		g.win.Hide()
	}
}

func (g *glfwWindow) RequestRedraw() {
	g.redraw(g.id)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

// EventLoop drives glfw. It polls continuously while a redraw is pending
// and waits for platform events otherwise.
type EventLoop[E any] struct {
	*glimpse.Dispatcher[E]

	windows []*glfwWindow
	nextID  glimpse.WindowID
	resumed bool
}

var _ glimpse.EventLoop[struct{}] = (*EventLoop[struct{}])(nil)

func NewEventLoop[E any]() (*EventLoop[E], error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	return &EventLoop[E]{
		Dispatcher: glimpse.NewDispatcher[E](glfw.PostEmptyEvent),
	}, nil
}

func (l *EventLoop[E]) CreateWindow(attrs glimpse.WindowAttributes) (glimpse.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Visible, boolHint(attrs.Visible))

	win, err := glfw.CreateWindow(attrs.Width, attrs.Height, attrs.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	l.nextID += 1

	w := &glfwWindow{id: l.nextID, win: win, redraw: l.RequestRedraw}
	l.configureCallbacks(w)
	l.windows = append(l.windows, w)

	slog.Debug("Window created",
		slog.Uint64("id", uint64(w.id)),
		slog.Int("width", attrs.Width),
		slog.Int("height", attrs.Height),
	)

	return w, nil
}

func (l *EventLoop[E]) configureCallbacks(w *glfwWindow) {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		l.Push(w.id, glimpse.Resized{
			Width:  uint32(max(width, 0)),
			Height: uint32(max(height, 0)),
		})
	})

	w.win.SetCloseCallback(func(win *glfw.Window) {
		// the handler decides if the window really closes
		win.SetShouldClose(false)
		l.Push(w.id, glimpse.CloseRequested{})
	})

	w.win.SetRefreshCallback(func(_ *glfw.Window) {
		l.RequestRedraw(w.id)
	})
}

func (l *EventLoop[E]) Run(handler glimpse.Handler[E]) error {
	if !l.resumed {
		l.resumed = true
		handler.Resumed(l)
	}

	for !l.Exiting() {
		if l.Pending() {
			glfw.PollEvents()
		} else {
			glfw.WaitEventsTimeout(0.01)
		}

		l.Dispatch(l, handler)
	}

	return nil
}

func (l *EventLoop[E]) Terminate() {
	l.Proxy().Close()

	for _, w := range l.windows {
		w.win.Destroy()
	}

	l.windows = nil

	glfw.Terminate()
}

func boolHint(value bool) int {
	if value {
		return glfw.True
	}

	return glfw.False
}
