//go:build js

package platform

import (
	"log/slog"
	"syscall/js"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/lmage/glimpse"
)

type canvasWindow struct {
	id     glimpse.WindowID
	canvas js.Value
	redraw func(id glimpse.WindowID)

	width  uint32
	height uint32
}

func (g *canvasWindow) ID() glimpse.WindowID {
	return g.id
}

func (g *canvasWindow) InnerSize() (uint32, uint32) {
	return g.width, g.height
}

func (g *canvasWindow) SetVisible(visible bool) {
	if visible {
		g.canvas.Get("style").Set("visibility", "visible")
	} else {
		g.canvas.Get("style").Set("visibility", "hidden")
	}
}

func (g *canvasWindow) RequestRedraw() {
	g.redraw(g.id)
}

func (g *canvasWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	// the browser backend binds to the canvas on the page
	return &wgpu.SurfaceDescriptor{}
}

// resize matches the canvas backing store to the visual viewport and
// reports whether the size changed.
func (g *canvasWindow) resize() bool {
	vv := js.Global().Get("visualViewport")
	ratio := js.Global().Get("devicePixelRatio").Float()

	width := uint32(vv.Get("width").Float() * ratio)
	height := uint32(vv.Get("height").Float() * ratio)

	if width == g.width && height == g.height {
		return false
	}

	g.canvas.Set("width", width)
	g.canvas.Set("height", height)

	g.width = width
	g.height = height

	return true
}

// EventLoop runs on requestAnimationFrame. Callbacks never block the
// browser thread, long running work must happen on other goroutines.
type EventLoop[E any] struct {
	*glimpse.Dispatcher[E]

	windows []*canvasWindow
	nextID  glimpse.WindowID
	resumed bool
}

var _ glimpse.EventLoop[struct{}] = (*EventLoop[struct{}])(nil)

func NewEventLoop[E any]() (*EventLoop[E], error) {
	return &EventLoop[E]{
		// polled on every animation frame, no need to wake anything
		Dispatcher: glimpse.NewDispatcher[E](nil),
	}, nil
}

func (l *EventLoop[E]) CreateWindow(attrs glimpse.WindowAttributes) (glimpse.Window, error) {
	document := js.Global().Get("document")
	canvas := document.Call("createElement", "canvas")
	document.Get("body").Call("appendChild", canvas)

	if attrs.Title != "" {
		document.Set("title", attrs.Title)
	}

	canvas.Set("style", "width:100vw; height:100vh; display:block")

	l.nextID += 1

	w := &canvasWindow{id: l.nextID, canvas: canvas, redraw: l.RequestRedraw}
	w.SetVisible(attrs.Visible)
	w.resize()

	l.windows = append(l.windows, w)

	slog.Debug("Canvas created",
		slog.Uint64("id", uint64(w.id)),
		slog.Int("width", int(w.width)),
		slog.Int("height", int(w.height)),
	)

	return w, nil
}

func (l *EventLoop[E]) Run(handler glimpse.Handler[E]) error {
	if !l.resumed {
		l.resumed = true
		handler.Resumed(l)
	}

	done := make(chan struct{})

	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		for _, w := range l.windows {
			if w.resize() {
				l.Push(w.id, glimpse.Resized{Width: w.width, Height: w.height})
			}
		}

		l.Dispatch(l, handler)

		if l.Exiting() {
			close(done)
			return nil
		}

		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})

	defer frame.Release()

	js.Global().Call("requestAnimationFrame", frame)

	// keep the main goroutine alive until the handler exits
	<-done

	return nil
}

func (l *EventLoop[E]) Terminate() {
	l.Proxy().Close()

	for _, w := range l.windows {
		w.canvas.Call("remove")
	}

	l.windows = nil
}
