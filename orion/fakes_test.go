package orion

import (
	"errors"

	"github.com/oliverbestmann/lmage/glimpse"
)

type fakeWindow struct {
	id            glimpse.WindowID
	width, height uint32
	visible       bool
	redraws       int

	// renderer.renders at the time SetVisible(true) was called
	rendersWhenShown int
	renderer         *fakeRenderer
}

func (w *fakeWindow) ID() glimpse.WindowID        { return w.id }
func (w *fakeWindow) InnerSize() (uint32, uint32) { return w.width, w.height }
func (w *fakeWindow) RequestRedraw()              { w.redraws++ }

func (w *fakeWindow) SetVisible(visible bool) {
	w.visible = visible

	if visible && w.renderer != nil {
		w.rendersWhenShown = w.renderer.renders
	}
}

// fakeLoop implements glimpse.EventLoop and glimpse.ActiveEventLoop.
// Run replays the scripted window events after Resumed.
type fakeLoop struct {
	proxy   *glimpse.Proxy[ContextReady]
	windows []*fakeWindow
	size    Size

	exits      int
	exiting    bool
	terminated bool

	createErr error

	script []scriptedEvent

	// records the order of lifecycle calls
	trace *[]string
}

type scriptedEvent struct {
	window int
	event  glimpse.WindowEvent
}

func newFakeLoop(width, height uint32) *fakeLoop {
	return &fakeLoop{
		proxy: glimpse.NewProxy[ContextReady](nil),
		size:  Size{Width: width, Height: height},
	}
}

func (l *fakeLoop) CreateWindow(attrs glimpse.WindowAttributes) (glimpse.Window, error) {
	if l.createErr != nil {
		return nil, l.createErr
	}

	w := &fakeWindow{
		id:      glimpse.WindowID(len(l.windows) + 1),
		width:   l.size.Width,
		height:  l.size.Height,
		visible: attrs.Visible,
	}

	l.windows = append(l.windows, w)
	return w, nil
}

func (l *fakeLoop) Exit() {
	l.exits++
	l.exiting = true
}

func (l *fakeLoop) Proxy() *glimpse.Proxy[ContextReady] { return l.proxy }

// deliver drains the proxy into the handler, like one loop iteration.
func (l *fakeLoop) deliver(handler glimpse.Handler[ContextReady]) {
	l.proxy.Drain(func(event ContextReady) {
		handler.UserEvent(l, event)
	})
}

func (l *fakeLoop) Run(handler glimpse.Handler[ContextReady]) error {
	handler.Resumed(l)
	l.deliver(handler)

	for _, scripted := range l.script {
		if l.exiting {
			break
		}

		w := l.windows[scripted.window]
		handler.WindowEvent(l, w.id, scripted.event)
		l.deliver(handler)
	}

	return nil
}

func (l *fakeLoop) Terminate() {
	l.terminated = true
	l.proxy.Close()

	if l.trace != nil {
		*l.trace = append(*l.trace, "terminate")
	}
}

type fakeSurface struct {
	configs []SurfaceConfiguration
	err     error
}

func (s *fakeSurface) Configure(config SurfaceConfiguration) error {
	if s.err != nil {
		return s.err
	}

	if config.Width == 0 || config.Height == 0 {
		return ErrZeroSize
	}

	s.configs = append(s.configs, config)
	return nil
}

func (s *fakeSurface) last() SurfaceConfiguration {
	if len(s.configs) == 0 {
		return SurfaceConfiguration{}
	}

	return s.configs[len(s.configs)-1]
}

type fakeRenderer struct {
	// outcomes returned by RenderOrPresent in order, nil afterwards
	outcomes []error

	renders int
	resizes []Size

	// configuration of the surface when each frame was rendered
	surface  *fakeSurface
	rendered []SurfaceConfiguration
}

func (r *fakeRenderer) Resize(width, height uint32) {
	r.resizes = append(r.resizes, Size{Width: width, Height: height})
}

func (r *fakeRenderer) RenderOrPresent() error {
	r.renders++

	if r.surface != nil {
		r.rendered = append(r.rendered, r.surface.last())
	}

	if len(r.outcomes) == 0 {
		return nil
	}

	outcome := r.outcomes[0]
	r.outcomes = r.outcomes[1:]
	return outcome
}

var testConfig = SurfaceConfiguration{
	Format:      TextureFormatBGRA8UnormSrgb,
	PresentMode: PresentModeFifo,
	AlphaMode:   AlphaModeOpaque,
}

// fakeGPU builds contexts for the App tests and counts bootstraps.
type fakeGPU struct {
	surface  *fakeSurface
	renderer *fakeRenderer

	creates  int
	releases int
	err      error

	trace *[]string
}

func newFakeGPU() *fakeGPU {
	surface := &fakeSurface{}
	return &fakeGPU{
		surface:  surface,
		renderer: &fakeRenderer{surface: surface},
	}
}

func (g *fakeGPU) create(window glimpse.Window, width, height uint32) (*Context, error) {
	g.creates++

	if g.err != nil {
		return nil, g.err
	}

	if w, ok := window.(*fakeWindow); ok {
		w.renderer = g.renderer
	}

	config := testConfig
	config.Width = width
	config.Height = height

	if err := g.surface.Configure(config); err != nil {
		return nil, err
	}

	ctx := &Context{
		Surface:  g.surface,
		Config:   config,
		Renderer: g.renderer,
		OnRelease: func() {
			g.releases++

			if g.trace != nil {
				*g.trace = append(*g.trace, "release")
			}
		},
	}

	return ctx, nil
}

var errBoom = errors.New("boom")
