package orion

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/oliverbestmann/lmage/glimpse"
)

func newTestApp(loop *fakeLoop, gpu *fakeGPU) *App {
	opts := AppOptions{WindowTitle: "test", WindowWidth: 800, WindowHeight: 600}
	return NewApp(opts, BlockingBootstrap{Create: gpu.create}, loop.proxy.Send)
}

// startApp runs the app up to the Ready state.
func startApp(t *testing.T, width, height uint32) (*App, *fakeLoop, *fakeGPU) {
	t.Helper()

	loop := newFakeLoop(width, height)
	gpu := newFakeGPU()
	app := newTestApp(loop, gpu)

	app.Resumed(loop)
	loop.deliver(app)

	if app.state != stateReady {
		t.Fatalf("expected app to be ready, state is %d", app.state)
	}

	return app, loop, gpu
}

func TestSingleBootstrap(t *testing.T) {
	loop := newFakeLoop(800, 600)
	gpu := newFakeGPU()
	app := newTestApp(loop, gpu)

	app.Resumed(loop)
	app.Resumed(loop)
	loop.deliver(app)

	if gpu.creates != 1 {
		t.Fatalf("expected exactly one bootstrap, got %d", gpu.creates)
	}

	if len(loop.windows) != 2 {
		t.Fatalf("expected a window per resume, got %d", len(loop.windows))
	}

	// the second window is the tracked one now
	second := loop.windows[1]
	if app.window != second {
		t.Fatalf("expected app to track the new window")
	}

	renders := gpu.renderer.renders
	app.WindowEvent(loop, loop.windows[0].id, glimpse.RedrawRequested{})
	if gpu.renderer.renders != renders {
		t.Fatalf("events of the old window must be ignored")
	}

	app.WindowEvent(loop, second.id, glimpse.RedrawRequested{})
	if gpu.renderer.renders != renders+1 {
		t.Fatalf("expected a frame for the tracked window")
	}
}

func TestWindowCreatedHiddenAndShownAfterFirstFrame(t *testing.T) {
	loop := newFakeLoop(800, 600)
	gpu := newFakeGPU()
	app := newTestApp(loop, gpu)

	app.Resumed(loop)

	window := loop.windows[0]
	if window.visible {
		t.Fatalf("window must be created hidden")
	}

	loop.deliver(app)

	if !window.visible {
		t.Fatalf("window must be visible once the context is ready")
	}

	if window.rendersWhenShown != 1 {
		t.Fatalf("expected the first frame to be rendered before the window is shown, got %d", window.rendersWhenShown)
	}

	if window.redraws != 1 {
		t.Fatalf("expected a redraw request after the first frame, got %d", window.redraws)
	}
}

func TestEndToEnd(t *testing.T) {
	app, loop, gpu := startApp(t, 800, 600)
	window := loop.windows[0]
	renderer := gpu.renderer

	if len(renderer.rendered) != 1 || renderer.rendered[0].Size() != (Size{Width: 800, Height: 600}) {
		t.Fatalf("expected first frame at 800x600, got %+v", renderer.rendered)
	}

	app.WindowEvent(loop, window.id, glimpse.Resized{Width: 400, Height: 300})

	if got := app.Surfaces().Configuration().Size(); got != (Size{Width: 400, Height: 300}) {
		t.Fatalf("expected reconfigure to 400x300, got %+v", got)
	}

	if gpu.surface.last().Size() != (Size{Width: 400, Height: 300}) {
		t.Fatalf("surface not configured with 400x300: %s", gpu.surface.last())
	}

	redraws := window.redraws
	app.WindowEvent(loop, window.id, glimpse.RedrawRequested{})

	if len(renderer.rendered) != 2 {
		t.Fatalf("expected two frames, got %d", len(renderer.rendered))
	}

	if renderer.rendered[1].Size() != (Size{Width: 400, Height: 300}) {
		t.Fatalf("expected second frame at 400x300, got %s", renderer.rendered[1])
	}

	if window.redraws != redraws+1 {
		t.Fatalf("expected next redraw to be requested")
	}

	if app.Presenter().Stats().Presented != 2 {
		t.Fatalf("expected two presented frames, got %+v", app.Presenter().Stats())
	}

	if loop.exits != 0 || app.Err() != nil {
		t.Fatalf("unexpected exit: %v", app.Err())
	}
}

func TestRecoveryIgnoresFreshWindowSize(t *testing.T) {
	app, loop, gpu := startApp(t, 800, 600)
	window := loop.windows[0]

	app.WindowEvent(loop, window.id, glimpse.Resized{Width: 400, Height: 300})

	// the window already changed but the event was not yet delivered
	window.width, window.height = 1024, 768

	gpu.renderer.outcomes = []error{SurfaceErrorOutdated}
	app.WindowEvent(loop, window.id, glimpse.RedrawRequested{})

	if gpu.surface.last().Size() != (Size{Width: 400, Height: 300}) {
		t.Fatalf("expected recovery with last known size 400x300, got %s", gpu.surface.last())
	}

	app.WindowEvent(loop, window.id, glimpse.Resized{Width: 1024, Height: 768})

	if gpu.surface.last().Size() != (Size{Width: 1024, Height: 768}) {
		t.Fatalf("expected the delayed resize to apply, got %s", gpu.surface.last())
	}
}

func TestOutOfMemoryTerminates(t *testing.T) {
	app, loop, gpu := startApp(t, 800, 600)
	window := loop.windows[0]

	gpu.renderer.outcomes = []error{SurfaceErrorOutOfMemory}
	app.WindowEvent(loop, window.id, glimpse.RedrawRequested{})

	if loop.exits != 1 {
		t.Fatalf("expected exactly one exit, got %d", loop.exits)
	}

	if !errors.Is(app.Err(), SurfaceErrorOutOfMemory) {
		t.Fatalf("expected out of memory error, got %v", app.Err())
	}

	renders := gpu.renderer.renders
	redraws := window.redraws

	app.WindowEvent(loop, window.id, glimpse.RedrawRequested{})
	app.WindowEvent(loop, window.id, glimpse.Resized{Width: 10, Height: 10})
	app.WindowEvent(loop, window.id, glimpse.CloseRequested{})

	if gpu.renderer.renders != renders {
		t.Fatalf("no frame may be presented after a fatal error")
	}

	if window.redraws != redraws {
		t.Fatalf("no redraw may be requested after a fatal error")
	}

	if loop.exits != 1 {
		t.Fatalf("expected still exactly one exit, got %d", loop.exits)
	}
}

func TestTransientFailuresKeepRunning(t *testing.T) {
	app, loop, gpu := startApp(t, 800, 600)
	window := loop.windows[0]

	gpu.renderer.outcomes = []error{SurfaceErrorTimeout, SurfaceErrorLost, nil}

	for range 3 {
		app.WindowEvent(loop, window.id, glimpse.RedrawRequested{})
	}

	if loop.exits != 0 {
		t.Fatalf("transient failures must not exit")
	}

	// one redraw after the first frame plus one per redraw event
	if window.redraws != 4 {
		t.Fatalf("expected a redraw after every outcome, got %d", window.redraws)
	}

	want := PresentStats{Presented: 2, Recovered: 1, Skipped: 1}
	if app.Presenter().Stats() != want {
		t.Fatalf("expected %+v, got %+v", want, app.Presenter().Stats())
	}
}

func TestSurfaceThatStaysLostTerminates(t *testing.T) {
	app, loop, gpu := startApp(t, 800, 600)
	window := loop.windows[0]

	// a lost device is reported like a lost surface
	deviceLost := fmt.Errorf("acquire: %w", SurfaceErrorOf(errors.New("device lost")))

	for range MaxStaleFrames + 1 {
		gpu.renderer.outcomes = append(gpu.renderer.outcomes, deviceLost)
	}

	for range MaxStaleFrames + 3 {
		app.WindowEvent(loop, window.id, glimpse.RedrawRequested{})
	}

	if loop.exits != 1 {
		t.Fatalf("expected exactly one exit, got %d", loop.exits)
	}

	if !errors.Is(app.Err(), ErrSurfaceNotRecovered) {
		t.Fatalf("expected ErrSurfaceNotRecovered, got %v", app.Err())
	}

	// one forced first frame plus the stale ones, nothing after the exit
	if gpu.renderer.renders != MaxStaleFrames+2 {
		t.Fatalf("expected no frames after exit, got %d renders", gpu.renderer.renders)
	}
}

func TestZeroResizeIsIgnored(t *testing.T) {
	app, loop, gpu := startApp(t, 800, 600)
	window := loop.windows[0]

	configs := len(gpu.surface.configs)
	app.WindowEvent(loop, window.id, glimpse.Resized{Width: 0, Height: 0})

	if len(gpu.surface.configs) != configs {
		t.Fatalf("zero sized resize must not configure the surface")
	}

	if app.Surfaces().LastKnownSize() != (Size{Width: 800, Height: 600}) {
		t.Fatalf("zero sized resize must not change the last known size")
	}
}

func TestCloseRequested(t *testing.T) {
	app, loop, _ := startApp(t, 800, 600)

	app.WindowEvent(loop, loop.windows[0].id, glimpse.CloseRequested{})

	if loop.exits != 1 {
		t.Fatalf("expected exit on close, got %d", loop.exits)
	}

	if app.Err() != nil {
		t.Fatalf("close is not an error: %v", app.Err())
	}
}

func TestBootstrapFailureExits(t *testing.T) {
	loop := newFakeLoop(800, 600)
	gpu := newFakeGPU()
	gpu.err = errBoom

	app := newTestApp(loop, gpu)
	app.Resumed(loop)
	loop.deliver(app)

	if loop.exits != 1 {
		t.Fatalf("expected exit after failed bootstrap, got %d", loop.exits)
	}

	if !errors.Is(app.Err(), errBoom) {
		t.Fatalf("expected bootstrap error, got %v", app.Err())
	}

	if loop.windows[0].visible {
		t.Fatalf("window must stay hidden without a context")
	}
}

func TestWindowCreationFailureExits(t *testing.T) {
	loop := newFakeLoop(800, 600)
	loop.createErr = errBoom

	gpu := newFakeGPU()
	app := newTestApp(loop, gpu)
	app.Resumed(loop)

	if loop.exits != 1 || !errors.Is(app.Err(), errBoom) {
		t.Fatalf("expected exit with window error, got %d exits, err %v", loop.exits, app.Err())
	}

	if gpu.creates != 0 {
		t.Fatalf("bootstrap must not run without a window")
	}
}

func TestZeroSizedWindowUsesConfiguredSize(t *testing.T) {
	loop := newFakeLoop(0, 0)
	gpu := newFakeGPU()
	app := newTestApp(loop, gpu)

	app.Resumed(loop)
	loop.deliver(app)

	if app.state != stateReady {
		t.Fatalf("expected ready state, got %d", app.state)
	}

	if app.Surfaces().LastKnownSize() != (Size{Width: 800, Height: 600}) {
		t.Fatalf("expected bootstrap with configured size, got %+v", app.Surfaces().LastKnownSize())
	}
}

// gatedGPU blocks the bootstrap until the test releases it.
type gatedGPU struct {
	*fakeGPU
	gate chan struct{}
}

func (g gatedGPU) create(window glimpse.Window, width, height uint32) (*Context, error) {
	<-g.gate
	return g.fakeGPU.create(window, width, height)
}

func waitForEvents(t *testing.T, proxy *glimpse.Proxy[ContextReady]) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for proxy.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for the bootstrap to complete")
		}

		time.Sleep(time.Millisecond)
	}
}

func TestAsyncBootstrapDropsEventsUntilReady(t *testing.T) {
	loop := newFakeLoop(800, 600)
	gpu := gatedGPU{fakeGPU: newFakeGPU(), gate: make(chan struct{})}

	opts := AppOptions{WindowWidth: 800, WindowHeight: 600}
	app := NewApp(opts, AsyncBootstrap{Create: gpu.create}, loop.proxy.Send)

	app.Resumed(loop)

	if app.state != stateContextPending {
		t.Fatalf("expected pending context, got state %d", app.state)
	}

	window := loop.windows[0]
	app.WindowEvent(loop, window.id, glimpse.Resized{Width: 400, Height: 300})
	app.WindowEvent(loop, window.id, glimpse.RedrawRequested{})

	if gpu.renderer.renders != 0 || loop.exits != 0 {
		t.Fatalf("events before the context is ready must be dropped")
	}

	// resized in the meantime
	window.width, window.height = 640, 480

	close(gpu.gate)
	waitForEvents(t, loop.proxy)
	loop.deliver(app)

	if app.state != stateReady {
		t.Fatalf("expected ready state, got %d", app.state)
	}

	if gpu.surface.last().Size() != (Size{Width: 640, Height: 480}) {
		t.Fatalf("expected surface at current window size, got %s", gpu.surface.last())
	}

	if gpu.renderer.renders != 1 || !window.visible {
		t.Fatalf("expected first frame and visible window")
	}
}

func TestAsyncBootstrapCloseWhilePending(t *testing.T) {
	loop := newFakeLoop(800, 600)
	gpu := gatedGPU{fakeGPU: newFakeGPU(), gate: make(chan struct{})}

	app := NewApp(AppOptions{}, AsyncBootstrap{Create: gpu.create}, loop.proxy.Send)
	app.Resumed(loop)

	app.WindowEvent(loop, loop.windows[0].id, glimpse.CloseRequested{})

	if loop.exits != 1 {
		t.Fatalf("expected close to exit while pending, got %d", loop.exits)
	}

	close(gpu.gate)
	waitForEvents(t, loop.proxy)
	loop.deliver(app)

	if gpu.releases != 1 {
		t.Fatalf("a context arriving after exit must be released, got %d releases", gpu.releases)
	}
}

func TestContextDroppedWhenLoopIsGone(t *testing.T) {
	loop := newFakeLoop(800, 600)
	gpu := newFakeGPU()
	app := newTestApp(loop, gpu)

	loop.proxy.Close()
	app.Resumed(loop)

	if gpu.creates != 1 || gpu.releases != 1 {
		t.Fatalf("expected context to be released, got %d creates, %d releases", gpu.creates, gpu.releases)
	}
}

func TestRunReleasesContextBeforeTerminate(t *testing.T) {
	var trace []string

	loop := newFakeLoop(800, 600)
	loop.trace = &trace
	loop.script = []scriptedEvent{
		{window: 0, event: glimpse.RedrawRequested{}},
		{window: 0, event: glimpse.Resized{Width: 400, Height: 300}},
		{window: 0, event: glimpse.RedrawRequested{}},
		{window: 0, event: glimpse.CloseRequested{}},
	}

	gpu := newFakeGPU()
	gpu.trace = &trace

	err := Run(loop, RunOptions{
		Bootstrapper: BlockingBootstrap{Create: gpu.create},
	})

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(trace) != 2 || trace[0] != "release" || trace[1] != "terminate" {
		t.Fatalf("expected release before terminate, got %v", trace)
	}

	if gpu.renderer.renders != 3 {
		t.Fatalf("expected 3 frames, got %d", gpu.renderer.renders)
	}

	if gpu.surface.last().Size() != (Size{Width: 400, Height: 300}) {
		t.Fatalf("unexpected final configuration %s", gpu.surface.last())
	}
}

func TestRunReturnsFatalError(t *testing.T) {
	loop := newFakeLoop(800, 600)
	loop.script = []scriptedEvent{
		{window: 0, event: glimpse.RedrawRequested{}},
	}

	gpu := newFakeGPU()
	gpu.renderer.outcomes = []error{nil, SurfaceErrorOutOfMemory}

	err := Run(loop, RunOptions{CreateContext: gpu.create})

	if !errors.Is(err, SurfaceErrorOutOfMemory) {
		t.Fatalf("expected out of memory error, got %v", err)
	}

	if !loop.terminated || gpu.releases != 1 {
		t.Fatalf("expected cleanup after fatal error")
	}
}

func TestRunRequiresCreateContext(t *testing.T) {
	if err := Run(newFakeLoop(1, 1), RunOptions{}); err == nil {
		t.Fatalf("expected error without CreateContext")
	}
}

func TestContextReleaseOnce(t *testing.T) {
	var releases int
	ctx := &Context{OnRelease: func() { releases++ }}

	ctx.Release()
	ctx.Release()

	if releases != 1 {
		t.Fatalf("expected a single release, got %d", releases)
	}
}
