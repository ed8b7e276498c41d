package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/lmage/glimpse"
)

type appState int

const (
	stateNoWindow appState = iota
	stateWindowCreated
	stateContextPending
	stateReady
	stateExited
)

type AppOptions struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
}

// App connects the platform event loop with the GPU context. It creates the
// window, starts the bootstrap once and dispatches window events to the
// SurfaceManager and the Presenter once the context is ready.
//
// All methods run on the event loop thread. The only input from other
// goroutines is the ContextReady event delivered through the event loop.
type App struct {
	opts      AppOptions
	bootstrap Bootstrapper

	// hands a finished bootstrap over to the event loop
	send func(ContextReady) error

	state appState

	window glimpse.Window

	context   *Context
	surfaces  *SurfaceManager
	presenter *Presenter

	err error
}

var _ glimpse.Handler[ContextReady] = (*App)(nil)

func NewApp(opts AppOptions, bootstrap Bootstrapper, send func(ContextReady) error) *App {
	return &App{
		opts:      opts,
		bootstrap: bootstrap,
		send:      send,
	}
}

func (a *App) Resumed(el glimpse.ActiveEventLoop) {
	if a.state == stateExited {
		return
	}

	window, err := el.CreateWindow(glimpse.WindowAttributes{
		Title:  a.opts.WindowTitle,
		Width:  a.opts.WindowWidth,
		Height: a.opts.WindowHeight,

		// shown after the first frame was rendered
		Visible: false,
	})

	if err != nil {
		if a.window == nil {
			a.fail(el, fmt.Errorf("create window: %w", err))
		} else {
			slog.Warn("Failed to create window on resume", slog.Any("error", err))
		}

		return
	}

	first := a.window == nil

	a.window = window

	if !first {
		slog.Info("Resumed with a new window, keep existing context")
		return
	}

	a.state = stateWindowCreated

	width, height := window.InnerSize()

	size := Size{Width: width, Height: height}
	if size.IsZero() {
		size = Size{Width: uint32(a.opts.WindowWidth), Height: uint32(a.opts.WindowHeight)}
	}

	a.state = stateContextPending

	a.bootstrap.Bootstrap(window, size.Width, size.Height, func(event ContextReady) {
		if err := a.send(event); err != nil {
			slog.Warn("Drop context, event loop is gone", slog.Any("error", err))

			if event.Context != nil {
				event.Context.Release()
			}
		}
	})
}

func (a *App) UserEvent(el glimpse.ActiveEventLoop, event ContextReady) {
	if a.state != stateContextPending {
		slog.Warn("Unexpected context ready event")

		if event.Context != nil {
			event.Context.Release()
		}

		return
	}

	if event.Err != nil {
		a.fail(el, fmt.Errorf("bootstrap gpu context: %w", event.Err))
		return
	}

	slog.Info("Received context ready event")

	ctx := event.Context
	a.context = ctx
	a.surfaces = NewSurfaceManager(ctx.Surface, ctx.Config, ctx.Renderer.Resize)
	a.presenter = NewPresenter(a.surfaces, ctx.Renderer)
	a.state = stateReady

	// the window might have been resized while we were waiting
	width, height := a.window.InnerSize()
	a.reconfigure(width, height)

	// render before the window becomes visible, no blank frame
	if !a.presentFrame(el) {
		return
	}

	a.window.SetVisible(true)
	a.window.RequestRedraw()
}

func (a *App) WindowEvent(el glimpse.ActiveEventLoop, id glimpse.WindowID, event glimpse.WindowEvent) {
	if a.state == stateExited || a.window == nil || id != a.window.ID() {
		return
	}

	if _, ok := event.(glimpse.CloseRequested); ok {
		slog.Info("The close button was pressed; stopping")
		a.exit(el)
		return
	}

	if a.state != stateReady {
		return
	}

	switch event := event.(type) {
	case glimpse.Resized:
		a.reconfigure(event.Width, event.Height)

	case glimpse.RedrawRequested:
		if a.presentFrame(el) {
			a.window.RequestRedraw()
		}
	}
}

func (a *App) reconfigure(width, height uint32) {
	if err := a.surfaces.Reconfigure(width, height); err != nil {
		slog.Warn("Failed to reconfigure surface", slog.Any("error", err))
	}
}

func (a *App) presentFrame(el glimpse.ActiveEventLoop) bool {
	if err := a.presenter.PresentFrame(); err != nil {
		a.fail(el, err)
		return false
	}

	return true
}

func (a *App) fail(el glimpse.ActiveEventLoop, err error) {
	slog.Error("Fatal error, exiting", slog.Any("error", err))

	if a.err == nil {
		a.err = err
	}

	a.exit(el)
}

func (a *App) exit(el glimpse.ActiveEventLoop) {
	if a.state == stateExited {
		return
	}

	a.state = stateExited
	el.Exit()
}

// Err returns the error that terminated the application, if any.
func (a *App) Err() error {
	return a.err
}

// Presenter returns nil until the context is ready.
func (a *App) Presenter() *Presenter {
	return a.presenter
}

// Surfaces returns nil until the context is ready.
func (a *App) Surfaces() *SurfaceManager {
	return a.surfaces
}

// Close releases the GPU context. Call it before the windows are destroyed.
func (a *App) Close() {
	if a.context != nil {
		a.context.Release()
		a.context = nil
	}
}
