package glimpse

// ActiveEventLoop is the view of the event loop a Handler gets while
// it is being called.
type ActiveEventLoop interface {
	CreateWindow(attrs WindowAttributes) (Window, error)

	// Exit stops the event loop. Nothing is dispatched after it was called.
	Exit()
}

// Handler receives the events of an EventLoop. All methods are called
// on the event loop thread, one at a time.
type Handler[E any] interface {
	// Resumed is called when the application may create windows. On desktop
	// platforms this happens exactly once, mobile style platforms may call
	// it again after a suspend.
	Resumed(el ActiveEventLoop)

	// UserEvent delivers an event that was sent through the Proxy.
	UserEvent(el ActiveEventLoop, event E)

	WindowEvent(el ActiveEventLoop, id WindowID, event WindowEvent)
}

// EventLoop is implemented by the platform adapters. They dispatch through
// a Dispatcher, see Dispatcher.Dispatch for the order of events.
type EventLoop[E any] interface {
	// Proxy returns the channel other goroutines can use to send
	// user events to the handler.
	Proxy() *Proxy[E]

	// Run dispatches events to the handler until Exit is called.
	Run(handler Handler[E]) error

	// Terminate destroys all windows and releases the platform.
	Terminate()
}
