package glimpse

// WindowID identifies a window created by an event loop. Events carry the id
// of the window they belong to.
type WindowID uint64

type WindowAttributes struct {
	Title  string
	Width  int
	Height int

	// Visible windows are shown right away. Create windows hidden
	// if the first frame is not yet rendered.
	Visible bool
}

// Window is a handle to a platform window. The handle is shared between
// the application and the GPU surface bound to it. The event loop that
// created the window destroys it in Terminate, after all surfaces are gone.
type Window interface {
	ID() WindowID

	// InnerSize returns the size of the drawable area in physical pixels.
	InnerSize() (width, height uint32)

	SetVisible(visible bool)

	// RequestRedraw schedules a RedrawRequested event for this window
	// in the next iteration of the event loop.
	RequestRedraw()
}

type WindowEvent interface {
	isWindowEvent()
}

type CloseRequested struct{}

// Resized is delivered when the drawable area of the window changes.
// Width and Height are physical pixels and may be zero while minimized.
type Resized struct {
	Width  uint32
	Height uint32
}

type RedrawRequested struct{}

func (CloseRequested) isWindowEvent()  {}
func (Resized) isWindowEvent()         {}
func (RedrawRequested) isWindowEvent() {}
