package glimpse

type queuedEvent struct {
	id    WindowID
	event WindowEvent
}

// Dispatcher holds the events of a platform loop between two iterations
// and delivers them to a Handler. Platform event loops embed it.
type Dispatcher[E any] struct {
	proxy   *Proxy[E]
	queue   []queuedEvent
	redraws []WindowID
	exiting bool
}

// NewDispatcher creates a Dispatcher whose Proxy calls wake after every Send.
func NewDispatcher[E any](wake func()) *Dispatcher[E] {
	return &Dispatcher[E]{
		proxy: NewProxy[E](wake),
	}
}

func (d *Dispatcher[E]) Proxy() *Proxy[E] {
	return d.proxy
}

// Push queues a window event in delivery order.
func (d *Dispatcher[E]) Push(id WindowID, event WindowEvent) {
	d.queue = append(d.queue, queuedEvent{id: id, event: event})
}

// RequestRedraw marks the window for one RedrawRequested in the next
// iteration. Repeated requests are merged.
func (d *Dispatcher[E]) RequestRedraw(id WindowID) {
	for _, pending := range d.redraws {
		if pending == id {
			return
		}
	}

	d.redraws = append(d.redraws, id)
}

// Pending reports whether the next iteration has work without waiting
// for platform events.
func (d *Dispatcher[E]) Pending() bool {
	return len(d.redraws) > 0 || d.proxy.Len() > 0
}

func (d *Dispatcher[E]) Exit() {
	d.exiting = true
}

func (d *Dispatcher[E]) Exiting() bool {
	return d.exiting
}

// Dispatch runs one iteration: user events, then the queued window events,
// then the redraws. Nothing is delivered once Exit was called. Events
// produced while dispatching are kept for the next iteration.
func (d *Dispatcher[E]) Dispatch(el ActiveEventLoop, handler Handler[E]) {
	d.proxy.Drain(func(event E) {
		if !d.exiting {
			handler.UserEvent(el, event)
		}
	})

	queue := d.queue
	d.queue = nil

	for _, queued := range queue {
		if d.exiting {
			return
		}

		handler.WindowEvent(el, queued.id, queued.event)
	}

	redraws := d.redraws
	d.redraws = nil

	for _, id := range redraws {
		if d.exiting {
			return
		}

		handler.WindowEvent(el, id, RedrawRequested{})
	}
}
