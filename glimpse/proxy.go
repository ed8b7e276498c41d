package glimpse

import (
	"errors"
	"sync"
)

var ErrEventLoopClosed = errors.New("event loop closed")

// Proxy hands user events from other goroutines to the event loop thread.
// Events are delivered in the order they were sent.
type Proxy[E any] struct {
	mu      sync.Mutex
	pending []E
	closed  bool

	// wakes up the event loop if it is waiting for platform events
	wake func()
}

func NewProxy[E any](wake func()) *Proxy[E] {
	return &Proxy[E]{wake: wake}
}

// Send queues the event for the next iteration of the event loop. It is safe
// to call from any goroutine and never blocks on the event loop.
func (p *Proxy[E]) Send(event E) error {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		return ErrEventLoopClosed
	}

	p.pending = append(p.pending, event)
	p.mu.Unlock()

	if p.wake != nil {
		p.wake()
	}

	return nil
}

// Drain calls fn for every queued event. Must only be called by the event loop.
// Events sent while fn is running are delivered by the next call to Drain.
func (p *Proxy[E]) Drain(fn func(E)) {
	p.mu.Lock()
	events := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, event := range events {
		fn(event)
	}
}

// Len returns the number of events waiting to be drained.
func (p *Proxy[E]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.pending)
}

// Close rejects all further events and drops the ones not yet drained.
func (p *Proxy[E]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.pending = nil
}
