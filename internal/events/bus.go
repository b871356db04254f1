package events

import (
	"sync"
)

// Bus is a synchronous in-process observer registry. Listeners are called in
// the order they subscribed, on the publisher's goroutine.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	closed    bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener. Subscribing the same listener again is a no-op.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.indexOf(l) >= 0 {
		return
	}
	b.listeners = append(b.listeners, l)
}

// Unsubscribe removes a listener. Unknown listeners are ignored.
func (b *Bus) Unsubscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(l)
	if i < 0 {
		return
	}
	b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
}

// Publish delivers n to every listener. The first listener error stops
// delivery and is returned to the caller unchanged.
func (b *Bus) Publish(n Notification) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := l.Update(n); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of subscribed listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Close stops delivery. Publish after Close does nothing.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *Bus) indexOf(l Listener) int {
	for i, existing := range b.listeners {
		if existing == l {
			return i
		}
	}
	return -1
}

// Recorder is a listener that keeps everything it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

// Update appends n.
func (r *Recorder) Update(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
	return nil
}

// Events returns a copy of the received notifications, oldest first.
func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.events))
	copy(out, r.events)
	return out
}
