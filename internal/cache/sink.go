package cache

import (
	"errors"
	"sync"
)

// ErrSinkClosed is returned by Emit once the consumer has detached
var ErrSinkClosed = errors.New("event sink closed")

// Sink receives events from the download worker. Emit must be safe to call
// from the worker goroutine and must not panic once the consumer is gone.
type Sink interface {
	Emit(Event) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(Event) error

// Emit calls f(e)
func (f SinkFunc) Emit(e Event) error {
	return f(e)
}

// Mailbox is an unbounded FIFO sink for a single consumer. Emit never blocks
// the worker; the consumer waits on Ready and drains with Pop.
type Mailbox struct {
	mu       sync.Mutex
	queue    []Event
	detached bool
	ready    chan struct{}
}

// NewMailbox creates an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

// Emit appends the event and wakes the consumer. It fails with ErrSinkClosed
// once the consumer has detached.
func (m *Mailbox) Emit(e Event) error {
	m.mu.Lock()
	if m.detached {
		m.mu.Unlock()
		return ErrSinkClosed
	}
	m.queue = append(m.queue, e)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
	return nil
}

// Pop removes the oldest pending event
func (m *Mailbox) Pop() (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return nil, false
	}
	e := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return e, true
}

// Ready receives a signal after Emit. Signals coalesce, so drain with Pop
// until it reports false before waiting again.
func (m *Mailbox) Ready() <-chan struct{} {
	return m.ready
}

// Len returns the number of pending events
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Detach marks the consumer as gone and discards pending events. Future
// emits fail with ErrSinkClosed. Safe to call more than once.
func (m *Mailbox) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detached = true
	m.queue = nil
}
