package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is large enough to absorb a whole catalog in one burst
const DefaultCapacity = 16 * 1024

// Option configures a Cacher
type Option func(*Cacher)

// WithCapacity sets the queue capacity. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(c *Cacher) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithLogger sets the logger used for fetch failures and drops
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cacher) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Cacher owns the download queue and its single worker.
//
// Only one worker ever drains a Cacher's queue; running several Cachers at
// once makes them compete for bandwidth and decode time.
type Cacher struct {
	fetcher  Fetcher
	sink     Sink
	logger   *slog.Logger
	capacity int

	requests chan string
	dropped  atomic.Uint64
	done     chan struct{}

	mu      sync.RWMutex // Guards senders, closed and started
	senders int
	closed  bool
	started bool
}

// NewCacher creates a cacher that fetches with fetcher and reports to sink.
// The worker does not run until Start is called.
func NewCacher(fetcher Fetcher, sink Sink, opts ...Option) *Cacher {
	c := &Cacher{
		fetcher:  fetcher,
		sink:     sink,
		logger:   slog.Default(),
		capacity: DefaultCapacity,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.requests = make(chan string, c.capacity)
	return c
}

// Start launches the worker and returns the first Sender. Calling Start again
// returns another Sender for the same worker.
func (c *Cacher) Start(ctx context.Context) *Sender {
	c.mu.Lock()
	if !c.started {
		c.started = true
		go c.run(ctx)
	}
	c.mu.Unlock()

	return c.newSender()
}

// Done is closed after the worker has emitted BatchDrained and exited
func (c *Cacher) Done() <-chan struct{} {
	return c.done
}

// Dropped returns how many requests were discarded on a full queue
func (c *Cacher) Dropped() uint64 {
	return c.dropped.Load()
}

// Capacity returns the queue capacity fixed at creation
func (c *Cacher) Capacity() int {
	return c.capacity
}

// Pending returns the number of requests waiting in the queue
func (c *Cacher) Pending() int {
	return len(c.requests)
}

func (c *Cacher) newSender() *Sender {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &Sender{c: c}
	if c.closed {
		s.closed.Store(true)
		return s
	}
	c.senders++
	return s
}

func (c *Cacher) enqueue(url string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		c.logger.Debug("queue closed, dropping request", "url", url)
		return
	}

	select {
	case c.requests <- url:
	default:
		// Full queue: the request is lost and the producer keeps going
		c.dropped.Add(1)
		c.logger.Debug("queue full, dropping request", "url", url, "capacity", c.capacity)
	}
}

func (c *Cacher) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.senders--
	if c.senders == 0 && !c.closed {
		c.closed = true
		close(c.requests)
	}
}

// run drains the queue sequentially until every sender is closed
func (c *Cacher) run(ctx context.Context) {
	defer close(c.done)

	for url := range c.requests {
		data, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			c.logger.Warn("failed to cache texture url", "url", url, "error", err)
			continue
		}

		if err := c.sink.Emit(ImageReady{URL: url, Bytes: data}); err != nil {
			c.logger.Debug("image event not delivered", "url", url, "error", err)
		}
	}

	dropped := c.dropped.Load()
	c.logger.Info("texture caching batch complete", "dropped", dropped)
	if err := c.sink.Emit(BatchDrained{Dropped: dropped}); err != nil {
		c.logger.Debug("batch event not delivered", "error", err)
	}
}

// Sender is a producer handle for a Cacher's queue. Senders are cheap to
// clone and safe for concurrent use. The queue closes when the last open
// Sender is closed.
type Sender struct {
	c      *Cacher
	closed atomic.Bool
}

// Enqueue requests a download without blocking. If the queue is full, or
// this sender has been closed, the request is silently discarded.
func (s *Sender) Enqueue(url string) {
	if s.closed.Load() {
		return
	}
	s.c.enqueue(url)
}

// EnqueueAll enqueues every URL in order
func (s *Sender) EnqueueAll(urls []string) {
	for _, url := range urls {
		s.Enqueue(url)
	}
}

// Clone returns a new handle that keeps the queue open independently
func (s *Sender) Clone() *Sender {
	return s.c.newSender()
}

// Close releases this handle. Closing twice has no effect.
func (s *Sender) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.c.release()
}
