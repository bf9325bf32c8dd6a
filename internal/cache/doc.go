// Package cache downloads thumbnail images on a single background worker and
// reports them back to a control loop that owns the decoded textures.
//
// Producers enqueue URLs through cloneable Sender handles. Enqueueing never
// blocks: when the bounded queue is full the request is dropped and counted.
// The worker fetches one URL at a time, in queue order, and emits an
// ImageReady event per successful download. Once every Sender has been closed
// and the queue has drained, it emits a single BatchDrained event and exits.
// Events go to a Sink; the Mailbox sink queues them without ever making the
// worker wait on a slow consumer.
//
// The Pool is not safe for concurrent use. It is meant to be written only by
// the goroutine consuming events (the Bubble Tea update loop).
package cache
