package cache

// Event is a notification sent from the download worker to the control loop.
// It is either ImageReady or BatchDrained.
type Event interface {
	isEvent()
}

// ImageReady carries the raw bytes of a successfully downloaded image
type ImageReady struct {
	URL   string
	Bytes []byte
}

// BatchDrained is the last event a worker emits, after its queue has been
// closed and emptied
type BatchDrained struct {
	Dropped uint64 // Requests discarded because the queue was full
}

func (ImageReady) isEvent()   {}
func (BatchDrained) isEvent() {}
