package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/cache"
)

// Inbox funnels background work into the Bubble Tea loop. Download events
// arrive through a cache.Mailbox, so the worker never waits on the UI. Feed
// progress arrives through Post. The loop reads one message per Update turn
// via ListenCmd.
type Inbox struct {
	events *cache.Mailbox
	feed   chan tea.Msg
	done   chan struct{}
	once   sync.Once
}

// NewInbox creates an inbox buffering up to buffer feed messages
func NewInbox(buffer int) *Inbox {
	if buffer < 0 {
		buffer = 0
	}
	return &Inbox{
		events: cache.NewMailbox(),
		feed:   make(chan tea.Msg, buffer),
		done:   make(chan struct{}),
	}
}

// Emit implements cache.Sink
func (in *Inbox) Emit(ev cache.Event) error {
	return in.events.Emit(ev)
}

// Post queues a feed message. It waits while the buffer is full and fails
// with cache.ErrSinkClosed once the UI has detached.
func (in *Inbox) Post(msg tea.Msg) error {
	select {
	case <-in.done:
		return cache.ErrSinkClosed
	default:
	}

	select {
	case in.feed <- msg:
		return nil
	case <-in.done:
		return cache.ErrSinkClosed
	}
}

// Next blocks for the next message. Feed messages go first so rows appear
// ahead of a backlog of images. It returns nil after Detach.
func (in *Inbox) Next() tea.Msg {
	for {
		select {
		case <-in.done:
			return nil
		case msg := <-in.feed:
			return msg
		default:
		}

		if ev, ok := in.events.Pop(); ok {
			return eventMsg(ev)
		}

		select {
		case msg := <-in.feed:
			return msg
		case <-in.events.Ready():
		case <-in.done:
			return nil
		}
	}
}

// Detach stops delivery. Blocked producers are released.
func (in *Inbox) Detach() {
	in.once.Do(func() {
		close(in.done)
		in.events.Detach()
	})
}

// eventMsg converts a download event to its UI message
func eventMsg(ev cache.Event) tea.Msg {
	switch ev := ev.(type) {
	case cache.ImageReady:
		return TextureMsg{Image: ev}
	case cache.BatchDrained:
		return BatchDrainedMsg{Dropped: ev.Dropped}
	}
	return nil
}
