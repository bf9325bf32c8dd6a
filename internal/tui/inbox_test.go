package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextMsg reads one inbox message or fails after a timeout
func nextMsg(t *testing.T, in *Inbox) tea.Msg {
	t.Helper()
	got := make(chan tea.Msg, 1)
	go func() { got <- in.Next() }()
	select {
	case msg := <-got:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for inbox message")
		return nil
	}
}

func TestInbox_TranslatesEvents(t *testing.T) {
	in := NewInbox(4)

	require.NoError(t, in.Emit(cache.ImageReady{URL: "a.jpg", Bytes: []byte("x")}))
	assert.Equal(t, TextureMsg{Image: cache.ImageReady{URL: "a.jpg", Bytes: []byte("x")}}, nextMsg(t, in))

	require.NoError(t, in.Emit(cache.BatchDrained{Dropped: 2}))
	assert.Equal(t, BatchDrainedMsg{Dropped: 2}, nextMsg(t, in))
}

func TestInbox_EmitDoesNotWaitForReader(t *testing.T) {
	in := NewInbox(0)

	emitted := make(chan struct{})
	go func() {
		defer close(emitted)
		for i := 0; i < 1000; i++ {
			_ = in.Emit(cache.ImageReady{URL: fmt.Sprintf("%d.jpg", i)})
		}
		_ = in.Emit(cache.BatchDrained{})
	}()

	select {
	case <-emitted:
	case <-time.After(2 * time.Second):
		t.Fatal("emit waited on an idle reader")
	}

	assert.Equal(t, TextureMsg{Image: cache.ImageReady{URL: "0.jpg"}}, nextMsg(t, in))
	assert.Equal(t, TextureMsg{Image: cache.ImageReady{URL: "1.jpg"}}, nextMsg(t, in))
}

func TestInbox_FeedMessagesGoFirst(t *testing.T) {
	in := NewInbox(4)
	set := domain.NewSet("Trending")

	require.NoError(t, in.Emit(cache.ImageReady{URL: "a.jpg"}))
	require.NoError(t, in.Post(SetDiscoveredMsg{Set: set}))

	assert.Equal(t, SetDiscoveredMsg{Set: set}, nextMsg(t, in))
	assert.Equal(t, TextureMsg{Image: cache.ImageReady{URL: "a.jpg"}}, nextMsg(t, in))
}

func TestInbox_Post(t *testing.T) {
	in := NewInbox(4)
	set := domain.NewSet("Trending")

	require.NoError(t, in.Post(SetDiscoveredMsg{Set: set}))
	assert.Equal(t, SetDiscoveredMsg{Set: set}, nextMsg(t, in))
}

func TestInbox_Detach(t *testing.T) {
	in := NewInbox(0)

	// a producer blocked on a full inbox is released by Detach
	blocked := make(chan error, 1)
	go func() { blocked <- in.Post(FeedDoneMsg{}) }()

	in.Detach()
	in.Detach()

	select {
	case err := <-blocked:
		assert.ErrorIs(t, err, cache.ErrSinkClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("post still blocked after detach")
	}

	assert.ErrorIs(t, in.Emit(cache.BatchDrained{}), cache.ErrSinkClosed)
	assert.ErrorIs(t, in.Post(FeedDoneMsg{}), cache.ErrSinkClosed)
	assert.Nil(t, nextMsg(t, in))
}
