package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFeed struct {
	sets []domain.Set
	err  error
}

func (f fakeFeed) Walk(ctx context.Context, fn func(domain.Set)) error {
	for _, s := range f.sets {
		fn(s)
	}
	return f.err
}

func testSet(title string, urls ...string) domain.Set {
	set := domain.NewSet(title)
	for _, u := range urls {
		set.Items = append(set.Items, domain.Item{ImageURL: u})
	}
	return set
}

// runFeed walks feed through a real cacher and collects inbox messages
// until both the feed and the download worker are done
func runFeed(t *testing.T, feed FeedWalker, fetch cache.FetcherFunc) (sets []string, images []string, done FeedDoneMsg, drained BatchDrainedMsg) {
	t.Helper()
	ctx := context.Background()
	in := NewInbox(16)
	t.Cleanup(in.Detach)

	cacher := cache.NewCacher(fetch, in, cache.WithLogger(discardLogger()))
	sender := cacher.Start(ctx)

	assert.Nil(t, FeedCmd(ctx, feed, sender, in, discardLogger())())

	var gotDone, gotDrained bool
	for !gotDone || !gotDrained {
		switch msg := nextMsg(t, in).(type) {
		case SetDiscoveredMsg:
			sets = append(sets, msg.Set.Title)
		case TextureMsg:
			images = append(images, msg.Image.URL)
		case FeedDoneMsg:
			done, gotDone = msg, true
		case BatchDrainedMsg:
			drained, gotDrained = msg, true
		default:
			t.Fatalf("unexpected message %T", msg)
		}
	}
	return sets, images, done, drained
}

func echoFetch(_ context.Context, url string) ([]byte, error) {
	return []byte(url), nil
}

func TestFeedCmd_StreamsSetsAndImages(t *testing.T) {
	feed := fakeFeed{sets: []domain.Set{
		testSet("New", "n1", "n2"),
		testSet("Trending", "t1", "t2"),
	}}

	sets, images, done, drained := runFeed(t, feed, echoFetch)

	assert.Equal(t, []string{"New", "Trending"}, sets)
	assert.Equal(t, []string{"n1", "n2", "t1", "t2"}, images)
	assert.Equal(t, FeedDoneMsg{Sets: 2}, done)
	assert.Equal(t, BatchDrainedMsg{}, drained)
}

func TestFeedCmd_ErrorStillDrains(t *testing.T) {
	feedErr := domain.ErrMissingRefID
	feed := fakeFeed{sets: []domain.Set{testSet("New", "n1")}, err: feedErr}

	fail := func(_ context.Context, url string) ([]byte, error) {
		return nil, errors.New("offline")
	}
	sets, images, done, _ := runFeed(t, feed, fail)

	assert.Equal(t, []string{"New"}, sets)
	assert.Empty(t, images)
	assert.Equal(t, 1, done.Sets)
	require.Error(t, done.Err)
	assert.ErrorIs(t, done.Err, domain.ErrMissingRefID)
}

func TestFeedCmd_DetachedInbox(t *testing.T) {
	ctx := context.Background()
	in := NewInbox(1)
	in.Detach()

	cacher := cache.NewCacher(cache.FetcherFunc(echoFetch), in, cache.WithLogger(discardLogger()))
	sender := cacher.Start(ctx)

	feed := fakeFeed{sets: []domain.Set{testSet("New", "n1")}}
	assert.Nil(t, FeedCmd(ctx, feed, sender, in, discardLogger())())

	// the sender was closed, so the worker finishes on its own
	<-cacher.Done()
	assert.Equal(t, 0, cacher.Pending())
}
