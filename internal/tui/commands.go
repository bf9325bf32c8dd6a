package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
)

// FeedWalker streams sets from the catalog feed
type FeedWalker interface {
	Walk(ctx context.Context, fn func(domain.Set)) error
}

// FeedCmd walks the feed in the background. Each set is posted to the inbox
// and its images are queued for download. The sender is closed when the walk
// ends, which lets the download worker drain and finish.
func FeedCmd(ctx context.Context, feed FeedWalker, sender *cache.Sender, in *Inbox, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		defer sender.Close()

		count := 0
		err := feed.Walk(ctx, func(set domain.Set) {
			if err := in.Post(SetDiscoveredMsg{Set: set}); err != nil {
				return
			}
			count++
			sender.EnqueueAll(set.ImageURLs())
			logger.Debug("set discovered", "title", set.Title, "items", set.Len())
		})
		if err != nil {
			logger.Error("feed walk failed", "sets", count, "error", err)
		} else {
			logger.Info("feed walk complete", "sets", count)
		}

		_ = in.Post(FeedDoneMsg{Sets: count, Err: err})
		return nil
	}
}

// ListenCmd returns a command that reads the next message from the inbox.
// Handlers for inbox messages re-issue it, so exactly one read is pending.
func ListenCmd(in *Inbox) tea.Cmd {
	return func() tea.Msg {
		return in.Next()
	}
}

// FrameCmd returns a command that sends a frame tick after a delay
func FrameCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return FrameMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
