package tui

import (
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
)

// Message types for the TUI

// SetDiscoveredMsg carries a set parsed from the feed, one per row
type SetDiscoveredMsg struct {
	Set domain.Set
}

// FeedDoneMsg signals that the feed walk finished, successfully or not
type FeedDoneMsg struct {
	Sets int // Sets delivered before the walk ended
	Err  error
}

// TextureMsg carries downloaded image bytes to be decoded into the pool
type TextureMsg struct {
	Image cache.ImageReady
}

// BatchDrainedMsg signals that the download worker has finished
type BatchDrainedMsg struct {
	Dropped uint64
}

// FrameMsg drives animation redraws
type FrameMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
