package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/feed"
	"github.com/mmcdole/marquee/internal/grid"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

const (
	// inboxBuffer bounds feed messages waiting for the UI
	inboxBuffer = 256

	// shutdownGrace is how long to wait for the download worker on exit
	shutdownGrace = 2 * time.Second
)

func main() {
	flags := pflag.NewFlagSet("marquee", pflag.ContinueOnError)
	showVersion := flags.BoolP("version", "v", false, "print version")
	adapter.RegisterFlags(flags)

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *pflag.FlagSet) error {
	// Load configuration
	cfg, err := adapter.LoadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("marquee needs an interactive terminal")
	}

	logger.Info("starting marquee", "version", Version, "home", cfg.Feed.HomeURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Download pipeline: one worker feeding the UI inbox
	inbox := tui.NewInbox(inboxBuffer)
	defer inbox.Detach()

	fetcher := cache.NewHTTPFetcher(&http.Client{Timeout: cfg.Cache.FetchTimeout}, cfg.Cache.MaxImageBytes, logger)
	cacher := cache.NewCacher(fetcher, inbox,
		cache.WithCapacity(cfg.Cache.QueueCapacity),
		cache.WithLogger(logger),
	)
	sender := cacher.Start(ctx)

	canvas := tui.NewCanvas(cfg.UI.CellWidth, cfg.UI.CellHeight)
	client := feed.NewClient(feed.Config{
		HomeURL: cfg.Feed.HomeURL,
		SetURL:  cfg.Feed.SetURL,
	}, &http.Client{Timeout: cfg.Feed.Timeout}, logger)

	model := tui.NewModel(tui.Options{
		Context:       ctx,
		Feed:          client,
		Sender:        sender,
		Inbox:         inbox,
		Pool:          cache.NewPool(canvas, logger),
		Canvas:        canvas,
		Grid:          grid.New(grid.WithDuration(cfg.UI.Transition)),
		FrameInterval: cfg.UI.FrameInterval(),
		Logger:        logger,
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	_, runErr := p.Run()

	// Release the worker: pending emits fail and in-flight fetches abort
	inbox.Detach()
	cancel()
	select {
	case <-cacher.Done():
	case <-time.After(shutdownGrace):
		logger.Warn("download worker still busy at exit", "pending", cacher.Pending())
	}

	if runErr != nil {
		logger.Error("TUI error", "error", runErr)
		return fmt.Errorf("TUI error: %w", runErr)
	}

	logger.Info("shutting down", "textures", model.Pool.Len(), "dropped", cacher.Dropped())
	return nil
}
