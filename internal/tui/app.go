package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/grid"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants
const (
	// Vertical layout: single footer line
	ChromeHeight = 1

	defaultFrameInterval = time.Second / 30
	statusTimeout        = 3 * time.Second
)

// Options wires the model to its collaborators
type Options struct {
	Context context.Context
	Feed    FeedWalker
	Sender  *cache.Sender
	Inbox   *Inbox
	Pool    *cache.Pool
	Canvas  *Canvas
	Grid    *grid.Grid

	FrameInterval time.Duration
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Owned state, touched only from Update
	Grid   *grid.Grid
	Pool   *cache.Pool
	Canvas *Canvas

	// Background work
	ctx    context.Context
	feed   FeedWalker
	sender *cache.Sender
	inbox  *Inbox

	// UI Components
	Jump    components.JumpPalette
	Help    help.Model
	Spinner spinner.Model
	keys    KeyMap

	// Dimensions
	Width  int
	Height int

	// UI state
	Loading       bool
	ShowHelp      bool
	StatusMsg     string
	StatusIsErr   bool
	Drained       bool
	Dropped       uint64
	frameInterval time.Duration
	ticking       bool // a FrameCmd is outstanding

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}
	if opts.Grid == nil {
		opts.Grid = grid.New()
	}
	if opts.Canvas == nil {
		opts.Canvas = NewCanvas(12, 6)
	}
	if opts.Pool == nil {
		opts.Pool = cache.NewPool(opts.Canvas, opts.Logger)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		Grid:          opts.Grid,
		Pool:          opts.Pool,
		Canvas:        opts.Canvas,
		ctx:           opts.Context,
		feed:          opts.Feed,
		sender:        opts.Sender,
		inbox:         opts.Inbox,
		Jump:          components.NewJumpPalette(),
		Help:          help.New(),
		Spinner:       sp,
		keys:          DefaultKeyMap(),
		Loading:       opts.Feed != nil,
		frameInterval: opts.FrameInterval,
		ticking:       true,
		logger:        opts.Logger,
	}
}

// Init initializes the application. The first frame tick is always
// scheduled; Update keeps ticking only while something animates.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{FrameCmd(m.frameInterval)}
	if m.inbox != nil {
		cmds = append(cmds, ListenCmd(m.inbox))
		if m.feed != nil && m.sender != nil {
			cmds = append(cmds, FeedCmd(m.ctx, m.feed, m.sender, m.inbox, m.logger))
		}
	}
	if m.Loading {
		cmds = append(cmds, m.Spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Canvas.Resize(msg.Width, max(msg.Height-ChromeHeight, 0))
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case FrameMsg:
		if !m.Grid.Animating() {
			m.ticking = false
			return m, nil
		}
		m.ticking = true
		return m, FrameCmd(m.frameInterval)

	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case SetDiscoveredMsg:
		m.Grid.Add(msg.Set)
		frame := m.animate()
		return m, tea.Batch(m.listen(), frame)

	case TextureMsg:
		if err := m.Pool.Handle(msg.Image); err != nil {
			// the tile keeps its placeholder
			m.logger.Debug("texture not stored", "url", msg.Image.URL, "error", err)
		}
		return m, m.listen()

	case BatchDrainedMsg:
		m.Drained = true
		m.Dropped = msg.Dropped
		m.logger.Info("image downloads finished", "textures", m.Pool.Len(), "dropped", msg.Dropped)
		if msg.Dropped > 0 {
			m.StatusMsg = fmt.Sprintf("%d images skipped, download queue was full", msg.Dropped)
			m.StatusIsErr = true
		}
		return m, m.listen()

	case FeedDoneMsg:
		m.Loading = false
		if msg.Err != nil {
			m.StatusMsg = fmt.Sprintf("Feed error: %v", msg.Err)
			m.StatusIsErr = true
			return m, m.listen()
		}
		m.StatusMsg = fmt.Sprintf("Loaded %d sets", msg.Sets)
		m.StatusIsErr = false
		return m, tea.Batch(m.listen(), ClearStatusCmd(statusTimeout))

	case ClearStatusMsg:
		if !m.StatusIsErr {
			m.StatusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// animate restarts frame ticks after a state change started a transition
func (m *Model) animate() tea.Cmd {
	if m.ticking || !m.Grid.Animating() {
		return nil
	}
	m.ticking = true
	return FrameCmd(m.frameInterval)
}

func (m Model) listen() tea.Cmd {
	if m.inbox == nil {
		return nil
	}
	return ListenCmd(m.inbox)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Jump.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.Jump, cmd, submitted = m.Jump.Update(msg)
		if submitted {
			if row, ok := m.Jump.Selected(); ok && !m.Grid.JumpTo(row) {
				m.logger.Debug("jump ignored", "row", row)
			}
		}
		frame := m.animate()
		return m, tea.Batch(cmd, frame)
	}

	if m.ShowHelp {
		// Any key closes help
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
	case key.Matches(msg, m.keys.Jump):
		if m.Grid.Len() == 0 {
			return m, nil
		}
		cmd := m.Jump.Show(m.Grid.Titles())
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.Grid.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.Grid.MoveDown()
	case key.Matches(msg, m.keys.Left):
		m.Grid.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.Grid.MoveRight()
	}
	frame := m.animate()
	return m, frame
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.Canvas.Frame(m.Grid, m.Pool),
		m.renderFooter(),
	)

	// Overlay jump palette if visible
	if m.Jump.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Jump.View())
	}

	return view
}
