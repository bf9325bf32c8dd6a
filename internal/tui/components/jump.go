package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// maxJumpResults caps the visible match list
const maxJumpResults = 8

// JumpPalette is a filterable list of set titles
type JumpPalette struct {
	visible bool
	input   textinput.Model
	titles  []string
	matches []int // indices into titles, best first
	cursor  int
}

// NewJumpPalette creates a hidden palette
func NewJumpPalette() JumpPalette {
	ti := textinput.New()
	ti.Placeholder = "type a set title..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 36
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return JumpPalette{input: ti}
}

// Show opens the palette over the given titles
func (p *JumpPalette) Show(titles []string) tea.Cmd {
	p.visible = true
	p.titles = titles
	p.input.SetValue("")
	p.refresh()
	return p.input.Focus()
}

// Hide dismisses the palette
func (p *JumpPalette) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the palette is shown
func (p JumpPalette) IsVisible() bool {
	return p.visible
}

// Query returns the current filter text
func (p JumpPalette) Query() string {
	return p.input.Value()
}

// Matches returns the ranked title indices
func (p JumpPalette) Matches() []int {
	return p.matches
}

// Selected returns the highlighted title index
func (p JumpPalette) Selected() (int, bool) {
	if p.cursor < 0 || p.cursor >= len(p.matches) {
		return 0, false
	}
	return p.matches[p.cursor], true
}

// Update handles input events, returns (palette, cmd, submitted)
func (p JumpPalette) Update(msg tea.Msg) (JumpPalette, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			_, ok := p.Selected()
			p.Hide()
			return p, nil, ok
		case "esc", "ctrl+c":
			p.Hide()
			return p, nil, false
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, false
		case "down", "ctrl+n":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil, false
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refresh()
	}
	return p, cmd, false
}

func (p *JumpPalette) refresh() {
	p.matches = Rank(p.input.Value(), p.titles)
	p.cursor = 0
}

// View renders the palette
func (p JumpPalette) View() string {
	if !p.visible {
		return ""
	}

	const width = 40

	var rows []string
	rows = append(rows, styles.ModalTitleStyle.Render("Jump to set"))
	rows = append(rows, p.input.View(), "")

	for i, idx := range p.matches {
		if i == maxJumpResults {
			rows = append(rows, styles.DimStyle.Render(fmt.Sprintf("  … %d more", len(p.matches)-i)))
			break
		}
		title := truncate(p.titles[idx], width-4)
		if i == p.cursor {
			rows = append(rows, styles.SelectedItemStyle.Width(width).Render(title))
		} else {
			rows = append(rows, styles.NormalItemStyle.Width(width).Render(title))
		}
	}
	if len(p.matches) == 0 {
		rows = append(rows, styles.DimStyle.Render("  no matching sets"))
	}

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Rank orders titles against query. An empty query keeps feed order.
// Subsequence matches win; when there are none, titles containing a word
// within a small edit distance of the query are offered instead.
func Rank(query string, titles []string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		all := make([]int, len(titles))
		for i := range titles {
			all[i] = i
		}
		return all
	}

	matches := fuzzy.Find(query, titles)
	if len(matches) > 0 {
		ranked := make([]int, len(matches))
		for i, m := range matches {
			ranked[i] = m.Index
		}
		return ranked
	}

	return typoMatches(strings.ToLower(query), titles)
}

// typoMatches ranks titles by the closest edit distance of any word
func typoMatches(query string, titles []string) []int {
	limit := max(len(query)/3, 1)

	type scored struct {
		index    int
		distance int
	}
	var found []scored
	for i, title := range titles {
		best := lfuzzy.LevenshteinDistance(query, strings.ToLower(title))
		for _, word := range strings.Fields(strings.ToLower(title)) {
			best = min(best, lfuzzy.LevenshteinDistance(query, word))
		}
		if best <= limit {
			found = append(found, scored{index: i, distance: best})
		}
	}

	slices.SortStableFunc(found, func(a, b scored) int {
		return a.distance - b.distance
	})

	ranked := make([]int, len(found))
	for i, f := range found {
		ranked[i] = f.index
	}
	return ranked
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
