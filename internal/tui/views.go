package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while loading, else the status message
	var left string
	switch {
	case m.Loading:
		left = m.Spinner.View() + " " + styles.DimStyle.Render(fmt.Sprintf("Loading feed · %d sets", m.Grid.Len()))
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	}

	// Center: selected set and position
	var center string
	if row := m.Grid.SelectedRow(); row != nil {
		r, c := m.Grid.Selection()
		center = styles.TitleStyle.Render(row.Title()) +
			styles.DimStyle.Render(fmt.Sprintf("  %d/%d · %d/%d", r+1, m.Grid.Len(), min(c+1, row.Len()), row.Len()))
	}

	// Right side: texture count and help hint
	right := styles.DimStyle.Render(fmt.Sprintf("%d images ", m.Pool.Len()))
	if m.Dropped > 0 {
		right += styles.AccentStyle.Render(fmt.Sprintf("%d dropped ", m.Dropped))
	}
	right += m.Help.ShortHelpView(m.keys.ShortHelp())

	return layoutFooter(m.Width, left, center, right)
}

// layoutFooter spreads three segments across width, dropping the center
// when space runs out
func layoutFooter(width int, left, center, right string) string {
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= width {
		gap := max(width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keys"),
		m.Help.FullHelpView(m.keys.FullHelp()),
		"",
		styles.DimStyle.Render("Press any key to return..."),
	)
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
