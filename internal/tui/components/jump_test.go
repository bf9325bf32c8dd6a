package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titles = []string{
	"New to Marquee",
	"Trending",
	"Recommended For You",
	"Classics",
}

func TestRank(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty keeps order", "", []int{0, 1, 2, 3}},
		{"blank keeps order", "   ", []int{0, 1, 2, 3}},
		{"subsequence", "trend", []int{1}},
		{"case folded", "CLASSICS", []int{3}},
		{"typo falls back to edit distance", "trendign", []int{1}},
		{"typo on a later word", "marqeu", []int{0}},
		{"nothing close", "zzzzzz", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.query, titles)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRank_BestFirst(t *testing.T) {
	got := Rank("re", titles)
	require.NotEmpty(t, got)
	assert.Contains(t, got, 2)
	assert.Contains(t, got, 1)
}

func typeText(p JumpPalette, s string) JumpPalette {
	for _, r := range s {
		p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestJumpPalette_Flow(t *testing.T) {
	p := NewJumpPalette()
	assert.False(t, p.IsVisible())
	assert.Empty(t, p.View())

	p.Show(titles)
	require.True(t, p.IsVisible())
	assert.Equal(t, []int{0, 1, 2, 3}, p.Matches())

	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	idx, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	p, _, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	idx, _ = p.Selected()
	assert.Equal(t, 1, idx)

	// typing resets the cursor to the best match
	p = typeText(p, "class")
	assert.Equal(t, "class", p.Query())
	idx, _ = p.Selected()
	assert.Equal(t, 3, idx)

	p, _, submitted := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)
	assert.False(t, p.IsVisible())
	idx, _ = p.Selected()
	assert.Equal(t, 3, idx)
}

func TestJumpPalette_NoMatchDoesNotSubmit(t *testing.T) {
	p := NewJumpPalette()
	p.Show(titles)
	p = typeText(p, "zzzzzz")

	assert.Contains(t, p.View(), "no matching sets")
	_, ok := p.Selected()
	assert.False(t, ok)

	p, _, submitted := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submitted)
	assert.False(t, p.IsVisible())
}

func TestJumpPalette_Escape(t *testing.T) {
	p := NewJumpPalette()
	p.Show(titles)

	p, _, submitted := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, submitted)
	assert.False(t, p.IsVisible())

	// hidden palettes ignore input
	p, cmd, submitted := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, submitted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
