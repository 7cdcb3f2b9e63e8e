package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/striktflow/internal/domain"
)

// palette is the set of terminal colours derived from a theme.
type palette struct {
	accent lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	panel  lipgloss.Color
	dark   bool
}

func newPalette(themeID string) palette {
	th := domain.ResolveTheme(themeID)
	muted := lipgloss.Color("#8A8A8A")
	if !th.IsDark {
		muted = lipgloss.Color("#707070")
	}
	return palette{
		accent: lipgloss.Color(th.Primary),
		text:   lipgloss.Color(th.Secondary),
		muted:  muted,
		panel:  lipgloss.Color(th.UI),
		dark:   th.IsDark,
	}
}

func (p palette) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.accent).Bold(true)
}

func (p palette) textStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.text)
}

func (p palette) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.muted)
}
