package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/striktflow/internal/domain"
)

// InlineModel is a compact timer drawn in a few lines under the prompt,
// without taking over the screen.
type InlineModel struct {
	Model
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewInlineModel creates a compact timer model over ctrl.
func NewInlineModel(ctrl Controller, focused FocusFunc) InlineModel {
	m := NewModel(ctrl, focused)
	m.width = getTerminalWidth()
	m.progress.Width = m.width / 3
	return InlineModel{Model: m}
}

// Update handles incoming messages.
func (m InlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		// Inline mode never claims the full height.
		size.Height = 0
		msg = size
	}
	next, cmd := m.Model.update(msg)
	m.Model = next
	m.progress.Width = m.width / 3
	return m, cmd
}

// View renders the timer on a single status line plus hints.
func (m InlineModel) View() string {
	accent := m.colors.accentStyle()
	text := m.colors.textStyle()
	muted := m.colors.mutedStyle()

	marker := "○"
	if m.state.IsRunning {
		marker = "●"
	}
	if m.locked() {
		marker = "◆"
	}

	done, total := domain.SessionRing(m.state.CompletedFocusSessions, m.settings.SessionsUntilLongBreak)
	parts := []string{
		accent.Render(fmt.Sprintf("%s %s %s", marker, m.state.Mode.Label(), formatDuration(m.state.Remaining()))),
		m.progress.ViewAs(m.state.Progress(m.settings)),
		muted.Render(fmt.Sprintf("%d/%d", done, total)),
	}
	if m.task != nil {
		parts = append(parts, text.Render(truncate(m.task.Text, m.width/4)))
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")

	switch {
	case m.notice != "":
		b.WriteString(accent.Render(m.notice))
	case m.lastExpired != nil:
		b.WriteString(accent.Render(expiryLine(*m.lastExpired)))
	case m.locked():
		b.WriteString(m.help.ShortHelpView(m.keys.lockedHelp()))
	default:
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, n int) string {
	if n <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
