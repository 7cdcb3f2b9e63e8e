package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/striktflow/internal/domain"
	"github.com/xvierd/striktflow/internal/ports"
)

// Controller is the slice of the session controller the TUI drives.
type Controller interface {
	State() domain.SessionState
	Settings() domain.TimerSettings
	Guard() error
	SessionRing() (done, total int)
	SwitchMode(mode domain.Mode)
	ToggleRunning() bool
	ResetCurrentInterval()
	AddObserver(o ports.SessionObserver)
}

// FocusFunc returns the currently focused task, or nil.
type FocusFunc func() *domain.Task

// tickMsg is the periodic redraw heartbeat.
type tickMsg time.Time

// stateMsg carries a controller tick.
type stateMsg struct {
	state domain.SessionState
}

// expiredMsg carries a finished interval.
type expiredMsg struct {
	event domain.IntervalExpired
}

var modeOrder = []domain.Mode{domain.ModeFocus, domain.ModeShortBreak, domain.ModeLongBreak}

// Model represents the fullscreen timer view.
type Model struct {
	ctrl    Controller
	focused FocusFunc

	state    domain.SessionState
	settings domain.TimerSettings
	task     *domain.Task

	progress progress.Model
	help     help.Model
	keys     keyMap
	colors   palette
	themeID  string

	width  int
	height int

	notice      string
	lastExpired *domain.IntervalExpired
}

// NewModel creates a timer model over ctrl. focused may be nil.
func NewModel(ctrl Controller, focused FocusFunc) Model {
	m := Model{
		ctrl:    ctrl,
		focused: focused,
		help:    help.New(),
		keys:    defaultKeyMap(),
		width:   80,
	}
	m.refresh()
	return m
}

// Init starts the redraw heartbeat.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeProgress()
		m.help.Width = msg.Width

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case stateMsg:
		m.refresh()

	case expiredMsg:
		ev := msg.event
		m.lastExpired = &ev
		m.notice = ""
		m.refresh()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Toggle):
		if m.ctrl.State().IsRunning && !m.allowed() {
			break
		}
		m.ctrl.ToggleRunning()
		m.lastExpired = nil

	case key.Matches(msg, m.keys.Reset):
		if m.allowed() {
			m.ctrl.ResetCurrentInterval()
			m.lastExpired = nil
		}

	case key.Matches(msg, m.keys.Focus):
		m.switchTo(domain.ModeFocus)
	case key.Matches(msg, m.keys.ShortBreak):
		m.switchTo(domain.ModeShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.switchTo(domain.ModeLongBreak)
	}

	m.refresh()
	return m, nil
}

func (m *Model) switchTo(mode domain.Mode) {
	if !m.allowed() {
		return
	}
	m.ctrl.SwitchMode(mode)
	m.lastExpired = nil
}

// allowed reports whether an interrupting command may run, setting the
// notice when strict focus refuses it.
func (m *Model) allowed() bool {
	if err := m.ctrl.Guard(); err != nil {
		if errors.Is(err, domain.ErrStrictFocusLocked) {
			m.notice = "Strict focus is on. Finish this interval first."
		} else {
			m.notice = err.Error()
		}
		return false
	}
	return true
}

// refresh pulls the latest state from the controller.
func (m *Model) refresh() {
	m.state = m.ctrl.State()
	m.settings = m.ctrl.Settings()
	if m.focused != nil {
		m.task = m.focused()
	}
	if m.themeID != m.settings.ThemeID || m.progress.Width == 0 {
		m.themeID = m.settings.ThemeID
		m.colors = newPalette(m.themeID)
		m.progress = progress.New(progress.WithGradient(string(m.colors.accent), string(m.colors.text)))
		m.resizeProgress()
	}
}

func (m *Model) resizeProgress() {
	w := m.width - 20
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	m.progress.Width = w
}

func (m Model) locked() bool {
	return domain.StrictLocked(m.state.Mode, m.state.IsRunning, m.settings.StrictFocusMode)
}

// View renders the timer.
func (m Model) View() string {
	accent := m.colors.accentStyle()
	text := m.colors.textStyle()
	muted := m.colors.mutedStyle()

	var sections []string

	sections = append(sections, accent.Render("StriktFlow"))
	sections = append(sections, "")
	sections = append(sections, m.viewTabs())
	sections = append(sections, "")
	colon := accent
	if !m.state.IsRunning {
		colon = muted
	}
	sections = append(sections, renderBigTime(formatDuration(m.state.Remaining()), accent, colon, m.width))
	sections = append(sections, "")

	status := "Paused"
	if m.state.IsRunning {
		status = "Running"
	}
	if m.locked() {
		status = "Strict focus"
	}
	sections = append(sections, text.Render(status))
	sections = append(sections, m.progress.ViewAs(m.state.Progress(m.settings)))
	sections = append(sections, "")

	done, total := domain.SessionRing(m.state.CompletedFocusSessions, m.settings.SessionsUntilLongBreak)
	sections = append(sections, muted.Render(fmt.Sprintf("%s  %d/%d until long break", renderRing(done, total), done, total)))

	if m.task != nil {
		sections = append(sections, text.Render("Working on: "+m.task.Text))
	} else {
		sections = append(sections, muted.Render("No focused task"))
	}

	if m.lastExpired != nil {
		sections = append(sections, "")
		sections = append(sections, accent.Render(expiryLine(*m.lastExpired)))
	}
	if m.notice != "" {
		sections = append(sections, "")
		sections = append(sections, accent.Render(m.notice))
	}

	sections = append(sections, "")
	if m.locked() {
		sections = append(sections, m.help.ShortHelpView(m.keys.lockedHelp()))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewTabs() string {
	active := lipgloss.NewStyle().
		Foreground(m.colors.accent).
		Bold(true).
		Underline(true).
		Padding(0, 1)
	inactive := m.colors.mutedStyle().Padding(0, 1)

	tabs := make([]string, 0, len(modeOrder))
	for _, mode := range modeOrder {
		if mode == m.state.Mode {
			tabs = append(tabs, active.Render(mode.Label()))
		} else {
			tabs = append(tabs, inactive.Render(mode.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderRing draws the long-break cycle as filled and empty dots.
func renderRing(done, total int) string {
	if total <= 0 {
		return ""
	}
	return strings.Repeat("●", done) + strings.Repeat("○", total-done)
}

func expiryLine(ev domain.IntervalExpired) string {
	var line string
	if ev.Previous == domain.ModeFocus {
		line = fmt.Sprintf("Session %d done. Next up: %s.", ev.Completed, ev.Next.Label())
	} else {
		line = "Break over. Back to focus."
	}
	if !ev.AutoStart {
		line += " Press space to start."
	}
	return line
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// formatDuration formats a duration as MM:SS.
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
