package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction. Index refers to
// the items slice passed to RunPicker.
type PickerResult struct {
	Index   int
	Aborted bool
}

// pickerItems adapts the items to fuzzy.Source, matching on the
// description and falling back to the label.
type pickerItems []PickerItem

func (p pickerItems) String(i int) string {
	if p[i].Desc != "" {
		return p[i].Desc
	}
	return p[i].Label
}

func (p pickerItems) Len() int { return len(p) }

// pickerModel is a list with type-to-filter. Printable keys edit the
// filter; arrows move the cursor over the visible rows.
type pickerModel struct {
	title   string
	items   pickerItems
	footer  string
	filter  string
	visible []int
	cursor  int
	chosen  bool
	aborted bool
	colors  palette
}

func newPickerModel(title string, items []PickerItem, footer, themeID string) pickerModel {
	m := pickerModel{
		title:  title,
		items:  items,
		footer: footer,
		colors: newPalette(themeID),
	}
	m.applyFilter()
	return m
}

// applyFilter recomputes the visible rows, best match first.
func (m *pickerModel) applyFilter() {
	visible := make([]int, 0, len(m.items))
	if m.filter == "" {
		for i := range m.items {
			visible = append(visible, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(m.filter, m.items) {
			visible = append(visible, match.Index)
		}
	}
	m.visible = visible
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// selected returns the index into items under the cursor.
func (m pickerModel) selected() (int, bool) {
	if len(m.visible) == 0 {
		return 0, false
	}
	return m.visible[m.cursor], true
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, tea.KeyCtrlN:
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		if _, ok := m.selected(); ok {
			m.chosen = true
		} else {
			m.aborted = true
		}
		return m, tea.Quit
	case tea.KeyEsc:
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
			return m, nil
		}
		m.aborted = true
		return m, tea.Quit
	case tea.KeyCtrlC:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(keyMsg.Runes)
		m.cursor = 0
		m.applyFilter()
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	titleStyle := m.colors.textStyle().Bold(true)
	activeStyle := m.colors.accentStyle()
	dimStyle := m.colors.mutedStyle()

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n")
	if m.filter != "" {
		b.WriteString(dimStyle.Render("  filter: ") + activeStyle.Render(m.filter) + "\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("    no matches") + "\n")
	}
	for row, i := range m.visible {
		item := m.items[i]
		line := fmt.Sprintf("%-10s %s", item.Label, item.Desc)
		if row == m.cursor {
			b.WriteString("  " + activeStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(dimStyle.Render("    "+line) + "\n")
		}
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  "+m.footer) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  type to filter · ↑/↓ navigate · enter select · esc back") + "\n")

	return b.String()
}

// RunPicker launches an interactive picker and returns the selected index.
func RunPicker(title string, items []PickerItem, footer, themeID string, options ...tea.ProgramOption) PickerResult {
	if len(items) == 0 {
		return PickerResult{Aborted: true}
	}

	p := tea.NewProgram(newPickerModel(title, items, footer, themeID), options...)
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	index, ok := final.selected()
	if final.aborted || !final.chosen || !ok {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: index}
}
