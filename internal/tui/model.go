// Package tui provides the Bubble Tea wheel-picker interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/datewheel/internal/calendar"
	"github.com/verte-zerg/datewheel/internal/picker"
)

// visibleRows is the number of rows shown per wheel. Odd, so the selection
// sits in the middle.
const visibleRows = 7

var (
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A")).Bold(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	disabledStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	activeTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea wheel-picker UI. It is the wheel-list
// collaborator of picker.Control: the control decides which rows the wheels
// sit on, the model renders them and reports user scrolls back.
type Model struct {
	ctrl   *picker.Control
	format string

	width  int
	height int

	active int
	rows   [3]int

	entering bool
	input    textinput.Model
	inputErr string

	confirmed bool
	canceled  bool
}

// NewModel constructs a picker TUI model and attaches it to the control.
func NewModel(ctrl *picker.Control, format string) *Model {
	input := textinput.New()
	input.Prompt = "date> "
	input.CharLimit = 32
	m := &Model{
		ctrl:   ctrl,
		format: format,
		input:  input,
	}
	ctrl.AttachWheels(m)
	return m
}

// SelectRow implements picker.WheelList. The terminal has no scroll physics,
// so the animated hint is accepted and the wheel repositions immediately.
func (m *Model) SelectRow(wheelIndex, row int, animated bool) {
	m.rows[wheelIndex] = row
}

// Confirmed reports whether the user accepted the selection.
func (m *Model) Confirmed() bool {
	return m.confirmed
}

// Canceled reports whether the user dismissed the picker.
func (m *Model) Canceled() bool {
	return m.canceled
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.canceled = true
			return m, tea.Quit
		}
		if m.entering {
			return m.updateEntry(msg)
		}
		switch msg.String() {
		case "q", "esc":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "left", "h":
			m.moveActive(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveActive(1)
			return m, nil
		case "up", "k":
			m.scroll(-1)
			return m, nil
		case "down", "j":
			m.scroll(1)
			return m, nil
		case "pgup":
			m.scroll(-5)
			return m, nil
		case "pgdown":
			m.scroll(5)
			return m, nil
		case "t":
			m.ctrl.SetDate(time.Now(), true)
			return m, nil
		case "/":
			m.entering = true
			m.inputErr = ""
			m.input.SetValue(m.ctrl.Date().Format(m.format))
			m.input.CursorEnd()
			return m, m.input.Focus()
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.entering = false
		m.input.Blur()
		return m, nil
	case "enter":
		parsed, err := time.ParseInLocation(m.format, strings.TrimSpace(m.input.Value()), time.Local)
		if err != nil {
			m.inputErr = fmt.Sprintf("expected %s", m.format)
			return m, nil
		}
		m.ctrl.SetDate(parsed, false)
		m.entering = false
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) moveActive(delta int) {
	next := m.active + delta
	if next < 0 {
		next = 0
	}
	if max := m.ctrl.NumberOfWheels() - 1; next > max {
		next = max
	}
	m.active = next
}

func (m *Model) scroll(delta int) {
	count := m.ctrl.RowCount(m.active)
	row := ((m.rows[m.active]+delta)%count + count) % count
	m.rows[m.active] = row
	m.ctrl.RowSelected(m.active, row)
}

// View implements tea.Model.
func (m *Model) View() string {
	columns := make([]string, m.ctrl.NumberOfWheels())
	for i := range columns {
		columns[i] = m.renderWheel(i)
	}
	wheels := lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, "  ")...)

	header := headerStyle.Render(m.ctrl.Date().Format(m.format))
	lines := []string{header, "", wheels}
	if m.entering {
		entry := m.input.View()
		if m.inputErr != "" {
			entry += "  " + errorStyle.Render(m.inputErr)
		}
		lines = append(lines, "", entry)
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)

	footer := footerStyle.Render("←/→ wheel · ↑/↓ scroll · t today · / type date · enter confirm · q cancel")
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < visibleRows+4 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderWheel(wheelIndex int) string {
	kind := m.ctrl.Ordering()[wheelIndex]
	width := m.wheelWidth(wheelIndex)
	cell := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	title := titleStyle
	if wheelIndex == m.active {
		title = activeTitleStyle
	}
	lines := []string{cell.Render(title.Render(kind.String()))}

	selected := m.rows[wheelIndex]
	count := m.ctrl.RowCount(wheelIndex)
	half := visibleRows / 2
	for off := -half; off <= half; off++ {
		row := ((selected+off)%count + count) % count
		label := m.ctrl.TitleForRow(wheelIndex, row)
		style := pendingStyle
		if !m.ctrl.IsRowEnabled(wheelIndex, row) {
			style = disabledStyle
		}
		if off == 0 {
			style = selectedStyle
		}
		lines = append(lines, cell.Render(style.Render(label)))
	}
	return strings.Join(lines, "\n")
}

// wheelWidth sizes a column to its widest possible label; month names vary by
// locale and can contain wide runes.
func (m *Model) wheelWidth(wheelIndex int) int {
	kind := m.ctrl.Ordering()[wheelIndex]
	width := runewidth.StringWidth(kind.String())
	switch kind {
	case calendar.Month:
		loc := m.ctrl.Locale()
		for i := 1; i <= 12; i++ {
			if w := runewidth.StringWidth(loc.MonthName(i)); w > width {
				width = w
			}
		}
	case calendar.Year:
		if width < 4 {
			width = 4
		}
	case calendar.Day:
		if width < 2 {
			width = 2
		}
	}
	return width + 2
}

func interleave(columns []string, sep string) []string {
	out := make([]string, 0, len(columns)*2-1)
	for i, col := range columns {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, col)
	}
	return out
}
