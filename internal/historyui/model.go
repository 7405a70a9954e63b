// Package historyui provides the Bubble Tea pick-history browser.
package historyui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/datewheel/internal/history"
	"github.com/verte-zerg/datewheel/internal/model"
	"github.com/verte-zerg/datewheel/internal/store"
)

const (
	tabOverview = iota
	tabPicks
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store *store.Store
	cfg   model.HistoryConfig

	report history.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	picks     table.Model

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, cfg model.HistoryConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		tabs:     []string{"Overview", "Picks"},
		overview: viewport.New(0, 0),
	}
	m.picks = buildPicksTable(nil, 0, 1)
	m.refreshReport()
	return m
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
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabPicks {
				m.picks.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabPicks {
				m.picks.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabPicks {
				var cmd tea.Cmd
				m.picks, cmd = m.picks.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderTabs()
	footer := headerStyle.Render("Nav: left/right  Scroll: up/down  Top/bottom: g/G  Quit: q")
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	var body string
	if m.activeTab == tabPicks {
		if len(m.report.Picks) == 0 {
			body = "No picks recorded yet."
		} else {
			body = mutedStyle.Render(m.picks.View())
		}
	} else {
		body = m.overview.View()
	}
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	if m.activeTab == tabPicks {
		m.picks.Focus()
	} else {
		m.picks.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	headerHeight := lipgloss.Height(m.renderTabs())
	bodyHeight := m.height - headerHeight - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.picks = buildPicksTable(m.report.Picks, m.width, bodyHeight)
}

func (m *Model) refreshReport() {
	report, err := history.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load history.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.updateLayout()
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	m.overview.SetContent(renderOverview(m.report))
}

func renderOverview(report history.Report) string {
	if report.Total == 0 {
		return "No picks recorded yet."
	}
	lines := []string{
		fmt.Sprintf("Total picks: %d", report.Total),
		fmt.Sprintf("First: %s", report.First.Format("2006-01-02 15:04")),
		fmt.Sprintf("Latest: %s", report.Last.Format("2006-01-02 15:04")),
		"",
		"Picked dates by month:",
	}
	maxCount := 0
	for _, mc := range report.MonthCounts {
		if mc.Count > maxCount {
			maxCount = mc.Count
		}
	}
	for _, mc := range report.MonthCounts {
		bar := strings.Repeat("█", barLength(mc.Count, maxCount, 40))
		lines = append(lines, fmt.Sprintf("%04d-%02d  %4d  %s", mc.Year, mc.Month, mc.Count, bar))
	}
	return strings.Join(lines, "\n")
}

func barLength(count, maxCount, width int) int {
	if maxCount <= 0 {
		return 0
	}
	n := count * width / maxCount
	if n < 1 && count > 0 {
		n = 1
	}
	return n
}

func buildPicksTable(picks []model.PickRecord, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Picked at", Width: 20},
		{Title: "Date", Width: 12},
		{Title: "Locale", Width: 8},
		{Title: "Window", Width: 24},
	}
	rows := make([]table.Row, 0, len(picks))
	for i := len(picks) - 1; i >= 0; i-- {
		p := picks[i]
		rows = append(rows, table.Row{
			p.PickedAt.Format("2006-01-02 15:04"),
			p.Date.Format("2006-01-02"),
			p.Locale,
			p.MinDate.Format("2006-01-02") + " … " + p.MaxDate.Format("2006-01-02"),
		})
	}
	if height < 2 {
		height = 2
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height-1),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	return t
}
