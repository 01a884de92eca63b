package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"suimei/internal/domain"
)

type chartMsg struct{ view domain.ChartView }
type chartErrMsg struct{ err error }
type readingMsg struct{ reading domain.Reading }
type readingErrMsg struct{ err error }

// PillarsModel shows the four pillars, strength and favorability of the computed chart
// together with an optional narrative reading.
type PillarsModel struct {
	services       Services
	chart          *domain.ChartView
	reading        string
	loading        bool
	readingPending bool
	err            error
	spinner        spinner.Model
	width          int
	height         int
}

func NewPillarsModel(svc Services) PillarsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)
	return PillarsModel{services: svc, spinner: sp}
}

func (m PillarsModel) Init() tea.Cmd { return nil }

func (m PillarsModel) Update(msg tea.Msg) (PillarsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartMsg:
		view := msg.view
		m.chart = &view
		m.reading = ""
		m.loading = false
		m.err = nil
		return m, nil

	case chartErrMsg:
		m.chart = nil
		m.loading = false
		m.err = msg.err
		return m, nil

	case readingMsg:
		m.readingPending = false
		m.reading = msg.reading.Text
		return m, nil

	case readingErrMsg:
		m.readingPending = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.readingPending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Reading) && m.chart != nil && m.services.Reading != nil && !m.readingPending {
			m.readingPending = true
			m.err = nil
			return m, tea.Batch(m.fetchReadingCmd(m.chart.Birth), m.spinner.Tick)
		}
	}
	return m, nil
}

func (m PillarsModel) View() string {
	sections := []string{HeaderStyle.Render("  Four Pillars"), ""}

	switch {
	case m.loading:
		return strings.Join(append(sections, fmt.Sprintf("  %s Computing chart...", m.spinner.View())), "\n")
	case m.err != nil && m.chart == nil:
		return strings.Join(append(sections, ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err))), "\n")
	case m.chart == nil:
		return strings.Join(append(sections, SubtextStyle.Render("  Enter birth data on the Birth tab first.")), "\n")
	}

	c := m.chart
	// Traditional order reads right to left: hour, day, month, year.
	cells := make([]string, 0, len(c.Pillars))
	for i := len(c.Pillars) - 1; i >= 0; i-- {
		cells = append(cells, RenderPillarCell(c.Pillars[i]))
	}
	sections = append(sections,
		SubtextStyle.Render("  "+c.Birth.String()),
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
		fmt.Sprintf("  日主 %s  %s (%s)", c.DayMaster, c.StrengthKanji, c.Strength),
		"  喜神 "+RenderTenGods(c.Favorable, FavorableStyle),
		"  忌神 "+RenderTenGods(c.Unfavorable, UnfavorableStyle),
	)
	if len(c.Interactions) > 0 {
		var parts []string
		for _, in := range c.Interactions {
			parts = append(parts, fmt.Sprintf("%s(%s)", in.Kind, strings.Join(in.Branches, "")))
		}
		sections = append(sections, "  "+SubtextStyle.Render(strings.Join(parts, "  ")))
	}

	switch {
	case m.readingPending:
		sections = append(sections, "", fmt.Sprintf("  %s Writing reading...", m.spinner.View()))
	case m.reading != "":
		sections = append(sections, "", lipgloss.NewStyle().Width(max(m.width-4, 20)).PaddingLeft(2).Render(m.reading))
	case m.err != nil:
		sections = append(sections, "", ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	case m.services.Reading != nil:
		sections = append(sections, "", SubtextStyle.Render("  r: narrative reading for this year"))
	}
	return strings.Join(sections, "\n")
}

func (m *PillarsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// StartLoading marks a chart request as in flight.
func (m *PillarsModel) StartLoading() { m.loading = true }

// HasChart reports whether a chart is displayed (for testing).
func (m PillarsModel) HasChart() bool { return m.chart != nil }

func (m PillarsModel) fetchReadingCmd(b domain.BirthData) tea.Cmd {
	year := m.services.currentYear()
	return func() tea.Msg {
		r, err := m.services.Reading.Reading(context.Background(), b, year)
		if err != nil {
			return readingErrMsg{err: err}
		}
		return readingMsg{reading: r}
	}
}

func fetchChartCmd(charts ChartQuerier, b domain.BirthData) tea.Cmd {
	return func() tea.Msg {
		if charts == nil {
			return chartErrMsg{err: fmt.Errorf("chart service not available")}
		}
		view, err := charts.ComputeChartView(context.Background(), b)
		if err != nil {
			return chartErrMsg{err: err}
		}
		return chartMsg{view: view}
	}
}
