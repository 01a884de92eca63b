package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"suimei/internal/domain"
)

// timelineSpan is how many years either side of the current year are scored.
const timelineSpan = 10

type timelineMsg struct{ view domain.TimelineView }
type timelineErrMsg struct{ err error }

// TimelineModel shows the yearly fortune scores around the current year.
type TimelineModel struct {
	services Services
	birth    *domain.BirthData
	view     *domain.TimelineView
	cursor   int
	loading  bool
	err      error
	width    int
	height   int
}

func NewTimelineModel(svc Services) TimelineModel {
	return TimelineModel{services: svc}
}

func (m TimelineModel) Init() tea.Cmd { return nil }

func (m TimelineModel) Update(msg tea.Msg) (TimelineModel, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineMsg:
		view := msg.view
		m.view = &view
		m.loading = false
		m.err = nil
		m.cursor = m.indexOf(m.services.currentYear())
		return m, nil

	case timelineErrMsg:
		m.view = nil
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Refresh):
			if m.birth != nil {
				m.loading = true
				return m, m.fetchCmd(*m.birth)
			}
		case m.view == nil:
		case key.Matches(msg, DefaultKeyMap.Left), key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Right), key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.view.Entries)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m TimelineModel) View() string {
	sections := []string{HeaderStyle.Render("  Fortune Timeline (流年)"), ""}
	switch {
	case m.loading:
		return strings.Join(append(sections, SubtextStyle.Render("  Scoring years...")), "\n")
	case m.err != nil:
		return strings.Join(append(sections, ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err))), "\n")
	case m.view == nil || len(m.view.Entries) == 0:
		return strings.Join(append(sections, SubtextStyle.Render("  No scored years yet. Enter birth data on the Birth tab.")), "\n")
	}

	current := m.services.currentYear()
	first, last := m.visibleRange()
	for i := first; i < last; i++ {
		e := m.view.Entries[i]
		marker := "  "
		if e.Year == current {
			marker = "▶ "
		}
		label := fmt.Sprintf("%d %s", e.Year, e.Annual.Pillar.Kanji)
		line := marker + RenderScoreBar(label, e.Scores.Overall, 20)
		if i == m.cursor {
			line = SelectedStyle.Render(line)
		}
		sections = append(sections, "  "+line)
	}

	e := m.view.Entries[m.cursor]
	sections = append(sections, "",
		HeaderStyle.Render(fmt.Sprintf("  %d (%d歳)  大運 %s  流年 %s", e.Year, e.Age, e.Luck.Pillar.Kanji, e.Annual.Pillar.Kanji)),
		"  "+RenderScoreBar("財運", e.Scores.Money, 20),
		"  "+RenderScoreBar("恋愛", e.Scores.Love, 20),
		"  "+RenderScoreBar("仕事", e.Scores.Work, 20),
		"  "+RenderScoreBar("健康", e.Scores.Health, 20),
		"", SubtextStyle.Render("  ←/→ move  R refresh  ▶ current year"),
	)
	return strings.Join(sections, "\n")
}

func (m *TimelineModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Load starts scoring the window around the current year for b.
func (m *TimelineModel) Load(b domain.BirthData) tea.Cmd {
	m.birth = &b
	m.loading = true
	return m.fetchCmd(b)
}

// SelectedYear returns the year under the cursor, or 0 (for testing).
func (m TimelineModel) SelectedYear() int {
	if m.view == nil || len(m.view.Entries) == 0 {
		return 0
	}
	return m.view.Entries[m.cursor].Year
}

func (m TimelineModel) window(b domain.BirthData) (int, int) {
	current := m.services.currentYear()
	return max(current-timelineSpan, b.Year), current + timelineSpan
}

func (m TimelineModel) fetchCmd(b domain.BirthData) tea.Cmd {
	from, to := m.window(b)
	charts := m.services.Charts
	return func() tea.Msg {
		if charts == nil {
			return timelineErrMsg{err: fmt.Errorf("chart service not available")}
		}
		view, err := charts.Timeline(context.Background(), domain.TimelineRequest{Birth: b, StartYear: from, EndYear: to})
		if err != nil {
			return timelineErrMsg{err: err}
		}
		return timelineMsg{view: view}
	}
}

func (m TimelineModel) indexOf(year int) int {
	if m.view == nil {
		return 0
	}
	for i, e := range m.view.Entries {
		if e.Year == year {
			return i
		}
	}
	if n := len(m.view.Entries); n > 0 && year > m.view.Entries[n-1].Year {
		return n - 1
	}
	return 0
}

// visibleRange keeps the cursor on screen when the terminal is short.
func (m TimelineModel) visibleRange() (int, int) {
	n := len(m.view.Entries)
	rows := m.height - 12
	if rows <= 0 || rows >= n {
		return 0, n
	}
	first := max(m.cursor-rows/2, 0)
	last := min(first+rows, n)
	return max(last-rows, 0), last
}
