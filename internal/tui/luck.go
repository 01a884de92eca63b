package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"suimei/internal/domain"
)

// LuckModel lists the ten-year luck pillars and marks the one running in the current year.
type LuckModel struct {
	services Services
	chart    *domain.ChartView
	cursor   int
	width    int
	height   int
}

func NewLuckModel(svc Services) LuckModel {
	return LuckModel{services: svc}
}

func (m LuckModel) Init() tea.Cmd { return nil }

func (m LuckModel) Update(msg tea.Msg) (LuckModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartMsg:
		view := msg.view
		m.chart = &view
		m.cursor = max(m.currentIndex(), 0)
		return m, nil

	case chartErrMsg:
		m.chart = nil
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if m.chart == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.chart.Luck)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m LuckModel) View() string {
	sections := []string{HeaderStyle.Render("  Luck Pillars (大運)"), ""}
	if m.chart == nil {
		return strings.Join(append(sections, SubtextStyle.Render("  Enter birth data on the Birth tab first.")), "\n")
	}

	c := m.chart
	sections = append(sections, SubtextStyle.Render(fmt.Sprintf("  %s, first pillar at %d years %d months",
		c.Direction, c.StartAge.Years, c.StartAge.Months)), "")

	current := m.currentIndex()
	for i, l := range c.Luck {
		marker := "  "
		if i == current {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%-10s %s  %-4s %s", marker, l.Period, l.Pillar.Kanji, l.TenGod.Kanji, l.Stage.Kanji)
		if i == m.cursor {
			line = SelectedStyle.Render(line)
		}
		sections = append(sections, "  "+line)
	}

	if m.cursor < len(c.Luck) {
		l := c.Luck[m.cursor]
		sections = append(sections, "",
			fmt.Sprintf("  %s  干 %s%s  支 %s  %s (%s)  %s (%s)",
				l.Pillar.Kanji,
				l.Pillar.StemElement, l.Pillar.Polarity,
				l.Pillar.BranchElement,
				l.TenGod.Kanji, l.TenGod.Category,
				l.Stage.Kanji, l.Stage.Vigor),
		)
	}
	sections = append(sections, "", SubtextStyle.Render("  ↑/↓ select  ▶ current"))
	return strings.Join(sections, "\n")
}

func (m *LuckModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Cursor returns the selected luck pillar index (for testing).
func (m LuckModel) Cursor() int { return m.cursor }

// currentIndex is the luck pillar covering the current year, or -1.
func (m LuckModel) currentIndex() int {
	if m.chart == nil {
		return -1
	}
	age := m.services.currentYear() - m.chart.Birth.Year
	for i, l := range m.chart.Luck {
		if age >= l.StartAge && age <= l.EndAge {
			return i
		}
	}
	return -1
}
