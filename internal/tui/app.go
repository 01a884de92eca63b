package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Tab represents a screen tab in the TUI.
type Tab int

const (
	TabBirth Tab = iota
	TabPillars
	TabLuck
	TabTimeline
)

var tabNames = []string{"1:Birth", "2:Pillars", "3:Luck", "4:Timeline"}

// AppModel is the root Bubble Tea model that manages tab navigation and child screens.
type AppModel struct {
	services  Services
	activeTab Tab
	birth     BirthModel
	pillars   PillarsModel
	luck      LuckModel
	timeline  TimelineModel
	width     int
	height    int
	quitting  bool
}

// NewAppModel creates the root application model with all child screens.
func NewAppModel(svc Services) AppModel {
	return AppModel{
		services:  svc,
		activeTab: TabBirth,
		birth:     NewBirthModel(svc),
		pillars:   NewPillarsModel(svc),
		luck:      NewLuckModel(svc),
		timeline:  NewTimelineModel(svc),
	}
}

// Init initializes all child models.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.birth.Init(),
		m.pillars.Init(),
		m.luck.Init(),
		m.timeline.Init(),
	)
}

// Update handles incoming messages, routing to the active tab.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case tea.KeyMsg:
		// The birth form owns printable keys; only tab switching and ctrl+c are global there.
		if m.activeTab != TabBirth || msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab || msg.String() == "ctrl+c" {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				m.quitting = true
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Tab):
				m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))
				return m, nil

			case key.Matches(msg, DefaultKeyMap.ShiftTab):
				next := int(m.activeTab) - 1
				if next < 0 {
					next = len(tabNames) - 1
				}
				m.switchTab(Tab(next))
				return m, nil

			case msg.String() >= "1" && msg.String() <= "4" && len(msg.String()) == 1:
				m.switchTab(Tab(msg.String()[0] - '1'))
				return m, nil
			}
		}

	case birthSubmittedMsg:
		m.pillars.StartLoading()
		m.switchTab(TabPillars)
		loadTimeline := m.timeline.Load(msg.birth)
		return m, tea.Batch(fetchChartCmd(m.services.Charts, msg.birth), loadTimeline, m.pillars.spinner.Tick)
	}

	var cmds []tea.Cmd

	switch msg.(type) {
	case chartMsg, chartErrMsg:
		var cmd tea.Cmd
		m.pillars, cmd = m.pillars.Update(msg)
		cmds = append(cmds, cmd)
		m.luck, cmd = m.luck.Update(msg)
		cmds = append(cmds, cmd)

	case readingMsg, readingErrMsg:
		var cmd tea.Cmd
		m.pillars, cmd = m.pillars.Update(msg)
		cmds = append(cmds, cmd)

	case timelineMsg, timelineErrMsg:
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		cmds = append(cmds, cmd)

	default:
		switch m.activeTab {
		case TabBirth:
			var cmd tea.Cmd
			m.birth, cmd = m.birth.Update(msg)
			cmds = append(cmds, cmd)
		case TabPillars:
			var cmd tea.Cmd
			m.pillars, cmd = m.pillars.Update(msg)
			cmds = append(cmds, cmd)
		case TabLuck:
			var cmd tea.Cmd
			m.luck, cmd = m.luck.Update(msg)
			cmds = append(cmds, cmd)
		case TabTimeline:
			var cmd tea.Cmd
			m.timeline, cmd = m.timeline.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the tab bar and active screen.
func (m AppModel) View() string {
	if m.quitting {
		return "さようなら\n"
	}

	var content string
	switch m.activeTab {
	case TabBirth:
		content = m.birth.View()
	case TabPillars:
		content = m.pillars.View()
	case TabLuck:
		content = m.luck.View()
	case TabTimeline:
		content = m.timeline.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), content)
}

// SetSize updates dimensions on the root model and propagates to children.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.propagateSize()
}

// Prefill fills the birth form, for sessions started with birth data on the command line.
func (m *AppModel) Prefill(date, clock, gender, tz string) {
	m.birth.SetValues(date, clock, gender, tz)
}

// ActiveTab returns the currently active tab (for testing).
func (m AppModel) ActiveTab() Tab { return m.activeTab }

func (m *AppModel) switchTab(tab Tab) {
	if tab == TabBirth && m.activeTab != TabBirth {
		m.birth.Focus()
	} else if m.activeTab == TabBirth && tab != TabBirth {
		m.birth.Blur()
	}
	m.activeTab = tab
}

func (m *AppModel) propagateSize() {
	contentHeight := m.height - 2 // account for tab bar
	m.birth.SetSize(m.width, contentHeight)
	m.pillars.SetSize(m.width, contentHeight)
	m.luck.SetSize(m.width, contentHeight)
	m.timeline.SetSize(m.width, contentHeight)
}

func (m AppModel) renderTabBar() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(name))
		}
	}
	if m.services.Username != "" {
		tabs = append(tabs, SubtextStyle.Render("  "+m.services.Username))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
