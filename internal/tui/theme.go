package tui

import (
	"github.com/charmbracelet/lipgloss"

	"suimei/internal/bazi"
)

var (
	// Tab bar styles
	TabStyle       = lipgloss.NewStyle().Padding(0, 2)
	ActiveTabStyle = TabStyle.Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#B22222"))
	InactiveTabStyle = TabStyle.
				Foreground(lipgloss.Color("#888888"))

	// General styles
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#444444"))
	SpinnerColor  = lipgloss.Color("#B22222")

	// Form styles
	LabelStyle        = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("#AAAAAA"))
	FocusedLabelStyle = LabelStyle.Bold(true).Foreground(lipgloss.Color("#FAFAFA"))

	// Pillar cells
	PillarCellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(12)
	DayMasterCellStyle = PillarCellStyle.BorderForeground(lipgloss.Color("#B22222"))

	// Favorability
	FavorableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	UnfavorableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336"))
)

// elementColors keys the element palette by kanji, the form the views carry.
var elementColors = func() map[string]lipgloss.Color {
	m := make(map[string]lipgloss.Color, 5)
	for e := bazi.Wood; e <= bazi.Water; e++ {
		m[e.Kanji()] = lipgloss.Color(e.Color())
	}
	return m
}()
