package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"suimei/internal/domain"
)

var positionNames = map[string]string{"year": "年柱", "month": "月柱", "day": "日柱", "hour": "時柱"}

// RenderPillarCell renders one chart position as a bordered cell: label, ten god,
// stem, branch and stage.
func RenderPillarCell(p domain.PositionView) string {
	style := PillarCellStyle
	god := "日主"
	if p.TenGod != nil {
		god = p.TenGod.Kanji
	} else {
		style = DayMasterCellStyle
	}
	stem := lipgloss.NewStyle().Bold(true).Foreground(elementColors[p.Pillar.StemElement]).Render(p.Pillar.Stem)
	branch := lipgloss.NewStyle().Bold(true).Foreground(elementColors[p.Pillar.BranchElement]).Render(p.Pillar.Branch)

	hidden := make([]string, 0, len(p.Hidden))
	for _, h := range p.Hidden {
		hidden = append(hidden, h.Stem)
	}

	return style.Render(strings.Join([]string{
		SubtextStyle.Render(positionNames[p.Position]),
		god,
		stem,
		branch,
		SubtextStyle.Render(strings.Join(hidden, "")),
		p.Stage.Kanji,
	}, "\n"))
}

// RenderScoreBar renders a 0-100 score as a bar coloured by its fortune level.
func RenderScoreBar(label string, score, barWidth int) string {
	if barWidth <= 0 {
		barWidth = 20
	}
	filled := score * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	level := domain.NewLevelView(score)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(level.Color))
	bar := style.Render(strings.Repeat("█", filled)) + SubtextStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%-8s %s %3d %s", label, bar, score, style.Render(level.Kanji))
}

// RenderTenGods joins ten god kanji with the given style.
func RenderTenGods(gods []domain.TenGodView, style lipgloss.Style) string {
	names := make([]string, 0, len(gods))
	for _, g := range gods {
		names = append(names, style.Render(g.Kanji))
	}
	return strings.Join(names, " ")
}
