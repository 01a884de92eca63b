package domain

import (
	"fmt"
	"strings"
)

var positionKanji = map[string]string{"year": "年", "month": "月", "day": "日", "hour": "時"}

// FormatChart renders a chart as plain text for chat and terminal output.
func FormatChart(v ChartView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", v.Birth)
	for _, p := range v.Pillars {
		label := positionKanji[p.Position]
		god := "日主"
		if p.TenGod != nil {
			god = p.TenGod.Kanji
		}
		fmt.Fprintf(&sb, "%s柱 %s  %s  %s\n", label, p.Pillar.Kanji, god, p.Stage.Kanji)
	}
	fmt.Fprintf(&sb, "日主 %s  %s (%s)\n", v.DayMaster, v.StrengthKanji, v.Strength)
	fmt.Fprintf(&sb, "喜神 %s\n", joinTenGods(v.Favorable))
	fmt.Fprintf(&sb, "忌神 %s\n", joinTenGods(v.Unfavorable))
	fmt.Fprintf(&sb, "大運 %s, %d歳%dヶ月から\n", v.Direction, v.StartAge.Years, v.StartAge.Months)
	for _, l := range v.Luck {
		fmt.Fprintf(&sb, "  %-9s %s  %s  %s\n", l.Period, l.Pillar.Kanji, l.TenGod.Kanji, l.Stage.Kanji)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatFortune renders one scored year.
func FormatFortune(e TimelineEntryView) string {
	return fmt.Sprintf("%d (%d歳) 大運 %s 流年 %s  %s %d  財%d 愛%d 仕%d 健%d",
		e.Year, e.Age, e.Luck.Pillar.Kanji, e.Annual.Pillar.Kanji,
		e.Scores.Level.Kanji, e.Scores.Overall,
		e.Scores.Money, e.Scores.Love, e.Scores.Work, e.Scores.Health)
}

func FormatAnnual(a AnnualView) string {
	s := fmt.Sprintf("%d年 %s (%s%s)", a.Year, a.Pillar.Kanji, a.Pillar.StemElement, a.Pillar.Polarity)
	if a.TenGod != nil && a.Stage != nil && a.Age != nil {
		s += fmt.Sprintf("  %d歳  %s  %s", *a.Age, a.TenGod.Kanji, a.Stage.Kanji)
	}
	return s
}

func joinTenGods(gods []TenGodView) string {
	names := make([]string, 0, len(gods))
	for _, g := range gods {
		names = append(names, g.Kanji)
	}
	return strings.Join(names, " ")
}
