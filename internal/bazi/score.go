package bazi

import "fmt"

// FortuneScore holds the five outlook dimensions, each clamped to [0,100].
type FortuneScore struct {
	Overall int
	Money   int
	Love    int
	Work    int
	Health  int
}

// Score combines a luck pillar and an annual pillar against the day pillar and the chart's
// favourability partition.
func Score(day Pillar, fav Favorability, luck, annual Pillar) (FortuneScore, error) {
	luckGod, err := TenGodOf(day.Stem, luck.Stem)
	if err != nil {
		return FortuneScore{}, fmt.Errorf("score luck pillar: %w", err)
	}
	yearGod, err := TenGodOf(day.Stem, annual.Stem)
	if err != nil {
		return FortuneScore{}, fmt.Errorf("score annual pillar: %w", err)
	}

	overall := 50
	switch {
	case fav.IsFavorable(luckGod):
		overall += 20
	case fav.IsUnfavorable(luckGod):
		overall -= 20
	}
	switch {
	case fav.IsFavorable(yearGod):
		overall += 15
	case fav.IsUnfavorable(yearGod):
		overall -= 15
	}
	if Clashes(day.Branch, annual.Branch) {
		overall -= 10
	}
	if Unites(day.Branch, annual.Branch) {
		overall += 5
	}

	return FortuneScore{
		Overall: clamp(overall),
		Money:   moneyScore(yearGod),
		Love:    loveScore(day.Stem, yearGod),
		Work:    workScore(yearGod),
		Health:  healthScore(yearGod),
	}, nil
}

func moneyScore(g TenGod) int {
	s := 50
	switch g.Category() {
	case WealthStar:
		s += 25
	case OutputStar:
		s += 10
	case Companion:
		s -= 15
	case ResourceStar:
		s -= 10
	}
	return clamp(s)
}

func loveScore(dayStem Stem, g TenGod) int {
	s := 50
	switch g {
	case DirectWealth, DirectOfficer:
		s += 20
	case IndirectWealth, IndirectOfficer:
		s += 10
	case Fellow, Rival:
		s -= 10
	case HurtingOfficer:
		if dayStem.Polarity() == Yang {
			s -= 15
		}
	}
	return clamp(s)
}

func workScore(g TenGod) int {
	s := 50
	switch g.Category() {
	case OfficerStar:
		s += 20
	case ResourceStar:
		s += 15
	case OutputStar:
		s += 10
	case WealthStar:
		s += 5
	}
	return clamp(s)
}

func healthScore(g TenGod) int {
	s := 60
	switch g.Category() {
	case Companion, ResourceStar:
		s += 10
	case OfficerStar:
		s -= 15
	case OutputStar:
		s -= 5
	}
	return clamp(s)
}

func clamp(v int) int { return max(0, min(100, v)) }

// FortuneLevel is the six-step qualitative band of a score.
type FortuneLevel int

const (
	GreatMisfortune FortuneLevel = iota
	Misfortune
	SmallFortune
	ModerateFortune
	Fortune
	GreatFortune
)

func LevelOf(score int) FortuneLevel {
	switch {
	case score >= 80:
		return GreatFortune
	case score >= 65:
		return Fortune
	case score >= 50:
		return ModerateFortune
	case score >= 35:
		return SmallFortune
	case score >= 20:
		return Misfortune
	}
	return GreatMisfortune
}

func (l FortuneLevel) String() string {
	switch l {
	case GreatFortune:
		return "great fortune"
	case Fortune:
		return "fortune"
	case ModerateFortune:
		return "moderate fortune"
	case SmallFortune:
		return "small fortune"
	case Misfortune:
		return "misfortune"
	}
	return "great misfortune"
}

func (l FortuneLevel) Kanji() string {
	switch l {
	case GreatFortune:
		return "大吉"
	case Fortune:
		return "吉"
	case ModerateFortune:
		return "中吉"
	case SmallFortune:
		return "小吉"
	case Misfortune:
		return "凶"
	}
	return "大凶"
}

func (l FortuneLevel) Color() string {
	switch l {
	case GreatFortune:
		return "#FF4081"
	case Fortune:
		return "#4CAF50"
	case ModerateFortune:
		return "#2196F3"
	case SmallFortune:
		return "#FFC107"
	case Misfortune:
		return "#FF9800"
	}
	return "#F44336"
}
