package bazi

import "slices"

type Strength int

const (
	Weak Strength = iota
	Strong
)

func (s Strength) String() string {
	if s == Strong {
		return "strong"
	}
	return "weak"
}

func (s Strength) Kanji() string {
	if s == Strong {
		return "身強"
	}
	return "身弱"
}

// Favorability splits the ten gods into favourable (kishin) and unfavourable (gishin) sets.
type Favorability struct {
	Favorable   []TenGod
	Unfavorable []TenGod
}

var (
	draining   = []TenGod{Output, HurtingOfficer, IndirectWealth, DirectWealth, IndirectOfficer, DirectOfficer}
	supporting = []TenGod{Fellow, Rival, IndirectResource, DirectResource}
)

// FavorabilityFor returns one of the two fixed partitions. A strong day master favours
// what drains it; a weak one favours what supports it.
func FavorabilityFor(s Strength) Favorability {
	if s == Strong {
		return Favorability{Favorable: slices.Clone(draining), Unfavorable: slices.Clone(supporting)}
	}
	return Favorability{Favorable: slices.Clone(supporting), Unfavorable: slices.Clone(draining)}
}

func (f Favorability) IsFavorable(g TenGod) bool   { return slices.Contains(f.Favorable, g) }
func (f Favorability) IsUnfavorable(g TenGod) bool { return slices.Contains(f.Unfavorable, g) }

// supports: same element as the day master, or its producer.
func supports(e, day Element) bool { return e == day || e.Generates() == day }

// MonthSupport reports whether the month branch feeds or matches the day master.
func MonthSupport(dayStem Stem, monthBranch Branch) bool {
	return supports(monthBranch.Element(), dayStem.Element())
}

// StrengthOf tallies support against drain over every present pillar. Stems weigh one and
// branches a half; the tally is kept doubled to stay in integers.
func StrengthOf(dayStem Stem, monthBranch Branch, pillars []Pillar) Strength {
	day := dayStem.Element()
	support, drain := 0, 0
	for _, p := range pillars {
		if supports(p.Stem.Element(), day) {
			support += 2
		} else {
			drain += 2
		}
		if supports(p.Branch.Element(), day) {
			support++
		} else {
			drain++
		}
	}
	if MonthSupport(dayStem, monthBranch) && support >= drain {
		return Strong
	}
	return Weak
}
