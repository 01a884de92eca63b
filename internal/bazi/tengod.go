package bazi

import "fmt"

// TenGod names how a stem relates to the day master.
type TenGod int

const (
	Fellow TenGod = iota
	Rival
	Output
	HurtingOfficer
	IndirectWealth
	DirectWealth
	IndirectOfficer
	DirectOfficer
	IndirectResource
	DirectResource
)

// TenGods lists every label in canonical order.
var TenGods = [10]TenGod{
	Fellow, Rival, Output, HurtingOfficer, IndirectWealth,
	DirectWealth, IndirectOfficer, DirectOfficer, IndirectResource, DirectResource,
}

func (g TenGod) Valid() bool { return g >= Fellow && g <= DirectResource }

func (g TenGod) String() string {
	switch g {
	case Fellow:
		return "Fellow"
	case Rival:
		return "Rival"
	case Output:
		return "Output"
	case HurtingOfficer:
		return "Hurting Officer"
	case IndirectWealth:
		return "Indirect Wealth"
	case DirectWealth:
		return "Direct Wealth"
	case IndirectOfficer:
		return "Indirect Officer"
	case DirectOfficer:
		return "Direct Officer"
	case IndirectResource:
		return "Indirect Resource"
	case DirectResource:
		return "Direct Resource"
	}
	return fmt.Sprintf("tengod(%d)", int(g))
}

func (g TenGod) Kanji() string {
	switch g {
	case Fellow:
		return "比肩"
	case Rival:
		return "劫財"
	case Output:
		return "食神"
	case HurtingOfficer:
		return "傷官"
	case IndirectWealth:
		return "偏財"
	case DirectWealth:
		return "正財"
	case IndirectOfficer:
		return "偏官"
	case DirectOfficer:
		return "正官"
	case IndirectResource:
		return "偏印"
	case DirectResource:
		return "印綬"
	}
	return "?"
}

// Category groups the Ten Gods into their five element pairs.
func (g TenGod) Category() TenGodCategory { return TenGodCategory(int(g) / 2) }

type TenGodCategory int

const (
	Companion TenGodCategory = iota
	OutputStar
	WealthStar
	OfficerStar
	ResourceStar
)

func (c TenGodCategory) String() string {
	switch c {
	case Companion:
		return "companion"
	case OutputStar:
		return "output"
	case WealthStar:
		return "wealth"
	case OfficerStar:
		return "officer"
	case ResourceStar:
		return "resource"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// TenGodOf classifies target relative to the day stem by element and polarity.
func TenGodOf(day, target Stem) (TenGod, error) {
	if !day.Valid() || !target.Valid() {
		return 0, fmt.Errorf("%w: ten god of stems %d/%d", ErrInvariantViolation, int(day), int(target))
	}
	de, te := day.Element(), target.Element()
	same := day.Polarity() == target.Polarity()
	pick := func(samePol, diffPol TenGod) TenGod {
		if same {
			return samePol
		}
		return diffPol
	}

	switch {
	case te == de:
		return pick(Fellow, Rival), nil
	case te == de.Generates():
		return pick(Output, HurtingOfficer), nil
	case te == de.Controls():
		return pick(IndirectWealth, DirectWealth), nil
	case de == te.Controls():
		return pick(IndirectOfficer, DirectOfficer), nil
	case de == te.Generates():
		return pick(IndirectResource, DirectResource), nil
	}
	return 0, fmt.Errorf("%w: no ten god for %s against %s", ErrInvariantViolation, target, day)
}

// HiddenTenGod is the ten god of one hidden stem inside a branch.
type HiddenTenGod struct {
	Stem   Stem
	Weight int
	TenGod TenGod
}

// HiddenTenGods classifies every hidden stem of b against the day stem, main qi first.
func HiddenTenGods(day Stem, b Branch) ([]HiddenTenGod, error) {
	hidden := b.HiddenStems()
	if hidden == nil {
		return nil, fmt.Errorf("%w: branch %d has no hidden stems", ErrInvariantViolation, int(b))
	}
	out := make([]HiddenTenGod, 0, len(hidden))
	for _, h := range hidden {
		g, err := TenGodOf(day, h.Stem)
		if err != nil {
			return nil, err
		}
		out = append(out, HiddenTenGod{Stem: h.Stem, Weight: h.Weight, TenGod: g})
	}
	return out, nil
}
