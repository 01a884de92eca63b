package bazi

import (
	"fmt"
	"math"
	"time"
)

type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

func ParseGender(raw string) (Gender, error) {
	switch raw {
	case "male", "m", "M", "男":
		return Male, nil
	case "female", "f", "F", "女":
		return Female, nil
	}
	return Male, fmt.Errorf("unknown gender %q", raw)
}

// Direction is the way the luck pillars walk the sexagenary cycle from the month pillar.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

func (d Direction) step() int {
	if d == Backward {
		return -1
	}
	return 1
}

// LuckDirectionOf: male with a yang year stem, or female with a yin one, runs forward.
func LuckDirectionOf(g Gender, yearStem Stem) Direction {
	if (g == Male) == (yearStem.Polarity() == Yang) {
		return Forward
	}
	return Backward
}

// StartAge is the onset of the first luck pillar. Three days of distance to the governing
// solar term count as one year and each remaining day as four months. It is an additive
// offset from the birth year, not a measured duration.
type StartAge struct {
	Years  int
	Months int
}

func (a StartAge) String() string { return fmt.Sprintf("%dy%dm", a.Years, a.Months) }

// OnsetAge counts the days from birth to the governing transition, floored before the
// sign is dropped. A transition that precedes the birth by a partial day therefore counts
// that partial day as a whole one.
func OnsetAge(birth, transition time.Time) StartAge {
	days := int(math.Floor(transition.Sub(birth).Hours() / 24))
	if days < 0 {
		days = -days
	}
	return StartAge{Years: days / 3, Months: (days % 3) * 4}
}

// LuckPillar is one decade of the Da Yun sequence. Ages are inclusive.
type LuckPillar struct {
	Index    int
	Pillar   Pillar
	StartAge int
	EndAge   int
	TenGod   TenGod
	Stage    Stage
}

func (l LuckPillar) Contains(age int) bool { return age >= l.StartAge && age <= l.EndAge }

const DefaultLuckCount = 10

// LuckPillars generates count decades from the month pillar in the given direction,
// each classified against the day stem.
func LuckPillars(month Pillar, dayStem Stem, dir Direction, onset StartAge, count int) ([]LuckPillar, error) {
	if count <= 0 {
		count = DefaultLuckCount
	}
	out := make([]LuckPillar, 0, count)
	for i := 1; i <= count; i++ {
		p := month.Add(dir.step() * i)
		god, err := TenGodOf(dayStem, p.Stem)
		if err != nil {
			return nil, fmt.Errorf("luck pillar %d: %w", i, err)
		}
		stage, err := StageOf(dayStem, p.Branch)
		if err != nil {
			return nil, fmt.Errorf("luck pillar %d: %w", i, err)
		}
		start := onset.Years + (i-1)*10
		out = append(out, LuckPillar{
			Index:    i,
			Pillar:   p,
			StartAge: start,
			EndAge:   start + 9,
			TenGod:   god,
			Stage:    stage,
		})
	}
	return out, nil
}

// LuckPillarAt finds the decade covering age. ok is false before onset or past the horizon.
func LuckPillarAt(seq []LuckPillar, age int) (LuckPillar, bool) {
	for _, l := range seq {
		if l.Contains(age) {
			return l, true
		}
	}
	return LuckPillar{}, false
}
