package bazi

import (
	"errors"
	"fmt"
	"time"
)

// Input is a validated birth record. Hour and Minute are nil when the time is unknown.
type Input struct {
	Year, Month, Day int
	Hour, Minute     *int
	Gender           Gender
	HourPolicy       HourPolicy
	// LuckCount is the number of decades to generate; zero means DefaultLuckCount.
	LuckCount int
}

// CalendarFacts are the answers of the calendar collaborator for one birth, gathered by the
// caller before Compute runs. Birth, Next and Prev must share a time frame.
type CalendarFacts struct {
	MonthBranch   Branch
	EffectiveYear int

	Birth time.Time
	Next  time.Time
	Prev  time.Time

	// Pillars, when set, comes from a direct four-pillar resolver and is trusted for
	// pillar identity.
	Pillars *FourPillars
}

type Position int

const (
	PositionYear Position = iota
	PositionMonth
	PositionDay
	PositionHour
)

func (p Position) String() string {
	switch p {
	case PositionYear:
		return "year"
	case PositionMonth:
		return "month"
	case PositionDay:
		return "day"
	case PositionHour:
		return "hour"
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// PillarDetail is one natal pillar with everything derived from it. TenGod is nil for the
// day pillar, whose stem is the day master itself.
type PillarDetail struct {
	Position Position
	Pillar   Pillar
	TenGod   *TenGod
	Stage    Stage
	Hidden   []HiddenTenGod
}

// Chart is the complete natal snapshot. It is never mutated after Compute returns.
type Chart struct {
	Input        Input
	Pillars      FourPillars
	Details      []PillarDetail
	Strength     Strength
	Favorability Favorability
	Direction    Direction
	Transition   time.Time
	Onset        StartAge
	Luck         []LuckPillar
	Interactions []Interaction
}

func (c *Chart) DayMaster() Stem { return c.Pillars.Day.Stem }

// Compute assembles a chart from a birth record and the calendar facts for it. It either
// returns a complete chart or an error; partial charts are never produced.
func Compute(in Input, facts CalendarFacts) (*Chart, error) {
	if !ValidDate(in.Year, in.Month, in.Day) {
		return nil, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, in.Year, in.Month, in.Day)
	}
	if in.Hour != nil && (*in.Hour < 0 || *in.Hour > 23) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHour, *in.Hour)
	}
	if in.Minute != nil && (*in.Minute < 0 || *in.Minute > 59) {
		return nil, fmt.Errorf("%w: minute %d", ErrInvalidHour, *in.Minute)
	}

	pillars, err := pillarsFor(in, facts)
	if err != nil {
		return nil, err
	}

	day := pillars.Day.Stem
	details, err := detailsFor(pillars)
	if err != nil {
		return nil, err
	}

	strength := StrengthOf(day, pillars.Month.Branch, pillars.All())
	dir := LuckDirectionOf(in.Gender, pillars.Year.Stem)

	transition := facts.Next
	if dir == Backward {
		transition = facts.Prev
	}
	if transition.IsZero() {
		return nil, fmt.Errorf("%w: no transition for %s luck", ErrNoTransitionFound, dir)
	}
	if facts.Birth.IsZero() {
		return nil, fmt.Errorf("%w: birth instant missing", ErrCalendarResolution)
	}
	onset := OnsetAge(facts.Birth, transition)

	luck, err := LuckPillars(pillars.Month, day, dir, onset, in.LuckCount)
	if err != nil {
		return nil, err
	}

	branches := make([]Branch, 0, 4)
	for _, p := range pillars.All() {
		branches = append(branches, p.Branch)
	}

	return &Chart{
		Input:        copyInput(in),
		Pillars:      pillars,
		Details:      details,
		Strength:     strength,
		Favorability: FavorabilityFor(strength),
		Direction:    dir,
		Transition:   transition,
		Onset:        onset,
		Luck:         luck,
		Interactions: FindInteractions(branches),
	}, nil
}

func pillarsFor(in Input, facts CalendarFacts) (FourPillars, error) {
	if facts.Pillars == nil {
		return ResolvePillars(PillarInput{
			Year:          in.Year,
			Month:         in.Month,
			Day:           in.Day,
			Hour:          in.Hour,
			MonthBranch:   facts.MonthBranch,
			EffectiveYear: facts.EffectiveYear,
			Policy:        in.HourPolicy,
		})
	}

	src := *facts.Pillars
	if !src.Year.Valid() || !src.Month.Valid() || !src.Day.Valid() {
		return FourPillars{}, fmt.Errorf("%w: resolver returned an illegal pillar", ErrInvariantViolation)
	}
	out := FourPillars{Year: src.Year, Month: src.Month, Day: src.Day}
	if in.Hour == nil {
		return out, nil
	}
	if src.Hour != nil {
		if !src.Hour.Valid() {
			return FourPillars{}, fmt.Errorf("%w: resolver returned an illegal hour pillar", ErrInvariantViolation)
		}
		h := *src.Hour
		out.Hour = &h
		return out, nil
	}
	h, err := HourPillar(out.Day.Stem, *in.Hour, in.HourPolicy)
	if err != nil {
		return FourPillars{}, err
	}
	out.Hour = &h
	return out, nil
}

func detailsFor(p FourPillars) ([]PillarDetail, error) {
	day := p.Day.Stem
	positions := []Position{PositionYear, PositionMonth, PositionDay}
	if p.Hour != nil {
		positions = append(positions, PositionHour)
	}
	all := p.All()

	out := make([]PillarDetail, 0, len(all))
	for i, pillar := range all {
		d := PillarDetail{Position: positions[i], Pillar: pillar}
		if positions[i] != PositionDay {
			g, err := TenGodOf(day, pillar.Stem)
			if err != nil {
				return nil, fmt.Errorf("%s pillar: %w", positions[i], err)
			}
			d.TenGod = &g
		}
		stage, err := StageOf(day, pillar.Branch)
		if err != nil {
			return nil, fmt.Errorf("%s pillar: %w", positions[i], err)
		}
		d.Stage = stage
		hidden, err := HiddenTenGods(day, pillar.Branch)
		if err != nil {
			return nil, fmt.Errorf("%s pillar: %w", positions[i], err)
		}
		d.Hidden = hidden
		out = append(out, d)
	}
	return out, nil
}

func copyInput(in Input) Input {
	out := in
	if in.Hour != nil {
		h := *in.Hour
		out.Hour = &h
	}
	if in.Minute != nil {
		m := *in.Minute
		out.Minute = &m
	}
	return out
}

// TimelineEntry is one scored year of the outlook.
type TimelineEntry struct {
	Year   int
	Age    int
	Luck   LuckPillar
	Annual AnnualPillar
	Score  FortuneScore
}

// ErrOutsideTimeline is returned by FortuneAt for a year with no covering luck pillar.
var ErrOutsideTimeline = errors.New("year is outside the chart's luck pillars")

// ScoreTimeline scores every year in [startYear, endYear]. Years before birth or outside
// the generated luck pillars are skipped.
func ScoreTimeline(c *Chart, startYear, endYear int) ([]TimelineEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil chart", ErrInvariantViolation)
	}
	var out []TimelineEntry
	if endYear < startYear {
		return out, nil
	}
	birthYear := c.Input.Year
	for year, pillar := range AnnualSeq(startYear) {
		if year > endYear {
			break
		}
		age := year - birthYear
		if age < 0 {
			continue
		}
		luck, ok := LuckPillarAt(c.Luck, age)
		if !ok {
			continue
		}
		annual, err := NewAnnualPillar(year, birthYear, c.DayMaster())
		if err != nil {
			return nil, err
		}
		score, err := Score(c.Pillars.Day, c.Favorability, luck.Pillar, pillar)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		out = append(out, TimelineEntry{Year: year, Age: age, Luck: luck, Annual: annual, Score: score})
	}
	return out, nil
}

// FortuneAt scores a single reference year. The caller supplies the year; the engine has
// no notion of "now".
func FortuneAt(c *Chart, year int) (TimelineEntry, error) {
	entries, err := ScoreTimeline(c, year, year)
	if err != nil {
		return TimelineEntry{}, err
	}
	if len(entries) == 0 {
		return TimelineEntry{}, fmt.Errorf("%w: %d", ErrOutsideTimeline, year)
	}
	return entries[0], nil
}
