package bazi

import (
	"fmt"
	"time"
)

// HourPolicy selects how the 23:00 hour relates to the day stem.
type HourPolicy int

const (
	// HourSameDay keeps the calendar day's stem for births from 23:00.
	HourSameDay HourPolicy = iota
	// HourNextDay treats 23:00 as the start of the following day when deriving the hour stem.
	HourNextDay
)

func (p HourPolicy) String() string {
	if p == HourNextDay {
		return "next-day"
	}
	return "same-day"
}

// ParseHourPolicy reads the configuration spelling of a policy. Empty means HourSameDay.
func ParseHourPolicy(raw string) (HourPolicy, error) {
	switch raw {
	case "", "same-day", "same":
		return HourSameDay, nil
	case "next-day", "next":
		return HourNextDay, nil
	}
	return HourSameDay, fmt.Errorf("unknown hour policy %q", raw)
}

// FourPillars is the resolved chart skeleton. Hour is nil when the birth time is unknown.
type FourPillars struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
	Hour  *Pillar
}

// All returns the present pillars in year, month, day, hour order.
func (f FourPillars) All() []Pillar {
	out := []Pillar{f.Year, f.Month, f.Day}
	if f.Hour != nil {
		out = append(out, *f.Hour)
	}
	return out
}

func (f FourPillars) Valid() bool {
	if !f.Year.Valid() || !f.Month.Valid() || !f.Day.Valid() {
		return false
	}
	return f.Hour == nil || f.Hour.Valid()
}

func (f FourPillars) Equal(o FourPillars) bool {
	if f.Year != o.Year || f.Month != o.Month || f.Day != o.Day {
		return false
	}
	if f.Hour == nil || o.Hour == nil {
		return f.Hour == nil && o.Hour == nil
	}
	return *f.Hour == *o.Hour
}

// PillarInput carries a Gregorian birth moment together with the two calendar facts the
// resolver cannot derive itself.
type PillarInput struct {
	Year, Month, Day int
	Hour             *int

	MonthBranch   Branch
	EffectiveYear int
	Policy        HourPolicy
}

// YearPillar expects the effective year, i.e. already shifted back for births before Lichun.
func YearPillar(year int) Pillar {
	return Pillar{Stem: Stem(mod(year-4, stemCount)), Branch: Branch(mod(year-4, branchCount))}
}

// MonthStem applies the "year governs month" rule. The tiger month (Yin) starts at the
// group base stem and every following branch advances one stem.
func MonthStem(yearStem Stem, monthBranch Branch) Stem {
	var base Stem
	switch yearStem {
	case Jia, Ji:
		base = Bing
	case Yi, Geng:
		base = Wu
	case Bing, Xin:
		base = Geng
	case Ding, Ren:
		base = Ren
	case Wu, Gui:
		base = Jia
	}
	return base.Add(mod(int(monthBranch)-int(Tiger), branchCount))
}

// JulianDayNumber is the Fliegel-Van Flandern day number of a proleptic Gregorian date.
func JulianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

func DayPillar(year, month, day int) Pillar {
	return PillarFromIndex(JulianDayNumber(year, month, day) + 49)
}

// HourBranch maps a civil hour to its two-hour branch. 23:00 and 00:00 both fall in Zi.
func HourBranch(hour int) (Branch, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidHour, hour)
	}
	return Branch(((hour + 1) / 2) % branchCount), nil
}

// HourStem applies the "day governs hour" rule.
func HourStem(dayStem Stem, hourBranch Branch) Stem {
	var base Stem
	switch dayStem {
	case Jia, Ji:
		base = Jia
	case Yi, Geng:
		base = Bing
	case Bing, Xin:
		base = Wu
	case Ding, Ren:
		base = Geng
	case Wu, Gui:
		base = Ren
	}
	return base.Add(int(hourBranch))
}

// HourPillar derives the hour pillar from the day stem, honouring the rollover policy for 23:00.
func HourPillar(dayStem Stem, hour int, policy HourPolicy) (Pillar, error) {
	b, err := HourBranch(hour)
	if err != nil {
		return Pillar{}, err
	}
	if hour == 23 && policy == HourNextDay {
		dayStem = dayStem.Add(1)
	}
	return Pillar{Stem: HourStem(dayStem, b), Branch: b}, nil
}

// ValidDate reports whether y-m-d names a real Gregorian date.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func ResolvePillars(in PillarInput) (FourPillars, error) {
	if !ValidDate(in.Year, in.Month, in.Day) {
		return FourPillars{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, in.Year, in.Month, in.Day)
	}
	if !in.MonthBranch.Valid() {
		return FourPillars{}, fmt.Errorf("%w: month branch %d", ErrCalendarResolution, int(in.MonthBranch))
	}

	year := YearPillar(in.EffectiveYear)
	out := FourPillars{
		Year:  year,
		Month: Pillar{Stem: MonthStem(year.Stem, in.MonthBranch), Branch: in.MonthBranch},
		Day:   DayPillar(in.Year, in.Month, in.Day),
	}
	if in.Hour != nil {
		hp, err := HourPillar(out.Day.Stem, *in.Hour, in.Policy)
		if err != nil {
			return FourPillars{}, err
		}
		out.Hour = &hp
	}
	return out, nil
}
