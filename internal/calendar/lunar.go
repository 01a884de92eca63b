package calendar

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	lunarcal "github.com/6tail/lunar-go/calendar"

	"suimei/internal/bazi"
)

const (
	DefaultTimezone = "Asia/Tokyo"

	minYear = 1000
	maxYear = 3000

	// lateZiSameDay is lunar-go's eight-char sect that keeps the civil day pillar
	// through 23:00 and lets the hour stem follow the next day.
	lateZiSameDay = 2
)

// termClock is the wall clock lunar-go uses for solar-term instants and the month and
// year pillars derived from them.
var termClock = time.FixedZone("UTC+8", 8*60*60)

// Lunar answers calendar questions from the sexagenary tables in lunar-go. Moments are
// civil times in the configured zone; solar-term boundaries are absolute instants.
type Lunar struct {
	loc    *time.Location
	policy bazi.HourPolicy
}

type LunarOption func(*Lunar)

// WithHourPolicy selects the 23:00 convention FourPillars applies to the hour stem. The
// day pillar always stays on the civil day.
func WithHourPolicy(p bazi.HourPolicy) LunarOption {
	return func(l *Lunar) { l.policy = p }
}

// NewLunar interprets moments in the named IANA zone. An empty name selects
// DefaultTimezone.
func NewLunar(timezone string, opts ...LunarOption) (*Lunar, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	l := &Lunar{loc: loc}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Lunar) Location() *time.Location { return l.loc }

func (l *Lunar) ResolveMonthBranch(ctx context.Context, m Moment) (Resolution, error) {
	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}
	if err := l.check(m); err != nil {
		return Resolution{}, fmt.Errorf("%w: %w", bazi.ErrCalendarResolution, err)
	}

	at := m.In(l.loc).In(termClock)
	ec := solarAt(at).GetLunar().GetEightChar()
	year, err := parsePillar("year", ec.GetYear())
	if err != nil {
		return Resolution{}, err
	}
	month, err := parsePillar("month", ec.GetMonth())
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{MonthBranch: month.Branch, EffectiveYear: effectiveYear(at.Year(), year)}, nil
}

func (l *Lunar) NextTransition(ctx context.Context, m Moment) (Transition, error) {
	if err := ctx.Err(); err != nil {
		return Transition{}, err
	}
	if err := l.check(m); err != nil {
		return Transition{}, fmt.Errorf("%w: %w", bazi.ErrNoTransitionFound, err)
	}
	return l.transition(solarAt(m.In(l.loc).In(termClock)).GetLunar().GetNextJie(), "next", m)
}

func (l *Lunar) PrevTransition(ctx context.Context, m Moment) (Transition, error) {
	if err := ctx.Err(); err != nil {
		return Transition{}, err
	}
	if err := l.check(m); err != nil {
		return Transition{}, fmt.Errorf("%w: %w", bazi.ErrNoTransitionFound, err)
	}
	return l.transition(solarAt(m.In(l.loc).In(termClock)).GetLunar().GetPrevJie(), "previous", m)
}

// FourPillars reads the year and month pillars at the term clock and the day and hour
// pillars at the civil clock.
func (l *Lunar) FourPillars(ctx context.Context, m Moment, withHour bool) (bazi.FourPillars, error) {
	res, err := l.ResolveMonthBranch(ctx, m)
	if err != nil {
		return bazi.FourPillars{}, err
	}
	at := m.In(l.loc).In(termClock)
	term := solarAt(at).GetLunar().GetEightChar()

	civil := lunarcal.NewSolar(m.Year, m.Month, m.Day, m.Hour, m.Minute, 0).GetLunar().GetEightChar()
	civil.SetSect(lateZiSameDay)

	var out bazi.FourPillars
	if out.Year, err = parsePillar("year", term.GetYear()); err != nil {
		return bazi.FourPillars{}, err
	}
	if out.Month, err = parsePillar("month", term.GetMonth()); err != nil {
		return bazi.FourPillars{}, err
	}
	if out.Month.Branch != res.MonthBranch {
		return bazi.FourPillars{}, fmt.Errorf("%w: month %s disagrees with branch %s", bazi.ErrCalendarResolution, out.Month, res.MonthBranch.Kanji())
	}
	if out.Day, err = parsePillar("day", civil.GetDay()); err != nil {
		return bazi.FourPillars{}, err
	}
	if !withHour {
		return out, nil
	}

	hour, err := parsePillar("hour", civil.GetTime())
	if err != nil {
		return bazi.FourPillars{}, err
	}
	if m.Hour == 23 && l.policy == bazi.HourSameDay {
		if hour, err = bazi.HourPillar(out.Day.Stem, m.Hour, l.policy); err != nil {
			return bazi.FourPillars{}, err
		}
	}
	out.Hour = &hour
	return out, nil
}

func (l *Lunar) check(m Moment) error {
	if err := m.validate(); err != nil {
		return err
	}
	if m.Year < minYear || m.Year > maxYear {
		return fmt.Errorf("year %d outside supported range %d-%d", m.Year, minYear, maxYear)
	}
	return nil
}

func (l *Lunar) transition(jq *lunarcal.JieQi, dir string, m Moment) (Transition, error) {
	if jq == nil {
		return Transition{}, fmt.Errorf("%w: no %s term for %s", bazi.ErrNoTransitionFound, dir, m)
	}
	j, err := JieByName(jq.GetName())
	if err != nil {
		return Transition{}, fmt.Errorf("%w: %w", bazi.ErrNoTransitionFound, err)
	}
	s := jq.GetSolar()
	at := time.Date(s.GetYear(), time.Month(s.GetMonth()), s.GetDay(), s.GetHour(), s.GetMinute(), s.GetSecond(), 0, termClock)
	return Transition{Name: j.Name, At: at.In(l.loc), MonthBranch: j.Month}, nil
}

func solarAt(t time.Time) *lunarcal.Solar {
	return lunarcal.NewSolar(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func parsePillar(which, raw string) (bazi.Pillar, error) {
	p, err := bazi.ParsePillar(raw)
	if err != nil {
		return bazi.Pillar{}, fmt.Errorf("%w: %s pillar: %w", bazi.ErrCalendarResolution, which, err)
	}
	return p, nil
}

// effectiveYear is the Gregorian year whose sexagenary pillar is yearPillar. Before
// Lichun that is the previous year.
func effectiveYear(civilYear int, yearPillar bazi.Pillar) int {
	if bazi.YearPillar(civilYear).Stem == yearPillar.Stem {
		return civilYear
	}
	return civilYear - 1
}
