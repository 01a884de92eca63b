// Package calendar answers the solar-term questions the chart engine cannot answer itself:
// which traditional month an instant belongs to, which year counts as its effective year,
// and when the neighbouring sectional terms fall.
package calendar

import (
	"context"
	"fmt"
	"time"

	"suimei/internal/bazi"
)

// Moment is a civil birth instant in the oracle's configured time zone.
type Moment struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (m Moment) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", m.Year, m.Month, m.Day, m.Hour, m.Minute)
}

func (m Moment) validate() error {
	if !bazi.ValidDate(m.Year, m.Month, m.Day) {
		return fmt.Errorf("%w: %s", bazi.ErrInvalidDate, m)
	}
	if m.Hour < 0 || m.Hour > 23 || m.Minute < 0 || m.Minute > 59 {
		return fmt.Errorf("%w: %s", bazi.ErrInvalidHour, m)
	}
	return nil
}

// In returns the instant the moment names in loc.
func (m Moment) In(loc *time.Location) time.Time {
	return time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, 0, 0, loc)
}

type Resolution struct {
	MonthBranch   bazi.Branch `json:"month_branch"`
	EffectiveYear int         `json:"effective_year"`
}

// Transition is the instant the sun reaches a sectional term.
type Transition struct {
	Name        string      `json:"name"`
	At          time.Time   `json:"at"`
	MonthBranch bazi.Branch `json:"month_branch"`
}

// Oracle resolves calendar facts for a birth moment. Resolution failures wrap
// bazi.ErrCalendarResolution; missing transitions wrap bazi.ErrNoTransitionFound.
type Oracle interface {
	ResolveMonthBranch(ctx context.Context, m Moment) (Resolution, error)
	NextTransition(ctx context.Context, m Moment) (Transition, error)
	PrevTransition(ctx context.Context, m Moment) (Transition, error)
}

// PillarSource resolves all four pillars directly. When one is configured its answer is
// trusted for pillar identity.
type PillarSource interface {
	FourPillars(ctx context.Context, m Moment, withHour bool) (bazi.FourPillars, error)
}
