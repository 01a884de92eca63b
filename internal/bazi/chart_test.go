package bazi

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

// 1990-01-01 12:00 falls between Daxue (1989-12-07) and Xiaohan (1990-01-05), before
// Lichun, so the effective year is 1989.
func newYearFacts() CalendarFacts {
	return CalendarFacts{
		MonthBranch:   Rat,
		EffectiveYear: 1989,
		Birth:         time.Date(1990, 1, 1, 12, 0, 0, 0, jst),
		Next:          time.Date(1990, 1, 5, 23, 33, 0, 0, jst),
		Prev:          time.Date(1989, 12, 7, 11, 0, 0, 0, jst),
	}
}

func newYearInput() Input {
	return Input{Year: 1990, Month: 1, Day: 1, Hour: intPtr(12), Minute: intPtr(0), Gender: Male}
}

func TestComputeNewYear1990(t *testing.T) {
	c, err := Compute(newYearInput(), newYearFacts())
	require.NoError(t, err)

	assert.Equal(t, "己巳", c.Pillars.Year.String())
	assert.Equal(t, "丙子", c.Pillars.Month.String())
	assert.Equal(t, DayPillar(1990, 1, 1), c.Pillars.Day)
	assert.Equal(t, "丙寅", c.Pillars.Day.String())
	require.NotNil(t, c.Pillars.Hour)
	assert.Equal(t, "甲午", c.Pillars.Hour.String())
	assert.Equal(t, Bing, c.DayMaster())

	// Ji is yin: a male chart runs backward from the preceding jie.
	assert.Equal(t, Backward, c.Direction)
	assert.Equal(t, StartAge{Years: 8, Months: 8}, c.Onset)
	assert.Equal(t, newYearFacts().Prev, c.Transition)

	assert.Equal(t, Weak, c.Strength)
	assert.ElementsMatch(t, []TenGod{Fellow, Rival, IndirectResource, DirectResource}, c.Favorability.Favorable)

	require.Len(t, c.Luck, DefaultLuckCount)
	assert.Equal(t, "乙亥", c.Luck[0].Pillar.String())
	assert.Equal(t, 8, c.Luck[0].StartAge)

	require.Len(t, c.Details, 4)
	assert.Nil(t, c.Details[PositionDay].TenGod)
	require.NotNil(t, c.Details[PositionYear].TenGod)
	assert.Equal(t, HurtingOfficer, *c.Details[PositionYear].TenGod)
	assert.Equal(t, Fellow, *c.Details[PositionMonth].TenGod)
	assert.Equal(t, IndirectResource, *c.Details[PositionHour].TenGod)
	assert.Equal(t, Birth, c.Details[PositionDay].Stage)
	assert.NotEmpty(t, c.Details[PositionDay].Hidden)
}

func TestComputeYearPillarAfterLichun(t *testing.T) {
	in := Input{Year: 1990, Month: 3, Day: 1, Gender: Male}
	facts := CalendarFacts{
		MonthBranch:   Tiger,
		EffectiveYear: 1990,
		Birth:         time.Date(1990, 3, 1, 12, 0, 0, 0, jst),
		Next:          time.Date(1990, 3, 6, 5, 0, 0, 0, jst),
		Prev:          time.Date(1990, 2, 4, 10, 0, 0, 0, jst),
	}
	c, err := Compute(in, facts)
	require.NoError(t, err)
	assert.Equal(t, Geng, c.Pillars.Year.Stem)
	assert.Equal(t, Horse, c.Pillars.Year.Branch)
	assert.Equal(t, "戊寅", c.Pillars.Month.String())
	assert.Equal(t, Forward, c.Direction)
	assert.Equal(t, facts.Next, c.Transition)
	assert.Nil(t, c.Pillars.Hour)
	assert.Len(t, c.Details, 3)
}

func TestComputeIsIdempotent(t *testing.T) {
	a, err := Compute(newYearInput(), newYearFacts())
	require.NoError(t, err)
	b, err := Compute(newYearInput(), newYearFacts())
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("charts differ (-first +second):\n%s", diff)
	}
}

func TestComputeDoesNotAliasInput(t *testing.T) {
	in := newYearInput()
	c, err := Compute(in, newYearFacts())
	require.NoError(t, err)
	*in.Hour = 3
	assert.Equal(t, 12, *c.Input.Hour)
}

func TestComputeTrustsPillarSource(t *testing.T) {
	hour := Pillar{Stem: Geng, Branch: Horse}
	src := FourPillars{
		Year:  Pillar{Stem: Ji, Branch: Snake},
		Month: Pillar{Stem: Bing, Branch: Rat},
		Day:   Pillar{Stem: Ding, Branch: Rabbit},
		Hour:  &hour,
	}
	facts := newYearFacts()
	facts.Pillars = &src

	c, err := Compute(newYearInput(), facts)
	require.NoError(t, err)
	assert.Equal(t, Ding, c.DayMaster())
	assert.Equal(t, hour, *c.Pillars.Hour)

	// the resolver's hour is dropped when the birth time is unknown
	in := newYearInput()
	in.Hour, in.Minute = nil, nil
	c, err = Compute(in, facts)
	require.NoError(t, err)
	assert.Nil(t, c.Pillars.Hour)

	bad := src
	bad.Day = Pillar{Stem: Ding, Branch: Rat}
	facts.Pillars = &bad
	_, err = Compute(newYearInput(), facts)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestComputeErrors(t *testing.T) {
	in := newYearInput()
	in.Day = 32
	_, err := Compute(in, newYearFacts())
	assert.ErrorIs(t, err, ErrInvalidDate)

	in = newYearInput()
	in.Hour = intPtr(25)
	_, err = Compute(in, newYearFacts())
	assert.ErrorIs(t, err, ErrInvalidHour)

	in = newYearInput()
	in.Minute = intPtr(60)
	_, err = Compute(in, newYearFacts())
	assert.ErrorIs(t, err, ErrInvalidHour)

	facts := newYearFacts()
	facts.Prev = time.Time{}
	_, err = Compute(newYearInput(), facts)
	assert.ErrorIs(t, err, ErrNoTransitionFound)

	facts = newYearFacts()
	facts.Birth = time.Time{}
	_, err = Compute(newYearInput(), facts)
	assert.ErrorIs(t, err, ErrCalendarResolution)
}

func TestScoreTimeline(t *testing.T) {
	c, err := Compute(newYearInput(), newYearFacts())
	require.NoError(t, err)

	entries, err := ScoreTimeline(c, 1985, 2000)
	require.NoError(t, err)
	// ages below the onset of 8 have no luck pillar
	require.Len(t, entries, 3)
	assert.Equal(t, 1998, entries[0].Year)
	assert.Equal(t, 8, entries[0].Age)
	assert.Equal(t, "乙亥", entries[0].Luck.Pillar.String())
	assert.Equal(t, "戊寅", entries[0].Annual.Pillar.String())
	assert.Equal(t, FortuneScore{Overall: 55, Money: 60, Love: 50, Work: 60, Health: 55}, entries[0].Score)

	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].Year+1, entries[i].Year)
	}

	horizon, err := ScoreTimeline(c, 1990, 2200)
	require.NoError(t, err)
	last := horizon[len(horizon)-1]
	assert.Equal(t, c.Luck[len(c.Luck)-1].EndAge, last.Age)

	none, err := ScoreTimeline(c, 2001, 2000)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = ScoreTimeline(nil, 2000, 2001)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestFortuneAt(t *testing.T) {
	c, err := Compute(newYearInput(), newYearFacts())
	require.NoError(t, err)

	e, err := FortuneAt(c, 2026)
	require.NoError(t, err)
	assert.Equal(t, 36, e.Age)
	assert.Equal(t, 3, e.Luck.Index)

	_, err = FortuneAt(c, 1991)
	assert.ErrorIs(t, err, ErrOutsideTimeline)
}
