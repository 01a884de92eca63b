package bazi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualPillarOfMatchesYearPillar(t *testing.T) {
	for y := 1900; y <= 2100; y++ {
		require.Equal(t, YearPillar(y), AnnualPillarOf(y))
	}
	assert.Equal(t, "甲辰", AnnualPillarOf(2024).String())
	assert.Equal(t, "乙巳", AnnualPillarOf(2025).String())
}

func TestNewAnnualPillar(t *testing.T) {
	ap, err := NewAnnualPillar(1998, 1990, Bing)
	require.NoError(t, err)
	assert.Equal(t, 1998, ap.Year)
	assert.Equal(t, 8, ap.Age)
	assert.Equal(t, "戊寅", ap.Pillar.String())
	assert.Equal(t, Output, ap.TenGod)
	assert.Equal(t, Birth, ap.Stage)
}

func TestAnnualSeqIsRestartable(t *testing.T) {
	seq := AnnualSeq(2020)
	collect := func() []int {
		var years []int
		for y, p := range seq {
			if y >= 2025 {
				break
			}
			require.Equal(t, AnnualPillarOf(y), p)
			years = append(years, y)
		}
		return years
	}
	first := collect()
	second := collect()
	assert.Equal(t, []int{2020, 2021, 2022, 2023, 2024}, first)
	assert.Equal(t, first, second)
}

func TestAnnualSeqCyclesEverySixty(t *testing.T) {
	var pillars []Pillar
	for _, p := range AnnualSeq(1984) {
		pillars = append(pillars, p)
		if len(pillars) == 61 {
			break
		}
	}
	assert.Equal(t, pillars[0], pillars[60])
	assert.Equal(t, 0, pillars[0].Index())
	assert.Equal(t, 59, pillars[59].Index())
}

func TestAnnualRange(t *testing.T) {
	got, err := AnnualRange(2000, 2004, 1990, Jia)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, 10, got[0].Age)
	assert.Equal(t, 2004, got[4].Year)

	empty, err := AnnualRange(2005, 2004, 1990, Jia)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
