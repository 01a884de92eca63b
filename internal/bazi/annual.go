package bazi

import (
	"fmt"
	"iter"
)

// AnnualPillarOf is the Liu Nian pillar of a Gregorian year. It uses the same formula as
// the natal year pillar and does not depend on birth data.
func AnnualPillarOf(year int) Pillar { return YearPillar(year) }

type AnnualPillar struct {
	Year   int
	Age    int
	Pillar Pillar
	TenGod TenGod
	Stage  Stage
}

// NewAnnualPillar classifies a year against a chart. Age is year minus birth year.
func NewAnnualPillar(year, birthYear int, dayStem Stem) (AnnualPillar, error) {
	p := AnnualPillarOf(year)
	god, err := TenGodOf(dayStem, p.Stem)
	if err != nil {
		return AnnualPillar{}, fmt.Errorf("annual pillar %d: %w", year, err)
	}
	stage, err := StageOf(dayStem, p.Branch)
	if err != nil {
		return AnnualPillar{}, fmt.Errorf("annual pillar %d: %w", year, err)
	}
	return AnnualPillar{Year: year, Age: year - birthYear, Pillar: p, TenGod: god, Stage: stage}, nil
}

// AnnualSeq yields year/pillar pairs from the given year onwards without end. Each range
// over the sequence starts again at from.
func AnnualSeq(from int) iter.Seq2[int, Pillar] {
	return func(yield func(int, Pillar) bool) {
		for y := from; ; y++ {
			if !yield(y, AnnualPillarOf(y)) {
				return
			}
		}
	}
}

// AnnualRange materializes the inclusive window [from, to] against a chart's day stem.
func AnnualRange(from, to, birthYear int, dayStem Stem) ([]AnnualPillar, error) {
	if to < from {
		return nil, nil
	}
	out := make([]AnnualPillar, 0, to-from+1)
	for y := range AnnualSeq(from) {
		if y > to {
			break
		}
		ap, err := NewAnnualPillar(y, birthYear, dayStem)
		if err != nil {
			return nil, err
		}
		out = append(out, ap)
	}
	return out, nil
}
