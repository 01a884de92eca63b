package mcp

import (
	"fmt"
	"strconv"
	"strings"

	"suimei/internal/bazi"
	"suimei/internal/domain"
)

// The annual pillar is defined for any Gregorian year; these bounds only keep requests
// sensible.
const (
	minAnnualYear = 1
	maxAnnualYear = 9999
)

type chartComputeInput struct {
	Birth domain.BirthData `json:"birth" jsonschema:"birth date, optional time, gender and time zone"`
}

type timelineScoreInput struct {
	Birth     domain.BirthData `json:"birth" jsonschema:"birth date, optional time, gender and time zone"`
	StartYear int              `json:"start_year" jsonschema:"first year to score"`
	EndYear   int              `json:"end_year,omitempty" jsonschema:"last year to score, inclusive; defaults to start_year"`
}

type timelineScoreOutput struct {
	Timeline domain.TimelineView `json:"timeline"`
}

type annualPillarInput struct {
	Year  int               `json:"year" jsonschema:"Gregorian year"`
	Birth *domain.BirthData `json:"birth,omitempty" jsonschema:"optional birth data to classify the pillar against"`
}

type annualPillarOutput struct {
	Annual domain.AnnualView `json:"annual"`
}

type stemEntry struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Kanji    string `json:"kanji"`
	Element  string `json:"element"`
	Polarity string `json:"polarity"`
}

type branchEntry struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	Kanji       string   `json:"kanji"`
	Element     string   `json:"element"`
	Polarity    string   `json:"polarity"`
	Hours       string   `json:"hours"`
	HiddenStems []string `json:"hidden_stems"`
}

type tenGodEntry struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Kanji    string `json:"kanji"`
	Category string `json:"category"`
}

type stageEntry struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Kanji  string `json:"kanji"`
	Energy int    `json:"energy"`
	Vigor  string `json:"vigor"`
}

func normalizeTimelineInput(in timelineScoreInput) (domain.TimelineRequest, error) {
	if in.StartYear == 0 {
		return domain.TimelineRequest{}, fmt.Errorf("start_year is required")
	}
	end := in.EndYear
	if end == 0 {
		end = in.StartYear
	}
	return domain.TimelineRequest{Birth: in.Birth, StartYear: in.StartYear, EndYear: end}, nil
}

func normalizeYear(year int) (int, error) {
	if year < minAnnualYear || year > maxAnnualYear {
		return 0, fmt.Errorf("year must be between %d and %d", minAnnualYear, maxAnnualYear)
	}
	return year, nil
}

func parseYear(raw string) (int, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "/")
	if raw == "" {
		return 0, fmt.Errorf("year is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year: %s", raw)
	}
	return normalizeYear(n)
}

func stemTable() []stemEntry {
	out := make([]stemEntry, 0, len(bazi.Stems))
	for _, s := range bazi.Stems {
		out = append(out, stemEntry{
			Index:    int(s),
			Name:     s.String(),
			Kanji:    s.Kanji(),
			Element:  s.Element().Kanji(),
			Polarity: s.Polarity().Kanji(),
		})
	}
	return out
}

func branchTable() []branchEntry {
	out := make([]branchEntry, 0, len(bazi.Branches))
	for _, b := range bazi.Branches {
		start, end := b.HourWindow()
		e := branchEntry{
			Index:    int(b),
			Name:     b.String(),
			Kanji:    b.Kanji(),
			Element:  b.Element().Kanji(),
			Polarity: b.Polarity().Kanji(),
			Hours:    fmt.Sprintf("%02d:00-%02d:00", start, end),
		}
		for _, h := range b.HiddenStems() {
			e.HiddenStems = append(e.HiddenStems, h.Stem.Kanji())
		}
		out = append(out, e)
	}
	return out
}

func tenGodTable() []tenGodEntry {
	out := make([]tenGodEntry, 0, len(bazi.TenGods))
	for _, g := range bazi.TenGods {
		out = append(out, tenGodEntry{Index: int(g), Name: g.String(), Kanji: g.Kanji(), Category: g.Category().String()})
	}
	return out
}

func stageTable() []stageEntry {
	out := make([]stageEntry, 0, len(bazi.Stages))
	for _, s := range bazi.Stages {
		out = append(out, stageEntry{Index: int(s), Name: s.String(), Kanji: s.Kanji(), Energy: s.Energy(), Vigor: s.Vigor().String()})
	}
	return out
}
