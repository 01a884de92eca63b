package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"suimei/internal/domain"
)

// --- stub services ---

type stubChartQuerier struct {
	chart     domain.ChartView
	timeline  domain.TimelineView
	err       error
	lastBirth domain.BirthData
	lastReq   domain.TimelineRequest
}

func (s *stubChartQuerier) ComputeChartView(_ context.Context, b domain.BirthData) (domain.ChartView, error) {
	s.lastBirth = b
	return s.chart, s.err
}

func (s *stubChartQuerier) Timeline(_ context.Context, req domain.TimelineRequest) (domain.TimelineView, error) {
	s.lastReq = req
	return s.timeline, s.err
}

type stubReadingQuerier struct {
	text string
	err  error
}

func (s *stubReadingQuerier) Reading(_ context.Context, b domain.BirthData, year int) (domain.Reading, error) {
	return domain.Reading{Birth: b, Year: year, Text: s.text}, s.err
}

func fixedNow() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

func intPtr(v int) *int { return &v }

func sampleBirth() domain.BirthData {
	return domain.BirthData{Year: 1990, Month: 1, Day: 1, Hour: intPtr(12), Minute: intPtr(0), Gender: domain.GenderMale, Timezone: "Asia/Tokyo"}
}

func luckPillar(i int, kanji string) domain.LuckPillarView {
	start := 8 + 10*i
	return domain.LuckPillarView{
		Index:    i,
		StartAge: start,
		EndAge:   start + 9,
		Period:   "x",
		Pillar:   domain.PillarView{Kanji: kanji, Stem: kanji[:3], Branch: kanji[3:]},
		TenGod:   domain.TenGodView{Kanji: "比肩", Category: "companion"},
		Stage:    domain.StageView{Kanji: "長生", Vigor: "strong"},
	}
}

func sampleChart() domain.ChartView {
	return domain.ChartView{
		Birth:         sampleBirth(),
		DayMaster:     "丙",
		Strength:      "weak",
		StrengthKanji: "身弱",
		Direction:     "backward",
		StartAge:      domain.StartAgeView{Years: 8, Months: 2},
		Pillars: []domain.PositionView{
			{Position: "year", Pillar: domain.PillarView{Kanji: "己巳", Stem: "己", Branch: "巳"}, TenGod: &domain.TenGodView{Kanji: "傷官"}},
			{Position: "month", Pillar: domain.PillarView{Kanji: "丙子", Stem: "丙", Branch: "子"}, TenGod: &domain.TenGodView{Kanji: "比肩"}},
			{Position: "day", Pillar: domain.PillarView{Kanji: "丙寅", Stem: "丙", Branch: "寅"}},
			{Position: "hour", Pillar: domain.PillarView{Kanji: "甲午", Stem: "甲", Branch: "午"}, TenGod: &domain.TenGodView{Kanji: "偏印"}},
		},
		Favorable:   []domain.TenGodView{{Kanji: "比肩"}, {Kanji: "偏印"}},
		Unfavorable: []domain.TenGodView{{Kanji: "偏財"}},
		Luck: []domain.LuckPillarView{
			luckPillar(0, "乙亥"),
			luckPillar(1, "甲戌"),
			luckPillar(2, "癸酉"),
			luckPillar(3, "壬申"),
			luckPillar(4, "辛未"),
		},
	}
}

func sampleTimeline(from, to int) domain.TimelineView {
	view := domain.TimelineView{Birth: sampleBirth(), StartYear: from, EndYear: to}
	for y := from; y <= to; y++ {
		view.Entries = append(view.Entries, domain.TimelineEntryView{
			Year:   y,
			Age:    y - 1990,
			Annual: domain.AnnualView{Year: y, Pillar: domain.PillarView{Kanji: "丙午"}},
			Scores: domain.ScoreView{Overall: 50 + y%10, Money: 40, Love: 60, Work: 70, Health: 55},
		})
	}
	return view
}

func testServices() (Services, *stubChartQuerier) {
	charts := &stubChartQuerier{chart: sampleChart(), timeline: sampleTimeline(2016, 2036)}
	return Services{
		Charts:   charts,
		Reading:  &stubReadingQuerier{text: "A steady year."},
		Username: "testuser",
		Now:      fixedNow,
		Timezone: "Asia/Tokyo",
	}, charts
}

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestAppModelInitialTab(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)
	if m.ActiveTab() != TabBirth {
		t.Fatalf("expected TabBirth, got %d", m.ActiveTab())
	}
}

func TestAppModelBirthTabKeepsDigits(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)

	updated, _ := m.Update(runeKey('2'))
	app := updated.(AppModel)
	if app.ActiveTab() != TabBirth {
		t.Fatalf("digits should be typed into the form, got tab %d", app.ActiveTab())
	}
	updated, _ = app.Update(runeKey('q'))
	app = updated.(AppModel)
	if app.quitting {
		t.Fatal("q should not quit from the birth form")
	}
}

func TestAppModelTabSwitchByNumber(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)
	m.SetSize(120, 40)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	app := updated.(AppModel)
	if app.ActiveTab() != TabPillars {
		t.Fatalf("expected TabPillars after Tab, got %d", app.ActiveTab())
	}

	for r, want := range map[rune]Tab{'3': TabLuck, '4': TabTimeline, '2': TabPillars, '1': TabBirth} {
		app.activeTab = TabPillars
		updated, _ = app.Update(runeKey(r))
		if got := updated.(AppModel).ActiveTab(); got != want {
			t.Fatalf("pressing %c: expected tab %d, got %d", r, want, got)
		}
	}
}

func TestAppModelTabSwitchByShiftTab(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app := updated.(AppModel)
	if app.ActiveTab() != TabTimeline {
		t.Fatalf("expected wrap to TabTimeline, got %d", app.ActiveTab())
	}
	updated, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if updated.(AppModel).ActiveTab() != TabBirth {
		t.Fatal("expected wrap back to TabBirth")
	}
}

func TestAppModelQuitOutsideForm(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)
	m.activeTab = TabLuck

	updated, cmd := m.Update(runeKey('q'))
	if !updated.(AppModel).quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if updated.(AppModel).View() != "さようなら\n" {
		t.Fatal("expected goodbye view")
	}
}

func TestAppModelBirthSubmissionLoadsChartAndTimeline(t *testing.T) {
	svc, charts := testServices()
	m := NewAppModel(svc)

	updated, cmd := m.Update(birthSubmittedMsg{birth: sampleBirth()})
	app := updated.(AppModel)
	if app.ActiveTab() != TabPillars {
		t.Fatalf("expected switch to pillars, got %d", app.ActiveTab())
	}
	if !app.pillars.loading || !app.timeline.loading {
		t.Fatal("expected both chart and timeline to be loading")
	}
	if cmd == nil {
		t.Fatal("expected fetch commands")
	}

	// Run the chart fetch directly and route the result.
	msg := fetchChartCmd(charts, sampleBirth())()
	updated, _ = app.Update(msg)
	app = updated.(AppModel)
	if !app.pillars.HasChart() || app.luck.chart == nil {
		t.Fatal("expected chart routed to pillars and luck")
	}

	msg = app.timeline.fetchCmd(sampleBirth())()
	updated, _ = app.Update(msg)
	app = updated.(AppModel)
	if app.timeline.SelectedYear() != 2026 {
		t.Fatalf("expected timeline centred on 2026, got %d", app.timeline.SelectedYear())
	}
	if charts.lastReq.StartYear != 2016 || charts.lastReq.EndYear != 2036 {
		t.Fatalf("unexpected timeline window %d-%d", charts.lastReq.StartYear, charts.lastReq.EndYear)
	}
}

func TestAppModelChartErrorReachesPillars(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)
	m.activeTab = TabPillars

	updated, _ := m.Update(chartErrMsg{err: errors.New("boom")})
	app := updated.(AppModel)
	if app.pillars.err == nil || app.pillars.HasChart() {
		t.Fatal("expected chart error on pillars")
	}
}

func TestAppModelWindowResize(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	app := updated.(AppModel)
	if app.width != 100 || app.height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", app.width, app.height)
	}
	if app.timeline.height != 48 {
		t.Fatalf("expected child height 48, got %d", app.timeline.height)
	}
}

func TestAppModelViewRendersWithoutPanic(t *testing.T) {
	svc, _ := testServices()
	m := NewAppModel(svc)
	m.SetSize(120, 40)

	for _, tab := range []Tab{TabBirth, TabPillars, TabLuck, TabTimeline} {
		m.activeTab = tab
		if m.View() == "" {
			t.Fatalf("expected non-empty view for tab %d", tab)
		}
	}
}

func TestServicesCurrentYear(t *testing.T) {
	if got := (Services{Now: fixedNow}).currentYear(); got != 2026 {
		t.Fatalf("expected 2026, got %d", got)
	}
	if got := (Services{}).currentYear(); got != time.Now().Year() {
		t.Fatalf("expected wall clock year, got %d", got)
	}
}
