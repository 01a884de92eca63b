package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"suimei/internal/domain"
)

type stubLLM struct {
	reply      string
	err        error
	lastModel  string
	lastPrompt string
}

func (s *stubLLM) Complete(_ context.Context, model, _, user string) (string, error) {
	s.lastModel = model
	s.lastPrompt = user
	return s.reply, s.err
}

type stubCharts struct {
	fortuneErr error
}

func (stubCharts) ComputeChartView(_ context.Context, b domain.BirthData) (domain.ChartView, error) {
	g := domain.TenGodView{Kanji: "傷官"}
	return domain.ChartView{
		Birth:         b,
		DayMaster:     "丙",
		Strength:      "weak",
		StrengthKanji: "身弱",
		Direction:     "backward",
		Pillars: []domain.PositionView{
			{Position: "year", Pillar: domain.PillarView{Kanji: "己巳"}, TenGod: &g},
			{Position: "day", Pillar: domain.PillarView{Kanji: "丙寅"}},
		},
		Favorable: []domain.TenGodView{{Kanji: "比肩"}},
	}, nil
}

func (s stubCharts) FortuneAt(context.Context, domain.BirthData, int) (domain.TimelineEntryView, error) {
	if s.fortuneErr != nil {
		return domain.TimelineEntryView{}, s.fortuneErr
	}
	return domain.TimelineEntryView{
		Year:   2026,
		Age:    36,
		Luck:   domain.LuckPillarView{Pillar: domain.PillarView{Kanji: "癸酉"}, Period: "28〜37歳"},
		Annual: domain.AnnualView{Pillar: domain.PillarView{Kanji: "丙午"}},
		Scores: domain.ScoreView{Overall: 70, Level: domain.LevelView{Kanji: "吉"}},
	}, nil
}

func tracer() trace.Tracer { return trace.NewNoopTracerProvider().Tracer("test") }

func TestReadingUsesChartFacts(t *testing.T) {
	llm := &stubLLM{reply: "  A steady year.  "}
	svc := NewAdvisorService(tracer(), llm, stubCharts{}, "gpt-4o-mini")

	reading, err := svc.Reading(context.Background(), domain.BirthData{Year: 1990, Month: 1, Day: 1, Gender: domain.GenderMale}, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Text != "A steady year." || reading.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected reading %+v", reading)
	}
	for _, want := range []string{"year=己巳(傷官)", "day=丙寅", "Day master: 丙, weak", "annual 丙午", "overall 70 (吉)"} {
		if !strings.Contains(llm.lastPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, llm.lastPrompt)
		}
	}
}

func TestReadingOutsideTimeline(t *testing.T) {
	llm := &stubLLM{reply: "ok"}
	svc := NewAdvisorService(tracer(), llm, stubCharts{fortuneErr: errors.New("outside")}, "m")

	if _, err := svc.Reading(context.Background(), domain.BirthData{}, 1900); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(llm.lastPrompt, "outside the luck pillars") {
		t.Fatalf("unexpected prompt %s", llm.lastPrompt)
	}
}

func TestReadingDisabledAndFailing(t *testing.T) {
	svc := NewAdvisorService(tracer(), nil, stubCharts{}, "m")
	if _, err := svc.Reading(context.Background(), domain.BirthData{}, 2026); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}

	svc = NewAdvisorService(tracer(), &stubLLM{err: errors.New("rate limited")}, stubCharts{}, "m")
	if _, err := svc.Reading(context.Background(), domain.BirthData{}, 2026); err == nil {
		t.Fatal("expected completion error")
	}
}
