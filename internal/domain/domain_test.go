package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"suimei/internal/bazi"
)

func intPtr(v int) *int { return &v }

func validBirth() BirthData {
	return BirthData{Year: 1990, Month: 1, Day: 1, Hour: intPtr(12), Minute: intPtr(0), Gender: GenderMale}
}

func TestBirthDataValidate(t *testing.T) {
	if err := validBirth().Validate(); err != nil {
		t.Fatalf("expected valid birth data, got %v", err)
	}

	noTime := validBirth()
	noTime.Hour, noTime.Minute = nil, nil
	if err := noTime.Validate(); err != nil {
		t.Fatalf("expected unknown time to be valid, got %v", err)
	}

	cases := map[string]func(*BirthData){
		"year":     func(b *BirthData) { b.Year = 1899 },
		"month":    func(b *BirthData) { b.Month = 13 },
		"day":      func(b *BirthData) { b.Day = 0 },
		"hour":     func(b *BirthData) { b.Hour = intPtr(24) },
		"minute":   func(b *BirthData) { b.Minute = intPtr(60) },
		"gender":   func(b *BirthData) { b.Gender = "other" },
		"timezone": func(b *BirthData) { b.Timezone = "Nowhere/Atlantis" },
	}
	for field, mutate := range cases {
		b := validBirth()
		mutate(&b)
		err := b.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", field, err)
		}
		if verr.Field != field {
			t.Fatalf("expected field %q, got %q", field, verr.Field)
		}
	}

	minuteOnly := validBirth()
	minuteOnly.Hour = nil
	if err := minuteOnly.Validate(); err == nil {
		t.Fatal("expected minute without hour to be rejected")
	}
}

func TestBirthDataString(t *testing.T) {
	if got := validBirth().String(); got != "1990-01-01 12:00 male" {
		t.Fatalf("unexpected string %q", got)
	}
	b := validBirth()
	b.Hour, b.Minute = nil, nil
	b.Gender = GenderFemale
	if got := b.String(); got != "1990-01-01 female" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestTimelineRequestValidate(t *testing.T) {
	req := TimelineRequest{Birth: validBirth(), StartYear: 2020, EndYear: 2030}
	if err := req.Validate(20); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if err := req.Validate(5); err == nil {
		t.Fatal("expected window limit to apply")
	}
	req.EndYear = 2019
	if err := req.Validate(0); err == nil {
		t.Fatal("expected reversed window to be rejected")
	}
}

func TestNewChartView(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	b := validBirth()
	c, err := bazi.Compute(bazi.Input{Year: 1990, Month: 1, Day: 1, Hour: intPtr(12), Minute: intPtr(0)}, bazi.CalendarFacts{
		MonthBranch:   bazi.Rat,
		EffectiveYear: 1989,
		Birth:         time.Date(1990, 1, 1, 12, 0, 0, 0, jst),
		Next:          time.Date(1990, 1, 5, 23, 31, 0, 0, jst),
		Prev:          time.Date(1989, 12, 7, 12, 19, 0, 0, jst),
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	v := NewChartView(b, c)
	if len(v.Pillars) != 4 {
		t.Fatalf("expected 4 pillars, got %d", len(v.Pillars))
	}
	if v.Pillars[0].Pillar.Kanji != "己巳" || v.Pillars[2].Pillar.Kanji != "丙寅" {
		t.Fatalf("unexpected pillars: %+v", v.Pillars)
	}
	if v.Pillars[2].TenGod != nil {
		t.Fatal("day pillar must not carry a ten god")
	}
	if v.Pillars[0].TenGod == nil || v.Pillars[0].TenGod.Kanji != "傷官" {
		t.Fatalf("unexpected year ten god: %+v", v.Pillars[0].TenGod)
	}
	if v.DayMaster != "丙" || v.Strength != "weak" || v.Direction != "backward" {
		t.Fatalf("unexpected summary: %s %s %s", v.DayMaster, v.Strength, v.Direction)
	}
	if len(v.Luck) != bazi.DefaultLuckCount || v.Luck[0].Period != "8〜17歳" {
		t.Fatalf("unexpected luck pillars: %+v", v.Luck)
	}
	if len(v.Favorable)+len(v.Unfavorable) != 10 {
		t.Fatalf("expected ten gods split across both sets")
	}
}

func TestNewScoreViewLevel(t *testing.T) {
	v := NewScoreView(bazi.FortuneScore{Overall: 82, Money: 10, Love: 50, Work: 60, Health: 70})
	if v.Level.Kanji != "大吉" || v.Level.Color != "#FF4081" {
		t.Fatalf("unexpected level %+v", v.Level)
	}
}

func TestNewAnnualView(t *testing.T) {
	v := NewAnnualView(2024)
	if v.Pillar.Kanji != "甲辰" || v.Age != nil || v.TenGod != nil {
		t.Fatalf("unexpected annual view %+v", v)
	}
	ap, err := bazi.NewAnnualPillar(2024, 1990, bazi.Bing)
	if err != nil {
		t.Fatal(err)
	}
	cv := NewClassifiedAnnualView(ap)
	if cv.Age == nil || *cv.Age != 34 || cv.TenGod == nil || cv.Stage == nil {
		t.Fatalf("unexpected classified view %+v", cv)
	}
}

func TestFormatAnnual(t *testing.T) {
	if got := FormatAnnual(NewAnnualView(2024)); got != "2024年 甲辰 (木陽)" {
		t.Fatalf("unexpected annual text %q", got)
	}
	ap, err := bazi.NewAnnualPillar(2024, 1990, bazi.Bing)
	if err != nil {
		t.Fatal(err)
	}
	got := FormatAnnual(NewClassifiedAnnualView(ap))
	if !strings.Contains(got, "34歳") || !strings.Contains(got, "偏印") {
		t.Fatalf("unexpected classified annual text %q", got)
	}
}

func TestFormatFortune(t *testing.T) {
	e := TimelineEntryView{
		Year:   2026,
		Age:    36,
		Luck:   LuckPillarView{Pillar: PillarView{Kanji: "壬申"}},
		Annual: AnnualView{Pillar: PillarView{Kanji: "丙午"}},
		Scores: NewScoreView(bazi.FortuneScore{Overall: 82, Money: 70, Love: 60, Work: 90, Health: 50}),
	}
	want := "2026 (36歳) 大運 壬申 流年 丙午  大吉 82  財70 愛60 仕90 健50"
	if got := FormatFortune(e); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
