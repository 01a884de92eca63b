package domain

import (
	"fmt"
	"time"

	"suimei/internal/bazi"
)

type PillarView struct {
	Kanji           string `json:"kanji"`
	Stem            string `json:"stem"`
	Branch          string `json:"branch"`
	StemIndex       int    `json:"stem_index"`
	BranchIndex     int    `json:"branch_index"`
	SexagenaryIndex int    `json:"sexagenary_index"`
	StemElement     string `json:"stem_element"`
	BranchElement   string `json:"branch_element"`
	Polarity        string `json:"polarity"`
}

func NewPillarView(p bazi.Pillar) PillarView {
	return PillarView{
		Kanji:           p.String(),
		Stem:            p.Stem.Kanji(),
		Branch:          p.Branch.Kanji(),
		StemIndex:       int(p.Stem),
		BranchIndex:     int(p.Branch),
		SexagenaryIndex: p.Index(),
		StemElement:     p.Stem.Element().Kanji(),
		BranchElement:   p.Branch.Element().Kanji(),
		Polarity:        p.Stem.Polarity().Kanji(),
	}
}

type TenGodView struct {
	Name     string `json:"name"`
	Kanji    string `json:"kanji"`
	Category string `json:"category"`
}

func NewTenGodView(g bazi.TenGod) TenGodView {
	return TenGodView{Name: g.String(), Kanji: g.Kanji(), Category: g.Category().String()}
}

type StageView struct {
	Name   string `json:"name"`
	Kanji  string `json:"kanji"`
	Energy int    `json:"energy"`
	Vigor  string `json:"vigor"`
}

func NewStageView(s bazi.Stage) StageView {
	return StageView{Name: s.String(), Kanji: s.Kanji(), Energy: s.Energy(), Vigor: s.Vigor().String()}
}

type HiddenStemView struct {
	Stem   string     `json:"stem"`
	Weight int        `json:"weight"`
	TenGod TenGodView `json:"ten_god"`
}

type PositionView struct {
	Position string           `json:"position"`
	Pillar   PillarView       `json:"pillar"`
	TenGod   *TenGodView      `json:"ten_god,omitempty"`
	Stage    StageView        `json:"stage"`
	Hidden   []HiddenStemView `json:"hidden_stems"`
}

type LuckPillarView struct {
	Index    int        `json:"index"`
	StartAge int        `json:"start_age"`
	EndAge   int        `json:"end_age"`
	Period   string     `json:"period"`
	Pillar   PillarView `json:"pillar"`
	TenGod   TenGodView `json:"ten_god"`
	Stage    StageView  `json:"stage"`
}

func NewLuckPillarView(l bazi.LuckPillar) LuckPillarView {
	return LuckPillarView{
		Index:    l.Index,
		StartAge: l.StartAge,
		EndAge:   l.EndAge,
		Period:   fmt.Sprintf("%d〜%d歳", l.StartAge, l.EndAge),
		Pillar:   NewPillarView(l.Pillar),
		TenGod:   NewTenGodView(l.TenGod),
		Stage:    NewStageView(l.Stage),
	}
}

type StartAgeView struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

type InteractionView struct {
	Kind      string   `json:"kind"`
	Positions []string `json:"positions"`
	Branches  []string `json:"branches"`
	Element   string   `json:"element,omitempty"`
}

// ChartView is the JSON shape of a computed chart.
type ChartView struct {
	Birth         BirthData         `json:"birth"`
	Pillars       []PositionView    `json:"pillars"`
	DayMaster     string            `json:"day_master"`
	Strength      string            `json:"strength"`
	StrengthKanji string            `json:"strength_kanji"`
	Favorable     []TenGodView      `json:"favorable"`
	Unfavorable   []TenGodView      `json:"unfavorable"`
	Direction     string            `json:"luck_direction"`
	Transition    time.Time         `json:"transition"`
	StartAge      StartAgeView      `json:"start_age"`
	Luck          []LuckPillarView  `json:"luck_pillars"`
	Interactions  []InteractionView `json:"interactions"`
}

func NewChartView(b BirthData, c *bazi.Chart) ChartView {
	v := ChartView{
		Birth:         b,
		DayMaster:     c.DayMaster().Kanji(),
		Strength:      c.Strength.String(),
		StrengthKanji: c.Strength.Kanji(),
		Direction:     c.Direction.String(),
		Transition:    c.Transition,
		StartAge:      StartAgeView{Years: c.Onset.Years, Months: c.Onset.Months},
		Pillars:       make([]PositionView, 0, len(c.Details)),
		Luck:          make([]LuckPillarView, 0, len(c.Luck)),
		Interactions:  make([]InteractionView, 0, len(c.Interactions)),
	}
	for _, d := range c.Details {
		pv := PositionView{
			Position: d.Position.String(),
			Pillar:   NewPillarView(d.Pillar),
			Stage:    NewStageView(d.Stage),
			Hidden:   make([]HiddenStemView, 0, len(d.Hidden)),
		}
		if d.TenGod != nil {
			g := NewTenGodView(*d.TenGod)
			pv.TenGod = &g
		}
		for _, h := range d.Hidden {
			pv.Hidden = append(pv.Hidden, HiddenStemView{Stem: h.Stem.Kanji(), Weight: h.Weight, TenGod: NewTenGodView(h.TenGod)})
		}
		v.Pillars = append(v.Pillars, pv)
	}
	for _, g := range c.Favorability.Favorable {
		v.Favorable = append(v.Favorable, NewTenGodView(g))
	}
	for _, g := range c.Favorability.Unfavorable {
		v.Unfavorable = append(v.Unfavorable, NewTenGodView(g))
	}
	for _, l := range c.Luck {
		v.Luck = append(v.Luck, NewLuckPillarView(l))
	}
	for _, in := range c.Interactions {
		iv := InteractionView{Kind: string(in.Kind)}
		for _, p := range in.Positions {
			iv.Positions = append(iv.Positions, bazi.Position(p).String())
		}
		for _, br := range in.Branches {
			iv.Branches = append(iv.Branches, br.Kanji())
		}
		if in.Element != nil {
			iv.Element = in.Element.Kanji()
		}
		v.Interactions = append(v.Interactions, iv)
	}
	return v
}

type LevelView struct {
	Label string `json:"label"`
	Kanji string `json:"kanji"`
	Color string `json:"color"`
}

func NewLevelView(score int) LevelView {
	l := bazi.LevelOf(score)
	return LevelView{Label: l.String(), Kanji: l.Kanji(), Color: l.Color()}
}

type ScoreView struct {
	Overall int       `json:"overall"`
	Money   int       `json:"money"`
	Love    int       `json:"love"`
	Work    int       `json:"work"`
	Health  int       `json:"health"`
	Level   LevelView `json:"level"`
}

func NewScoreView(s bazi.FortuneScore) ScoreView {
	return ScoreView{
		Overall: s.Overall,
		Money:   s.Money,
		Love:    s.Love,
		Work:    s.Work,
		Health:  s.Health,
		Level:   NewLevelView(s.Overall),
	}
}

// AnnualView describes one year's pillar. The relational fields are present only when
// the pillar was classified against a chart.
type AnnualView struct {
	Year   int         `json:"year"`
	Age    *int        `json:"age,omitempty"`
	Pillar PillarView  `json:"pillar"`
	TenGod *TenGodView `json:"ten_god,omitempty"`
	Stage  *StageView  `json:"stage,omitempty"`
}

func NewAnnualView(year int) AnnualView {
	return AnnualView{Year: year, Pillar: NewPillarView(bazi.AnnualPillarOf(year))}
}

func NewClassifiedAnnualView(a bazi.AnnualPillar) AnnualView {
	age := a.Age
	g := NewTenGodView(a.TenGod)
	s := NewStageView(a.Stage)
	return AnnualView{Year: a.Year, Age: &age, Pillar: NewPillarView(a.Pillar), TenGod: &g, Stage: &s}
}

type TimelineEntryView struct {
	Year   int            `json:"year"`
	Age    int            `json:"age"`
	Luck   LuckPillarView `json:"luck_pillar"`
	Annual AnnualView     `json:"annual_pillar"`
	Scores ScoreView      `json:"scores"`
}

type TimelineView struct {
	Birth     BirthData           `json:"birth"`
	StartYear int                 `json:"start_year"`
	EndYear   int                 `json:"end_year"`
	Entries   []TimelineEntryView `json:"entries"`
}

func NewTimelineView(req TimelineRequest, entries []bazi.TimelineEntry) TimelineView {
	v := TimelineView{
		Birth:     req.Birth,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Entries:   make([]TimelineEntryView, 0, len(entries)),
	}
	for _, e := range entries {
		v.Entries = append(v.Entries, TimelineEntryView{
			Year:   e.Year,
			Age:    e.Age,
			Luck:   NewLuckPillarView(e.Luck),
			Annual: NewClassifiedAnnualView(e.Annual),
			Scores: NewScoreView(e.Score),
		})
	}
	return v
}

// Reading is a narrative interpretation of a chart.
type Reading struct {
	Birth BirthData `json:"birth"`
	Year  int       `json:"year"`
	Text  string    `json:"text"`
	Model string    `json:"model,omitempty"`
}

// ImageData is a rendered picture ready to be served.
type ImageData struct {
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    []byte `json:"-"`
}
