// Package bazi computes four-pillar birth charts and the fortune metrics derived from them.
//
// Everything here is a pure function of its arguments and a set of fixed tables. The
// package never reads the clock and never talks to the calendar collaborator directly:
// callers resolve the month branch, effective year and solar-term transitions first and
// pass them in through CalendarFacts.
package bazi

import "fmt"

type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

const elementCount = 5

func (e Element) Valid() bool { return e >= Wood && e <= Water }

// Generates returns the element this one produces (wood feeds fire, and so on).
func (e Element) Generates() Element { return Element(mod(int(e)+1, elementCount)) }

// Controls returns the element this one overcomes.
func (e Element) Controls() Element { return Element(mod(int(e)+2, elementCount)) }

func (e Element) GeneratedBy() Element { return Element(mod(int(e)-1, elementCount)) }

func (e Element) ControlledBy() Element { return Element(mod(int(e)-2, elementCount)) }

func (e Element) String() string {
	switch e {
	case Wood:
		return "wood"
	case Fire:
		return "fire"
	case Earth:
		return "earth"
	case Metal:
		return "metal"
	case Water:
		return "water"
	}
	return fmt.Sprintf("element(%d)", int(e))
}

func (e Element) Kanji() string {
	switch e {
	case Wood:
		return "木"
	case Fire:
		return "火"
	case Earth:
		return "土"
	case Metal:
		return "金"
	case Water:
		return "水"
	}
	return "?"
}

// Color is the display colour conventionally used for the element.
func (e Element) Color() string {
	switch e {
	case Wood:
		return "#4CAF50"
	case Fire:
		return "#F44336"
	case Earth:
		return "#FFC107"
	case Metal:
		return "#9E9E9E"
	case Water:
		return "#2196F3"
	}
	return "#000000"
}

type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yin {
		return "yin"
	}
	return "yang"
}

func (p Polarity) Kanji() string {
	if p == Yin {
		return "陰"
	}
	return "陽"
}

// Stem is one of the ten heavenly stems.
type Stem int

const (
	Jia Stem = iota
	Yi
	Bing
	Ding
	Wu
	Ji
	Geng
	Xin
	Ren
	Gui
)

const stemCount = 10

// Stems lists the ten stems in cyclic order.
var Stems = [stemCount]Stem{Jia, Yi, Bing, Ding, Wu, Ji, Geng, Xin, Ren, Gui}

func (s Stem) Valid() bool { return s >= Jia && s <= Gui }

func (s Stem) Element() Element { return Element(int(s) / 2) }

func (s Stem) Polarity() Polarity { return Polarity(int(s) % 2) }

// Add moves n steps along the stem cycle; n may be negative.
func (s Stem) Add(n int) Stem { return Stem(mod(int(s)+n, stemCount)) }

func (s Stem) String() string {
	switch s {
	case Jia:
		return "Jia"
	case Yi:
		return "Yi"
	case Bing:
		return "Bing"
	case Ding:
		return "Ding"
	case Wu:
		return "Wu"
	case Ji:
		return "Ji"
	case Geng:
		return "Geng"
	case Xin:
		return "Xin"
	case Ren:
		return "Ren"
	case Gui:
		return "Gui"
	}
	return fmt.Sprintf("stem(%d)", int(s))
}

func (s Stem) Kanji() string {
	switch s {
	case Jia:
		return "甲"
	case Yi:
		return "乙"
	case Bing:
		return "丙"
	case Ding:
		return "丁"
	case Wu:
		return "戊"
	case Ji:
		return "己"
	case Geng:
		return "庚"
	case Xin:
		return "辛"
	case Ren:
		return "壬"
	case Gui:
		return "癸"
	}
	return "?"
}

// ParseStem accepts either the kanji or the romanized name.
func ParseStem(raw string) (Stem, error) {
	for _, s := range Stems {
		if raw == s.Kanji() || raw == s.String() {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stem %q", raw)
}

// Branch is one of the twelve earthly branches. Constants carry the zodiac animal names;
// String reports the pinyin.
type Branch int

const (
	Rat Branch = iota
	Ox
	Tiger
	Rabbit
	Dragon
	Snake
	Horse
	Goat
	Monkey
	Rooster
	Dog
	Pig
)

const branchCount = 12

// Branches lists the twelve branches in cyclic order.
var Branches = [branchCount]Branch{Rat, Ox, Tiger, Rabbit, Dragon, Snake, Horse, Goat, Monkey, Rooster, Dog, Pig}

func (b Branch) Valid() bool { return b >= Rat && b <= Pig }

func (b Branch) Polarity() Polarity { return Polarity(int(b) % 2) }

func (b Branch) Add(n int) Branch { return Branch(mod(int(b)+n, branchCount)) }

func (b Branch) Element() Element {
	switch b {
	case Tiger, Rabbit:
		return Wood
	case Snake, Horse:
		return Fire
	case Ox, Dragon, Goat, Dog:
		return Earth
	case Monkey, Rooster:
		return Metal
	case Rat, Pig:
		return Water
	}
	return Element(-1)
}

// HiddenStem is a stem stored inside a branch together with its share of the branch's qi.
type HiddenStem struct {
	Stem   Stem
	Weight int
}

// HiddenStems returns the branch's hidden stems, main qi first. Weights sum to 100.
func (b Branch) HiddenStems() []HiddenStem {
	switch b {
	case Rat:
		return []HiddenStem{{Gui, 100}}
	case Ox:
		return []HiddenStem{{Ji, 60}, {Gui, 30}, {Xin, 10}}
	case Tiger:
		return []HiddenStem{{Jia, 60}, {Bing, 30}, {Wu, 10}}
	case Rabbit:
		return []HiddenStem{{Yi, 100}}
	case Dragon:
		return []HiddenStem{{Wu, 60}, {Yi, 30}, {Gui, 10}}
	case Snake:
		return []HiddenStem{{Bing, 60}, {Geng, 30}, {Wu, 10}}
	case Horse:
		return []HiddenStem{{Ding, 70}, {Ji, 30}}
	case Goat:
		return []HiddenStem{{Ji, 60}, {Ding, 30}, {Yi, 10}}
	case Monkey:
		return []HiddenStem{{Geng, 60}, {Ren, 30}, {Wu, 10}}
	case Rooster:
		return []HiddenStem{{Xin, 100}}
	case Dog:
		return []HiddenStem{{Wu, 60}, {Xin, 30}, {Ding, 10}}
	case Pig:
		return []HiddenStem{{Ren, 70}, {Jia, 30}}
	}
	return nil
}

// HourWindow returns the civil hours [start, end) the branch governs. Zi wraps midnight,
// so its window is reported as 23 to 1.
func (b Branch) HourWindow() (start, end int) {
	start = mod(2*int(b)-1, 24)
	return start, mod(start+2, 24)
}

func (b Branch) String() string {
	switch b {
	case Rat:
		return "Zi"
	case Ox:
		return "Chou"
	case Tiger:
		return "Yin"
	case Rabbit:
		return "Mao"
	case Dragon:
		return "Chen"
	case Snake:
		return "Si"
	case Horse:
		return "Wu"
	case Goat:
		return "Wei"
	case Monkey:
		return "Shen"
	case Rooster:
		return "You"
	case Dog:
		return "Xu"
	case Pig:
		return "Hai"
	}
	return fmt.Sprintf("branch(%d)", int(b))
}

func (b Branch) Kanji() string {
	switch b {
	case Rat:
		return "子"
	case Ox:
		return "丑"
	case Tiger:
		return "寅"
	case Rabbit:
		return "卯"
	case Dragon:
		return "辰"
	case Snake:
		return "巳"
	case Horse:
		return "午"
	case Goat:
		return "未"
	case Monkey:
		return "申"
	case Rooster:
		return "酉"
	case Dog:
		return "戌"
	case Pig:
		return "亥"
	}
	return "?"
}

func ParseBranch(raw string) (Branch, error) {
	for _, b := range Branches {
		if raw == b.Kanji() || raw == b.String() {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown branch %q", raw)
}

// Pillar is a legal stem/branch pair: both share the same parity.
type Pillar struct {
	Stem   Stem
	Branch Branch
}

const SexagenaryCycle = 60

// NewPillar validates the pair. Only 60 of the 120 combinations exist.
func NewPillar(s Stem, b Branch) (Pillar, error) {
	if !s.Valid() || !b.Valid() {
		return Pillar{}, fmt.Errorf("%w: stem %d branch %d out of range", ErrInvariantViolation, int(s), int(b))
	}
	if int(s)%2 != int(b)%2 {
		return Pillar{}, fmt.Errorf("%w: %s%s is not a sexagenary pair", ErrInvariantViolation, s.Kanji(), b.Kanji())
	}
	return Pillar{Stem: s, Branch: b}, nil
}

// PillarFromIndex decodes a sexagenary index; any integer is normalized into [0,60).
func PillarFromIndex(idx int) Pillar {
	n := mod(idx, SexagenaryCycle)
	return Pillar{Stem: Stem(n % stemCount), Branch: Branch(n % branchCount)}
}

// Index is the pillar's position in the sexagenary cycle (Jia-Zi = 0).
func (p Pillar) Index() int {
	return mod(6*int(p.Stem)-5*int(p.Branch), SexagenaryCycle)
}

// Add moves n steps along the sexagenary cycle.
func (p Pillar) Add(n int) Pillar { return PillarFromIndex(p.Index() + n) }

func (p Pillar) Valid() bool {
	return p.Stem.Valid() && p.Branch.Valid() && int(p.Stem)%2 == int(p.Branch)%2
}

func (p Pillar) String() string { return p.Stem.Kanji() + p.Branch.Kanji() }

// ParsePillar reads a two-character kanji pillar such as "甲子".
func ParsePillar(raw string) (Pillar, error) {
	r := []rune(raw)
	if len(r) != 2 {
		return Pillar{}, fmt.Errorf("pillar %q must be two characters", raw)
	}
	s, err := ParseStem(string(r[0]))
	if err != nil {
		return Pillar{}, err
	}
	b, err := ParseBranch(string(r[1]))
	if err != nil {
		return Pillar{}, err
	}
	return NewPillar(s, b)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
