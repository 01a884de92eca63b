package bazi

// Clashes reports whether two branches sit opposite each other on the twelve-branch wheel.
func Clashes(a, b Branch) bool {
	return a.Valid() && b.Valid() && b == ClashPartner(a)
}

func ClashPartner(b Branch) Branch { return b.Add(6) }

// UnionPartner returns the branch that forms a six-union with b.
func UnionPartner(b Branch) Branch {
	switch b {
	case Rat:
		return Ox
	case Ox:
		return Rat
	case Tiger:
		return Pig
	case Pig:
		return Tiger
	case Rabbit:
		return Dog
	case Dog:
		return Rabbit
	case Dragon:
		return Rooster
	case Rooster:
		return Dragon
	case Snake:
		return Monkey
	case Monkey:
		return Snake
	case Horse:
		return Goat
	case Goat:
		return Horse
	}
	return -1
}

func Unites(a, b Branch) bool {
	return a.Valid() && b.Valid() && UnionPartner(a) == b
}

// Triad is a group of three branches that combine into an element.
type Triad struct {
	Branches [3]Branch
	Element  Element
}

// Trines are the three-harmony groups, ordered birth, peak, tomb.
var Trines = [4]Triad{
	{Branches: [3]Branch{Monkey, Rat, Dragon}, Element: Water},
	{Branches: [3]Branch{Tiger, Horse, Dog}, Element: Fire},
	{Branches: [3]Branch{Snake, Rooster, Ox}, Element: Metal},
	{Branches: [3]Branch{Pig, Rabbit, Goat}, Element: Wood},
}

// Directions are the seasonal triads of one compass direction.
var Directions = [4]Triad{
	{Branches: [3]Branch{Pig, Rat, Ox}, Element: Water},
	{Branches: [3]Branch{Tiger, Rabbit, Dragon}, Element: Wood},
	{Branches: [3]Branch{Snake, Horse, Goat}, Element: Fire},
	{Branches: [3]Branch{Monkey, Rooster, Dog}, Element: Metal},
}

type InteractionKind string

const (
	InteractionClash       InteractionKind = "clash"
	InteractionUnion       InteractionKind = "union"
	InteractionTrine       InteractionKind = "trine"
	InteractionDirectional InteractionKind = "directional"
)

// Interaction is a relation found among a chart's branches. Positions index into the
// pillar order year, month, day, hour.
type Interaction struct {
	Kind      InteractionKind
	Positions []int
	Branches  []Branch
	Element   *Element
}

// FindInteractions lists the pairwise clashes and unions, then the complete trines and
// directional triads, among the given branches.
func FindInteractions(branches []Branch) []Interaction {
	var out []Interaction
	for i := 0; i < len(branches); i++ {
		for j := i + 1; j < len(branches); j++ {
			a, b := branches[i], branches[j]
			switch {
			case Clashes(a, b):
				out = append(out, Interaction{Kind: InteractionClash, Positions: []int{i, j}, Branches: []Branch{a, b}})
			case Unites(a, b):
				out = append(out, Interaction{Kind: InteractionUnion, Positions: []int{i, j}, Branches: []Branch{a, b}})
			}
		}
	}
	out = appendTriads(out, InteractionTrine, Trines[:], branches)
	out = appendTriads(out, InteractionDirectional, Directions[:], branches)
	return out
}

func appendTriads(out []Interaction, kind InteractionKind, triads []Triad, branches []Branch) []Interaction {
	for _, t := range triads {
		positions := make([]int, 0, 3)
		for _, member := range t.Branches {
			for i, b := range branches {
				if b == member {
					positions = append(positions, i)
					break
				}
			}
		}
		if len(positions) == 3 {
			el := t.Element
			out = append(out, Interaction{Kind: kind, Positions: positions, Branches: t.Branches[:], Element: &el})
		}
	}
	return out
}
