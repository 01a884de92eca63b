package bazi

import "fmt"

// Stage is one of the twelve life-cycle phases of a stem within a branch.
type Stage int

const (
	Birth Stage = iota
	Bath
	Cap
	Prime
	Peak
	Decline
	Sickness
	Death
	Tomb
	Extinction
	Gestation
	Nurture
)

var Stages = [12]Stage{Birth, Bath, Cap, Prime, Peak, Decline, Sickness, Death, Tomb, Extinction, Gestation, Nurture}

func (s Stage) Valid() bool { return s >= Birth && s <= Nurture }

func (s Stage) String() string {
	switch s {
	case Birth:
		return "Birth"
	case Bath:
		return "Bath"
	case Cap:
		return "Cap"
	case Prime:
		return "Prime"
	case Peak:
		return "Peak"
	case Decline:
		return "Decline"
	case Sickness:
		return "Sickness"
	case Death:
		return "Death"
	case Tomb:
		return "Tomb"
	case Extinction:
		return "Extinction"
	case Gestation:
		return "Gestation"
	case Nurture:
		return "Nurture"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

func (s Stage) Kanji() string {
	switch s {
	case Birth:
		return "長生"
	case Bath:
		return "沐浴"
	case Cap:
		return "冠帯"
	case Prime:
		return "建禄"
	case Peak:
		return "帝旺"
	case Decline:
		return "衰"
	case Sickness:
		return "病"
	case Death:
		return "死"
	case Tomb:
		return "墓"
	case Extinction:
		return "絶"
	case Gestation:
		return "胎"
	case Nurture:
		return "養"
	}
	return "?"
}

// Energy ranks the stage from 12 (Peak) down to 1 (Extinction).
func (s Stage) Energy() int {
	switch s {
	case Peak:
		return 12
	case Prime:
		return 11
	case Cap:
		return 10
	case Birth:
		return 9
	case Decline:
		return 8
	case Bath:
		return 7
	case Nurture:
		return 6
	case Tomb:
		return 5
	case Sickness:
		return 4
	case Gestation:
		return 3
	case Death:
		return 2
	case Extinction:
		return 1
	}
	return 0
}

type Vigor int

const (
	VigorWeak Vigor = iota
	VigorNeutral
	VigorStrong
)

func (v Vigor) String() string {
	switch v {
	case VigorStrong:
		return "strong"
	case VigorNeutral:
		return "neutral"
	}
	return "weak"
}

func (s Stage) Vigor() Vigor {
	switch s {
	case Peak, Prime, Cap:
		return VigorStrong
	case Birth, Decline, Bath, Nurture, Tomb:
		return VigorNeutral
	}
	return VigorWeak
}

// stageAnchor is the branch where the stem is born and the direction it travels.
func stageAnchor(s Stem) (Branch, int, error) {
	switch s {
	case Jia:
		return Pig, 1, nil
	case Yi:
		return Horse, -1, nil
	case Bing:
		return Tiger, 1, nil
	case Ding:
		return Rooster, -1, nil
	case Wu:
		return Tiger, 1, nil
	case Ji:
		return Rooster, -1, nil
	case Geng:
		return Snake, 1, nil
	case Xin:
		return Rat, -1, nil
	case Ren:
		return Monkey, 1, nil
	case Gui:
		return Rabbit, -1, nil
	}
	return 0, 0, fmt.Errorf("%w: no stage anchor for stem %d", ErrInvariantViolation, int(s))
}

// StageOf returns the life-cycle phase of stem s in branch b.
func StageOf(s Stem, b Branch) (Stage, error) {
	if !b.Valid() {
		return 0, fmt.Errorf("%w: branch %d out of range", ErrInvariantViolation, int(b))
	}
	anchor, dir, err := stageAnchor(s)
	if err != nil {
		return 0, err
	}
	return Stage(mod(dir*(int(b)-int(anchor)), branchCount)), nil
}
