package mines

import "fmt"

type Difficulty string

const (
	Beginner Difficulty = "debutant"
	Amateur  Difficulty = "amateur"
	Expert   Difficulty = "expert"
	Veteran  Difficulty = "veteran"
	Migraine Difficulty = "migraine"
)

var Difficulties = []Difficulty{Beginner, Amateur, Expert, Veteran, Migraine}

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s || d.AnalyticsLabel() == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) Title() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Amateur:
		return "Amateur"
	case Expert:
		return "Expert"
	case Veteran:
		return "Veteran"
	case Migraine:
		return "Migraine"
	}
	return string(d)
}

func (d Difficulty) AnalyticsLabel() string {
	if d == Beginner {
		return "beginner"
	}
	return string(d)
}

// Density is the fraction of cells holding a mine.
func (d Difficulty) Density() float64 {
	switch d {
	case Beginner:
		return 0.09
	case Amateur:
		return 0.13
	case Expert:
		return 0.16
	case Veteran:
		return 0.19
	case Migraine:
		return 0.22
	}
	return Amateur.Density()
}

// BoardSize keys are kept stable for previously saved scores, which is why
// some titles no longer match them.
type BoardSize string

const (
	Tiny15x15        BoardSize = "tiny15x15"
	Rectangular20x15 BoardSize = "rectangular20x15"
	Classic20x20     BoardSize = "classic20x20"
	Large25x20       BoardSize = "large25x20"
	Monster35x23     BoardSize = "monster35x23"
	Phone10x14       BoardSize = "phone10x14"
	Phone12x18       BoardSize = "phone12x18"
	Phone14x22       BoardSize = "phone14x22"
)

var BoardSizes = []BoardSize{
	Tiny15x15, Rectangular20x15, Classic20x20, Large25x20,
	Monster35x23, Phone10x14, Phone12x18, Phone14x22,
}

var (
	RegularPresets = []BoardSize{Rectangular20x15, Large25x20, Monster35x23}
	PhonePresets   = []BoardSize{Phone10x14, Phone12x18, Phone14x22}
)

func ParseBoardSize(s string) (BoardSize, error) {
	for _, b := range BoardSizes {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown board size %q", s)
}

func (b BoardSize) Dimensions() Dimensions {
	switch b {
	case Tiny15x15:
		return NewDimensions(15, 15)
	case Rectangular20x15:
		return NewDimensions(15, 20)
	case Classic20x20:
		return NewDimensions(20, 20)
	case Large25x20:
		return NewDimensions(16, 22)
	case Monster35x23:
		return NewDimensions(18, 26)
	case Phone10x14:
		return NewDimensions(14, 10)
	case Phone12x18:
		return NewDimensions(18, 12)
	case Phone14x22:
		return NewDimensions(22, 14)
	}
	return Classic20x20.Dimensions()
}

func (b BoardSize) Title() string {
	d := b.Dimensions()
	return fmt.Sprintf("%d x %d", d.Columns, d.Rows)
}
