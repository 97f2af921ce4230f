package mines

// Action is anything the reducer accepts. The set is closed.
type Action interface {
	isAction()
}

type (
	StartNewRound struct{}

	SetDifficulty struct {
		Difficulty Difficulty
	}

	SetBoardSize struct {
		BoardSize BoardSize
	}

	// ForceSpecialMode skips the probability roll and starts the
	// preparation countdown for style right away.
	ForceSpecialMode struct {
		Style SpecialModeStyle
	}

	TapCell struct {
		Coordinate Coordinate
	}

	ToggleFlag struct {
		Coordinate Coordinate
	}

	TapFunnyBoomCell struct {
		Coordinate Coordinate
	}

	SkipSpecialModeCountdown struct{}

	TimerTick struct{}

	DismissVictoryPrompt struct{}

	ScoresLoaded struct {
		Scores []ScoreEntry
	}
)

func (StartNewRound) isAction()            {}
func (SetDifficulty) isAction()            {}
func (SetBoardSize) isAction()             {}
func (ForceSpecialMode) isAction()         {}
func (TapCell) isAction()                  {}
func (ToggleFlag) isAction()               {}
func (TapFunnyBoomCell) isAction()         {}
func (SkipSpecialModeCountdown) isAction() {}
func (TimerTick) isAction()                {}
func (DismissVictoryPrompt) isAction()     {}
func (ScoresLoaded) isAction()             {}
