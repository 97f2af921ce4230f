package mines

type SoundEffect int8

const (
	SoundExplosion SoundEffect = iota
	SoundSpecialSquareDiscovered
	SoundVictory
	SoundCountdownBeep
	SoundFlagPlaced
)

func (e SoundEffect) String() string {
	switch e {
	case SoundExplosion:
		return "explosion"
	case SoundSpecialSquareDiscovered:
		return "special_square_discovered"
	case SoundVictory:
		return "victory"
	case SoundCountdownBeep:
		return "countdown_beep"
	case SoundFlagPlaced:
		return "flag_placed"
	}
	return "unknown"
}

// Event describes a side effect for the driver to run. The reducer never
// runs them itself.
type Event interface {
	isEvent()
}

type (
	PlaySound struct {
		Effect SoundEffect
	}

	ScheduleLossCardReveal struct{}

	// TrackBoardStarted is emitted once per round, on the first reveal.
	TrackBoardStarted struct {
		Difficulty Difficulty
		Dimensions Dimensions
	}
)

func (PlaySound) isEvent()              {}
func (ScheduleLossCardReveal) isEvent() {}
func (TrackBoardStarted) isEvent()      {}

func (t TrackBoardStarted) SizeLabel() string {
	return t.Dimensions.Label()
}

type Transition struct {
	State  GameState
	Events []Event
}

// unchanged is the result of every guarded no-op.
func unchanged(state GameState) Transition {
	return Transition{State: state}
}
