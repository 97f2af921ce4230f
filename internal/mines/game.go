package mines

import "log/slog"

var Log *slog.Logger = slog.Default()

// Reduce maps (state, action) to the next state and the side effects the
// driver should run. It never mutates state and never calls out; given the
// same inputs and dependency outputs it returns the same transition.
func Reduce(state GameState, action Action, deps Dependencies) Transition {
	switch a := action.(type) {
	case StartNewRound:
		return Transition{State: resetRound(state)}

	case SetDifficulty:
		next := state.Clone()
		next.Settings.Difficulty = a.Difficulty
		return Transition{State: resetRound(next)}

	case SetBoardSize:
		next := state.Clone()
		next.Settings.BoardSize = a.BoardSize
		return Transition{State: resetRound(next)}

	case ForceSpecialMode:
		return forceSpecialMode(state, a.Style, deps)

	case TapCell:
		return tapCell(state, a.Coordinate, deps)

	case ToggleFlag:
		return toggleFlag(state, a.Coordinate)

	case TapFunnyBoomCell:
		return tapFunnyBoomCell(state, a.Coordinate, deps)

	case SkipSpecialModeCountdown:
		return skipSpecialModeCountdown(state, deps)

	case TimerTick:
		return tick(state, deps)

	case DismissVictoryPrompt:
		if state.PendingVictory == nil {
			return unchanged(state)
		}
		next := state.Clone()
		next.PendingVictory = nil
		return Transition{State: next}

	case ScoresLoaded:
		next := state.Clone()
		next.Scores = TopTen(a.Scores)
		return Transition{State: next}
	}

	Log.Warn("ignoring unknown action", slog.Any("action", action))
	return unchanged(state)
}

// resetRound keeps settings, scores and the explosion counter.
func resetRound(state GameState) GameState {
	next := NewGameState(state.Settings)
	next.Scores = state.Scores
	next.ExplosionSequence = state.ExplosionSequence
	return next
}
