package mines

func tapCell(state GameState, c Coordinate, deps Dependencies) Transition {
	if !state.CanInteract() || state.FunnyBoomOverlay != nil {
		return unchanged(state)
	}
	if !state.Dimensions().Contains(c) || state.FlaggedTiles.Contains(c) {
		return unchanged(state)
	}

	next := state.Clone()
	var events []Event

	if next.Board == nil {
		// the layout does not exist before the first tap, so that tap is safe
		next.Board = GenerateBoard(next.Settings, c, deps)
		next.Phase = Running
	}
	board := next.Board

	if next.RevealedTiles.Contains(c) {
		return chordReveal(next, state, c, deps)
	}

	if board.IsMine(c) {
		if !next.SuperheroActive() {
			t := loseRound(next)
			t.Events = appendBoardStarted(state, t.State, t.Events)
			return t
		}
		next.RevealedTiles.Insert(c)
		next.NeutralizedBombs.Insert(c)
		next.FlaggedTiles.Remove(c)
		next, events = completeIfWon(next, events, deps)
		events = appendBoardStarted(state, next, events)
		return Transition{State: next, Events: events}
	}

	before := next.RevealedTiles
	next.RevealedTiles = FloodReveal(c, board, before, next.FlaggedTiles)
	newlyRevealed := next.RevealedTiles.Len() - before.Len()
	next.Points += newlyRevealed * RevealPoints

	if !before.Contains(c) && next.RevealedTiles.Contains(c) {
		events = maybeApplySpecialEffect(&next, c, deps, events)
	}

	next, events = completeIfWon(next, events, deps)
	events = appendBoardStarted(state, next, events)
	return Transition{State: next, Events: events}
}

// chordReveal opens every unflagged neighbour of a revealed numbered cell
// once exactly that many neighbours are flagged.
func chordReveal(next, previous GameState, c Coordinate, deps Dependencies) Transition {
	board := next.Board
	adjacent := board.AdjacentMines(c)
	if adjacent == 0 {
		return unchanged(previous)
	}

	neighbors := board.Neighbors(c)
	flagged := 0
	for _, n := range neighbors {
		if next.FlaggedTiles.Contains(n) {
			flagged++
		}
	}
	if flagged != adjacent {
		return unchanged(previous)
	}

	for _, n := range neighbors {
		if next.FlaggedTiles.Contains(n) || next.RevealedTiles.Contains(n) {
			continue
		}
		if board.IsMine(n) {
			if !next.SuperheroActive() {
				return loseRound(next)
			}
			next.RevealedTiles.Insert(n)
			next.NeutralizedBombs.Insert(n)
			continue
		}
		before := next.RevealedTiles.Len()
		next.RevealedTiles = FloodReveal(n, board, next.RevealedTiles, next.FlaggedTiles)
		next.Points += (next.RevealedTiles.Len() - before) * RevealPoints
	}

	var events []Event
	next, events = completeIfWon(next, events, deps)
	if len(events) == 0 && next.RevealedTiles.Len() == previous.RevealedTiles.Len() {
		return unchanged(previous)
	}
	return Transition{State: next, Events: events}
}

func toggleFlag(state GameState, c Coordinate) Transition {
	if !state.CanInteract() || state.FunnyBoomOverlay != nil {
		return unchanged(state)
	}
	if !state.Dimensions().Contains(c) || state.RevealedTiles.Contains(c) {
		return unchanged(state)
	}

	next := state.Clone()
	if next.FlaggedTiles.Remove(c) {
		return Transition{State: next}
	}
	next.FlaggedTiles.Insert(c)
	return Transition{State: next, Events: []Event{PlaySound{SoundFlagPlaced}}}
}

func tapFunnyBoomCell(state GameState, c Coordinate, deps Dependencies) Transition {
	if state.Phase != Running || state.FunnyBoomOverlay == nil || !state.FunnyBoomOverlay.Interactive() {
		return unchanged(state)
	}

	overlay := state.FunnyBoomOverlay
	if overlay.ClownTiles.Contains(c) {
		if overlay.RevealedClowns.Contains(c) {
			return unchanged(state)
		}
		next := state.Clone()
		next.FunnyBoomOverlay.RevealedClowns.Insert(c)
		next.Points += EventPoints
		next.BonusPoints += EventPoints
		enqueueTileScorePulse(&next, c, EventPoints, deps)
		return Transition{State: next}
	}

	if overlay.RevealedMisses.Contains(c) {
		return unchanged(state)
	}
	next := state.Clone()
	next.FunnyBoomOverlay.RevealedMisses.Insert(c)
	return Transition{State: next}
}

func completeIfWon(state GameState, events []Event, deps Dependencies) (GameState, []Event) {
	board := state.Board
	safeCells := board.Dimensions().CellCount() - board.MineCount()
	if state.RevealedSafeCells() < safeCells {
		return state, events
	}

	state.Phase = Won
	state.ActivePower = nil
	state.FunnyBoomOverlay = nil
	state.SpecialModeNotice = nil
	state.TileScorePulses = map[Coordinate]TileScorePulse{}
	state.PendingVictory = &PendingVictory{
		ID:             deps.NextID(),
		Points:         state.Points,
		ElapsedSeconds: state.ElapsedSeconds,
		TotalScore:     FinalScore(state.Points, state.ElapsedSeconds, board.Dimensions()),
	}

	return state, append(events, PlaySound{SoundVictory})
}

func loseRound(state GameState) Transition {
	state.Phase = Lost
	state.ActivePower = nil
	state.FunnyBoomOverlay = nil
	state.SpecialModeNotice = nil
	state.TileScorePulses = map[Coordinate]TileScorePulse{}
	state.PendingVictory = nil
	state.RevealedTiles.Union(state.Board.mines)
	state.ExplosionSequence++

	return Transition{
		State:  state,
		Events: []Event{PlaySound{SoundExplosion}, ScheduleLossCardReveal{}},
	}
}

func appendBoardStarted(previous, next GameState, events []Event) []Event {
	if previous.RevealedTiles.Len() != 0 || next.RevealedTiles.Len() == 0 {
		return events
	}
	return append(events, TrackBoardStarted{
		Difficulty: next.Settings.Difficulty,
		Dimensions: next.Dimensions(),
	})
}
