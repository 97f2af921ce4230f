package mines

import (
	"fmt"
	"math"
)

type specialEffect int8

const (
	effectBonus specialEffect = iota
	effectMalus
	effectXray
	effectSuperhero
	effectFunnyBoom
)

// specialEffects is the uniform draw order; index i of NextIndex(5) picks
// specialEffects[i].
var specialEffects = []specialEffect{
	effectBonus, effectMalus, effectXray, effectSuperhero, effectFunnyBoom,
}

// maybeApplySpecialEffect rolls once per zero-adjacency cell the first time
// it is revealed by a direct tap.
func maybeApplySpecialEffect(state *GameState, tapped Coordinate, deps Dependencies, events []Event) []Event {
	if state.Board.AdjacentMines(tapped) != 0 {
		return events
	}
	if !state.SpecialRollTiles.Insert(tapped) {
		return events
	}
	if deps.Random.NextUnit() >= SpecialTriggerProbability {
		return events
	}

	events = append(events, PlaySound{SoundSpecialSquareDiscovered})
	state.ActivePower = nil
	state.FunnyBoomOverlay = nil
	state.SpecialModeNotice = nil

	switch specialEffects[deps.index(len(specialEffects))] {
	case effectBonus:
		state.Points += EventPoints
		state.BonusPoints += EventPoints
		enqueueTileScorePulse(state, tapped, EventPoints, deps)
	case effectMalus:
		state.Points -= EventPoints
		state.BonusPoints -= EventPoints
		enqueueTileScorePulse(state, tapped, -EventPoints, deps)
	case effectXray:
		state.SpecialModeNotice = newModeNotice(StyleXray, deps)
	case effectSuperhero:
		state.SpecialModeNotice = newModeNotice(StyleSuperhero, deps)
	case effectFunnyBoom:
		state.SpecialModeNotice = newModeNotice(StyleFunnyBoom, deps)
	}

	return events
}

func newModeNotice(style SpecialModeStyle, deps Dependencies) *SpecialModeNotice {
	n := &SpecialModeNotice{
		ID:               deps.NextID(),
		Style:            style,
		TotalSeconds:     SpecialModePreparationDuration,
		SecondsRemaining: SpecialModePreparationDuration,
	}
	switch style {
	case StyleXray:
		n.Title = "X-RAY CHARGING"
		n.Subtitle = fmt.Sprintf("Scan starts soon. Bombs will be visible for %ds.", XrayActiveDuration)
		n.Symbol = "eye.fill"
	case StyleSuperhero:
		n.Title = "SUIT POWERING UP"
		n.Subtitle = fmt.Sprintf("Armor starts soon. Bomb tiles are safe for %ds.", SuperheroActiveDuration)
		n.Symbol = "bolt.fill"
	case StyleFunnyBoom:
		n.Title = "CLOWN HUNT LOADING"
		n.Subtitle = fmt.Sprintf(
			"Stress-click the board to reveal clown heads (+%d each). Hunt lasts %ds.",
			EventPoints, FunnyBoomPlayDuration,
		)
		n.Symbol = "theatermasks.fill"
	}
	return n
}

func forceSpecialMode(state GameState, style SpecialModeStyle, deps Dependencies) Transition {
	if state.Phase != Idle && state.Phase != Running {
		return unchanged(state)
	}

	next := state.Clone()
	next.ActivePower = nil
	next.FunnyBoomOverlay = nil
	next.SpecialModeNotice = nil

	if next.Board == nil {
		next.Board = GenerateBoard(next.Settings, next.Settings.Dimensions().Center(), deps)
	}
	if next.Phase == Idle {
		next.Phase = Running
	}

	next.SpecialModeNotice = newModeNotice(style, deps)
	return Transition{State: next}
}

func skipSpecialModeCountdown(state GameState, deps Dependencies) Transition {
	if state.SpecialModeNotice == nil {
		return unchanged(state)
	}
	next := state.Clone()
	activatePreparedSpecialMode(&next, state.SpecialModeNotice.Style, deps)
	return Transition{State: next}
}

// activatePreparedSpecialMode starts the mode and clears the notice.
func activatePreparedSpecialMode(state *GameState, style SpecialModeStyle, deps Dependencies) {
	switch style {
	case StyleXray:
		state.ActivePower = &ActivePower{Kind: PowerXray, SecondsRemaining: XrayActiveDuration}
	case StyleSuperhero:
		state.ActivePower = &ActivePower{Kind: PowerSuperhero, SecondsRemaining: SuperheroActiveDuration}
	case StyleFunnyBoom:
		if state.Board != nil {
			state.FunnyBoomOverlay = newFunnyBoomOverlay(state.Board.Dimensions(), deps)
		}
	}
	state.SpecialModeNotice = nil
}

func ClownCount(dimensions Dimensions) int {
	cells := dimensions.CellCount()
	return min(max(MinClownCount, int(math.Round(float64(cells)*ClownDensity))), cells)
}

func newFunnyBoomOverlay(dimensions Dimensions, deps Dependencies) *FunnyBoomOverlay {
	candidates := dimensions.Coordinates()
	count := ClownCount(dimensions)

	clowns := make(CoordSet, count)
	for len(clowns) < count && len(candidates) > 0 {
		i := deps.index(len(candidates))
		clowns.Insert(candidates[i])
		candidates = append(candidates[:i], candidates[i+1:]...)
	}

	return &FunnyBoomOverlay{
		ClownTiles:     clowns,
		RevealedClowns: NewCoordSet(),
		RevealedMisses: NewCoordSet(),
		Phase:          FunnyBoomPhase{Kind: FunnyBoomActive, SecondsRemaining: FunnyBoomPlayDuration},
	}
}

// enqueueTileScorePulse replaces any live pulse on the same cell.
func enqueueTileScorePulse(state *GameState, c Coordinate, delta int, deps Dependencies) {
	state.TileScorePulses[c] = TileScorePulse{
		ID:               deps.NextID(),
		Coordinate:       c,
		PointsDelta:      delta,
		SecondsRemaining: TileScorePulseDuration,
	}
}
