package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickOnlyWhileRunning(t *testing.T) {
	for _, phase := range []Phase{Idle, Won, Lost} {
		state := NewGameState(DefaultSettings)
		state.Phase = phase
		tr := Reduce(state, TimerTick{}, testDeps())
		assert.Equal(t, state, tr.State, phase.String())
		assert.Empty(t, tr.Events)
	}

	state := runningState(stripeBoard())
	state = reduceAll(t, state, testDeps(), ticks(3)...)
	assert.Equal(t, 3, state.ElapsedSeconds)
}

func TestTileScorePulseExpires(t *testing.T) {
	deps := depsWith(int(effectBonus), 0)
	state := reduceAll(t, runningState(stripeBoard()), deps, TapCell{coord(0, 0)})
	require.Len(t, state.Pulses(), 1)
	assert.Equal(t, "+10", state.Pulses()[0].Label())

	state = reduceAll(t, state, deps, TimerTick{})
	require.Len(t, state.Pulses(), 1)
	assert.Equal(t, 1, state.Pulses()[0].SecondsRemaining)

	state = reduceAll(t, state, deps, TimerTick{})
	assert.Empty(t, state.Pulses())
}

func TestPulseOnSameCellIsReplaced(t *testing.T) {
	deps := testDeps()
	state := runningState(stripeBoard())
	enqueueTileScorePulse(&state, coord(0, 0), 10, deps)
	first := state.TileScorePulses[coord(0, 0)].ID
	enqueueTileScorePulse(&state, coord(0, 0), -10, deps)

	require.Len(t, state.TileScorePulses, 1)
	assert.NotEqual(t, first, state.TileScorePulses[coord(0, 0)].ID)
	assert.Equal(t, "-10", state.TileScorePulses[coord(0, 0)].Label())
}

func TestSingleCountdownBeepPerTick(t *testing.T) {
	state := runningState(stripeBoard())
	state.ActivePower = &ActivePower{Kind: PowerXray, SecondsRemaining: 4}
	state.FunnyBoomOverlay = &FunnyBoomOverlay{
		ClownTiles:     NewCoordSet(coord(0, 0)),
		RevealedClowns: NewCoordSet(),
		RevealedMisses: NewCoordSet(),
		Phase:          FunnyBoomPhase{Kind: FunnyBoomActive, SecondsRemaining: 4},
	}

	tr := Reduce(state, TimerTick{}, testDeps())
	assert.Equal(t, []Event{PlaySound{SoundCountdownBeep}}, tr.Events)
	assert.Equal(t, 3, tr.State.ActivePower.SecondsRemaining)
	assert.Equal(t, 3, tr.State.FunnyBoomOverlay.Phase.SecondsRemaining)
}

func TestNoBeepAboveThreeSeconds(t *testing.T) {
	state := runningState(stripeBoard())
	state.ActivePower = &ActivePower{Kind: PowerSuperhero, SecondsRemaining: 5}

	tr := Reduce(state, TimerTick{}, testDeps())
	assert.Empty(t, tr.Events)
	assert.Equal(t, 4, tr.State.ActivePower.SecondsRemaining)
}

func TestPowerExpiresSilently(t *testing.T) {
	state := runningState(stripeBoard())
	state.ActivePower = &ActivePower{Kind: PowerSuperhero, SecondsRemaining: 1}

	tr := Reduce(state, TimerTick{}, testDeps())
	assert.Empty(t, tr.Events)
	assert.Nil(t, tr.State.ActivePower)
}

func TestFinalCountdown(t *testing.T) {
	assert.False(t, finalCountdown(5, 4))
	assert.True(t, finalCountdown(4, 3))
	assert.True(t, finalCountdown(2, 1))
	assert.False(t, finalCountdown(1, 0))
	assert.False(t, finalCountdown(3, 3))
}

func TestFinalScore(t *testing.T) {
	d := NewDimensions(20, 20)
	assert.Equal(t, 100*100+1200, FinalScore(100, 0, d))
	assert.Equal(t, 100*100+1200-50*5, FinalScore(100, 50, d))
	assert.Equal(t, 100*100, FinalScore(100, 1000, d))
	assert.Equal(t, 0, FinalScore(-50, 1000, d))
}
