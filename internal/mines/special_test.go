package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecialBonusAndMalus(t *testing.T) {
	tests := []struct {
		name  string
		index int
		delta int
	}{
		{"bonus", 0, EventPoints},
		{"malus", 1, -EventPoints},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tr := Reduce(runningState(stripeBoard()), TapCell{coord(0, 0)}, depsWith(test.index, 0))

			assert.Equal(t, 10+test.delta, tr.State.Points)
			assert.Equal(t, test.delta, tr.State.BonusPoints)
			require.Len(t, tr.State.TileScorePulses, 1)
			pulse := tr.State.TileScorePulses[coord(0, 0)]
			assert.Equal(t, test.delta, pulse.PointsDelta)
			assert.Equal(t, TileScorePulseDuration, pulse.SecondsRemaining)
			assert.Nil(t, tr.State.SpecialModeNotice)
			assert.Equal(t, PlaySound{SoundSpecialSquareDiscovered}, tr.Events[0])
		})
	}
}

func TestSpecialRollNeedsZeroAdjacency(t *testing.T) {
	deps := depsWith(0, 0)
	tr := Reduce(runningState(stripeBoard()), TapCell{coord(1, 1)}, deps)

	assert.Equal(t, 1, tr.State.Points)
	assert.Zero(t, tr.State.SpecialRollTiles.Len())
	assert.NotContains(t, tr.Events, Event(PlaySound{SoundSpecialSquareDiscovered}))
}

func TestSpecialRollOncePerTile(t *testing.T) {
	deps := depsWith(0, 0)
	state := runningState(stripeBoard())
	state.SpecialRollTiles.Insert(coord(4, 0))

	tr := Reduce(state, TapCell{coord(4, 0)}, deps)

	assert.Equal(t, 10, tr.State.Points)
	assert.Zero(t, tr.State.BonusPoints)
	assert.Empty(t, tr.State.TileScorePulses)
}

func TestSpecialRollMissStillConsumesTile(t *testing.T) {
	tr := Reduce(runningState(stripeBoard()), TapCell{coord(0, 0)}, depsWith(0, SpecialTriggerProbability))

	assert.True(t, tr.State.SpecialRollTiles.Contains(coord(0, 0)))
	assert.Zero(t, tr.State.BonusPoints)
	assert.Nil(t, tr.State.SpecialModeNotice)
}

func TestXrayLifecycle(t *testing.T) {
	deps := depsWith(int(effectXray), 0)
	state := reduceAll(t, runningState(stripeBoard()), deps, TapCell{coord(0, 0)})

	require.NotNil(t, state.SpecialModeNotice)
	assert.Equal(t, StyleXray, state.SpecialModeNotice.Style)
	assert.Equal(t, "X-RAY CHARGING", state.SpecialModeNotice.Title)
	assert.Equal(t, 1.0, state.SpecialModeNotice.Progress())
	assert.False(t, state.CanInteract())

	// board input is blocked while the notice is up
	blocked := Reduce(state, TapCell{coord(3, 0)}, deps)
	assert.Equal(t, state, blocked.State)
	blocked = Reduce(state, ToggleFlag{coord(3, 0)}, deps)
	assert.Equal(t, state, blocked.State)

	for range SpecialModePreparationDuration {
		tr := Reduce(state, TimerTick{}, deps)
		assert.Empty(t, tr.Events)
		state = tr.State
	}
	assert.Nil(t, state.SpecialModeNotice)
	require.NotNil(t, state.ActivePower)
	assert.Equal(t, ActivePower{Kind: PowerXray, SecondsRemaining: XrayActiveDuration}, *state.ActivePower)
	assert.True(t, state.XrayActive())
	assert.Equal(t, SpecialModePreparationDuration, state.ElapsedSeconds)

	beeps := 0
	for range XrayActiveDuration {
		tr := Reduce(state, TimerTick{}, deps)
		beeps += len(tr.Events)
		state = tr.State
	}
	assert.Nil(t, state.ActivePower)
	assert.Equal(t, 3, beeps)
}

func TestSkipCountdownMatchesNaturalExpiry(t *testing.T) {
	for _, style := range []specialEffect{effectXray, effectSuperhero} {
		deps := depsWith(int(style), 0)
		noticed := reduceAll(t, runningState(stripeBoard()), deps, TapCell{coord(0, 0)})
		require.NotNil(t, noticed.SpecialModeNotice)

		waited := reduceAll(t, noticed, deps, ticks(SpecialModePreparationDuration)...)
		skipped := reduceAll(t, noticed, deps, SkipSpecialModeCountdown{})

		assert.Nil(t, skipped.SpecialModeNotice)
		assert.Equal(t, waited.ActivePower, skipped.ActivePower)
		assert.Equal(t, noticed.ElapsedSeconds, skipped.ElapsedSeconds)
	}

	// nothing to skip
	state := runningState(stripeBoard())
	tr := Reduce(state, SkipSpecialModeCountdown{}, testDeps())
	assert.Equal(t, state, tr.State)
}

func TestSuperheroFromRoll(t *testing.T) {
	deps := depsWith(int(effectSuperhero), 0)
	state := reduceAll(t, runningState(stripeBoard()), deps, TapCell{coord(0, 0)}, SkipSpecialModeCountdown{})
	require.True(t, state.SuperheroActive())

	tr := Reduce(state, TapCell{coord(2, 2)}, deps)
	assert.Equal(t, Running, tr.State.Phase)
	assert.True(t, tr.State.NeutralizedBombs.Contains(coord(2, 2)))
}

func TestFunnyBoomHunt(t *testing.T) {
	deps := depsWith(int(effectFunnyBoom), 0)
	state := reduceAll(t, runningState(stripeBoard()), deps, TapCell{coord(0, 0)})
	require.NotNil(t, state.SpecialModeNotice)
	require.Equal(t, StyleFunnyBoom, state.SpecialModeNotice.Style)

	state = reduceAll(t, state, deps, SkipSpecialModeCountdown{})
	overlay := state.FunnyBoomOverlay
	require.NotNil(t, overlay)
	assert.True(t, overlay.Interactive())
	assert.Equal(t, FunnyBoomPlayDuration, overlay.Phase.SecondsRemaining)
	assert.Equal(t, ClownCount(NewDimensions(5, 5)), overlay.ClownTiles.Len())
	assert.Equal(t, []Coordinate{
		coord(0, 4), coord(1, 0), coord(1, 1), coord(1, 2), coord(1, 3), coord(1, 4),
	}, overlay.ClownTiles.Sorted())

	// the regular board is frozen during the hunt
	blocked := Reduce(state, TapCell{coord(3, 0)}, deps)
	assert.Equal(t, state, blocked.State)

	hit := Reduce(state, TapFunnyBoomCell{coord(1, 0)}, deps)
	assert.Equal(t, state.Points+EventPoints, hit.State.Points)
	assert.Equal(t, state.BonusPoints+EventPoints, hit.State.BonusPoints)
	assert.True(t, hit.State.FunnyBoomOverlay.RevealedClowns.Contains(coord(1, 0)))
	assert.Equal(t, EventPoints, hit.State.TileScorePulses[coord(1, 0)].PointsDelta)
	assert.False(t, state.FunnyBoomOverlay.RevealedClowns.Contains(coord(1, 0)))

	again := Reduce(hit.State, TapFunnyBoomCell{coord(1, 0)}, deps)
	assert.Equal(t, hit.State, again.State)

	miss := Reduce(hit.State, TapFunnyBoomCell{coord(3, 3)}, deps)
	assert.True(t, miss.State.FunnyBoomOverlay.RevealedMisses.Contains(coord(3, 3)))
	assert.Equal(t, hit.State.Points, miss.State.Points)

	again = Reduce(miss.State, TapFunnyBoomCell{coord(3, 3)}, deps)
	assert.Equal(t, miss.State, again.State)

	beeps := 0
	state = miss.State
	for range FunnyBoomPlayDuration {
		tr := Reduce(state, TimerTick{}, deps)
		beeps += len(tr.Events)
		state = tr.State
	}
	assert.Nil(t, state.FunnyBoomOverlay)
	assert.Equal(t, 3, beeps)

	// clown taps without an overlay are ignored
	tr := Reduce(state, TapFunnyBoomCell{coord(1, 1)}, deps)
	assert.Equal(t, state, tr.State)
}

func TestFunnyBoomBriefingIsNotInteractive(t *testing.T) {
	deps := testDeps()
	state := reduceAll(t, runningState(stripeBoard()), deps, TapCell{coord(0, 0)})
	state.FunnyBoomOverlay = &FunnyBoomOverlay{
		ClownTiles:     NewCoordSet(coord(4, 4)),
		RevealedClowns: NewCoordSet(),
		RevealedMisses: NewCoordSet(),
		Phase:          FunnyBoomPhase{Kind: FunnyBoomBriefing, SecondsRemaining: 2},
	}

	tr := Reduce(state, TapFunnyBoomCell{coord(4, 4)}, deps)
	assert.Equal(t, state, tr.State)

	state = reduceAll(t, state, deps, TimerTick{})
	assert.True(t, state.FunnyBoomOverlay.Briefing())
	assert.Equal(t, 1, state.FunnyBoomOverlay.Phase.SecondsRemaining)

	state = reduceAll(t, state, deps, TimerTick{})
	assert.True(t, state.FunnyBoomOverlay.Interactive())
	assert.Equal(t, FunnyBoomPlayDuration, state.FunnyBoomOverlay.Phase.SecondsRemaining)
}

func TestForceSpecialMode(t *testing.T) {
	deps := testDeps()

	tr := Reduce(NewGameState(DefaultSettings), ForceSpecialMode{StyleSuperhero}, deps)
	require.NotNil(t, tr.State.Board)
	assert.Equal(t, Running, tr.State.Phase)
	assert.False(t, tr.State.Board.IsMine(DefaultSettings.Dimensions().Center()))
	require.NotNil(t, tr.State.SpecialModeNotice)
	assert.Equal(t, StyleSuperhero, tr.State.SpecialModeNotice.Style)
	assert.Zero(t, tr.State.RevealedTiles.Len())
	assert.Empty(t, tr.Events)

	// a running power is replaced by the new countdown
	state := runningState(stripeBoard())
	state.ActivePower = &ActivePower{Kind: PowerXray, SecondsRemaining: 5}
	tr = Reduce(state, ForceSpecialMode{StyleFunnyBoom}, deps)
	assert.Nil(t, tr.State.ActivePower)
	assert.Equal(t, StyleFunnyBoom, tr.State.SpecialModeNotice.Style)

	for _, phase := range []Phase{Won, Lost} {
		state := runningState(stripeBoard())
		state.Phase = phase
		tr := Reduce(state, ForceSpecialMode{StyleXray}, deps)
		assert.Equal(t, state, tr.State)
	}
}

func TestClownCount(t *testing.T) {
	assert.Equal(t, 6, ClownCount(NewDimensions(5, 5)))
	assert.Equal(t, 72, ClownCount(NewDimensions(20, 20)))
	assert.Equal(t, 4, ClownCount(NewDimensions(2, 2)))
}

func TestParseSpecialModeStyle(t *testing.T) {
	for _, style := range []SpecialModeStyle{StyleXray, StyleSuperhero, StyleFunnyBoom} {
		parsed, err := ParseSpecialModeStyle(style.String())
		require.NoError(t, err)
		assert.Equal(t, style, parsed)
	}
	_, err := ParseSpecialModeStyle("ninja")
	assert.Error(t, err)
}
