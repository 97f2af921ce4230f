package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/funnyboom/internal/mines"
)

func TestParseCommand(t *testing.T) {
	name, args, err := parseCommand("  TAP row=3 column=4 ")
	require.NoError(t, err)
	assert.Equal(t, "tap", name)
	assert.Equal(t, "3", args.Get("row"))
	assert.Equal(t, "4", args.Get("column"))

	name, args, err = parseCommand("win nickname=ada%20l")
	require.NoError(t, err)
	assert.Equal(t, "win", name)
	assert.Equal(t, "ada l", args.Get("nickname"))

	name, args, err = parseCommand("flag?row=0&column=7")
	require.NoError(t, err)
	assert.Equal(t, "flag", name)
	assert.Equal(t, "0", args.Get("row"))
	assert.Equal(t, "7", args.Get("column"))

	name, args, err = parseCommand("new")
	require.NoError(t, err)
	assert.Equal(t, "new", name)
	assert.Empty(t, args)

	name, _, err = parseCommand("   ")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestCommandAction(t *testing.T) {
	tests := []struct {
		line   string
		action mines.Action
	}{
		{"tap?row=1&column=2", mines.TapCell{Coordinate: mines.Coordinate{Row: 1, Column: 2}}},
		{"tap row=1 column=2", mines.TapCell{Coordinate: mines.Coordinate{Row: 1, Column: 2}}},
		{"flag row=0&column=5", mines.ToggleFlag{Coordinate: mines.Coordinate{Row: 0, Column: 5}}},
		{"clown row=4 column=4", mines.TapFunnyBoomCell{Coordinate: mines.Coordinate{Row: 4, Column: 4}}},
		{"skip", mines.SkipSpecialModeCountdown{}},
		{"new", mines.StartNewRound{}},
		{"dismiss", mines.DismissVictoryPrompt{}},
		{"difficulty level=expert", mines.SetDifficulty{Difficulty: mines.Expert}},
		{"difficulty?level=migraine", mines.SetDifficulty{Difficulty: mines.Migraine}},
		{"size preset=classic20x20", mines.SetBoardSize{BoardSize: mines.Classic20x20}},
		{"force style=" + mines.StyleFunnyBoom.String(), mines.ForceSpecialMode{Style: mines.StyleFunnyBoom}},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			name, args, err := parseCommand(test.line)
			require.NoError(t, err)
			action, ok, err := commandAction(name, args)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, test.action, action)
		})
	}
}

func TestCommandActionErrors(t *testing.T) {
	for _, line := range []string{
		"tap row=1",
		"tap row=one column=2",
		"difficulty level=impossible",
		"size preset=huge",
		"force style=ninja",
	} {
		name, args, err := parseCommand(line)
		require.NoError(t, err)
		_, ok, err := commandAction(name, args)
		assert.True(t, ok, line)
		assert.Error(t, err, line)
	}

	_, ok, err := commandAction("state", nil)
	assert.False(t, ok)
	assert.NoError(t, err)
}
