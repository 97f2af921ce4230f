package session

import (
	"strconv"
	"strings"

	"github.com/vancomm/funnyboom/internal/mines"
)

// Cell glyphs used by Snapshot.Rows.
const (
	GlyphHidden      = '#'
	GlyphFlag        = 'F'
	GlyphMine        = '*'
	GlyphXrayMine    = 'x'
	GlyphNeutralized = 'N'
	GlyphEmpty       = '.'
	GlyphClown       = 'C'
	GlyphMiss        = 'o'
)

type Snapshot struct {
	Phase           mines.Phase              `json:"phase"`
	Difficulty      string                   `json:"difficulty"`
	BoardSize       string                   `json:"board_size"`
	Rows            []string                 `json:"rows"`
	Mines           int                      `json:"mines"`
	RemainingBombs  int                      `json:"remaining_bombs"`
	ElapsedSeconds  int                      `json:"elapsed_seconds"`
	Points          int                      `json:"points"`
	BonusPoints     int                      `json:"bonus_points"`
	Power           string                   `json:"power,omitempty"`
	PowerSeconds    int                      `json:"power_seconds,omitempty"`
	Notice          *mines.SpecialModeNotice `json:"notice,omitempty"`
	FunnyBoom       *FunnyBoomView           `json:"funny_boom,omitempty"`
	Pulses          []PulseView              `json:"pulses,omitempty"`
	PendingVictory  *mines.PendingVictory    `json:"pending_victory,omitempty"`
	LossCardVisible bool                     `json:"loss_card_visible"`
	Scores          []mines.ScoreEntry       `json:"scores"`
}

type FunnyBoomView struct {
	Phase            string `json:"phase"`
	SecondsRemaining int    `json:"seconds_remaining"`
	Clowns           int    `json:"clowns"`
	Found            int    `json:"found"`
}

type PulseView struct {
	Coordinate mines.Coordinate `json:"coordinate"`
	Label      string           `json:"label"`
}

func NewSnapshot(state mines.GameState, lossCardVisible bool) Snapshot {
	snap := Snapshot{
		Phase:           state.Phase,
		Difficulty:      state.Settings.Difficulty.Title(),
		BoardSize:       state.Settings.BoardSize.Title(),
		Rows:            renderRows(state),
		Mines:           state.MineCount(),
		RemainingBombs:  state.RemainingBombs(),
		ElapsedSeconds:  state.ElapsedSeconds,
		Points:          state.Points,
		BonusPoints:     state.BonusPoints,
		Notice:          state.SpecialModeNotice,
		PendingVictory:  state.PendingVictory,
		LossCardVisible: lossCardVisible,
		Scores:          state.Scores,
	}
	if p := state.ActivePower; p != nil {
		snap.Power = p.Label()
		snap.PowerSeconds = p.SecondsRemaining
	}
	if o := state.FunnyBoomOverlay; o != nil {
		snap.FunnyBoom = &FunnyBoomView{
			Phase:            o.Phase.Kind.String(),
			SecondsRemaining: o.Phase.SecondsRemaining,
			Clowns:           o.ClownTiles.Len(),
			Found:            o.RevealedClowns.Len(),
		}
	}
	for _, p := range state.Pulses() {
		snap.Pulses = append(snap.Pulses, PulseView{Coordinate: p.Coordinate, Label: p.Label()})
	}
	return snap
}

func renderRows(state mines.GameState) []string {
	dims := state.Dimensions()
	rows := make([]string, dims.Rows)
	var b strings.Builder
	for row := range dims.Rows {
		b.Reset()
		for column := range dims.Columns {
			b.WriteByte(glyph(state, mines.Coordinate{Row: row, Column: column}))
		}
		rows[row] = b.String()
	}
	return rows
}

func glyph(state mines.GameState, c mines.Coordinate) byte {
	if o := state.FunnyBoomOverlay; o != nil {
		switch {
		case o.RevealedClowns.Contains(c):
			return GlyphClown
		case o.RevealedMisses.Contains(c):
			return GlyphMiss
		}
	}

	board := state.Board
	switch {
	case board == nil:
		if state.FlaggedTiles.Contains(c) {
			return GlyphFlag
		}
		return GlyphHidden
	case state.NeutralizedBombs.Contains(c):
		return GlyphNeutralized
	case state.RevealedTiles.Contains(c):
		if board.IsMine(c) {
			return GlyphMine
		}
		if n := board.AdjacentMines(c); n > 0 {
			return strconv.Itoa(n)[0]
		}
		return GlyphEmpty
	case state.FlaggedTiles.Contains(c):
		return GlyphFlag
	case state.XrayActive() && board.IsMine(c):
		return GlyphXrayMine
	}
	return GlyphHidden
}
