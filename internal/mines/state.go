package mines

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

type Phase int8

const (
	Idle Phase = iota
	Running
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type PowerKind int8

const (
	PowerXray PowerKind = iota
	PowerSuperhero
)

func (k PowerKind) String() string {
	switch k {
	case PowerXray:
		return "xray"
	case PowerSuperhero:
		return "superhero"
	}
	return "unknown"
}

func (k PowerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ActivePower is a timed power. At most one is active at a time.
type ActivePower struct {
	Kind             PowerKind `json:"kind"`
	SecondsRemaining int       `json:"seconds_remaining"`
}

func (p ActivePower) Label() string {
	switch p.Kind {
	case PowerXray:
		return "X-Ray"
	case PowerSuperhero:
		return "Superhero"
	}
	return ""
}

type SpecialModeStyle int8

const (
	StyleXray SpecialModeStyle = iota
	StyleSuperhero
	StyleFunnyBoom
)

func (s SpecialModeStyle) String() string {
	switch s {
	case StyleXray:
		return "xray"
	case StyleSuperhero:
		return "superhero"
	case StyleFunnyBoom:
		return "funny_boom"
	}
	return "unknown"
}

func (s SpecialModeStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SpecialModeStyle) UnmarshalText(text []byte) error {
	style, err := ParseSpecialModeStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

func ParseSpecialModeStyle(s string) (SpecialModeStyle, error) {
	for _, style := range []SpecialModeStyle{StyleXray, StyleSuperhero, StyleFunnyBoom} {
		if style.String() == s {
			return style, nil
		}
	}
	return 0, fmt.Errorf("unknown special mode style %q", s)
}

// SpecialModeNotice is the preparation countdown shown before a rolled
// special mode activates.
type SpecialModeNotice struct {
	ID               uuid.UUID        `json:"id"`
	Style            SpecialModeStyle `json:"style"`
	Title            string           `json:"title"`
	Subtitle         string           `json:"subtitle"`
	Symbol           string           `json:"symbol"`
	TotalSeconds     int              `json:"total_seconds"`
	SecondsRemaining int              `json:"seconds_remaining"`
}

func (n SpecialModeNotice) Progress() float64 {
	if n.TotalSeconds <= 0 {
		return 0
	}
	return float64(n.SecondsRemaining) / float64(n.TotalSeconds)
}

type FunnyBoomPhaseKind int8

const (
	FunnyBoomBriefing FunnyBoomPhaseKind = iota
	FunnyBoomActive
)

func (k FunnyBoomPhaseKind) String() string {
	switch k {
	case FunnyBoomBriefing:
		return "briefing"
	case FunnyBoomActive:
		return "active"
	}
	return "unknown"
}

func (k FunnyBoomPhaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type FunnyBoomPhase struct {
	Kind             FunnyBoomPhaseKind `json:"kind"`
	SecondsRemaining int                `json:"seconds_remaining"`
}

// FunnyBoomOverlay is the clown hunt. ClownTiles is fixed at creation,
// RevealedClowns is a subset of it and RevealedMisses never intersects it.
type FunnyBoomOverlay struct {
	ClownTiles     CoordSet       `json:"clown_tiles"`
	RevealedClowns CoordSet       `json:"revealed_clowns"`
	RevealedMisses CoordSet       `json:"revealed_misses"`
	Phase          FunnyBoomPhase `json:"phase"`
}

func (o FunnyBoomOverlay) Interactive() bool {
	return o.Phase.Kind == FunnyBoomActive
}

func (o FunnyBoomOverlay) Briefing() bool {
	return o.Phase.Kind == FunnyBoomBriefing
}

func (o FunnyBoomOverlay) clone() *FunnyBoomOverlay {
	return &FunnyBoomOverlay{
		ClownTiles:     o.ClownTiles,
		RevealedClowns: o.RevealedClowns.Clone(),
		RevealedMisses: o.RevealedMisses.Clone(),
		Phase:          o.Phase,
	}
}

type TileScorePulse struct {
	ID               uuid.UUID  `json:"id"`
	Coordinate       Coordinate `json:"coordinate"`
	PointsDelta      int        `json:"points_delta"`
	SecondsRemaining int        `json:"seconds_remaining"`
}

func (p TileScorePulse) Label() string {
	if p.PointsDelta > 0 {
		return "+" + strconv.Itoa(p.PointsDelta)
	}
	return strconv.Itoa(p.PointsDelta)
}

type PendingVictory struct {
	ID             uuid.UUID `json:"id"`
	Points         int       `json:"points"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	TotalScore     int       `json:"total_score"`
}

// GameState is owned by whoever drives the reducer and is only ever
// replaced by the state of a Transition.
type GameState struct {
	Settings          Settings                      `json:"settings"`
	Board             *Board                        `json:"-"`
	Phase             Phase                         `json:"phase"`
	ElapsedSeconds    int                           `json:"elapsed_seconds"`
	Points            int                           `json:"points"`
	BonusPoints       int                           `json:"bonus_points"`
	RevealedTiles     CoordSet                      `json:"revealed_tiles"`
	FlaggedTiles      CoordSet                      `json:"flagged_tiles"`
	NeutralizedBombs  CoordSet                      `json:"neutralized_bombs"`
	SpecialRollTiles  CoordSet                      `json:"special_roll_tiles"`
	ActivePower       *ActivePower                  `json:"active_power,omitempty"`
	FunnyBoomOverlay  *FunnyBoomOverlay             `json:"funny_boom_overlay,omitempty"`
	SpecialModeNotice *SpecialModeNotice            `json:"special_mode_notice,omitempty"`
	TileScorePulses   map[Coordinate]TileScorePulse `json:"-"`
	PendingVictory    *PendingVictory               `json:"pending_victory,omitempty"`
	Scores            []ScoreEntry                  `json:"scores"`
	ExplosionSequence int                           `json:"explosion_sequence"`
}

func NewGameState(settings Settings) GameState {
	return GameState{
		Settings:         settings,
		Phase:            Idle,
		RevealedTiles:    NewCoordSet(),
		FlaggedTiles:     NewCoordSet(),
		NeutralizedBombs: NewCoordSet(),
		SpecialRollTiles: NewCoordSet(),
		TileScorePulses:  map[Coordinate]TileScorePulse{},
	}
}

// Clone copies every mutable collection. The board is immutable and shared.
func (s GameState) Clone() GameState {
	c := s
	c.RevealedTiles = s.RevealedTiles.Clone()
	c.FlaggedTiles = s.FlaggedTiles.Clone()
	c.NeutralizedBombs = s.NeutralizedBombs.Clone()
	c.SpecialRollTiles = s.SpecialRollTiles.Clone()
	if s.ActivePower != nil {
		p := *s.ActivePower
		c.ActivePower = &p
	}
	if s.FunnyBoomOverlay != nil {
		c.FunnyBoomOverlay = s.FunnyBoomOverlay.clone()
	}
	if s.SpecialModeNotice != nil {
		n := *s.SpecialModeNotice
		c.SpecialModeNotice = &n
	}
	c.TileScorePulses = maps.Clone(s.TileScorePulses)
	if c.TileScorePulses == nil {
		c.TileScorePulses = map[Coordinate]TileScorePulse{}
	}
	if s.PendingVictory != nil {
		v := *s.PendingVictory
		c.PendingVictory = &v
	}
	c.Scores = slices.Clone(s.Scores)
	return c
}

func (s GameState) Dimensions() Dimensions {
	if s.Board != nil {
		return s.Board.Dimensions()
	}
	return s.Settings.Dimensions()
}

func (s GameState) MineCount() int {
	if s.Board != nil {
		return s.Board.MineCount()
	}
	return s.Settings.MineCount()
}

// RemainingBombs counts neutralized bombs as found.
func (s GameState) RemainingBombs() int {
	return max(0, s.MineCount()-s.FlaggedTiles.Len()-s.NeutralizedBombs.Len())
}

func (s GameState) XrayActive() bool {
	return s.ActivePower != nil && s.ActivePower.Kind == PowerXray
}

func (s GameState) SuperheroActive() bool {
	return s.ActivePower != nil && s.ActivePower.Kind == PowerSuperhero
}

func (s GameState) PreparingSpecialMode() bool {
	return s.SpecialModeNotice != nil
}

func (s GameState) CanInteract() bool {
	return (s.Phase == Idle || s.Phase == Running) && !s.PreparingSpecialMode()
}

func (s GameState) CellsToWin() int {
	return s.Dimensions().CellCount() - s.MineCount()
}

func (s GameState) RevealedSafeCells() int {
	if s.Board == nil {
		return 0
	}
	n := 0
	for c := range s.RevealedTiles {
		if !s.Board.IsMine(c) {
			n++
		}
	}
	return n
}

// Pulses lists live pulses in row-major order of their cells.
func (s GameState) Pulses() []TileScorePulse {
	result := make([]TileScorePulse, 0, len(s.TileScorePulses))
	for _, p := range s.TileScorePulses {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b TileScorePulse) int {
		return compareCoordinates(a.Coordinate, b.Coordinate)
	})
	return result
}
