package mines

import (
	"fmt"
	"math"
)

type Coordinate struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Column)
}

type Dimensions struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// NewDimensions clamps both sides to a minimum of 2.
func NewDimensions(rows, columns int) Dimensions {
	return Dimensions{Rows: max(2, rows), Columns: max(2, columns)}
}

func (d Dimensions) CellCount() int {
	return d.Rows * d.Columns
}

func (d Dimensions) Contains(c Coordinate) bool {
	return 0 <= c.Row && c.Row < d.Rows && 0 <= c.Column && c.Column < d.Columns
}

// Coordinates lists every cell in row-major order.
func (d Dimensions) Coordinates() []Coordinate {
	result := make([]Coordinate, 0, d.CellCount())
	for row := range d.Rows {
		for column := range d.Columns {
			result = append(result, Coordinate{Row: row, Column: column})
		}
	}
	return result
}

func (d Dimensions) Neighbors(c Coordinate) []Coordinate {
	result := make([]Coordinate, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Coordinate{Row: c.Row + dr, Column: c.Column + dc}
			if d.Contains(n) {
				result = append(result, n)
			}
		}
	}
	return result
}

func (d Dimensions) Center() Coordinate {
	return Coordinate{Row: d.Rows / 2, Column: d.Columns / 2}
}

// Label formats dimensions the way boards are announced: columns first.
func (d Dimensions) Label() string {
	return fmt.Sprintf("%dx%d", d.Columns, d.Rows)
}

type Settings struct {
	Difficulty Difficulty `json:"difficulty"`
	BoardSize  BoardSize  `json:"board_size"`
}

var DefaultSettings = Settings{Difficulty: Amateur, BoardSize: Classic20x20}

func (s Settings) Dimensions() Dimensions {
	return s.BoardSize.Dimensions()
}

func (s Settings) MineCount() int {
	cells := s.Dimensions().CellCount()
	desired := int(math.Round(float64(cells) * s.Difficulty.Density()))
	return min(max(1, desired), max(1, cells-1))
}

// Board is immutable once built. Adjacency is stored for every cell,
// mines included.
type Board struct {
	dimensions Dimensions
	mines      CoordSet
	adjacent   map[Coordinate]int
}

func NewBoard(dimensions Dimensions, mines CoordSet) *Board {
	adjacent := make(map[Coordinate]int, dimensions.CellCount())
	for _, c := range dimensions.Coordinates() {
		count := 0
		for _, n := range dimensions.Neighbors(c) {
			if mines.Contains(n) {
				count++
			}
		}
		adjacent[c] = count
	}
	return &Board{
		dimensions: dimensions,
		mines:      mines.Clone(),
		adjacent:   adjacent,
	}
}

func (b *Board) Dimensions() Dimensions {
	return b.dimensions
}

func (b *Board) MineCount() int {
	return b.mines.Len()
}

// Mines returns a copy of the mine set.
func (b *Board) Mines() CoordSet {
	return b.mines.Clone()
}

func (b *Board) IsMine(c Coordinate) bool {
	return b.mines.Contains(c)
}

func (b *Board) AdjacentMines(c Coordinate) int {
	return b.adjacent[c]
}

func (b *Board) Neighbors(c Coordinate) []Coordinate {
	return b.dimensions.Neighbors(c)
}
