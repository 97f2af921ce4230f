package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionsClamp(t *testing.T) {
	d := NewDimensions(0, 1)
	assert.Equal(t, Dimensions{Rows: 2, Columns: 2}, d)
	assert.Equal(t, 4, d.CellCount())
	assert.Len(t, d.Coordinates(), 4)
	assert.True(t, d.Contains(coord(1, 1)))
	assert.False(t, d.Contains(coord(2, 0)))
	assert.False(t, d.Contains(coord(0, -1)))
}

func TestNeighbors(t *testing.T) {
	d := NewDimensions(3, 4)
	assert.Len(t, d.Neighbors(coord(0, 0)), 3)
	assert.Len(t, d.Neighbors(coord(0, 1)), 5)
	assert.Len(t, d.Neighbors(coord(1, 1)), 8)
	assert.NotContains(t, d.Neighbors(coord(1, 1)), coord(1, 1))
}

func TestBoardSizePresets(t *testing.T) {
	tests := []struct {
		size  BoardSize
		title string
		rows  int
		cols  int
	}{
		{Tiny15x15, "15 x 15", 15, 15},
		{Rectangular20x15, "20 x 15", 15, 20},
		{Classic20x20, "20 x 20", 20, 20},
		{Large25x20, "22 x 16", 16, 22},
		{Monster35x23, "26 x 18", 18, 26},
		{Phone10x14, "10 x 14", 14, 10},
		{Phone12x18, "12 x 18", 18, 12},
		{Phone14x22, "14 x 22", 22, 14},
	}
	for _, test := range tests {
		t.Run(string(test.size), func(t *testing.T) {
			assert.Equal(t, test.title, test.size.Title())
			assert.Equal(t, Dimensions{Rows: test.rows, Columns: test.cols}, test.size.Dimensions())
			parsed, err := ParseBoardSize(string(test.size))
			require.NoError(t, err)
			assert.Equal(t, test.size, parsed)
		})
	}

	_, err := ParseBoardSize("huge")
	assert.Error(t, err)
}

func TestMineCount(t *testing.T) {
	// 400 cells
	assert.Equal(t, 36, Settings{Beginner, Classic20x20}.MineCount())
	assert.Equal(t, 52, Settings{Amateur, Classic20x20}.MineCount())
	assert.Equal(t, 64, Settings{Expert, Classic20x20}.MineCount())
	assert.Equal(t, 76, Settings{Veteran, Classic20x20}.MineCount())
	assert.Equal(t, 88, Settings{Migraine, Classic20x20}.MineCount())
	// 140 cells * 0.09 = 12.6
	assert.Equal(t, 13, Settings{Beginner, Phone10x14}.MineCount())
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("beginner")
	require.NoError(t, err)
	assert.Equal(t, Beginner, d)

	d, err = ParseDifficulty("migraine")
	require.NoError(t, err)
	assert.Equal(t, Migraine, d)

	_, err = ParseDifficulty("nightmare")
	assert.Error(t, err)
}

func TestNewBoardAdjacency(t *testing.T) {
	board := NewBoard(NewDimensions(3, 3), NewCoordSet(coord(0, 0), coord(2, 2)))

	assert.Equal(t, 2, board.MineCount())
	assert.Equal(t, 2, board.AdjacentMines(coord(1, 1)))
	assert.Equal(t, 1, board.AdjacentMines(coord(0, 1)))
	assert.Equal(t, 0, board.AdjacentMines(coord(0, 2)))
	assert.Equal(t, 0, board.AdjacentMines(coord(0, 0)))
	for _, c := range board.Dimensions().Coordinates() {
		_, ok := board.adjacent[c]
		assert.True(t, ok, "missing adjacency for %v", c)
	}
}

func TestGenerateBoardKeepsSafeZoneClear(t *testing.T) {
	t.Parallel()

	deps := Dependencies{Random: NewSeededRandom(1, 2)}
	safe := coord(5, 7)
	board := GenerateBoard(DefaultSettings, safe, deps)

	assert.Equal(t, DefaultSettings.MineCount(), board.MineCount())
	assert.False(t, board.IsMine(safe))
	for _, n := range board.Neighbors(safe) {
		assert.False(t, board.IsMine(n), "neighbour %v is mined", n)
	}
	assert.Equal(t, 0, board.AdjacentMines(safe))
}

func TestGenerateBoardIsReproducible(t *testing.T) {
	t.Parallel()

	safe := coord(0, 0)
	a := GenerateBoard(DefaultSettings, safe, Dependencies{Random: NewSeededRandom(7, 9)})
	b := GenerateBoard(DefaultSettings, safe, Dependencies{Random: NewSeededRandom(7, 9)})

	assert.Equal(t, a.Mines().Sorted(), b.Mines().Sorted())
}

func TestGenerateBoardFirstCandidates(t *testing.T) {
	// always drawing index 0 takes candidates in row-major order
	d := NewDimensions(4, 4)
	mines := placeMines(d, 3, coord(0, 0), testDeps())

	assert.Equal(t, []Coordinate{coord(0, 2), coord(0, 3), coord(1, 2)}, mines.Sorted())
}

func TestPlaceMinesFallsBackOnCrowdedBoards(t *testing.T) {
	d := NewDimensions(3, 3)
	safe := coord(1, 1)

	// the 3x3 zone around the centre covers the whole board
	mines := placeMines(d, 8, safe, testDeps())
	assert.Equal(t, 8, mines.Len())
	assert.False(t, mines.Contains(safe))

	// asking for more than fits still leaves safe clear
	mines = placeMines(d, 20, safe, testDeps())
	assert.Equal(t, 8, mines.Len())
	assert.False(t, mines.Contains(safe))
}

func TestFirstTapIsAlwaysSafe(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	for _, size := range BoardSizes {
		for _, difficulty := range Difficulties {
			settings := Settings{Difficulty: difficulty, BoardSize: size}
			t.Run(string(size)+"/"+string(difficulty), func(t *testing.T) {
				t.Parallel()
				deps := Dependencies{Random: NewSeededRandom(1, 2)}
				for _, c := range settings.Dimensions().Coordinates() {
					state := Reduce(NewGameState(settings), TapCell{c}, deps).State
					require.NotNil(t, state.Board)
					assert.False(t, state.Board.IsMine(c))
					assert.True(t, state.RevealedTiles.Contains(c))
					assert.NotEqual(t, Lost, state.Phase)
				}
			})
		}
	}
}
