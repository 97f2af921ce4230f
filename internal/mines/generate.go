package mines

import "slices"

// GenerateBoard places the settings' mines so that safe and, when the board
// has room for it, its neighbours stay clear. The same settings, safe cell
// and random sequence always give the same board.
func GenerateBoard(settings Settings, safe Coordinate, deps Dependencies) *Board {
	dimensions := settings.Dimensions()
	mines := placeMines(dimensions, settings.MineCount(), safe, deps)

	Log.Debug("generated board",
		"dimensions", dimensions.Label(),
		"mines", mines.Len(),
		"safe", safe.String(),
	)

	return NewBoard(dimensions, mines)
}

// placeMines draws without replacement. If the 3x3 zone around safe leaves
// too few candidates, only safe itself is excluded.
func placeMines(dimensions Dimensions, mineCount int, safe Coordinate, deps Dependencies) CoordSet {
	all := dimensions.Coordinates()

	forbidden := NewCoordSet(dimensions.Neighbors(safe)...)
	forbidden.Insert(safe)

	candidates := slices.DeleteFunc(slices.Clone(all), forbidden.Contains)
	if mineCount >= len(candidates) {
		candidates = slices.DeleteFunc(slices.Clone(all), func(c Coordinate) bool {
			return c == safe
		})
	}

	target := min(mineCount, len(candidates))
	mines := make(CoordSet, target)
	for mines.Len() < target && len(candidates) > 0 {
		i := deps.index(len(candidates))
		mines.Insert(candidates[i])
		candidates = slices.Delete(candidates, i, i+1)
	}
	return mines
}
