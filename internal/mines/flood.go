package mines

// FloodReveal returns alreadyRevealed plus every cell opened by revealing
// origin: safe, unflagged cells, cascading through zero-adjacency cells.
// The input set is not modified.
func FloodReveal(origin Coordinate, board *Board, alreadyRevealed, flagged CoordSet) CoordSet {
	revealed := alreadyRevealed.Clone()
	stack := []Coordinate{origin}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !board.dimensions.Contains(c) || revealed.Contains(c) || flagged.Contains(c) || board.IsMine(c) {
			continue
		}
		revealed.Insert(c)

		if board.AdjacentMines(c) != 0 {
			continue
		}
		for _, n := range board.Neighbors(c) {
			if !revealed.Contains(n) {
				stack = append(stack, n)
			}
		}
	}

	return revealed
}
