package engine

// quarterTurns is the number of clockwise rotations that make a direction
// behave like a slide to the left.
func quarterTurns(direction Direction) (int, bool) {
	switch direction {
	case Left:
		return 0, true
	case Down:
		return 1, true
	case Right:
		return 2, true
	case Up:
		return 3, true
	}
	return 0, false
}

func quarterTurnsOf(direction Direction) int {
	turns, _ := quarterTurns(direction)
	return turns
}

// rotatePosition maps a cell of an n x n grid through `times` clockwise
// quarter turns, matching rotateClockwise.
func rotatePosition(p Position, n, times int) Position {
	times = ((times % 4) + 4) % 4
	for t := 0; t < times; t++ {
		p = Position{X: n - 1 - p.Y, Y: p.X}
	}
	return p
}

// rotateClockwise returns a new grid rotated a quarter turn clockwise `times` times.
// After one turn, row i of the result is column i of the input read bottom to top.
func rotateClockwise(grid Grid, times int) Grid {
	times = ((times % 4) + 4) % 4
	out := grid.Clone()
	n := len(grid)
	for t := 0; t < times; t++ {
		next := NewGrid(n)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				next[y][x] = out[n-1-x][y]
			}
		}
		out = next
	}
	return out
}

// normalize orients the grid so that `direction` becomes a slide to the left
func normalize(grid Grid, direction Direction) (Grid, bool) {
	turns, ok := quarterTurns(direction)
	if !ok {
		return nil, false
	}
	return rotateClockwise(grid, turns), true
}

// denormalize undoes normalize for the same direction
func denormalize(grid Grid, direction Direction) Grid {
	turns, _ := quarterTurns(direction)
	return rotateClockwise(grid, 4-turns)
}
