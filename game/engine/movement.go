package engine

// Transition slides every tile of grid toward direction and merges equal
// neighbours. The input grid is not modified. Each row (or column for
// vertical directions) is handled independently by the same left-slide
// algorithm after the grid is rotated into left orientation.
//
// nextID supplies identifiers for merged tiles; nil uses NewTileID.
func Transition(grid Grid, direction Direction, nextID IDGenerator) TransitionResult {
	if nextID == nil {
		nextID = NewTileID
	}

	oriented, ok := normalize(grid, direction)
	if !ok {
		return TransitionResult{Grid: grid.Clone()}
	}

	n := len(oriented)
	turnsBack := 4 - quarterTurnsOf(direction)
	var events []MergeEvent
	scoreDelta := 0

	for y := 0; y < n; y++ {
		row, delta, merges := slideRowLeft(oriented[y], n, nextID)
		oriented[y] = row
		scoreDelta += delta
		for _, m := range merges {
			// slideRowLeft reports the merge index in X
			m.Position = rotatePosition(Position{X: m.Position.X, Y: y}, n, turnsBack)
			events = append(events, m)
		}
	}

	result := denormalize(oriented, direction)
	if events == nil {
		events = []MergeEvent{}
	}

	return TransitionResult{
		Grid:       result,
		ScoreDelta: scoreDelta,
		Moved:      !result.Equal(grid),
		Merges:     events,
	}
}

// slideRowLeft compacts a row toward index 0 and merges equal pairs in one
// left-to-right pass. A tile produced by a merge is never merged again in the
// same pass.
func slideRowLeft(row []*Tile, n int, nextID IDGenerator) ([]*Tile, int, []MergeEvent) {
	compacted := make([]*Tile, 0, n)
	for _, tile := range row {
		if tile != nil {
			compacted = append(compacted, tile)
		}
	}

	out := make([]*Tile, 0, n)
	var merges []MergeEvent
	delta := 0

	for i := 0; i < len(compacted); i++ {
		current := compacted[i]
		if i+1 < len(compacted) && compacted[i+1].Value == current.Value {
			next := compacted[i+1]
			tile := &Tile{
				Value:      current.Value * 2,
				ID:         nextID(),
				MergedFrom: []string{current.ID, next.ID},
			}
			out = append(out, tile)
			delta += tile.Value
			merges = append(merges, MergeEvent{
				Value:      tile.Value,
				TileID:     tile.ID,
				MergedFrom: tile.MergedFrom,
			})
			i++ // skip the consumed partner; the new tile is never revisited
			continue
		}
		out = append(out, current)
	}

	for len(out) < n {
		out = append(out, nil)
	}

	return out, delta, merges
}

// HasLegalMove reports whether any direction would change the grid. That
// holds when the grid has at least one tile and either a cell is empty or two
// orthogonal neighbours hold the same value. An all-empty grid has no legal move.
func HasLegalMove(grid Grid) bool {
	n := len(grid)
	sawEmpty, tiles := false, 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			tile := grid[y][x]
			if tile == nil {
				sawEmpty = true
				continue
			}
			tiles++
			if x+1 < n && grid[y][x+1] != nil && grid[y][x+1].Value == tile.Value {
				return true
			}
			if y+1 < n && grid[y+1][x] != nil && grid[y+1][x].Value == tile.Value {
				return true
			}
		}
	}
	return sawEmpty && tiles > 0
}

// PossibleMoves returns the directions that would move the grid
func PossibleMoves(grid Grid) []Direction {
	var moves []Direction
	for _, dir := range Directions {
		if Transition(grid, dir, noID).Moved {
			moves = append(moves, dir)
		}
	}
	return moves
}

// noID is used for throwaway transitions whose tiles are never kept
func noID() string {
	return ""
}
