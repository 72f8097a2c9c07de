package engine

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Grid is a square matrix of tiles; a nil entry is an empty cell
type Grid [][]*Tile

// IDGenerator produces opaque unique tile identifiers
type IDGenerator func() string

// NewTileID returns a random tile identifier
func NewTileID() string {
	return uuid.NewString()
}

// NewGrid creates an empty size x size grid
func NewGrid(size int) Grid {
	grid := make(Grid, size)
	for i := range grid {
		grid[i] = make([]*Tile, size)
	}
	return grid
}

// GridFromValues builds a grid from a matrix of values where 0 means empty.
// Every non-zero value gets a fresh tile ID.
func GridFromValues(values [][]int, nextID IDGenerator) Grid {
	if nextID == nil {
		nextID = NewTileID
	}
	grid := NewGrid(len(values))
	for y, row := range values {
		for x, v := range row {
			if x >= len(grid) {
				break
			}
			if v != 0 {
				grid[y][x] = &Tile{Value: v, ID: nextID()}
			}
		}
	}
	return grid
}

// Size returns the grid dimension
func (g Grid) Size() int {
	return len(g)
}

// Values returns the tile values with 0 for empty cells
func (g Grid) Values() [][]int {
	values := make([][]int, len(g))
	for y, row := range g {
		values[y] = make([]int, len(row))
		for x, tile := range row {
			if tile != nil {
				values[y][x] = tile.Value
			}
		}
	}
	return values
}

// Clone copies the grid structure. Tiles are shared since they are immutable.
func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for y, row := range g {
		clone[y] = make([]*Tile, len(row))
		copy(clone[y], row)
	}
	return clone
}

// DeepClone copies the grid and every tile, for snapshots handed to other goroutines
func (g Grid) DeepClone() Grid {
	clone := make(Grid, len(g))
	for y, row := range g {
		clone[y] = make([]*Tile, len(row))
		for x, tile := range row {
			if tile == nil {
				continue
			}
			t := *tile
			if tile.MergedFrom != nil {
				t.MergedFrom = append([]string(nil), tile.MergedFrom...)
			}
			clone[y][x] = &t
		}
	}
	return clone
}

// Equal compares two grids by tile presence and value; identity is ignored
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(other[y]) {
			return false
		}
		for x := range g[y] {
			a, b := g[y][x], other[y][x]
			if (a == nil) != (b == nil) {
				return false
			}
			if a != nil && a.Value != b.Value {
				return false
			}
		}
	}
	return true
}

// EmptyCells lists empty positions in row-major order
func (g Grid) EmptyCells() []Position {
	var cells []Position
	for y, row := range g {
		for x, tile := range row {
			if tile == nil {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// TileCount counts the non-empty cells
func (g Grid) TileCount() int {
	count := 0
	for _, row := range g {
		for _, tile := range row {
			if tile != nil {
				count++
			}
		}
	}
	return count
}

// ValueSum adds up every tile value on the grid
func (g Grid) ValueSum() int {
	sum := 0
	for _, row := range g {
		for _, tile := range row {
			if tile != nil {
				sum += tile.Value
			}
		}
	}
	return sum
}

// MaxTile returns the highest tile value, or 0 for an empty grid
func (g Grid) MaxTile() int {
	best := 0
	for _, row := range g {
		for _, tile := range row {
			if tile != nil && tile.Value > best {
				best = tile.Value
			}
		}
	}
	return best
}

// String renders the grid values as rows, "." for empty cells
func (g Grid) String() string {
	var b strings.Builder
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, tile := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if tile == nil {
				b.WriteString(".")
				continue
			}
			b.WriteString(strconv.Itoa(tile.Value))
		}
	}
	return b.String()
}

// IsPowerOfTwo reports whether v is a power of two >= 2
func IsPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// ParseDirection converts user input into a Direction
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up:
		return Up, true
	case Down:
		return Down, true
	case Left:
		return Left, true
	case Right:
		return Right, true
	}
	return "", false
}
