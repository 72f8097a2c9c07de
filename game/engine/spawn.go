package engine

import (
	"math/rand/v2"
)

// RandomSource is the subset of *rand.Rand the spawner needs.
// Tests substitute a scripted source.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// Spawner places new tiles into empty cells
type Spawner struct {
	Rand            RandomSource
	NextID          IDGenerator
	FourProbability float64
}

// NewSpawner creates a spawner with a freshly seeded random source
func NewSpawner(fourProbability float64) *Spawner {
	return &Spawner{
		Rand:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		NextID:          NewTileID,
		FourProbability: fourProbability,
	}
}

// Spawn returns a copy of grid with one new tile in a uniformly chosen empty
// cell: a 4 with probability FourProbability, otherwise a 2. A full grid is
// returned unchanged with a nil event.
func (s *Spawner) Spawn(grid Grid) (Grid, *SpawnEvent) {
	empty := grid.EmptyCells()
	if len(empty) == 0 {
		return grid, nil
	}

	pos := empty[s.Rand.IntN(len(empty))]
	value := 2
	if s.Rand.Float64() < s.FourProbability {
		value = 4
	}

	nextID := s.NextID
	if nextID == nil {
		nextID = NewTileID
	}
	tile := &Tile{Value: value, ID: nextID()}

	out := grid.Clone()
	out[pos.Y][pos.X] = tile

	return out, &SpawnEvent{Position: pos, Value: value, TileID: tile.ID}
}
