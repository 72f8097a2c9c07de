package strategy

import (
	"fmt"
	"log"
	"sort"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
)

// Strategy picks the next direction for a grid. ok is false when no
// direction would move the grid.
type Strategy interface {
	Name() string
	NextMove(grid engine.Grid) (dir engine.Direction, ok bool)
}

// New returns a strategy by name: greedy, corner, or random
func New(name string, rnd engine.RandomSource) (Strategy, error) {
	switch name {
	case "", "greedy":
		return Greedy{}, nil
	case "corner":
		return Corner{}, nil
	case "random":
		return NewRandom(rnd), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (use greedy, corner, or random)", name)
}

// Names lists the available strategies
func Names() []string {
	return []string{"greedy", "corner", "random"}
}

// Greedy takes the move with the highest immediate score, preferring moves
// that leave more empty cells, then the fixed order down, left, right, up.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

// preference keeps big tiles gathered in the bottom-left corner
var preference = []engine.Direction{engine.Down, engine.Left, engine.Right, engine.Up}

type candidate struct {
	dir   engine.Direction
	delta int
	empty int
	rank  int
}

func (Greedy) NextMove(grid engine.Grid) (engine.Direction, bool) {
	var candidates []candidate
	for rank, dir := range preference {
		result := engine.Transition(grid, dir, noID)
		if !result.Moved {
			continue
		}
		candidates = append(candidates, candidate{
			dir:   dir,
			delta: result.ScoreDelta,
			empty: len(result.Grid.EmptyCells()),
			rank:  rank,
		})
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.delta != b.delta {
			return a.delta > b.delta
		}
		if a.empty != b.empty {
			return a.empty > b.empty
		}
		return a.rank < b.rank
	})
	return candidates[0].dir, true
}

// Corner always tries down, left, right, up in that order
type Corner struct{}

func (Corner) Name() string { return "corner" }

func (Corner) NextMove(grid engine.Grid) (engine.Direction, bool) {
	for _, dir := range preference {
		if engine.Transition(grid, dir, noID).Moved {
			return dir, true
		}
	}
	return "", false
}

// Random picks uniformly among the moving directions
type Random struct {
	rnd engine.RandomSource
}

// NewRandom creates a random strategy; nil uses a freshly seeded source
func NewRandom(rnd engine.RandomSource) *Random {
	if rnd == nil {
		rnd = engine.NewSpawner(0).Rand
	}
	return &Random{rnd: rnd}
}

func (r *Random) Name() string { return "random" }

func (r *Random) NextMove(grid engine.Grid) (engine.Direction, bool) {
	moves := engine.PossibleMoves(grid)
	if len(moves) == 0 {
		return "", false
	}
	return moves[r.rnd.IntN(len(moves))], true
}

func noID() string { return "" }

// Summary describes one finished game
type Summary struct {
	Strategy  string           `json:"strategy"`
	Score     int              `json:"score"`
	MaxTile   int              `json:"max_tile"`
	Moves     int              `json:"moves"`
	EndReason engine.EndReason `json:"end_reason"`
}

// Play runs a started engine to the end. movesPerSecond converts turns into
// clock ticks so the time limit applies; 0 ignores the clock and plays until
// no move is left. onMove, if set, is called after every turn.
func Play(eng *engine.GameEngine, s Strategy, movesPerSecond int, onMove func(engine.MoveOutcome)) Summary {
	turns := 0
	for !eng.IsGameOver() {
		dir, ok := s.NextMove(eng.GetState().Grid)
		if !ok {
			// A running game always has a move; this only guards a broken strategy
			log.Printf("[AUTOPLAY] %s found no move on a running game", s.Name())
			break
		}

		outcome := eng.ApplyDirection(dir)
		turns++
		if onMove != nil {
			onMove(outcome)
		}

		if movesPerSecond > 0 && turns%movesPerSecond == 0 {
			eng.Tick()
		}
	}

	state := eng.GetState()
	return Summary{
		Strategy:  s.Name(),
		Score:     state.Score,
		MaxTile:   state.MaxTile,
		Moves:     state.TotalMoves,
		EndReason: state.EndReason,
	}
}
