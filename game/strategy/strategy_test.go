package strategy

import (
	"testing"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
)

type fixedRand struct{ n int }

func (f fixedRand) IntN(n int) int   { return f.n % n }
func (f fixedRand) Float64() float64 { return 0.5 }

func TestGreedyPrefersScore(t *testing.T) {
	// Down scores nothing; left merges the 8s
	grid := engine.GridFromValues([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{8, 8, 2, 0},
	}, nil)

	dir, ok := Greedy{}.NextMove(grid)
	if !ok {
		t.Fatal("Expected a move")
	}
	if dir != engine.Left && dir != engine.Right {
		t.Errorf("Expected a horizontal merge, got %s", dir)
	}
	if dir != engine.Left {
		t.Errorf("Expected left to win the tie on preference, got %s", dir)
	}
}

func TestGreedyStuckGrid(t *testing.T) {
	grid := engine.GridFromValues([][]int{{2, 4}, {4, 2}}, nil)
	if _, ok := (Greedy{}).NextMove(grid); ok {
		t.Error("Expected no move on a stuck grid")
	}
	if _, ok := (Corner{}).NextMove(grid); ok {
		t.Error("Expected no move on a stuck grid")
	}
	if _, ok := NewRandom(fixedRand{}).NextMove(grid); ok {
		t.Error("Expected no move on a stuck grid")
	}
}

func TestCornerOrder(t *testing.T) {
	// Nothing can move down or left; right is next
	grid := engine.GridFromValues([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{2, 0, 0},
	}, nil)
	dir, ok := Corner{}.NextMove(grid)
	if !ok || dir != engine.Right {
		t.Errorf("Expected right, got %s ok=%v", dir, ok)
	}
}

func TestRandomPicksLegalMove(t *testing.T) {
	grid := engine.GridFromValues([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{2, 0, 0},
	}, nil)
	legal := map[engine.Direction]bool{}
	for _, d := range engine.PossibleMoves(grid) {
		legal[d] = true
	}
	for i := 0; i < 4; i++ {
		dir, ok := NewRandom(fixedRand{n: i}).NextMove(grid)
		if !ok || !legal[dir] {
			t.Errorf("Expected a legal move, got %s", dir)
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, nil)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("Expected %s, got %s", name, s.Name())
		}
	}
	if _, err := New("oracle", nil); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func TestPlayRunsToEnd(t *testing.T) {
	config := engine.DefaultConfig()
	config.GridSize = 3
	eng, err := engine.NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	eng.Start()

	calls := 0
	summary := Play(eng, Greedy{}, 0, func(engine.MoveOutcome) { calls++ })

	if !eng.IsGameOver() {
		t.Fatal("Expected the game to end")
	}
	if summary.EndReason != engine.EndReasonNoMoves {
		t.Errorf("Expected no_moves without a clock, got %s", summary.EndReason)
	}
	if summary.Moves == 0 || calls != summary.Moves {
		t.Errorf("Expected every turn to move, got %d moves and %d calls", summary.Moves, calls)
	}
	if summary.MaxTile < 4 {
		t.Errorf("Expected at least one merge, max tile %d", summary.MaxTile)
	}
}

func TestPlayWithClock(t *testing.T) {
	config := engine.DefaultConfig()
	config.TimeLimit = 5
	eng, _ := engine.NewEngine(config)
	eng.Start()

	summary := Play(eng, Corner{}, 1, nil)
	if summary.EndReason != engine.EndReasonTimeout && summary.EndReason != engine.EndReasonNoMoves {
		t.Errorf("Unexpected end reason %q", summary.EndReason)
	}
	if summary.EndReason == engine.EndReasonTimeout && summary.Moves != 5 {
		t.Errorf("Expected 5 moves at one move per second, got %d", summary.Moves)
	}
}
