package engine

import (
	"errors"
	"testing"
	"time"
)

// scriptedRand replays fixed answers, then falls back to 0 and 0.5
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// recordingSink collects submitted scores
type recordingSink struct {
	scores []FinalScore
	err    error
}

func (s *recordingSink) SubmitScore(score FinalScore) error {
	s.scores = append(s.scores, score)
	return s.err
}

func createTestConfig() *GameConfig {
	config := DefaultConfig()
	config.Name = "engine-test"
	config.TimeLimit = 5
	return config
}

// newRunningEngine starts an engine and replaces its grid with values
func newRunningEngine(t *testing.T, values [][]int, opts ...Option) *GameEngine {
	t.Helper()
	config := createTestConfig()
	config.GridSize = len(values)
	engine, err := NewEngine(config, opts...)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if !engine.Start() {
		t.Fatal("Expected Start to succeed")
	}
	engine.state.Grid = GridFromValues(values, seqIDs())
	engine.state.MaxTile = engine.state.Grid.MaxTile()
	return engine
}

func TestSpawnerPlacesTile(t *testing.T) {
	grid := GridFromValues([][]int{{2, 0}, {0, 4}}, nil)
	spawner := &Spawner{
		Rand:            &scriptedRand{ints: []int{1}, floats: []float64{0.95}},
		NextID:          func() string { return "new" },
		FourProbability: 0.1,
	}

	out, event := spawner.Spawn(grid)
	if event == nil {
		t.Fatal("Expected a spawn event")
	}
	// Empty cells in row-major order are (1,0) and (0,1); index 1 picks (0,1)
	if event.Position != (Position{X: 0, Y: 1}) {
		t.Errorf("Expected spawn at (0,1), got %+v", event.Position)
	}
	if event.Value != 2 {
		t.Errorf("Expected a 2, got %d", event.Value)
	}
	if out[1][0] == nil || out[1][0].ID != "new" {
		t.Errorf("Expected new tile in grid, got %+v", out[1][0])
	}
	if grid[1][0] != nil {
		t.Error("Spawn modified its input grid")
	}
}

func TestSpawnerFourProbability(t *testing.T) {
	grid := NewGrid(4)
	spawner := &Spawner{
		Rand:            &scriptedRand{floats: []float64{0.05}},
		FourProbability: 0.1,
	}
	_, event := spawner.Spawn(grid)
	if event == nil || event.Value != 4 {
		t.Errorf("Expected a 4 below the threshold, got %+v", event)
	}

	spawner.FourProbability = 0
	spawner.Rand = &scriptedRand{floats: []float64{0}}
	_, event = spawner.Spawn(grid)
	if event == nil || event.Value != 2 {
		t.Errorf("Expected only 2s with zero probability, got %+v", event)
	}
}

func TestSpawnerFullGrid(t *testing.T) {
	grid := GridFromValues([][]int{{2, 4}, {8, 16}}, nil)
	spawner := NewSpawner(0.1)

	out, event := spawner.Spawn(grid)
	if event != nil {
		t.Errorf("Expected no spawn on a full grid, got %+v", event)
	}
	if !out.Equal(grid) {
		t.Error("Expected full grid unchanged")
	}
}

func TestSpawnerDistribution(t *testing.T) {
	spawner := NewSpawner(0.1)
	fours := 0
	const trials = 5000
	for i := 0; i < trials; i++ {
		_, event := spawner.Spawn(NewGrid(4))
		if event.Value == 4 {
			fours++
		}
	}
	ratio := float64(fours) / trials
	if ratio < 0.05 || ratio > 0.15 {
		t.Errorf("Expected about 10%% fours, got %.3f", ratio)
	}
}

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config, WithPlayerName("ada"))
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if engine.Phase() != PhaseNotStarted {
		t.Errorf("Expected phase %s, got %s", PhaseNotStarted, engine.Phase())
	}
	if engine.GetScore() != 0 {
		t.Errorf("Expected initial score 0, got %d", engine.GetScore())
	}
	if engine.TimeRemaining() != config.TimeLimit {
		t.Errorf("Expected %d seconds, got %d", config.TimeLimit, engine.TimeRemaining())
	}
	if engine.GetState().PlayerName != "ada" {
		t.Errorf("Expected player name ada, got %q", engine.GetState().PlayerName)
	}
	if engine.GetState().Grid.TileCount() != 0 {
		t.Error("Expected empty grid before start")
	}
}

func TestNewEngineInvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.GridSize = 1
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid grid size")
	}
}

func TestStart(t *testing.T) {
	engine := NewEngineWithDefaults()

	if !engine.Start() {
		t.Fatal("Expected Start to succeed")
	}
	if engine.Phase() != PhaseRunning {
		t.Errorf("Expected running, got %s", engine.Phase())
	}
	if got := engine.GetState().Grid.TileCount(); got != DefaultStartingTiles {
		t.Errorf("Expected %d starting tiles, got %d", DefaultStartingTiles, got)
	}
	if engine.TimeRemaining() != DefaultTimeLimit {
		t.Errorf("Expected %d seconds, got %d", DefaultTimeLimit, engine.TimeRemaining())
	}
	if engine.Start() {
		t.Error("Expected second Start to be rejected")
	}
}

func TestApplyDirectionBeforeStart(t *testing.T) {
	engine := NewEngineWithDefaults()
	outcome := engine.ApplyDirection(Left)
	if outcome.Moved {
		t.Error("Expected no move before start")
	}
	if engine.Tick() {
		t.Error("Expected tick to be ignored before start")
	}
}

func TestApplyDirection(t *testing.T) {
	engine := newRunningEngine(t, [][]int{
		{2, 2, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, WithRandomSource(&scriptedRand{floats: []float64{0.5}}))

	outcome := engine.ApplyDirection(Left)
	if !outcome.Moved {
		t.Fatal("Expected the move to succeed")
	}
	if outcome.ScoreDelta != 4 || engine.GetScore() != 4 {
		t.Errorf("Expected score 4, got delta %d score %d", outcome.ScoreDelta, engine.GetScore())
	}
	if outcome.Spawned == nil {
		t.Fatal("Expected a spawned tile")
	}
	state := engine.GetState()
	if state.Grid.TileCount() != 3 {
		t.Errorf("Expected 3 tiles after merge and spawn, got %d", state.Grid.TileCount())
	}
	if state.TotalMoves != 1 {
		t.Errorf("Expected 1 move, got %d", state.TotalMoves)
	}

	last := engine.GetLastMove()
	if last == nil || last.Direction != Left || last.Score != 4 || last.Merges != 1 {
		t.Errorf("Unexpected history entry %+v", last)
	}
}

func TestApplyDirectionNoMovement(t *testing.T) {
	engine := newRunningEngine(t, [][]int{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	outcome := engine.ApplyDirection(Left)
	if outcome.Moved || outcome.Spawned != nil {
		t.Errorf("Expected nothing to happen, got %+v", outcome)
	}
	if engine.GetState().Grid.TileCount() != 2 {
		t.Error("Expected no spawn when the grid did not move")
	}
	if len(engine.GetMoveHistory()) != 0 {
		t.Error("Expected empty history")
	}
}

func TestTickTimeout(t *testing.T) {
	sink := &recordingSink{}
	engine := newRunningEngine(t, [][]int{{2, 0}, {0, 0}}, WithScoreSink(sink), WithPlayerName("ada"))
	engine.state.Score = 40

	for i := 0; i < 4; i++ {
		if engine.Tick() {
			t.Fatalf("Tick %d ended the game early", i+1)
		}
	}
	if engine.TimeRemaining() != 1 {
		t.Errorf("Expected 1 second left, got %d", engine.TimeRemaining())
	}
	if !engine.Tick() {
		t.Fatal("Expected final tick to end the game")
	}

	state := engine.GetState()
	if state.Phase != PhaseEnded || state.EndReason != EndReasonTimeout {
		t.Errorf("Expected ended by timeout, got %s/%s", state.Phase, state.EndReason)
	}
	if state.Message != "Time's up! Final score: 40" {
		t.Errorf("Unexpected message %q", state.Message)
	}
	if len(sink.scores) != 1 || sink.scores[0].Name != "ada" || sink.scores[0].Score != 40 {
		t.Errorf("Expected one submission of 40 for ada, got %+v", sink.scores)
	}

	// Ended absorbs everything
	if engine.Tick() {
		t.Error("Expected tick after end to be ignored")
	}
	if engine.ApplyDirection(Right).Moved {
		t.Error("Expected move after end to be ignored")
	}
	if engine.TimeRemaining() != 0 {
		t.Errorf("Expected time to stay at 0, got %d", engine.TimeRemaining())
	}
	if len(sink.scores) != 1 {
		t.Errorf("Expected a single submission, got %d", len(sink.scores))
	}
}

func TestZeroScoreNotSubmitted(t *testing.T) {
	sink := &recordingSink{}
	engine := newRunningEngine(t, [][]int{{2, 0}, {0, 0}}, WithScoreSink(sink))
	for i := 0; i < 5; i++ {
		engine.Tick()
	}
	if !engine.IsGameOver() {
		t.Fatal("Expected the game to end")
	}
	if len(sink.scores) != 0 {
		t.Errorf("Expected no submission for a zero score, got %+v", sink.scores)
	}
}

func TestSinkErrorDoesNotBlockEnd(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk full")}
	engine := newRunningEngine(t, [][]int{{2, 0}, {0, 0}}, WithScoreSink(sink))
	engine.state.Score = 8
	for i := 0; i < 5; i++ {
		engine.Tick()
	}
	if engine.Phase() != PhaseEnded {
		t.Errorf("Expected ended despite sink error, got %s", engine.Phase())
	}
	if len(sink.scores) != 1 {
		t.Errorf("Expected one attempt, got %d", len(sink.scores))
	}
}

func TestNoMovesEndsGame(t *testing.T) {
	sink := &recordingSink{}
	// Sliding left opens (3,0); a spawned 4 there completes a checkerboard.
	engine := newRunningEngine(t, [][]int{
		{0, 2, 4, 2},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	},
		WithScoreSink(sink),
		WithPlayerName("grace"),
		WithRandomSource(&scriptedRand{ints: []int{0}, floats: []float64{0.05}}),
	)
	engine.state.Score = 100

	outcome := engine.ApplyDirection(Left)
	if !outcome.Moved {
		t.Fatal("Expected the move to succeed")
	}
	if outcome.Spawned == nil || outcome.Spawned.Value != 4 || outcome.Spawned.Position != (Position{X: 3, Y: 0}) {
		t.Fatalf("Expected a 4 spawned at (3,0), got %+v", outcome.Spawned)
	}
	if !outcome.Ended {
		t.Fatalf("Expected the game to end with no moves, grid:\n%s", engine.GetState().Grid)
	}

	state := engine.GetState()
	if state.EndReason != EndReasonNoMoves {
		t.Errorf("Expected end reason %s, got %s", EndReasonNoMoves, state.EndReason)
	}
	if state.Message != "No moves left! Final score: 100" {
		t.Errorf("Unexpected message %q", state.Message)
	}
	if len(sink.scores) != 1 || sink.scores[0].Name != "grace" || sink.scores[0].Score != 100 {
		t.Errorf("Expected one submission of 100 for grace, got %+v", sink.scores)
	}
	if engine.PossibleMoves() != nil {
		t.Error("Expected no possible moves after end")
	}
}

func TestGetStateIsSnapshot(t *testing.T) {
	engine := newRunningEngine(t, [][]int{{2, 0}, {0, 0}})
	state := engine.GetState()
	state.Grid[0][0].Value = 1024
	state.Score = 999

	if engine.GetState().Grid[0][0].Value != 2 {
		t.Error("Snapshot grid shares tiles with the engine")
	}
	if engine.GetScore() != 0 {
		t.Error("Snapshot score shares state with the engine")
	}
}

func TestGetMoveHistoryIsCopy(t *testing.T) {
	engine := newRunningEngine(t, [][]int{{2, 2}, {0, 0}},
		WithRandomSource(&scriptedRand{floats: []float64{0.5}}))
	if !engine.ApplyDirection(Left).Moved {
		t.Fatal("Expected the move to succeed")
	}

	history := engine.GetMoveHistory()
	history[0].Score = 999
	history[0].MoveNumber = 42
	last := engine.GetLastMove()
	last.Direction = Right

	got := engine.GetMoveHistory()
	if len(got) != 1 || got[0].Score != 4 || got[0].MoveNumber != 1 || got[0].Direction != Left {
		t.Errorf("History shares storage with the engine: %+v", got)
	}
	if engine.GetState().MoveHistory[0].Direction != Left {
		t.Error("GetLastMove shares storage with the engine")
	}
}

func TestBulkMove(t *testing.T) {
	engine := newRunningEngine(t, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	outcomes := engine.BulkMove([]Direction{Left, Right, Down})
	if len(outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(outcomes))
	}
	if !outcomes[0].Moved || outcomes[0].ScoreDelta != 4 {
		t.Errorf("Expected first move to merge, got %+v", outcomes[0])
	}
	if engine.GetScore() < 4 {
		t.Errorf("Expected score at least 4, got %d", engine.GetScore())
	}
}

func TestBulkMoveStopsAtEnd(t *testing.T) {
	engine := newRunningEngine(t, [][]int{{2, 0}, {0, 0}})
	engine.state.Phase = PhaseEnded
	if outcomes := engine.BulkMove([]Direction{Left, Right}); len(outcomes) != 0 {
		t.Errorf("Expected no outcomes after end, got %d", len(outcomes))
	}
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	engine := newRunningEngine(t, [][]int{{0, 2}, {0, 0}}, WithClock(func() time.Time { return fixed }))
	engine.ApplyDirection(Left)

	last := engine.GetLastMove()
	if last == nil || last.Timestamp != fixed.Unix() {
		t.Errorf("Expected timestamp %d, got %+v", fixed.Unix(), last)
	}
}
