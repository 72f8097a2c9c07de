package engine

import (
	"fmt"
	"log"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Lifecycle
	Start() bool
	Tick() bool
	Phase() Phase
	IsGameOver() bool

	// Turns
	ApplyDirection(direction Direction) MoveOutcome
	BulkMove(directions []Direction) []MoveOutcome
	PossibleMoves() []Direction

	// State
	GetState() *GameState
	GetScore() int
	TimeRemaining() int
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine is the session controller. It owns the grid, score, and
// countdown of one game and is not safe for concurrent use: callers must
// serialize ApplyDirection and Tick.
type GameEngine struct {
	state     *GameState
	config    *GameConfig
	spawner   *Spawner
	nextID    IDGenerator
	sink      ScoreSink
	now       func() time.Time
	submitted bool
}

// Option customizes a GameEngine
type Option func(*GameEngine)

// WithPlayerName sets the name submitted with the final score
func WithPlayerName(name string) Option {
	return func(e *GameEngine) {
		e.state.PlayerName = name
	}
}

// WithScoreSink sets the collaborator that receives the final score
func WithScoreSink(sink ScoreSink) Option {
	return func(e *GameEngine) {
		e.sink = sink
	}
}

// WithRandomSource replaces the spawner's random source
func WithRandomSource(src RandomSource) Option {
	return func(e *GameEngine) {
		e.spawner.Rand = src
	}
}

// WithIDGenerator replaces the tile ID generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(e *GameEngine) {
		e.nextID = gen
		e.spawner.NextID = gen
	}
}

// WithClock replaces the wall clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(e *GameEngine) {
		e.now = now
	}
}

// NewEngine creates a session controller in the NotStarted phase
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:  config,
		spawner: NewSpawner(config.FourChance()),
		nextID:  NewTileID,
		now:     time.Now,
		state: &GameState{
			Grid:          NewGrid(config.GridSize),
			GridSize:      config.GridSize,
			TimeRemaining: config.TimeLimit,
			TimeLimit:     config.TimeLimit,
			Phase:         PhaseNotStarted,
			ConfigName:    config.Name,
			Message:       config.Messages.Welcome,
			MoveHistory:   []MoveHistoryEntry{},
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// NewEngineWithDefaults creates a controller for the classic configuration
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	e, err := NewEngine(DefaultConfig(), opts...)
	if err != nil {
		// The built-in configuration always validates
		panic(err)
	}
	return e
}

// Start moves the session from NotStarted to Running on a fresh grid holding
// the configured number of spawned tiles. It returns false in any other phase.
func (e *GameEngine) Start() bool {
	if e.state.Phase != PhaseNotStarted {
		return false
	}

	grid := NewGrid(e.config.GridSize)
	for i := 0; i < e.config.StartingTiles; i++ {
		grid, _ = e.spawner.Spawn(grid)
	}

	e.state.Grid = grid
	e.state.Score = 0
	e.state.TimeRemaining = e.config.TimeLimit
	e.state.Phase = PhaseRunning
	e.state.MaxTile = grid.MaxTile()
	e.state.StartedAt = e.now()
	e.state.Message = e.config.Messages.Welcome
	return true
}

// ApplyDirection runs one turn. Nothing happens unless the session is running
// and the direction moves at least one tile. A moving turn spawns one tile
// after the merge pass, adds the score delta, and ends the session when the
// grid is full with no legal move left.
func (e *GameEngine) ApplyDirection(direction Direction) MoveOutcome {
	outcome := MoveOutcome{Direction: direction}
	if e.state.Phase != PhaseRunning {
		return outcome
	}

	result := Transition(e.state.Grid, direction, e.nextID)
	if !result.Moved {
		return outcome
	}

	grid, spawned := e.spawner.Spawn(result.Grid)

	e.state.Grid = grid
	e.state.Score += result.ScoreDelta
	e.state.MaxTile = grid.MaxTile()
	e.addMoveToHistory(direction, result, spawned)

	outcome.Moved = true
	outcome.ScoreDelta = result.ScoreDelta
	outcome.Merges = result.Merges
	outcome.Spawned = spawned

	if len(grid.EmptyCells()) == 0 && !HasLegalMove(grid) {
		e.end(EndReasonNoMoves)
		outcome.Ended = true
	}

	return outcome
}

// Tick advances the countdown by one second and ends the session when it
// reaches zero. It returns true only on the tick that ended the session.
func (e *GameEngine) Tick() bool {
	if e.state.Phase != PhaseRunning {
		return false
	}
	if e.state.TimeRemaining > 0 {
		e.state.TimeRemaining--
	}
	if e.state.TimeRemaining == 0 {
		e.end(EndReasonTimeout)
		return true
	}
	return false
}

// end enters the Ended phase and hands a positive score to the sink once
func (e *GameEngine) end(reason EndReason) {
	e.state.Phase = PhaseEnded
	e.state.EndReason = reason
	e.state.EndedAt = e.now()

	switch reason {
	case EndReasonTimeout:
		e.state.Message = fmt.Sprintf(e.config.Messages.TimeUp, e.state.Score)
	case EndReasonNoMoves:
		e.state.Message = fmt.Sprintf(e.config.Messages.NoMoves, e.state.Score)
	}

	if e.submitted || e.state.Score <= 0 || e.sink == nil {
		return
	}
	e.submitted = true

	final := FinalScore{
		Name:  e.state.PlayerName,
		Score: e.state.Score,
		Date:  e.state.EndedAt,
	}
	if err := e.sink.SubmitScore(final); err != nil {
		log.Printf("Warning: failed to submit final score %d for %q: %v", final.Score, final.Name, err)
	}
}

// Phase returns the lifecycle stage
func (e *GameEngine) Phase() Phase {
	return e.state.Phase
}

// IsGameOver returns whether the session has ended
func (e *GameEngine) IsGameOver() bool {
	return e.state.Phase == PhaseEnded
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// TimeRemaining returns the seconds left on the countdown
func (e *GameEngine) TimeRemaining() int {
	return e.state.TimeRemaining
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetState returns a deep snapshot of the state, safe to hand to renderers
func (e *GameEngine) GetState() *GameState {
	snapshot := *e.state
	snapshot.Grid = e.state.Grid.DeepClone()
	snapshot.MoveHistory = append([]MoveHistoryEntry{}, e.state.MoveHistory...)
	return &snapshot
}

// PossibleMoves returns the directions that would change the grid; empty once ended
func (e *GameEngine) PossibleMoves() []Direction {
	if e.state.Phase != PhaseRunning {
		return nil
	}
	return PossibleMoves(e.state.Grid)
}

// GetMoveHistory returns a copy of the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return append([]MoveHistoryEntry{}, e.state.MoveHistory...)
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	last := e.state.MoveHistory[len(e.state.MoveHistory)-1]
	return &last
}

// BulkMove applies directions in order, stopping once the session ends
func (e *GameEngine) BulkMove(directions []Direction) []MoveOutcome {
	outcomes := make([]MoveOutcome, 0, len(directions))

	for _, direction := range directions {
		if e.IsGameOver() {
			break
		}
		outcomes = append(outcomes, e.ApplyDirection(direction))
	}

	return outcomes
}

// addMoveToHistory records a turn that moved the grid
func (e *GameEngine) addMoveToHistory(direction Direction, result TransitionResult, spawned *SpawnEvent) {
	e.state.TotalMoves++
	e.state.MoveHistory = append(e.state.MoveHistory, MoveHistoryEntry{
		MoveNumber: e.state.TotalMoves,
		Direction:  direction,
		ScoreDelta: result.ScoreDelta,
		Merges:     len(result.Merges),
		Spawned:    spawned,
		Score:      e.state.Score,
		Timestamp:  e.now().Unix(),
	})
}
