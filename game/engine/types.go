package engine

import "time"

// Direction is one of the four slide directions
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists every valid direction in a fixed order
var Directions = []Direction{Up, Down, Left, Right}

// Phase is the lifecycle stage of a game session
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseEnded      Phase = "ended"
)

// EndReason explains why a session ended
type EndReason string

const (
	EndReasonNone    EndReason = ""
	EndReasonTimeout EndReason = "timeout"
	EndReasonNoMoves EndReason = "no_moves"
)

const (
	// Validation constants
	DefaultGridSize        = 4
	MinGridSize            = 2
	MaxGridSize            = 8
	DefaultTimeLimit       = 60
	MinTimeLimit           = 5
	MaxTimeLimit           = 3600
	DefaultStartingTiles   = 2
	DefaultFourProbability = 0.1
	MaxBulkMoves           = 50
)

// Tile is a single numbered tile. Tiles are never modified after creation;
// a merge produces a new tile with a fresh ID.
type Tile struct {
	Value      int      `json:"value"`
	ID         string   `json:"id"`
	MergedFrom []string `json:"merged_from,omitempty"`
}

// Position represents x,y coordinates (x is the column, y the row)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MergeEvent records one merge produced by a transition
type MergeEvent struct {
	Position   Position `json:"position"`
	Value      int      `json:"value"`
	TileID     string   `json:"tile_id"`
	MergedFrom []string `json:"merged_from"`
}

// SpawnEvent records a tile placed by the spawner
type SpawnEvent struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
	TileID   string   `json:"tile_id"`
}

// TransitionResult is the outcome of sliding a grid in one direction
type TransitionResult struct {
	Grid       Grid         `json:"grid"`
	ScoreDelta int          `json:"score_delta"`
	Moved      bool         `json:"moved"`
	Merges     []MergeEvent `json:"merges,omitempty"`
}

// MoveOutcome is what the session controller reports for one direction event
type MoveOutcome struct {
	Direction  Direction    `json:"direction"`
	Moved      bool         `json:"moved"`
	ScoreDelta int          `json:"score_delta"`
	Merges     []MergeEvent `json:"merges,omitempty"`
	Spawned    *SpawnEvent  `json:"spawned,omitempty"`
	Ended      bool         `json:"ended"`
}

// GameState represents the complete, renderable state of a session
type GameState struct {
	Grid          Grid               `json:"grid"`
	GridSize      int                `json:"grid_size"`
	Score         int                `json:"score"`
	TimeRemaining int                `json:"time_remaining"`
	TimeLimit     int                `json:"time_limit"`
	Phase         Phase              `json:"phase"`
	EndReason     EndReason          `json:"end_reason,omitempty"`
	PlayerName    string             `json:"player_name"`
	ConfigName    string             `json:"config_name"`
	Message       string             `json:"message"`
	TotalMoves    int                `json:"total_moves"`
	MaxTile       int                `json:"max_tile"`
	MoveHistory   []MoveHistoryEntry `json:"move_history"`
	StartedAt     time.Time          `json:"started_at,omitempty"`
	EndedAt       time.Time          `json:"ended_at,omitempty"`
}

// MoveHistoryEntry represents a single turn in the game history.
// Only directions that moved the grid are recorded.
type MoveHistoryEntry struct {
	MoveNumber int         `json:"move_number"`
	Direction  Direction   `json:"direction"`
	ScoreDelta int         `json:"score_delta"`
	Merges     int         `json:"merges"`
	Spawned    *SpawnEvent `json:"spawned,omitempty"`
	Score      int         `json:"score"`
	Timestamp  int64       `json:"timestamp"`
}

// FinalScore is handed to the score sink when a session ends
type FinalScore struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Date  time.Time `json:"date"`
}

// ScoreSink receives final scores (the leaderboard collaborator)
type ScoreSink interface {
	SubmitScore(score FinalScore) error
}

// ScoreSinkFunc adapts a function to ScoreSink
type ScoreSinkFunc func(score FinalScore) error

// SubmitScore calls f(score)
func (f ScoreSinkFunc) SubmitScore(score FinalScore) error {
	return f(score)
}
