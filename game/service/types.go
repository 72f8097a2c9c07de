package service

import (
	"time"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/leaderboard"
)

// Event types reported in MoveResult, BulkMoveResult, and TickResult
const (
	EventMerge     = "merge"
	EventSpawn     = "spawn"
	EventGameOver  = "game_over"
	EventNewRecord = "new_record"
)

// CreateSessionRequest describes a new game
type CreateSessionRequest struct {
	ConfigID   string `json:"config"`
	PlayerName string `json:"player_name"`
	// ManualClock sessions are advanced only by explicit Tick calls
	ManualClock bool `json:"manual_clock"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	PlayerName     string             `json:"player_name"`
	ManualClock    bool               `json:"manual_clock"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success    bool                `json:"success"`
	GameState  *engine.GameState   `json:"game_state"`
	Message    string              `json:"message"`
	Events     []GameEvent         `json:"events,omitempty"`
	ScoreDelta int                 `json:"score_delta"`
	Merges     []engine.MergeEvent `json:"merges,omitempty"`
	Spawned    *engine.SpawnEvent  `json:"spawned,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // game_over|timeout|no_moves
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that ended the game
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	GameOver      bool     `json:"game_over"`
	EndReason     string   `json:"end_reason,omitempty"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx        int                `json:"idx"`
	Dir        string             `json:"dir"`
	Moved      bool               `json:"moved"`
	ScoreDelta int                `json:"score_delta"`
	Merges     int                `json:"merges"`
	Spawned    *engine.SpawnEvent `json:"spawned,omitempty"`
	ScoreAfter int                `json:"score_after"`
}

// TickResult reports one clock tick of a session
type TickResult struct {
	SessionID     string            `json:"session_id"`
	TimeRemaining int               `json:"time_remaining"`
	Ended         bool              `json:"ended"`
	GameState     *engine.GameState `json:"game_state"`
	Events        []GameEvent       `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "merge", "spawn", "game_over", "new_record"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
	Value     int              `json:"value,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// LeaderboardResponse is the ranked table
type LeaderboardResponse struct {
	Entries  []leaderboard.Entry `json:"entries"`
	Capacity int                 `json:"capacity"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	TimeLimit   int    `json:"time_limit"`
}
