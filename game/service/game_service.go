package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/leaderboard"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	CleanupExpiredSessions(ctx context.Context, maxAge time.Duration) []string

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error)
	Tick(ctx context.Context, sessionID string) (*TickResult, error)
	TickAll(ctx context.Context) ([]*TickResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Leaderboard
	Leaderboard(ctx context.Context, limit int) (*LeaderboardResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig, opts ...engine.Option) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig, opts ...engine.Option) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	CleanupExpiredSessions(maxAge time.Duration) []string
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Scoreboard is the leaderboard the service submits final scores to
type Scoreboard interface {
	Submit(entry leaderboard.Entry) ([]leaderboard.Entry, bool, error)
	Top(n int) []leaderboard.Entry
	Capacity() int
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	PlayerName     string
	ManualClock    bool
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
