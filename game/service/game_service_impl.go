package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/leaderboard"
)

// gameServiceImpl implements the GameService interface. Every call that
// advances a game holds mu for writing, which serializes moves and ticks
// across all sessions.
type gameServiceImpl struct {
	sessions  SessionManager
	configs   ConfigManager
	board     Scoreboard
	recorders map[string]*scoreRecorder
	mu        sync.RWMutex
}

// scoreRecorder is the engine's score sink for one session. It remembers
// whether the leaderboard accepted the final score so the service can report
// a new_record event.
type scoreRecorder struct {
	board    Scoreboard
	accepted bool
	reported bool
	rank     int
}

// SubmitScore forwards a final score to the leaderboard
func (r *scoreRecorder) SubmitScore(score engine.FinalScore) error {
	entry := leaderboard.Entry{Name: score.Name, Score: score.Score, Date: score.Date}
	table, accepted, err := r.board.Submit(entry)
	if err != nil {
		return err
	}
	r.accepted = accepted
	for i, e := range table {
		if e.Name == entry.Name && e.Score == entry.Score && e.Date.Equal(entry.Date) {
			r.rank = i + 1
			break
		}
	}
	return nil
}

// NewGameService creates a new game service instance. board may be nil, in
// which case final scores are not recorded.
func NewGameService(sessions SessionManager, configs ConfigManager, board Scoreboard) GameService {
	return &gameServiceImpl{
		sessions:  sessions,
		configs:   configs,
		board:     board,
		recorders: make(map[string]*scoreRecorder),
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "classic"
	}
	return configName
}

// CreateSession creates and starts a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	name := strings.TrimSpace(req.PlayerName)
	if name != "" {
		valid, err := leaderboard.ValidateName(name)
		if err != nil {
			return nil, err
		}
		name = valid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if req.ConfigID != "" {
		config, err = s.configs.LoadConfig(req.ConfigID)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, req.ConfigID, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, req.ConfigID)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", req.ConfigID, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	opts := []engine.Option{engine.WithPlayerName(name)}
	var recorder *scoreRecorder
	if name != "" && s.board != nil {
		recorder = &scoreRecorder{board: s.board}
		opts = append(opts, engine.WithScoreSink(recorder))
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.PlayerName = name
	session.ManualClock = req.ManualClock
	session.Engine.Start()

	if recorder != nil {
		s.recorders[session.ID] = recorder
	}

	configID := req.ConfigID
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Printf("[SESSION] Created %s (config=%s player=%q manual_clock=%v)", session.ID, configID, name, req.ManualClock)

	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	delete(s.recorders, strings.ToLower(sessionID))
	return nil
}

// CleanupExpiredSessions removes sessions idle for longer than maxAge along
// with their score recorders and returns the removed IDs
func (s *gameServiceImpl) CleanupExpiredSessions(ctx context.Context, maxAge time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.sessions.CleanupExpiredSessions(maxAge)
	for _, id := range removed {
		delete(s.recorders, id)
	}
	return removed
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		PlayerName:     sess.PlayerName,
		ManualClock:    sess.ManualClock,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// Move applies a single direction to a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: %q (use up, down, left, or right)", ErrInvalidDirection, direction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	wasOver := sess.Engine.IsGameOver()
	outcome := sess.Engine.ApplyDirection(dir)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:    outcome.Moved,
		GameState:  state,
		Message:    state.Message,
		ScoreDelta: outcome.ScoreDelta,
		Merges:     outcome.Merges,
		Spawned:    outcome.Spawned,
	}

	switch {
	case wasOver:
		result.Message = "Game is over. Create a new session to play again."
	case !outcome.Moved:
		result.Message = fmt.Sprintf("Nothing moved %s", dir)
	default:
		result.Events = s.extractMoveEvents(sess, outcome)
		log.Printf("[MOVE] %s %s score=%d (+%d)", sess.ID, dir, state.Score, outcome.ScoreDelta)
	}

	return result, nil
}

// BulkMove applies several directions in order, stopping once the game ends
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveResult, error) {
	dirs := make([]engine.Direction, 0, len(moves))
	for i, move := range moves {
		dir, ok := engine.ParseDirection(move)
		if !ok {
			return nil, fmt.Errorf("%w: move %d is %q", ErrInvalidDirection, i+1, move)
		}
		dirs = append(dirs, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	startScore := sess.Engine.GetScore()
	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartScore:     startScore,
	}

	// Limit moves to prevent abuse
	if len(dirs) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		dirs = dirs[:engine.MaxBulkMoves]
	}

	for i, dir := range dirs {
		if sess.Engine.IsGameOver() {
			if i == 0 {
				result.Success = false
				result.StoppedReason = "game is already over"
				result.StopReasonCode = "game_over"
				result.StoppedOnMove = 1
			}
			break
		}

		outcome := sess.Engine.ApplyDirection(dir)
		if outcome.Moved {
			result.MovesExecuted++
			result.Events = append(result.Events, s.extractMoveEvents(sess, outcome)...)
		}

		result.Steps = append(result.Steps, StepInfo{
			Idx:        i + 1,
			Dir:        string(dir),
			Moved:      outcome.Moved,
			ScoreDelta: outcome.ScoreDelta,
			Merges:     len(outcome.Merges),
			Spawned:    outcome.Spawned,
			ScoreAfter: sess.Engine.GetScore(),
		})

		if outcome.Ended {
			state := sess.Engine.GetState()
			result.StoppedReason = state.Message
			result.StopReasonCode = string(state.EndReason)
			result.StoppedOnMove = i + 1
		}
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndScore = endState.Score
	result.ScoreDelta = endState.Score - startScore
	result.GameOver = endState.Phase == engine.PhaseEnded
	result.EndReason = string(endState.EndReason)
	result.Message = endState.Message

	for _, dir := range sess.Engine.PossibleMoves() {
		result.PossibleMoves = append(result.PossibleMoves, string(dir))
	}

	log.Printf("[MOVE] %s bulk %d/%d moved, score=%d (+%d)", sess.ID, result.MovesExecuted, len(dirs), endState.Score, result.ScoreDelta)

	return result, nil
}

// Tick advances one session's countdown by a second
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return s.tick(sess), nil
}

// TickAll advances every running session that follows the wall clock and
// returns the sessions whose state changed
func (s *gameServiceImpl) TickAll(ctx context.Context) ([]*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*TickResult
	for _, sess := range s.sessions.List() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if sess.ManualClock || sess.Engine.Phase() != engine.PhaseRunning {
			continue
		}
		results = append(results, s.tick(sess))
	}
	return results, nil
}

// tick must be called with mu held
func (s *gameServiceImpl) tick(sess *Session) *TickResult {
	ended := sess.Engine.Tick()
	state := sess.Engine.GetState()

	result := &TickResult{
		SessionID:     sess.ID,
		TimeRemaining: state.TimeRemaining,
		Ended:         ended,
		GameState:     state,
	}
	if ended {
		result.Events = s.endEvents(sess, state)
		log.Printf("[TICK] %s ended (%s) with score %d", sess.ID, state.EndReason, state.Score)
	}
	return result
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// Leaderboard returns the top entries; limit <= 0 returns the whole table
func (s *gameServiceImpl) Leaderboard(ctx context.Context, limit int) (*LeaderboardResponse, error) {
	if s.board == nil {
		return &LeaderboardResponse{Entries: []leaderboard.Entry{}}, nil
	}
	return &LeaderboardResponse{
		Entries:  s.board.Top(limit),
		Capacity: s.board.Capacity(),
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractMoveEvents generates events from a turn that moved the grid
func (s *gameServiceImpl) extractMoveEvents(sess *Session, outcome engine.MoveOutcome) []GameEvent {
	now := time.Now()
	theme := sess.Config.Theme
	events := make([]GameEvent, 0, len(outcome.Merges)+2)

	for _, m := range outcome.Merges {
		pos := m.Position
		tile := theme.Lookup(m.Value)
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("Merged %s %s (%d)", tile.Emoji, tile.Name, m.Value),
			Timestamp: now,
			Position:  &pos,
			Value:     m.Value,
		})
	}

	if outcome.Spawned != nil {
		pos := outcome.Spawned.Position
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("New %d tile at (%d,%d)", outcome.Spawned.Value, pos.X, pos.Y),
			Timestamp: now,
			Position:  &pos,
			Value:     outcome.Spawned.Value,
		})
	}

	if outcome.Ended {
		events = append(events, s.endEvents(sess, sess.Engine.GetState())...)
	}

	return events
}

// endEvents reports game over and, once, an accepted leaderboard entry
func (s *gameServiceImpl) endEvents(sess *Session, state *engine.GameState) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      EventGameOver,
		Message:   state.Message,
		Timestamp: now,
		Value:     state.Score,
	}}

	rec := s.recorders[sess.ID]
	if rec != nil && rec.accepted && !rec.reported {
		rec.reported = true
		msg := fmt.Sprintf(sess.Config.Messages.NewRecord, sess.PlayerName)
		if rec.rank > 0 {
			msg = fmt.Sprintf("%s Rank #%d", msg, rec.rank)
		}
		events = append(events, GameEvent{
			Type:      EventNewRecord,
			Message:   msg,
			Timestamp: now,
			Value:     state.Score,
		})
	}
	// The engine submits once, so the recorder is done after the first report
	delete(s.recorders, sess.ID)

	return events
}
