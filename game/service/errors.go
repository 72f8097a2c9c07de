package service

import (
	"errors"

	"github.com/wricardo/mcp-training/ecomerge/game/leaderboard"
)

// Sentinel errors shared by the service and its storage layers. Transports
// map them to status codes with errors.Is.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrConfigNotFound   = errors.New("configuration not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidName      = leaderboard.ErrInvalidName
)
