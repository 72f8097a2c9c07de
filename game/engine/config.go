package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Messages are the texts shown at lifecycle points
type Messages struct {
	Welcome   string `json:"welcome" yaml:"welcome"`
	TimeUp    string `json:"time_up" yaml:"time_up"`
	NoMoves   string `json:"no_moves" yaml:"no_moves"`
	NewRecord string `json:"new_record" yaml:"new_record"`
}

// GameConfig represents a rule set loaded from JSON or YAML
type GameConfig struct {
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	GridSize        int      `json:"grid_size" yaml:"grid_size"`
	TimeLimit       int      `json:"time_limit" yaml:"time_limit"`
	StartingTiles   int      `json:"starting_tiles" yaml:"starting_tiles"`
	FourProbability *float64 `json:"four_probability,omitempty" yaml:"four_probability,omitempty"`
	Theme           Theme    `json:"theme,omitempty" yaml:"theme,omitempty"`
	Messages        Messages `json:"messages" yaml:"messages"`
}

// DefaultConfig returns the classic 4x4, 60 second game
func DefaultConfig() *GameConfig {
	four := DefaultFourProbability
	return &GameConfig{
		Name:            "classic",
		Description:     "Merge eco-friendly tiles to create sustainable solutions! Score as many points as you can in 60 seconds.",
		GridSize:        DefaultGridSize,
		TimeLimit:       DefaultTimeLimit,
		StartingTiles:   DefaultStartingTiles,
		FourProbability: &four,
		Messages: Messages{
			Welcome:   "Merge tiles to build a greener future!",
			TimeUp:    "Time's up! Final score: %d",
			NoMoves:   "No moves left! Final score: %d",
			NewRecord: "New leaderboard entry for %s!",
		},
	}
}

// ApplyDefaults fills zero-valued fields with the classic values
func (c *GameConfig) ApplyDefaults() {
	def := DefaultConfig()
	if c.GridSize == 0 {
		c.GridSize = def.GridSize
	}
	if c.TimeLimit == 0 {
		c.TimeLimit = def.TimeLimit
	}
	if c.StartingTiles == 0 {
		c.StartingTiles = def.StartingTiles
	}
	if c.FourProbability == nil {
		p := DefaultFourProbability
		c.FourProbability = &p
	}
	if c.Messages.Welcome == "" {
		c.Messages.Welcome = def.Messages.Welcome
	}
	if c.Messages.TimeUp == "" {
		c.Messages.TimeUp = def.Messages.TimeUp
	}
	if c.Messages.NoMoves == "" {
		c.Messages.NoMoves = def.Messages.NoMoves
	}
	if c.Messages.NewRecord == "" {
		c.Messages.NewRecord = def.Messages.NewRecord
	}
}

// FourChance returns the probability that a spawned tile is a 4
func (c *GameConfig) FourChance() float64 {
	if c.FourProbability == nil {
		return DefaultFourProbability
	}
	return *c.FourProbability
}

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}
	if config.TimeLimit < MinTimeLimit || config.TimeLimit > MaxTimeLimit {
		return fmt.Errorf("config validation: time_limit must be between %d and %d seconds, got %d", MinTimeLimit, MaxTimeLimit, config.TimeLimit)
	}
	cells := config.GridSize * config.GridSize
	if config.StartingTiles < 1 || config.StartingTiles > cells {
		return fmt.Errorf("config validation: starting_tiles must be between 1 and %d, got %d", cells, config.StartingTiles)
	}
	if p := config.FourChance(); p < 0 || p > 1 {
		return fmt.Errorf("config validation: four_probability must be between 0 and 1, got %g", p)
	}
	for value := range config.Theme {
		if !IsPowerOfTwo(value) {
			return fmt.Errorf("config validation: theme key %d is not a power of two", value)
		}
	}

	// Validate format strings
	if config.Messages.TimeUp != "" && !strings.Contains(config.Messages.TimeUp, "%d") {
		return fmt.Errorf("config validation: messages.time_up must contain %%d for score")
	}
	if config.Messages.NoMoves != "" && !strings.Contains(config.Messages.NoMoves, "%d") {
		return fmt.Errorf("config validation: messages.no_moves must contain %%d for score")
	}
	if config.Messages.NewRecord != "" && !strings.Contains(config.Messages.NewRecord, "%s") {
		return fmt.Errorf("config validation: messages.new_record must contain %%s for player name")
	}

	return nil
}

// ParseGameConfig decodes config data. The format is chosen from the file
// extension: .yaml and .yml are YAML, anything else JSON.
func ParseGameConfig(data []byte, filename string) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config '%s': %w", filename, err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config '%s': %w", filename, err)
		}
	}

	config.ApplyDefaults()
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadGameConfig loads and validates a game configuration file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseGameConfig(data, filename)
}
