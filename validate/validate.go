// Command validate checks the game configuration files in the ../configs
// directory (or the directory given as the first argument). It checks:
//   - JSON or YAML syntax, chosen by file extension
//   - Required fields (name, grid_size, time_limit)
//   - Rule limits: grid size, time limit, starting tiles, four probability
//   - Theme keys are powers of two and every entry has an emoji
//   - Message templates carry their %d / %s placeholders
//   - Playability: seeded greedy games on the config must score points
package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/strategy"
)

const (
	playabilityGames = 5
	movesPerSecond   = 3
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf("✓ "+format, args...))
}

// decode reads data as YAML or JSON into both a generic map, used for
// presence checks, and a GameConfig.
func decode(data []byte, filename string) (map[string]interface{}, *engine.GameConfig, string, error) {
	raw := map[string]interface{}{}
	var config engine.GameConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, nil, "YAML", err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, nil, "YAML", err
		}
		return raw, &config, "YAML", nil
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, nil, "JSON", err
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, nil, "JSON", err
		}
		return raw, &config, "JSON", nil
	}
}

// validateConfig loads and validates a single configuration file.
// It performs structural checks, rule limits, theme and message checks, and a
// playability run.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	raw, config, format, err := decode(data, filePath)
	if err != nil {
		result.fail("Invalid %s: %v", format, err)
		return result
	}

	for _, field := range []string{"name", "grid_size", "time_limit"} {
		if _, ok := raw[field]; !ok {
			result.fail("Missing required field: %s", field)
		}
	}

	config.ApplyDefaults()
	if config.GridSize < engine.MinGridSize || config.GridSize > engine.MaxGridSize {
		result.fail("grid_size must be between %d and %d, got %d", engine.MinGridSize, engine.MaxGridSize, config.GridSize)
	}
	if config.TimeLimit < engine.MinTimeLimit || config.TimeLimit > engine.MaxTimeLimit {
		result.fail("time_limit must be between %d and %d seconds, got %d", engine.MinTimeLimit, engine.MaxTimeLimit, config.TimeLimit)
	}
	if cells := config.GridSize * config.GridSize; config.StartingTiles < 1 || config.StartingTiles > cells {
		result.fail("starting_tiles must be between 1 and %d, got %d", cells, config.StartingTiles)
	}
	if p := config.FourChance(); p < 0 || p > 1 {
		result.fail("four_probability must be between 0 and 1, got %g", p)
	}

	for _, value := range themeValues(config.Theme) {
		if !engine.IsPowerOfTwo(value) {
			result.fail("Theme key %d is not a power of two", value)
		}
		if config.Theme[value].Emoji == "" {
			result.fail("Theme entry %d has no emoji", value)
		}
	}

	// Catch anything the checks above do not cover, such as message templates
	if result.Valid {
		if err := engine.ValidateGameConfig(config); err != nil {
			result.fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
		}
	}

	if result.Valid {
		playability := checkPlayability(config, playabilityGames)
		if !playability.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, playability.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.info("Name: %s", config.Name)
		result.info("Grid: %dx%d", config.GridSize, config.GridSize)
		result.info("Time limit: %ds", config.TimeLimit)
		result.info("Starting tiles: %d", config.StartingTiles)
		result.info("Four probability: %.2f", config.FourChance())
		result.info("Theme entries: %d", len(config.Theme))
	}

	return result
}

// checkPlayability plays seeded greedy games on config at a steady pace and
// fails when none of them scores a single point.
func checkPlayability(config *engine.GameConfig, games int) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}
	if games <= 0 {
		result.fail("Cannot check playability: no games requested")
		return result
	}

	total, best := 0, 0
	maxTile := 0
	for seed := 1; seed <= games; seed++ {
		rnd := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		eng, err := engine.NewEngine(config, engine.WithRandomSource(rnd))
		if err != nil {
			result.fail("Cannot create engine: %v", err)
			return result
		}
		eng.Start()
		summary := strategy.Play(eng, strategy.Greedy{}, movesPerSecond, nil)
		total += summary.Score
		if summary.Score > best {
			best = summary.Score
		}
		if summary.MaxTile > maxTile {
			maxTile = summary.MaxTile
		}
	}

	if best == 0 {
		result.fail("Playability failure: %d greedy games scored no points", games)
		return result
	}
	result.info("Playability: greedy averages %d points over %d games (best %d, max tile %d)", total/games, games, best, maxTile)
	return result
}

// themeValues returns the theme keys in ascending order
func themeValues(theme engine.Theme) []int {
	values := make([]int, 0, len(theme))
	for v := range theme {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// configFiles lists the JSON and YAML files in dir
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main validates each config file, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := configFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
