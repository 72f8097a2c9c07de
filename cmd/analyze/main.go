// Command analyze prints quick, human-readable statistics about the
// configuration files in the project's configs directory. For every config
// and every automatic strategy it plays a batch of seeded games and reports
// the score spread, the largest tiles reached, and how the games ended.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/wricardo/mcp-training/ecomerge/game/config"
	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/strategy"
)

const (
	defaultGames   = 100
	movesPerSecond = 3
)

// AnalysisResult summarizes one config played by one strategy
type AnalysisResult struct {
	ConfigID  string
	Strategy  string
	Games     int
	Mean      float64
	Median    int
	Best      int
	Worst     int
	MaxTiles  map[int]int
	Timeouts  int
	Exhausted int
}

// job is one seeded game
type job struct {
	config   *engine.GameConfig
	strategy string
	seed     uint64
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	games := defaultGames
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Printf("Invalid game count %q\n", os.Args[2])
			os.Exit(1)
		}
		games = n
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		fmt.Printf("Error loading configs: %v\n", err)
		os.Exit(1)
	}
	if err := manager.Validate(); err != nil {
		fmt.Printf("⚠️  Some configs are invalid and will be skipped:\n%v\n", err)
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		fmt.Printf("Error listing configs: %v\n", err)
		os.Exit(1)
	}

	for _, info := range infos {
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Printf("Error loading %s: %v\n", info.ConfigID, err)
			continue
		}
		fmt.Printf("\n=== Analyzing %s (%dx%d, %ds) ===\n", info.ConfigID, cfg.GridSize, cfg.GridSize, cfg.TimeLimit)
		for _, name := range strategy.Names() {
			result, err := analyzeConfig(context.Background(), info.ConfigID, cfg, name, games, runtime.NumCPU())
			if err != nil {
				fmt.Printf("Error analyzing %s with %s: %v\n", info.ConfigID, name, err)
				continue
			}
			printResult(os.Stdout, result)
		}
	}
}

// analyzeConfig plays games seeded games of cfg with the named strategy,
// spreading them over at most workers goroutines.
func analyzeConfig(ctx context.Context, id string, cfg *engine.GameConfig, strategyName string, games, workers int) (AnalysisResult, error) {
	if games <= 0 {
		return AnalysisResult{}, fmt.Errorf("games must be positive, got %d", games)
	}
	if _, err := strategy.New(strategyName, nil); err != nil {
		return AnalysisResult{}, err
	}

	summaries := make([]strategy.Summary, games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := 0; i < games; i++ {
		j := job{config: cfg, strategy: strategyName, seed: uint64(i + 1)}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary, err := playOne(j)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AnalysisResult{}, err
	}

	return summarize(id, strategyName, summaries), nil
}

// playOne runs a single deterministic game
func playOne(j job) (strategy.Summary, error) {
	spawnRand := rand.New(rand.NewPCG(j.seed, 0x5eed))
	eng, err := engine.NewEngine(j.config, engine.WithRandomSource(spawnRand), engine.WithIDGenerator(func() string { return "" }))
	if err != nil {
		return strategy.Summary{}, err
	}
	eng.Start()

	s, err := strategy.New(j.strategy, rand.New(rand.NewPCG(j.seed, 0xa11)))
	if err != nil {
		return strategy.Summary{}, err
	}
	return strategy.Play(eng, s, movesPerSecond, nil), nil
}

// summarize folds individual games into one result
func summarize(id, strategyName string, summaries []strategy.Summary) AnalysisResult {
	result := AnalysisResult{
		ConfigID: id,
		Strategy: strategyName,
		Games:    len(summaries),
		MaxTiles: map[int]int{},
	}
	if len(summaries) == 0 {
		return result
	}

	scores := make([]int, 0, len(summaries))
	total := 0
	for _, s := range summaries {
		scores = append(scores, s.Score)
		total += s.Score
		result.MaxTiles[s.MaxTile]++
		switch s.EndReason {
		case engine.EndReasonTimeout:
			result.Timeouts++
		case engine.EndReasonNoMoves:
			result.Exhausted++
		}
	}
	sort.Ints(scores)

	result.Mean = float64(total) / float64(len(scores))
	result.Worst = scores[0]
	result.Best = scores[len(scores)-1]
	result.Median = scores[len(scores)/2]
	if len(scores)%2 == 0 {
		result.Median = (scores[len(scores)/2-1] + scores[len(scores)/2]) / 2
	}
	return result
}

func printResult(w io.Writer, r AnalysisResult) {
	fmt.Fprintf(w, "Strategy: %s (%d games)\n", r.Strategy, r.Games)
	fmt.Fprintf(w, "  Score: mean %.1f, median %d, best %d, worst %d\n", r.Mean, r.Median, r.Best, r.Worst)
	fmt.Fprintf(w, "  Ended: %d by timeout, %d with no moves left\n", r.Timeouts, r.Exhausted)

	tiles := make([]int, 0, len(r.MaxTiles))
	for tile := range r.MaxTiles {
		tiles = append(tiles, tile)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))
	fmt.Fprintf(w, "  Max tile reached:")
	for _, tile := range tiles {
		fmt.Fprintf(w, " %d×%d", tile, r.MaxTiles[tile])
	}
	fmt.Fprintln(w)

	if r.Exhausted == r.Games && r.Games > 0 {
		fmt.Fprintf(w, "  ⚠️  Every game ran out of moves before the clock; the time limit never matters\n")
	}
}
