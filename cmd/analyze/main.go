// Command analyze prints quick, human-readable statistics about the
// configuration files in the project's configs directory. For every config it
// plays a batch of seeded random-bot games and summarizes scores, game length
// and how often lines were cleared.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/wricardo/color-lines/game/bot"
	"github.com/wricardo/color-lines/game/config"
	"github.com/wricardo/color-lines/game/engine"
)

// AnalysisStats summarizes a batch of bot games on one configuration.
type AnalysisStats struct {
	Name         string
	Games        int
	MinScore     int
	MaxScore     int
	MeanScore    float64
	MedianScore  int
	MeanTurns    float64
	MeanClears   float64 // turns that removed at least one line
	ScorelessPct float64
}

func main() {
	configDir := flag.String("dir", "configs", "directory containing game configurations")
	games := flag.Int("games", 50, "bot games per configuration")
	flag.Parse()

	manager, err := config.NewManager(*configDir)
	if err != nil {
		fmt.Printf("Error loading configs: %v\n", err)
		os.Exit(1)
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		fmt.Printf("Error listing configs: %v\n", err)
		os.Exit(1)
	}

	for _, info := range infos {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			continue
		}

		stats, err := analyzeConfig(context.Background(), cfg, *games)
		if err != nil {
			fmt.Printf("Error playing games: %v\n", err)
			continue
		}
		printStats(os.Stdout, cfg, stats)
	}
}

// analyzeConfig plays games bot games with seeds 1..games
func analyzeConfig(ctx context.Context, cfg *engine.GameConfig, games int) (*AnalysisStats, error) {
	if games < 1 {
		return nil, fmt.Errorf("games must be at least 1, got %d", games)
	}

	stats := &AnalysisStats{Name: cfg.Name, Games: games}
	scores := make([]int, 0, games)
	totalTurns, totalClears, scoreless := 0, 0, 0

	for seed := uint64(1); seed <= uint64(games); seed++ {
		game, err := engine.NewEngineWithSeed(cfg, seed)
		if err != nil {
			return nil, err
		}

		score, err := bot.Play(ctx, game, bot.NewRandomBot(seed))
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}

		scores = append(scores, score)
		for _, entry := range game.GetMoveHistory() {
			totalTurns++
			if entry.Removed > 0 {
				totalClears++
			}
		}
		if score == 0 {
			scoreless++
		}
	}

	slices.Sort(scores)
	stats.MinScore = scores[0]
	stats.MaxScore = scores[len(scores)-1]
	stats.MedianScore = scores[len(scores)/2]

	sum := 0
	for _, s := range scores {
		sum += s
	}
	n := float64(games)
	stats.MeanScore = float64(sum) / n
	stats.MeanTurns = float64(totalTurns) / n
	stats.MeanClears = float64(totalClears) / n
	stats.ScorelessPct = 100 * float64(scoreless) / n

	return stats, nil
}

func printStats(w io.Writer, cfg *engine.GameConfig, stats *AnalysisStats) {
	fmt.Fprintf(w, "Name: %s\n", cfg.Name)
	fmt.Fprintf(w, "Board: %d x %d, lines of %d, %d stones per turn\n", cfg.Size, cfg.Size, cfg.LineSize, cfg.AppendCount)
	fmt.Fprintf(w, "Games: %d\n", stats.Games)
	fmt.Fprintf(w, "Score: min %d, median %d, mean %.1f, max %d\n", stats.MinScore, stats.MedianScore, stats.MeanScore, stats.MaxScore)
	fmt.Fprintf(w, "Turns per game: %.1f\n", stats.MeanTurns)
	fmt.Fprintf(w, "Clearing turns per game: %.2f\n", stats.MeanClears)

	if stats.ScorelessPct > 50 {
		fmt.Fprintf(w, "⚠️  WARNING: %.0f%% of random games never cleared a line\n", stats.ScorelessPct)
	} else {
		fmt.Fprintf(w, "✅ %.0f%% of random games scored\n", 100-stats.ScorelessPct)
	}
}
