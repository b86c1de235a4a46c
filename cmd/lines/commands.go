package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/color-lines/game/bot"
	"github.com/wricardo/color-lines/game/config"
	"github.com/wricardo/color-lines/game/engine"
	"github.com/wricardo/color-lines/game/service"
	"github.com/wricardo/color-lines/game/session"
)

var errNoDatabase = errors.New("no database: pass --db or set SQLITE_DSN")

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "lines",
		Usage: "play, replay and rank Color Lines games",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "SQLite database with sessions and results",
				Sources: cli.EnvVars("SQLITE_DSN"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			playCommand(),
			replayCommand(),
			topCommand(),
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "let the random bot play games and print the final boards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "classic",
				Usage: "configuration name",
			},
			&cli.IntFlag{
				Name:    "games",
				Aliases: []string{"n"},
				Value:   1,
				Usage:   "number of games",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "seed of the first game; game i uses seed+i (random when unset)",
			},
			&cli.IntFlag{
				Name:  "max-turns",
				Usage: "stop each game after this many turns (0 plays to the end)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "print scores only",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "record finished games in the --db leaderboard",
			},
		},
		Action: runPlay,
	}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "rebuild a stored session from its seed and move log",
		ArgsUsage: "<session-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Value:   "file",
				Usage:   "session store: file or sqlite (uses --db)",
				Sources: cli.EnvVars("STORE"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory of the file store",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.BoolFlag{
				Name:  "steps",
				Usage: "print the board after every turn",
			},
		},
		Action: runReplay,
	}
}

func topCommand() *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "print the best recorded games",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
				Usage: "number of results",
			},
		},
		Action: runTop,
	}
}

func setupLogging(cmd *cli.Command) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		zerolog.SetGlobalLevel(lvl)
	}
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	var errWriter io.Writer = os.Stderr
	if w := cmd.Root().ErrWriter; w != nil {
		errWriter = w
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: errWriter, TimeFormat: time.Kitchen})
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func openDB(cmd *cli.Command, configs service.ConfigManager) (*session.SQLitePersistence, error) {
	dsn := cmd.String("db")
	if dsn == "" {
		return nil, errNoDatabase
	}
	return session.NewSQLitePersistence(dsn, configs)
}

// gameSummary is the outcome of one bot game
type gameSummary struct {
	Seed   uint64
	Score  int
	Turns  int
	Over   bool
	Engine *engine.GameEngine
}

// playGame runs one bot game. The bot shares the game's seed so a seed
// always reproduces the same game.
func playGame(ctx context.Context, gameConfig *engine.GameConfig, seed uint64, maxTurns int) (*gameSummary, error) {
	game, err := engine.NewEngineWithSeed(gameConfig, seed)
	if err != nil {
		return nil, err
	}

	turns, err := bot.Run(ctx, game, bot.NewRandomBot(seed), maxTurns)
	if err != nil && !errors.Is(err, bot.ErrNoMoves) {
		return nil, fmt.Errorf("game with seed %d: %w", seed, err)
	}

	return &gameSummary{
		Seed:   seed,
		Score:  game.Score(),
		Turns:  turns,
		Over:   game.IsOver(),
		Engine: game,
	}, nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	w := output(cmd)

	configs, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	gameConfig, err := configs.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	games := int(cmd.Int("games"))
	if games < 1 {
		return fmt.Errorf("--games must be at least 1, got %d", games)
	}
	maxTurns := int(cmd.Int("max-turns"))
	if maxTurns < 0 {
		return fmt.Errorf("--max-turns cannot be negative, got %d", maxTurns)
	}

	seed := rand.Uint64()
	if s := cmd.String("seed"); s != "" {
		if seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return fmt.Errorf("invalid --seed %q: %w", s, err)
		}
	}

	var store *session.SQLitePersistence
	if cmd.Bool("record") {
		if store, err = openDB(cmd, configs); err != nil {
			return err
		}
		defer store.Close()
	}

	best, total := 0, 0
	for i := 0; i < games; i++ {
		summary, err := playGame(ctx, gameConfig, seed+uint64(i), maxTurns)
		if err != nil {
			return err
		}
		log.Debug().Uint64("seed", summary.Seed).Int("score", summary.Score).Int("turns", summary.Turns).Msg("game finished")

		if cmd.Bool("quiet") {
			fmt.Fprintf(w, "seed %d: %d\n", summary.Seed, summary.Score)
		} else {
			fmt.Fprintf(w, "Game %d (seed %d, %d turns)\n%s\n", i+1, summary.Seed, summary.Turns, engine.Render(summary.Engine.View()))
		}

		if store != nil && summary.Over {
			err := store.RecordResult(&service.GameResult{
				SessionID:  "cli-" + uuid.NewString(),
				ConfigName: gameConfig.Name,
				Seed:       summary.Seed,
				Score:      summary.Score,
				Moves:      summary.Turns,
			})
			if err != nil {
				return err
			}
		}

		total += summary.Score
		best = max(best, summary.Score)
	}

	fmt.Fprintf(w, "Played %d games with %s: best %d, average %.1f\n",
		games, gameConfig.Name, best, float64(total)/float64(games))
	return nil
}

func runReplay(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	w := output(cmd)

	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("replay needs a session id")
	}

	configs, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	var persistence session.SessionPersistence
	switch cmd.String("store") {
	case "file":
		if persistence, err = session.NewFilePersistence(cmd.String("sessions-dir"), configs); err != nil {
			return err
		}
	case "sqlite":
		db, err := openDB(cmd, configs)
		if err != nil {
			return err
		}
		defer db.Close()
		persistence = db
	default:
		return fmt.Errorf("unknown store %q (use file or sqlite)", cmd.String("store"))
	}

	// Load replays the move log and checks it against the stored snapshot
	stored, err := persistence.Load(id)
	if err != nil {
		return err
	}

	moves := stored.Engine.Moves()
	fmt.Fprintf(w, "Session %s (config %s, seed %d, %d moves)\n\n", stored.ID, stored.ConfigID, stored.Engine.Seed(), len(moves))

	if cmd.Bool("steps") {
		game, err := engine.NewEngineWithSeed(stored.Config, stored.Engine.Seed())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Start\n%s\n", engine.Render(game.View()))

		for i, m := range moves {
			if err := ctx.Err(); err != nil {
				return err
			}
			turn, err := game.MakeMove(m.From.X, m.From.Y, m.To.X, m.To.Y)
			if err != nil {
				return fmt.Errorf("move %d: %w", i+1, err)
			}
			status := "moved"
			if !turn.Moved {
				status = "blocked"
			}
			fmt.Fprintf(w, "Move %d: (%d,%d)->(%d,%d) %s, removed %d\n%s\n",
				i+1, m.From.X, m.From.Y, m.To.X, m.To.Y, status, len(turn.Removed), engine.Render(game.View()))
		}
		return nil
	}

	fmt.Fprint(w, engine.Render(stored.Engine.View()))
	return nil
}

func runTop(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	w := output(cmd)

	store, err := openDB(cmd, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.TopScores(int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "No finished games yet.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(w, "%2d. %5d  %-12s seed %-20d %4d moves  %s\n",
			i+1, r.Score, r.ConfigName, r.Seed, r.Moves, r.FinishedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
