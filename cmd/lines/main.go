// Command lines plays Color Lines games locally with the random bot, replays
// stored sessions and prints the leaderboard.
//
//	lines play -n 10 --seed 7          # ten bot games with seeds 7..16
//	lines --db data/lines.db play -n 5 --record
//	lines replay --steps ab12          # replay a saved session turn by turn
//	lines --db data/lines.db top
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("lines failed")
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newApp().Run(ctx, args)
}
