// Package bot holds move-decision agents and the loop that drives a game
// with them.
//
// Agents only ever see engine.GameView, so they can inspect the board and
// query reachability but never change the game. RandomBot picks a stone that
// has an empty orthogonal neighbour and sends it to a random cell it can
// reach.
//
// Usage:
//
//	game, _ := engine.NewEngine(engine.DefaultConfig())
//	score, err := bot.Play(ctx, game, bot.NewRandomBot(1))
package bot
