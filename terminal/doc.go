// Package terminal is the interactive front end: a full-screen tcell view of
// one game with a live countdown.
//
// Keys: arrows, WASD, or hjkl slide the tiles. q, Esc, or Ctrl-C quit. After a
// round ends the final score and the top of the leaderboard are shown, and n
// or Enter starts a new round.
//
// Tiles are drawn with the emoji and color of the config's theme. Emoji are
// two columns wide, so text is measured with go-runewidth before centering.
//
// Usage:
//
//	screen, err := tcell.NewScreen()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := screen.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer screen.Fini()
//
//	game, err := terminal.New(screen, config,
//		terminal.WithPlayerName("ada"),
//		terminal.WithLeaderboard(board))
//	if err != nil {
//		log.Fatal(err)
//	}
//	game.Run(ctx)
package terminal
