// Package engine provides the core game logic for EcoMerge Blitz.
//
// The engine package implements:
//   - The grid transition: slide, compact, and merge in one direction
//   - The tile spawn policy (uniform empty cell, 2 or 4)
//   - Legal-move detection for the end of the game
//   - The session controller that runs a timed game
//   - Configuration loading and validation
//
// Transitions:
//
// Transition is a pure function. Every direction is handled by rotating the
// grid so the slide becomes a slide to the left, running one row algorithm on
// each row, and rotating back. A tile produced by a merge cannot merge again
// in the same call, so [2,2,2,2] slid left becomes [4,4,_,_].
//
// Session controller:
//
// GameEngine holds the grid, score, and countdown of one game. It moves
// through NotStarted, Running, and Ended, and submits a positive final score
// to its ScoreSink exactly once. It is not safe for concurrent use.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewEngine(config, engine.WithPlayerName("ada"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.Start()
//	outcome := game.ApplyDirection(engine.Left)
//	game.Tick()
//	state := game.GetState()
package engine
