// Package strategy contains simple automatic players.
//
// Strategies only look at the grid. Play drives a started engine with a
// strategy until the game ends, optionally ticking the clock every few moves
// so that timed games end by timeout the way a human game would. The
// autoplay command and the analyze tool are built on it.
package strategy
