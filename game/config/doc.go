// Package config provides game configuration management for EcoMerge Blitz.
//
// A configuration is a rule set: grid size, time limit, number of starting
// tiles, the chance of spawning a 4, the tile theme, and the messages shown to
// the player. Configs live as files in one directory and are addressed by id,
// the file name without its extension. JSON (.json) and YAML (.yaml, .yml)
// files are both accepted; SaveConfig always writes JSON.
//
// Manager caches parsed configs. The default config is "classic" when that
// file exists, otherwise the first valid file, otherwise the built-in
// engine.DefaultConfig, so a server started with an empty directory still works.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	blitz, err := manager.LoadConfig("blitz")
//	if errors.Is(err, config.ErrConfigNotFound) {
//		// fall back to manager.GetDefault()
//	}
//
//	// Report every broken file at once
//	if err := manager.Validate(); err != nil {
//		for _, e := range multierr.Errors(err) {
//			log.Println(e)
//		}
//	}
package config
