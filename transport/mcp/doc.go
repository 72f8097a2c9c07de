// Package mcp exposes EcoMerge Blitz to AI assistants over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes a REST request against a
// running API server, and the JSON answer is rendered as plain text that a
// language model can read (the grid is printed as aligned numbers with dots
// for empty cells). Tool arguments arrive as loosely typed JSON, so they are
// coerced with spf13/cast: "10", 10, and 10.0 are all accepted as seconds.
//
// Tools: create_session, list_sessions, get_session, game_state, move,
// bulk_move, tick, move_history, leaderboard, list_configs, game_instructions.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
