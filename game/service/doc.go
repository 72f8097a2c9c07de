// Package service provides the business logic layer for EcoMerge Blitz.
//
// The service package implements:
//   - Multi-session game management
//   - Move and bulk-move processing with gameplay events
//   - The one-second clock (Tick and TickAll)
//   - Leaderboard submission of final scores
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager stores sessions, ConfigManager loads rule sets, and Scoreboard
// is the leaderboard that receives final scores.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and the
// engine. A single mutex serializes every move and tick, so the engine never
// sees concurrent calls. Sessions created with ManualClock are skipped by
// TickAll and advance only through Tick, which lets agents play without a
// wall-clock deadline.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, store)
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
//		ConfigID:   "classic",
//		PlayerName: "ada",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "left")
//
// Events:
//
// Moves report merge, spawn, game_over, and new_record events. A new_record
// event is emitted once, when the leaderboard accepts the final score.
package service
