// Package websocket pushes live EcoMerge Blitz updates to browsers.
//
// A central Hub owns every connection. Clients join a session with
// /ws?session=<id> and receive a JSON Message whenever that session changes:
// after a move, on every clock tick, and when the game ends.
//
// Message Protocol:
//
//   - Outgoing: {"session_id": "ab12", "event": "state_update", "game_state": {...}}
//   - Incoming: {"direction": "left"} or {"action": "move", "direction": "left"}
//
// Incoming moves are handed to the InputHandler installed with
// SetInputHandler; the API server routes them through the game service and
// broadcasts the result.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetInputHandler(func(sessionID, direction string) { ... })
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
//
// Broadcasts are queued on a buffered channel and delivered by Run, so they
// are safe to call from any goroutine and never block the game clock.
package websocket
