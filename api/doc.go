// Package api provides the HTTP REST API for EcoMerge Blitz.
//
// Endpoints:
//
// Sessions:
//   - POST   /api/sessions              - Create and start a game {"config", "player_name", "manual_clock"}
//   - GET    /api/sessions              - List sessions (?sort=accessed|created|score&order=&limit=&config=)
//   - GET    /api/sessions/{id}         - Session details with a state snapshot
//   - DELETE /api/sessions/{id}         - Remove a session
//
// Game operations:
//   - GET  /api/sessions/{id}/state     - Current snapshot
//   - POST /api/sessions/{id}/move      - {"direction": "left"}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["left", "down"]}, capped at 50
//   - POST /api/sessions/{id}/tick      - Advance a manual-clock session by one second
//   - GET  /api/sessions/{id}/history   - Paginated moves (?page=&limit=&order=asc|desc)
//
// Leaderboard and configuration:
//   - GET  /api/leaderboard             - Ranked table (?limit=)
//   - GET  /api/configs                 - Available rule sets
//   - POST /api/configs                 - Save a rule set
//   - GET  /api/configs/{name}          - One rule set
//   - GET  /api/health
//
// WebSocket:
//   - GET /ws?session={id}              - Live snapshots; accepts {"direction": "left"}
//
// Errors are JSON bodies {"error": "..."}. Unknown sessions and configs map to
// 404, bad directions, names, and configs to 400, anything else to 500.
//
// RunClock drives the wall clock for every session that does not use a manual
// clock and pushes tick events to WebSocket clients.
package api
