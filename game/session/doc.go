// Package session provides session management for EcoMerge Blitz.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Expiry of idle sessions
//
// Manager holds every live session in memory. Each service.Session owns its
// own engine; the manager never starts or advances a game, it only stores it.
// Nothing about an in-progress game survives a restart.
//
// Session Identifiers:
//
// Generated IDs are 4 lower-case hex characters from crypto/rand, retried on
// collision. Caller-chosen IDs may use letters, digits, '-' and '_' and are
// matched case-insensitively.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config, engine.WithPlayerName("ada"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
//	// Drop sessions idle for more than a day
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
