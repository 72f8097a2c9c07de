// Package leaderboard keeps the top scores of finished games.
//
// A Store holds at most Capacity entries ordered by score, highest first.
// A new entry goes after every entry with an equal or higher score, so among
// equal scores the earlier submission ranks higher. Submitting the same entry
// twice has no effect.
//
// Storage is pluggable through Backend. MemoryBackend is used by tests and by
// servers started without a leaderboard file; FileBackend keeps a JSON array
// on disk and replaces it atomically on every change.
//
//	backend, err := leaderboard.NewFileBackend("data/leaderboard.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	store, err := leaderboard.NewStore(backend, leaderboard.DefaultCapacity)
//	if err != nil {
//		log.Fatal(err)
//	}
//	table, accepted, err := store.Submit(leaderboard.Entry{Name: "ada", Score: 512})
package leaderboard
