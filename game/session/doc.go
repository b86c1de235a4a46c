// Package session stores Color Lines game sessions.
//
// Manager keeps sessions in memory behind a lock and, when built with a
// SessionPersistence, writes every change through to storage. Two stores are
// provided: FilePersistence writes one JSON file per session and
// SQLitePersistence keeps sessions, plus finished-game results for the
// leaderboard, in a SQLite database.
//
// Stores never hold the board itself. A session is saved as its
// configuration, seed and accepted moves, and loading replays those moves on
// a fresh engine. The saved score and game-over flag must match the replay,
// otherwise Load fails with ErrReplayMismatch.
//
// Session IDs are short and case-insensitive. Generated IDs are 4 characters;
// caller-supplied IDs may use letters, digits, '-' and '_'.
//
// Usage:
//
//	store, err := session.NewSQLitePersistence("data/lines.db", configMgr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(store)
//
//	sess, err := manager.Create("", "classic", configMgr.GetDefault(), nil)
package session
