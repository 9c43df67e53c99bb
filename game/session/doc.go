// Package session provides session management for Golem worlds.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation and validation
//   - Session lifecycle management
//   - Persistence to JSON files or PostgreSQL
//
// Core Types:
//
// Manager is the main session manager. Session holds one world engine,
// the scene graph the engine draws into and the access timestamps.
//
// Session Identifiers:
//
// Generated sessions use 4-character hex IDs. Caller supplied IDs must
// match ^[A-Za-z0-9_-]{1,64}$ because they become file names and
// primary keys.
//
// Persistence:
//
// A persisted session stores the config ID and an engine.Snapshot. The
// scene is not stored; on load the world is rebuilt through a
// WorldFactory and the snapshot is restored on top of it.
//
// Usage:
//
//	worlds := service.NewWorlds(os.DirFS("maps"), sizer)
//	p, err := session.NewFilePersistence("sessions", configs, worlds)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(worlds, p)
//
//	sess, err := manager.Create("", "golem", configs.GetDefault())
//	if err != nil {
//		log.Fatal(err)
//	}
package session
