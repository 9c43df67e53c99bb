package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/golem/game/engine"
)

func TestManager_Create(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", "golem", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" || session.ConfigID != "golem" {
			t.Errorf("Unexpected session %s/%s", session.ID, session.ConfigID)
		}
		if session.Engine == nil || !session.Engine.Ready() {
			t.Error("Expected a set-up engine")
		}
		if session.Scene == nil || session.Scene.Len() == 0 {
			t.Error("Expected the scene to hold the world")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", "golem", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		if _, err := manager.Create("test-session", "golem", config); err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		if _, err := manager.Create("TEST-SESSION", "golem", config); err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid session ID", func(t *testing.T) {
		for _, id := range []string{"../escape", "has space", "a/b"} {
			if _, err := manager.Create(id, "golem", config); err != ErrInvalidSessionID {
				t.Errorf("Expected ErrInvalidSessionID for %q, got %v", id, err)
			}
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Name = ""
		if _, err := manager.Create("invalid-test", "golem", invalidConfig); err == nil {
			t.Error("Expected error for invalid config")
		}
	})

	t.Run("missing start map set", func(t *testing.T) {
		missing := createTestConfig()
		missing.StartMapSet = "cave"
		missing.MapSets = append(missing.MapSets, "cave")
		_, err := manager.Create("cave-test", "cave", missing)
		if !errors.Is(err, engine.ErrMissingResource) {
			t.Errorf("Expected ErrMissingResource, got %v", err)
		}
		if _, err := manager.Get("cave-test"); err != ErrSessionNotFound {
			t.Error("Failed creation must not register a session")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager(testWorlds())
	created, _ := manager.Create("get-test", "golem", createTestConfig())

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Errorf("Expected the created session")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session != created {
			t.Errorf("Expected same session regardless of case")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		if _, err := manager.Get("non-existent"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()

	first, err := manager.GetOrCreate("new-session", "golem", config)
	if err != nil {
		t.Fatalf("Failed to get or create session: %v", err)
	}
	second, err := manager.GetOrCreate("new-session", "golem", config)
	if err != nil {
		t.Fatalf("Failed to get existing session: %v", err)
	}
	if first != second {
		t.Error("Expected GetOrCreate to return the existing session")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()
	manager.Create("delete-test", "golem", config)

	t.Run("delete existing session", func(t *testing.T) {
		if err := manager.Delete("delete-test"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if _, err := manager.Get("delete-test"); err != ErrSessionNotFound {
			t.Error("Expected session to be deleted")
		}
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		if err := manager.Delete("non-existent"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("case-insensitive delete", func(t *testing.T) {
		manager.Create("case-test", "golem", config)
		if err := manager.Delete("CASE-TEST"); err != nil {
			t.Fatalf("Failed to delete with different case: %v", err)
		}
		if _, err := manager.Get("case-test"); err != ErrSessionNotFound {
			t.Error("Expected session to be deleted regardless of case")
		}
	})

	t.Run("delete from memory only", func(t *testing.T) {
		manager.Create("memory-test", "golem", config)
		if err := manager.DeleteFromMemory("memory-test"); err != nil {
			t.Fatalf("DeleteFromMemory failed: %v", err)
		}
		if err := manager.DeleteFromMemory("memory-test"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_List(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()

	ids := []string{"list-1", "list-2", "list-3"}
	for _, id := range ids {
		if _, err := manager.Create(id, "golem", config); err != nil {
			t.Fatalf("Failed to create %s: %v", id, err)
		}
	}

	found := make(map[string]bool)
	for _, s := range manager.List() {
		found[s.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			t.Errorf("Session %s not found in list", id)
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()

	active, _ := manager.Create("active", "golem", config)
	expired, _ := manager.Create("expired", "golem", config)
	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	if deleted := manager.CleanupExpiredSessions(1 * time.Hour); deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}
	if _, err := manager.Get("expired"); err != ErrSessionNotFound {
		t.Error("Expected expired session to be deleted")
	}
	if _, err := manager.Get("active"); err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager(testWorlds())
	session, _ := manager.Create("access-test", "golem", createTestConfig())
	originalTime := session.LastAccessedAt

	time.Sleep(10 * time.Millisecond)

	if err := manager.UpdateLastAccessed("access-test"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	updated, _ := manager.Get("access-test")
	if !updated.LastAccessedAt.After(originalTime) {
		t.Error("Expected LastAccessedAt to be updated")
	}
	if err := manager.UpdateLastAccessed("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_Exists(t *testing.T) {
	manager := NewManager(testWorlds())
	manager.Create("exists-test", "golem", createTestConfig())

	tests := []struct {
		id   string
		want bool
	}{
		{"exists-test", true},
		{"EXISTS-TEST", true},
		{"non-existent", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := manager.sessionExists(tt.id); got != tt.want {
				t.Errorf("sessionExists(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			// every ID is requested twice
			_, err := manager.Create(fmt.Sprintf("conc-%d", id%20), "golem", config)
			if err != nil && err != ErrSessionAlreadyExists {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()

	session1, _ := manager.Create("iso-1", "golem", config)
	session2, _ := manager.Create("iso-2", "golem", config)

	session1.Engine.Execute(engine.CmdDpadRight)
	session1.Engine.Execute(engine.CmdControlB)

	if gridPos(session2) != (engine.GridPos{Row: 5, Col: 5}) {
		t.Errorf("Session 2 should not be affected by session 1 commands, at %+v", gridPos(session2))
	}
	if gridPos(session1) != (engine.GridPos{Row: 5, Col: 6}) {
		t.Errorf("Expected session 1 at 5,6, got %+v", gridPos(session1))
	}
	if session2.Engine.Player().Stats.Gold != 0 {
		t.Error("Gold must not leak between sessions")
	}
	if session1.Scene == session2.Scene {
		t.Error("Sessions must not share a scene")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager(testWorlds())
	config := createTestConfig()

	generatedIDs := make(map[string]bool)
	for i := 0; i < 30; i++ {
		session, err := manager.Create("", "golem", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true
		if len(session.ID) != 4 || !ValidID(session.ID) {
			t.Errorf("Expected a valid 4-character ID, got %q", session.ID)
		}
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"ab12", true},
		{"test-session_1", true},
		{"", false},
		{"../etc", false},
		{"a.json", false},
		{"with space", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
