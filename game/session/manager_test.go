package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
)

func createTestConfig() *engine.GameConfig {
	config := engine.DefaultConfig()
	config.Name = "session-test"
	return config
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("Test-Session", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Error("Expected engine to be initialized")
		}
		if session.Engine.Phase() != engine.PhaseNotStarted {
			t.Errorf("Expected engine not started, got %s", session.Engine.Phase())
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character ID, got '%s'", session.ID)
		}
	})

	t.Run("duplicate ID rejected case-insensitively", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("invalid ID rejected", func(t *testing.T) {
		_, err := manager.Create("bad id!", config)
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		bad := createTestConfig()
		bad.TimeLimit = 0
		if _, err := manager.Create("bad-config", bad); err == nil {
			t.Error("Expected error for invalid config")
		}
	})

	t.Run("engine options applied", func(t *testing.T) {
		session, err := manager.Create("named", config, engine.WithPlayerName("ada"))
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.Engine.GetState().PlayerName != "ada" {
			t.Errorf("Expected player name ada, got %q", session.Engine.GetState().PlayerName)
		}
	})
}

func TestManager_GetAndDelete(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("abcd", createTestConfig())

	got, err := manager.Get("ABCD")
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if got != created {
		t.Error("Expected the same session instance")
	}

	if _, err := manager.Get("zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}

	if err := manager.Delete("abcd"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if err := manager.Delete("abcd"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
	if manager.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", manager.Count())
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("game", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := manager.GetOrCreate("game", config)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("Expected existing session to be returned")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	for _, id := range []string{"a1", "b2", "c3"} {
		manager.Create(id, createTestConfig())
	}
	if got := len(manager.List()); got != 3 {
		t.Errorf("Expected 3 sessions, got %d", got)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	manager.Create("old", createTestConfig())
	now = now.Add(2 * time.Hour)
	manager.Create("new", createTestConfig())

	removed := manager.CleanupExpiredSessions(time.Hour)
	if len(removed) != 1 || removed[0] != "old" {
		t.Errorf("Expected only 'old' removed, got %v", removed)
	}
	if _, err := manager.Get("new"); err != nil {
		t.Errorf("Expected 'new' to survive, got %v", err)
	}

	// Touching a session keeps it alive
	now = now.Add(2 * time.Hour)
	if err := manager.UpdateLastAccessed("new"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if removed := manager.CleanupExpiredSessions(time.Hour); len(removed) != 0 {
		t.Errorf("Expected no removals after access, got %v", removed)
	}
	if err := manager.UpdateLastAccessed("gone"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", config)
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			manager.Get(session.ID)
			manager.UpdateLastAccessed(session.ID)
			manager.List()
		}()
	}
	wg.Wait()

	if manager.Count() != 50 {
		t.Errorf("Expected 50 unique sessions, got %d", manager.Count())
	}
}
