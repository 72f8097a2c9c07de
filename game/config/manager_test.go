package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/multierr"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
)

func createValidConfig(name string) *engine.GameConfig {
	config := engine.DefaultConfig()
	config.Name = name
	config.Description = "Test configuration"
	return config
}

func writeConfig(t *testing.T, dir, filename string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", filename, err)
	}
}

func writeJSONConfig(t *testing.T, dir, filename string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	writeConfig(t, dir, filename, data)
}

func TestNewManager(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		if _, err := NewManager(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("Expected error for missing directory")
		}
	})

	t.Run("empty directory falls back to built-in default", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		def := manager.GetDefault()
		if def == nil || def.Name != "classic" || def.GridSize != engine.DefaultGridSize {
			t.Errorf("Expected built-in classic default, got %+v", def)
		}
	})

	t.Run("classic file preferred", func(t *testing.T) {
		dir := t.TempDir()
		writeJSONConfig(t, dir, "aaa.json", createValidConfig("aaa"))
		custom := createValidConfig("My Classic")
		custom.TimeLimit = 45
		writeJSONConfig(t, dir, "classic.json", custom)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().TimeLimit != 45 {
			t.Errorf("Expected classic.json as default, got %+v", manager.GetDefault())
		}
	})

	t.Run("first valid file when classic missing", func(t *testing.T) {
		dir := t.TempDir()
		writeJSONConfig(t, dir, "zen.json", createValidConfig("zen"))
		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "zen" {
			t.Errorf("Expected zen as default, got %s", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "classic.json", createValidConfig("classic"))
	writeConfig(t, dir, "blitz.yaml", []byte("name: blitz\ntime_limit: 30\n"))
	writeConfig(t, dir, "broken.json", []byte(`{"name": "broken", "grid_size": 99}`))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"json by id", "classic", nil},
		{"json with extension", "classic.json", nil},
		{"yaml by id", "blitz", nil},
		{"missing", "nope", ErrConfigNotFound},
		{"invalid", "broken", ErrInvalidConfig},
		{"path traversal", "../classic", ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := manager.LoadConfig(tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if config == nil {
				t.Fatal("Expected config")
			}
		})
	}

	blitz, _ := manager.LoadConfig("blitz")
	if blitz.TimeLimit != 30 || blitz.GridSize != engine.DefaultGridSize {
		t.Errorf("Expected YAML values with defaults, got %+v", blitz)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "classic.json", createValidConfig("classic"))
	writeConfig(t, dir, "blitz.yml", []byte("name: blitz\ntime_limit: 30\n"))
	writeConfig(t, dir, "broken.json", []byte(`{not json`))
	writeConfig(t, dir, "notes.txt", []byte("ignored"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	if configs[0].ConfigID != "blitz" || configs[0].TimeLimit != 30 {
		t.Errorf("Unexpected first config %+v", configs[0])
	}
	if configs[1].ConfigID != "classic" || configs[1].Filename != "classic.json" {
		t.Errorf("Unexpected second config %+v", configs[1])
	}
}

func TestManager_Validate(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "classic.json", createValidConfig("classic"))
	writeConfig(t, dir, "bad1.json", []byte(`{not json`))
	writeConfig(t, dir, "bad2.yaml", []byte("name: bad\ngrid_size: 1\n"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	err = manager.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("Expected 2 combined errors, got %d: %v", got, err)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig("saved")
	config.GridSize = 6
	if err := manager.SaveConfig("saved", config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved.json on disk: %v", err)
	}

	manager.RefreshCache()
	loaded, err := manager.LoadConfig("saved")
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if loaded.GridSize != 6 {
		t.Errorf("Expected grid size 6, got %d", loaded.GridSize)
	}

	bad := createValidConfig("bad")
	bad.TimeLimit = 1
	if err := manager.SaveConfig("bad", bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", createValidConfig("x")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for traversal, got %v", err)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "classic.json", createValidConfig("classic"))
	writeJSONConfig(t, dir, "zen.json", createValidConfig("zen"))

	manager, _ := NewManager(dir)
	if err := manager.SetDefault("zen"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "zen" {
		t.Errorf("Expected zen default, got %s", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_CachingBehavior(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "classic.json", createValidConfig("classic"))
	manager, _ := NewManager(dir)

	first, _ := manager.LoadConfig("classic")

	changed := createValidConfig("classic")
	changed.TimeLimit = 99
	writeJSONConfig(t, dir, "classic.json", changed)

	cached, _ := manager.LoadConfig("classic")
	if cached != first {
		t.Error("Expected cached config before refresh")
	}

	manager.RefreshCache()
	fresh, _ := manager.LoadConfig("classic")
	if fresh.TimeLimit != 99 {
		t.Errorf("Expected refreshed config, got time limit %d", fresh.TimeLimit)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeJSONConfig(t, dir, "classic.json", createValidConfig("classic"))
	manager, _ := NewManager(dir)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("classic"); err != nil {
				t.Errorf("LoadConfig failed: %v", err)
			}
			manager.ListConfigs()
			manager.GetDefault()
		}()
	}
	wg.Wait()
}

func TestRepositoryConfigsAreValid(t *testing.T) {
	manager, err := NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to open repository configs: %v", err)
	}
	if err := manager.Validate(); err != nil {
		t.Errorf("Repository configs failed validation: %v", err)
	}
	if manager.GetDefault().Name != "classic" {
		t.Errorf("Expected classic default, got %s", manager.GetDefault().Name)
	}
}
