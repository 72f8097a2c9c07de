package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/wricardo/mcp-training/ecomerge/game/engine"
	"github.com/wricardo/mcp-training/ecomerge/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// DefaultConfigID is the config used when a session names none
const DefaultConfigID = "classic"

// extensions lists the supported config file extensions in lookup order
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	m.defaultConfig = m.resolveDefault()
	return m, nil
}

// ConfigID strips a known extension from a file name
func ConfigID(filename string) string {
	ext := filepath.Ext(filename)
	for _, known := range extensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(filename, ext)
		}
	}
	return filename
}

// LoadConfig loads a configuration by id (file name without extension)
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	id := ConfigID(name)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	path, err := m.findFile(id)
	if err != nil {
		return nil, err
	}

	config, err := engine.LoadGameConfig(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, id)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, filepath.Base(path), err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another goroutine may have loaded it meanwhile; keep the first copy
	if cached, exists := m.configs[id]; exists {
		return cached, nil
	}
	m.configs[id] = config
	return config, nil
}

// findFile returns the first existing file for id
func (m *Manager) findFile(id string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(m.configDir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrConfigNotFound, id)
}

// configFiles lists config file names in the directory, sorted
func (m *Manager) configFiles() ([]string, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ConfigID(entry.Name()) != entry.Name() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// ListConfigs returns information about all valid configurations. Invalid
// files are skipped; Validate reports them.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	files, err := m.configFiles()
	if err != nil {
		return nil, err
	}

	configs := []*service.ConfigInfo{}
	seen := make(map[string]bool)
	for _, file := range files {
		id := ConfigID(file)
		if seen[id] {
			continue
		}
		seen[id] = true

		config, err := m.LoadConfig(id)
		if err != nil {
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    file,
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			GridSize:    config.GridSize,
			TimeLimit:   config.TimeLimit,
		})
	}

	return configs, nil
}

// Validate loads every config file and returns all failures combined
func (m *Manager) Validate() error {
	files, err := m.configFiles()
	if err != nil {
		return err
	}

	var errs error
	for _, file := range files {
		if _, err := engine.LoadGameConfig(filepath.Join(m.configDir, file)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
		}
	}
	return errs
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops cached configurations so the next load reads the files
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	def := m.resolveDefault()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
}

// resolveDefault picks classic, else the first valid file, else the built-in default
func (m *Manager) resolveDefault() *engine.GameConfig {
	if config, err := m.LoadConfig(DefaultConfigID); err == nil {
		return config
	}

	configs, err := m.ListConfigs()
	if err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			return config
		}
	}

	return engine.DefaultConfig()
}

// SaveConfig validates a configuration and writes it as JSON
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	id := ConfigID(name)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: invalid config id %q", ErrInvalidConfig, name)
	}
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	config.ApplyDefaults()
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, id+".json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	return nil
}
