// Package config persists the small set of switcher settings: the
// bound shortcut, the API port, and the log level.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bryanchriswhite/rifthold/internal/logger"
)

// Defaults applied when no config file exists.
const (
	DefaultShortcut   = "alt+space"
	DefaultServerPort = 8080
	DefaultLogLevel   = "info"
)

// Config is the on-disk configuration.
type Config struct {
	Shortcut   string `json:"shortcut" yaml:"shortcut"`
	ServerPort int    `json:"server_port" yaml:"server_port"`
	LogLevel   string `json:"log_level" yaml:"log_level"`
}

// Manager loads, serves and saves the configuration.
type Manager struct {
	configPath string
	mu         sync.RWMutex
	config     Config
}

// NewManager creates a configuration manager backed by configFile, or
// the default path under the user config directory when empty. A
// missing file is created with defaults.
func NewManager(configFile string) (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "rifthold")
	path := filepath.Join(configDir, "config.yaml")
	if configFile != "" {
		path = configFile
	}

	m := &Manager{configPath: path}

	if err := m.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logger.WithComponent("config").Info().
			Str("path", path).
			Msg("config file not found, creating with defaults")
		m.config = defaults()
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	// Flags and env bound through viper override the file.
	if viper.IsSet("server_port") && viper.GetInt("server_port") > 0 {
		m.config.ServerPort = viper.GetInt("server_port")
	}
	if viper.IsSet("log_level") && viper.GetString("log_level") != "" {
		m.config.LogLevel = viper.GetString("log_level")
	}

	logger.WithComponent("config").Info().
		Str("path", path).
		Str("shortcut", m.config.Shortcut).
		Msg("config loaded")

	return m, nil
}

func defaults() Config {
	return Config{
		Shortcut:   DefaultShortcut,
		ServerPort: DefaultServerPort,
		LogLevel:   DefaultLogLevel,
	}
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Shortcut == "" {
		cfg.Shortcut = DefaultShortcut
	}
	if cfg.ServerPort == 0 {
		cfg.ServerPort = DefaultServerPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the backing config file path.
func (m *Manager) Path() string {
	return m.configPath
}

// SetShortcut updates the bound shortcut and persists it.
func (m *Manager) SetShortcut(shortcut string) error {
	m.mu.Lock()
	m.config.Shortcut = shortcut
	m.mu.Unlock()
	return m.Save()
}

// Save writes the current configuration to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
