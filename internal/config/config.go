package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Dir is the per-project configuration directory.
const Dir = ".fastclick"

// Config represents the fastclick configuration
type Config struct {
	// Debounce settings
	WindowMs int64  `json:"window_ms"`
	Manifest string `json:"manifest,omitempty"`

	// UI preferences
	Theme string `json:"theme"`
	Debug bool   `json:"debug"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		WindowMs: 500,
		Theme:    "fire",
		Debug:    false,
	}
}

// Window returns the default debounce window.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

// overrides holds values read from the environment.
type overrides struct {
	WindowMs *int64 `env:"FASTCLICK_WINDOW_MS"`
	Debug    *bool  `env:"FASTCLICK_DEBUG"`
	Theme    string `env:"FASTCLICK_THEME"`
	Manifest string `env:"FASTCLICK_MANIFEST"`
}

// Manager handles configuration loading and saving
type Manager struct {
	projectPath string
	configPath  string

	// file is what config.json holds; config adds environment overrides.
	file   Config
	config *Config
}

// NewManager creates a new configuration manager
func NewManager(projectPath string) *Manager {
	return &Manager{
		projectPath: projectPath,
		configPath:  filepath.Join(projectPath, Dir, "config.json"),
		file:        *DefaultConfig(),
		config:      DefaultConfig(),
	}
}

// Load reads the configuration from disk, creating defaults if needed, then
// applies environment overrides.
func (m *Manager) Load() error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", Dir, err)
	}

	if err := m.ensureGitignore(); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	data, err := os.ReadFile(m.configPath)
	switch {
	case os.IsNotExist(err):
		m.file = *DefaultConfig()
		if err := m.Save(); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("failed to read config file: %w", err)
	default:
		cfg := DefaultConfig()
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config JSON: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return fmt.Errorf("invalid config file: %w", err)
		}
		m.file = *cfg
	}

	return m.applyEnv()
}

// applyEnv rebuilds the effective config from the file values and the
// FASTCLICK_* variables.
func (m *Manager) applyEnv() error {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg := m.file
	if o.WindowMs != nil {
		cfg.WindowMs = *o.WindowMs
	}
	if o.Debug != nil {
		cfg.Debug = *o.Debug
	}
	if o.Theme != "" {
		cfg.Theme = o.Theme
	}
	if o.Manifest != "" {
		cfg.Manifest = o.Manifest
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	m.config = &cfg
	return nil
}

// Save writes the file configuration to disk. Environment overrides are
// never written back.
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.configPath
}

// LogPath returns where the demo writes its log.
func (m *Manager) LogPath() string {
	return filepath.Join(m.projectPath, Dir, "fastclick.log")
}

// ManifestPath resolves the manifest setting against the project path.
// It returns "" when no manifest is configured.
func (m *Manager) ManifestPath() string {
	p := m.config.Manifest
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.projectPath, p)
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	next := m.file
	switch key {
	case "window_ms":
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("window_ms: %w", err)
		}
		next.WindowMs = ms
	case "theme":
		next.Theme = value
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("debug: %w", err)
		}
		next.Debug = b
	case "manifest":
		next.Manifest = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	if err := next.validate(); err != nil {
		return err
	}

	m.file = next
	if err := m.Save(); err != nil {
		return err
	}
	return m.applyEnv()
}

func (c *Config) validate() error {
	if c.WindowMs <= 0 {
		return fmt.Errorf("window_ms must be positive, got %d", c.WindowMs)
	}
	if c.Theme == "" {
		return fmt.Errorf("theme must not be empty")
	}
	return nil
}

// ensureGitignore creates a .gitignore in .fastclick/ with smart defaults
func (m *Manager) ensureGitignore() error {
	gitignorePath := filepath.Join(filepath.Dir(m.configPath), ".gitignore")

	if _, err := os.Stat(gitignorePath); !os.IsNotExist(err) {
		return nil // Already exists
	}

	gitignoreContent := `# fastclick data directory .gitignore
#
# Config and the marker manifest are committed; logs are not.

*.log
*.tmp

!config.json
!bindings.yaml
!.gitignore
`

	return os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644)
}
