package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ToolsConfig names the external documentation binaries.
type ToolsConfig struct {
	Apropos      string `yaml:"apropos"`
	AproposQuery string `yaml:"apropos_query"`
	Man          string `yaml:"man"`
	ManWidth     int    `yaml:"man_width"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Tools       ToolsConfig `yaml:"tools"`
	Log         LogConfig   `yaml:"log"`
	VersionFile string      `yaml:"version_file"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries $MANVIEW_CONFIG, then ./manview.yaml, then
// ~/.config/manview/config.yaml. If none exists it returns defaults and an
// empty path.
func LoadDefault() (*AppConfig, string, error) {
	candidates := []string{}
	if env := os.Getenv("MANVIEW_CONFIG"); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, "manview.yaml")
	if userPath, err := defaultUserConfigPath(); err == nil {
		candidates = append(candidates, userPath)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *AppConfig) Validate() error {
	if c.Tools.Apropos == "" {
		return errors.New("config tools.apropos is required")
	}
	if c.Tools.Man == "" {
		return errors.New("config tools.man is required")
	}
	if c.Tools.TimeoutSecs < 0 {
		return errors.New("config tools.timeout_secs must not be negative")
	}
	if c.Tools.ManWidth < 0 {
		return errors.New("config tools.man_width must not be negative")
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "manview", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Tools.Apropos == "" {
		cfg.Tools.Apropos = "apropos"
	}
	if cfg.Tools.AproposQuery == "" {
		cfg.Tools.AproposQuery = "."
	}
	if cfg.Tools.Man == "" {
		cfg.Tools.Man = "man"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
