package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

type Config struct {
	API   APIConfig   `yaml:"api" json:"api"`
	Log   LogConfig   `yaml:"log" json:"log"`
	TUI   TUIConfig   `yaml:"tui" json:"tui"`
	Serve ServeConfig `yaml:"serve" json:"serve"`
}

type APIConfig struct {
	// BaseURL is the root of the /itens service.
	BaseURL string `yaml:"base_url" json:"baseUrl"`
}

type LogConfig struct {
	// File receives TUI logs. Empty disables logging for the TUI.
	File  string `yaml:"file" json:"file,omitempty"`
	Level string `yaml:"level" json:"level"`
}

type TUIConfig struct {
	// Glyphs is unicode or ascii.
	Glyphs string `yaml:"glyphs" json:"glyphs"`
	// Theme is auto, light or dark.
	Theme string `yaml:"theme" json:"theme"`
}

type ServeConfig struct {
	Addr string `yaml:"addr" json:"addr"`
	// DB is the sqlite file backing `itens serve`.
	DB string `yaml:"db" json:"db"`
}

func Defaults() Config {
	return Config{
		API: APIConfig{BaseURL: "http://localhost:3000"},
		Log: LogConfig{Level: "info"},
		TUI: TUIConfig{Glyphs: "unicode", Theme: "auto"},
		Serve: ServeConfig{
			Addr: "127.0.0.1:3000",
			DB:   "itens.sqlite",
		},
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.itens).
	if v := strings.TrimSpace(os.Getenv("ITENS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".itens"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file, falling back to defaults for anything the file
// leaves unset. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := Config{}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.TUI.Glyphs) {
	case "unicode", "utf8", "ascii":
	default:
		return fmt.Errorf("tui.glyphs must be unicode or ascii, got %q", c.TUI.Glyphs)
	}
	switch strings.ToLower(c.TUI.Theme) {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("tui.theme must be auto, light or dark, got %q", c.TUI.Theme)
	}
	return nil
}

// Save writes cfg atomically to the config path.
func Save(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
