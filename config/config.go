// ABOUTME: Configuration management for playlist generation defaults
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

// Package config stores the user's preferred generation defaults in a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"cycle-backgrounds/playlist"
)

const (
	localConfigName = "./cycle-backgrounds.toml"
	appName         = "cycle-backgrounds"
)

// Defaults holds the values used when a flag is not given on the command line
type Defaults struct {
	StaticSeconds     float64 `toml:"static_seconds"`
	TransitionSeconds float64 `toml:"transition_seconds"`
	OutputName        string  `toml:"output"`
	Randomize         bool    `toml:"randomize"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Defaults {
	return Defaults{
		StaticSeconds:     playlist.DefaultStaticSeconds,
		TransitionSeconds: playlist.DefaultTransitionSeconds,
		OutputName:        playlist.DefaultOutputName,
		Randomize:         false,
	}
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/cycle-backgrounds/config.toml
func GetConfigPath() string {
	if _, err := os.Stat(localConfigName); err == nil {
		return localConfigName
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return localConfigName
	}

	return filepath.Join(home, ".config", appName, "config.toml")
}

// LoadConfig loads configuration from a TOML file.
// A missing file yields the defaults and no error; keys absent from the
// file keep their default values.
func LoadConfig(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Defaults) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Only one decimal digit ever reaches the playlist
	config = roundConfigPrecision(config)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// roundConfigPrecision rounds the durations to one decimal place
func roundConfigPrecision(config Defaults) Defaults {
	config.StaticSeconds = playlist.RoundSeconds(config.StaticSeconds)
	config.TransitionSeconds = playlist.RoundSeconds(config.TransitionSeconds)

	return config
}

// SharedConfig guards Defaults shared between the preview and its caller
type SharedConfig struct {
	mu     sync.RWMutex
	config Defaults
}

// NewSharedConfig wraps cfg
func NewSharedConfig(cfg Defaults) *SharedConfig {
	return &SharedConfig{config: cfg}
}

// Get returns a copy of the current configuration
func (s *SharedConfig) Get() Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Update replaces the current configuration
func (s *SharedConfig) Update(cfg Defaults) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = cfg
}
