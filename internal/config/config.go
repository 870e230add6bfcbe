// Package config loads the remote-play client configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/remoteplay/tui/internal/geometry"
)

type Config struct {
	Host        HostConfig        `yaml:"host"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Video       VideoConfig       `yaml:"video"`
	Simulator   SimulatorConfig   `yaml:"simulator"`
	Log         LogConfig         `yaml:"log"`
}

type HostConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// PreferencesConfig holds the user's persisted stream preferences.
type PreferencesConfig struct {
	TVMode           bool          `yaml:"tv_mode"`
	Rumble           bool          `yaml:"rumble"`
	DisplayMode      string        `yaml:"display_mode"`
	RenderTarget     string        `yaml:"render_target"`
	OverlayHideDelay time.Duration `yaml:"overlay_hide_delay"`
	CellAspect       float64       `yaml:"cell_aspect"`
}

// VideoConfig is the profile requested until the host announces its own.
type VideoConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type SimulatorConfig struct {
	Listen       string        `yaml:"listen"`
	Token        string        `yaml:"token"`
	LoginPin     string        `yaml:"login_pin"`
	Scenario     string        `yaml:"scenario"`
	StepInterval time.Duration `yaml:"step_interval"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Render targets.
const (
	RenderContainer = "container"
	RenderTransform = "transform"
)

func defaultConfig() *Config {
	return &Config{
		Host: HostConfig{
			URL: "ws://127.0.0.1:9295/session",
		},
		Preferences: PreferencesConfig{
			Rumble:           true,
			DisplayMode:      geometry.SelectionFit,
			RenderTarget:     RenderContainer,
			OverlayHideDelay: 2 * time.Second,
			CellAspect:       2.0,
		},
		Video: VideoConfig{
			Width:  1920,
			Height: 1080,
		},
		Simulator: SimulatorConfig{
			Listen:       "127.0.0.1:9295",
			LoginPin:     "1234",
			Scenario:     "pin",
			StepInterval: 1500 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
			File:  "remoteplay.log",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}

// Validate rejects values the screen cannot work with.
func (c *Config) Validate() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("video size must be positive, got %dx%d", c.Video.Width, c.Video.Height)
	}
	if c.Preferences.CellAspect <= 0 {
		return fmt.Errorf("cell_aspect must be positive, got %g", c.Preferences.CellAspect)
	}
	switch c.Preferences.RenderTarget {
	case RenderContainer, RenderTransform:
	default:
		return fmt.Errorf("render_target must be %q or %q, got %q",
			RenderContainer, RenderTransform, c.Preferences.RenderTarget)
	}
	return nil
}

// DisplayPolicy returns the configured initial display policy.
func (c *Config) DisplayPolicy() geometry.Policy {
	return geometry.PolicyFromSelection(c.Preferences.DisplayMode)
}
