// Package config provides configuration loading and validation. Defaults are
// embedded; an optional user file overlays them. Degenerate values are
// rejected at startup rather than surfacing as broken worlds at runtime.
// See design doc Section 7.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/warren/internal/session"
	"github.com/talgya/warren/internal/terrain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all runtime parameters.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	World    WorldConfig    `yaml:"world"`
	Session  SessionConfig  `yaml:"session"`
	Agents   AgentsConfig   `yaml:"agents"`
	API      APIConfig      `yaml:"api"`
	Recorder RecorderConfig `yaml:"recorder"`
	Telem    TelemConfig    `yaml:"telemetry"`
}

// LogConfig holds slog settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// WorldConfig holds island generation parameters.
type WorldConfig struct {
	Radius     float64 `yaml:"radius"`
	Seed       int64   `yaml:"seed"`
	WaterLevel float64 `yaml:"water_level"`
	MaxHeight  float64 `yaml:"max_height"`
	Frequency  float64 `yaml:"frequency"`
}

// SessionConfig holds the gameplay loop parameters.
type SessionConfig struct {
	FrameRate          int  `yaml:"frame_rate"`
	PredatorPeriodMS   int  `yaml:"predator_period_ms"`
	StartScore         int  `yaml:"start_score"`
	StartLives         int  `yaml:"start_lives"`
	RescueBonus        int  `yaml:"rescue_bonus"`
	FoxRespectsTerrain bool `yaml:"fox_respects_terrain"`
}

// AgentsConfig sizes the fox and baby-rabbit populations. Zero derives the
// count from the island radius.
type AgentsConfig struct {
	Foxes       int `yaml:"foxes"`
	BabyRabbits int `yaml:"baby_rabbits"`
}

// APIConfig holds the observation server settings.
type APIConfig struct {
	Port     int    `yaml:"port"`
	AdminKey string `yaml:"admin_key"`
}

// RecorderConfig holds the sqlite session recorder settings.
type RecorderConfig struct {
	Path string `yaml:"path"`
}

// TelemConfig holds the CSV telemetry settings.
type TelemConfig struct {
	CSVPath string `yaml:"csv_path"`
}

// Load returns the embedded defaults overlaid with the user file at path
// (empty path = defaults only), validated.
func Load(path string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects out-of-range configuration as a startup error.
func (c Config) Validate() error {
	if err := c.GenConfig().Validate(); err != nil {
		return err
	}
	if c.Session.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.Session.FrameRate)
	}
	if c.Session.PredatorPeriodMS <= 0 {
		return fmt.Errorf("config: predator_period_ms must be positive, got %d", c.Session.PredatorPeriodMS)
	}
	if c.Session.StartLives <= 0 {
		return fmt.Errorf("config: start_lives must be positive, got %d", c.Session.StartLives)
	}
	if c.Agents.Foxes < 0 || c.Agents.BabyRabbits < 0 {
		return fmt.Errorf("config: agent counts must not be negative")
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("config: api port %d out of range", c.API.Port)
	}
	return nil
}

// GenConfig maps the world section onto terrain generation parameters.
func (c Config) GenConfig() terrain.GenConfig {
	return terrain.GenConfig{
		Radius:     c.World.Radius,
		Seed:       c.World.Seed,
		WaterLevel: c.World.WaterLevel,
		MaxHeight:  c.World.MaxHeight,
		Frequency:  c.World.Frequency,
	}
}

// SessionConfig maps the session section onto the session package.
func (c Config) SessionConfig() session.Config {
	return session.Config{
		FrameRate:          c.Session.FrameRate,
		PredatorPeriod:     time.Duration(c.Session.PredatorPeriodMS) * time.Millisecond,
		StartScore:         c.Session.StartScore,
		StartLives:         c.Session.StartLives,
		RescueBonus:        c.Session.RescueBonus,
		FoxRespectsTerrain: c.Session.FoxRespectsTerrain,
	}
}

// FoxCount returns the configured fox population, deriving from the island
// radius when unset.
func (c Config) FoxCount() int {
	if c.Agents.Foxes > 0 {
		return c.Agents.Foxes
	}
	n := int(c.World.Radius / 8)
	if n < 2 {
		n = 2
	}
	return n
}

// BabyRabbitCount returns the baby-rabbit population, deriving from the
// island radius when unset.
func (c Config) BabyRabbitCount() int {
	if c.Agents.BabyRabbits > 0 {
		return c.Agents.BabyRabbits
	}
	n := int(c.World.Radius / 6)
	if n < 3 {
		n = 3
	}
	return n
}
