// Package config loads planner settings from YAML and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/swarmnav/internal/navigation"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all planner settings.
type Config struct {
	Navigation NavigationConfig `yaml:"navigation"`
	Turn       TurnConfig       `yaml:"turn"`
	Policy     PolicyConfig     `yaml:"policy"`
	Logging    LoggingConfig    `yaml:"logging"`
	Scenario   ScenarioConfig   `yaml:"scenario"`
}

// NavigationConfig holds grid and movement settings.
type NavigationConfig struct {
	Inflation        float64             `yaml:"inflation"`         // Cells added around every obstacle
	MaxSpeed         float64             `yaml:"max_speed"`         // Per-cycle distance cap
	Category         navigation.Category `yaml:"category"`          // Obstacles avoided by default
	FallbackCategory navigation.Category `yaml:"fallback_category"` // Retried once on a recoverable failure
	MinApproach      float64             `yaml:"min_approach"`      // Stand-off from a target planet's surface
}

// TurnConfig holds decision-cycle settings.
type TurnConfig struct {
	Budget time.Duration `yaml:"budget"`
	Cycles int           `yaml:"cycles"`
}

// PolicyConfig tunes the built-in action policy used when a scenario
// scripts no requests. Chances of 1 make it deterministic.
type PolicyConfig struct {
	DivideChance float64 `yaml:"divide_chance"` // Divide rather than fortify
	AttackChance float64 `yaml:"attack_chance"` // Attack rather than defend
	DefendRange  float64 `yaml:"defend_range"`  // Defenders closer than this ignore ships
	Seed         uint64  `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScenarioConfig points at the arena snapshot to plan against.
type ScenarioConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config tuned for Halite II.
func Default() *Config {
	return &Config{
		Navigation: NavigationConfig{
			Inflation:        navigation.DefaultInflation,
			MaxSpeed:         navigation.DefaultMaxSpeed,
			Category:         navigation.CategoryAll,
			FallbackCategory: navigation.CategoryPlanets,
			MinApproach:      3,
		},
		Turn: TurnConfig{
			Budget: 1750 * time.Millisecond,
			Cycles: 1,
		},
		Policy: PolicyConfig{
			DivideChance: 1,
			AttackChance: 1,
			DefendRange:  20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that the settings can drive a planner.
func (c *Config) Validate() error {
	n := c.Navigation
	switch {
	case n.Inflation < 0:
		return fmt.Errorf("%w: navigation.inflation must be >= 0, got %g", ErrInvalidConfig, n.Inflation)
	case n.MaxSpeed <= 0:
		return fmt.Errorf("%w: navigation.max_speed must be > 0, got %g", ErrInvalidConfig, n.MaxSpeed)
	case !n.Category.Valid():
		return fmt.Errorf("%w: navigation.category %s", ErrInvalidConfig, n.Category)
	case !n.FallbackCategory.Valid():
		return fmt.Errorf("%w: navigation.fallback_category %s", ErrInvalidConfig, n.FallbackCategory)
	case n.MinApproach < 0:
		return fmt.Errorf("%w: navigation.min_approach must be >= 0, got %g", ErrInvalidConfig, n.MinApproach)
	case c.Turn.Budget <= 0:
		return fmt.Errorf("%w: turn.budget must be positive, got %s", ErrInvalidConfig, c.Turn.Budget)
	case c.Turn.Cycles < 1:
		return fmt.Errorf("%w: turn.cycles must be >= 1, got %d", ErrInvalidConfig, c.Turn.Cycles)
	case !chance(c.Policy.DivideChance):
		return fmt.Errorf("%w: policy.divide_chance must be in [0,1], got %g", ErrInvalidConfig, c.Policy.DivideChance)
	case !chance(c.Policy.AttackChance):
		return fmt.Errorf("%w: policy.attack_chance must be in [0,1], got %g", ErrInvalidConfig, c.Policy.AttackChance)
	case c.Policy.DefendRange < 0:
		return fmt.Errorf("%w: policy.defend_range must be >= 0, got %g", ErrInvalidConfig, c.Policy.DefendRange)
	}
	return nil
}

func chance(p float64) bool {
	return p >= 0 && p <= 1
}
