package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/swarmnav/internal/navigation"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Navigation.Inflation != 0.5 {
		t.Errorf("expected inflation 0.5, got %f", cfg.Navigation.Inflation)
	}
	if cfg.Navigation.MaxSpeed != 7 {
		t.Errorf("expected max speed 7, got %f", cfg.Navigation.MaxSpeed)
	}
	if cfg.Navigation.Category != navigation.CategoryAll {
		t.Errorf("expected category all, got %s", cfg.Navigation.Category)
	}
	if cfg.Navigation.FallbackCategory != navigation.CategoryPlanets {
		t.Errorf("expected fallback planets, got %s", cfg.Navigation.FallbackCategory)
	}
	if cfg.Turn.Budget != 1750*time.Millisecond {
		t.Errorf("expected budget 1.75s, got %v", cfg.Turn.Budget)
	}
	if cfg.Turn.Cycles != 1 {
		t.Errorf("expected 1 cycle, got %d", cfg.Turn.Cycles)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Policy.DivideChance != 1 || cfg.Policy.AttackChance != 1 || cfg.Policy.DefendRange != 20 {
		t.Errorf("unexpected policy defaults %+v", cfg.Policy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "swarmnav.yaml")

	yamlContent := `
navigation:
  inflation: 1
  max_speed: 5.5
  category: planets
  fallback_category: none
  min_approach: 2

turn:
  budget: 500ms
  cycles: 4

policy:
  divide_chance: 0.7
  attack_chance: 0.7
  seed: 42

logging:
  level: "debug"
  log_file: "navplan.log"

scenario:
  path: "maps/duel.yaml"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Navigation.Inflation != 1 {
		t.Errorf("expected inflation 1, got %f", cfg.Navigation.Inflation)
	}
	if cfg.Policy.DivideChance != 0.7 || cfg.Policy.Seed != 42 || cfg.Policy.DefendRange != 20 {
		t.Errorf("unexpected policy %+v", cfg.Policy)
	}
	if cfg.Navigation.MaxSpeed != 5.5 {
		t.Errorf("expected max speed 5.5, got %f", cfg.Navigation.MaxSpeed)
	}
	if cfg.Navigation.Category != navigation.CategoryPlanets {
		t.Errorf("expected category planets, got %s", cfg.Navigation.Category)
	}
	if cfg.Navigation.FallbackCategory != navigation.CategoryNone {
		t.Errorf("expected fallback none, got %s", cfg.Navigation.FallbackCategory)
	}
	if cfg.Turn.Budget != 500*time.Millisecond {
		t.Errorf("expected budget 500ms, got %v", cfg.Turn.Budget)
	}
	if cfg.Turn.Cycles != 4 {
		t.Errorf("expected 4 cycles, got %d", cfg.Turn.Cycles)
	}
	if cfg.Logging.LogFile != "navplan.log" {
		t.Errorf("expected log file 'navplan.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Scenario.Path != "maps/duel.yaml" {
		t.Errorf("expected scenario path, got %s", cfg.Scenario.Path)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":   "navigation:\n  max_speed: [\n",
		"category": "navigation:\n  category: asteroids\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative inflation", func(c *Config) { c.Navigation.Inflation = -0.1 }},
		{"zero max speed", func(c *Config) { c.Navigation.MaxSpeed = 0 }},
		{"bad category", func(c *Config) { c.Navigation.Category = navigation.Category(12) }},
		{"bad fallback", func(c *Config) { c.Navigation.FallbackCategory = navigation.Category(5) }},
		{"negative approach", func(c *Config) { c.Navigation.MinApproach = -1 }},
		{"zero budget", func(c *Config) { c.Turn.Budget = 0 }},
		{"zero cycles", func(c *Config) { c.Turn.Cycles = 0 }},
		{"divide chance above one", func(c *Config) { c.Policy.DivideChance = 1.5 }},
		{"negative attack chance", func(c *Config) { c.Policy.AttackChance = -0.1 }},
		{"negative defend range", func(c *Config) { c.Policy.DefendRange = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "swarmnav.yaml")
	if err := os.WriteFile(configPath, []byte("turn:\n  cycles: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find swarmnav.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "zero inflation is honored",
			setup: func() { *flagInflation = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Navigation.Inflation != 0 {
					t.Errorf("expected inflation 0, got %f", cfg.Navigation.Inflation)
				}
			},
			teardown: func() { *flagInflation = -1 },
		},
		{
			name: "speed and budget",
			setup: func() {
				*flagMaxSpeed = 3
				*flagBudget = 250 * time.Millisecond
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Navigation.MaxSpeed != 3 {
					t.Errorf("expected max speed 3, got %f", cfg.Navigation.MaxSpeed)
				}
				if cfg.Turn.Budget != 250*time.Millisecond {
					t.Errorf("expected budget 250ms, got %v", cfg.Turn.Budget)
				}
			},
			teardown: func() {
				*flagMaxSpeed = 0
				*flagBudget = 0
			},
		},
		{
			name: "scenario, cycles and log file",
			setup: func() {
				*flagScenario = "duel.yaml"
				*flagCycles = 3
				*flagLogFile = "out.log"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scenario.Path != "duel.yaml" || cfg.Turn.Cycles != 3 || cfg.Logging.LogFile != "out.log" {
					t.Errorf("flags not applied: %+v", cfg)
				}
			},
			teardown: func() {
				*flagScenario = ""
				*flagCycles = 0
				*flagLogFile = ""
			},
		},
		{
			name:  "unset flags keep defaults",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Navigation.Inflation != 0.5 || cfg.Navigation.MaxSpeed != 7 {
					t.Errorf("defaults changed without flags: %+v", cfg.Navigation)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
navigation:
  max_speed: 4
  inflation: 1.5
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagMaxSpeed = 6
	defer func() {
		*flagConfig = ""
		*flagMaxSpeed = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Navigation.MaxSpeed != 6 {
		t.Errorf("expected max speed 6 from flag, got %f", cfg.Navigation.MaxSpeed)
	}
	if cfg.Navigation.Inflation != 1.5 {
		t.Errorf("expected inflation 1.5 from file, got %f", cfg.Navigation.Inflation)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("turn:\n  cycles: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Navigation.Category = navigation.CategoryShips
	cfg.Turn.Budget = 900 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Navigation.Category != navigation.CategoryShips {
		t.Errorf("expected category ships, got %s", loaded.Navigation.Category)
	}
	if loaded.Turn.Budget != 900*time.Millisecond {
		t.Errorf("expected budget 900ms, got %v", loaded.Turn.Budget)
	}
}
