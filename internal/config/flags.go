package config

import (
	"flag"
	"time"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagInflation = flag.Float64("inflation", -1, "Obstacle inflation buffer in cells")
	flagMaxSpeed  = flag.Float64("max-speed", 0, "Per-cycle distance cap")
	flagBudget    = flag.Duration("budget", 0, "Time budget per decision cycle")
	flagScenario  = flag.String("scenario", "", "Path to scenario YAML")
	flagCycles    = flag.Int("cycles", 0, "Number of decision cycles to run")
	flagLogFile   = flag.String("log-file", "", "Write logs to a rotating file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagInflation >= 0 {
		cfg.Navigation.Inflation = *flagInflation
	}
	if *flagMaxSpeed > 0 {
		cfg.Navigation.MaxSpeed = *flagMaxSpeed
	}
	if *flagBudget > time.Duration(0) {
		cfg.Turn.Budget = *flagBudget
	}
	if *flagScenario != "" {
		cfg.Scenario.Path = *flagScenario
	}
	if *flagCycles > 0 {
		cfg.Turn.Cycles = *flagCycles
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
