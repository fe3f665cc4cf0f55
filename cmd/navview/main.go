// Package main is a terminal viewer for the planner: it draws a scenario's
// obstacle grid with each request's search path and first hop.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/swarmnav/internal/arena"
	"github.com/Faultbox/swarmnav/internal/config"
	"github.com/Faultbox/swarmnav/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The screen owns stdout, so only a log file is written.
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logFileConfig(cfg), nil); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "navview: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func logFileConfig(cfg *config.Config) logger.FileConfig {
	if cfg.Logging.LogFile == "" {
		return logger.FileConfig{}
	}
	return logger.DefaultFileConfig(cfg.Logging.LogFile)
}

func run(cfg *config.Config) error {
	if cfg.Scenario.Path == "" {
		return errors.New("no scenario: pass -scenario or set scenario.path")
	}
	sc, err := arena.LoadScenario(cfg.Scenario.Path)
	if err != nil {
		return err
	}

	v := newViewer(sc, cfg, logger.Named("navview"))

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	render(screen, v.frame())
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return nil
			}
			render(screen, v.frame())
		case *tcell.EventResize:
			screen.Sync()
			render(screen, v.frame())
		case nil:
			return nil
		}
	}
}
