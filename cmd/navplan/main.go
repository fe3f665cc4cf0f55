// Package main runs the fleet planner over a scenario and prints one Halite
// command queue per decision cycle.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/swarmnav/internal/arena"
	"github.com/Faultbox/swarmnav/internal/config"
	"github.com/Faultbox/swarmnav/internal/halite"
	"github.com/Faultbox/swarmnav/internal/logger"
	"github.com/Faultbox/swarmnav/internal/swarm"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== swarmnav planner ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(context.Background(), cfg, os.Stdout, logger.Named("navplan")); err != nil {
		logger.Error("planner failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// run plans cfg.Turn.Cycles cycles, writing each command queue as one line.
// Scripted requests are replayed every cycle; without them the default
// swarm policy picks targets.
func run(ctx context.Context, cfg *config.Config, out io.Writer, log *zap.Logger) error {
	if cfg.Scenario.Path == "" {
		return errors.New("no scenario: pass -scenario or set scenario.path")
	}

	sc, err := arena.LoadScenario(cfg.Scenario.Path)
	if err != nil {
		return err
	}
	snap := sc.Snapshot
	log.Info("scenario loaded",
		zap.String("path", cfg.Scenario.Path),
		zap.Int("width", snap.Width),
		zap.Int("height", snap.Height),
		zap.Int("planets", len(snap.Planets)),
		zap.Int("ships", len(snap.Ships)))

	driver := swarm.NewDriver(cfg.Navigation, swarm.WithLogger(log.Named("swarm")))
	policy := swarm.NewPolicy(cfg.Navigation, cfg.Policy, log.Named("policy"))

	for cycle := 0; cycle < cfg.Turn.Cycles; cycle++ {
		reqs := swarm.FromScenario(sc.Requests, cfg.Navigation)
		if len(reqs) == 0 {
			reqs = policy.Requests(snap)
		}

		cycleCtx, cancel := context.WithTimeout(ctx, cfg.Turn.Budget)
		report := driver.RunCycle(cycleCtx, snap, reqs)
		cancel()

		for _, f := range report.Failures {
			log.Info("no command for ship", zap.Int("ship", f.ShipID), zap.Error(f.Err))
		}

		if _, err := fmt.Fprintln(out, halite.Queue(halite.Commands(report))); err != nil {
			return fmt.Errorf("writing commands: %w", err)
		}

		if cycle+1 < cfg.Turn.Cycles {
			if snap, err = snap.Advance(report.Instructions, report.Docks, report.Undocks); err != nil {
				return err
			}
		}
	}
	return nil
}
