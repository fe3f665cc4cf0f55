package swarm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/Faultbox/swarmnav/internal/arena"
	"github.com/Faultbox/swarmnav/internal/config"
	"github.com/Faultbox/swarmnav/internal/navigation"
)

// Failure records a request that produced no command.
type Failure struct {
	ShipID int
	Err    error

	// Blockers are the avoided bodies on the straight line to the
	// destination, set when the search found no way through.
	Blockers []*arena.Entity
}

// Report summarises one decision cycle.
type Report struct {
	Turn         int
	Instructions []navigation.Instruction
	Docks        []arena.DockOrder
	Undocks      []int
	Failures     []Failure
	Skipped      []int // Ships not reached before the budget ran out
	Stats        navigation.Stats
	Elapsed      time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver's logger. The planner logs under a "planner"
// child of it.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithClock replaces time.Now for elapsed-time reporting.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// Driver runs decision cycles. Each cycle gets a fresh planner, so grids are
// rebuilt from that cycle's snapshot.
type Driver struct {
	cfg  config.NavigationConfig
	log  *zap.Logger
	now  func() time.Time
	turn int
}

// NewDriver creates a driver with the given navigation settings.
func NewDriver(cfg config.NavigationConfig, opts ...Option) *Driver {
	d := &Driver{
		cfg: cfg,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Turn returns the number of cycles run so far.
func (d *Driver) Turn() int { return d.turn }

// RunCycle processes requests in order until they are exhausted or ctx is
// done. The deadline is checked between requests; a search in progress is
// never interrupted.
func (d *Driver) RunCycle(ctx context.Context, snap *arena.Snapshot, reqs []Request) Report {
	d.turn++
	start := d.now()
	log := d.log.With(zap.Int("turn", d.turn))
	log.Info("executing turn", zap.Int("requests", len(reqs)))

	planets, ships := snap.Obstacles()
	planner := navigation.NewPlanner(snap.Board(), planets, ships,
		navigation.WithInflation(d.cfg.Inflation),
		navigation.WithMaxSpeed(d.cfg.MaxSpeed),
		navigation.WithLogger(log.Named("planner")),
	)

	report := Report{Turn: d.turn}
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			for _, r := range reqs[i:] {
				report.Skipped = append(report.Skipped, r.ShipID)
			}
			log.Warn("breaking early due to time limit",
				zap.Int("done", i),
				zap.Int("skipped", len(report.Skipped)),
				zap.Error(err))
			break
		}
		d.handle(planner, snap, req, &report, log)
	}

	report.Stats = planner.Stats()
	report.Elapsed = d.now().Sub(start)
	log.Info("turn complete",
		zap.Int("instructions", len(report.Instructions)),
		zap.Int("docks", len(report.Docks)),
		zap.Int("undocks", len(report.Undocks)),
		zap.Int("failures", len(report.Failures)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("expanded", report.Stats.NodesExpanded),
		zap.Duration("elapsed", report.Elapsed))
	return report
}

func (d *Driver) handle(planner *navigation.Planner, snap *arena.Snapshot, req Request, report *Report, log *zap.Logger) {
	fail := func(err error) {
		report.Failures = append(report.Failures, Failure{ShipID: req.ShipID, Err: err})
	}

	ship, err := snap.Ship(req.ShipID)
	if err != nil {
		log.Warn("request for unknown ship", zap.Int("ship", req.ShipID))
		fail(err)
		return
	}

	if req.Undock {
		if !ship.Docked {
			fail(fmt.Errorf("%w: %d", ErrNotDocked, ship.ID))
			return
		}
		log.Debug("undocking", zap.Int("ship", ship.ID))
		report.Undocks = append(report.Undocks, ship.ID)
		return
	}

	if req.Dock && req.Target.Kind == TargetPlanet {
		planet, err := snap.Planet(req.Target.ID)
		if err != nil {
			fail(err)
			return
		}
		if ship.CanDock(planet) {
			log.Debug("docking", zap.Int("ship", ship.ID), zap.Int("planet", planet.ID))
			report.Docks = append(report.Docks, arena.DockOrder{ShipID: ship.ID, PlanetID: planet.ID})
			return
		}
	}

	dest, err := Resolve(snap, ship, req.Target, d.cfg.MinApproach)
	if err != nil {
		fail(err)
		return
	}

	category := req.Category
	ins, err := planner.NavigationCommand(ship.Obstacle(), dest, category)
	if err != nil && req.Fallback != nil && navigation.IsRecoverable(err) {
		log.Debug("retrying with fallback category",
			zap.Int("ship", ship.ID),
			zap.Stringer("category", *req.Fallback),
			zap.Error(err))
		category = *req.Fallback
		ins, err = planner.NavigationCommand(ship.Obstacle(), dest, category)
	}
	if err != nil {
		f := Failure{ShipID: req.ShipID, Err: err}
		if errors.Is(err, navigation.ErrBlockedEndpoint) || errors.Is(err, navigation.ErrNoPathFound) {
			f.Blockers = Blockers(snap, ship, dest, category, d.cfg.Inflation)
			if len(f.Blockers) > 0 {
				log.Debug("destination obstructed",
					zap.Int("ship", ship.ID),
					zap.Stringer("goal", dest),
					zap.Stringers("blockers", f.Blockers))
			}
		}
		report.Failures = append(report.Failures, f)
		return
	}
	report.Instructions = append(report.Instructions, ins)
}

// Blockers returns the bodies avoided under category that lie within
// clearance of the straight line from ship to dest. The ship itself is
// never included.
func Blockers(snap *arena.Snapshot, ship *arena.Entity, dest navigation.Cell, category navigation.Category, clearance float64) []*arena.Entity {
	var kinds []arena.Kind
	switch category {
	case navigation.CategoryPlanets:
		kinds = []arena.Kind{arena.KindPlanet}
	case navigation.CategoryShips:
		kinds = []arena.Kind{arena.KindShip}
	case navigation.CategoryAll:
		kinds = []arena.Kind{arena.KindPlanet, arena.KindShip}
	default:
		return nil
	}

	goal := orb.Point{float64(dest.Col), float64(dest.Row)}
	var out []*arena.Entity
	for _, e := range snap.ObstaclesBetween(ship.Point(), goal, clearance, ship) {
		if slices.Contains(kinds, e.Kind) {
			out = append(out, e)
		}
	}
	return out
}

// Resolve turns a target into the destination cell for ship. Planet and ship
// targets resolve to the point minApproach beyond the target's surface.
func Resolve(snap *arena.Snapshot, ship *arena.Entity, t Target, minApproach float64) (navigation.Cell, error) {
	switch t.Kind {
	case TargetPlanet:
		planet, err := snap.Planet(t.ID)
		if err != nil {
			return navigation.Cell{}, err
		}
		return snap.ApproachCell(ship, planet, minApproach), nil
	case TargetShip:
		other, err := snap.Ship(t.ID)
		if err != nil {
			return navigation.Cell{}, err
		}
		return snap.ApproachCell(ship, other, minApproach), nil
	case TargetCell:
		return t.Cell, nil
	default:
		return navigation.Cell{}, fmt.Errorf("%w: %d", ErrUnknownTarget, uint8(t.Kind))
	}
}
