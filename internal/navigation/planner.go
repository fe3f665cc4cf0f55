package navigation

import (
	"errors"

	"go.uber.org/zap"
)

// Options configures a Planner.
type Options struct {
	Inflation float64
	MaxSpeed  float64
	Logger    *zap.Logger
}

// Option modifies Options.
type Option func(*Options)

// WithInflation sets the buffer added around every obstacle.
func WithInflation(inflation float64) Option {
	return func(o *Options) { o.Inflation = inflation }
}

// WithMaxSpeed sets the per-cycle distance cap.
func WithMaxSpeed(speed float64) Option {
	return func(o *Options) { o.MaxSpeed = speed }
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Stats counts planner outcomes over one cycle.
type Stats struct {
	Requests      int
	Instructions  int
	BlockedEnds   int
	NoPath        int
	Degenerate    int
	BadCategory   int
	NodesExpanded int
}

// Planner turns navigation requests into instructions. Build one per
// decision cycle; it is not safe for concurrent use.
type Planner struct {
	cache    *GridCache
	maxSpeed float64
	log      *zap.Logger
	stats    Stats
}

// NewPlanner creates a planner over the current cycle's obstacles.
func NewPlanner(board Board, planets, ships []Obstacle, opts ...Option) *Planner {
	o := Options{
		Inflation: DefaultInflation,
		MaxSpeed:  DefaultMaxSpeed,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Planner{
		cache:    NewGridCache(board, planets, ships, o.Inflation),
		maxSpeed: o.MaxSpeed,
		log:      o.Logger,
	}
}

// Cache exposes the planner's category grids.
func (p *Planner) Cache() *GridCache { return p.cache }

// MaxSpeed returns the configured distance cap.
func (p *Planner) MaxSpeed() float64 { return p.maxSpeed }

// Stats returns the counters accumulated so far.
func (p *Planner) Stats() Stats { return p.stats }

// Plan is everything the planner worked out for one request. Fields past
// the failing stage are left zero.
type Plan struct {
	Start Cell
	Dest  Cell

	// Occupancy is the self-excluded view searched; nil when the category
	// grid could not be resolved.
	Occupancy Occupancy
	Path      []Cell
	Expanded  int
	Hop       Hop

	Instruction Instruction
}

// NavigationCommand plans a single hop for ship toward dest, avoiding the
// obstacles selected by category. Failures are returned as *NavError
// wrapping one of the package sentinels.
func (p *Planner) NavigationCommand(ship Obstacle, dest Cell, category Category) (Instruction, error) {
	plan, err := p.Plan(ship, dest, category)
	return plan.Instruction, err
}

// Plan runs every stage for one request and returns the intermediate
// results alongside the instruction. Errors are the same as for
// NavigationCommand.
func (p *Planner) Plan(ship Obstacle, dest Cell, category Category) (Plan, error) {
	p.stats.Requests++
	log := p.log.With(zap.Int("ship", ship.ID()), zap.Stringer("category", category))

	x, y := ship.Center()
	plan := Plan{Start: CellAt(x, y), Dest: dest}

	// ResolveGrid, ExcludeSelf
	if category.Valid() && !p.cache.Built(category) {
		log.Debug("building obstacle grid")
	}
	view, err := p.cache.MapForShip(ship, category)
	if err != nil {
		log.Error("cannot resolve obstacle grid", zap.Error(err))
		return plan, p.fail(StageResolveGrid, ship, err)
	}
	plan.Occupancy = view

	// Search
	res, err := FindPath(plan.Start, dest, view)
	plan.Expanded = res.Expanded
	p.stats.NodesExpanded += res.Expanded
	if err != nil {
		log.Debug("search failed",
			zap.Stringer("start", plan.Start),
			zap.Stringer("goal", dest),
			zap.Int("expanded", res.Expanded),
			zap.Error(err))
		return plan, p.fail(StageSearch, ship, err)
	}

	// Simplify
	plan.Path = res.Path
	if len(plan.Path) == 0 {
		plan.Path = []Cell{plan.Start}
	}
	plan.Hop = Simplify(plan.Path, view)

	// Synthesize
	ins, err := Synthesize(ship.ID(), plan.Hop, p.maxSpeed)
	if err != nil {
		log.Debug("no instruction for hop", zap.Stringer("at", plan.Hop.From))
		return plan, p.fail(StageSynthesize, ship, err)
	}
	plan.Instruction = ins

	p.stats.Instructions++
	log.Debug("planned hop",
		zap.Stringer("from", plan.Hop.From),
		zap.Stringer("to", plan.Hop.To),
		zap.Int("path_len", len(plan.Path)),
		zap.Int("expanded", res.Expanded),
		zap.Float64("distance", ins.Distance),
		zap.Float64("angle", ins.Angle))
	return plan, nil
}

func (p *Planner) fail(stage Stage, ship Obstacle, err error) error {
	switch {
	case errors.Is(err, ErrUnknownCategory):
		p.stats.BadCategory++
	case errors.Is(err, ErrBlockedEndpoint):
		p.stats.BlockedEnds++
	case errors.Is(err, ErrNoPathFound):
		p.stats.NoPath++
	case errors.Is(err, ErrDegenerateHop):
		p.stats.Degenerate++
	}
	return &NavError{Stage: stage, ShipID: ship.ID(), Err: err}
}
