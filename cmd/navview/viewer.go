package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/swarmnav/internal/arena"
	"github.com/Faultbox/swarmnav/internal/config"
	"github.com/Faultbox/swarmnav/internal/halite"
	"github.com/Faultbox/swarmnav/internal/navigation"
	"github.com/Faultbox/swarmnav/internal/swarm"
)

// frame is everything drawn for one request.
type frame struct {
	occ    navigation.Occupancy
	path   []navigation.Cell
	hop    navigation.Hop
	ship   *navigation.Cell
	target *navigation.Cell
	status string
}

// viewer steps through a scenario's requests and obstacle categories.
type viewer struct {
	snap     *arena.Snapshot
	reqs     []swarm.Request
	cfg      config.NavigationConfig
	log      *zap.Logger
	planner  *navigation.Planner
	index    int
	category navigation.Category
}

func newViewer(sc *arena.Scenario, all *config.Config, log *zap.Logger) *viewer {
	cfg := all.Navigation
	reqs := swarm.FromScenario(sc.Requests, cfg)
	if len(reqs) == 0 {
		reqs = swarm.NewPolicy(cfg, all.Policy, log.Named("policy")).Requests(sc.Snapshot)
	}
	planets, ships := sc.Snapshot.Obstacles()

	v := &viewer{
		snap: sc.Snapshot,
		reqs: reqs,
		cfg:  cfg,
		log:  log,
		planner: navigation.NewPlanner(sc.Snapshot.Board(), planets, ships,
			navigation.WithInflation(cfg.Inflation),
			navigation.WithMaxSpeed(cfg.MaxSpeed),
			navigation.WithLogger(log.Named("planner")),
		),
		category: cfg.Category,
	}
	if len(reqs) > 0 {
		v.category = reqs[0].Category
	}
	return v
}

// handleKey applies a key press and reports whether the viewer keeps running.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		v.selectRequest(v.index + 1)
	case tcell.KeyLeft:
		v.selectRequest(v.index - 1)
	case tcell.KeyTab:
		v.category = navigation.Categories[(int(v.category)+1)%len(navigation.Categories)]
	}
	return true
}

func (v *viewer) selectRequest(i int) {
	n := len(v.reqs)
	if n == 0 {
		return
	}
	v.index = (i%n + n) % n
	v.category = v.reqs[v.index].Category
}

// frame plans the selected request under the selected category.
func (v *viewer) frame() frame {
	empty := navigation.NewMatrix(v.snap.Width, v.snap.Height)
	if len(v.reqs) == 0 {
		return frame{occ: v.categoryGrid(empty), status: fmt.Sprintf("[%s] no requests", v.category)}
	}

	req := v.reqs[v.index]
	header := fmt.Sprintf("%d/%d ship %d -> %s [%s]", v.index+1, len(v.reqs), req.ShipID, req.Target, v.category)

	ship, err := v.snap.Ship(req.ShipID)
	if err != nil {
		return frame{occ: v.categoryGrid(empty), status: header + ": " + err.Error()}
	}
	dest, err := swarm.Resolve(v.snap, ship, req.Target, v.cfg.MinApproach)
	if err != nil {
		return frame{occ: v.categoryGrid(empty), status: header + ": " + err.Error()}
	}

	plan, err := v.planner.Plan(ship.Obstacle(), dest, v.category)
	f := frame{occ: plan.Occupancy, ship: &plan.Start, target: &plan.Dest}
	if f.occ == nil {
		f.occ = empty
	}
	if err != nil {
		f.status = fmt.Sprintf("%s: %v (expanded %d)", header, err, plan.Expanded)
		if blockers := swarm.Blockers(v.snap, ship, dest, v.category, v.cfg.Inflation); len(blockers) > 0 {
			f.status += fmt.Sprintf(" blocked by %s", blockers[0])
		}
		return f
	}

	f.path = plan.Path
	f.hop = plan.Hop
	f.status = fmt.Sprintf("%s: %s (path %d, expanded %d)", header, halite.Thrust(plan.Instruction), len(plan.Path), plan.Expanded)
	v.log.Debug("frame", zap.String("status", f.status))
	return f
}

// categoryGrid returns the selected category's grid, or fallback when the
// category cannot be resolved.
func (v *viewer) categoryGrid(fallback navigation.Occupancy) navigation.Occupancy {
	g, err := v.planner.Cache().Grid(v.category)
	if err != nil {
		return fallback
	}
	return g.Map()
}

var (
	styleFree    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBlocked = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHop     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleMarker  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

// render draws f with row 0 at the top. The bottom screen line holds the
// status; the grid is cropped to what fits above it.
func render(screen tcell.Screen, f frame) {
	screen.Clear()
	w, h := screen.Size()
	rows := min(f.occ.Rows(), h-1)
	cols := min(f.occ.Cols(), w)

	put := func(c navigation.Cell, ch rune, style tcell.Style) {
		if c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols {
			screen.SetContent(c.Col, c.Row, ch, nil, style)
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := navigation.Cell{Row: r, Col: c}
			if f.occ.Blocked(cell) {
				put(cell, '#', styleBlocked)
			} else {
				put(cell, '.', styleFree)
			}
		}
	}
	for _, c := range f.path {
		put(c, 'o', stylePath)
	}
	if !f.hop.Degenerate() {
		for _, c := range navigation.Line(f.hop.From, f.hop.To) {
			put(c, '*', styleHop)
		}
	}
	if f.target != nil {
		put(*f.target, 'X', styleMarker)
	}
	if f.ship != nil {
		put(*f.ship, 'S', styleMarker)
	}

	for i, ch := range []rune(f.status) {
		if i >= w {
			break
		}
		screen.SetContent(i, h-1, ch, nil, styleStatus)
	}
	screen.Show()
}
