package swarm

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/swarmnav/internal/arena"
	"github.com/Faultbox/swarmnav/internal/config"
	"github.com/Faultbox/swarmnav/internal/navigation"
)

// Action is a ship's intent for the cycle.
type Action uint8

// Actions.
const (
	ActionDivide  Action = iota // Claim the nearest free planet
	ActionFortify               // Dock on the nearest own planet with room left
	ActionAttack                // Hit the weakest docked ship on the nearest enemy planet
	ActionDefend                // Chase the nearest enemy ship in flight
	ActionConquer               // Crash into the nearest enemy planet
)

func (a Action) String() string {
	switch a {
	case ActionDivide:
		return "divide"
	case ActionFortify:
		return "fortify"
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionConquer:
		return "conquer"
	default:
		return "unknown"
	}
}

// Policy picks one action per undocked ship when a scenario scripts no
// requests.
type Policy struct {
	nav  config.NavigationConfig
	cfg  config.PolicyConfig
	roll func() float64
	log  *zap.Logger
}

// NewPolicy creates a policy. The same seed yields the same choices.
func NewPolicy(nav config.NavigationConfig, cfg config.PolicyConfig, log *zap.Logger) *Policy {
	if log == nil {
		log = zap.NewNop()
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	return &Policy{nav: nav, cfg: cfg, roll: rng.Float64, log: log}
}

// Requests builds at most one request per undocked ship of the current
// player. Each ship rolls a peaceful action (divide or fortify) and an
// offensive one (attack or defend), tries them in that order, then the two
// it did not roll, then conquer. Ships with no viable action are left idle.
func (p *Policy) Requests(snap *arena.Snapshot) []Request {
	var reqs []Request
	for _, ship := range snap.MyShips() {
		if ship.Docked {
			continue
		}
		r, action, ok := p.choose(snap, ship)
		if !ok {
			p.log.Debug("no action", zap.Int("ship", ship.ID))
			continue
		}
		p.log.Debug("action chosen",
			zap.Int("ship", ship.ID),
			zap.Stringer("action", action),
			zap.Stringer("target", r.Target),
			zap.Stringer("category", r.Category),
		)
		reqs = append(reqs, r)
	}
	return reqs
}

func (p *Policy) choose(snap *arena.Snapshot, ship *arena.Entity) (Request, Action, bool) {
	for _, a := range p.order() {
		if r, ok := p.Request(snap, ship, a); ok {
			return r, a, true
		}
	}
	return Request{}, 0, false
}

func (p *Policy) order() [5]Action {
	peace, otherPeace := ActionDivide, ActionFortify
	if p.roll() >= p.cfg.DivideChance {
		peace, otherPeace = otherPeace, peace
	}
	war, otherWar := ActionAttack, ActionDefend
	if p.roll() >= p.cfg.AttackChance {
		war, otherWar = otherWar, war
	}
	return [5]Action{peace, war, otherPeace, otherWar, ActionConquer}
}

// Request builds the request for one action, or reports false when the
// board offers the action no target.
func (p *Policy) Request(snap *arena.Snapshot, ship *arena.Entity, action Action) (Request, bool) {
	switch action {
	case ActionDivide:
		return p.dockOn(snap, ship, func(pl *arena.Entity) bool { return !pl.Owned() })
	case ActionFortify:
		return p.dockOn(snap, ship, func(pl *arena.Entity) bool {
			return pl.Owner == snap.Me && !pl.Full()
		})
	case ActionAttack:
		return attack(snap, ship)
	case ActionDefend:
		return p.defend(snap, ship)
	case ActionConquer:
		return conquer(snap, ship)
	default:
		return Request{}, false
	}
}

func (p *Policy) dockOn(snap *arena.Snapshot, ship *arena.Entity, filter func(*arena.Entity) bool) (Request, bool) {
	found := snap.NearestPlanets(ship.X, ship.Y, 1, filter)
	if len(found) == 0 {
		return Request{}, false
	}
	return Request{
		ShipID:   ship.ID,
		Target:   PlanetTarget(found[0].ID),
		Category: p.nav.Category,
		Fallback: fallbackFor(p.nav),
		Dock:     true,
	}, true
}

func enemyPlanet(snap *arena.Snapshot, ship *arena.Entity) *arena.Entity {
	found := snap.NearestPlanets(ship.X, ship.Y, 1, func(pl *arena.Entity) bool {
		return pl.Owned() && pl.Owner != snap.Me
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func attack(snap *arena.Snapshot, ship *arena.Entity) (Request, bool) {
	planet := enemyPlanet(snap, ship)
	if planet == nil {
		return Request{}, false
	}

	var weakest *arena.Entity
	for _, id := range planet.DockedShips {
		docked, err := snap.Ship(id)
		if err != nil {
			continue
		}
		if weakest == nil || docked.Health < weakest.Health ||
			(docked.Health == weakest.Health && docked.ID < weakest.ID) {
			weakest = docked
		}
	}
	if weakest == nil {
		return Request{}, false
	}

	// Ships are ignored on an attack run; only planets are avoided.
	return Request{
		ShipID:   ship.ID,
		Target:   ShipTarget(weakest.ID),
		Category: navigation.CategoryPlanets,
	}, true
}

func (p *Policy) defend(snap *arena.Snapshot, ship *arena.Entity) (Request, bool) {
	found := snap.NearestShips(ship.X, ship.Y, 1, func(e *arena.Entity) bool {
		return e.Owner != snap.Me && !e.Docked
	})
	if len(found) == 0 {
		return Request{}, false
	}
	enemy := found[0]

	// Close in through traffic; from afar, keep clear of everything.
	category := navigation.CategoryAll
	if ship.Distance(enemy) < p.cfg.DefendRange {
		category = navigation.CategoryPlanets
	}
	return Request{
		ShipID:   ship.ID,
		Target:   ShipTarget(enemy.ID),
		Category: category,
	}, true
}

func conquer(snap *arena.Snapshot, ship *arena.Entity) (Request, bool) {
	planet := enemyPlanet(snap, ship)
	if planet == nil {
		return Request{}, false
	}
	return Request{
		ShipID:   ship.ID,
		Target:   CellTarget(navigation.CellAt(planet.X, planet.Y)),
		Category: navigation.CategoryShips,
	}, true
}
