// Package swarm runs one decision cycle for a fleet: it turns per-ship
// requests into navigation instructions and dock orders within a time budget.
package swarm

import (
	"errors"
	"fmt"

	"github.com/Faultbox/swarmnav/internal/arena"
	"github.com/Faultbox/swarmnav/internal/config"
	"github.com/Faultbox/swarmnav/internal/navigation"
)

var (
	// ErrUnknownTarget is returned for a target whose kind is not one of
	// the declared TargetKinds.
	ErrUnknownTarget = errors.New("unknown target kind")
	ErrNotDocked     = errors.New("ship is not docked")
)

// TargetKind says how a Target is resolved to a destination cell.
type TargetKind uint8

// Target kinds. The zero value is not a valid kind.
const (
	TargetCell   TargetKind = iota + 1 // Fixed board cell
	TargetPlanet                       // Approach point outside a planet
	TargetShip                         // Approach point outside a ship
)

// Target is where a ship wants to go.
type Target struct {
	Kind TargetKind
	Cell navigation.Cell // TargetCell only
	ID   int             // Planet or ship ID
}

// CellTarget targets a fixed cell.
func CellTarget(c navigation.Cell) Target { return Target{Kind: TargetCell, Cell: c} }

// PlanetTarget targets the near side of a planet.
func PlanetTarget(id int) Target { return Target{Kind: TargetPlanet, ID: id} }

// ShipTarget targets the near side of a ship.
func ShipTarget(id int) Target { return Target{Kind: TargetShip, ID: id} }

func (t Target) String() string {
	switch t.Kind {
	case TargetCell:
		return "cell " + t.Cell.String()
	case TargetPlanet:
		return fmt.Sprintf("planet %d", t.ID)
	case TargetShip:
		return fmt.Sprintf("ship %d", t.ID)
	default:
		return fmt.Sprintf("Target(%d)", uint8(t.Kind))
	}
}

// Request asks for one ship's move this cycle.
type Request struct {
	ShipID   int
	Target   Target
	Category navigation.Category
	Fallback *navigation.Category // Tried once after a recoverable failure
	Dock     bool                 // Dock instead of moving when the target planet is in range
	Undock   bool                 // Leave the planet; Target is ignored
}

// FromScenario converts scripted requests, filling unset categories from cfg.
func FromScenario(specs []arena.RequestSpec, cfg config.NavigationConfig) []Request {
	reqs := make([]Request, 0, len(specs))
	for _, s := range specs {
		r := Request{
			ShipID:   s.Ship,
			Category: cfg.Category,
			Fallback: fallbackFor(cfg),
			Dock:     s.Dock,
			Undock:   s.Undock,
		}
		switch {
		case s.Cell != nil:
			r.Target = CellTarget(s.Cell.Cell())
		case s.Planet != nil:
			r.Target = PlanetTarget(*s.Planet)
		case s.Target != nil:
			r.Target = ShipTarget(*s.Target)
		}
		if s.Category != nil {
			r.Category = *s.Category
		}
		if s.Fallback != nil {
			fb := *s.Fallback
			r.Fallback = &fb
		}
		if r.Fallback != nil && *r.Fallback == r.Category {
			r.Fallback = nil
		}
		reqs = append(reqs, r)
	}
	return reqs
}

func fallbackFor(cfg config.NavigationConfig) *navigation.Category {
	if cfg.FallbackCategory == cfg.Category {
		return nil
	}
	fb := cfg.FallbackCategory
	return &fb
}
