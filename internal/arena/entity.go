// Package arena holds the game state a decision cycle plans against: the
// board, planets and ships, with a spatial index for neighbourhood queries.
package arena

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Faultbox/swarmnav/internal/navigation"
)

// NoOwner marks an unowned planet.
const NoOwner = -1

// DockRadius is how far beyond a planet's surface a ship may dock from.
const DockRadius = 4.0

// Kind distinguishes planets from ships.
type Kind uint8

// Entity kinds.
const (
	KindPlanet Kind = iota
	KindShip
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindShip:
		return "ship"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Entity is a circular body on the board.
type Entity struct {
	Kind   Kind
	ID     int
	X, Y   float64
	Radius float64
	Owner  int
	Health int

	Docked       bool  // Ships only
	DockedShips  []int // Planets only
	DockingSpots int   // Planets only; zero means unlimited
}

// Obstacle adapts the entity for the navigation planner.
func (e *Entity) Obstacle() navigation.Obstacle { return obstacle{e} }

type obstacle struct{ *Entity }

func (o obstacle) ID() int         { return o.Entity.ID }
func (o obstacle) Radius() float64 { return o.Entity.Radius }

// Center returns the entity position.
func (e *Entity) Center() (x, y float64) { return e.X, e.Y }

// Point returns the entity position as an orb point.
func (e *Entity) Point() orb.Point { return orb.Point{e.X, e.Y} }

// Bound returns the axis-aligned box around the entity.
func (e *Entity) Bound() orb.Bound {
	return e.Point().Bound().Pad(e.Radius)
}

// Owned reports whether any player owns the entity.
func (e *Entity) Owned() bool { return e.Owner != NoOwner }

// Full reports whether a planet has no docking spot left.
func (e *Entity) Full() bool {
	return e.DockingSpots > 0 && len(e.DockedShips) >= e.DockingSpots
}

// Distance returns the center-to-center distance to other.
func (e *Entity) Distance(other *Entity) float64 {
	return planar.Distance(e.Point(), other.Point())
}

// SurfaceDistance returns the gap between the two bodies' edges.
func (e *Entity) SurfaceDistance(other *Entity) float64 {
	return e.Distance(other) - e.Radius - other.Radius
}

// CanDock reports whether a ship is close enough to dock on a planet.
func (e *Entity) CanDock(planet *Entity) bool {
	return e.Kind == KindShip && planet.Kind == KindPlanet &&
		e.SurfaceDistance(planet) <= DockRadius
}

// ApproachPoint returns the point on the line from target to e that sits
// minDistance beyond target's surface.
func (e *Entity) ApproachPoint(target *Entity, minDistance float64) orb.Point {
	angle := math.Atan2(e.Y-target.Y, e.X-target.X)
	r := target.Radius + minDistance
	return orb.Point{
		target.X + r*math.Cos(angle),
		target.Y + r*math.Sin(angle),
	}
}

// String formats the entity for logs.
func (e *Entity) String() string {
	return fmt.Sprintf("%s %d (%.1f,%.1f r=%.1f)", e.Kind, e.ID, e.X, e.Y, e.Radius)
}

// minExtent keeps zero-radius entities indexable.
const minExtent = 1e-6

// Bounds implements rtreego.Spatial.
func (e *Entity) Bounds() rtreego.Rect {
	return rtreego.Point{e.X, e.Y}.ToRect(math.Max(e.Radius, minExtent))
}
