package arena

import (
	"fmt"
	"math"
	"slices"

	"github.com/Faultbox/swarmnav/internal/navigation"
)

// DockOrder asks a ship to dock on a planet.
type DockOrder struct {
	ShipID   int
	PlanetID int
}

// Advance returns the snapshot one cycle later: each instructed ship moves
// by its distance along its angle, each undocked ship leaves its planet and
// each dock order lands its ship. Ships stop at the board edge. Collisions
// are not simulated. The receiver is not modified.
func (s *Snapshot) Advance(moves []navigation.Instruction, docks []DockOrder, undocks []int) (*Snapshot, error) {
	planets := cloneEntities(s.Planets)
	ships := cloneEntities(s.Ships)

	shipByID := make(map[int]*Entity, len(ships))
	for _, sh := range ships {
		shipByID[sh.ID] = sh
	}
	planetByID := make(map[int]*Entity, len(planets))
	for _, p := range planets {
		planetByID[p.ID] = p
	}

	for _, m := range moves {
		sh, ok := shipByID[m.ShipID]
		if !ok {
			return nil, fmt.Errorf("advance: %w: %d", ErrUnknownShip, m.ShipID)
		}
		if sh.Docked {
			continue
		}
		// Angles are measured with y pointing up; rows grow downward.
		sh.X = clamp(sh.X+m.Distance*math.Cos(m.Angle), float64(s.Width-1))
		sh.Y = clamp(sh.Y-m.Distance*math.Sin(m.Angle), float64(s.Height-1))
	}

	for _, id := range undocks {
		sh, ok := shipByID[id]
		if !ok {
			return nil, fmt.Errorf("advance: %w: %d", ErrUnknownShip, id)
		}
		if !sh.Docked {
			continue
		}
		sh.Docked = false
		for _, p := range planets {
			if i := slices.Index(p.DockedShips, id); i >= 0 {
				p.DockedShips = slices.Delete(p.DockedShips, i, i+1)
				if len(p.DockedShips) == 0 {
					p.Owner = NoOwner
				}
			}
		}
	}

	for _, d := range docks {
		sh, ok := shipByID[d.ShipID]
		if !ok {
			return nil, fmt.Errorf("advance: %w: %d", ErrUnknownShip, d.ShipID)
		}
		p, ok := planetByID[d.PlanetID]
		if !ok {
			return nil, fmt.Errorf("advance: %w: %d", ErrUnknownPlanet, d.PlanetID)
		}
		if sh.Docked || p.Full() || (p.Owned() && p.Owner != sh.Owner) {
			continue
		}
		sh.Docked = true
		p.Owner = sh.Owner
		p.DockedShips = append(p.DockedShips, sh.ID)
	}

	return NewSnapshot(s.Width, s.Height, s.Me, planets, ships)
}

func cloneEntities(in []*Entity) []*Entity {
	out := make([]*Entity, len(in))
	for i, e := range in {
		c := *e
		c.DockedShips = append([]int(nil), e.DockedShips...)
		out[i] = &c
	}
	return out
}

func clamp(v, hi float64) float64 {
	return math.Min(math.Max(v, 0), hi)
}
