// Package halite encodes planner output as Halite II engine commands.
package halite

import (
	"fmt"
	"math"
	"strings"

	"github.com/Faultbox/swarmnav/internal/navigation"
	"github.com/Faultbox/swarmnav/internal/swarm"
)

// Thrust encodes an instruction as "t <ship> <distance> <degrees>". The
// engine takes integers, so the distance is truncated and the angle rounded.
func Thrust(ins navigation.Instruction) string {
	return fmt.Sprintf("t %d %d %d", ins.ShipID, int(ins.Distance), Heading(ins))
}

// Heading returns the engine angle for an instruction in whole degrees in
// [0, 360). Instruction angles are measured with y up; the engine's y axis
// grows downward like grid rows, so the angle is mirrored.
func Heading(ins navigation.Instruction) int {
	return int(math.Round(math.Mod(360-ins.Degrees(), 360))) % 360
}

// Dock encodes a dock order.
func Dock(shipID, planetID int) string {
	return fmt.Sprintf("d %d %d", shipID, planetID)
}

// Undock encodes an undock order.
func Undock(shipID int) string {
	return fmt.Sprintf("u %d", shipID)
}

// Commands encodes every order in a cycle report: thrusts, then docks,
// then undocks.
func Commands(r swarm.Report) []string {
	cmds := make([]string, 0, len(r.Instructions)+len(r.Docks)+len(r.Undocks))
	for _, ins := range r.Instructions {
		cmds = append(cmds, Thrust(ins))
	}
	for _, d := range r.Docks {
		cmds = append(cmds, Dock(d.ShipID, d.PlanetID))
	}
	for _, id := range r.Undocks {
		cmds = append(cmds, Undock(id))
	}
	return cmds
}

// Queue joins commands into the single line the engine reads per turn.
func Queue(cmds []string) string {
	return strings.Join(cmds, " ")
}
