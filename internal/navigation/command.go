package navigation

import (
	"fmt"
	"math"
)

// DefaultMaxSpeed is the per-cycle travel cap used when none is configured.
const DefaultMaxSpeed = 7.0

// Instruction is a bounded movement command for one ship.
type Instruction struct {
	ShipID   int
	Distance float64 // In cells, never above the configured max speed
	Angle    float64 // Radians; positive is counter-clockwise with y pointing up
}

// Degrees returns the angle in degrees normalised to [0, 360).
func (i Instruction) Degrees() float64 {
	deg := math.Mod(i.Angle*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// String formats the instruction for logs.
func (i Instruction) String() string {
	return fmt.Sprintf("ship %d: %.2f @ %.1f°", i.ShipID, i.Distance, i.Degrees())
}

// Synthesize converts a hop into an instruction. The distance is capped at
// maxSpeed. Rows grow downward, so the angle is negated to match the
// upward-y navigation convention. A zero-length hop yields ErrDegenerateHop.
func Synthesize(shipID int, hop Hop, maxSpeed float64) (Instruction, error) {
	if hop.Degenerate() {
		return Instruction{}, ErrDegenerateHop
	}
	dy := float64(hop.To.Row - hop.From.Row)
	dx := float64(hop.To.Col - hop.From.Col)

	return Instruction{
		ShipID:   shipID,
		Distance: math.Min(math.Max(maxSpeed, 0), hop.Length()),
		Angle:    -math.Atan2(dy, dx),
	}, nil
}
