package navigation

import (
	"errors"
	"fmt"
)

// Navigation errors.
var (
	ErrUnknownCategory = errors.New("unknown obstacle category")
	ErrBlockedEndpoint = errors.New("start or goal cell is occupied")
	ErrNoPathFound     = errors.New("no path found")
	ErrDegenerateHop   = errors.New("simplified path has zero length")
)

// Stage identifies a step of a navigation request.
type Stage uint8

// Request stages, in execution order.
const (
	StageResolveGrid Stage = iota
	StageExcludeSelf
	StageSearch
	StageSimplify
	StageSynthesize
	StageDone
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageResolveGrid:
		return "resolve-grid"
	case StageExcludeSelf:
		return "exclude-self"
	case StageSearch:
		return "search"
	case StageSimplify:
		return "simplify"
	case StageSynthesize:
		return "synthesize"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// NavError reports the stage at which a navigation request failed.
type NavError struct {
	Stage  Stage
	ShipID int
	Err    error
}

func (e *NavError) Error() string {
	return fmt.Sprintf("ship %d: %s: %v", e.ShipID, e.Stage, e.Err)
}

func (e *NavError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err is a failure the caller can work around
// by choosing another destination or waiting for the next cycle.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrBlockedEndpoint) ||
		errors.Is(err, ErrNoPathFound) ||
		errors.Is(err, ErrDegenerateHop)
}
