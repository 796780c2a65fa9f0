package events

import (
	"github.com/voskhod/tactgrid/core"
)

// GridRefreshedPayload reports the rebuilt graph's size
type GridRefreshedPayload struct {
	WalkableCells int
}

// MoveRequestedPayload carries a destination for the selected unit
type MoveRequestedPayload struct {
	UnitID string
	Target core.GridPos
}

// PathCalculatedPayload carries the validated path a unit will walk
type PathCalculatedPayload struct {
	UnitID    string
	Path      core.Path
	Cost      float64 // Profile-priced sum over the path's steps
	Truncated bool    // True when validation cut the path short of the request
}

// MoveBlockedPayload reports a request that validated to nothing usable
type MoveBlockedPayload struct {
	UnitID string
	Target core.GridPos
}

// SelectionPayload identifies the unit whose selection state changed
type SelectionPayload struct {
	UnitID string
}
