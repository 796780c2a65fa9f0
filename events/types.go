package events

import (
	"time"
)

// EventType represents the type of movement-layer event
type EventType int

const (
	// EventGridRefreshed signals a completed grid rescan and graph rebuild
	// Trigger: Pathfinder.Refresh (including the deferred initial build)
	// Consumer: unit controllers invalidating cached state | Payload: *GridRefreshedPayload
	EventGridRefreshed EventType = iota

	// EventMoveRequested signals intent to move a unit to a destination
	// Trigger: controller input
	// Consumer: unit controller | Payload: *MoveRequestedPayload
	EventMoveRequested

	// EventPathCalculated signals a validated path is ready to walk
	// Trigger: Unit.RequestMove after validation
	// Consumer: animation layer | Payload: *PathCalculatedPayload
	EventPathCalculated

	// EventMoveBlocked signals validation truncated a path to nothing usable
	// Trigger: Unit.RequestMove
	// Consumer: feedback layer | Payload: *MoveBlockedPayload
	EventMoveBlocked

	// EventUnitSelected signals a unit gained the single selection slot
	// Trigger: selection.Coordinator.Select | Payload: *SelectionPayload
	EventUnitSelected

	// EventUnitDeselected signals a unit lost the selection slot
	// Trigger: selection.Coordinator | Payload: *SelectionPayload
	EventUnitDeselected
)

// Event is a single movement-layer event with metadata
type Event struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
