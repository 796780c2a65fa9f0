package selection

import (
	"time"

	"github.com/voskhod/tactgrid/events"
)

// Selectable is implemented by anything that can hold the selection slot
type Selectable interface {
	SelectableID() string
	SetSelected(selected bool)
}

// Coordinator enforces at most one selected unit process-wide.
// Selection-driven move requests depend on this arbitration: a request
// always targets the single current holder
type Coordinator struct {
	current Selectable
	queue   *events.Queue
}

// NewCoordinator creates a coordinator. queue may be nil when no
// subsystem listens for selection events
func NewCoordinator(queue *events.Queue) *Coordinator {
	return &Coordinator{queue: queue}
}

// Select makes unit the current holder, deselecting the previous holder
// first. No-op when unit already holds the slot
func (c *Coordinator) Select(unit Selectable) {
	if unit == nil || c.current == unit {
		return
	}
	if c.current != nil {
		c.drop(c.current)
	}
	c.current = unit
	unit.SetSelected(true)
	c.publish(events.EventUnitSelected, unit)
}

// Deselect releases the slot only when unit is the current holder
func (c *Coordinator) Deselect(unit Selectable) {
	if unit == nil || c.current != unit {
		return
	}
	c.drop(unit)
	c.current = nil
}

// DeselectAll releases the slot unconditionally
func (c *Coordinator) DeselectAll() {
	if c.current == nil {
		return
	}
	c.drop(c.current)
	c.current = nil
}

// Selected returns the current holder, nil when nothing is selected
func (c *Coordinator) Selected() Selectable {
	return c.current
}

func (c *Coordinator) drop(unit Selectable) {
	unit.SetSelected(false)
	c.publish(events.EventUnitDeselected, unit)
}

func (c *Coordinator) publish(t events.EventType, unit Selectable) {
	if c.queue == nil {
		return
	}
	c.queue.Push(events.Event{
		Type:      t,
		Payload:   &events.SelectionPayload{UnitID: unit.SelectableID()},
		Timestamp: time.Now(),
	})
}
