package main

import (
	"fmt"

	"github.com/voskhod/tactgrid/events"
)

// Bus handlers. All sandbox reactions to movement events go through the
// router so input, units and the pathfinder stay decoupled from the
// presentation state they affect.

func newRouter(queue *events.Queue) *events.Router[*Sandbox] {
	r := events.NewRouter[*Sandbox](queue)
	r.Register(moveRequestHandler{})
	r.Register(moveFeedbackHandler{})
	r.Register(gridRefreshHandler{})
	return r
}

// moveRequestHandler drives units from bus traffic: any producer that
// publishes a request gets the same treatment as the keyboard
type moveRequestHandler struct{}

func (moveRequestHandler) EventTypes() []events.EventType {
	return []events.EventType{events.EventMoveRequested}
}

func (moveRequestHandler) HandleEvent(s *Sandbox, ev events.Event) {
	req, ok := ev.Payload.(*events.MoveRequestedPayload)
	if !ok {
		return
	}
	if u := s.unitByID(req.UnitID); u != nil {
		u.RequestMove(req.Target)
	}
}

// moveFeedbackHandler keeps the path overlay and status line in sync
// with the outcome events the units publish
type moveFeedbackHandler struct{}

func (moveFeedbackHandler) EventTypes() []events.EventType {
	return []events.EventType{events.EventPathCalculated, events.EventMoveBlocked}
}

func (moveFeedbackHandler) HandleEvent(s *Sandbox, ev events.Event) {
	switch p := ev.Payload.(type) {
	case *events.PathCalculatedPayload:
		s.lastPath = p.Path
		s.status = fmt.Sprintf("%s: %d steps, cost %.1f", p.UnitID, len(p.Path)-1, p.Cost)
	case *events.MoveBlockedPayload:
		s.lastPath = nil
		s.status = fmt.Sprintf("%s: blocked to (%d,%d,L%d)", p.UnitID, p.Target.X, p.Target.Y, p.Target.Layer)
		s.playBlockedTone()
	}
}

// gridRefreshHandler invalidates per-unit height caches after a rescan
type gridRefreshHandler struct{}

func (gridRefreshHandler) EventTypes() []events.EventType {
	return []events.EventType{events.EventGridRefreshed}
}

func (gridRefreshHandler) HandleEvent(s *Sandbox, ev events.Event) {
	for _, u := range s.units {
		u.InvalidateHeightCache()
	}
}
