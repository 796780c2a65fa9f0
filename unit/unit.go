package unit

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/events"
	"github.com/voskhod/tactgrid/movement"
	"github.com/voskhod/tactgrid/pathfind"
	"github.com/voskhod/tactgrid/profile"
)

// State is the per-unit movement state machine
//
//	Idle → PathRequested → Moving(pathIndex) → Idle
//	Moving → Blocked → Idle when validation yields nothing usable
//
// No automatic retries: the caller re-requests after a block
type State int

const (
	StateIdle State = iota
	StatePathRequested
	StateMoving
	StateBlocked
)

var stateNames = [...]string{"idle", "path_requested", "moving", "blocked"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// ErrMissingDependency is returned when a unit is constructed without
// its pathfinder, profile manager, or validator. Fatal at init
var ErrMissingDependency = errors.New("unit: missing required dependency")

// Config wires a unit's collaborators explicitly at construction.
// Units never discover dependencies at runtime
type Config struct {
	ID       string // Generated when empty
	Start    core.GridPos
	Profiles *profile.Manager
	Finder   *pathfind.Pathfinder
	Checker  *movement.Validator
	Queue    *events.Queue // Optional
	Tiles    TileDataProvider
	Scene    SceneProvider
}

// Unit is a character controller binding one grid occupant to the
// movement pipeline
type Unit struct {
	ID  string
	Pos core.GridPos

	state     int // State, kept as int for the zero value
	path      core.Path
	pathIndex int
	selected  bool

	profiles *profile.Manager
	finder   *pathfind.Pathfinder
	checker  *movement.Validator
	queue    *events.Queue

	heights heightCache
}

// New creates a unit with explicit dependencies
func New(cfg Config) (*Unit, error) {
	if cfg.Profiles == nil || cfg.Finder == nil || cfg.Checker == nil {
		return nil, ErrMissingDependency
	}
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Unit{
		ID:       id,
		Pos:      cfg.Start,
		profiles: cfg.Profiles,
		finder:   cfg.Finder,
		checker:  cfg.Checker,
		queue:    cfg.Queue,
		heights:  heightCache{tiles: cfg.Tiles, scene: cfg.Scene},
	}, nil
}

// State returns the current movement state
func (u *Unit) State() State {
	return State(u.state)
}

// Profile resolves the unit's active movement profile
func (u *Unit) Profile() *profile.Profile {
	return u.profiles.ProfileFor(u.ID)
}

// Path returns the remaining validated path, nil when not moving
func (u *Unit) Path() core.Path {
	if State(u.state) != StateMoving {
		return nil
	}
	return u.path[u.pathIndex:]
}

// RequestMove plans and validates a move to target. On success the unit
// enters Moving and EventPathCalculated is published; when validation
// leaves nothing usable the unit passes through Blocked and
// EventMoveBlocked is published. Returns the validated path
func (u *Unit) RequestMove(target core.GridPos) core.Path {
	u.state = int(StatePathRequested)

	p := u.Profile()
	raw := u.finder.FindPath(u.Pos, target)
	validated := u.checker.ValidatePath(raw, p, u.ID)

	if len(validated) <= 1 {
		u.state = int(StateBlocked)
		u.path = nil
		u.pathIndex = 0
		u.publish(events.EventMoveBlocked, &events.MoveBlockedPayload{
			UnitID: u.ID,
			Target: target,
		})
		return nil
	}

	u.path = validated
	u.pathIndex = 0
	u.state = int(StateMoving)
	u.publish(events.EventPathCalculated, &events.PathCalculatedPayload{
		UnitID:    u.ID,
		Path:      validated,
		Cost:      pathCost(validated, p),
		Truncated: len(raw) > 0 && validated[len(validated)-1] != raw[len(raw)-1],
	})
	return validated
}

// pathCost prices the validated path with the profile's per-step model,
// so the cost multipliers show up in what consumers observe
func pathCost(path core.Path, p *profile.Profile) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += p.MovementCost(path[i-1], path[i])
	}
	return total
}

// Tick advances the state machine by one simulation step: one path index
// while Moving, Blocked settles back to Idle
func (u *Unit) Tick() {
	switch State(u.state) {
	case StateMoving:
		u.pathIndex++
		if u.pathIndex >= len(u.path) {
			u.Pos = u.path[len(u.path)-1]
			u.path = nil
			u.pathIndex = 0
			u.state = int(StateIdle)
			return
		}
		u.Pos = u.path[u.pathIndex]
	case StateBlocked:
		u.state = int(StateIdle)
	}
}

// SelectableID implements selection.Selectable
func (u *Unit) SelectableID() string {
	return u.ID
}

// SetSelected implements selection.Selectable
func (u *Unit) SetSelected(selected bool) {
	u.selected = selected
}

// Selected reports whether the unit holds the selection slot
func (u *Unit) Selected() bool {
	return u.selected
}

func (u *Unit) publish(t events.EventType, payload any) {
	if u.queue == nil {
		return
	}
	u.queue.Push(events.Event{Type: t, Payload: payload, Timestamp: time.Now()})
}
