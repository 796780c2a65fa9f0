package physics

import (
	"github.com/voskhod/tactgrid/core"
)

// Collision mask bits. Profiles that move through units clear MaskUnits
// from their cast mask instead of filtering hits
const (
	MaskTerrain uint32 = 1 << 0
	MaskUnits   uint32 = 1 << 1
	MaskAll     uint32 = 0xFFFFFFFF
)

// Collision tags recognized by the grid scanner, in classification
// priority order. A collider may carry several; the first priority match
// wins
const (
	TagBlocked            = "blocked"
	TagStairUp            = "stair_up"
	TagStairDown          = "stair_down"
	TagTeleporterEntrance = "teleporter_entrance"
	TagTeleporterExit     = "teleporter_exit"
	TagWalkable           = "walkable"
	TagUnit               = "unit"
)

// Collider is one physics body as reported by the collision service
type Collider struct {
	ID     int
	Layer  int
	Tags   []string
	Mask   uint32
	PairID string // Shared id linking teleporter entrance/exit colliders
	Owner  string // Owning unit id, empty for static geometry
}

// HasTag reports membership in a tag group
func (c *Collider) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Hit is the first blocking intersection along a ray
type Hit struct {
	ColliderID int
	Point      core.Vec2
}

// PointQuerier answers which colliders contain a world-space point.
// Implemented by the external collision engine; StaticWorld is the
// in-repo reference implementation
type PointQuerier interface {
	// PointQuery returns every collider on the layer whose shape contains
	// pos and whose mask intersects the query mask
	PointQuery(pos core.Vec2, layer int, mask uint32) []Collider
}

// RayCaster casts a ray and reports the first blocking hit, or nil when
// the segment is clear. Colliders owned by exclude are skipped
type RayCaster interface {
	RayQuery(from, to core.Vec2, mask uint32, exclude string) *Hit
}
