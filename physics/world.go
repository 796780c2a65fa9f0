package physics

import (
	"math"
	"sort"

	"github.com/voskhod/tactgrid/core"
)

// Box is an axis-aligned collider shape in world space
type Box struct {
	Collider
	MinX, MinY float64
	MaxX, MaxY float64
}

// contains reports whether the point lies inside the box, edges inclusive
func (b *Box) contains(pos core.Vec2) bool {
	return pos.X >= b.MinX && pos.X <= b.MaxX && pos.Y >= b.MinY && pos.Y <= b.MaxY
}

// StaticWorld is a reference collision service backed by axis-aligned
// boxes. Bodies never move; the grid scanner and validator treat it as
// read-only
type StaticWorld struct {
	boxes  []Box
	nextID int
}

// NewStaticWorld creates an empty world
func NewStaticWorld() *StaticWorld {
	return &StaticWorld{nextID: 1}
}

// AddBox registers a collider covering [min,max] on the given layer and
// returns its id
func (w *StaticWorld) AddBox(layer int, minX, minY, maxX, maxY float64, mask uint32, tags ...string) int {
	id := w.nextID
	w.nextID++
	w.boxes = append(w.boxes, Box{
		Collider: Collider{ID: id, Layer: layer, Tags: tags, Mask: mask},
		MinX:     minX, MinY: minY,
		MaxX: maxX, MaxY: maxY,
	})
	return id
}

// AddPairedBox registers a collider carrying a pair id, used to link
// teleporter entrance and exit bodies across layers
func (w *StaticWorld) AddPairedBox(layer int, minX, minY, maxX, maxY float64, mask uint32, pairID string, tags ...string) int {
	id := w.AddBox(layer, minX, minY, maxX, maxY, mask, tags...)
	w.boxes[len(w.boxes)-1].PairID = pairID
	return id
}

// SetOwner marks a collider as belonging to a unit so ray queries can
// exclude the caster
func (w *StaticWorld) SetOwner(id int, owner string) {
	for i := range w.boxes {
		if w.boxes[i].ID == id {
			w.boxes[i].Owner = owner
			return
		}
	}
}

// PointQuery returns colliders containing pos on the layer, sorted by
// ascending collider id for deterministic classification
func (w *StaticWorld) PointQuery(pos core.Vec2, layer int, mask uint32) []Collider {
	var out []Collider
	for i := range w.boxes {
		b := &w.boxes[i]
		if b.Layer != layer || b.Mask&mask == 0 {
			continue
		}
		if b.contains(pos) {
			out = append(out, b.Collider)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RayQuery returns the nearest intersection of the segment from→to with
// any masked collider not owned by exclude, or nil when clear.
// Layer is not part of the query: rays travel in projected world space
func (w *StaticWorld) RayQuery(from, to core.Vec2, mask uint32, exclude string) *Hit {
	var best *Hit
	bestT := math.Inf(1)
	for i := range w.boxes {
		b := &w.boxes[i]
		if b.Mask&mask == 0 {
			continue
		}
		if exclude != "" && b.Owner == exclude {
			continue
		}
		t, ok := segmentBoxEntry(from, to, b)
		if ok && t < bestT {
			bestT = t
			best = &Hit{
				ColliderID: b.ID,
				Point: core.Vec2{
					X: from.X + (to.X-from.X)*t,
					Y: from.Y + (to.Y-from.Y)*t,
				},
			}
		}
	}
	return best
}

// segmentBoxEntry runs the slab test against one box, returning the
// parametric entry point in [0,1]
func segmentBoxEntry(from, to core.Vec2, b *Box) (float64, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y

	tMin := 0.0
	tMax := 1.0

	for axis := 0; axis < 2; axis++ {
		var origin, delta, lo, hi float64
		if axis == 0 {
			origin, delta, lo, hi = from.X, dx, b.MinX, b.MaxX
		} else {
			origin, delta, lo, hi = from.Y, dy, b.MinY, b.MaxY
		}

		if delta == 0 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - origin) / delta
		t2 := (hi - origin) / delta
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}
