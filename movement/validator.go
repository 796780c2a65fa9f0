package movement

import (
	"log"

	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/grid"
	"github.com/voskhod/tactgrid/parameter"
	"github.com/voskhod/tactgrid/pathfind"
	"github.com/voskhod/tactgrid/physics"
	"github.com/voskhod/tactgrid/profile"
)

// Validator evaluates a movement profile against proposed steps and
// paths. It holds references to the pathfinder and the external ray
// caster and mutates neither
type Validator struct {
	pf  *pathfind.Pathfinder
	ray physics.RayCaster
}

// NewValidator creates a validator. ray may be nil when no registered
// profile uses line of sight or raycasting
func NewValidator(pf *pathfind.Pathfinder, ray physics.RayCaster) *Validator {
	return &Validator{pf: pf, ray: ray}
}

// LegalStep evaluates one cell-to-cell transition as a short-circuit
// conjunction: layer restriction, per-step range, direction pattern,
// line of sight, raycast obstruction. First failure wins; every failure
// is non-fatal to the caller. unitID is excluded from ray queries
func (v *Validator) LegalStep(from, to core.GridPos, p *profile.Profile, unitID string) bool {
	if p == nil {
		return false
	}

	if !p.CanUseLayer(to.Layer) {
		return false
	}

	// Destinations outside the scanned map are a lookup failure, not an
	// error. Skipped before the first grid build
	if v.pf != nil {
		if cells := v.pf.Cells(); cells != nil && cells.Cell(to) == nil {
			return false
		}
	}

	// Range uses the 2-D tile distance; layer changes are priced by the
	// graph, not the profile
	distance := from.TileDistance(to)
	if !p.DistanceInRange(distance) {
		return false
	}

	if !directionAllowed(from, to, p) {
		return false
	}

	if p.RequiresLineOfSight && !v.lineOfSight(from, to, p, unitID) {
		return false
	}

	if p.UseRaycasting {
		// Phasing bypasses raycasting entirely, checked before casting
		if p.CanMoveThroughWalls {
			return true
		}
		if v.obstructed(from, to, p, unitID) {
			// A blocked cast is still legal for jumpers
			return p.CanJumpOverObstacles
		}
	}
	return true
}

// directionAllowed applies the pattern-specific matching rule for the
// step's 2-D delta. One evaluation path shared by every caller
func directionAllowed(from, to core.GridPos, p *profile.Profile) bool {
	delta := from.Delta(to)

	switch p.Pattern {
	case profile.PatternKnight:
		// Exact offset match, no normalization
		for _, d := range p.ValidDirections() {
			if d == delta {
				return true
			}
		}
		return false

	case profile.PatternStraightLine:
		adx, ady := abs(delta.DX), abs(delta.DY)
		return delta.DX == 0 || delta.DY == 0 || adx == ady

	case profile.PatternAdjacentOnly:
		if delta.Length() > parameter.AdjacentOnlyMaxLength {
			return false
		}
		return normalizedMatch(delta, p.ValidDirections())

	case profile.PatternCustom:
		// Magnitude ignored: the normalized direction must equal a
		// normalized preferred direction
		return normalizedMatch(delta, p.ValidDirections())

	default:
		// Free, CrossOnly, DiagonalOnly: normalized match, with any
		// zero vector in the set acting as a wildcard
		dirs := p.ValidDirections()
		for _, d := range dirs {
			if d.IsZero() {
				return true
			}
		}
		return normalizedMatch(delta, dirs)
	}
}

func normalizedMatch(delta core.Offset, dirs []core.Offset) bool {
	n := delta.Normalized()
	for _, d := range dirs {
		if d.Normalized() == n {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// lineOfSight casts between the two cell centers, adjusted for layer
// elevation. Clear means no reported hit
func (v *Validator) lineOfSight(from, to core.GridPos, p *profile.Profile, unitID string) bool {
	if v.ray == nil {
		log.Printf("movement: profile %s requires line of sight but no ray caster is wired", p.Name)
		return false
	}
	hit := v.ray.RayQuery(rayPoint(from), rayPoint(to), v.castMask(p), unitID)
	return hit == nil
}

// obstructed reports whether the step's ray is blocked
func (v *Validator) obstructed(from, to core.GridPos, p *profile.Profile, unitID string) bool {
	if v.ray == nil {
		return false
	}
	if p.MaxDistance > 0 {
		a, b := rayPoint(from), rayPoint(to)
		dx, dy := b.X-a.X, b.Y-a.Y
		if dx*dx+dy*dy > p.MaxDistance*p.MaxDistance {
			return true
		}
	}
	return v.ray.RayQuery(rayPoint(from), rayPoint(to), v.castMask(p), unitID) != nil
}

// castMask resolves the profile's collision mask, dropping the unit bit
// for profiles that pass through units
func (v *Validator) castMask(p *profile.Profile) uint32 {
	mask := p.CollisionMask
	if mask == 0 {
		mask = parameter.DefaultRaycastMask
	}
	if p.AllowThroughUnits {
		mask &^= physics.MaskUnits
	}
	return mask
}

// rayPoint maps a cell to its elevation-adjusted world center
func rayPoint(pos core.GridPos) core.Vec2 {
	w := grid.CellCenter(pos)
	w.Y -= grid.LayerOffset(pos.Layer)
	return w
}

// ValidatePath walks consecutive pairs and returns the longest legal
// prefix. path[0] is always kept; the walk stops at the first illegal
// step. A short return means "partial move, blocked" to the caller
func (v *Validator) ValidatePath(path core.Path, p *profile.Profile, unitID string) core.Path {
	if len(path) == 0 {
		return nil
	}
	out := core.Path{path[0]}
	for i := 1; i < len(path); i++ {
		if !v.LegalStep(path[i-1], path[i], p, unitID) {
			break
		}
		out = append(out, path[i])
	}
	return out
}
