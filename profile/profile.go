package profile

import (
	"fmt"

	"github.com/voskhod/tactgrid/core"
)

// Pattern names the directional rule a profile moves under. One tagged
// type, one evaluation path: the validator derives everything from this
// value and never re-interprets raw integers
type Pattern int

const (
	PatternFree Pattern = iota
	PatternCrossOnly
	PatternDiagonalOnly
	PatternKnight
	PatternStraightLine
	PatternAdjacentOnly
	PatternCustom
)

var patternNames = [...]string{
	"free", "cross_only", "diagonal_only",
	"knight", "straight_line", "adjacent_only", "custom",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "unknown"
	}
	return patternNames[p]
}

// ParsePattern maps a catalog name to its Pattern
func ParsePattern(name string) (Pattern, error) {
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("profile: unknown pattern %q", name)
}

// Profile is a declarative per-unit-type movement rule set.
// Immutable after construction; presets and catalog entries share this
// one type, differing only in parameter values
type Profile struct {
	Name        string
	Description string

	MinRange int // Inclusive tile-distance bounds per step
	MaxRange int

	Pattern           Pattern
	CanMoveDiagonally bool

	RequiresLineOfSight bool

	MovementCostMultiplier float64
	DiagonalCostMultiplier float64

	// Raycast configuration
	UseRaycasting     bool
	CollisionMask     uint32
	AllowThroughUnits bool
	MaxDistance       float64

	// Special abilities
	CanJumpOverObstacles bool
	CanMoveThroughWalls  bool

	PreferredDirections []core.Offset // Only read when Pattern is custom
	LayerRestrictions   []int         // Empty means unrestricted
}

// Direction tables

var orthogonalDirs = []core.Offset{
	{DX: 0, DY: -1}, {DX: 1, DY: 0}, {DX: 0, DY: 1}, {DX: -1, DY: 0},
}

var diagonalDirs = []core.Offset{
	{DX: 1, DY: -1}, {DX: 1, DY: 1}, {DX: -1, DY: 1}, {DX: -1, DY: -1},
}

var knightDirs = []core.Offset{
	{DX: 1, DY: -2}, {DX: 2, DY: -1}, {DX: 2, DY: 1}, {DX: 1, DY: 2},
	{DX: -1, DY: 2}, {DX: -2, DY: 1}, {DX: -2, DY: -1}, {DX: -1, DY: -2},
}

// ValidDirections derives the legal direction set from the pattern and
// diagonal flag. Pure: the result depends only on profile data
func (p *Profile) ValidDirections() []core.Offset {
	switch p.Pattern {
	case PatternCrossOnly:
		return append([]core.Offset(nil), orthogonalDirs...)
	case PatternDiagonalOnly:
		return append([]core.Offset(nil), diagonalDirs...)
	case PatternKnight:
		return append([]core.Offset(nil), knightDirs...)
	case PatternCustom:
		return append([]core.Offset(nil), p.PreferredDirections...)
	default:
		// Free, StraightLine, AdjacentOnly: 8 or 4 neighbor offsets
		// depending on the diagonal flag. Distance legality along the
		// direction is checked separately by the validator
		dirs := append([]core.Offset(nil), orthogonalDirs...)
		if p.CanMoveDiagonally {
			dirs = append(dirs, diagonalDirs...)
		}
		return dirs
	}
}

// MovementCost prices one step: Euclidean distance × the movement
// multiplier, × the diagonal multiplier when the step is an exact
// diagonal longer than one tile. Per-edge heuristic, not a path
// aggregate
func (p *Profile) MovementCost(from, to core.GridPos) float64 {
	d := from.TileDistance(to)
	cost := d * p.MovementCostMultiplier

	delta := from.Delta(to)
	adx, ady := delta.DX, delta.DY
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	if adx == ady && d > 1 {
		cost *= p.DiagonalCostMultiplier
	}
	return cost
}

// DistanceInRange checks the inclusive per-step range bounds
func (p *Profile) DistanceInRange(distance float64) bool {
	return distance >= float64(p.MinRange) && distance <= float64(p.MaxRange)
}

// CanUseLayer reports whether the profile may stand on layer.
// An empty restriction list means unrestricted
func (p *Profile) CanUseLayer(layer int) bool {
	if len(p.LayerRestrictions) == 0 {
		return true
	}
	for _, l := range p.LayerRestrictions {
		if l == layer {
			return true
		}
	}
	return false
}
