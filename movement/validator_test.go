package movement

import (
	"testing"

	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/grid"
	"github.com/voskhod/tactgrid/pathfind"
	"github.com/voskhod/tactgrid/physics"
	"github.com/voskhod/tactgrid/profile"
)

// openWorld reports nothing at any probe: every cell scans walkable
type openWorld struct{}

func (openWorld) PointQuery(pos core.Vec2, layer int, mask uint32) []physics.Collider {
	return nil
}

// fakeRay records the last cast and returns a canned hit
type fakeRay struct {
	hit      *physics.Hit
	lastMask uint32
	lastSkip string
	casts    int
}

func (r *fakeRay) RayQuery(from, to core.Vec2, mask uint32, excludeOwner string) *physics.Hit {
	r.casts++
	r.lastMask = mask
	r.lastSkip = excludeOwner
	return r.hit
}

func openFinder(t *testing.T) *pathfind.Pathfinder {
	t.Helper()
	pf, err := pathfind.New(grid.NewScanner(openWorld{}, physics.MaskTerrain),
		grid.Size{Width: 8, Height: 8, Layers: 2})
	if err != nil {
		t.Fatalf("pathfind.New: %v", err)
	}
	pf.Refresh()
	return pf
}

func at(x, y int) core.GridPos { return core.GridPos{X: x, Y: y} }

func TestLegalStepNilProfile(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	if v.LegalStep(at(0, 0), at(1, 0), nil, "u") {
		t.Fatal("nil profile passed")
	}
}

func TestLegalStepLayerRestriction(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Flyer // Restricted to layers 1 and 2

	if v.LegalStep(core.GridPos{X: 0, Y: 0, Layer: 1}, at(1, 0), &p, "u") {
		t.Error("step onto restricted layer 0 passed")
	}
	if !v.LegalStep(core.GridPos{X: 0, Y: 0, Layer: 1}, core.GridPos{X: 1, Y: 0, Layer: 1}, &p, "u") {
		t.Error("step within allowed layer rejected")
	}
}

func TestLegalStepUnknownDestination(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Infantry

	// Outside the scanned 8×8 map
	if v.LegalStep(at(0, 0), at(12, 0), &p, "u") {
		t.Error("off-map destination passed")
	}
}

func TestLegalStepBeforeFirstBuild(t *testing.T) {
	pf, err := pathfind.New(grid.NewScanner(openWorld{}, physics.MaskTerrain),
		grid.Size{Width: 4, Height: 4, Layers: 1})
	if err != nil {
		t.Fatal(err)
	}
	v := NewValidator(pf, nil)
	p := profile.Infantry

	// No snapshot yet: the map-presence check is skipped, the rest runs
	if !v.LegalStep(at(0, 0), at(1, 0), &p, "u") {
		t.Error("pre-build step rejected")
	}
}

func TestLegalStepRangeBounds(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Profile{Name: "Exact2", MinRange: 2, MaxRange: 2,
		Pattern: profile.PatternFree, MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}

	if v.LegalStep(at(0, 0), at(1, 0), &p, "u") {
		t.Error("distance 1 passed a min-range-2 profile")
	}
	if !v.LegalStep(at(0, 0), at(2, 0), &p, "u") {
		t.Error("distance 2 rejected")
	}
	if v.LegalStep(at(0, 0), at(3, 0), &p, "u") {
		t.Error("distance 3 passed a max-range-2 profile")
	}
}

func TestLegalStepKnightExactOffsets(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Knight

	if !v.LegalStep(at(2, 2), at(4, 3), &p, "u") {
		t.Error("(2,1) knight offset rejected")
	}
	if !v.LegalStep(at(2, 2), at(1, 0), &p, "u") {
		t.Error("(-1,-2) knight offset rejected")
	}
	// (1,1) normalizes to a diagonal but is not a knight move
	if v.LegalStep(at(2, 2), at(3, 3), &p, "u") {
		t.Error("plain diagonal passed the knight pattern")
	}
	// (2,2) is in knight range (distance ≈2.83) but off-pattern
	if v.LegalStep(at(2, 2), at(4, 4), &p, "u") {
		t.Error("(2,2) passed the knight pattern")
	}
}

func TestLegalStepStraightLine(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Profile{Name: "Line", MinRange: 1, MaxRange: 4,
		Pattern: profile.PatternStraightLine, CanMoveDiagonally: true,
		MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}

	if !v.LegalStep(at(0, 0), at(3, 0), &p, "u") {
		t.Error("horizontal line rejected")
	}
	if !v.LegalStep(at(0, 0), at(0, 3), &p, "u") {
		t.Error("vertical line rejected")
	}
	if !v.LegalStep(at(0, 0), at(2, 2), &p, "u") {
		t.Error("exact diagonal rejected")
	}
	if v.LegalStep(at(0, 0), at(3, 1), &p, "u") {
		t.Error("bent step passed the straight-line pattern")
	}
}

func TestLegalStepAdjacentOnly(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Heavy // Adjacent only, no diagonals

	if !v.LegalStep(at(3, 3), at(4, 3), &p, "u") {
		t.Error("cardinal neighbor rejected")
	}
	if v.LegalStep(at(3, 3), at(4, 4), &p, "u") {
		t.Error("diagonal neighbor passed without the diagonal flag")
	}
	if v.LegalStep(at(3, 3), at(5, 3), &p, "u") {
		t.Error("two-cell step passed the adjacent-only pattern")
	}
}

func TestLegalStepCustomNormalized(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Profile{Name: "EastOnly", MinRange: 1, MaxRange: 5,
		Pattern:             profile.PatternCustom,
		PreferredDirections: []core.Offset{{DX: 1, DY: 0}},
		MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}

	// Any magnitude along the preferred direction
	if !v.LegalStep(at(0, 0), at(1, 0), &p, "u") || !v.LegalStep(at(0, 0), at(4, 0), &p, "u") {
		t.Error("eastward steps rejected")
	}
	if v.LegalStep(at(4, 0), at(3, 0), &p, "u") {
		t.Error("westward step passed an east-only custom pattern")
	}
}

func TestLegalStepDiagonalFlag(t *testing.T) {
	v := NewValidator(openFinder(t), nil)

	noDiag := profile.Profile{Name: "NoDiag", MinRange: 1, MaxRange: 2,
		Pattern: profile.PatternFree, MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}
	if v.LegalStep(at(0, 0), at(1, 1), &noDiag, "u") {
		t.Error("diagonal step passed without the diagonal flag")
	}

	diag := noDiag
	diag.CanMoveDiagonally = true
	if !v.LegalStep(at(0, 0), at(1, 1), &diag, "u") {
		t.Error("diagonal step rejected with the flag set")
	}
}

func TestLegalStepLineOfSight(t *testing.T) {
	ray := &fakeRay{}
	v := NewValidator(openFinder(t), ray)
	p := profile.Scout // LOS + raycasting

	if !v.LegalStep(at(0, 0), at(2, 0), &p, "u") {
		t.Error("clear line of sight rejected")
	}

	ray.hit = &physics.Hit{ColliderID: 7}
	if v.LegalStep(at(0, 0), at(2, 0), &p, "u") {
		t.Error("occluded line of sight passed")
	}
	if ray.lastSkip != "u" {
		t.Errorf("caster excluded %q, want the moving unit", ray.lastSkip)
	}
}

func TestLegalStepLOSWithoutCaster(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Scout

	// LOS requirement with no caster wired fails closed
	if v.LegalStep(at(0, 0), at(2, 0), &p, "u") {
		t.Error("LOS profile passed without a ray caster")
	}
}

func TestLegalStepThroughWallsSkipsCast(t *testing.T) {
	ray := &fakeRay{hit: &physics.Hit{ColliderID: 1}}
	v := NewValidator(openFinder(t), ray)
	p := profile.Flyer // Through walls, raycasting enabled, no LOS
	from := core.GridPos{X: 0, Y: 0, Layer: 1}
	to := core.GridPos{X: 1, Y: 0, Layer: 1}

	if !v.LegalStep(from, to, &p, "u") {
		t.Error("phasing profile blocked by an obstruction")
	}
	if ray.casts != 0 {
		t.Errorf("phasing profile cast %d rays, want 0", ray.casts)
	}
}

func TestLegalStepJumperIgnoresBlockedCast(t *testing.T) {
	ray := &fakeRay{hit: &physics.Hit{ColliderID: 1}}
	v := NewValidator(openFinder(t), ray)
	p := profile.Profile{Name: "Hopper", MinRange: 1, MaxRange: 2,
		Pattern: profile.PatternFree, CanMoveDiagonally: true,
		UseRaycasting: true, CanJumpOverObstacles: true,
		MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}

	if !v.LegalStep(at(0, 0), at(2, 0), &p, "u") {
		t.Error("jumper rejected on a blocked cast")
	}
	p.CanJumpOverObstacles = false
	if v.LegalStep(at(0, 0), at(2, 0), &p, "u") {
		t.Error("blocked cast passed without the jump ability")
	}
}

func TestLegalStepMaxDistanceObstructs(t *testing.T) {
	ray := &fakeRay{}
	v := NewValidator(openFinder(t), ray)
	p := profile.Profile{Name: "Short", MinRange: 1, MaxRange: 4,
		Pattern: profile.PatternFree,
		UseRaycasting: true, MaxDistance: 1.0, // Shorter than one tile width
		MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}

	if v.LegalStep(at(0, 0), at(2, 0), &p, "u") {
		t.Error("cast beyond MaxDistance passed")
	}
}

func TestCastMaskThroughUnits(t *testing.T) {
	ray := &fakeRay{}
	v := NewValidator(openFinder(t), ray)
	p := profile.Profile{Name: "Ghost", MinRange: 1, MaxRange: 2,
		Pattern: profile.PatternFree,
		UseRaycasting: true, AllowThroughUnits: true,
		MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}

	v.LegalStep(at(0, 0), at(2, 0), &p, "u")
	if ray.casts == 0 {
		t.Fatal("no cast recorded")
	}
	if ray.lastMask&physics.MaskUnits != 0 {
		t.Errorf("cast mask %#x still carries the unit bit", ray.lastMask)
	}
	if ray.lastMask&physics.MaskTerrain == 0 {
		t.Errorf("cast mask %#x dropped the terrain bit", ray.lastMask)
	}
}

func TestValidatePathFullAndPrefix(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	p := profile.Infantry
	path := core.Path{at(0, 0), at(1, 0), at(2, 0), at(3, 0)}

	if got := v.ValidatePath(path, &p, "u"); len(got) != 4 {
		t.Errorf("fully legal path truncated to %v", got)
	}

	// A 2-cell jump mid-path is over Infantry's per-step range only when
	// paired with the pattern; force truncation with an exact-range profile
	exact := profile.Profile{Name: "Exact1", MinRange: 1, MaxRange: 1,
		Pattern: profile.PatternFree, MovementCostMultiplier: 1, DiagonalCostMultiplier: 1}
	jump := core.Path{at(0, 0), at(1, 0), at(3, 0), at(4, 0)}
	got := v.ValidatePath(jump, &exact, "u")
	if len(got) != 2 || got[0] != at(0, 0) || got[1] != at(1, 0) {
		t.Errorf("path truncated to %v, want the prefix before the jump", got)
	}
}

func TestValidatePathKeepsFirstElement(t *testing.T) {
	v := NewValidator(openFinder(t), nil)
	path := core.Path{at(0, 0), at(5, 5)}

	got := v.ValidatePath(path, &profile.Heavy, "u")
	if len(got) != 1 || got[0] != at(0, 0) {
		t.Errorf("got %v, want just the origin", got)
	}

	if got := v.ValidatePath(nil, &profile.Heavy, "u"); got != nil {
		t.Errorf("empty path produced %v", got)
	}
}
