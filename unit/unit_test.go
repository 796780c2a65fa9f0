package unit

import (
	"testing"

	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/events"
	"github.com/voskhod/tactgrid/grid"
	"github.com/voskhod/tactgrid/movement"
	"github.com/voskhod/tactgrid/parameter"
	"github.com/voskhod/tactgrid/pathfind"
	"github.com/voskhod/tactgrid/physics"
	"github.com/voskhod/tactgrid/profile"
)

// worldWithWalls reports a blocking collider at each listed cell
type worldWithWalls struct {
	blocked map[core.GridPos]bool
}

func (w *worldWithWalls) PointQuery(pos core.Vec2, layer int, mask uint32) []physics.Collider {
	gx, gy := grid.WorldToGrid(pos)
	if w.blocked[core.GridPos{X: gx, Y: gy, Layer: layer}] {
		return []physics.Collider{{ID: 1, Tags: []string{physics.TagBlocked}}}
	}
	return nil
}

func testRig(t *testing.T, blocked ...core.GridPos) (*pathfind.Pathfinder, *movement.Validator, *profile.Manager) {
	t.Helper()
	w := &worldWithWalls{blocked: make(map[core.GridPos]bool)}
	for _, pos := range blocked {
		w.blocked[pos] = true
	}
	pf, err := pathfind.New(grid.NewScanner(w, physics.MaskTerrain),
		grid.Size{Width: 8, Height: 8, Layers: 1})
	if err != nil {
		t.Fatal(err)
	}
	pf.Refresh()
	return pf, movement.NewValidator(pf, nil), profile.NewManagerWithPresets()
}

func newTestUnit(t *testing.T, cfg Config) *Unit {
	t.Helper()
	u, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return u
}

func TestNewRequiresDependencies(t *testing.T) {
	pf, v, m := testRig(t)

	cases := []Config{
		{Finder: pf, Checker: v},
		{Profiles: m, Checker: v},
		{Profiles: m, Finder: pf},
	}
	for i, cfg := range cases {
		if _, err := New(cfg); err != ErrMissingDependency {
			t.Errorf("case %d: err %v, want ErrMissingDependency", i, err)
		}
	}
}

func TestNewGeneratesID(t *testing.T) {
	pf, v, m := testRig(t)

	u := newTestUnit(t, Config{Profiles: m, Finder: pf, Checker: v})
	if u.ID == "" {
		t.Error("empty ID not replaced")
	}

	named := newTestUnit(t, Config{ID: "alpha", Profiles: m, Finder: pf, Checker: v})
	if named.ID != "alpha" {
		t.Errorf("explicit ID overwritten with %q", named.ID)
	}
}

func TestRequestMoveWalksToTarget(t *testing.T) {
	pf, v, m := testRig(t)
	q := events.NewQueue()
	u := newTestUnit(t, Config{ID: "walker", Profiles: m, Finder: pf, Checker: v, Queue: q})

	target := core.GridPos{X: 3, Y: 0}
	path := u.RequestMove(target)
	if len(path) == 0 {
		t.Fatal("open-grid move blocked")
	}
	if u.State() != StateMoving {
		t.Fatalf("state %v, want moving", u.State())
	}

	evs := q.Consume()
	if len(evs) != 1 || evs[0].Type != events.EventPathCalculated {
		t.Fatalf("events %v, want one path-calculated", evs)
	}
	payload := evs[0].Payload.(*events.PathCalculatedPayload)
	if payload.UnitID != "walker" || payload.Truncated {
		t.Errorf("payload %+v", payload)
	}
	// Infantry multiplier 1.0: three unit steps price at 3.0
	if payload.Cost != 3.0 {
		t.Errorf("path cost %v, want 3.0", payload.Cost)
	}

	// Walk it out, one tick per step
	for i := 0; i < len(path); i++ {
		u.Tick()
	}
	if u.Pos != target {
		t.Errorf("ended at %v, want %v", u.Pos, target)
	}
	if u.State() != StateIdle {
		t.Errorf("state %v after arrival, want idle", u.State())
	}
	if u.Path() != nil {
		t.Errorf("residual path %v", u.Path())
	}
}

func TestRequestMoveBlockedTransitions(t *testing.T) {
	// Wall the target in completely
	pf, v, m := testRig(t,
		core.GridPos{X: 6, Y: 0}, core.GridPos{X: 6, Y: 1},
		core.GridPos{X: 7, Y: 1})
	q := events.NewQueue()
	u := newTestUnit(t, Config{ID: "stuck", Profiles: m, Finder: pf, Checker: v, Queue: q})

	if path := u.RequestMove(core.GridPos{X: 7, Y: 0}); path != nil {
		t.Fatalf("walled-in target produced path %v", path)
	}
	if u.State() != StateBlocked {
		t.Fatalf("state %v, want blocked", u.State())
	}

	evs := q.Consume()
	if len(evs) != 1 || evs[0].Type != events.EventMoveBlocked {
		t.Fatalf("events %v, want one move-blocked", evs)
	}
	payload := evs[0].Payload.(*events.MoveBlockedPayload)
	if payload.UnitID != "stuck" {
		t.Errorf("payload %+v", payload)
	}

	// Blocked settles to idle on the next tick, position untouched
	u.Tick()
	if u.State() != StateIdle || u.Pos != (core.GridPos{}) {
		t.Errorf("state %v at %v after settling", u.State(), u.Pos)
	}
}

// wallBeyond occludes any cast whose endpoint lies past a world X
type wallBeyond struct {
	x float64
}

func (r *wallBeyond) RayQuery(from, to core.Vec2, mask uint32, excludeOwner string) *physics.Hit {
	if to.X > r.x {
		return &physics.Hit{ColliderID: 99, Point: to}
	}
	return nil
}

func TestRequestMoveTruncatedFlag(t *testing.T) {
	// Single-row corridor: the planned route is forced straight, so the
	// occlusion point determines the cut deterministically
	w := &worldWithWalls{blocked: map[core.GridPos]bool{}}
	pf, err := pathfind.New(grid.NewScanner(w, physics.MaskTerrain),
		grid.Size{Width: 8, Height: 1, Layers: 1})
	if err != nil {
		t.Fatal(err)
	}
	pf.Refresh()

	// Sight ends past cell x=3 (cell centers sit at x·32 world units)
	v := movement.NewValidator(pf, &wallBeyond{x: 3 * parameter.TileWidth / 2})
	m := profile.NewManagerWithPresets()
	m.Register(&profile.Profile{
		Name: "Watcher", MinRange: 1, MaxRange: 1,
		Pattern:                profile.PatternFree,
		RequiresLineOfSight:    true,
		MovementCostMultiplier: 1, DiagonalCostMultiplier: 1,
	})
	m.Assign("watcher", "Watcher")

	q := events.NewQueue()
	u := newTestUnit(t, Config{ID: "watcher", Profiles: m, Finder: pf, Checker: v, Queue: q})

	path := u.RequestMove(core.GridPos{X: 5, Y: 0})
	if len(path) != 4 {
		t.Fatalf("validated path %v, want the 4 cells up to the occlusion", path)
	}
	if u.State() != StateMoving {
		t.Fatalf("state %v, want moving on a partial path", u.State())
	}

	payload := q.Consume()[0].Payload.(*events.PathCalculatedPayload)
	if !payload.Truncated {
		t.Error("shortened path not flagged truncated")
	}
}

func TestUnitSelectable(t *testing.T) {
	pf, v, m := testRig(t)
	u := newTestUnit(t, Config{ID: "sel", Profiles: m, Finder: pf, Checker: v})

	if u.SelectableID() != "sel" || u.Selected() {
		t.Fatal("fresh unit selection state wrong")
	}
	u.SetSelected(true)
	if !u.Selected() {
		t.Error("SetSelected(true) did not take")
	}
}

func TestProfileResolution(t *testing.T) {
	pf, v, m := testRig(t)
	u := newTestUnit(t, Config{ID: "p", Profiles: m, Finder: pf, Checker: v})

	if got := u.Profile(); got == nil || got.Name != profile.DefaultProfileName {
		t.Errorf("default resolution %v", got)
	}
	m.Assign("p", "Scout")
	if got := u.Profile(); got == nil || got.Name != "Scout" {
		t.Errorf("assigned resolution %v", got)
	}
}

// Height cache

type flatTiles struct {
	heights map[core.GridPos]float64
}

func (f *flatTiles) HeightAt(layer int, pos core.Vec2) float64 {
	gx, gy := grid.WorldToGrid(pos)
	return f.heights[core.GridPos{X: gx, Y: gy, Layer: layer}]
}

type countingScene struct {
	missing map[core.GridPos]bool
	queries int
}

func (s *countingScene) HasVisualAt(layer int, pos core.Vec2) bool {
	s.queries++
	gx, gy := grid.WorldToGrid(pos)
	return !s.missing[core.GridPos{X: gx, Y: gy, Layer: layer}]
}

func TestHeightBuckets(t *testing.T) {
	cases := []struct {
		h    float64
		want float64
	}{
		{0.0, parameter.HeightBucketBase},
		{0.2, parameter.HeightBucketBase},
		{0.25, parameter.HeightBucketLow},
		{0.4, parameter.HeightBucketLow},
		{0.5, parameter.HeightBucketMid},
		{0.9, parameter.HeightBucketMid},
		{1.0, parameter.HeightBucketHigh},
	}
	for _, tc := range cases {
		if got := bucketHeight(tc.h); got != tc.want {
			t.Errorf("bucketHeight(%v) = %v, want %v", tc.h, got, tc.want)
		}
	}
}

func TestHeightCacheLazyBuildOnce(t *testing.T) {
	pf, v, m := testRig(t)
	tiles := &flatTiles{heights: map[core.GridPos]float64{
		{X: 1, Y: 1}: 0.6,
	}}
	scene := &countingScene{missing: map[core.GridPos]bool{{X: 2, Y: 2}: true}}
	u := newTestUnit(t, Config{ID: "h", Profiles: m, Finder: pf, Checker: v,
		Tiles: tiles, Scene: scene})

	if got := u.HeightOffsetAt(core.GridPos{X: 1, Y: 1}); got != parameter.HeightBucketMid {
		t.Errorf("raised cell offset %v, want mid bucket", got)
	}
	// Cells without a visual fall back to the base offset
	if got := u.HeightOffsetAt(core.GridPos{X: 2, Y: 2}); got != parameter.HeightBucketBase {
		t.Errorf("visual-less cell offset %v, want base", got)
	}

	queries := scene.queries
	u.HeightOffsetAt(core.GridPos{X: 3, Y: 3})
	if scene.queries != queries {
		t.Error("second lookup rebuilt the cache")
	}

	u.InvalidateHeightCache()
	u.HeightOffsetAt(core.GridPos{X: 3, Y: 3})
	if scene.queries == queries {
		t.Error("invalidation did not force a rebuild")
	}
}

func TestHeightCacheWithoutProviders(t *testing.T) {
	pf, v, m := testRig(t)
	u := newTestUnit(t, Config{ID: "np", Profiles: m, Finder: pf, Checker: v})

	if got := u.HeightOffsetAt(core.GridPos{X: 0, Y: 0}); got != parameter.HeightBucketBase {
		t.Errorf("offset without providers %v, want base", got)
	}
}
