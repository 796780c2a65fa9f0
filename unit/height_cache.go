package unit

import (
	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/grid"
	"github.com/voskhod/tactgrid/parameter"
)

// TileDataProvider exposes per-tile custom data from the terrain layers
type TileDataProvider interface {
	// HeightAt returns the normalized tile height in [0,1] at a world
	// position on the given layer
	HeightAt(layer int, pos core.Vec2) float64
}

// SceneProvider answers sprite-presence checks for terrain cells
type SceneProvider interface {
	HasVisualAt(layer int, pos core.Vec2) bool
}

// heightCache maps grid positions to discrete vertical offsets.
// Owned exclusively by one unit, built lazily on first use and at most
// once per explicit invalidation
type heightCache struct {
	tiles TileDataProvider
	scene SceneProvider

	built   bool
	offsets map[core.GridPos]float64
}

// bucketHeight maps a normalized height to one of four discrete world
// offsets by threshold
func bucketHeight(h float64) float64 {
	switch {
	case h >= parameter.HeightThresholdTop:
		return parameter.HeightBucketHigh
	case h >= parameter.HeightThresholdMid:
		return parameter.HeightBucketMid
	case h >= parameter.HeightThresholdLow:
		return parameter.HeightBucketLow
	default:
		return parameter.HeightBucketBase
	}
}

// HeightOffsetAt returns the unit's cached vertical offset for pos,
// building the cache on first use. Cells without a visual fall back to
// the base offset
func (u *Unit) HeightOffsetAt(pos core.GridPos) float64 {
	if !u.heights.built {
		u.buildHeightCache()
	}
	if off, ok := u.heights.offsets[pos]; ok {
		return off
	}
	return parameter.HeightBucketBase
}

// InvalidateHeightCache forces a rebuild on next use, after an explicit
// terrain refresh
func (u *Unit) InvalidateHeightCache() {
	u.heights.built = false
	u.heights.offsets = nil
}

func (u *Unit) buildHeightCache() {
	u.heights.built = true // At most one build per refresh, even on empty providers
	u.heights.offsets = make(map[core.GridPos]float64)
	if u.heights.tiles == nil {
		return
	}

	cells := u.finder.Cells()
	if cells == nil {
		// No snapshot yet: stay built-empty, callers get the base offset
		// until the cache is invalidated after the first grid build
		return
	}

	for _, pos := range cells.WalkablePositions() {
		center := grid.CellCenter(pos)
		if u.heights.scene != nil && !u.heights.scene.HasVisualAt(pos.Layer, center) {
			continue
		}
		u.heights.offsets[pos] = bucketHeight(u.heights.tiles.HeightAt(pos.Layer, center))
	}
}
