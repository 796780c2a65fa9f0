package grid

import (
	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/parameter"
)

// Isometric 2:1 projection between grid and world space

// GridToWorld projects grid coordinates to the world-space tile origin
func GridToWorld(gx, gy int) core.Vec2 {
	return core.Vec2{
		X: float64(gx-gy) * parameter.TileWidth / 2,
		Y: float64(gx+gy) * parameter.TileHeight / 2,
	}
}

// WorldToGrid inverts GridToWorld, truncating to integers last
func WorldToGrid(w core.Vec2) (int, int) {
	a := w.X / (parameter.TileWidth / 2)  // gx - gy
	b := w.Y / (parameter.TileHeight / 2) // gx + gy
	gx := (a + b) / 2
	gy := (b - a) / 2
	return int(gx), int(gy)
}

// CellCenter returns the world-space center of a cell, used as the
// classification probe point and the ray endpoint for a step
func CellCenter(pos core.GridPos) core.Vec2 {
	w := GridToWorld(pos.X, pos.Y)
	w.Y += parameter.TileHeight / 2
	return w
}

// LayerOffset is the vertical world offset applied to ray endpoints on
// elevated layers
func LayerOffset(layer int) float64 {
	return float64(layer) * parameter.LayerWorldHeight
}
