package core

import "math"

// GridPos addresses one cell on one layer
type GridPos struct {
	X, Y, Layer int
}

// Vec2 represents a world-space position
type Vec2 struct {
	X, Y float64
}

// Offset is a 2-D step delta between two grid positions
type Offset struct {
	DX, DY int
}

// Path is an ordered cell sequence from origin (inclusive) to destination
type Path []GridPos

// Delta returns the 2-D offset from p to other, ignoring layers
func (p GridPos) Delta(other GridPos) Offset {
	return Offset{DX: other.X - p.X, DY: other.Y - p.Y}
}

// TileDistance returns the 2-D Euclidean tile distance between p and other
// Layer difference does not contribute; vertical transitions are priced by edges
func (p GridPos) TileDistance(other GridPos) float64 {
	dx := float64(other.X - p.X)
	dy := float64(other.Y - p.Y)
	return math.Hypot(dx, dy)
}

// Length returns the Euclidean magnitude of the offset
func (o Offset) Length() float64 {
	return math.Hypot(float64(o.DX), float64(o.DY))
}

// Normalized reduces the offset to unit components per axis
// (3,0) → (1,0), (-2,-2) → (-1,-1). Zero offsets stay zero
func (o Offset) Normalized() Offset {
	n := o
	if n.DX > 0 {
		n.DX = 1
	} else if n.DX < 0 {
		n.DX = -1
	}
	if n.DY > 0 {
		n.DY = 1
	} else if n.DY < 0 {
		n.DY = -1
	}
	return n
}

// IsZero reports whether both components are zero
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}
