package grid

import (
	"github.com/voskhod/tactgrid/core"
)

// CellType classifies one grid position after a scan
type CellType int

const (
	CellEmpty CellType = iota
	CellBlocked
	CellWalkable
	CellStairUp
	CellStairDown
	CellTeleporterEntrance
	CellTeleporterExit
)

var cellTypeNames = [...]string{
	"empty", "blocked", "walkable",
	"stair_up", "stair_down",
	"teleporter_entrance", "teleporter_exit",
}

func (t CellType) String() string {
	if t < 0 || int(t) >= len(cellTypeNames) {
		return "unknown"
	}
	return cellTypeNames[t]
}

// walkable reports whether units may stand on a cell of this type
func (t CellType) walkable() bool {
	switch t {
	case CellWalkable, CellStairUp, CellStairDown, CellTeleporterEntrance, CellTeleporterExit:
		return true
	}
	return false
}

// Cell is one scanned grid position. Cells are created during a full
// scan and replaced wholesale on rescan; fields never mutate afterwards
type Cell struct {
	Pos          core.GridPos
	Type         CellType
	Walkable     bool    // Derived from Type at scan time
	MovementCost float64 // Base traversal cost, teleporter exits are cheaper

	StairTarget      *core.GridPos // Paired cell on the adjacent layer
	TeleporterTarget *core.GridPos // Resolved exit, nil when dangling
	TeleporterID     string        // Shared pair id, empty for non-teleporters
}

// Size bounds a scan volume
type Size struct {
	Width, Height, Layers int
}

// Contains reports whether pos lies inside the scan bounds
func (s Size) Contains(pos core.GridPos) bool {
	return pos.X >= 0 && pos.X < s.Width &&
		pos.Y >= 0 && pos.Y < s.Height &&
		pos.Layer >= 0 && pos.Layer < s.Layers
}

// CellMap is the immutable product of one full scan
type CellMap struct {
	Size  Size
	cells map[core.GridPos]*Cell
}

// Cell returns the cell at pos, nil when absent
func (m *CellMap) Cell(pos core.GridPos) *Cell {
	return m.cells[pos]
}

// IsWalkable reports whether pos holds a walkable cell
func (m *CellMap) IsWalkable(pos core.GridPos) bool {
	c := m.cells[pos]
	return c != nil && c.Walkable
}

// Len returns the number of scanned cells
func (m *CellMap) Len() int {
	return len(m.cells)
}

// WalkablePositions returns every walkable position in scan order
// (layer, then row, then column)
func (m *CellMap) WalkablePositions() []core.GridPos {
	out := make([]core.GridPos, 0, len(m.cells))
	m.eachInScanOrder(func(c *Cell) {
		if c.Walkable {
			out = append(out, c.Pos)
		}
	})
	return out
}

// eachInScanOrder visits cells in the deterministic scan order
func (m *CellMap) eachInScanOrder(fn func(*Cell)) {
	for layer := 0; layer < m.Size.Layers; layer++ {
		for y := 0; y < m.Size.Height; y++ {
			for x := 0; x < m.Size.Width; x++ {
				if c := m.cells[core.GridPos{X: x, Y: y, Layer: layer}]; c != nil {
					fn(c)
				}
			}
		}
	}
}
