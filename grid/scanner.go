package grid

import (
	"log"
	"sort"

	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/parameter"
	"github.com/voskhod/tactgrid/physics"
)

// Scanner classifies grid cells by probing the collision service at each
// cell's world-space center
type Scanner struct {
	world physics.PointQuerier
	mask  uint32
}

// NewScanner creates a scanner over the given collision service
func NewScanner(world physics.PointQuerier, mask uint32) *Scanner {
	return &Scanner{world: world, mask: mask}
}

// classification priority, first match wins
var tagPriority = []struct {
	tag string
	typ CellType
}{
	{physics.TagBlocked, CellBlocked},
	{physics.TagStairUp, CellStairUp},
	{physics.TagStairDown, CellStairDown},
	{physics.TagTeleporterEntrance, CellTeleporterEntrance},
	{physics.TagTeleporterExit, CellTeleporterExit},
	{physics.TagWalkable, CellWalkable},
}

// Scan builds a fresh cell map covering size. Every position is
// classified; stairs are linked to the adjacent layer and teleporter
// entrances resolved to their exits. The result is immutable
func (s *Scanner) Scan(size Size) *CellMap {
	m := &CellMap{
		Size:  size,
		cells: make(map[core.GridPos]*Cell, size.Width*size.Height*size.Layers),
	}

	for layer := 0; layer < size.Layers; layer++ {
		for y := 0; y < size.Height; y++ {
			for x := 0; x < size.Width; x++ {
				pos := core.GridPos{X: x, Y: y, Layer: layer}
				m.cells[pos] = s.classify(pos)
			}
		}
	}

	s.linkStairs(m)
	s.resolveTeleporters(m)
	return m
}

// classify probes one cell center and maps the hit tags to a cell type.
// Overlapping colliders are ordered by ascending id so classification
// does not depend on collector iteration order
func (s *Scanner) classify(pos core.GridPos) *Cell {
	hits := s.world.PointQuery(CellCenter(pos), pos.Layer, s.mask)

	cell := &Cell{Pos: pos, MovementCost: parameter.DefaultCellCost}

	if len(hits) == 0 {
		cell.Type = CellWalkable
		cell.Walkable = true
		return cell
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].ID < hits[j].ID })
	first := &hits[0]

	cell.Type = CellWalkable // Fallback when no priority tag matches
	for _, p := range tagPriority {
		if first.HasTag(p.tag) {
			cell.Type = p.typ
			break
		}
	}

	cell.Walkable = cell.Type.walkable()
	switch cell.Type {
	case CellTeleporterEntrance, CellTeleporterExit:
		cell.TeleporterID = first.PairID
	}
	if cell.Type == CellTeleporterExit {
		cell.MovementCost = parameter.TeleporterExitCellCost
	}
	return cell
}

// linkStairs pairs each stair cell with the same (x,y) on the adjacent
// layer when that cell exists and is walkable
func (s *Scanner) linkStairs(m *CellMap) {
	m.eachInScanOrder(func(c *Cell) {
		var dl int
		switch c.Type {
		case CellStairUp:
			dl = 1
		case CellStairDown:
			dl = -1
		default:
			return
		}
		target := core.GridPos{X: c.Pos.X, Y: c.Pos.Y, Layer: c.Pos.Layer + dl}
		if m.IsWalkable(target) {
			t := target
			c.StairTarget = &t
		}
	})
}

// resolveTeleporters matches each entrance to the first exit sharing its
// pair id, in scan order. Unresolved entrances stay dangling
func (s *Scanner) resolveTeleporters(m *CellMap) {
	exits := make(map[string]core.GridPos)
	m.eachInScanOrder(func(c *Cell) {
		if c.Type == CellTeleporterExit && c.TeleporterID != "" {
			if _, seen := exits[c.TeleporterID]; !seen {
				exits[c.TeleporterID] = c.Pos
			}
		}
	})

	m.eachInScanOrder(func(c *Cell) {
		if c.Type != CellTeleporterEntrance {
			return
		}
		target, ok := exits[c.TeleporterID]
		if !ok {
			log.Printf("grid: teleporter entrance %v has no exit for id %q", c.Pos, c.TeleporterID)
			return
		}
		t := target
		c.TeleporterTarget = &t
	})
}
