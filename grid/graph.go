package grid

import (
	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/parameter"
)

// Neighbor offsets, cardinals first then diagonals
// Order: N, E, S, W, NE, SE, SW, NW
var NeighborOffsets = [8]core.Offset{
	{DX: 0, DY: -1}, {DX: 1, DY: 0}, {DX: 0, DY: 1}, {DX: -1, DY: 0},
	{DX: 1, DY: -1}, {DX: 1, DY: 1}, {DX: -1, DY: 1}, {DX: -1, DY: -1},
}

// Edge is one weighted, directed connection between walkable cells
type Edge struct {
	To   core.GridPos
	Cost float64
}

// Graph is the navigable structure over a scanned cell map.
// Invariant: an edge exists only between two walkable cells.
// The graph is discarded and rebuilt in full on every rescan
type Graph struct {
	edges map[core.GridPos][]Edge
	nodes int
}

// Neighbors returns the outgoing edges of pos, nil for non-nodes
func (g *Graph) Neighbors(pos core.GridPos) []Edge {
	return g.edges[pos]
}

// HasNode reports whether pos is a graph node
func (g *Graph) HasNode(pos core.GridPos) bool {
	_, ok := g.edges[pos]
	return ok
}

// NodeCount returns the number of walkable nodes
func (g *Graph) NodeCount() int {
	return g.nodes
}

// BuildGraph emits one node per walkable cell with 8-way same-layer
// edges plus directed stair and teleporter edges.
// An edge costs the cell being entered: target cell cost for
// orthogonals, ×√2 for diagonals, ×2 for stairs, a fixed low constant
// for teleporters. Cheap teleporter exit cells therefore pull routes in
func BuildGraph(m *CellMap) *Graph {
	g := &Graph{edges: make(map[core.GridPos][]Edge)}

	m.eachInScanOrder(func(c *Cell) {
		if !c.Walkable {
			return
		}
		g.nodes++
		edges := make([]Edge, 0, 8)

		for i, off := range NeighborOffsets {
			n := core.GridPos{X: c.Pos.X + off.DX, Y: c.Pos.Y + off.DY, Layer: c.Pos.Layer}
			target := m.Cell(n)
			if target == nil || !target.Walkable {
				continue
			}
			cost := target.MovementCost
			if i >= 4 {
				cost *= parameter.DiagonalCostFactor
			}
			edges = append(edges, Edge{To: n, Cost: cost})
		}

		if c.StairTarget != nil {
			if target := m.Cell(*c.StairTarget); target != nil && target.Walkable {
				edges = append(edges, Edge{To: *c.StairTarget, Cost: target.MovementCost * parameter.StairCostFactor})
			}
		}
		if c.TeleporterTarget != nil && m.IsWalkable(*c.TeleporterTarget) {
			edges = append(edges, Edge{To: *c.TeleporterTarget, Cost: parameter.TeleporterEdgeCost})
		}

		g.edges[c.Pos] = edges
	})

	return g
}
