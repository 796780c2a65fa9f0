package pathfind

import (
	"errors"
	"time"

	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/events"
	"github.com/voskhod/tactgrid/grid"
	"github.com/voskhod/tactgrid/parameter"
)

// ErrNoScanner is returned when the pathfinder is constructed without a
// grid scanner. Fatal at init: no queries can be answered
var ErrNoScanner = errors.New("pathfind: no scanner assigned")

// snapshot is one immutable rebuild product. Queries read a single
// snapshot reference; Refresh swaps the whole thing so readers never
// observe a partially-rebuilt graph
type snapshot struct {
	cells *grid.CellMap
	graph *grid.Graph
}

// Pathfinder answers shortest-path and reachability queries over the
// scanned grid
type Pathfinder struct {
	scanner *grid.Scanner
	size    grid.Size

	current *snapshot
	queue   *events.Queue

	// Initial build is deferred so it does not contend with other
	// startup work on the first tick
	deferTicks int
	heap       minHeap
}

// New creates a pathfinder over scanner. The first build runs on the
// Tick after construction, not immediately
func New(scanner *grid.Scanner, size grid.Size) (*Pathfinder, error) {
	if scanner == nil {
		return nil, ErrNoScanner
	}
	return &Pathfinder{
		scanner:    scanner,
		size:       size,
		deferTicks: parameter.GridRebuildDeferTicks,
	}, nil
}

// Tick advances the deferred-build countdown, running the initial scan
// when it expires. Returns true when a build happened this tick
func (p *Pathfinder) Tick() bool {
	if p.current != nil {
		return false
	}
	if p.deferTicks > 0 {
		p.deferTicks--
		return false
	}
	p.Refresh()
	return true
}

// AttachQueue wires the event bus; EventGridRefreshed is published
// after every rebuild. Optional
func (p *Pathfinder) AttachQueue(q *events.Queue) {
	p.queue = q
}

// Refresh rescans the grid and rebuilds the graph, replacing the cached
// state atomically
func (p *Pathfinder) Refresh() {
	cells := p.scanner.Scan(p.size)
	p.current = &snapshot{
		cells: cells,
		graph: grid.BuildGraph(cells),
	}
	if p.queue != nil {
		p.queue.Push(events.Event{
			Type:      events.EventGridRefreshed,
			Payload:   &events.GridRefreshedPayload{WalkableCells: len(cells.WalkablePositions())},
			Timestamp: time.Now(),
		})
	}
}

// Ready reports whether a snapshot exists to query
func (p *Pathfinder) Ready() bool {
	return p.current != nil
}

// Cells returns the current cell map, nil before the first build
func (p *Pathfinder) Cells() *grid.CellMap {
	if p.current == nil {
		return nil
	}
	return p.current.cells
}

// FindPath returns the least-cost path from → to, both inclusive.
// Empty when either endpoint is absent or non-walkable, or when no
// path exists
func (p *Pathfinder) FindPath(from, to core.GridPos) core.Path {
	s := p.current
	if s == nil || !s.cells.IsWalkable(from) || !s.cells.IsWalkable(to) {
		return nil
	}
	if from == to {
		return core.Path{from}
	}

	dist := map[core.GridPos]float64{from: 0}
	prev := make(map[core.GridPos]core.GridPos)

	p.heap = p.heap[:0]
	p.heap.push(heapEntry{pos: from, dist: 0})

	for len(p.heap) > 0 {
		e := p.heap.pop()
		if e.dist > dist[e.pos] {
			continue // Stale entry
		}
		if e.pos == to {
			break
		}

		for _, edge := range s.graph.Neighbors(e.pos) {
			nd := e.dist + edge.Cost
			if d, seen := dist[edge.To]; !seen || nd < d {
				dist[edge.To] = nd
				prev[edge.To] = e.pos
				p.heap.push(heapEntry{pos: edge.To, dist: nd})
			}
		}
	}

	if _, ok := prev[to]; !ok {
		return nil
	}

	// Walk predecessors back to the origin, then reverse
	path := core.Path{to}
	for cur := to; cur != from; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// AccessibleCells returns the walkable cells graph-connected to from.
// A nil origin means "no origin": every walkable cell is returned, so
// the zero coordinate stays a legitimate origin
func (p *Pathfinder) AccessibleCells(from *core.GridPos) []core.GridPos {
	s := p.current
	if s == nil {
		return nil
	}
	if from == nil {
		return s.cells.WalkablePositions()
	}
	if !s.cells.IsWalkable(*from) {
		return nil
	}

	visited := map[core.GridPos]bool{*from: true}
	queue := []core.GridPos{*from}
	out := []core.GridPos{*from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range s.graph.Neighbors(cur) {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			queue = append(queue, edge.To)
			out = append(out, edge.To)
		}
	}
	return out
}

// GridToWorld projects grid coordinates to world space
func (p *Pathfinder) GridToWorld(gx, gy int) core.Vec2 {
	return grid.GridToWorld(gx, gy)
}

// WorldToGrid inverts the projection
func (p *Pathfinder) WorldToGrid(w core.Vec2) (int, int) {
	return grid.WorldToGrid(w)
}
