// Command tactgrid-sandbox is an interactive terminal playground for the
// movement layer: a scanned multi-layer grid rendered per layer, one
// unit per profile preset, cursor-driven move requests with path
// overlay and an audible tone when a request is blocked.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/voskhod/tactgrid/core"
	"github.com/voskhod/tactgrid/events"
	"github.com/voskhod/tactgrid/grid"
	"github.com/voskhod/tactgrid/movement"
	"github.com/voskhod/tactgrid/pathfind"
	"github.com/voskhod/tactgrid/physics"
	"github.com/voskhod/tactgrid/profile"
	"github.com/voskhod/tactgrid/selection"
	"github.com/voskhod/tactgrid/unit"
)

const (
	gridW      = 12
	gridH      = 10
	gridLayers = 2

	tickInterval = 50 * time.Millisecond
)

type Sandbox struct {
	screen tcell.Screen

	finder    *pathfind.Pathfinder
	profiles  *profile.Manager
	checker   *movement.Validator
	selection *selection.Coordinator
	queue     *events.Queue
	router    *events.Router[*Sandbox]

	units  []*unit.Unit
	cursor core.GridPos

	lastPath core.Path
	status   string

	audioInit bool
}

func NewSandbox(catalogPath string) (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	world := buildDemoWorld()
	scanner := grid.NewScanner(world, physics.MaskTerrain)
	size := grid.Size{Width: gridW, Height: gridH, Layers: gridLayers}

	finder, err := pathfind.New(scanner, size)
	if err != nil {
		screen.Fini()
		return nil, err
	}

	queue := events.NewQueue()
	profiles := profile.NewManagerWithPresets()
	if catalogPath != "" {
		if err := profile.LoadCatalog(catalogPath, profiles); err != nil {
			screen.Fini()
			return nil, err
		}
	}
	checker := movement.NewValidator(finder, world)
	finder.AttachQueue(queue)

	s := &Sandbox{
		screen:    screen,
		finder:    finder,
		profiles:  profiles,
		checker:   checker,
		selection: selection.NewCoordinator(queue),
		queue:     queue,
		router:    newRouter(queue),
		cursor:    core.GridPos{X: 1, Y: 1},
		status:    "arrows move cursor, tab selects unit, enter requests move, r rescans, q quits",
	}

	if err := s.initAudio(); err != nil {
		// Non-fatal, the sandbox can run without sound
		log.Printf("Audio initialization failed: %v", err)
	}

	s.spawnUnits()
	return s, nil
}

// buildDemoWorld lays out static terrain: a wall with a gap, a stair
// pair to the upper layer, and a teleporter shortcut
func buildDemoWorld() *physics.StaticWorld {
	w := physics.NewStaticWorld()

	// Vertical wall on layer 0 with a gap at y=6
	for y := 0; y < gridH; y++ {
		if y == 6 {
			continue
		}
		addCellBox(w, core.GridPos{X: 5, Y: y}, physics.TagBlocked)
	}

	// Stair pair at (9,2)
	addCellBox(w, core.GridPos{X: 9, Y: 2}, physics.TagStairUp)
	addCellBox(w, core.GridPos{X: 9, Y: 2, Layer: 1}, physics.TagStairDown)

	// Teleporter: entrance near the origin, exit across the wall
	addPairedCellBox(w, core.GridPos{X: 1, Y: 8}, "gate-a", physics.TagTeleporterEntrance)
	addPairedCellBox(w, core.GridPos{X: 10, Y: 8}, "gate-a", physics.TagTeleporterExit)

	return w
}

func addCellBox(w *physics.StaticWorld, pos core.GridPos, tags ...string) {
	c := grid.CellCenter(pos)
	w.AddBox(pos.Layer, c.X-1, c.Y-1, c.X+1, c.Y+1, physics.MaskTerrain, tags...)
}

func addPairedCellBox(w *physics.StaticWorld, pos core.GridPos, pairID string, tags ...string) {
	c := grid.CellCenter(pos)
	w.AddPairedBox(pos.Layer, c.X-1, c.Y-1, c.X+1, c.Y+1, physics.MaskTerrain, pairID, tags...)
}

func (s *Sandbox) spawnUnits() {
	starts := []core.GridPos{
		{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 3, Y: 5},
	}
	names := []string{"Infantry", "Scout", "Knight"}

	for i, name := range names {
		u, err := unit.New(unit.Config{
			ID:       name,
			Start:    starts[i],
			Profiles: s.profiles,
			Finder:   s.finder,
			Checker:  s.checker,
			Queue:    s.queue,
		})
		if err != nil {
			log.Printf("spawn %s: %v", name, err)
			continue
		}
		s.profiles.Assign(u.ID, name)
		s.units = append(s.units, u)
	}
	if len(s.units) > 0 {
		s.selection.Select(s.units[0])
	}
}

func (s *Sandbox) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

// playBlockedTone gives audible feedback when a move request validates
// to nothing usable
func (s *Sandbox) playBlockedTone() {
	if !s.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	duration := sampleRate.N(80 * time.Millisecond)
	sine, _ := generators.SineTone(sampleRate, 220)
	speaker.Play(beep.Take(duration, sine))
}

func (s *Sandbox) unitByID(id string) *unit.Unit {
	for _, u := range s.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Sandbox) selectedUnit() *unit.Unit {
	sel := s.selection.Selected()
	if sel == nil {
		return nil
	}
	for _, u := range s.units {
		if u == sel {
			return u
		}
	}
	return nil
}

func (s *Sandbox) cycleSelection() {
	cur := s.selectedUnit()
	for i, u := range s.units {
		if u == cur {
			s.selection.Select(s.units[(i+1)%len(s.units)])
			return
		}
	}
	if len(s.units) > 0 {
		s.selection.Select(s.units[0])
	}
}

// requestMove publishes intent only; moveRequestHandler picks it up on
// the next dispatch and moveFeedbackHandler reports the outcome
func (s *Sandbox) requestMove() {
	u := s.selectedUnit()
	if u == nil {
		return
	}
	s.queue.Push(events.Event{
		Type:      events.EventMoveRequested,
		Payload:   &events.MoveRequestedPayload{UnitID: u.ID, Target: s.cursor},
		Timestamp: time.Now(),
	})
}

func (s *Sandbox) moveCursor(dx, dy, dl int) {
	c := s.cursor
	c.X += dx
	c.Y += dy
	c.Layer += dl
	if c.X < 0 || c.X >= gridW || c.Y < 0 || c.Y >= gridH || c.Layer < 0 || c.Layer >= gridLayers {
		return
	}
	s.cursor = c
}

func cellRune(c *grid.Cell) (rune, tcell.Style) {
	st := tcell.StyleDefault
	switch c.Type {
	case grid.CellBlocked:
		return '#', st.Foreground(tcell.ColorRed)
	case grid.CellStairUp:
		return '>', st.Foreground(tcell.ColorYellow)
	case grid.CellStairDown:
		return '<', st.Foreground(tcell.ColorYellow)
	case grid.CellTeleporterEntrance:
		return 'T', st.Foreground(tcell.ColorAqua)
	case grid.CellTeleporterExit:
		return 't', st.Foreground(tcell.ColorAqua)
	case grid.CellWalkable:
		return '·', st.Foreground(tcell.ColorGray)
	}
	return ' ', st
}

func (s *Sandbox) draw() {
	s.screen.Clear()

	cells := s.finder.Cells()
	if cells == nil {
		drawText(s.screen, 0, 0, tcell.StyleDefault, "scanning…")
		s.screen.Show()
		return
	}

	onPath := make(map[core.GridPos]bool, len(s.lastPath))
	for _, p := range s.lastPath {
		onPath[p] = true
	}

	for layer := 0; layer < gridLayers; layer++ {
		offX := layer * (gridW*2 + 6)
		drawText(s.screen, offX, 0, tcell.StyleDefault.Bold(true), fmt.Sprintf("layer %d", layer))

		for y := 0; y < gridH; y++ {
			for x := 0; x < gridW; x++ {
				pos := core.GridPos{X: x, Y: y, Layer: layer}
				c := cells.Cell(pos)
				if c == nil {
					continue
				}
				r, st := cellRune(c)
				if onPath[pos] {
					r, st = '*', tcell.StyleDefault.Foreground(tcell.ColorGreen)
				}
				for _, u := range s.units {
					if u.Pos == pos {
						r = rune(u.ID[0])
						st = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
						if u.Selected() {
							st = st.Reverse(true)
						}
					}
				}
				if s.cursor == pos {
					st = st.Underline(true)
				}
				s.screen.SetContent(offX+x*2, y+1, r, nil, st)
			}
		}
	}

	if u := s.selectedUnit(); u != nil {
		if p := u.Profile(); p != nil {
			drawText(s.screen, 0, gridH+2, tcell.StyleDefault,
				fmt.Sprintf("selected %s [%s range %d-%d] state=%s", u.ID, p.Pattern, p.MinRange, p.MaxRange, u.State()))
		}
	}
	drawText(s.screen, 0, gridH+3, tcell.StyleDefault.Foreground(tcell.ColorGray), s.status)

	s.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func (s *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.moveCursor(0, -1, 0)
		case tcell.KeyDown:
			s.moveCursor(0, 1, 0)
		case tcell.KeyLeft:
			s.moveCursor(-1, 0, 0)
		case tcell.KeyRight:
			s.moveCursor(1, 0, 0)
		case tcell.KeyTab:
			s.cycleSelection()
		case tcell.KeyEnter:
			s.requestMove()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				s.moveCursor(-1, 0, 0)
			case 'j':
				s.moveCursor(0, 1, 0)
			case 'k':
				s.moveCursor(0, -1, 0)
			case 'l':
				s.moveCursor(1, 0, 0)
			case 'u':
				s.moveCursor(0, 0, 1)
			case 'd':
				s.moveCursor(0, 0, -1)
			case 'r':
				s.finder.Refresh()
				s.status = "grid rescanned"
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *Sandbox) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- s.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev) {
				return
			}

		case <-ticker.C:
			s.finder.Tick()
			for _, u := range s.units {
				u.Tick()
			}
			s.router.DispatchAll(s)
			s.draw()
		}
	}
}

func (s *Sandbox) cleanup() {
	if s.audioInit {
		speaker.Close()
	}
	s.screen.Fini()
}

func main() {
	catalogPath := flag.String("profiles", "", "optional profile catalog JSON to load on top of the presets")
	flag.Parse()

	sandbox, err := NewSandbox(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sandbox.cleanup()

	sandbox.run()
}
