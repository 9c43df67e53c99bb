package terminal

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
)

// DefaultFrameInterval is the frame tick period used when Options leaves it
// unset
const DefaultFrameInterval = time.Second / 30

// World is the part of the engine a host drives
type World interface {
	engine.Handler
	Execute(cmd engine.Command) (bool, error)
}

// Options configures a terminal host
type Options struct {
	// CellWidth and CellHeight are the scene units covered by one
	// terminal cell. Defaults are 8 and 16.
	CellWidth     float64
	CellHeight    float64
	FrameInterval time.Duration
}

var (
	styleBase    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTexture = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleOverlay = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

var keyCommands = map[tcell.Key]engine.Command{
	tcell.KeyUp:    engine.CmdDpadUp,
	tcell.KeyDown:  engine.CmdDpadDown,
	tcell.KeyLeft:  engine.CmdDpadLeft,
	tcell.KeyRight: engine.CmdDpadRight,
	tcell.KeyEnter: engine.CmdControlMenu,
}

var runeCommands = map[rune]engine.Command{
	'w': engine.CmdDpadUp,
	's': engine.CmdDpadDown,
	'a': engine.CmdDpadLeft,
	'd': engine.CmdDpadRight,
	'z': engine.CmdControlA,
	'b': engine.CmdControlB,
	'c': engine.CmdControlC,
	'm': engine.CmdControlMenu,
}

// Host runs a world on a tcell screen. All world calls happen on the
// goroutine running Run.
type Host struct {
	world  World
	graph  *scene.Graph
	screen tcell.Screen
	opts   Options

	pressed  bool
	lastCell [2]int
}

// New creates a host for a world that has already been set up. The screen
// must be initialised by the caller.
func New(world World, graph *scene.Graph, screen tcell.Screen, opts Options) *Host {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	return &Host{world: world, graph: graph, screen: screen, opts: opts}
}

func (h *Host) viewport() scene.Viewport {
	return scene.Viewport{
		Scene:  h.graph.Size(),
		ScaleX: 1 / h.opts.CellWidth,
		ScaleY: 1 / h.opts.CellHeight,
	}
}

// CellToScene returns the scene point at the centre of a terminal cell
func (h *Host) CellToScene(x, y int) engine.Point {
	return h.viewport().ToScene(float64(x)+0.5, float64(y)+0.5)
}

// Run polls events and ticks frames until the user quits or ctx is done
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.screen.DisableMouse()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.opts.FrameInterval)
	defer ticker.Stop()

	h.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.HandleEvent(ev) {
				return nil
			}
			h.Draw()
		case <-ticker.C:
			h.world.OnFrameTick()
			h.Draw()
		}
	}
}

// HandleEvent forwards one terminal event to the world. It returns false
// when the user asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.world.OnResize()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	var cmd engine.Command
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		r := ev.Rune()
		if r == 'q' {
			return false
		}
		cmd = runeCommands[r]
	default:
		cmd = keyCommands[ev.Key()]
	}

	if cmd != "" {
		if _, err := h.world.Execute(cmd); err != nil {
			log.Printf("[KEY] %s: %v", cmd, err)
		}
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	cell := [2]int{x, y}
	p := h.CellToScene(x, y)

	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !h.pressed:
		h.pressed = true
		h.lastCell = cell
		h.world.OnTouchBegin(p)
	case down && cell != h.lastCell:
		h.lastCell = cell
		h.world.OnTouchMove(p)
	case !down && h.pressed:
		h.pressed = false
		h.world.OnTouchEnd(p)
	}
}

// Draw renders the scene graph and shows the screen
func (h *Host) Draw() {
	w, hgt := h.screen.Size()
	c := h.Render(w, hgt)

	h.screen.Clear()
	for y := range c.Cells {
		for x, cell := range c.Cells[y] {
			if cell.Rune != 0 {
				h.screen.SetContent(x, y, cell.Rune, nil, cell.Style)
			}
		}
	}
	h.screen.Show()
}

// Cell is one rendered terminal cell
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Canvas is a rendered frame, indexed [row][col] from the top-left
type Canvas struct {
	Cells [][]Cell
}

// At returns the cell at (x, y), or the zero cell outside the canvas
func (c *Canvas) At(x, y int) Cell {
	if y < 0 || y >= len(c.Cells) || x < 0 || x >= len(c.Cells[y]) {
		return Cell{}
	}
	return c.Cells[y][x]
}

// Row returns row y as a string, with empty cells as spaces
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= len(c.Cells) {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.Cells[y] {
		if cell.Rune == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(cell.Rune)
	}
	return b.String()
}

func (c *Canvas) set(x, y int, r rune, style tcell.Style) {
	if y < 0 || y >= len(c.Cells) || x < 0 || x >= len(c.Cells[y]) {
		return
	}
	c.Cells[y][x] = Cell{Rune: r, Style: style}
}

// Render draws a snapshot of the scene graph onto a w x h canvas. Sprites
// fill the cells their scaled image covers; labels are centred on their
// position, one canvas row per line of text.
func (h *Host) Render(w, hgt int) *Canvas {
	c := &Canvas{Cells: make([][]Cell, hgt)}
	for y := range c.Cells {
		c.Cells[y] = make([]Cell, w)
	}

	vp := h.viewport()
	for _, n := range h.graph.Snapshot() {
		switch n.Kind {
		case scene.KindSprite:
			r := Glyph(n.Asset)
			if r == 0 {
				continue
			}
			style := styleFor(n)
			scale := n.Scale
			if scale == 0 {
				scale = 1
			}
			half := engine.Point{X: n.Size.W * scale / 2, Y: n.Size.H * scale / 2}
			x0, y0 := vp.ToRaster(engine.Point{X: n.Position.X - half.X, Y: n.Position.Y + half.Y})
			x1, y1 := vp.ToRaster(engine.Point{X: n.Position.X + half.X, Y: n.Position.Y - half.Y})
			cx0, cy0 := int(math.Floor(x0)), int(math.Floor(y0))
			cx1, cy1 := int(math.Ceil(x1)), int(math.Ceil(y1))
			if cx1 <= cx0 {
				cx1 = cx0 + 1
			}
			if cy1 <= cy0 {
				cy1 = cy0 + 1
			}
			for y := cy0; y < cy1; y++ {
				for x := cx0; x < cx1; x++ {
					c.set(x, y, r, style)
				}
			}
		case scene.KindLabel:
			x, y := vp.ToRaster(n.Position)
			row := int(math.Floor(y))
			for i, line := range strings.Split(n.Text, "\n") {
				runes := []rune(strings.TrimRight(line, "\r"))
				start := int(math.Floor(x)) - len(runes)/2
				for j, r := range runes {
					c.set(start+j, row+i, r, styleLabel)
				}
			}
		}
	}
	return c
}

func styleFor(n scene.Node) tcell.Style {
	switch {
	case n.Depth == engine.DepthPanel:
		return styleOverlay
	case n.Depth >= engine.DepthPlayer:
		return stylePlayer
	case n.Depth <= engine.DepthBase:
		return styleBase
	case n.Depth <= engine.DepthTexture:
		return styleTexture
	}
	return styleOverlay
}

var tileGlyphs = []rune(".#~^\"*%=&")

// Glyph picks the rune used to draw an asset. Numbered tiles cycle through
// a fixed glyph set; tile 0 is transparent and returns 0.
func Glyph(asset string) rune {
	name := strings.TrimSuffix(asset, ".png")
	if i := strings.LastIndexAny(name, "/_-"); i >= 0 {
		name = name[i+1:]
	}

	if id, err := strconv.Atoi(name); err == nil {
		if id <= 0 {
			return 0
		}
		return tileGlyphs[(id-1)%len(tileGlyphs)]
	}

	switch {
	case strings.Contains(name, "player"):
		return '@'
	case strings.Contains(name, "control"):
		return '+'
	case name == "":
		return '?'
	}
	return []rune(name)[0]
}
