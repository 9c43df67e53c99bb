package desktop

import (
	"bytes"
	"fmt"
	"image/color"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
)

const fontSize = 14

var (
	background = color.RGBA{20, 24, 32, 255}
	zoneColor  = color.RGBA{255, 64, 160, 255}
)

// zoneToggleKey shows or hides the hit zone outlines
const zoneToggleKey = ebiten.KeyH

// World is the part of the engine a host drives
type World interface {
	engine.Handler
	Execute(cmd engine.Command) (bool, error)
}

var keyCommands = map[ebiten.Key]engine.Command{
	ebiten.KeyArrowUp:    engine.CmdDpadUp,
	ebiten.KeyArrowDown:  engine.CmdDpadDown,
	ebiten.KeyArrowLeft:  engine.CmdDpadLeft,
	ebiten.KeyArrowRight: engine.CmdDpadRight,
	ebiten.KeyZ:          engine.CmdControlA,
	ebiten.KeyX:          engine.CmdControlB,
	ebiten.KeyC:          engine.CmdControlC,
	ebiten.KeyEnter:      engine.CmdControlMenu,
}

// Game hosts a world in an ebiten window. It implements ebiten.Game and
// draws the scene graph the world writes to.
type Game struct {
	world  World
	graph  *scene.Graph
	assets fs.FS

	images  map[string]*ebiten.Image
	missing map[string]bool
	face    *text.GoTextFace

	zones     []engine.HitZone
	showZones bool

	width, height int
	mouseDown     bool
	lastMouse     engine.Point
	touches       []ebiten.TouchID
}

// New creates a desktop host for a world that has already been set up.
// graph must be the scene the world draws into.
func New(world World, graph *scene.Graph, assets fs.FS) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	size := graph.Size()
	g := &Game{
		world:   world,
		graph:   graph,
		assets:  assets,
		images:  make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
		face:    &text.GoTextFace{Source: src, Size: fontSize},
		width:   int(size.W),
		height:  int(size.H),
	}
	return g, nil
}

// SetHitZones gives the outlines drawn while the zone overlay is on
func (g *Game) SetHitZones(zones []engine.HitZone) {
	g.zones = append([]engine.HitZone(nil), zones...)
}

// Run opens the window and blocks until it is closed
func (g *Game) Run(title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

func (g *Game) viewport() scene.Viewport {
	return scene.NewViewport(g.graph.Size(), float64(g.width), float64(g.height))
}

// Update forwards input and then runs one frame tick
func (g *Game) Update() error {
	g.handleKeys()
	g.handleMouse()
	g.handleTouches()
	g.world.OnFrameTick()
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(zoneToggleKey) {
		g.showZones = !g.showZones
	}
	for key, cmd := range keyCommands {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if _, err := g.world.Execute(cmd); err != nil {
			log.Printf("[KEY] %s: %v", cmd, err)
		}
	}
}

func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	p := g.viewport().ToScene(float64(x), float64(y))

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouseDown = true
		g.lastMouse = p
		g.world.OnTouchBegin(p)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.mouseDown = false
		g.world.OnTouchEnd(p)
	case g.mouseDown && p != g.lastMouse:
		g.lastMouse = p
		g.world.OnTouchMove(p)
	}
}

func (g *Game) handleTouches() {
	vp := g.viewport()

	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		g.world.OnTouchBegin(vp.ToScene(float64(x), float64(y)))
	}

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		if inpututil.TouchPressDuration(id) <= 1 {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if x != px || y != py {
			g.world.OnTouchMove(vp.ToScene(float64(x), float64(y)))
		}
	}

	g.touches = inpututil.AppendJustReleasedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		g.world.OnTouchEnd(vp.ToScene(float64(x), float64(y)))
	}
}

// Draw renders a snapshot of the scene graph
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	vp := g.viewport()

	for _, n := range g.graph.Snapshot() {
		x, y := vp.ToRaster(n.Position)
		switch n.Kind {
		case scene.KindSprite:
			g.drawSprite(screen, n, x, y, vp)
		case scene.KindLabel:
			op := &text.DrawOptions{}
			op.GeoM.Translate(x, y)
			op.PrimaryAlign = text.AlignCenter
			op.SecondaryAlign = text.AlignCenter
			text.Draw(screen, n.Text, g.face, op)
		}
	}

	if g.showZones {
		g.drawZones(screen, vp)
	}
}

// drawZones outlines every hit zone with its command name
func (g *Game) drawZones(screen *ebiten.Image, vp scene.Viewport) {
	for _, z := range g.zones {
		x, y, w, h := vp.RectToRaster(z.Left, z.Top, z.Right, z.Bottom)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, zoneColor, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+2, y+2)
		op.ColorScale.ScaleWithColor(zoneColor)
		text.Draw(screen, string(z.Command), g.face, op)
	}
}

// drawSprite draws an image centred on its node position
func (g *Game) drawSprite(screen *ebiten.Image, n scene.Node, x, y float64, vp scene.Viewport) {
	img := g.image(n.Asset)
	if img == nil {
		return
	}
	b := img.Bounds()
	scale := n.Scale
	if scale == 0 {
		scale = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(scale*vp.ScaleX, scale*vp.ScaleY)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

func (g *Game) image(asset string) *ebiten.Image {
	if img, ok := g.images[asset]; ok {
		return img
	}
	if g.missing[asset] {
		return nil
	}

	img, _, err := ebitenutil.NewImageFromFileSystem(g.assets, asset)
	if err != nil {
		log.Printf("Warning: failed to load %s: %v", asset, err)
		g.missing[asset] = true
		return nil
	}
	g.images[asset] = img
	return img
}

// Layout tracks the window size. A new size resizes the scene and lets the
// world recentre its overlay.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.graph.Resize(engine.Size{W: float64(outsideWidth), H: float64(outsideHeight)})
		g.world.OnResize()
	}
	return outsideWidth, outsideHeight
}
