package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
)

// ErrUnknownCommand is returned by Execute for names outside AllCommands
var ErrUnknownCommand = errors.New("unknown command")

// ErrNotSetUp is returned by operations that need OnSetup to have run
var ErrNotSetUp = errors.New("world is not set up")

// Engine provides the main interface for world operations
type Engine interface {
	Handler

	// Commands
	Execute(cmd Command) (bool, error)
	MoveUp() bool
	MoveDown() bool
	MoveLeft() bool
	MoveRight() bool
	AddGold()
	SpendGold()

	// Map sets
	LoadMapSet(name string) error
	Tick() TickResult

	// State
	State() *WorldState
	StatusText() string
	Reset() error
	Snapshot() Snapshot
	Restore(s Snapshot) error
	History() []CommandRecord
	Config() *WorldConfig
}

// Resources are the external inputs of a world: map text and a scene
type Resources struct {
	Maps  fs.FS
	Scene Scene
}

// WorldEngine implements the Engine interface. It owns the player, the
// active map set and the overlay nodes, and must be driven from a single
// goroutine.
type WorldEngine struct {
	config      *WorldConfig
	scene       Scene
	layout      Layout
	maps        *MapSetManager
	dispatcher  *Dispatcher
	transitions *TransitionTable
	player      *Player

	statusLabel NodeID
	bannerLabel NodeID
	controls    NodeID
	ready       bool

	lastTickPos   GridPos
	tickedOnce    bool
	ticks         int
	history       []CommandRecord
	totalCommands int
	lastErr       error
}

// NewWorldEngine creates an engine for config. Nothing is added to the
// scene until OnSetup runs.
func NewWorldEngine(config *WorldConfig, res Resources) (*WorldEngine, error) {
	if err := ValidateWorldConfig(config); err != nil {
		return nil, err
	}
	if res.Maps == nil || res.Scene == nil {
		return nil, fmt.Errorf("world engine: maps and scene are required")
	}

	catalog, err := NewTileCatalog(config.TileAssetPattern)
	if err != nil {
		return nil, err
	}
	renderer := NewWorldRenderer(res.Scene, catalog, config.Layout, config.TileSize)

	return &WorldEngine{
		config:      config,
		scene:       res.Scene,
		layout:      config.Layout,
		maps:        NewMapSetManager(res.Maps, catalog, renderer),
		dispatcher:  NewDispatcher(config.HitZones),
		transitions: NewTransitionTable(config.Transitions, config.TransitionMode),
		player:      newPlayer(config.Player),
	}, nil
}

func newPlayer(pc PlayerConfig) *Player {
	return &Player{Row: pc.Row, Col: pc.Col, Stats: pc.Stats}
}

// OnSetup creates the player, the status and banner labels and the control
// panel, then loads the starting map set
func (e *WorldEngine) OnSetup() error {
	if e.ready {
		return nil
	}

	var created []NodeID
	fail := func(err error) error {
		for _, id := range created {
			e.scene.Remove(id)
		}
		return fmt.Errorf("setup: %w", err)
	}

	sprite, err := e.scene.NewSprite(e.config.PlayerAsset)
	if err != nil {
		return fail(err)
	}
	created = append(created, sprite)
	e.player.Sprite = sprite
	e.scene.SetDepth(sprite, DepthPlayer)

	status, err := e.scene.NewLabel(e.StatusText())
	if err != nil {
		return fail(err)
	}
	created = append(created, status)
	e.statusLabel = status
	e.scene.SetDepth(status, DepthOverlay)

	controls, err := e.scene.NewSprite(e.config.ControlsAsset)
	if err != nil {
		return fail(err)
	}
	created = append(created, controls)
	e.controls = controls
	e.scene.SetScale(controls, e.config.Screen.ControlsScale)
	e.scene.SetDepth(controls, DepthPanel)

	banner, err := e.scene.NewLabel(Banner)
	if err != nil {
		return fail(err)
	}
	created = append(created, banner)
	e.bannerLabel = banner
	e.scene.SetDepth(banner, DepthOverlay)

	e.ready = true
	e.placeOverlay()
	e.placePlayer()

	if err := e.LoadMapSet(e.config.StartMapSet); err != nil {
		e.ready = false
		return fail(err)
	}
	return nil
}

// OnFrameTick evaluates transition rules
func (e *WorldEngine) OnFrameTick() {
	res := e.Tick()
	if res.Err != nil {
		log.Printf("[TRANSITION] %s -> %s failed: %v", res.From, res.To, res.Err)
	}
}

// OnResize recentres the overlay nodes
func (e *WorldEngine) OnResize() {
	if !e.ready {
		return
	}
	e.placeOverlay()
}

// OnTouchBegin dispatches a touch and always refreshes the status line
func (e *WorldEngine) OnTouchBegin(p Point) {
	if cmd, ok := e.dispatcher.Dispatch(p); ok {
		if _, err := e.Execute(cmd); err != nil {
			log.Printf("[TOUCH] %s at (%.0f,%.0f): %v", cmd, p.X, p.Y, err)
		}
	}
	e.refreshStatus()
}

// OnTouchMove is ignored
func (e *WorldEngine) OnTouchMove(p Point) {}

// OnTouchEnd is ignored
func (e *WorldEngine) OnTouchEnd(p Point) {}

// Execute runs one command and reports whether it changed the world
func (e *WorldEngine) Execute(cmd Command) (bool, error) {
	if !cmd.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	from := GridPos{Row: e.player.Row, Col: e.player.Col}
	changed := false
	switch cmd {
	case CmdDpadUp:
		changed = e.MoveUp()
	case CmdDpadDown:
		changed = e.MoveDown()
	case CmdDpadLeft:
		changed = e.MoveLeft()
	case CmdDpadRight:
		changed = e.MoveRight()
	case CmdControlB:
		e.AddGold()
		changed = true
	case CmdControlC:
		e.SpendGold()
		changed = true
	case CmdControlA, CmdControlMenu:
		// reserved for the battle and menu systems
	}

	e.recordCommand(cmd, from, changed)
	e.refreshStatus()
	return changed, nil
}

// Dispatch resolves a point to a command without executing it
func (e *WorldEngine) Dispatch(p Point) (Command, bool) {
	return e.dispatcher.Dispatch(p)
}

// LoadMapSet switches map sets. On success the player is clamped into the
// new map and repositioned with its tile size.
func (e *WorldEngine) LoadMapSet(name string) error {
	if !e.ready {
		return ErrNotSetUp
	}
	if err := e.maps.LoadMapSet(name); err != nil {
		e.lastErr = err
		return err
	}
	e.lastErr = nil
	e.player.Clamp(e.maps.Rows(), e.maps.Cols())
	e.placePlayer()
	e.refreshStatus()
	return nil
}

// Reset puts the player back on its starting cell with starting stats and
// reloads the starting map set. History is kept.
func (e *WorldEngine) Reset() error {
	if !e.ready {
		return ErrNotSetUp
	}
	if err := e.LoadMapSet(e.config.StartMapSet); err != nil {
		return err
	}
	sprite := e.player.Sprite
	e.player = newPlayer(e.config.Player)
	e.player.Sprite = sprite
	e.player.Clamp(e.maps.Rows(), e.maps.Cols())
	e.tickedOnce = false
	e.placePlayer()
	e.refreshStatus()
	return nil
}

// Snapshot captures the state needed to resume this world later
func (e *WorldEngine) Snapshot() Snapshot {
	return Snapshot{
		MapSet:        e.maps.Name(),
		Player:        e.player.State(),
		History:       e.History(),
		TotalCommands: e.totalCommands,
		Ticks:         e.ticks,
	}
}

// Restore loads a snapshot's map set and player. The engine must be set up.
func (e *WorldEngine) Restore(s Snapshot) error {
	if !e.ready {
		return ErrNotSetUp
	}
	mapSet := s.MapSet
	if mapSet == "" {
		mapSet = e.config.StartMapSet
	}
	if err := e.LoadMapSet(mapSet); err != nil {
		return err
	}
	e.player.Row, e.player.Col, e.player.Stats = s.Player.Row, s.Player.Col, s.Player.Stats
	e.player.Clamp(e.maps.Rows(), e.maps.Cols())
	e.history = append([]CommandRecord(nil), s.History...)
	e.totalCommands = s.TotalCommands
	e.ticks = s.Ticks
	e.tickedOnce = false
	e.placePlayer()
	e.refreshStatus()
	return nil
}

// State returns a snapshot of the world for clients
func (e *WorldEngine) State() *WorldState {
	state := &WorldState{
		ConfigName:    e.config.Name,
		MapSet:        e.maps.Name(),
		Rows:          e.maps.Rows(),
		Cols:          e.maps.Cols(),
		TileSize:      e.maps.TileSize(),
		Player:        e.player.State(),
		Status:        e.StatusText(),
		InstanceCount: e.maps.InstanceCount(),
		Ticks:         e.ticks,
		TotalCommands: e.totalCommands,
	}
	if active := e.maps.Active(); active != nil {
		state.Base = active.Base.FileRows()
		state.Texture = active.Texture.FileRows()
	}
	if n := len(e.history); n > 0 {
		last := e.history[n-1]
		state.LastCommand = &last
	}
	if e.lastErr != nil {
		state.LastError = e.lastErr.Error()
	}
	return state
}

// StatusText formats the status line from the player's current state
func (e *WorldEngine) StatusText() string {
	return FormatStatus(e.player.State())
}

// History returns a copy of the command history
func (e *WorldEngine) History() []CommandRecord {
	return append([]CommandRecord(nil), e.history...)
}

// Config returns the engine's configuration
func (e *WorldEngine) Config() *WorldConfig { return e.config }

// Player returns the serializable player state
func (e *WorldEngine) Player() PlayerState { return e.player.State() }

// MapSets exposes the map set manager for hosts and tools
func (e *WorldEngine) MapSets() *MapSetManager { return e.maps }

// Ready reports whether OnSetup completed
func (e *WorldEngine) Ready() bool { return e.ready }

func (e *WorldEngine) refreshStatus() {
	if !e.ready {
		return
	}
	e.scene.SetText(e.statusLabel, e.StatusText())
}

func (e *WorldEngine) placeOverlay() {
	centre := e.scene.Size().W / 2
	e.scene.SetPosition(e.statusLabel, Point{X: centre, Y: e.config.Screen.StatusY})
	e.scene.SetPosition(e.bannerLabel, Point{X: centre, Y: e.config.Screen.BannerY})
	e.scene.SetPosition(e.controls, Point{X: centre, Y: e.config.Screen.ControlsY})
}
