package engine

// TileID identifies one tile image in the catalog
type TileID int

const (
	// Tile catalog bounds
	MinTileID TileID = 0
	MaxTileID TileID = 999
	TileCount        = int(MaxTileID) + 1

	// Layer depths. Blend, items and sky are reserved for future layers.
	DepthBase    = 0.1
	DepthTexture = 0.2
	DepthBlend   = 0.3
	DepthItems   = 0.4
	DepthSky     = 0.5
	DepthPlayer  = 0.9
	DepthPanel   = 0.0
	DepthOverlay = 1.0

	// Gameplay constants
	GoldStep          = 10
	MaxHistoryEntries = 1000
	MaxBulkCommands   = 50
	MaxTicksPerCall   = 600
)

// Point is a position in scene space; y grows upward
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in scene units
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// GridPos addresses one cell in engine row order (row 0 is the bottom row)
type GridPos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NodeID is an opaque handle to a scene node owned by the host
type NodeID int

// Command names a player action produced by the input dispatcher
type Command string

const (
	CmdDpadUp      Command = "dpad_up"
	CmdDpadDown    Command = "dpad_down"
	CmdDpadLeft    Command = "dpad_left"
	CmdDpadRight   Command = "dpad_right"
	CmdControlA    Command = "control_a"
	CmdControlB    Command = "control_b"
	CmdControlC    Command = "control_c"
	CmdControlMenu Command = "control_menu"
)

// AllCommands lists every command in dispatch declaration order
var AllCommands = []Command{
	CmdDpadUp, CmdDpadLeft, CmdDpadDown, CmdDpadRight,
	CmdControlA, CmdControlB, CmdControlC, CmdControlMenu,
}

// Valid reports whether c is a known command
func (c Command) Valid() bool {
	for _, known := range AllCommands {
		if c == known {
			return true
		}
	}
	return false
}

// Stat ranges. Nothing in the world engine enforces them during play;
// they bound configured starting values and leave room for a battle system.
const (
	MinHealth     = 0
	MaxHealth     = 100
	MinMagic      = 0
	MaxMagic      = 100
	MinExperience = 1
	MaxExperience = 99
)

// Stats holds the player's vitals
type Stats struct {
	Health     int `json:"health"`     // 0..100
	Magic      int `json:"magic"`      // 0..100
	Experience int `json:"experience"` // level, 1..99
	Gold       int `json:"gold"`       // unbounded, may go negative
}

// PlayerState is the serializable part of the player
type PlayerState struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Stats Stats `json:"stats"`
}

// HitZone binds a command to an inclusive rectangle in scene space
type HitZone struct {
	Command Command `json:"command"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Right   float64 `json:"right"`
	Bottom  float64 `json:"bottom"`
}

// Contains reports whether p lies inside the zone, edges included
func (z HitZone) Contains(p Point) bool {
	return p.X >= z.Left && p.X <= z.Right && p.Y <= z.Top && p.Y >= z.Bottom
}

// TransitionRule switches to map set To when the player stands on (Row, Col)
// of map set From. An empty From matches any active map set.
type TransitionRule struct {
	From string `json:"from,omitempty"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	To   string `json:"to"`
}

// TransitionMode selects how transition rules are evaluated on frame ticks
type TransitionMode string

const (
	// TransitionEdge evaluates rules only when the player's cell changed
	// since the previous tick, and ignores rules targeting the active map set.
	TransitionEdge TransitionMode = "edge"
	// TransitionLevel re-evaluates every tick; standing on a trigger reloads
	// the target map set each frame.
	TransitionLevel TransitionMode = "level"
)

// CommandRecord represents a single executed command in the history
type CommandRecord struct {
	Command   Command `json:"command"`
	From      GridPos `json:"from"`
	To        GridPos `json:"to"`
	Gold      int     `json:"gold"`
	MapSet    string  `json:"map_set"`
	Timestamp int64   `json:"timestamp"`
	Changed   bool    `json:"changed"`
	Number    int     `json:"number"`
}

// TickResult reports what a frame tick did
type TickResult struct {
	Switched bool   `json:"switched"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Err      error  `json:"-"`
}

// WorldState is a read-only snapshot of the world for clients
type WorldState struct {
	ConfigName    string         `json:"config_name"`
	MapSet        string         `json:"map_set"`
	Rows          int            `json:"rows"`
	Cols          int            `json:"cols"`
	TileSize      float64        `json:"tile_size"`
	Player        PlayerState    `json:"player"`
	Status        string         `json:"status"`
	InstanceCount int            `json:"instance_count"`
	Base          [][]TileID     `json:"base"`
	Texture       [][]TileID     `json:"texture"`
	Ticks         int            `json:"ticks"`
	TotalCommands int            `json:"total_commands"`
	LastCommand   *CommandRecord `json:"last_command,omitempty"`
	LastError     string         `json:"last_error,omitempty"`
}

// Snapshot is the persisted form of a running world
type Snapshot struct {
	MapSet        string          `json:"map_set"`
	Player        PlayerState     `json:"player"`
	History       []CommandRecord `json:"history"`
	TotalCommands int             `json:"total_commands"`
	Ticks         int             `json:"ticks"`
}
