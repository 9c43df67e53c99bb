package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Banner is the logo drawn under the status line
const Banner = "  __\n /__  _  |  _  ._ _ \n \\_| (_) | (/_ | | |"

// PlayerConfig sets the player's starting cell and stats
type PlayerConfig struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Stats Stats `json:"stats"`
}

// ScreenConfig positions the overlay nodes. X positions are always the
// horizontal centre of the scene.
type ScreenConfig struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	StatusY       float64 `json:"status_y"`
	BannerY       float64 `json:"banner_y"`
	ControlsY     float64 `json:"controls_y"`
	ControlsScale float64 `json:"controls_scale"`
}

// WorldConfig represents a world configuration loaded from JSON
type WorldConfig struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	StartMapSet      string           `json:"start_map_set"`
	MapSets          []string         `json:"map_sets"`
	TileAssetPattern string           `json:"tile_asset_pattern"`
	PlayerAsset      string           `json:"player_asset"`
	ControlsAsset    string           `json:"controls_asset"`
	Layout           Layout           `json:"layout"`
	TileSize         float64          `json:"tile_size,omitempty"`
	Player           PlayerConfig     `json:"player"`
	Screen           ScreenConfig     `json:"screen"`
	HitZones         []HitZone        `json:"hit_zones"`
	Transitions      []TransitionRule `json:"transitions"`
	TransitionMode   TransitionMode   `json:"transition_mode"`
}

// DefaultWorldConfig returns the stock two-map world
func DefaultWorldConfig() *WorldConfig {
	return &WorldConfig{
		Name:             "golem",
		Description:      "Two map sets joined by trigger cells at (1,1) and (5,5)",
		StartMapSet:      "world",
		MapSets:          []string{"world", "other"},
		TileAssetPattern: DefaultTilePattern,
		PlayerAsset:      "player.png",
		ControlsAsset:    "controls.png",
		Layout:           DefaultLayout,
		Player: PlayerConfig{
			Row: 5,
			Col: 5,
			Stats: Stats{
				Health:     100,
				Magic:      100,
				Experience: 1,
				Gold:       0,
			},
		},
		Screen:         defaultScreen(),
		HitZones:       append([]HitZone(nil), DefaultHitZones...),
		Transitions:    append([]TransitionRule(nil), DefaultTransitions...),
		TransitionMode: TransitionEdge,
	}
}

func defaultScreen() ScreenConfig {
	return ScreenConfig{
		Width:         375,
		Height:        700,
		StatusY:       630,
		BannerY:       660,
		ControlsY:     150,
		ControlsScale: 0.5,
	}
}

// ApplyDefaults fills optional fields left empty in a loaded config
func ApplyDefaults(config *WorldConfig) {
	if config.TileAssetPattern == "" {
		config.TileAssetPattern = DefaultTilePattern
	}
	if config.PlayerAsset == "" {
		config.PlayerAsset = "player.png"
	}
	if config.ControlsAsset == "" {
		config.ControlsAsset = "controls.png"
	}
	if config.Layout.AxisX == 0 && config.Layout.AxisY == 0 {
		origin := config.Layout.Origin
		config.Layout = DefaultLayout
		if origin != (Point{}) {
			config.Layout.Origin = origin
		}
	}
	if config.Screen == (ScreenConfig{}) {
		config.Screen = defaultScreen()
	}
	if config.Screen.ControlsScale == 0 {
		config.Screen.ControlsScale = 0.5
	}
	if config.HitZones == nil {
		config.HitZones = append([]HitZone(nil), DefaultHitZones...)
	}
	if config.TransitionMode == "" {
		config.TransitionMode = TransitionEdge
	}
	if len(config.MapSets) == 0 && config.StartMapSet != "" {
		config.MapSets = []string{config.StartMapSet}
	}
}

// ValidateWorldConfig validates a world configuration. It checks structure
// only; map resources are checked when they are loaded.
func ValidateWorldConfig(config *WorldConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Map sets
	if config.StartMapSet == "" {
		return fmt.Errorf("config validation: start_map_set is required")
	}
	known := make(map[string]bool, len(config.MapSets))
	for i, name := range config.MapSets {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("config validation: map_sets[%d] %q is not a valid map set name", i, name)
		}
		if known[name] {
			return fmt.Errorf("config validation: map set %q listed twice", name)
		}
		known[name] = true
	}
	if !known[config.StartMapSet] {
		return fmt.Errorf("config validation: start_map_set %q is not listed in map_sets", config.StartMapSet)
	}

	// Assets
	if _, err := NewTileCatalog(config.TileAssetPattern); err != nil {
		return fmt.Errorf("config validation: %v", err)
	}
	if config.PlayerAsset == "" {
		return fmt.Errorf("config validation: player_asset is required")
	}
	if config.ControlsAsset == "" {
		return fmt.Errorf("config validation: controls_asset is required")
	}

	// Geometry
	if !config.Layout.valid() {
		return fmt.Errorf("config validation: layout axes must be +1 or -1, got (%d, %d)",
			config.Layout.AxisX, config.Layout.AxisY)
	}
	if config.TileSize < 0 {
		return fmt.Errorf("config validation: tile_size must not be negative, got %v", config.TileSize)
	}
	if config.Screen.Width <= 0 || config.Screen.Height <= 0 {
		return fmt.Errorf("config validation: screen width and height must be positive")
	}
	if config.Screen.ControlsScale <= 0 {
		return fmt.Errorf("config validation: screen.controls_scale must be positive")
	}

	// Player
	if config.Player.Row < 0 || config.Player.Col < 0 {
		return fmt.Errorf("config validation: player start (%d, %d) must not be negative",
			config.Player.Row, config.Player.Col)
	}
	if err := validateStats(config.Player.Stats); err != nil {
		return err
	}

	// Hit zones
	if len(config.HitZones) == 0 {
		return fmt.Errorf("config validation: at least one hit zone is required")
	}
	for i, z := range config.HitZones {
		if !z.Command.Valid() {
			return fmt.Errorf("config validation: hit_zones[%d] has unknown command %q", i, z.Command)
		}
		if z.Left > z.Right || z.Bottom > z.Top {
			return fmt.Errorf("config validation: hit_zones[%d] (%s) has inverted corners", i, z.Command)
		}
	}

	// Transitions
	switch config.TransitionMode {
	case TransitionEdge, TransitionLevel:
	default:
		return fmt.Errorf("config validation: transition_mode must be %q or %q, got %q",
			TransitionEdge, TransitionLevel, config.TransitionMode)
	}
	for i, r := range config.Transitions {
		if !known[r.To] {
			return fmt.Errorf("config validation: transitions[%d] targets unknown map set %q", i, r.To)
		}
		if r.From != "" && !known[r.From] {
			return fmt.Errorf("config validation: transitions[%d] starts from unknown map set %q", i, r.From)
		}
		if r.Row < 0 || r.Col < 0 {
			return fmt.Errorf("config validation: transitions[%d] cell (%d, %d) must not be negative", i, r.Row, r.Col)
		}
	}

	return nil
}

func validateStats(s Stats) error {
	if s.Health < MinHealth || s.Health > MaxHealth {
		return fmt.Errorf("config validation: player health must be between %d and %d, got %d", MinHealth, MaxHealth, s.Health)
	}
	if s.Magic < MinMagic || s.Magic > MaxMagic {
		return fmt.Errorf("config validation: player magic must be between %d and %d, got %d", MinMagic, MaxMagic, s.Magic)
	}
	if s.Experience < MinExperience || s.Experience > MaxExperience {
		return fmt.Errorf("config validation: player experience must be between %d and %d, got %d",
			MinExperience, MaxExperience, s.Experience)
	}
	return nil
}

// ParseWorldConfig decodes, defaults and validates a JSON world config
func ParseWorldConfig(data []byte) (*WorldConfig, error) {
	var config WorldConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	ApplyDefaults(&config)
	if err := ValidateWorldConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadWorldConfig loads a world configuration from a JSON file
func LoadWorldConfig(filename string) (*WorldConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return ParseWorldConfig(data)
}
