package service

import (
	"fmt"
	"io/fs"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
)

// WorldFactory builds a set-up engine and its scene graph for a config
type WorldFactory interface {
	NewWorld(config *engine.WorldConfig) (*engine.WorldEngine, *scene.Graph, error)
}

// Worlds is the WorldFactory used by servers: every session gets its own
// graph sized from the config's screen and an engine reading maps from Maps.
type Worlds struct {
	Maps  fs.FS
	Sizer scene.Sizer
}

// NewWorlds creates a factory. A nil sizer gives every asset 32x32.
func NewWorlds(maps fs.FS, sizer scene.Sizer) *Worlds {
	return &Worlds{Maps: maps, Sizer: sizer}
}

func (w *Worlds) NewWorld(config *engine.WorldConfig) (*engine.WorldEngine, *scene.Graph, error) {
	if config == nil {
		return nil, nil, fmt.Errorf("new world: config is required")
	}
	graph := scene.NewGraph(engine.Size{W: config.Screen.Width, H: config.Screen.Height}, w.Sizer)
	eng, err := engine.NewWorldEngine(config, engine.Resources{Maps: w.Maps, Scene: graph})
	if err != nil {
		return nil, nil, err
	}
	if err := eng.OnSetup(); err != nil {
		return nil, nil, err
	}
	return eng, graph, nil
}

// ParseCommand normalises user input into an engine command. Besides the
// canonical names it accepts short forms such as "up", "b" and "menu".
func ParseCommand(name string) (engine.Command, error) {
	cmd := engine.Command(normalize(name))
	if cmd.Valid() {
		return cmd, nil
	}
	if alias, ok := commandAliases[string(cmd)]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("%w: %q", engine.ErrUnknownCommand, name)
}

var commandAliases = map[string]engine.Command{
	"up":    engine.CmdDpadUp,
	"down":  engine.CmdDpadDown,
	"left":  engine.CmdDpadLeft,
	"right": engine.CmdDpadRight,
	"u":     engine.CmdDpadUp,
	"d":     engine.CmdDpadDown,
	"l":     engine.CmdDpadLeft,
	"r":     engine.CmdDpadRight,
	"a":     engine.CmdControlA,
	"b":     engine.CmdControlB,
	"c":     engine.CmdControlC,
	"menu":  engine.CmdControlMenu,
}
