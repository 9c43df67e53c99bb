package session

import (
	"os"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
	"github.com/wricardo/golem/game/service"
)

func testWorlds() service.WorldFactory {
	return service.NewWorlds(os.DirFS("../../maps"), scene.FixedSizer{Size: engine.Size{W: 32, H: 32}})
}

func createTestConfig() *engine.WorldConfig {
	config := engine.DefaultWorldConfig()
	config.Name = "Test Config"
	config.Description = "Test configuration"
	return config
}

func gridPos(s *service.Session) engine.GridPos {
	p := s.Engine.Player()
	return engine.GridPos{Row: p.Row, Col: p.Col}
}
