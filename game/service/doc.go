// Package service provides the business logic layer for Golem worlds.
//
// The service package implements:
//   - Multi-session world management
//   - Touch and command input, including bulk command sequences
//   - Frame ticks and map set transitions
//   - Paginated command history
//   - Configuration listing, loading and saving
//
// Core Interfaces:
//
// GameService is the main service interface used by the REST API, the
// websocket hub and the MCP tools. SessionManager handles session creation,
// retrieval and persistence. ConfigManager loads world configurations.
// WorldFactory builds a set-up engine and scene graph for a config.
//
// Every touch or command is followed by one frame tick, so clients without a
// drawing host still see map set transitions take effect.
//
// Usage:
//
//	worlds := service.NewWorlds(os.DirFS("maps"), scene.NewImageSizer(os.DirFS("assets")))
//	sessionMgr := session.NewManager(worlds)
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "golem")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := gameService.Command(ctx, info.ID, "dpad_up", false)
package service
