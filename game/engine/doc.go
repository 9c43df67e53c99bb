// Package engine provides the core of the Golem tile-grid world.
//
// The engine package implements:
//   - Map text parsing into immutable tile grids
//   - Grid to scene coordinate mapping
//   - Layered tile rendering and atomic map set switching
//   - Player movement, gold and the status line
//   - Positional map set transitions evaluated on frame ticks
//   - Touch dispatch through rectangular hit zones
//
// Core Types:
//
// WorldEngine is the context object that owns the player, the active map
// set and the overlay nodes. It implements Handler, the callbacks a host
// drives, and talks to the host through the Scene interface. WorldConfig
// describes a world and is loaded from JSON.
//
// Usage:
//
//	config, err := engine.LoadWorldConfig("configs/golem.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	world, err := engine.NewWorldEngine(config, engine.Resources{
//		Maps:  os.DirFS("maps"),
//		Scene: graph,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := world.OnSetup(); err != nil {
//		log.Fatal(err)
//	}
//
//	world.OnTouchBegin(engine.Point{X: 80, Y: 200}) // dpad up
//	world.OnFrameTick()
//
// Coordinates:
//
// Map files list rows top to bottom. Engine row 0 is the last line of the
// file, and scene y grows upward, so the map appears on screen as written.
package engine
