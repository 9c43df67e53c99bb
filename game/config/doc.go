// Package config provides configuration management for Golem worlds.
//
// The config package handles:
//   - Loading world configurations from JSON files
//   - Applying defaults and validating configurations
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// World configurations are stored as JSON files in the configs directory.
// The file name without .json is the config ID used to create sessions.
// Each configuration defines:
//   - The starting map set and the map sets it may switch to
//   - The tile asset pattern, player and control panel assets
//   - The grid layout origin and axes, and an optional fixed tile size
//   - The player's starting cell and stats
//   - Control panel hit zones and map set transition rules
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	worldConfig, err := manager.LoadConfig("golem")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default configuration is golem.json when present, otherwise the first
// loadable file, otherwise the built-in world.
package config
