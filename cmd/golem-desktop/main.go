// Command golem-desktop plays a Golem world in a desktop window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/wricardo/golem/game/config"
	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
	"github.com/wricardo/golem/game/service"
	"github.com/wricardo/golem/host/desktop"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	configDir := flag.String("config-dir", envOr("CONFIG_DIR", "configs"), "Directory containing world configurations")
	mapsDir := flag.String("maps-dir", envOr("MAPS_DIR", "maps"), "Directory containing map set files")
	assetsDir := flag.String("assets-dir", envOr("ASSETS_DIR", "assets"), "Directory containing tile and sprite images")
	configName := flag.String("config", "", "World configuration to play (default config if empty)")
	flag.Parse()

	configs, err := config.NewManager(*configDir)
	if err != nil {
		log.Fatalf("Failed to load configs: %v", err)
	}
	cfg, err := configs.LoadOrDefault(*configName)
	if err != nil {
		log.Fatalf("Failed to load config %q: %v", *configName, err)
	}

	if info, err := os.Stat(*assetsDir); err != nil || !info.IsDir() {
		log.Printf("Warning: assets directory %s not found, sprites will not be drawn", *assetsDir)
	}
	assets := os.DirFS(*assetsDir)
	worlds := service.NewWorlds(os.DirFS(*mapsDir), scene.DirSizer(*assetsDir, engine.Size{W: 32, H: 32}))
	world, graph, err := worlds.NewWorld(cfg)
	if err != nil {
		log.Fatalf("Failed to set up world: %v", err)
	}

	game, err := desktop.New(world, graph, assets)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	game.SetHitZones(cfg.HitZones)
	if err := game.Run(fmt.Sprintf("Golem - %s", cfg.Name)); err != nil {
		log.Fatal(err)
	}
}
