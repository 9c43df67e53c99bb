// Command golem-term plays a Golem world in the terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/wricardo/golem/game/config"
	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
	"github.com/wricardo/golem/game/service"
	"github.com/wricardo/golem/host/terminal"
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
	assetsDir := flag.String("assets-dir", envOr("ASSETS_DIR", "assets"), "Directory containing tile images (optional)")
	configName := flag.String("config", "", "World configuration to play (default config if empty)")
	cellWidth := flag.Float64("cell-width", 8, "Scene units per terminal column")
	cellHeight := flag.Float64("cell-height", 16, "Scene units per terminal row")
	logFile := flag.String("log", "", "Write logs to this file instead of discarding them")
	flag.Parse()

	configs, err := config.NewManager(*configDir)
	if err != nil {
		log.Fatalf("Failed to load configs: %v", err)
	}
	cfg, err := configs.LoadOrDefault(*configName)
	if err != nil {
		log.Fatalf("Failed to load config %q: %v", *configName, err)
	}

	// tile images only decide sprite sizes here
	sizer := scene.DirSizer(*assetsDir, engine.Size{W: 32, H: 32})

	world, graph, err := service.NewWorlds(os.DirFS(*mapsDir), sizer).NewWorld(cfg)
	if err != nil {
		log.Fatalf("Failed to set up world: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	// the screen owns stdout while running
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			screen.Fini()
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := terminal.New(world, graph, screen, terminal.Options{
		CellWidth:  *cellWidth,
		CellHeight: *cellHeight,
	})
	if err := host.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("Terminal host stopped: %v", err)
	}
}
