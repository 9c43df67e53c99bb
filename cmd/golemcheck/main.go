// Command golemcheck validates and analyzes Golem map sets and world
// configurations before they are served.
//
// Subcommands:
//   - maps: parse map set layers and check every tile against the catalog
//   - config: check configs against the map sets they name
//   - analyze: print map sizes, trigger distances and map set reachability
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/golem/game/config"
	"github.com/wricardo/golem/game/engine"
)

// ErrChecksFailed is returned when at least one checked item is invalid
var ErrChecksFailed = errors.New("some checks failed")

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "golemcheck",
		Usage:  "Validate and analyze Golem maps and world configurations",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "maps-dir",
				Value:   "maps",
				Usage:   "directory containing map set files",
				Sources: cli.EnvVars("MAPS_DIR"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing world configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "maps",
				Usage:     "validate map sets (all map sets in the maps dir when none are named)",
				ArgsUsage: "[name...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "pattern",
						Value: engine.DefaultTilePattern,
						Usage: "tile asset pattern used to resolve tile IDs",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runMaps(out, cmd.String("maps-dir"), cmd.String("pattern"), cmd.Args().Slice())
				},
			},
			{
				Name:      "config",
				Usage:     "validate world configurations against their map sets",
				ArgsUsage: "[config_id...]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runConfig(out, cmd.String("config-dir"), cmd.String("maps-dir"), cmd.Args().Slice())
				},
			},
			{
				Name:      "analyze",
				Usage:     "summarize world configurations",
				ArgsUsage: "[config_id...]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runAnalyze(out, cmd.String("config-dir"), cmd.String("maps-dir"), cmd.Args().Slice())
				},
			},
		},
	}
}

func runMaps(w io.Writer, mapsDir, pattern string, names []string) error {
	maps := os.DirFS(mapsDir)
	catalog, err := engine.NewTileCatalog(pattern)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		if names, err = discoverMapSets(maps); err != nil {
			return fmt.Errorf("finding map sets: %w", err)
		}
		if len(names) == 0 {
			return fmt.Errorf("no map sets found in %s", mapsDir)
		}
	}

	allValid := true
	for _, name := range names {
		if !printResult(w, validateMapSet(maps, catalog, name)) {
			allValid = false
		}
	}
	return summarize(w, allValid, "map sets")
}

func configFiles(configDir string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return filepath.Glob(filepath.Join(configDir, "*.json"))
	}
	files := make([]string, len(ids))
	for i, id := range ids {
		files[i] = filepath.Join(configDir, strings.TrimSuffix(id, ".json")+".json")
	}
	return files, nil
}

func runConfig(w io.Writer, configDir, mapsDir string, ids []string) error {
	files, err := configFiles(configDir, ids)
	if err != nil {
		return fmt.Errorf("finding config files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no configurations found in %s", configDir)
	}

	maps := os.DirFS(mapsDir)
	allValid := true
	for _, file := range files {
		if !printResult(w, validateConfigFile(file, maps)) {
			allValid = false
		}
	}
	return summarize(w, allValid, "configurations")
}

func runAnalyze(w io.Writer, configDir, mapsDir string, ids []string) error {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		infos, err := manager.ListConfigs()
		if err != nil {
			return err
		}
		for _, info := range infos {
			ids = append(ids, info.ConfigID)
		}
	}

	maps := os.DirFS(mapsDir)
	for _, id := range ids {
		cfg, err := manager.LoadConfig(id)
		if err != nil {
			fmt.Fprintf(w, "\n=== Analyzing %s ===\nError: %v\n", id, err)
			continue
		}
		analyzeConfig(w, id, cfg, maps)
	}
	return nil
}

func summarize(w io.Writer, allValid bool, what string) error {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintf(w, "✅ All %s are valid!\n", what)
		return nil
	}
	fmt.Fprintf(w, "❌ Some %s have errors\n", what)
	return ErrChecksFailed
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
