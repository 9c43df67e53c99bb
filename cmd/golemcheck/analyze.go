package main

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/wricardo/golem/game/engine"
)

// analyzeConfig prints quick, human-readable facts about a world: map set
// sizes, trigger cells with their walking distance from the start, and the
// map set graph the transitions form
func analyzeConfig(w io.Writer, id string, cfg *engine.WorldConfig, maps fs.FS) {
	fmt.Fprintf(w, "\n=== Analyzing %s ===\n", id)
	fmt.Fprintf(w, "Name: %s\n", cfg.Name)
	fmt.Fprintf(w, "Start: %s (%d,%d)\n", cfg.StartMapSet, cfg.Player.Row, cfg.Player.Col)
	fmt.Fprintf(w, "Transition mode: %s\n", cfg.TransitionMode)

	catalog, err := engine.NewTileCatalog(cfg.TileAssetPattern)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	loaded := make(map[string]*engine.MapSet)
	fmt.Fprintln(w, "Map sets:")
	for _, name := range cfg.MapSets {
		ms, err := engine.ReadMapSet(maps, catalog, name)
		if err != nil {
			fmt.Fprintf(w, "  %s: error: %v\n", name, err)
			continue
		}
		loaded[name] = ms
		fmt.Fprintf(w, "  %s: %dx%d, %d distinct base tiles\n", name, ms.Rows(), ms.Cols(), len(ms.Base.Distinct()))
	}

	// Movement is only bounded by the map edge, so the walking distance
	// between two cells is their Manhattan distance
	start := engine.GridPos{Row: cfg.Player.Row, Col: cfg.Player.Col}
	fmt.Fprintln(w, "Triggers:")
	for _, r := range cfg.Transitions {
		from := r.From
		if from == "" {
			from = "*"
		}
		line := fmt.Sprintf("  %s (%d,%d) -> %s", from, r.Row, r.Col, r.To)
		if r.From == "" || r.From == cfg.StartMapSet {
			d := engine.ManhattanDistance(start, engine.GridPos{Row: r.Row, Col: r.Col})
			line += fmt.Sprintf(", %d steps from start", d)
		}
		fmt.Fprintln(w, line)
	}

	table := engine.NewTransitionTable(cfg.Transitions, cfg.TransitionMode)
	if rule, d, ok := engine.NearestTransition(table, cfg.StartMapSet, start); ok {
		fmt.Fprintf(w, "Nearest trigger from start: (%d,%d) -> %s, %d steps\n", rule.Row, rule.Col, rule.To, d)
	} else {
		fmt.Fprintln(w, "Nearest trigger from start: none")
	}

	reachable := reachableMapSets(cfg, loaded)
	names := make([]string, 0, len(reachable))
	for name := range reachable {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "Reachable map sets: %s\n", strings.Join(names, ", "))
}
