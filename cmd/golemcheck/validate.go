package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/golem/game/engine"
)

// ValidationResult captures the outcome of checking one map set or config.
// Errors make the result invalid; Info lines are printed either way.
type ValidationResult struct {
	Name   string
	Valid  bool
	Errors []string
	Info   []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Info = append(r.Info, fmt.Sprintf(format, args...))
}

// discoverMapSets lists map sets that have a base layer in maps
func discoverMapSets(maps fs.FS) ([]string, error) {
	matches, err := fs.Glob(maps, "*"+engine.BaseSuffix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, engine.BaseSuffix))
	}
	sort.Strings(names)
	return names, nil
}

// validateMapSet parses both layers of a map set and checks every tile
// resolves through the catalog
func validateMapSet(maps fs.FS, catalog *engine.TileCatalog, name string) ValidationResult {
	result := ValidationResult{Name: name, Valid: true}

	ms, err := engine.ReadMapSet(maps, catalog, name)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	result.info("Grid: %d rows x %d cols", ms.Rows(), ms.Cols())
	result.info("Base tiles: %s", formatHistogram(ms.Base.Distinct()))
	result.info("Texture tiles: %s", formatHistogram(ms.Texture.Distinct()))
	return result
}

// formatHistogram renders tile counts as "id(count)" in ascending id order
func formatHistogram(counts map[engine.TileID]int) string {
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d(%d)", id, counts[engine.TileID(id)])
	}
	return strings.Join(parts, " ")
}

// validateConfigFile parses a config file and checks it against the map
// sets it names: every map set must load, the player start and trigger
// cells must fall inside their maps, and every map set should be reachable
// from the start through transitions.
func validateConfigFile(path string, maps fs.FS) ValidationResult {
	result := ValidationResult{Name: filepath.Base(path), Valid: true}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}
	cfg, err := engine.ParseWorldConfig(data)
	if err != nil {
		result.fail("Invalid config: %v", err)
		return result
	}

	checkConfigMaps(cfg, maps, &result)
	return result
}

func checkConfigMaps(cfg *engine.WorldConfig, maps fs.FS, result *ValidationResult) {
	catalog, err := engine.NewTileCatalog(cfg.TileAssetPattern)
	if err != nil {
		result.fail("%v", err)
		return
	}

	loaded := make(map[string]*engine.MapSet, len(cfg.MapSets))
	for _, name := range cfg.MapSets {
		ms, err := engine.ReadMapSet(maps, catalog, name)
		if err != nil {
			result.fail("Map set %s: %v", name, err)
			continue
		}
		loaded[name] = ms
	}

	if start, ok := loaded[cfg.StartMapSet]; ok {
		if cfg.Player.Row >= start.Rows() || cfg.Player.Col >= start.Cols() {
			result.fail("Player start (%d,%d) is outside %s (%dx%d)",
				cfg.Player.Row, cfg.Player.Col, cfg.StartMapSet, start.Rows(), start.Cols())
		}
	}

	for i, r := range cfg.Transitions {
		inside := false
		for _, name := range ruleSources(cfg, r) {
			if ms, ok := loaded[name]; ok && r.Row < ms.Rows() && r.Col < ms.Cols() {
				inside = true
			}
		}
		if !inside {
			result.fail("transitions[%d] cell (%d,%d) is outside every map set it applies to", i, r.Row, r.Col)
		}
	}

	for i, a := range cfg.HitZones {
		for _, b := range cfg.HitZones[i+1:] {
			if zonesOverlap(a, b) {
				result.info("Warning: hit zones %s and %s overlap; %s wins", a.Command, b.Command, a.Command)
			}
		}
	}

	if !result.Valid {
		return
	}

	reachable := reachableMapSets(cfg, loaded)
	var unreachable []string
	for _, name := range cfg.MapSets {
		if !reachable[name] {
			unreachable = append(unreachable, name)
		}
	}
	if len(unreachable) > 0 {
		result.info("Warning: unreachable map sets: %s", strings.Join(unreachable, ", "))
	} else {
		result.info("✓ Connectivity: all %d map sets reachable from %s", len(cfg.MapSets), cfg.StartMapSet)
	}

	result.info("✓ Name: %s", cfg.Name)
	result.info("✓ Map sets: %s (start %s)", strings.Join(cfg.MapSets, ", "), cfg.StartMapSet)
	result.info("✓ Transitions: %d (%s mode)", len(cfg.Transitions), cfg.TransitionMode)
	result.info("✓ Hit zones: %d", len(cfg.HitZones))
}

// ruleSources lists the map sets a rule can fire from
func ruleSources(cfg *engine.WorldConfig, r engine.TransitionRule) []string {
	if r.From != "" {
		return []string{r.From}
	}
	return cfg.MapSets
}

func zonesOverlap(a, b engine.HitZone) bool {
	return a.Left <= b.Right && b.Left <= a.Right && a.Bottom <= b.Top && b.Bottom <= a.Top
}

// reachableMapSets walks transitions outward from the start map set. A rule
// only counts from map sets whose bounds contain its cell, and in edge mode
// a rule targeting its own map set never fires.
func reachableMapSets(cfg *engine.WorldConfig, loaded map[string]*engine.MapSet) map[string]bool {
	visited := map[string]bool{cfg.StartMapSet: true}
	queue := []string{cfg.StartMapSet}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		ms, ok := loaded[current]
		if !ok {
			continue
		}
		for _, r := range cfg.Transitions {
			if r.From != "" && r.From != current {
				continue
			}
			if r.Row >= ms.Rows() || r.Col >= ms.Cols() {
				continue
			}
			if r.To == current && cfg.TransitionMode == engine.TransitionEdge {
				continue
			}
			if !visited[r.To] {
				visited[r.To] = true
				queue = append(queue, r.To)
			}
		}
	}
	return visited
}

// printResult writes a result in the report format and reports whether it
// was valid
func printResult(w io.Writer, result ValidationResult) bool {
	fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.Name)
	if result.Valid {
		fmt.Fprintln(w, "✅ VALID")
	} else {
		fmt.Fprintln(w, "❌ INVALID")
		for _, e := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+e)
		}
	}
	for _, line := range result.Info {
		fmt.Fprintln(w, "  "+line)
	}
	return result.Valid
}
