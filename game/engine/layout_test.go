package engine

import (
	"errors"
	"fmt"
	"testing"
)

func TestLayout_Locate(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		size     float64
		want     Point
	}{
		{"origin", 0, 0, 10, Point{X: 25, Y: 300}},
		{"diagonal", 2, 2, 10, Point{X: 45, Y: 320}},
		{"column only", 0, 3, 32, Point{X: 121, Y: 300}},
		{"row only", 4, 0, 32, Point{X: 25, Y: 428}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultLayout.Locate(tt.row, tt.col, tt.size)
			if got != tt.want {
				t.Errorf("Locate(%d,%d,%v) = %v, want %v", tt.row, tt.col, tt.size, got, tt.want)
			}
		})
	}
}

func TestLayout_LocateMonotonic(t *testing.T) {
	const size = 16
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			p := DefaultLayout.Locate(row, col, size)
			up := DefaultLayout.Locate(row+1, col, size)
			right := DefaultLayout.Locate(row, col+1, size)
			if up.Y-p.Y != size || up.X != p.X {
				t.Errorf("Row step at (%d,%d): %v -> %v", row, col, p, up)
			}
			if right.X-p.X != size || right.Y != p.Y {
				t.Errorf("Col step at (%d,%d): %v -> %v", row, col, p, right)
			}
		}
	}
}

func TestLayout_InvertedAxes(t *testing.T) {
	l := Layout{Origin: Point{X: 300, Y: 600}, AxisX: -1, AxisY: -1}
	got := l.Locate(1, 2, 10)
	if got != (Point{X: 280, Y: 590}) {
		t.Errorf("Expected (280,590), got %v", got)
	}
}

func TestTileCatalog(t *testing.T) {
	c, err := NewTileCatalog("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Len() != 1000 {
		t.Errorf("Expected 1000 assets, got %d", c.Len())
	}

	for _, id := range []TileID{0, 1, 42, 999} {
		asset, err := c.Resolve(id)
		if err != nil {
			t.Errorf("Resolve(%d): %v", id, err)
		}
		if want := fmt.Sprintf("%d.png", id); asset != want {
			t.Errorf("Resolve(%d) = %q, want %q", id, asset, want)
		}
	}

	for _, id := range []TileID{-1, 1000} {
		if _, err := c.Resolve(id); !errors.Is(err, ErrUnknownTile) {
			t.Errorf("Resolve(%d): expected ErrUnknownTile, got %v", id, err)
		}
	}
}

func TestTileCatalog_Pattern(t *testing.T) {
	c, err := NewTileCatalog("tiles/t%d.png")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	asset, _ := c.Resolve(7)
	if asset != "tiles/t7.png" {
		t.Errorf("Expected tiles/t7.png, got %q", asset)
	}

	for _, bad := range []string{"tile.png", "%d_%d.png", "%s.png", "%d%%.png"} {
		if _, err := NewTileCatalog(bad); err == nil {
			t.Errorf("Expected error for pattern %q", bad)
		}
	}
}

func TestDispatcher_DefaultZones(t *testing.T) {
	d := NewDispatcher(DefaultHitZones)

	tests := []struct {
		name string
		p    Point
		want Command
		ok   bool
	}{
		{"up centre", Point{X: 80, Y: 210}, CmdDpadUp, true},
		{"up corner inclusive", Point{X: 68, Y: 236}, CmdDpadUp, true},
		{"up far corner inclusive", Point{X: 92, Y: 192}, CmdDpadUp, true},
		{"left", Point{X: 30, Y: 170}, CmdDpadLeft, true},
		{"down", Point{X: 90, Y: 130}, CmdDpadDown, true},
		{"right", Point{X: 120, Y: 160}, CmdDpadRight, true},
		{"a", Point{X: 310, Y: 220}, CmdControlA, true},
		{"b", Point{X: 280, Y: 150}, CmdControlB, true},
		{"c", Point{X: 240, Y: 70}, CmdControlC, true},
		{"menu", Point{X: 180, Y: 240}, CmdControlMenu, true},
		{"miss", Point{X: 200, Y: 400}, "", false},
		{"just outside up", Point{X: 67.5, Y: 200}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Dispatch(tt.p)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Dispatch(%v) = (%q, %v), want (%q, %v)", tt.p, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDispatcher_FirstZoneWins(t *testing.T) {
	d := NewDispatcher([]HitZone{
		{Command: CmdControlB, Left: 0, Top: 100, Right: 100, Bottom: 0},
		{Command: CmdControlC, Left: 50, Top: 150, Right: 150, Bottom: 50},
	})

	got, ok := d.Dispatch(Point{X: 75, Y: 75})
	if !ok || got != CmdControlB {
		t.Errorf("Expected first declared zone, got %q", got)
	}
	got, _ = d.Dispatch(Point{X: 125, Y: 125})
	if got != CmdControlC {
		t.Errorf("Expected second zone outside overlap, got %q", got)
	}
}

func TestTransitionTable_Match(t *testing.T) {
	table := NewTransitionTable([]TransitionRule{
		{From: "world", Row: 1, Col: 1, To: "other"},
		{Row: 1, Col: 1, To: "cave"},
		{From: "other", Row: 2, Col: 3, To: "world"},
	}, "")

	if table.Mode() != TransitionEdge {
		t.Errorf("Expected edge mode by default, got %q", table.Mode())
	}

	tests := []struct {
		mapSet   string
		row, col int
		want     string
		ok       bool
	}{
		{"world", 1, 1, "other", true},
		{"other", 1, 1, "cave", true},
		{"other", 2, 3, "world", true},
		{"world", 2, 3, "", false},
		{"world", 0, 0, "", false},
	}
	for _, tt := range tests {
		rule, ok := table.Match(tt.mapSet, tt.row, tt.col)
		if ok != tt.ok || rule.To != tt.want {
			t.Errorf("Match(%s,%d,%d) = (%q,%v), want (%q,%v)", tt.mapSet, tt.row, tt.col, rule.To, ok, tt.want, tt.ok)
		}
	}
}

func TestNearestTransition(t *testing.T) {
	table := NewTransitionTable(DefaultTransitions, TransitionEdge)
	rule, dist, ok := NearestTransition(table, "world", GridPos{Row: 3, Col: 3})
	if !ok {
		t.Fatal("Expected a reachable transition")
	}
	if rule.To != "other" || dist != 4 {
		t.Errorf("Expected other at distance 4, got %s at %d", rule.To, dist)
	}
}

func TestFormatStatus(t *testing.T) {
	got := FormatStatus(PlayerState{Row: 5, Col: 4, Stats: Stats{Health: 100, Magic: 90, Experience: 2, Gold: -10}})
	want := "HP:100 - MP:90 - LVL:2 - Gold:-10 @ 5,4"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
