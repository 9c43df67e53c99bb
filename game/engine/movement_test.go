package engine

import "testing"

func TestMovement_Directions(t *testing.T) {
	tests := []struct {
		name    string
		move    func(*WorldEngine) bool
		wantRow int
		wantCol int
	}{
		{"up increases row", (*WorldEngine).MoveUp, 6, 5},
		{"down decreases row", (*WorldEngine).MoveDown, 4, 5},
		{"left decreases col", (*WorldEngine).MoveLeft, 5, 4},
		{"right increases col", (*WorldEngine).MoveRight, 5, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world, scene := newTestWorld(t)
			if !tt.move(world) {
				t.Fatal("Expected move to succeed")
			}
			p := world.Player()
			if p.Row != tt.wantRow || p.Col != tt.wantCol {
				t.Errorf("Expected (%d,%d), got (%d,%d)", tt.wantRow, tt.wantCol, p.Row, p.Col)
			}

			want := DefaultLayout.Locate(tt.wantRow, tt.wantCol, 10)
			if got := scene.nodes[world.player.Sprite].pos; got != want {
				t.Errorf("Expected sprite at %v, got %v", want, got)
			}
		})
	}
}

func TestMovement_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		move     func(*WorldEngine) bool
	}{
		{"down from row 0", 0, 3, (*WorldEngine).MoveDown},
		{"up from top row", 6, 3, (*WorldEngine).MoveUp},
		{"left from col 0", 3, 0, (*WorldEngine).MoveLeft},
		{"right from last col", 3, 6, (*WorldEngine).MoveRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world, scene := newTestWorld(t)
			world.player.Row, world.player.Col = tt.row, tt.col

			if tt.move(world) {
				t.Error("Expected move to be a no-op")
			}
			p := world.Player()
			if p.Row != tt.row || p.Col != tt.col {
				t.Errorf("Expected (%d,%d), got (%d,%d)", tt.row, tt.col, p.Row, p.Col)
			}
			want := DefaultLayout.Locate(tt.row, tt.col, 10)
			if got := scene.nodes[world.player.Sprite].pos; got != want {
				t.Errorf("Expected sprite at %v, got %v", want, got)
			}
		})
	}
}

func TestMovement_WalkAcrossMap(t *testing.T) {
	world, _ := newTestWorld(t)

	for i := 0; i < 20; i++ {
		world.MoveLeft()
		world.MoveDown()
	}
	if p := world.Player(); p.Row != 0 || p.Col != 0 {
		t.Errorf("Expected (0,0) after walking off the corner, got (%d,%d)", p.Row, p.Col)
	}

	for i := 0; i < 20; i++ {
		world.MoveRight()
		world.MoveUp()
	}
	if p := world.Player(); p.Row != 6 || p.Col != 6 {
		t.Errorf("Expected (6,6) after walking off the far corner, got (%d,%d)", p.Row, p.Col)
	}
}

func TestGold(t *testing.T) {
	world, _ := newTestWorld(t)

	world.AddGold()
	world.AddGold()
	if g := world.Player().Stats.Gold; g != 20 {
		t.Errorf("Expected 20 gold, got %d", g)
	}

	for i := 0; i < 5; i++ {
		world.SpendGold()
	}
	if g := world.Player().Stats.Gold; g != -30 {
		t.Errorf("Expected -30 gold with no floor, got %d", g)
	}
}

func TestPlayer_Clamp(t *testing.T) {
	p := &Player{Row: 9, Col: -2}
	if !p.Clamp(4, 5) {
		t.Error("Expected clamp to move the player")
	}
	if p.Row != 3 || p.Col != 0 {
		t.Errorf("Expected (3,0), got (%d,%d)", p.Row, p.Col)
	}
	if p.Clamp(4, 5) {
		t.Error("Expected second clamp to be a no-op")
	}
}

func TestMovement_PlayerClampedOnSwitch(t *testing.T) {
	world, scene := newTestWorld(t)

	if err := world.LoadMapSet("other"); err != nil {
		t.Fatalf("Failed to load other: %v", err)
	}
	p := world.Player()
	if p.Row != 3 || p.Col != 4 {
		t.Errorf("Expected player clamped to (3,4), got (%d,%d)", p.Row, p.Col)
	}
	if got := scene.nodes[world.player.Sprite].pos; got != (Point{X: 65, Y: 330}) {
		t.Errorf("Expected sprite at (65,330), got %v", got)
	}
}

func TestHistory(t *testing.T) {
	world, _ := newTestWorld(t)

	world.Execute(CmdDpadUp)
	world.Execute(CmdDpadUp) // blocked at the top row
	world.Execute(CmdControlB)
	world.Execute(CmdControlA)

	history := world.History()
	if len(history) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(history))
	}

	first := history[0]
	if first.From != (GridPos{Row: 5, Col: 5}) || first.To != (GridPos{Row: 6, Col: 5}) || !first.Changed {
		t.Errorf("Unexpected first entry: %+v", first)
	}
	if history[1].Changed {
		t.Error("Expected blocked move to be recorded as unchanged")
	}
	if history[2].Gold != 10 || history[2].Number != 3 {
		t.Errorf("Unexpected gold entry: %+v", history[2])
	}
	if history[3].Changed {
		t.Error("Expected control_a to change nothing")
	}
	if history[0].MapSet != "world" {
		t.Errorf("Expected map set world, got %q", history[0].MapSet)
	}
}
