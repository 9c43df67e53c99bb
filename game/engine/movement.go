package engine

import "time"

// Player is the single player character and its sprite
type Player struct {
	Row    int
	Col    int
	Stats  Stats
	Sprite NodeID
}

// State returns the serializable part of the player
func (p *Player) State() PlayerState {
	return PlayerState{Row: p.Row, Col: p.Col, Stats: p.Stats}
}

// Step moves the player by one cell, clamped to a rows x cols map. It
// returns false when the move would leave the map.
func (p *Player) Step(dRow, dCol, rows, cols int) bool {
	row, col := p.Row+dRow, p.Col+dCol
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return false
	}
	p.Row, p.Col = row, col
	return true
}

// Clamp pulls the player inside a rows x cols map, reporting whether it moved
func (p *Player) Clamp(rows, cols int) bool {
	row := clamp(p.Row, 0, rows-1)
	col := clamp(p.Col, 0, cols-1)
	moved := row != p.Row || col != p.Col
	p.Row, p.Col = row, col
	return moved
}

// MoveUp increases the row by one
func (e *WorldEngine) MoveUp() bool { return e.move(1, 0) }

// MoveDown decreases the row by one
func (e *WorldEngine) MoveDown() bool { return e.move(-1, 0) }

// MoveLeft decreases the column by one
func (e *WorldEngine) MoveLeft() bool { return e.move(0, -1) }

// MoveRight increases the column by one
func (e *WorldEngine) MoveRight() bool { return e.move(0, 1) }

// move steps the player and repositions its sprite with the current tile
// size. Moves off the map are ignored, but the sprite is still placed.
func (e *WorldEngine) move(dRow, dCol int) bool {
	moved := e.player.Step(dRow, dCol, e.maps.Rows(), e.maps.Cols())
	e.placePlayer()
	return moved
}

// AddGold credits GoldStep gold
func (e *WorldEngine) AddGold() {
	e.player.Stats.Gold += GoldStep
}

// SpendGold debits GoldStep gold. Gold may go negative.
func (e *WorldEngine) SpendGold() {
	e.player.Stats.Gold -= GoldStep
}

func (e *WorldEngine) placePlayer() {
	if !e.ready {
		return
	}
	e.scene.SetPosition(e.player.Sprite, e.layout.Locate(e.player.Row, e.player.Col, e.playerTileSize()))
}

// playerTileSize is the active map's tile size, or the player's own sprite
// width before any map is loaded
func (e *WorldEngine) playerTileSize() float64 {
	if size := e.maps.TileSize(); size > 0 {
		return size
	}
	return e.scene.SpriteSize(e.player.Sprite).W
}

// recordCommand adds a command to the cumulative history
func (e *WorldEngine) recordCommand(cmd Command, from GridPos, changed bool) {
	e.totalCommands++
	entry := CommandRecord{
		Command:   cmd,
		From:      from,
		To:        GridPos{Row: e.player.Row, Col: e.player.Col},
		Gold:      e.player.Stats.Gold,
		MapSet:    e.maps.Name(),
		Timestamp: time.Now().Unix(),
		Changed:   changed,
		Number:    e.totalCommands,
	}
	e.history = append(e.history, entry)
	if len(e.history) > MaxHistoryEntries {
		e.history = append([]CommandRecord(nil), e.history[len(e.history)-MaxHistoryEntries:]...)
	}
}
