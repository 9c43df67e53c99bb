package engine

import "fmt"

// StatusFormat is the layout of the status line: health, magic, experience,
// gold, row, col
const StatusFormat = "HP:%d - MP:%d - LVL:%d - Gold:%d @ %d,%d"

// FormatStatus renders a player's status line
func FormatStatus(p PlayerState) string {
	return fmt.Sprintf(StatusFormat, p.Stats.Health, p.Stats.Magic, p.Stats.Experience, p.Stats.Gold, p.Row, p.Col)
}

// ManhattanDistance calculates the Manhattan distance between two cells
func ManhattanDistance(from, to GridPos) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// NearestTransition finds the closest trigger cell reachable from pos on
// mapSet, returning the rule and its distance
func NearestTransition(t *TransitionTable, mapSet string, pos GridPos) (TransitionRule, int, bool) {
	best := -1
	var nearest TransitionRule
	for _, r := range t.rules {
		if r.From != "" && r.From != mapSet {
			continue
		}
		if r.To == mapSet && t.mode == TransitionEdge {
			continue
		}
		d := ManhattanDistance(pos, GridPos{Row: r.Row, Col: r.Col})
		if best == -1 || d < best {
			best = d
			nearest = r
		}
	}
	return nearest, best, best != -1
}

// Transitions exposes the engine's transition table
func (e *WorldEngine) Transitions() *TransitionTable { return e.transitions }

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
