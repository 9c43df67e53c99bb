package main

import (
	"github.com/wricardo/golem/game/engine"
)

// Explorer plans walks between trigger cells so that every map set of a
// world gets visited. Movement is only blocked by the map edge, so the
// plan is a straight row-then-column walk.
type Explorer struct {
	config  *engine.WorldConfig
	visited map[string]bool
}

func NewExplorer(config *engine.WorldConfig) *Explorer {
	e := &Explorer{config: config}
	e.Reset()
	return e
}

// Reset forgets every visit except the start map set
func (e *Explorer) Reset() {
	e.visited = map[string]bool{e.config.StartMapSet: true}
}

// Visit records that the walk reached mapSet
func (e *Explorer) Visit(mapSet string) {
	e.visited[mapSet] = true
}

// Done reports whether every configured map set was visited
func (e *Explorer) Done() bool {
	for _, name := range e.config.MapSets {
		if !e.visited[name] {
			return false
		}
	}
	return true
}

// Unvisited lists configured map sets not reached yet, in config order
func (e *Explorer) Unvisited() []string {
	var names []string
	for _, name := range e.config.MapSets {
		if !e.visited[name] {
			names = append(names, name)
		}
	}
	return names
}

// Target picks the trigger to walk to from state. Triggers leading to an
// unvisited map set win; otherwise the nearest trigger leaving the current
// map set is used to keep exploring. ok is false when no trigger can fire
// from the current map set.
func (e *Explorer) Target(state *engine.WorldState) (engine.TransitionRule, bool) {
	pos := engine.GridPos{Row: state.Player.Row, Col: state.Player.Col}

	best, bestVisited, bestDist := engine.TransitionRule{}, true, -1
	for _, r := range e.config.Transitions {
		if r.From != "" && r.From != state.MapSet {
			continue
		}
		if r.To == state.MapSet && e.config.TransitionMode == engine.TransitionEdge {
			continue
		}
		if r.Row >= state.Rows || r.Col >= state.Cols {
			continue
		}

		visited := e.visited[r.To]
		d := engine.ManhattanDistance(pos, engine.GridPos{Row: r.Row, Col: r.Col})
		if bestDist == -1 || (bestVisited && !visited) || (visited == bestVisited && d < bestDist) {
			best, bestVisited, bestDist = r, visited, d
		}
	}
	return best, bestDist != -1
}

// Plan returns the commands that walk from the player's cell onto the
// rule's cell. Standing on the cell already, the plan steps off and back so
// an edge-mode trigger fires again.
func (e *Explorer) Plan(state *engine.WorldState, rule engine.TransitionRule) []engine.Command {
	from := engine.GridPos{Row: state.Player.Row, Col: state.Player.Col}
	to := engine.GridPos{Row: rule.Row, Col: rule.Col}

	if from == to {
		switch {
		case from.Row+1 < state.Rows:
			return []engine.Command{engine.CmdDpadUp, engine.CmdDpadDown}
		case from.Row > 0:
			return []engine.Command{engine.CmdDpadDown, engine.CmdDpadUp}
		case from.Col+1 < state.Cols:
			return []engine.Command{engine.CmdDpadRight, engine.CmdDpadLeft}
		case from.Col > 0:
			return []engine.Command{engine.CmdDpadLeft, engine.CmdDpadRight}
		}
		return nil
	}

	var cmds []engine.Command
	for r := from.Row; r < to.Row; r++ {
		cmds = append(cmds, engine.CmdDpadUp)
	}
	for r := from.Row; r > to.Row; r-- {
		cmds = append(cmds, engine.CmdDpadDown)
	}
	for c := from.Col; c < to.Col; c++ {
		cmds = append(cmds, engine.CmdDpadRight)
	}
	for c := from.Col; c > to.Col; c-- {
		cmds = append(cmds, engine.CmdDpadLeft)
	}
	return cmds
}

// NextCommands is the next batch to send, at most engine.MaxBulkCommands
// long. nil means the explorer has nothing left to try.
func (e *Explorer) NextCommands(state *engine.WorldState) []engine.Command {
	if e.Done() {
		return nil
	}
	rule, ok := e.Target(state)
	if !ok {
		return nil
	}
	cmds := e.Plan(state, rule)
	if len(cmds) > engine.MaxBulkCommands {
		cmds = cmds[:engine.MaxBulkCommands]
	}
	return cmds
}
