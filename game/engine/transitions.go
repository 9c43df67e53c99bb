package engine

// TransitionTable holds the positional map set triggers in priority order
type TransitionTable struct {
	rules []TransitionRule
	mode  TransitionMode
}

// DefaultTransitions moves between the "world" and "other" map sets
var DefaultTransitions = []TransitionRule{
	{Row: 1, Col: 1, To: "other"},
	{Row: 5, Col: 5, To: "world"},
}

// NewTransitionTable copies rules. An empty mode means TransitionEdge.
func NewTransitionTable(rules []TransitionRule, mode TransitionMode) *TransitionTable {
	if mode == "" {
		mode = TransitionEdge
	}
	return &TransitionTable{rules: append([]TransitionRule(nil), rules...), mode: mode}
}

// Mode returns the evaluation mode
func (t *TransitionTable) Mode() TransitionMode { return t.mode }

// Rules returns a copy of the rules
func (t *TransitionTable) Rules() []TransitionRule {
	return append([]TransitionRule(nil), t.rules...)
}

// Match returns the first rule for a player on (row, col) of mapSet
func (t *TransitionTable) Match(mapSet string, row, col int) (TransitionRule, bool) {
	for _, r := range t.rules {
		if r.Row == row && r.Col == col && (r.From == "" || r.From == mapSet) {
			return r, true
		}
	}
	return TransitionRule{}, false
}

// Tick evaluates the rules once per frame and switches map sets on a match
func (e *WorldEngine) Tick() TickResult {
	if !e.ready {
		return TickResult{}
	}
	e.ticks++
	pos := GridPos{Row: e.player.Row, Col: e.player.Col}
	moved := !e.tickedOnce || pos != e.lastTickPos
	e.tickedOnce = true
	e.lastTickPos = pos

	if e.transitions.Mode() == TransitionEdge && !moved {
		return TickResult{}
	}

	from := e.maps.Name()
	rule, ok := e.transitions.Match(from, pos.Row, pos.Col)
	if !ok {
		return TickResult{}
	}
	if e.transitions.Mode() == TransitionEdge && rule.To == from {
		return TickResult{}
	}

	if err := e.LoadMapSet(rule.To); err != nil {
		return TickResult{From: from, To: rule.To, Err: err}
	}
	return TickResult{Switched: true, From: from, To: rule.To}
}
