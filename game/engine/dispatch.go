package engine

// DefaultHitZones is the layout of the stock controls.png panel, in
// declaration (priority) order
var DefaultHitZones = []HitZone{
	{Command: CmdDpadUp, Left: 68, Top: 236, Right: 92, Bottom: 192},
	{Command: CmdDpadLeft, Left: 10, Top: 186, Right: 60, Bottom: 160},
	{Command: CmdDpadDown, Left: 70, Top: 148, Right: 106, Bottom: 114},
	{Command: CmdDpadRight, Left: 105, Top: 170, Right: 138, Bottom: 152},
	{Command: CmdControlA, Left: 298, Top: 248, Right: 337, Bottom: 202},
	{Command: CmdControlB, Left: 265, Top: 172, Right: 304, Bottom: 135},
	{Command: CmdControlC, Left: 227, Top: 90, Right: 260, Bottom: 55},
	{Command: CmdControlMenu, Left: 131, Top: 264, Right: 234, Bottom: 218},
}

// Dispatcher maps touch points to commands
type Dispatcher struct {
	zones []HitZone
}

// NewDispatcher copies zones; earlier zones win on overlap
func NewDispatcher(zones []HitZone) *Dispatcher {
	return &Dispatcher{zones: append([]HitZone(nil), zones...)}
}

// Dispatch returns the command of the first zone containing p
func (d *Dispatcher) Dispatch(p Point) (Command, bool) {
	for _, z := range d.zones {
		if z.Contains(p) {
			return z.Command, true
		}
	}
	return "", false
}

// Zones returns a copy of the zones
func (d *Dispatcher) Zones() []HitZone {
	return append([]HitZone(nil), d.zones...)
}
