package engine

// Layout maps grid cells to scene positions. Origin is the position of
// cell (0,0); AxisX and AxisY are +1 or -1 and give the direction in which
// columns and rows grow.
type Layout struct {
	Origin Point `json:"origin"`
	AxisX  int   `json:"axis_x"`
	AxisY  int   `json:"axis_y"`
}

// DefaultLayout places cell (0,0) at (25,300) with rows growing upward
// and columns growing right, for a portrait screen with the control panel
// below the map.
var DefaultLayout = Layout{
	Origin: Point{X: 25, Y: 300},
	AxisX:  1,
	AxisY:  1,
}

// Locate returns the anchor of cell (row, col) for tiles of the given size
func (l Layout) Locate(row, col int, tileSize float64) Point {
	return Point{
		X: l.Origin.X + float64(l.AxisX*col)*tileSize,
		Y: l.Origin.Y + float64(l.AxisY*row)*tileSize,
	}
}

func (l Layout) valid() bool {
	return (l.AxisX == 1 || l.AxisX == -1) && (l.AxisY == 1 || l.AxisY == -1)
}
