package scene

import "github.com/wricardo/golem/game/engine"

// Viewport maps scene space (origin bottom-left, y up) onto a raster whose
// origin is the top-left corner. Scale is raster units per scene unit.
type Viewport struct {
	Scene  engine.Size
	ScaleX float64
	ScaleY float64
}

// NewViewport fits a scene of the given size into a raster of w x h units
func NewViewport(sceneSize engine.Size, w, h float64) Viewport {
	v := Viewport{Scene: sceneSize, ScaleX: 1, ScaleY: 1}
	if sceneSize.W > 0 {
		v.ScaleX = w / sceneSize.W
	}
	if sceneSize.H > 0 {
		v.ScaleY = h / sceneSize.H
	}
	return v
}

// ToRaster converts a scene point to raster coordinates
func (v Viewport) ToRaster(p engine.Point) (x, y float64) {
	return p.X * v.ScaleX, (v.Scene.H - p.Y) * v.ScaleY
}

// ToScene converts raster coordinates to a scene point
func (v Viewport) ToScene(x, y float64) engine.Point {
	return engine.Point{X: x / v.ScaleX, Y: v.Scene.H - y/v.ScaleY}
}

// RectToRaster converts a scene rectangle given by its edges to a raster
// rectangle (top-left corner, width, height)
func (v Viewport) RectToRaster(left, top, right, bottom float64) (x, y, w, h float64) {
	x0, y0 := v.ToRaster(engine.Point{X: left, Y: top})
	x1, y1 := v.ToRaster(engine.Point{X: right, Y: bottom})
	return x0, y0, x1 - x0, y1 - y0
}
