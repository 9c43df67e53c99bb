package engine

// Scene is the node API a host exposes to the engine. Implementations own
// textures and draw order; the engine only creates nodes and sets their
// properties.
type Scene interface {
	// NewSprite creates an image node for asset. It fails if the asset
	// cannot be loaded.
	NewSprite(asset string) (NodeID, error)
	NewLabel(text string) (NodeID, error)
	SetText(id NodeID, text string)
	SetPosition(id NodeID, p Point)
	SetDepth(id NodeID, depth float64)
	SetScale(id NodeID, scale float64)
	// SpriteSize returns the unscaled size of a sprite's image
	SpriteSize(id NodeID) Size
	Remove(id NodeID)
	// Size returns the current size of the drawable area
	Size() Size
}

// Handler receives lifecycle and input callbacks from a host. Hosts call
// these from a single goroutine.
type Handler interface {
	OnSetup() error
	OnFrameTick()
	OnResize()
	OnTouchBegin(p Point)
	OnTouchMove(p Point)
	OnTouchEnd(p Point)
}
