package engine

import "fmt"

// WorldRenderer turns grids into sprite nodes
type WorldRenderer struct {
	scene    Scene
	catalog  *TileCatalog
	layout   Layout
	tileSize float64 // fixed tile size; 0 measures each sprite
}

// NewWorldRenderer creates a renderer. A tileSize of 0 positions each tile
// using its own sprite width.
func NewWorldRenderer(scene Scene, catalog *TileCatalog, layout Layout, tileSize float64) *WorldRenderer {
	return &WorldRenderer{scene: scene, catalog: catalog, layout: layout, tileSize: tileSize}
}

// Render creates one node per cell at the given depth and returns the nodes
// and the tile size used for the last cell. On failure every node created
// so far is removed.
func (r *WorldRenderer) Render(g *Grid, depth float64) ([]NodeID, float64, error) {
	nodes := make([]NodeID, 0, g.Rows()*g.Cols())
	size := r.tileSize

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			asset, err := r.catalog.Resolve(g.At(row, col))
			if err != nil {
				r.Discard(nodes)
				return nil, 0, fmt.Errorf("row %d col %d: %w", row, col, err)
			}

			id, err := r.scene.NewSprite(asset)
			if err != nil {
				r.Discard(nodes)
				return nil, 0, fmt.Errorf("row %d col %d: sprite %s: %w", row, col, asset, err)
			}
			nodes = append(nodes, id)

			if r.tileSize <= 0 {
				size = r.scene.SpriteSize(id).W
			}
			r.scene.SetPosition(id, r.layout.Locate(row, col, size))
			r.scene.SetDepth(id, depth)
		}
	}

	return nodes, size, nil
}

// Discard removes nodes from the scene
func (r *WorldRenderer) Discard(nodes []NodeID) {
	for _, id := range nodes {
		r.scene.Remove(id)
	}
}

// Layout returns the layout used to position tiles
func (r *WorldRenderer) Layout() Layout { return r.layout }
