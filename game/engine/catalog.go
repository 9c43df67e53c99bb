package engine

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultTilePattern names tile k as "k.png"
const DefaultTilePattern = "%d.png"

// ErrUnknownTile is returned for IDs outside the catalog
var ErrUnknownTile = errors.New("unknown tile id")

// TileCatalog resolves tile IDs to asset names. All names are built once
// when the catalog is created.
type TileCatalog struct {
	pattern string
	assets  []string
}

// NewTileCatalog enumerates assets for IDs 0..999 using pattern, which must
// contain exactly one %d verb
func NewTileCatalog(pattern string) (*TileCatalog, error) {
	if pattern == "" {
		pattern = DefaultTilePattern
	}
	if strings.Count(pattern, "%d") != 1 || strings.Count(pattern, "%") != 1 {
		return nil, fmt.Errorf("tile asset pattern %q must contain exactly one %%d", pattern)
	}

	assets := make([]string, TileCount)
	for id := range assets {
		assets[id] = fmt.Sprintf(pattern, id)
	}
	return &TileCatalog{pattern: pattern, assets: assets}, nil
}

// Resolve returns the asset for id
func (c *TileCatalog) Resolve(id TileID) (string, error) {
	if id < MinTileID || id > MaxTileID {
		return "", fmt.Errorf("%w: %d (catalog covers %d..%d)", ErrUnknownTile, id, MinTileID, MaxTileID)
	}
	return c.assets[id], nil
}

// Pattern returns the format used to name assets
func (c *TileCatalog) Pattern() string { return c.pattern }

// Len returns the number of enumerated assets
func (c *TileCatalog) Len() int { return len(c.assets) }

// ResolveGrid checks that every tile in g resolves, returning the first failure
func (c *TileCatalog) ResolveGrid(g *Grid) error {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if _, err := c.Resolve(g.At(row, col)); err != nil {
				return fmt.Errorf("row %d col %d: %w", row, col, err)
			}
		}
	}
	return nil
}
