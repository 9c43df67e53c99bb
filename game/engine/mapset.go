package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Map set load failures
var (
	ErrMissingResource = errors.New("map resource missing")
	ErrLayerMismatch   = errors.New("base and texture layers differ in size")
	ErrInvalidMapName  = errors.New("invalid map set name")
)

// Resource suffixes for the two layers of a map set
const (
	BaseSuffix    = ".base.txt"
	TextureSuffix = ".texture.txt"
)

// MapLoadError reports a map set switch that did not happen
type MapLoadError struct {
	MapSet   string
	Resource string
	Err      error
}

func (e *MapLoadError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("load map set %q: %s: %v", e.MapSet, e.Resource, e.Err)
	}
	return fmt.Sprintf("load map set %q: %v", e.MapSet, e.Err)
}

func (e *MapLoadError) Unwrap() error { return e.Err }

// MapSet is a named pair of congruent grids
type MapSet struct {
	Name    string
	Base    *Grid
	Texture *Grid
}

// Rows returns the base grid's row count
func (m *MapSet) Rows() int { return m.Base.Rows() }

// Cols returns the base grid's column count
func (m *MapSet) Cols() int { return m.Base.Cols() }

// BaseResource returns the resource name of a map set's base layer
func BaseResource(name string) string { return name + BaseSuffix }

// TextureResource returns the resource name of a map set's texture layer
func TextureResource(name string) string { return name + TextureSuffix }

// ReadMapSet parses and checks both layers of a map set without touching
// any scene state
func ReadMapSet(maps fs.FS, catalog *TileCatalog, name string) (*MapSet, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || !fs.ValidPath(name) {
		return nil, &MapLoadError{MapSet: name, Err: ErrInvalidMapName}
	}

	base, err := readLayer(maps, name, BaseResource(name))
	if err != nil {
		return nil, err
	}
	texture, err := readLayer(maps, name, TextureResource(name))
	if err != nil {
		return nil, err
	}

	if !base.SameShape(texture) {
		return nil, &MapLoadError{
			MapSet:   name,
			Resource: TextureResource(name),
			Err: fmt.Errorf("%w: base %dx%d, texture %dx%d",
				ErrLayerMismatch, base.Rows(), base.Cols(), texture.Rows(), texture.Cols()),
		}
	}

	if err := catalog.ResolveGrid(base); err != nil {
		return nil, &MapLoadError{MapSet: name, Resource: BaseResource(name), Err: err}
	}
	if err := catalog.ResolveGrid(texture); err != nil {
		return nil, &MapLoadError{MapSet: name, Resource: TextureResource(name), Err: err}
	}

	return &MapSet{Name: name, Base: base, Texture: texture}, nil
}

func readLayer(maps fs.FS, name, resource string) (*Grid, error) {
	data, err := fs.ReadFile(maps, resource)
	if err != nil {
		return nil, &MapLoadError{MapSet: name, Resource: resource, Err: fmt.Errorf("%w: %w", ErrMissingResource, err)}
	}
	g, err := ParseGrid(bytes.NewReader(data))
	if err != nil {
		return nil, &MapLoadError{MapSet: name, Resource: resource, Err: err}
	}
	return g, nil
}

// MapSetManager owns the active map set and its tile nodes
type MapSetManager struct {
	maps      fs.FS
	catalog   *TileCatalog
	renderer  *WorldRenderer
	active    *MapSet
	instances []NodeID
	tileSize  float64
}

// NewMapSetManager creates a manager with no active map set
func NewMapSetManager(maps fs.FS, catalog *TileCatalog, renderer *WorldRenderer) *MapSetManager {
	return &MapSetManager{maps: maps, catalog: catalog, renderer: renderer}
}

// LoadMapSet switches to the named map set. The new set is parsed, checked
// and rendered before the old tiles are removed; on any failure the active
// map set and its nodes are left untouched.
func (m *MapSetManager) LoadMapSet(name string) error {
	staged, err := ReadMapSet(m.maps, m.catalog, name)
	if err != nil {
		return err
	}

	baseNodes, baseSize, err := m.renderer.Render(staged.Base, DepthBase)
	if err != nil {
		return &MapLoadError{MapSet: name, Resource: BaseResource(name), Err: err}
	}
	textureNodes, textureSize, err := m.renderer.Render(staged.Texture, DepthTexture)
	if err != nil {
		m.renderer.Discard(baseNodes)
		return &MapLoadError{MapSet: name, Resource: TextureResource(name), Err: err}
	}

	m.renderer.Discard(m.instances)

	m.instances = make([]NodeID, 0, len(baseNodes)+len(textureNodes))
	m.instances = append(m.instances, baseNodes...)
	m.instances = append(m.instances, textureNodes...)
	m.active = staged
	m.tileSize = textureSize
	if m.tileSize <= 0 {
		m.tileSize = baseSize
	}
	return nil
}

// Clear removes all tile nodes and forgets the active map set
func (m *MapSetManager) Clear() {
	m.renderer.Discard(m.instances)
	m.instances = nil
	m.active = nil
	m.tileSize = 0
}

// Active returns the active map set, or nil before the first load
func (m *MapSetManager) Active() *MapSet { return m.active }

// Name returns the active map set's name
func (m *MapSetManager) Name() string {
	if m.active == nil {
		return ""
	}
	return m.active.Name
}

// Rows returns the active map set's rows, or 0
func (m *MapSetManager) Rows() int {
	if m.active == nil {
		return 0
	}
	return m.active.Rows()
}

// Cols returns the active map set's columns, or 0
func (m *MapSetManager) Cols() int {
	if m.active == nil {
		return 0
	}
	return m.active.Cols()
}

// TileSize returns the tile size measured during the last successful render
func (m *MapSetManager) TileSize() float64 { return m.tileSize }

// InstanceCount returns the number of live tile nodes
func (m *MapSetManager) InstanceCount() int { return len(m.instances) }

// Instances returns a copy of the live tile nodes
func (m *MapSetManager) Instances() []NodeID {
	return append([]NodeID(nil), m.instances...)
}
