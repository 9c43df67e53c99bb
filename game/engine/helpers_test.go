package engine

import (
	"errors"
	"testing"
	"testing/fstest"
)

var errAssetMissing = errors.New("asset missing")

type fakeNode struct {
	asset string
	text  string
	label bool
	pos   Point
	depth float64
	scale float64
}

// fakeScene is an in-memory Scene with fixed sprite sizes
type fakeScene struct {
	nodes      map[NodeID]*fakeNode
	next       NodeID
	size       Size
	spriteSize Size
	failAssets map[string]bool
	removed    int
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		nodes:      make(map[NodeID]*fakeNode),
		size:       Size{W: 375, H: 700},
		spriteSize: Size{W: 10, H: 10},
		failAssets: make(map[string]bool),
	}
}

func (s *fakeScene) NewSprite(asset string) (NodeID, error) {
	if s.failAssets[asset] {
		return 0, errAssetMissing
	}
	s.next++
	s.nodes[s.next] = &fakeNode{asset: asset, scale: 1}
	return s.next, nil
}

func (s *fakeScene) NewLabel(text string) (NodeID, error) {
	s.next++
	s.nodes[s.next] = &fakeNode{text: text, label: true, scale: 1}
	return s.next, nil
}

func (s *fakeScene) SetText(id NodeID, text string) {
	if n, ok := s.nodes[id]; ok {
		n.text = text
	}
}

func (s *fakeScene) SetPosition(id NodeID, p Point) {
	if n, ok := s.nodes[id]; ok {
		n.pos = p
	}
}

func (s *fakeScene) SetDepth(id NodeID, depth float64) {
	if n, ok := s.nodes[id]; ok {
		n.depth = depth
	}
}

func (s *fakeScene) SetScale(id NodeID, scale float64) {
	if n, ok := s.nodes[id]; ok {
		n.scale = scale
	}
}

func (s *fakeScene) SpriteSize(id NodeID) Size {
	if n, ok := s.nodes[id]; ok && !n.label {
		return s.spriteSize
	}
	return Size{}
}

func (s *fakeScene) Remove(id NodeID) {
	if _, ok := s.nodes[id]; ok {
		delete(s.nodes, id)
		s.removed++
	}
}

func (s *fakeScene) Size() Size { return s.size }

// countDepth returns the number of nodes at depth
func (s *fakeScene) countDepth(depth float64) int {
	n := 0
	for _, node := range s.nodes {
		if node.depth == depth && !node.label {
			n++
		}
	}
	return n
}

// testMaps holds a 7x7 "world" and a 4x5 "other" map set
func testMaps() fstest.MapFS {
	return fstest.MapFS{
		"world.base.txt": {Data: []byte(
			"1,1,1,1,1,1,1\n" +
				"1,0,0,0,0,0,1\n" +
				"1,0,2,0,2,0,1\n" +
				"1,0,0,0,0,0,1\n" +
				"1,0,2,0,2,0,1\n" +
				"1,0,0,0,0,0,1\n" +
				"1,1,1,1,1,1,1\n")},
		"world.texture.txt": {Data: []byte(
			"0,0,0,0,0,0,0\n" +
				"0,0,0,0,0,0,0\n" +
				"0,0,5,0,5,0,0\n" +
				"0,0,0,0,0,0,0\n" +
				"0,0,5,0,5,0,0\n" +
				"0,0,0,0,0,0,0\n" +
				"0,0,0,0,0,0,0\n")},
		"other.base.txt":       {Data: []byte("3,3,3,3,3\n3,4,4,4,3\n3,4,4,4,3\n3,3,3,3,3\n")},
		"other.texture.txt":    {Data: []byte("0,0,0,0,0\n0,0,0,0,0\n0,0,0,0,0\n0,0,0,0,0\n")},
		"broken.base.txt":      {Data: []byte("1,2\n3,x\n")},
		"broken.texture.txt":   {Data: []byte("0,0\n0,0\n")},
		"ragged.base.txt":      {Data: []byte("1,2,3\n4,5\n")},
		"ragged.texture.txt":   {Data: []byte("0,0,0\n0,0\n")},
		"mismatch.base.txt":    {Data: []byte("1,2\n3,4\n")},
		"mismatch.texture.txt": {Data: []byte("0,0,0\n0,0,0\n")},
		"huge.base.txt":        {Data: []byte("1,1000\n")},
		"huge.texture.txt":     {Data: []byte("0,0\n")},
		"nobase.texture.txt":   {Data: []byte("0\n")},
	}
}

func createTestConfig() *WorldConfig {
	config := DefaultWorldConfig()
	config.Name = "Engine Test World"
	config.Description = "World used by engine tests"
	config.MapSets = []string{"world", "other", "broken", "ragged", "mismatch", "huge", "nobase"}
	return config
}

func newTestWorld(t *testing.T) (*WorldEngine, *fakeScene) {
	t.Helper()
	return newTestWorldWithConfig(t, createTestConfig())
}

func newTestWorldWithConfig(t *testing.T, config *WorldConfig) (*WorldEngine, *fakeScene) {
	t.Helper()
	scene := newFakeScene()
	world, err := NewWorldEngine(config, Resources{Maps: testMaps(), Scene: scene})
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	if err := world.OnSetup(); err != nil {
		t.Fatalf("Failed to set up world: %v", err)
	}
	return world, scene
}
