package scene

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/wricardo/golem/game/engine"
)

// ErrNodeNotFound is returned when looking up a removed or unknown node
var ErrNodeNotFound = errors.New("node not found")

// Kind distinguishes image nodes from text nodes
type Kind string

const (
	KindSprite Kind = "sprite"
	KindLabel  Kind = "label"
)

// Node is one retained scene node
type Node struct {
	ID       engine.NodeID `json:"id"`
	Kind     Kind          `json:"kind"`
	Asset    string        `json:"asset,omitempty"`
	Text     string        `json:"text,omitempty"`
	Position engine.Point  `json:"position"`
	Depth    float64       `json:"depth"`
	Scale    float64       `json:"scale"`
	Size     engine.Size   `json:"size"`
}

// Graph is a retained-mode scene. It implements engine.Scene for hosts
// that draw from snapshots (the desktop and terminal hosts) and for the
// headless server, where no drawing happens at all.
type Graph struct {
	mu    sync.RWMutex
	nodes map[engine.NodeID]*Node
	next  engine.NodeID
	size  engine.Size
	sizer Sizer
}

// NewGraph creates an empty graph of the given drawable size
func NewGraph(size engine.Size, sizer Sizer) *Graph {
	if sizer == nil {
		sizer = FixedSizer{Size: engine.Size{W: 32, H: 32}}
	}
	return &Graph{
		nodes: make(map[engine.NodeID]*Node),
		size:  size,
		sizer: sizer,
	}
}

// NewSprite adds an image node. The sizer decides whether the asset exists.
func (g *Graph) NewSprite(asset string) (engine.NodeID, error) {
	size, err := g.sizer.AssetSize(asset)
	if err != nil {
		return 0, fmt.Errorf("sprite %s: %w", asset, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.nodes[g.next] = &Node{ID: g.next, Kind: KindSprite, Asset: asset, Scale: 1, Size: size}
	return g.next, nil
}

// NewLabel adds a text node
func (g *Graph) NewLabel(text string) (engine.NodeID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.nodes[g.next] = &Node{ID: g.next, Kind: KindLabel, Text: text, Scale: 1}
	return g.next, nil
}

func (g *Graph) update(id engine.NodeID, fn func(*Node)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[id]; ok {
		fn(n)
	}
}

func (g *Graph) SetText(id engine.NodeID, text string) {
	g.update(id, func(n *Node) { n.Text = text })
}

func (g *Graph) SetPosition(id engine.NodeID, p engine.Point) {
	g.update(id, func(n *Node) { n.Position = p })
}

func (g *Graph) SetDepth(id engine.NodeID, depth float64) {
	g.update(id, func(n *Node) { n.Depth = depth })
}

func (g *Graph) SetScale(id engine.NodeID, scale float64) {
	g.update(id, func(n *Node) { n.Scale = scale })
}

// SpriteSize returns the unscaled image size, or zero for labels
func (g *Graph) SpriteSize(id engine.NodeID) engine.Size {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.nodes[id]; ok {
		return n.Size
	}
	return engine.Size{}
}

// Remove deletes a node; unknown IDs are ignored
func (g *Graph) Remove(id engine.NodeID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.nodes, id)
}

// Size returns the drawable size
func (g *Graph) Size() engine.Size {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.size
}

// Resize changes the drawable size. Callers should follow with the
// handler's OnResize.
func (g *Graph) Resize(size engine.Size) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.size = size
}

// Node returns a copy of one node
func (g *Graph) Node(id engine.NodeID) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return *n, nil
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Snapshot returns copies of all nodes in draw order: ascending depth,
// then creation order
func (g *Graph) Snapshot() []Node {
	g.mu.RLock()
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth < out[j].Depth
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Count returns the number of nodes of a kind at depth
func (g *Graph) Count(kind Kind, depth float64) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	count := 0
	for _, n := range g.nodes {
		if n.Kind == kind && n.Depth == depth {
			count++
		}
	}
	return count
}
