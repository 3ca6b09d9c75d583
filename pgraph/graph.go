package pgraph

import (
	"sync"

	"github.com/solgraph/solsym/gref"
)

// Option configures a Graph at construction time.
type Option func(g *Graph)

// WithCapacity pre-sizes the node/edge slices. Panics if cap is negative —
// an invalid capacity is a caller bug, not a runtime condition to tolerate.
func WithCapacity(nodes, edges int) Option {
	if nodes < 0 || edges < 0 {
		panic("pgraph: negative capacity")
	}

	return func(g *Graph) {
		g.nodes = make([]Node, 0, nodes)
		g.edges = make([]Edge, 0, edges)
	}
}

// Graph is the process-global directed multigraph. Nodes are append-only
// except for the one sanctioned ResolveForward rewrite; edges are strictly
// append-only. Two independent locks split node storage from edge/adjacency
// storage: they're touched by different call paths (declaration walking vs.
// expression evaluation) and never need to be locked together.
type Graph struct {
	muNode sync.RWMutex
	nodes  []Node

	muEdge    sync.RWMutex
	edges     []Edge
	adjacency map[gref.NodeIdx][]int // node -> indices into edges, From == node
}

// NewGraph builds an empty Graph. Node index 0 is reserved for Entry — the
// first AddNode call an Analyzer makes is expected to be the Entry node,
// the graph's single root.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		nodes:     make([]Node, 0, 64),
		edges:     make([]Edge, 0, 64),
		adjacency: make(map[gref.NodeIdx][]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.adjacency == nil {
		g.adjacency = make(map[gref.NodeIdx][]int)
	}

	return g
}

// AddNode appends n and returns its stable index.
func (g *Graph) AddNode(n Node) gref.NodeIdx {
	g.muNode.Lock()
	defer g.muNode.Unlock()

	idx := gref.NodeIdx(len(g.nodes))
	g.nodes = append(g.nodes, n)

	return idx
}

// Node returns the node stored at idx.
func (g *Graph) Node(idx gref.NodeIdx) (Node, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	if uint64(idx) >= uint64(len(g.nodes)) {
		return nil, ErrNodeNotFound
	}

	return g.nodes[idx], nil
}

// NodeCount reports how many nodes have been appended.
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	return len(g.nodes)
}

// ResolveForward overwrites idx's payload in place. It is the single
// exception to append-only node storage: a name referenced before its
// declaration gets an UnresolvedData placeholder so edges can be recorded
// against a stable index, and once the real declaration is parsed the
// placeholder is replaced without disturbing those edges.
func (g *Graph) ResolveForward(idx gref.NodeIdx, n Node) error {
	g.muNode.Lock()
	defer g.muNode.Unlock()

	if uint64(idx) >= uint64(len(g.nodes)) {
		return ErrNodeNotFound
	}
	if g.nodes[idx].Kind() != KindUnresolved {
		return ErrNotUnresolved
	}
	g.nodes[idx] = n

	return nil
}

// AddEdge appends e and indexes it by its From endpoint for SearchChildren.
func (g *Graph) AddEdge(e Edge) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	i := len(g.edges)
	g.edges = append(g.edges, e)
	g.adjacency[e.From] = append(g.adjacency[e.From], i)
}

// EdgeCount reports how many edges have been appended.
func (g *Graph) EdgeCount() int {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	return len(g.edges)
}

// SearchChildren performs a breadth-first walk from root following only
// edges matching kind, returning the distinct destination nodes reached.
func (g *Graph) SearchChildren(root gref.NodeIdx, kind EdgeKind) []gref.NodeIdx {
	return g.searchChildren(root, func(e Edge) bool { return e.Kind == kind })
}

// SearchChildrenCtx is SearchChildren specialized to EdgeContext edges
// carrying a specific ContextEdgeKind sub-tag (e.g. walking Prev chains or
// enumerating fork children).
func (g *Graph) SearchChildrenCtx(root gref.NodeIdx, ctxKind ContextEdgeKind) []gref.NodeIdx {
	return g.searchChildren(root, func(e Edge) bool {
		return e.Kind == EdgeContext && e.CtxKind == ctxKind
	})
}

// IncomingEdges returns every edge with To == to and the given Kind, found
// by a linear scan. The graph has no reverse index; at the scale a single
// contract's context graph reaches, a scan is simpler and obviously correct
// than adding bookkeeping for a reverse index.
func (g *Graph) IncomingEdges(to gref.NodeIdx, kind EdgeKind) []Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	var out []Edge
	for _, e := range g.edges {
		if e.Kind == kind && e.To == to {
			out = append(out, e)
		}
	}

	return out
}

func (g *Graph) searchChildren(root gref.NodeIdx, match func(Edge) bool) []gref.NodeIdx {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	visited := map[gref.NodeIdx]bool{root: true}
	queue := []gref.NodeIdx{root}
	var out []gref.NodeIdx

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ei := range g.adjacency[cur] {
			e := g.edges[ei]
			if !match(e) {
				continue
			}
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			out = append(out, e.To)
			queue = append(queue, e.To)
		}
	}

	return out
}
