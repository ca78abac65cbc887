package coloring

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ErrInvalidGraph is returned when a graph cannot be built from the given topology
var ErrInvalidGraph = errors.New("invalid graph")

// maximum number of samples drawn by NewRandomGraph before giving up on connectivity
const maxGenerateAttempts = 1000

// Edge is an undirected edge, normalized so that From < To
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func newEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{From: a, To: b}
}

// Graph is an undirected graph whose node ids are contiguous from 0.
// The adjacency is stored in a gonum simple graph; the edge list is kept
// sorted so that iteration order is deterministic.
type Graph struct {
	g     *simple.UndirectedGraph
	edges []Edge
}

func emptyGraph(n int) *Graph {
	g := &Graph{
		g:     simple.NewUndirectedGraph(),
		edges: make([]Edge, 0),
	}
	for i := 0; i < n; i++ {
		g.g.AddNode(simple.Node(i))
	}
	return g
}

// NewGraph builds a connected graph with n nodes and the given edges.
// Duplicate edges are collapsed.
func NewGraph(n int, edges []Edge) (*Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one node, got %d", ErrInvalidGraph, n)
	}
	g := emptyGraph(n)
	for _, e := range edges {
		if err := g.addEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	if !g.Connected() {
		return nil, fmt.Errorf("%w: graph with %d nodes is not connected", ErrInvalidGraph, n)
	}
	return g, nil
}

// NewRandomGraph samples G(n, p) graphs from src until one is connected
func NewRandomGraph(n int, p float64, src rand.Source) (*Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one node, got %d", ErrInvalidGraph, n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: edge probability %v outside [0, 1]", ErrInvalidGraph, p)
	}
	r := rand.New(src)
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		g := emptyGraph(n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if r.Float64() < p {
					g.addEdge(i, j)
				}
			}
		}
		if g.Connected() {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: no connected sample of G(%d, %v) after %d attempts", ErrInvalidGraph, n, p, maxGenerateAttempts)
}

func (g *Graph) addEdge(a, b int) error {
	n := g.Len()
	if a < 0 || a >= n || b < 0 || b >= n {
		return fmt.Errorf("%w: edge (%d, %d) outside node range [0, %d)", ErrInvalidGraph, a, b, n)
	}
	if a == b {
		return fmt.Errorf("%w: self loop on node %d", ErrInvalidGraph, a)
	}
	if g.g.HasEdgeBetween(int64(a), int64(b)) {
		return nil
	}
	g.g.SetEdge(g.g.NewEdge(simple.Node(a), simple.Node(b)))
	g.edges = append(g.edges, newEdge(a, b))
	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].From != g.edges[j].From {
			return g.edges[i].From < g.edges[j].From
		}
		return g.edges[i].To < g.edges[j].To
	})
	return nil
}

// adds the next node id and returns it
func (g *Graph) addNode() int {
	id := g.Len()
	g.g.AddNode(simple.Node(id))
	return id
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return g.g.Nodes().Len()
}

// Nodes returns the node ids in ascending order
func (g *Graph) Nodes() []int {
	nodes := make([]int, g.Len())
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

// Edges returns a copy of the edge list, sorted
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

func (g *Graph) HasEdge(a, b int) bool {
	return g.g.HasEdgeBetween(int64(a), int64(b))
}

// Neighbors returns the sorted neighbors of node
func (g *Graph) Neighbors(node int) []int {
	neighbors := make([]int, 0)
	for it := g.g.From(int64(node)); it.Next(); {
		neighbors = append(neighbors, int(it.Node().ID()))
	}
	sort.Ints(neighbors)
	return neighbors
}

// Connected reports whether the graph has a single connected component
func (g *Graph) Connected() bool {
	if g.Len() == 0 {
		return true
	}
	return len(topo.ConnectedComponents(g.g)) == 1
}

// Clone returns an independent copy of the graph
func (g *Graph) Clone() *Graph {
	c := emptyGraph(g.Len())
	for _, e := range g.edges {
		c.addEdge(e.From, e.To)
	}
	return c
}
