package types

import (
	"fmt"
)

// VisitGraph is the graph of colorings reached during training, keyed by
// state hash. Its size is the coverage of the state space.
type VisitGraph struct {
	Vertices map[string]*Vertex `json:"vertices"`
}

func NewVisitGraph() *VisitGraph {
	return &VisitGraph{
		Vertices: make(map[string]*Vertex),
	}
}

// Vertex is a visited coloring
type Vertex struct {
	Key    string `json:"key"`
	Visits int    `json:"visits"`
	// moves out of the coloring, keyed by "node:color", to the states they led to
	Next map[string]map[string]bool `json:"next"`
}

func newVertex(key string) *Vertex {
	return &Vertex{
		Key:  key,
		Next: make(map[string]map[string]bool),
	}
}

func moveKey(node, color int) string {
	return fmt.Sprintf("%d:%d", node, color)
}

// Update records the transition and returns true if from was not seen before
func (v *VisitGraph) Update(from State, node, color int, to State) bool {
	fromKey, toKey := from.Hash(), to.Hash()
	isNew := false
	if _, ok := v.Vertices[fromKey]; !ok {
		v.Vertices[fromKey] = newVertex(fromKey)
		isNew = true
	}
	if _, ok := v.Vertices[toKey]; !ok {
		v.Vertices[toKey] = newVertex(toKey)
	}
	vertex := v.Vertices[fromKey]
	vertex.Visits += 1
	move := moveKey(node, color)
	if _, ok := vertex.Next[move]; !ok {
		vertex.Next[move] = make(map[string]bool)
	}
	vertex.Next[move][toKey] = true
	return isNew
}

// Len is the number of distinct states seen
func (v *VisitGraph) Len() int {
	return len(v.Vertices)
}

func (v *VisitGraph) Visits(s State) int {
	if vertex, ok := v.Vertices[s.Hash()]; ok {
		return vertex.Visits
	}
	return 0
}
