package coloring

import (
	"fmt"
	"time"

	"github.com/zeu5/coloring-rl/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

const (
	RewardCorrect = 1.0
	RewardWrong   = -1.0

	// DefaultMaxNodes bounds the growth through Expand
	DefaultMaxNodes = 20
	// maximum number of edges attached to an expanded node
	maxExpandEdges = 3
)

// Outcome distinguishes the two failure modes that share RewardWrong
type Outcome int

const (
	OutcomeColored Outcome = iota
	OutcomeAlreadyColored
	OutcomeConflict
)

func (o Outcome) String() string {
	switch o {
	case OutcomeColored:
		return "colored"
	case OutcomeAlreadyColored:
		return "already_colored"
	case OutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

type Option func(*Environment)

// WithRenderer notifies r of every transition, sleeping pace after each frame
func WithRenderer(r types.Renderer, pace time.Duration) Option {
	return func(e *Environment) {
		e.renderer = r
		e.pace = pace
	}
}

func WithMaxNodes(n int) Option {
	return func(e *Environment) {
		e.maxNodes = n
	}
}

// WithSource sets the random source used by Expand
func WithSource(src rand.Source) Option {
	return func(e *Environment) {
		e.rand = rand.New(src)
	}
}

// Environment is the graph coloring environment.
// The working graph is rebuilt from the fixed topology on every Reset;
// only Expand changes the fixed topology.
type Environment struct {
	graph     *Graph
	fixed     *Graph
	version   int
	colors    []int
	maxColors int
	maxNodes  int
	steps     int

	renderer types.Renderer
	pace     time.Duration
	rand     *rand.Rand
}

var _ types.Environment = &Environment{}

func NewEnvironment(graph *Graph, maxColors int, opts ...Option) *Environment {
	e := &Environment{
		graph:     graph.Clone(),
		fixed:     graph.Clone(),
		maxColors: maxColors,
		maxNodes:  DefaultMaxNodes,
		rand:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, o := range opts {
		o(e)
	}
	e.colors = uncoloredSlice(e.graph.Len())
	return e
}

func uncoloredSlice(n int) []int {
	colors := make([]int, n)
	for i := range colors {
		colors[i] = Uncolored
	}
	return colors
}

func (e *Environment) Reset() types.State {
	e.graph = e.fixed.Clone()
	e.colors = uncoloredSlice(e.graph.Len())
	e.steps = 0
	e.render(0, "Initial Graph")
	return e.state()
}

func (e *Environment) state() State {
	s := make(State, len(e.colors))
	copy(s, e.colors)
	return s
}

// State returns the current snapshot
func (e *Environment) State() State {
	return e.state()
}

func (e *Environment) IsValid(node, color int) bool {
	if node < 0 || node >= len(e.colors) || e.colors[node] != Uncolored {
		return false
	}
	if color < 0 || color >= e.maxColors {
		return false
	}
	for _, n := range e.graph.Neighbors(node) {
		if e.colors[n] == color {
			return false
		}
	}
	return true
}

func (e *Environment) Step(node, color int) (types.State, float64) {
	s, reward, _ := e.StepOutcome(node, color)
	return s, reward
}

// StepOutcome is Step with the outcome code of the move
func (e *Environment) StepOutcome(node, color int) (State, float64, Outcome) {
	if node >= 0 && node < len(e.colors) && e.colors[node] != Uncolored {
		e.render(e.steps, fmt.Sprintf("Bad Move: Node %d Already Colored", node))
		return e.state(), RewardWrong, OutcomeAlreadyColored
	}

	var reward float64
	var outcome Outcome
	if e.IsValid(node, color) {
		e.colors[node] = color
		reward = RewardCorrect
		outcome = OutcomeColored
		e.render(e.steps, fmt.Sprintf("Good Move: Node %d -> Color %d", node, color))
	} else {
		reward = RewardWrong
		outcome = OutcomeConflict
		e.render(e.steps, fmt.Sprintf("Bad Move: Node %d -> Color %d (Invalid)", node, color))
	}
	e.steps += 1
	return e.state(), reward, outcome
}

func (e *Environment) Uncolored() []int {
	nodes := make([]int, 0)
	for n, c := range e.colors {
		if c == Uncolored {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Expand adds a node connected to between 1 and 3 existing nodes, capped at
// half the node count including the new one. Attachment points are drawn
// from the existing nodes only, so a connected graph stays connected.
func (e *Environment) Expand() types.State {
	existing := e.fixed.Len()
	if existing >= e.maxNodes {
		return e.state()
	}

	numConnections := min((existing+1)/2, 1+e.rand.Intn(maxExpandEdges))
	connections := make([]int, numConnections)
	sampleuv.WithoutReplacement(connections, existing, e.rand)

	newNode := e.fixed.addNode()
	for _, n := range connections {
		e.fixed.addEdge(newNode, n)
	}
	e.version += 1

	e.graph = e.fixed.Clone()
	e.colors = append(e.colors, Uncolored)
	e.render(e.steps, fmt.Sprintf("Graph Expanded: Added Node %d", newNode))
	return e.state()
}

func (e *Environment) Colors() int {
	return e.maxColors
}

// Steps counts the moves applied since the last Reset, bad moves on colored nodes excluded
func (e *Environment) Steps() int {
	return e.steps
}

// Version is incremented by every Expand that added a node
func (e *Environment) Version() int {
	return e.version
}

// Graph returns a copy of the fixed topology
func (e *Environment) Graph() *Graph {
	return e.fixed.Clone()
}

// Conflicts returns the edges whose endpoints share a color
func (e *Environment) Conflicts() []Edge {
	conflicts := make([]Edge, 0)
	for _, edge := range e.graph.Edges() {
		c := e.colors[edge.From]
		if c != Uncolored && c == e.colors[edge.To] {
			conflicts = append(conflicts, edge)
		}
	}
	return conflicts
}

func (e *Environment) render(step int, message string) {
	if e.renderer == nil {
		return
	}
	e.renderer.Render(step, message, e.state())
	if e.pace > 0 {
		time.Sleep(e.pace)
	}
}
