package types

import (
	"time"

	"golang.org/x/exp/rand"
)

// Policy chooses colors and learns from the resulting transitions.
// Actions are color indices in [0, Environment.Colors()).
type Policy interface {
	// NextAction picks a color for the given state
	NextAction(State) int
	// Update with a single (state, action, reward, nextState) transition
	Update(State, int, float64, State)
	// UpdateIteration called once at the end of every episode
	UpdateIteration(int, *Trace)
	Reset()
}

// RandomPolicy picks colors uniformly and never learns
type RandomPolicy struct {
	colors int
	rand   *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy(colors int, src rand.Source) *RandomPolicy {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &RandomPolicy{
		colors: colors,
		rand:   rand.New(src),
	}
}

func (r *RandomPolicy) Reset() {

}

func (r *RandomPolicy) UpdateIteration(_ int, _ *Trace) {

}

func (r *RandomPolicy) NextAction(_ State) int {
	return r.rand.Intn(r.colors)
}

func (r *RandomPolicy) Update(_ State, _ int, _ float64, _ State) {}
