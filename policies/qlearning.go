package policies

import (
	"time"

	"github.com/zeu5/coloring-rl/types"
	"golang.org/x/exp/rand"
)

// QFloor bounds every stored value from below. Actions at the floor are
// treated as known bad and skipped when exploiting.
const QFloor = -5.0

// QLearningPolicy is one step tabular Q-learning with epsilon greedy
// exploration and a linear epsilon decay applied once per episode
type QLearningPolicy struct {
	qTable       *QTable
	colors       int
	alpha        float64
	gamma        float64
	epsilon      float64
	epsilonDecay float64
	minEpsilon   float64
	rand         *rand.Rand
}

var _ types.Policy = &QLearningPolicy{}

// NewQLearningPolicy over colors actions. A nil src seeds from the clock.
func NewQLearningPolicy(colors int, alpha, gamma, epsilon, epsilonDecay, minEpsilon float64, src rand.Source) *QLearningPolicy {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &QLearningPolicy{
		qTable:       NewQTable(),
		colors:       colors,
		alpha:        alpha,
		gamma:        gamma,
		epsilon:      epsilon,
		epsilonDecay: epsilonDecay,
		minEpsilon:   minEpsilon,
		rand:         rand.New(src),
	}
}

func (q *QLearningPolicy) Reset() {
	q.qTable = NewQTable()
}

func (q *QLearningPolicy) Record(path string) error {
	return q.qTable.Record(path)
}

func (q *QLearningPolicy) QTable() *QTable {
	return q.qTable
}

func (q *QLearningPolicy) Epsilon() float64 {
	return q.epsilon
}

// Value of (state, action), 0 if unseen
func (q *QLearningPolicy) Value(state types.State, action int) float64 {
	return q.qTable.Get(state.Hash(), action, 0)
}

func (q *QLearningPolicy) NextAction(state types.State) int {
	if q.rand.Float64() < q.epsilon {
		return q.rand.Intn(q.colors)
	}

	stateHash := state.Hash()
	candidates := make([]int, 0, q.colors)
	for a := 0; a < q.colors; a++ {
		if q.qTable.Get(stateHash, a, 0) > QFloor {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return q.rand.Intn(q.colors)
	}
	action, _ := q.qTable.MaxAmong(stateHash, candidates, 0)
	return action
}

func (q *QLearningPolicy) Update(state types.State, action int, reward float64, nextState types.State) {
	stateHash := state.Hash()

	_, nextVal := q.qTable.Max(nextState.Hash(), q.colors, 0)
	curVal := q.qTable.Get(stateHash, action, 0)

	newVal := (1-q.alpha)*curVal + q.alpha*(reward+q.gamma*nextVal)
	q.qTable.Set(stateHash, action, max(newVal, QFloor))
}

// Decay lowers epsilon by the decay step, never below the floor
func (q *QLearningPolicy) Decay() {
	q.epsilon = max(q.minEpsilon, q.epsilon-q.epsilonDecay)
}

func (q *QLearningPolicy) UpdateIteration(_ int, _ *types.Trace) {
	q.Decay()
}
