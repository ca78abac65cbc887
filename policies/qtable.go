package policies

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/zeu5/coloring-rl/util"
)

// QTable is a sparse state-action value table keyed by state hash and color
type QTable struct {
	table map[string]map[int]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[int]float64),
	}
}

// Get returns the stored value or def, without inserting
func (q *QTable) Get(state string, action int, def float64) float64 {
	if actions, ok := q.table[state]; ok {
		if val, ok := actions[action]; ok {
			return val
		}
	}
	return def
}

func (q *QTable) Set(state string, action int, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[int]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// Max over the actions [0, actions), unseen actions valued def.
// Ties go to the lowest action.
func (q *QTable) Max(state string, actions int, def float64) (int, float64) {
	maxAction := -1
	maxVal := math.Inf(-1)
	for a := 0; a < actions; a++ {
		val := q.Get(state, a, def)
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	if maxAction == -1 {
		return -1, def
	}
	return maxAction, maxVal
}

// MaxAmong is Max restricted to the given actions, in the given order
func (q *QTable) MaxAmong(state string, actions []int, def float64) (int, float64) {
	maxAction := -1
	maxVal := math.Inf(-1)
	for _, a := range actions {
		val := q.Get(state, a, def)
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	if maxAction == -1 {
		return -1, def
	}
	return maxAction, maxVal
}

// Len is the number of stored state-action pairs
func (q *QTable) Len() int {
	count := 0
	for _, actions := range q.table {
		count += len(actions)
	}
	return count
}

// States returns the visited state hashes, sorted
func (q *QTable) States() []string {
	states := make([]string, 0, len(q.table))
	for s := range q.table {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

type StateValue struct {
	State string  `json:"state"`
	Value float64 `json:"value"`
}

// MaxPerState returns the best stored value of every visited state
func (q *QTable) MaxPerState() []StateValue {
	values := make([]StateValue, 0, len(q.table))
	for _, s := range q.States() {
		best := math.Inf(-1)
		for _, val := range q.table[s] {
			if val > best {
				best = val
			}
		}
		if len(q.table[s]) == 0 {
			best = 0
		}
		values = append(values, StateValue{State: s, Value: best})
	}
	return values
}

type qEntry struct {
	State  string  `json:"state"`
	Action int     `json:"action"`
	Value  float64 `json:"value"`
}

func (q *QTable) entries() []qEntry {
	entries := make([]qEntry, 0, q.Len())
	for _, s := range q.States() {
		actions := make([]int, 0, len(q.table[s]))
		for a := range q.table[s] {
			actions = append(actions, a)
		}
		sort.Ints(actions)
		for _, a := range actions {
			entries = append(entries, qEntry{State: s, Action: a, Value: q.table[s][a]})
		}
	}
	return entries
}

func (q *QTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.entries())
}

func (q *QTable) UnmarshalJSON(data []byte) error {
	entries := make([]qEntry, 0)
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	q.table = make(map[string]map[int]float64)
	for _, e := range entries {
		q.Set(e.State, e.Action, e.Value)
	}
	return nil
}

// Record saves the table as JSON to path
func (q *QTable) Record(path string) error {
	return util.WriteJSON(path, q)
}
