package policies

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/zeu5/coloring-rl/util"
	"golang.org/x/exp/rand"
)

type testState string

func (s testState) Hash() string { return string(s) }
func (s testState) Len() int     { return len(s) }

func TestUpdateBellman(t *testing.T) {
	q := NewQLearningPolicy(2, 0.5, 0.9, 0, 0, 0, rand.NewSource(1))
	s, next := testState("s"), testState("n")

	q.Update(s, 0, 1, next)
	if v := q.Value(s, 0); v != 0.5 {
		t.Errorf("expected 0.5, got %v", v)
	}

	q.qTable.Set("n", 1, 2)
	q.Update(s, 0, 1, next)
	// (1-0.5)*0.5 + 0.5*(1 + 0.9*2)
	if v := q.Value(s, 0); math.Abs(v-1.65) > 1e-9 {
		t.Errorf("expected 1.65, got %v", v)
	}
}

func TestUpdateMaxNextTreatsUnseenAsZero(t *testing.T) {
	q := NewQLearningPolicy(2, 1, 1, 0, 0, 0, rand.NewSource(1))
	q.qTable.Set("n", 0, -3)
	q.Update(testState("s"), 0, 1, testState("n"))
	if v := q.Value(testState("s"), 0); v != 1 {
		t.Errorf("expected unseen action 1 of next state to count as 0, got %v", v)
	}
}

func TestUpdateFloor(t *testing.T) {
	q := NewQLearningPolicy(3, 0.9, 0.9, 0, 0, 0, rand.NewSource(1))
	s := testState("s")
	for i := 0; i < 1000; i++ {
		q.Update(s, i%3, -1, s)
		for a := 0; a < 3; a++ {
			if v := q.Value(s, a); v < QFloor {
				t.Fatalf("value %v below floor after %d updates", v, i+1)
			}
		}
	}
	if v := q.Value(s, 0); v != QFloor {
		t.Errorf("repeated punishment should reach the floor, got %v", v)
	}
}

func TestNextActionGreedy(t *testing.T) {
	q := NewQLearningPolicy(3, 0.1, 0.9, 0, 0, 0, rand.NewSource(1))
	q.qTable.Set("s", 0, -1)
	q.qTable.Set("s", 1, 2)
	q.qTable.Set("s", 2, 2)
	for i := 0; i < 10; i++ {
		if a := q.NextAction(testState("s")); a != 1 {
			t.Fatalf("expected first max action 1, got %d", a)
		}
	}
}

func TestNextActionSkipsFloor(t *testing.T) {
	q := NewQLearningPolicy(3, 0.1, 0.9, 0, 0, 0, rand.NewSource(1))
	q.qTable.Set("s", 0, QFloor)
	q.qTable.Set("s", 1, QFloor)
	q.qTable.Set("s", 2, -4)
	if a := q.NextAction(testState("s")); a != 2 {
		t.Errorf("expected the only action above the floor, got %d", a)
	}

	q.qTable.Set("s", 2, QFloor)
	for i := 0; i < 50; i++ {
		if a := q.NextAction(testState("s")); a < 0 || a >= 3 {
			t.Fatalf("fallback action %d out of range", a)
		}
	}
}

func TestNextActionExplores(t *testing.T) {
	q := NewQLearningPolicy(3, 0.1, 0.9, 1, 0, 1, rand.NewSource(5))
	q.qTable.Set("s", 0, 10)
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		seen[q.NextAction(testState("s"))] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected every action explored, saw %v", seen)
	}
}

func TestNextActionDeterministic(t *testing.T) {
	a := NewQLearningPolicy(4, 0.1, 0.9, 0.5, 0, 0, rand.NewSource(9))
	b := NewQLearningPolicy(4, 0.1, 0.9, 0.5, 0, 0, rand.NewSource(9))
	for i := 0; i < 100; i++ {
		if x, y := a.NextAction(testState("s")), b.NextAction(testState("s")); x != y {
			t.Fatalf("draw %d differs: %d and %d", i, x, y)
		}
	}
}

func TestDecay(t *testing.T) {
	cases := []struct {
		epsilon, decay, floor float64
		n                     int
	}{
		{0.7, 0.02, 0, 10},
		{0.7, 0.02, 0, 100},
		{1, 0.1, 0.25, 5},
		{1, 0.1, 0.25, 20},
		{0.5, 0, 0, 3},
	}
	for _, c := range cases {
		q := NewQLearningPolicy(2, 0.1, 0.9, c.epsilon, c.decay, c.floor, rand.NewSource(1))
		prev := q.Epsilon()
		for i := 0; i < c.n; i++ {
			q.Decay()
			if q.Epsilon() > prev || q.Epsilon() < c.floor {
				t.Fatalf("epsilon %v after %d decays (prev %v, floor %v)", q.Epsilon(), i+1, prev, c.floor)
			}
			prev = q.Epsilon()
		}
		expected := math.Max(c.floor, c.epsilon-float64(c.n)*c.decay)
		if math.Abs(q.Epsilon()-expected) > 1e-9 {
			t.Errorf("epsilon %v, decay %v, floor %v, n %d: expected %v, got %v", c.epsilon, c.decay, c.floor, c.n, expected, q.Epsilon())
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	q := NewQLearningPolicy(2, 0.5, 0.9, 0, 0, 0, rand.NewSource(1))
	q.Update(testState("a"), 1, 1, testState("b"))
	q.Update(testState("b"), 0, -1, testState("a"))

	file := filepath.Join(t.TempDir(), "policy.json")
	if err := q.Record(file); err != nil {
		t.Fatal(err)
	}
	loaded := NewQTable()
	if err := util.ReadJSON(file, loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 || loaded.Get("a", 1, 0) != q.Value(testState("a"), 1) {
		t.Errorf("table not restored: %v", loaded.MaxPerState())
	}
}
