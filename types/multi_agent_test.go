package types_test

import (
	"testing"

	"github.com/zeu5/coloring-rl/types"
	"golang.org/x/exp/rand"
)

func TestMultiAgentSharesEnvironment(t *testing.T) {
	env := newEnv(t, 3, triangle(), 5, 1)
	a, b := newPolicy(5, 2), newPolicy(5, 3)
	record := types.NewRecord()
	multi := types.NewMultiAgent(&types.MultiAgentConfig{
		Episodes:    3,
		Horizon:     1000,
		Driver:      types.DriverRandomValid,
		Policies:    []types.Policy{a, b},
		Environment: env,
		Recorder:    record,
		Source:      rand.NewSource(4),
	})
	multi.Run()

	if multi.Failed() != 0 {
		t.Errorf("expected no failures, got %d", multi.Failed())
	}
	for i, trace := range multi.Traces() {
		if !trace.Success {
			t.Errorf("episode %d did not succeed", i+1)
		}
		agents := make(map[int]bool)
		for _, s := range trace.Steps {
			agents[s.Agent] = true
		}
		if !agents[0] {
			t.Errorf("episode %d: first agent never moved", i+1)
		}
		if trace.AgentReward(0)+trace.AgentReward(1) != trace.Reward {
			t.Errorf("episode %d: agent rewards do not add up", i+1)
		}
	}
	if len(record.AgentRewards) != 2 || len(record.AgentRewards[0]) != 3 || len(record.AgentRewards[1]) != 3 {
		t.Errorf("unexpected agent rewards %v", record.AgentRewards)
	}
	for _, p := range []interface{ Epsilon() float64 }{a, b} {
		if e := p.Epsilon(); e < 0.64-1e-9 || e > 0.64+1e-9 {
			t.Errorf("expected each agent decayed 3 times to 0.64, got %v", e)
		}
	}
}

func TestMultiAgentAlreadyColoredByOther(t *testing.T) {
	// a single node: the first agent colors it, the second agent proposes
	// the same stale candidate and is told it is already colored
	env := newEnv(t, 1, nil, 2, 1)
	record := types.NewRecord()
	multi := types.NewMultiAgent(&types.MultiAgentConfig{
		Episodes:    1,
		Horizon:     10,
		Driver:      types.DriverPolicy,
		Policies:    []types.Policy{newPolicy(2, 2), newPolicy(2, 3)},
		Environment: env,
		Recorder:    record,
		Source:      rand.NewSource(4),
	})
	multi.Run()

	trace := multi.Traces()[0]
	if trace.Len() != 2 {
		t.Fatalf("expected two moves, got %d", trace.Len())
	}
	first, _ := trace.Get(0)
	second, _ := trace.Get(1)
	if first.Agent != 0 || first.Reward != 1 {
		t.Errorf("unexpected first move %+v", first)
	}
	if second.Agent != 1 || second.Reward != -1 {
		t.Errorf("unexpected second move %+v", second)
	}
	if len(record.NodeRewards[0]) != 2 {
		t.Errorf("expected both moves recorded for node 0, got %v", record.NodeRewards[0])
	}
}

func TestMultiAgentSharedBudget(t *testing.T) {
	env := newEnv(t, 3, triangle(), 2, 1)
	multi := types.NewMultiAgent(&types.MultiAgentConfig{
		Episodes:    2,
		Horizon:     101,
		Driver:      types.DriverPolicy,
		Policies:    []types.Policy{newPolicy(2, 2), newPolicy(2, 3)},
		Environment: env,
		Source:      rand.NewSource(4),
	})
	multi.Run()

	if multi.Failed() != 2 {
		t.Errorf("expected both episodes to fail, got %d", multi.Failed())
	}
	for _, trace := range multi.Traces() {
		if trace.Budget != 101 {
			t.Errorf("budget overrun: %d", trace.Budget)
		}
	}
}
