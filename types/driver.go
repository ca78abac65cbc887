package types

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Driver decides how a move is proposed on each iteration
type Driver string

const (
	// DriverRandomValid takes the first candidate node that has a valid
	// color and picks one of its valid colors uniformly
	DriverRandomValid Driver = "random-valid"
	// DriverPolicy takes the first candidate node and asks the policy for a color
	DriverPolicy Driver = "policy"
)

func ParseDriver(s string) (Driver, error) {
	switch Driver(s) {
	case DriverRandomValid, DriverPolicy:
		return Driver(s), nil
	}
	return "", fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, s)
}

// selectMove proposes (node, color) among the candidates. ok is false when
// no candidate has a valid color under DriverRandomValid.
func selectMove(driver Driver, env Environment, r *rand.Rand, policy Policy, state State, candidates []int) (int, int, bool) {
	if len(candidates) == 0 {
		return 0, 0, false
	}
	switch driver {
	case DriverPolicy:
		return candidates[0], policy.NextAction(state), true
	default:
		for _, node := range candidates {
			valid := make([]int, 0, env.Colors())
			for c := 0; c < env.Colors(); c++ {
				if env.IsValid(node, c) {
					valid = append(valid, c)
				}
			}
			if len(valid) > 0 {
				return node, valid[r.Intn(len(valid))], true
			}
		}
		return 0, 0, false
	}
}

func shuffle(r *rand.Rand, nodes []int) {
	r.Shuffle(len(nodes), func(i, j int) {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	})
}
