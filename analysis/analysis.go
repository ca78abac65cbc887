// Package analysis turns a saved training record into summaries and plots
// without re-running training.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/zeu5/coloring-rl/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Episodes       int     `json:"episodes"`
	FailedEpisodes int     `json:"failed_episodes"`
	SuccessRate    float64 `json:"success_rate"`
	MeanReward     float64 `json:"mean_reward"`
	StdDevReward   float64 `json:"stddev_reward"`
	MaxReward      float64 `json:"max_reward"`
	TotalReward    float64 `json:"total_reward"`
	// distinct states seen by the end of the run
	States int `json:"states"`
}

func (s Summary) String() string {
	return fmt.Sprintf("episodes: %d, failed: %d, success rate: %.2f, reward mean: %.2f (sd %.2f), max: %.2f, total: %.2f, states: %d",
		s.Episodes, s.FailedEpisodes, s.SuccessRate, s.MeanReward, s.StdDevReward, s.MaxReward, s.TotalReward, s.States)
}

func Summarize(r *types.Record) Summary {
	s := Summary{
		Episodes:       r.Episodes,
		FailedEpisodes: r.FailedEpisodes,
	}
	if len(r.Coverage) > 0 {
		s.States = r.Coverage[len(r.Coverage)-1]
	}
	if r.Episodes > 0 {
		s.SuccessRate = float64(r.Episodes-r.FailedEpisodes) / float64(r.Episodes)
	}
	if len(r.EpisodeRewards) == 0 {
		return s
	}
	s.MeanReward, s.StdDevReward = stat.MeanStdDev(r.EpisodeRewards, nil)
	if math.IsNaN(s.StdDevReward) {
		s.StdDevReward = 0
	}
	s.MaxReward = floats.Max(r.EpisodeRewards)
	s.TotalReward = floats.Sum(r.EpisodeRewards)
	return s
}

// Cumulative returns the running sum of rewards
func Cumulative(rewards []float64) []float64 {
	out := make([]float64, len(rewards))
	if len(rewards) == 0 {
		return out
	}
	return floats.CumSum(out, rewards)
}

// sortedNodes returns the node ids of the record in ascending order
func sortedNodes(r *types.Record) []int {
	nodes := make([]int, 0, len(r.NodeRewards))
	for n := range r.NodeRewards {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}
