package types

import (
	"github.com/zeu5/coloring-rl/util"
)

// Record aggregates the rewards of a training run.
// It is the only artifact persisted, plots are built from it offline.
type Record struct {
	// rewards received by each node, in order, across the run
	NodeRewards map[int][]float64 `json:"node_rewards"`
	// cumulative reward of every episode
	EpisodeRewards []float64 `json:"episode_rewards"`
	// cumulative reward of every episode per agent, only for multi agent runs
	AgentRewards [][]float64 `json:"agent_rewards,omitempty"`
	// distinct states seen after every episode
	Coverage []int `json:"coverage"`

	Episodes       int `json:"episodes"`
	FailedEpisodes int `json:"failed_episodes"`
}

var _ AgentRecorder = &Record{}
var _ CoverageRecorder = &Record{}

func NewRecord() *Record {
	return &Record{
		NodeRewards:    make(map[int][]float64),
		EpisodeRewards: make([]float64, 0),
		Coverage:       make([]int, 0),
	}
}

func (r *Record) RecordStep(node int, reward float64) {
	r.NodeRewards[node] = append(r.NodeRewards[node], reward)
}

func (r *Record) RecordEpisode(_ int, reward float64, failed bool) {
	r.EpisodeRewards = append(r.EpisodeRewards, reward)
	r.Episodes += 1
	if failed {
		r.FailedEpisodes += 1
	}
}

func (r *Record) RecordAgentEpisode(agent, _ int, reward float64) {
	for len(r.AgentRewards) <= agent {
		r.AgentRewards = append(r.AgentRewards, make([]float64, 0))
	}
	r.AgentRewards[agent] = append(r.AgentRewards[agent], reward)
}

func (r *Record) RecordCoverage(_ int, states int) {
	r.Coverage = append(r.Coverage, states)
}

// Save writes the record as JSON
func (r *Record) Save(path string) error {
	return util.WriteJSON(path, r)
}

func LoadRecord(path string) (*Record, error) {
	r := NewRecord()
	if err := util.ReadJSON(path, r); err != nil {
		return nil, err
	}
	return r, nil
}
