package types

// Step is a single move applied to the environment
type Step struct {
	Agent  int     `json:"agent"`
	Node   int     `json:"node"`
	Color  int     `json:"color"`
	Reward float64 `json:"reward"`
}

// Trace of an episode
type Trace struct {
	Episode int    `json:"episode"`
	Steps   []Step `json:"steps"`
	// number of iterations consumed from the step budget, skipped iterations included
	Budget  int     `json:"budget"`
	Reward  float64 `json:"reward"`
	Success bool    `json:"success"`
	Failed  bool    `json:"failed"`
}

func NewTrace(episode int) *Trace {
	return &Trace{
		Episode: episode,
		Steps:   make([]Step, 0),
	}
}

func (t *Trace) Append(agent, node, color int, reward float64) {
	t.Steps = append(t.Steps, Step{
		Agent:  agent,
		Node:   node,
		Color:  color,
		Reward: reward,
	})
	t.Reward += reward
}

func (t *Trace) Len() int {
	return len(t.Steps)
}

func (t *Trace) Get(i int) (Step, bool) {
	if i < 0 || i >= len(t.Steps) {
		return Step{}, false
	}
	return t.Steps[i], true
}

// AgentReward is the cumulative reward of the moves proposed by agent
func (t *Trace) AgentReward(agent int) float64 {
	total := 0.0
	for _, s := range t.Steps {
		if s.Agent == agent {
			total += s.Reward
		}
	}
	return total
}
