package types

// Environment the training loop interacts with.
// Invalid moves are not errors: they are answered with a negative reward.
type Environment interface {
	// Reset called at the start of each episode
	Reset() State
	// Step colors node with color and returns the new state and reward
	Step(node, color int) (State, float64)
	// IsValid is a pure query, false if the node is colored or a neighbor holds color
	IsValid(node, color int) bool
	// Uncolored nodes in ascending order
	Uncolored() []int
	// Expand grows the instance by one node between episodes
	Expand() State
	// Colors is the size of the action space
	Colors() int
}

// State of the system that RL policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Len is the number of nodes in the state
	Len() int
}

// Renderer observes state transitions, it must not affect control flow
type Renderer interface {
	Render(step int, message string, colors []int)
}

// Recorder receives per step and per episode metrics
type Recorder interface {
	RecordStep(node int, reward float64)
	RecordEpisode(episode int, reward float64, failed bool)
}

// AgentRecorder additionally receives the per agent episode rewards of multi agent runs
type AgentRecorder interface {
	Recorder
	RecordAgentEpisode(agent, episode int, reward float64)
}

// CoverageRecorder additionally receives the number of distinct states
// seen at the end of each episode
type CoverageRecorder interface {
	RecordCoverage(episode, states int)
}
