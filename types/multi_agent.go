package types

import (
	"log/slog"

	"golang.org/x/exp/rand"
)

type MultiAgentConfig struct {
	Episodes    int
	Horizon     int
	Driver      Driver
	Policies    []Policy
	Environment Environment
	Recorder    Recorder
	Logger      *slog.Logger
	Source      rand.Source
}

// MultiAgent runs independent policies against one shared environment.
// Within a round the agents take turns in order, each against a node
// drawn from the uncolored nodes seen at the start of the round, so a
// move can be invalidated by an earlier move of another agent.
type MultiAgent struct {
	config      *MultiAgentConfig
	traces      []*Trace
	environment Environment
	rand        *rand.Rand
	logger      *slog.Logger
	visits      *VisitGraph
	failed      int
}

func NewMultiAgent(config *MultiAgentConfig) *MultiAgent {
	base := &AgentConfig{Logger: config.Logger, Source: config.Source}
	return &MultiAgent{
		config:      config,
		traces:      make([]*Trace, 0, config.Episodes),
		environment: config.Environment,
		rand:        base.rand(),
		logger:      base.logger(),
		visits:      NewVisitGraph(),
	}
}

func (m *MultiAgent) Run() {
	for i := 1; i <= m.config.Episodes; i++ {
		m.traces = append(m.traces, m.runEpisode(i))
		if i%5 == 0 || i == m.config.Episodes {
			m.logger.Info("training progress", "episode", i, "episodes", m.config.Episodes)
		}
	}
	m.logger.Info("training summary", "failed", m.failed, "episodes", m.config.Episodes)
}

func (m *MultiAgent) Traces() []*Trace {
	return m.traces
}

func (m *MultiAgent) Coverage() *VisitGraph {
	return m.visits
}

func (m *MultiAgent) Failed() int {
	return m.failed
}

func (m *MultiAgent) runEpisode(episode int) *Trace {
	m.logger.Debug("starting episode", "episode", episode)
	state := m.environment.Reset()
	trace := NewTrace(episode)
	horizon := (&AgentConfig{Horizon: m.config.Horizon}).horizon()

	for {
		uncolored := m.environment.Uncolored()
		if len(uncolored) == 0 {
			trace.Success = true
			m.environment.Expand()
			m.logger.Info("graph colored, expanding", "episode", episode, "steps", trace.Budget)
			break
		}
		if trace.Budget >= horizon {
			trace.Failed = true
			m.failed += 1
			m.logger.Warn("step limit reached, marking as failed", "episode", episode, "steps", trace.Budget)
			break
		}

		shuffle(m.rand, uncolored)
		for agent, policy := range m.config.Policies {
			if trace.Budget >= horizon {
				break
			}
			candidate := uncolored[m.rand.Intn(len(uncolored))]
			node, color, ok := selectMove(m.config.Driver, m.environment, m.rand, policy, state, []int{candidate})
			trace.Budget += 1
			if !ok {
				continue
			}

			nextState, reward := m.environment.Step(node, color)
			policy.Update(state, color, reward, nextState)
			m.visits.Update(state, node, color, nextState)
			trace.Append(agent, node, color, reward)
			if m.config.Recorder != nil {
				m.config.Recorder.RecordStep(node, reward)
			}
			m.logger.Debug("step", "episode", episode, "agent", agent, "node", node, "color", color, "reward", reward)
			state = nextState
		}
	}

	for _, policy := range m.config.Policies {
		policy.UpdateIteration(episode, trace)
	}
	recordEpisode(m.config.Recorder, episode, trace, m.visits)
	if m.config.Recorder != nil {
		if ar, ok := m.config.Recorder.(AgentRecorder); ok {
			for agent := range m.config.Policies {
				ar.RecordAgentEpisode(agent, episode, trace.AgentReward(agent))
			}
		}
	}
	m.logger.Info("completed episode", append([]any{"episode", episode, "reward", trace.Reward, "success", trace.Success, "states", m.visits.Len()}, epsilonAttrs(m.config.Policies...)...)...)
	return trace
}

// Explorer is a policy exposing its exploration rate
type Explorer interface {
	Epsilon() float64
}

func epsilonAttrs(policies ...Policy) []any {
	attrs := make([]any, 0)
	for i, p := range policies {
		if e, ok := p.(Explorer); ok {
			attrs = append(attrs, slog.Group("agent", "index", i, "epsilon", e.Epsilon()))
		}
	}
	return attrs
}
