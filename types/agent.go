package types

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"
)

// DefaultHorizon is the step budget of an episode
const DefaultHorizon = 1000

type AgentConfig struct {
	Episodes int
	// step budget of every episode
	Horizon     int
	Driver      Driver
	Policy      Policy
	Environment Environment
	// optional
	Recorder Recorder
	Logger   *slog.Logger
	// drives node selection and the random-valid driver, seeded from the clock if nil
	Source rand.Source
}

func (c *AgentConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c *AgentConfig) rand() *rand.Rand {
	if c.Source == nil {
		return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return rand.New(c.Source)
}

func (c *AgentConfig) horizon() int {
	if c.Horizon <= 0 {
		return DefaultHorizon
	}
	return c.Horizon
}

// RL Agent configured with the corresponding
// policy and environment
type Agent struct {
	config *AgentConfig
	// collects the traces of the run
	// Only populated if the Run function is invoked
	traces      []*Trace
	policy      Policy
	environment Environment
	rand        *rand.Rand
	logger      *slog.Logger
	visits      *VisitGraph
	failed      int
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		traces:      make([]*Trace, 0, config.Episodes),
		policy:      config.Policy,
		environment: config.Environment,
		rand:        config.rand(),
		logger:      config.logger(),
		visits:      NewVisitGraph(),
	}
}

// Run the agent for the specified number of episodes and horizon
func (a *Agent) Run() {
	for i := 1; i <= a.config.Episodes; i++ {
		a.traces = append(a.traces, a.runEpisode(i))
		if i%10 == 0 || i == a.config.Episodes {
			a.logger.Info("training progress", "episode", i, "episodes", a.config.Episodes)
		}
	}
	a.logger.Info("training summary", "failed", a.failed, "episodes", a.config.Episodes)
}

func (a *Agent) Traces() []*Trace {
	return a.traces
}

// Coverage is the graph of states visited across all episodes
func (a *Agent) Coverage() *VisitGraph {
	return a.visits
}

// Failed counts the episodes that exhausted the step budget
func (a *Agent) Failed() int {
	return a.failed
}

// run a single episode and return the resulting trace
func (a *Agent) runEpisode(episode int) *Trace {
	a.logger.Debug("starting episode", "episode", episode)
	state := a.environment.Reset()
	trace := NewTrace(episode)
	horizon := a.config.horizon()

	for {
		uncolored := a.environment.Uncolored()
		if len(uncolored) == 0 {
			trace.Success = true
			a.environment.Expand()
			a.logger.Info("graph colored, expanding", "episode", episode, "steps", trace.Budget)
			break
		}
		if trace.Budget >= horizon {
			trace.Failed = true
			a.failed += 1
			a.logger.Warn("step limit reached, marking as failed", "episode", episode, "steps", trace.Budget)
			break
		}

		shuffle(a.rand, uncolored)
		node, color, ok := selectMove(a.config.Driver, a.environment, a.rand, a.policy, state, uncolored)
		trace.Budget += 1
		if !ok {
			a.logger.Debug("no valid moves found, skipping step", "episode", episode, "step", trace.Budget)
			continue
		}

		nextState, reward := a.environment.Step(node, color)
		a.policy.Update(state, color, reward, nextState)
		a.visits.Update(state, node, color, nextState)
		trace.Append(0, node, color, reward)
		if a.config.Recorder != nil {
			a.config.Recorder.RecordStep(node, reward)
		}
		a.logger.Debug("step", "episode", episode, "node", node, "color", color, "reward", reward)
		state = nextState
	}

	a.policy.UpdateIteration(episode, trace)
	recordEpisode(a.config.Recorder, episode, trace, a.visits)
	a.logger.Info("completed episode", append([]any{"episode", episode, "reward", trace.Reward, "success", trace.Success, "states", a.visits.Len()}, epsilonAttrs(a.policy)...)...)
	return trace
}

func recordEpisode(r Recorder, episode int, trace *Trace, visits *VisitGraph) {
	if r == nil {
		return
	}
	r.RecordEpisode(episode, trace.Reward, trace.Failed)
	if cr, ok := r.(CoverageRecorder); ok {
		cr.RecordCoverage(episode, visits.Len())
	}
}
