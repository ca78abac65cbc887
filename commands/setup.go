package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/zeu5/coloring-rl/analysis"
	"github.com/zeu5/coloring-rl/coloring"
	"github.com/zeu5/coloring-rl/policies"
	"github.com/zeu5/coloring-rl/render"
	"github.com/zeu5/coloring-rl/types"
	"github.com/zeu5/coloring-rl/util"
	"golang.org/x/exp/rand"
)

// offsets of the derived random sources, so every component draws from its own stream
const (
	graphSeed uint64 = iota
	expandSeed
	loopSeed
	policySeed
)

// newLogger creates and configures a new slog.Logger instance
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

func source(cfg *types.Config, offset uint64) rand.Source {
	return rand.NewSource(cfg.Seed + offset)
}

// newEnvironment generates the initial graph and wires the renderers
func newEnvironment(ctx context.Context, cfg *types.Config, logger *slog.Logger) (*coloring.Environment, error) {
	graph, err := coloring.NewRandomGraph(cfg.InitialNodes, cfg.EdgeProbability, source(cfg, graphSeed))
	if err != nil {
		return nil, fmt.Errorf("generate graph: %w", err)
	}
	logger.Info("generated graph", "nodes", graph.Len(), "edges", graph.Edges())

	opts := []coloring.Option{
		coloring.WithMaxNodes(cfg.MaxNodes),
		coloring.WithSource(source(cfg, expandSeed)),
	}
	renderers := render.Multi{}
	if cfg.Render {
		renderers = append(renderers, render.NewLogRenderer(logger))
	}
	if serveAddr != "" {
		server := render.NewServer(ctx, serveAddr)
		server.Start()
		logger.Info("serving frames", "addr", serveAddr)
		renderers = append(renderers, server)
	}
	if len(renderers) > 0 {
		opts = append(opts, coloring.WithRenderer(renderers, cfg.RenderPace))
	}
	return coloring.NewEnvironment(graph, cfg.MaxColors, opts...), nil
}

func newPolicy(cfg *types.Config, index int) types.Policy {
	src := source(cfg, policySeed+uint64(index))
	if cfg.Policy == types.PolicyRandom {
		return types.NewRandomPolicy(cfg.MaxColors, src)
	}
	return policies.NewQLearningPolicy(
		cfg.MaxColors,
		cfg.Alpha,
		cfg.Gamma,
		cfg.Epsilon,
		cfg.EpsilonDecay,
		cfg.MinEpsilon,
		src,
	)
}

// tableRecorder is a policy that can persist what it learned
type tableRecorder interface {
	Record(path string) error
}

// saveRun writes the record and the learned tables under saveFile and
// appends the run to the history of the folder
func saveRun(command string, cfg *types.Config, record *types.Record, ps []types.Policy) error {
	if err := record.Save(path.Join(saveFile, "training_data.json")); err != nil {
		return err
	}
	for i, p := range ps {
		if r, ok := p.(tableRecorder); ok {
			if err := r.Record(path.Join(saveFile, "policies", fmt.Sprintf("agent_%d.json", i))); err != nil {
				return err
			}
		}
	}
	return util.AppendJSON(path.Join(saveFile, "runs.jsonl"), runEntry{
		Command: command,
		Config:  cfg,
		Summary: analysis.Summarize(record),
	})
}

type runEntry struct {
	Command string           `json:"command"`
	Config  *types.Config    `json:"config"`
	Summary analysis.Summary `json:"summary"`
}
