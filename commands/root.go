package commands

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/coloring-rl/types"
)

var (
	configFile string
	saveFile   string
	logLevel   string
	logFormat  string
	serveAddr  string
	driver     string

	// flag values applied over the configuration file, only when set
	overrides *types.Config
)

func GetRootCommand() *cobra.Command {
	overrides = types.DefaultConfig()
	rootCommand := &cobra.Command{
		Use:           "coloring-rl",
		Short:         "Train Q-learning agents to color graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	flags.IntVarP(&overrides.Episodes, "episodes", "e", overrides.Episodes, "Number of episodes to run")
	flags.IntVar(&overrides.Horizon, "steps", overrides.Horizon, "Step budget of each episode")
	flags.IntVar(&overrides.InitialNodes, "nodes", overrides.InitialNodes, "Initial number of nodes")
	flags.IntVar(&overrides.MaxNodes, "max-nodes", overrides.MaxNodes, "Node cap for graph expansion")
	flags.IntVar(&overrides.MaxColors, "colors", overrides.MaxColors, "Number of colors")
	flags.Float64Var(&overrides.EdgeProbability, "edge-probability", overrides.EdgeProbability, "Edge probability of the initial graph")
	flags.Float64Var(&overrides.Alpha, "alpha", overrides.Alpha, "Learning rate")
	flags.Float64Var(&overrides.Gamma, "gamma", overrides.Gamma, "Discount factor")
	flags.Float64Var(&overrides.Epsilon, "epsilon", overrides.Epsilon, "Initial exploration rate")
	flags.Float64Var(&overrides.EpsilonDecay, "epsilon-decay", overrides.EpsilonDecay, "Exploration decay per episode")
	flags.Float64Var(&overrides.MinEpsilon, "min-epsilon", overrides.MinEpsilon, "Exploration floor")
	flags.StringVar(&overrides.Policy, "policy", overrides.Policy, "Policy: qlearning or random")
	flags.Uint64Var(&overrides.Seed, "seed", overrides.Seed, "Seed of every random source")
	flags.StringVar(&driver, "driver", string(overrides.Driver), "Move driver: random-valid or policy")
	flags.BoolVar(&overrides.Render, "render", overrides.Render, "Render every transition")
	flags.DurationVar(&overrides.RenderPace, "pace", overrides.RenderPace, "Pause after each rendered frame")
	flags.StringVar(&serveAddr, "serve", "", "Serve rendered frames over HTTP on this address")
	flags.StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(MultiAgentCommand())
	rootCommand.AddCommand(PlotCommand())
	return rootCommand
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were explicitly set on the command line
func loadConfig(cmd *cobra.Command) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if configFile != "" {
		loaded, err := types.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("episodes", func() { cfg.Episodes = overrides.Episodes })
	set("steps", func() { cfg.Horizon = overrides.Horizon })
	set("nodes", func() { cfg.InitialNodes = overrides.InitialNodes })
	set("max-nodes", func() { cfg.MaxNodes = overrides.MaxNodes })
	set("colors", func() { cfg.MaxColors = overrides.MaxColors })
	set("edge-probability", func() { cfg.EdgeProbability = overrides.EdgeProbability })
	set("alpha", func() { cfg.Alpha = overrides.Alpha })
	set("gamma", func() { cfg.Gamma = overrides.Gamma })
	set("epsilon", func() { cfg.Epsilon = overrides.Epsilon })
	set("epsilon-decay", func() { cfg.EpsilonDecay = overrides.EpsilonDecay })
	set("min-epsilon", func() { cfg.MinEpsilon = overrides.MinEpsilon })
	set("policy", func() { cfg.Policy = overrides.Policy })
	set("seed", func() { cfg.Seed = overrides.Seed })
	set("render", func() { cfg.Render = overrides.Render })
	set("pace", func() { cfg.RenderPace = overrides.RenderPace })
	if flags.Changed("driver") {
		d, err := types.ParseDriver(driver)
		if err != nil {
			return nil, err
		}
		cfg.Driver = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
