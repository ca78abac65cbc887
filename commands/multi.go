package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zeu5/coloring-rl/analysis"
	"github.com/zeu5/coloring-rl/types"
)

const defaultMultiAgentEpisodes = 50

func MultiAgentCommand() *cobra.Command {
	var agents int

	cmd := &cobra.Command{
		Use:   "multi",
		Short: "Train independent agents sharing one environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if configFile == "" && !cmd.Flags().Changed("episodes") {
				cfg.Episodes = defaultMultiAgentEpisodes
			}
			if agents < 1 {
				return fmt.Errorf("%w: agents must be positive, got %d", types.ErrInvalidConfig, agents)
			}
			logger := newLogger(logLevel, logFormat, os.Stderr)
			env, err := newEnvironment(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			ps := make([]types.Policy, agents)
			for i := range ps {
				ps[i] = newPolicy(cfg, i)
			}
			record := types.NewRecord()

			multi := types.NewMultiAgent(&types.MultiAgentConfig{
				Episodes:    cfg.Episodes,
				Horizon:     cfg.Horizon,
				Driver:      cfg.Driver,
				Policies:    ps,
				Environment: env,
				Recorder:    record,
				Logger:      logger,
				Source:      source(cfg, loopSeed),
			})
			multi.Run()

			if err := saveRun("multi", cfg, record, ps); err != nil {
				return err
			}
			logger.Info("multi agent training complete", "summary", analysis.Summarize(record).String(), "save", saveFile)
			return nil
		},
	}
	cmd.Flags().IntVar(&agents, "agents", 2, "Number of independent agents")
	return cmd
}
