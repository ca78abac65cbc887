package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zeu5/coloring-rl/analysis"
	"github.com/zeu5/coloring-rl/types"
)

func TrainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train a single agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(logLevel, logFormat, os.Stderr)
			env, err := newEnvironment(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			policy := newPolicy(cfg, 0)
			record := types.NewRecord()

			agent := types.NewAgent(&types.AgentConfig{
				Episodes:    cfg.Episodes,
				Horizon:     cfg.Horizon,
				Driver:      cfg.Driver,
				Policy:      policy,
				Environment: env,
				Recorder:    record,
				Logger:      logger,
				Source:      source(cfg, loopSeed),
			})
			agent.Run()

			if err := saveRun("train", cfg, record, []types.Policy{policy}); err != nil {
				return err
			}
			logger.Info("training complete", "summary", analysis.Summarize(record).String(), "save", saveFile)
			return nil
		},
	}
}
