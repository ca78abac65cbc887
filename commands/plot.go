package commands

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeu5/coloring-rl/analysis"
	"github.com/zeu5/coloring-rl/policies"
	"github.com/zeu5/coloring-rl/types"
	"github.com/zeu5/coloring-rl/util"
)

func PlotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plot",
		Short: "Plot the learning curves of a saved run",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel, logFormat, os.Stderr)
			record, err := types.LoadRecord(path.Join(saveFile, "training_data.json"))
			if err != nil {
				return fmt.Errorf("load record: %w", err)
			}
			plotPath := path.Join(saveFile, "plots")

			files := make([]string, 0)
			file, err := analysis.PlotNodeRewards(record, plotPath)
			if err != nil {
				return err
			}
			files = append(files, file)
			if file, err = analysis.PlotCumulativeRewards(record, plotPath); err != nil {
				return err
			}
			files = append(files, file)
			if file, err := analysis.PlotCoverage(record, plotPath); err != nil {
				logger.Warn("skipping coverage", "err", err)
			} else {
				files = append(files, file)
			}

			tables, _ := filepath.Glob(path.Join(saveFile, "policies", "*.json"))
			for _, t := range tables {
				q := policies.NewQTable()
				if err := util.ReadJSON(t, q); err != nil {
					return err
				}
				name := strings.TrimSuffix(filepath.Base(t), ".json")
				file, err := analysis.PlotMaxQValues(q.MaxPerState(), path.Join(plotPath, name))
				if err != nil {
					logger.Warn("skipping q values", "table", t, "err", err)
					continue
				}
				files = append(files, file)
			}

			summary := analysis.Summarize(record).String()
			if err := util.WriteToFile(path.Join(saveFile, "summary.txt"), summary); err != nil {
				return err
			}
			logger.Info("plots written", "files", files, "summary", summary)
			return nil
		},
	}
}
