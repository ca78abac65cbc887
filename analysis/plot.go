package analysis

import (
	"fmt"
	"os"
	"path"

	"github.com/zeu5/coloring-rl/policies"
	"github.com/zeu5/coloring-rl/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func ensureDir(plotPath string) error {
	if _, err := os.Stat(plotPath); err != nil {
		return os.MkdirAll(plotPath, os.ModePerm)
	}
	return nil
}

func linePoints(values []float64) plotter.XYs {
	points := make(plotter.XYs, len(values))
	for i, v := range values {
		points[i] = plotter.XY{
			X: float64(i + 1),
			Y: v,
		}
	}
	return points
}

// PlotNodeRewards draws one line per node with the rewards it received
func PlotNodeRewards(r *types.Record, plotPath string) (string, error) {
	if err := ensureDir(plotPath); err != nil {
		return "", err
	}
	p := plot.New()
	p.Title.Text = "Reward per Node"
	p.X.Label.Text = "Move"
	p.Y.Label.Text = "Reward"
	p.Add(plotter.NewGrid())

	for i, node := range sortedNodes(r) {
		line, err := plotter.NewLine(linePoints(r.NodeRewards[node]))
		if err != nil {
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Node %d", node), line)
	}

	file := path.Join(plotPath, "node_rewards.png")
	if err := p.Save(8*vg.Inch, 5*vg.Inch, file); err != nil {
		return "", fmt.Errorf("save %s: %w", file, err)
	}
	return file, nil
}

// PlotCumulativeRewards draws the running sum of episode rewards, and of
// every agent for multi agent records
func PlotCumulativeRewards(r *types.Record, plotPath string) (string, error) {
	if err := ensureDir(plotPath); err != nil {
		return "", err
	}
	p := plot.New()
	p.Title.Text = "Cumulative Reward Over Time"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Cumulative Reward"
	p.Add(plotter.NewGrid())

	series := make(map[string][]float64)
	names := make([]string, 0)
	if len(r.AgentRewards) == 0 {
		names = append(names, "Single Agent")
		series["Single Agent"] = r.EpisodeRewards
	}
	for i, rewards := range r.AgentRewards {
		name := fmt.Sprintf("Agent %d", i+1)
		names = append(names, name)
		series[name] = rewards
	}

	for i, name := range names {
		line, err := plotter.NewLine(linePoints(Cumulative(series[name])))
		if err != nil {
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	file := path.Join(plotPath, "cumulative_rewards.png")
	if err := p.Save(8*vg.Inch, 5*vg.Inch, file); err != nil {
		return "", fmt.Errorf("save %s: %w", file, err)
	}
	return file, nil
}

// PlotMaxQValues draws a bar per visited state with its best action value
func PlotMaxQValues(values []policies.StateValue, plotPath string) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("no q values to plot")
	}
	if err := ensureDir(plotPath); err != nil {
		return "", err
	}
	p := plot.New()
	p.Title.Text = "Max Q-value per State"
	p.X.Label.Text = "State Index"
	p.Y.Label.Text = "Max Q-value"

	bars := make(plotter.Values, len(values))
	for i, v := range values {
		bars[i] = v.Value
	}
	chart, err := plotter.NewBarChart(bars, vg.Points(4))
	if err != nil {
		return "", err
	}
	chart.Color = plotutil.Color(0)
	p.Add(chart)

	file := path.Join(plotPath, "max_q_values.png")
	if err := p.Save(8*vg.Inch, 5*vg.Inch, file); err != nil {
		return "", fmt.Errorf("save %s: %w", file, err)
	}
	return file, nil
}

// PlotCoverage draws the number of distinct states seen after each episode
func PlotCoverage(r *types.Record, plotPath string) (string, error) {
	if len(r.Coverage) == 0 {
		return "", fmt.Errorf("no coverage recorded")
	}
	if err := ensureDir(plotPath); err != nil {
		return "", err
	}
	p := plot.New()
	p.Title.Text = "State Coverage"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "States covered"
	p.Add(plotter.NewGrid())

	covered := make([]float64, len(r.Coverage))
	for i, c := range r.Coverage {
		covered[i] = float64(c)
	}
	line, err := plotter.NewLine(linePoints(covered))
	if err != nil {
		return "", err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)

	file := path.Join(plotPath, "coverage.png")
	if err := p.Save(8*vg.Inch, 5*vg.Inch, file); err != nil {
		return "", fmt.Errorf("save %s: %w", file, err)
	}
	return file, nil
}
