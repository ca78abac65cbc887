package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeu5/coloring-rl/types"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := GetRootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("max_colors: 5\nepisodes: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	root := GetRootCommand()
	if err := root.ParseFlags([]string{"-c", file, "--episodes", "7", "--driver", "policy"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Episodes != 7 || cfg.MaxColors != 5 || cfg.Driver != types.DriverPolicy {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Alpha != 0.1 {
		t.Errorf("unset flag overrode the file: alpha %v", cfg.Alpha)
	}
}

func TestInvalidFlags(t *testing.T) {
	save := t.TempDir()
	if err := execute(t, "train", "-s", save, "--alpha", "2"); !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if err := execute(t, "train", "-s", save, "--driver", "greedy"); !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if err := execute(t, "multi", "-s", save, "--agents", "0"); !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestTrainAndPlot(t *testing.T) {
	save := t.TempDir()
	if err := execute(t, "train", "-s", save, "-e", "3", "--log-level", "error"); err != nil {
		t.Fatal(err)
	}
	record, err := types.LoadRecord(filepath.Join(save, "training_data.json"))
	if err != nil {
		t.Fatal(err)
	}
	if record.Episodes != 3 {
		t.Errorf("expected 3 episodes, got %d", record.Episodes)
	}
	if _, err := os.Stat(filepath.Join(save, "policies", "agent_0.json")); err != nil {
		t.Errorf("policy not saved: %v", err)
	}

	if err := execute(t, "plot", "-s", save, "--log-level", "error"); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"node_rewards.png", "cumulative_rewards.png", "coverage.png", filepath.Join("agent_0", "max_q_values.png")} {
		if _, err := os.Stat(filepath.Join(save, "plots", f)); err != nil {
			t.Errorf("missing plot %s: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(save, "summary.txt")); err != nil {
		t.Errorf("summary not written: %v", err)
	}
}

func TestRandomBaseline(t *testing.T) {
	save := t.TempDir()
	for i := 0; i < 2; i++ {
		if err := execute(t, "train", "-s", save, "-e", "2", "--policy", "random", "--driver", "policy", "--log-level", "error"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := os.Stat(filepath.Join(save, "policies", "agent_0.json")); !os.IsNotExist(err) {
		t.Errorf("random baseline should not save a table, got %v", err)
	}
	bs, err := os.ReadFile(filepath.Join(save, "runs.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(bs), "\n"); lines != 2 {
		t.Errorf("expected one history line per run, got %d", lines)
	}
}

func TestMultiAgent(t *testing.T) {
	save := t.TempDir()
	if err := execute(t, "multi", "-s", save, "-e", "2", "--agents", "3", "--log-level", "error"); err != nil {
		t.Fatal(err)
	}
	record, err := types.LoadRecord(filepath.Join(save, "training_data.json"))
	if err != nil {
		t.Fatal(err)
	}
	if record.Episodes != 2 || len(record.AgentRewards) != 3 {
		t.Errorf("unexpected record: %d episodes, %d agents", record.Episodes, len(record.AgentRewards))
	}
	for i := 0; i < 3; i++ {
		if _, err := os.Stat(filepath.Join(save, "policies", "agent_"+string(rune('0'+i))+".json")); err != nil {
			t.Errorf("agent %d policy not saved: %v", i, err)
		}
	}
}
