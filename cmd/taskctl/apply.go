package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tasktimeline/core/pkg/id"
	"github.com/tasktimeline/core/pkg/types"
	"gopkg.in/yaml.v3"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Bulk-create tasks from a YAML manifest",
	Long: `Apply a manifest of tasks, validating each one the same way a
single task-create call would before handing it to the store.

Example:
  taskctl apply -f tasks.yaml`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "YAML manifest to apply (required)")
	_ = applyCmd.MarkFlagRequired("file")
}

// manifestTask is the YAML shape of one task entry in an apply manifest.
type manifestTask struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	UserID          string   `yaml:"user_id"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Priority        int      `yaml:"priority"`
	Deadline        string   `yaml:"deadline"` // RFC3339, optional
	Dependencies    []string `yaml:"dependencies"`
}

type manifest struct {
	Tasks []manifestTask `yaml:"tasks"`
}

func runApply(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	now := clk.Now()
	for _, mt := range m.Tasks {
		t := &types.Task{
			ID:              id.New(now).String(),
			UserID:          mt.UserID,
			Name:            mt.Name,
			Description:     mt.Description,
			DurationMinutes: mt.DurationMinutes,
			Priority:        mt.Priority,
			Status:          types.StatusPending,
			Dependencies:    mt.Dependencies,
		}
		if mt.Deadline != "" {
			deadline, err := time.Parse(time.RFC3339, mt.Deadline)
			if err != nil {
				return fmt.Errorf("task %q: invalid deadline: %w", mt.Name, err)
			}
			t.Deadline = &deadline
		}

		if err := validate.Create(t); err != nil {
			return fmt.Errorf("task %q: %w", mt.Name, err)
		}
		fmt.Printf("created task: %s (id=%s)\n", t.Name, t.ID)
	}

	return nil
}
