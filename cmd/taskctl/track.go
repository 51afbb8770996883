package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tasktimeline/core/pkg/execution"
	"github.com/tasktimeline/core/pkg/types"
)

var trackCmd = &cobra.Command{
	Use:   "track TASK_ID",
	Short: "Record execution actuals and/or a status transition for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	trackCmd.Flags().String("start", "", "Actual start time, RFC3339")
	trackCmd.Flags().String("end", "", "Actual end time, RFC3339")
	trackCmd.Flags().String("status", "", "New status: in_progress, completed, cancelled")
}

func runTrack(cmd *cobra.Command, args []string) error {
	taskID := args[0]
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	statusStr, _ := cmd.Flags().GetString("status")

	var patch execution.Patch
	if startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		patch.ActualStartTime = &t
	}
	if endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		patch.ActualEndTime = &t
	}
	if statusStr != "" {
		s := types.TaskStatus(statusStr)
		patch.Status = &s
	}

	updated, err := tracker.Apply(taskID, patch)
	if err != nil {
		return err
	}

	fmt.Printf("task %s is now %s\n", updated.ID, updated.Status)
	return nil
}
