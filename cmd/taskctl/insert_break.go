package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktimeline/core/pkg/schedule"
)

var insertBreakCmd = &cobra.Command{
	Use:   "insert-break",
	Short: "Insert a break after a scheduled task, shifting later tasks if needed",
	RunE:  runInsertBreak,
}

func init() {
	insertBreakCmd.Flags().String("user", "", "User ID (required)")
	insertBreakCmd.Flags().String("after", "", "Task ID to insert the break after (required)")
	insertBreakCmd.Flags().Int("minutes", 0, "Break duration in minutes (required)")
	_ = insertBreakCmd.MarkFlagRequired("user")
	_ = insertBreakCmd.MarkFlagRequired("after")
	_ = insertBreakCmd.MarkFlagRequired("minutes")
}

func runInsertBreak(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	after, _ := cmd.Flags().GetString("after")
	minutes, _ := cmd.Flags().GetInt("minutes")

	result, err := sched.InsertBreak(schedule.InsertBreakParams{
		UserID:          userID,
		AfterTaskID:     after,
		DurationMinutes: minutes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("break inserted: %s - %s\n", result.Break.ScheduledStartTime.Format("15:04"), result.Break.ScheduledEndTime.Format("15:04"))
	if len(result.Shifted) > 0 {
		fmt.Printf("shifted %d task(s) by %d minutes\n", len(result.Shifted), result.ShiftMinutes)
		if result.WindowExceeded {
			fmt.Println("warning: shift pushed a task past the working window")
		}
	}
	return nil
}
