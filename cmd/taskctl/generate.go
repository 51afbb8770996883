package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktimeline/core/pkg/clock"
	"github.com/tasktimeline/core/pkg/schedule"
	"github.com/tasktimeline/core/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a conflict-free daily timeline for a user",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().String("user", "", "User ID (required)")
	generateCmd.Flags().String("date", "", "Date, YYYY-MM-DD (required)")
	generateCmd.Flags().String("window-start", "", "Working window start, HH:MM (defaults to the config's default_window.start)")
	generateCmd.Flags().String("window-end", "", "Working window end, HH:MM (defaults to the config's default_window.end)")
	generateCmd.Flags().String("policy", string(types.PolicyRoundRobin), "Ordering policy: round_robin, fcfs, sjf, ljf, priority")
	_ = generateCmd.MarkFlagRequired("user")
	_ = generateCmd.MarkFlagRequired("date")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	date, _ := cmd.Flags().GetString("date")
	windowStart, _ := cmd.Flags().GetString("window-start")
	windowEnd, _ := cmd.Flags().GetString("window-end")
	policyName, _ := cmd.Flags().GetString("policy")
	if windowStart == "" {
		windowStart = cfg.DefaultWindow.Start
	}
	if windowEnd == "" {
		windowEnd = cfg.DefaultWindow.End
	}

	start, err := clock.TimeOfDay(clk, date, windowStart)
	if err != nil {
		return fmt.Errorf("invalid window-start: %w", err)
	}
	end, err := clock.TimeOfDay(clk, date, windowEnd)
	if err != nil {
		return fmt.Errorf("invalid window-end: %w", err)
	}

	result, err := sched.Generate(schedule.GenerateParams{
		UserID:      userID,
		Date:        date,
		WindowStart: start,
		WindowEnd:   end,
		Policy:      types.Policy(policyName),
	})
	if err != nil {
		return err
	}

	fmt.Printf("placed %d task(s), skipped %d\n", len(result.Placed), len(result.Skipped))
	for _, t := range result.Placed {
		fmt.Printf("  %-30s %s - %s\n", t.Name, t.ScheduledStartTime.Format("15:04"), t.ScheduledEndTime.Format("15:04"))
	}
	for _, s := range result.Skipped {
		fmt.Printf("  SKIPPED %-30s reason=%s\n", s.Task.Name, s.Reason)
	}
	return nil
}
