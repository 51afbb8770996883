package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "List a user's timeline for a date",
	RunE:  runDaily,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear a user's generated schedule for a date",
	RunE:  runReset,
}

func init() {
	for _, cmd := range []*cobra.Command{dailyCmd, resetCmd} {
		cmd.Flags().String("user", "", "User ID (required)")
		cmd.Flags().String("date", "", "Date, YYYY-MM-DD (required)")
		_ = cmd.MarkFlagRequired("user")
		_ = cmd.MarkFlagRequired("date")
	}
}

func runDaily(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	date, _ := cmd.Flags().GetString("date")

	tasks, err := sched.Daily(userID, date)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("no scheduled tasks for that date")
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("%-30s %s - %s  [%s]\n", t.Name, t.ScheduledStartTime.Format("15:04"), t.ScheduledEndTime.Format("15:04"), t.Status)
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	date, _ := cmd.Flags().GetString("date")

	cleared, err := sched.Reset(userID, date)
	if err != nil {
		return err
	}
	fmt.Printf("cleared %d scheduled task(s)\n", cleared)
	return nil
}
