package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate (or fetch) a user's daily productivity report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("user", "", "User ID (required)")
	reportCmd.Flags().String("date", "", "Date, YYYY-MM-DD (required)")
	_ = reportCmd.MarkFlagRequired("user")
	_ = reportCmd.MarkFlagRequired("date")
}

func runReport(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	date, _ := cmd.Flags().GetString("date")

	r, err := reports.Generate(userID, date, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Report for %s on %s\n", userID, date)
	fmt.Printf("  completion rate:    %.0f%%\n", r.Metrics.CompletionRate)
	fmt.Printf("  on-time rate:       %.0f%%\n", r.Metrics.OnTimeRate)
	fmt.Printf("  productivity score: %.0f\n", r.Metrics.ProductivityScore)
	fmt.Println()
	fmt.Println(r.AISummary)
	return nil
}
