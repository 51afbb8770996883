package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktimeline/core/pkg/metrics"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report the health and readiness of the core's dependencies",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	health := metrics.GetHealth()
	fmt.Printf("status:  %s\n", health.Status)
	fmt.Printf("uptime:  %s\n", health.Uptime)
	if health.Version != "" {
		fmt.Printf("version: %s\n", health.Version)
	}
	for name, state := range health.Components {
		fmt.Printf("  %-10s %s\n", name, state)
	}

	readiness := metrics.GetReadiness()
	fmt.Printf("ready:   %s\n", readiness.Status)
	if readiness.Message != "" {
		fmt.Printf("  %s\n", readiness.Message)
	}

	if health.Status != "healthy" || readiness.Status != "ready" {
		return fmt.Errorf("core is not healthy")
	}
	return nil
}
