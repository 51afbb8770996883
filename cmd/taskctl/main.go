// Command taskctl is a thin CLI front end over the scheduling core
// (§4.13): apply a task manifest, generate a schedule, list a day's
// timeline, insert a break, or print a productivity report. It is not
// the system's primary interface — a future HTTP layer wraps the same
// core packages directly — but it gives the core a runnable entry point
// the way the teacher ships a single binary over its library packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tasktimeline/core/internal/userlock"
	"github.com/tasktimeline/core/pkg/clock"
	"github.com/tasktimeline/core/pkg/config"
	"github.com/tasktimeline/core/pkg/execution"
	"github.com/tasktimeline/core/pkg/log"
	"github.com/tasktimeline/core/pkg/metrics"
	"github.com/tasktimeline/core/pkg/report"
	"github.com/tasktimeline/core/pkg/schedule"
	"github.com/tasktimeline/core/pkg/storage"
	"github.com/tasktimeline/core/pkg/summary"
	"github.com/tasktimeline/core/pkg/task"
)

var (
	Version = "dev"

	cfg      config.Config
	store    storage.Store
	clk      clock.Clock
	locks    *userlock.Registry
	validate *task.Validator
	sched    *schedule.Service
	tracker  *execution.Tracker
	reports  *report.Generator
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "taskctl",
	Short:   "taskctl - personal task scheduling engine",
	Long:    `taskctl generates dependency-aware daily timelines, tracks execution, and produces productivity reports for a single user's tasks.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (scheduling_zone, default_window, ...)")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory for BoltDB persistence (in-memory if unset)")

	cobra.OnInitialize(initCore)

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(insertBreakCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(healthCmd)
}

func initCore() {
	metrics.SetVersion(Version)

	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON})

	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	clk = clock.NewSystem(loc)

	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	if dataDir != "" {
		bolt, err := storage.NewBoltStore(dataDir)
		if err != nil {
			metrics.RegisterComponent("store", false, err.Error())
			fmt.Fprintf(os.Stderr, "Error: failed to open %s: %v\n", dataDir, err)
			os.Exit(1)
		}
		store = bolt
	} else {
		store = storage.NewMemStore()
	}
	metrics.RegisterComponent("store", true, "")

	validate = task.New(store)
	sched = schedule.New(store, clk, cfg.MinBreakMinutes)
	locks = sched.Locks()
	tracker = execution.New(store, locks)
	reports = report.New(store, clk, summary.NewTemplate(), cfg.SummaryProviderTimeout())
}
